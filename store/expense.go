package store

import (
	"fmt"
	"time"

	"spendtrack/models"
)

// CreateExpense 创建消费记录
// 时间戳由存储层在插入时取当前时刻，不接受客户端传入
func (s *Store) CreateExpense(userID uint, category string, amount float64, description string) (*models.Expense, error) {
	expense := models.Expense{
		UserID:      userID,
		Category:    category,
		Amount:      amount,
		Description: description,
		Date:        time.Now(),
	}
	if err := s.db.Create(&expense).Error; err != nil {
		return nil, fmt.Errorf("创建消费记录失败: %w", err)
	}
	return &expense, nil
}

// ListExpenses 获取用户的全部消费记录，按时间倒序（最新在前）
func (s *Store) ListExpenses(userID uint) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.db.Where("user_id = ?", userID).Order("date DESC").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("查询消费记录失败: %w", err)
	}
	return expenses, nil
}

// DeleteExpense 删除消费记录，仅限本人的记录
// 删除他人的记录（或不存在的ID）影响行数为 0，返回 ErrNotFound，绝不静默成功
func (s *Store) DeleteExpense(userID, id uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Expense{})
	if res.Error != nil {
		return fmt.Errorf("删除消费记录失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CategoryTotal 某用户某类别的消费总额（预算告警用）
func (s *Store) CategoryTotal(userID uint, category string) (float64, error) {
	var total float64
	err := s.db.Model(&models.Expense{}).
		Where("user_id = ? AND category = ?", userID, category).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("统计类别总额失败: %w", err)
	}
	return total, nil
}

// MonthTotal 某月消费合计
type MonthTotal struct {
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

// YearTotal 某年消费合计
type YearTotal struct {
	Year  int     `json:"year"`
	Total float64 `json:"total"`
}

// MonthlyTotals 指定年份内按月汇总消费金额，月份升序，无记录的月份不出现
func (s *Store) MonthlyTotals(userID uint, year int) ([]MonthTotal, error) {
	var totals []MonthTotal
	err := s.db.Model(&models.Expense{}).
		Select("MONTH(date) AS month, SUM(amount) AS total").
		Where("user_id = ? AND YEAR(date) = ?", userID, year).
		Group("month").
		Order("month ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("按月统计失败: %w", err)
	}
	return totals, nil
}

// YearlyTotals 按年汇总消费金额，年份升序，无记录的年份不出现
func (s *Store) YearlyTotals(userID uint) ([]YearTotal, error) {
	var totals []YearTotal
	err := s.db.Model(&models.Expense{}).
		Select("YEAR(date) AS year, SUM(amount) AS total").
		Where("user_id = ?", userID).
		Group("year").
		Order("year ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("按年统计失败: %w", err)
	}
	return totals, nil
}
