package store

import (
	"errors"
	"fmt"

	"spendtrack/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SetBudget 设置预算，upsert 语义
// (user_id, category) 冲突时只更新金额，保证每用户每类别至多一行
func (s *Store) SetBudget(userID uint, category string, amount float64) (*models.Budget, error) {
	budget := models.Budget{
		UserID:   userID,
		Category: category,
		Amount:   amount,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(&budget).Error
	if err != nil {
		return nil, fmt.Errorf("设置预算失败: %w", err)
	}
	return &budget, nil
}

// ListBudgets 获取用户的全部预算
func (s *Store) ListBudgets(userID uint) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.Where("user_id = ?", userID).Order("category ASC").Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("查询预算失败: %w", err)
	}
	return budgets, nil
}

// GetBudget 获取用户某类别的预算，不存在返回 ErrNotFound
func (s *Store) GetBudget(userID uint, category string) (*models.Budget, error) {
	var budget models.Budget
	err := s.db.Where("user_id = ? AND category = ?", userID, category).First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询预算失败: %w", err)
	}
	return &budget, nil
}
