package models

import (
	"time"
)

// Budget 预算模型
// 每个用户每个类别至多一条，(user_id, category) 由数据库唯一索引保证，
// 重复设置走 upsert 替换旧金额。预算不做软删除，避免唯一索引与已删除行冲突。
type Budget struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_budget_user_category"`
	Category  string    `json:"category" gorm:"size:50;not null;uniqueIndex:idx_budget_user_category"`
	Amount    float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Budget) TableName() string {
	return "budgets"
}
