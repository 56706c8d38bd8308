package models

import (
	"time"

	"gorm.io/gorm"
)

// Expense 消费记录模型
// Date 由存储层在插入时赋值，客户端不可指定
type Expense struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	Category    string         `json:"category" gorm:"size:50;not null;index"`
	Amount      float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	Description string         `json:"description" gorm:"size:255"`
	Date        time.Time      `json:"date" gorm:"not null;index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
	User        User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}
