package store

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrDuplicateIdentity 用户名或邮箱已被占用（由数据库唯一索引冲突转换而来）
	ErrDuplicateIdentity = errors.New("用户名或邮箱已存在")
	// ErrNotFound 记录不存在或不属于当前用户
	ErrNotFound = errors.New("记录不存在")
)

// Store 数据访问层
// 显式持有 *gorm.DB（底层为连接池），由 main 构造后注入各处理器，
// 不再依赖包级全局连接。写操作的原子性由数据库事务保证。
type Store struct {
	db *gorm.DB
}

// New 创建 Store
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB 返回底层 gorm 连接（供迁移等少数场景使用）
func (s *Store) DB() *gorm.DB {
	return s.db
}
