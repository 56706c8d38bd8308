package store

import (
	"errors"
	"fmt"

	"spendtrack/models"

	"gorm.io/gorm"
)

// CreateUser 创建用户
// 不做「先查再插」：用户名/邮箱的唯一性靠数据库唯一索引保证，
// 冲突时由 GORM 错误翻译得到 ErrDuplicateIdentity，插入即校验，天然原子。
func (s *Store) CreateUser(username, email, passwordHash string) (*models.User, error) {
	user := models.User{
		Username: username,
		Email:    email,
		Password: passwordHash,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}
	return &user, nil
}

// GetUserByID 按ID查找用户
func (s *Store) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}

// GetUserByUsername 按用户名查找用户
func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}

// GetUserByEmail 按邮箱查找用户
func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}

// GetUserByLogin 按用户名或邮箱查找用户（登录用）
func (s *Store) GetUserByLogin(login string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ? OR email = ?", login, login).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}

// UpdateUserPassword 更新用户密码哈希
func (s *Store) UpdateUserPassword(id uint, passwordHash string) error {
	res := s.db.Model(&models.User{}).Where("id = ?", id).Update("password", passwordHash)
	if res.Error != nil {
		return fmt.Errorf("更新密码失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
