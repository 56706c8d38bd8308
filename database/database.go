package database

import (
	"fmt"
	"log"

	"spendtrack/config"
	"spendtrack/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open 建立数据库连接并完成迁移
// 返回显式连接句柄，由调用方注入 store，不保留包级全局状态
func Open(cfg *config.Config) (*gorm.DB, error) {
	// 构建 MySQL DSN 连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// 唯一索引冲突翻译为 gorm.ErrDuplicatedKey，store 依赖此行为识别重复注册
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 设置连接池参数
	sqlDB.SetMaxIdleConns(10)  // 最大空闲连接数
	sqlDB.SetMaxOpenConns(100) // 最大打开连接数

	// 自动迁移数据库表
	// budgets 的 (user_id, category) 唯一索引在模型上声明，迁移时一并建立
	if err := db.AutoMigrate(
		&models.User{},
		&models.Expense{},
		&models.Budget{},
	); err != nil {
		return nil, err
	}

	log.Println("数据库初始化成功")
	return db, nil
}
