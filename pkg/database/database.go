package database

import (
	"fmt"
	"log"

	"odigyan_backend/internal/config"
	"odigyan_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 建立数据库连接。migrate 为 true 时执行 AutoMigrate，
// release 环境默认跳过，用 -migrate 参数显式触发。
func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !migrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.StudentProfile{},
		&model.Course{},
		&model.Enrollment{},
		&model.Banner{},
		&model.Material{},
		&model.MockQuestion{},
		&model.TestResult{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}
