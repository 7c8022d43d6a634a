package database

import (
	"edulearn_backend/internal/config"
	"edulearn_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
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
		// 唯一键冲突需要映射为业务错误（重复提交、重复XP）
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

// Migrate 同步全部实体表结构，测试环境也复用这份迁移
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Subject{},
		&model.CourseModule{},
		&model.Chapter{},
		&model.Lesson{},
		&model.LessonChapter{},
		&model.Quiz{},
		&model.QuizBinding{},
		&model.Question{},
		&model.QuestionOption{},
		&model.QuizAttempt{},
		&model.AttemptAnswer{},
		&model.UserXPEarned{},
	)
}
