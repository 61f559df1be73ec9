package database

import (
	"fmt"
	"log"

	"learning_platform_backend/internal/config"
	"learning_platform_backend/internal/model"

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
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate applies the schema and seeds baseline rows. Shared with the
// service tests, which run it against sqlite.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Course{},
		&model.CourseModule{},
		&model.Lesson{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizOption{},
		&model.Enrollment{},
		&model.LessonProgress{},
		&model.QuizAttempt{},
	)
	if err != nil {
		return err
	}

	var count int64
	db.Model(&model.Category{}).Count(&count)
	if count == 0 {
		defaultCategories := []model.Category{
			{Name: "Programming", Slug: "programming", Description: "Software development and programming languages"},
			{Name: "Data Science", Slug: "data-science", Description: "Statistics, machine learning and data analysis"},
			{Name: "Design", Slug: "design", Description: "UI/UX and graphic design"},
			{Name: "Business", Slug: "business", Description: "Management, marketing and entrepreneurship"},
		}
		for _, cat := range defaultCategories {
			db.Create(&cat)
		}
	}

	return nil
}
