package repository

import (
	"learning_platform_backend/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) List() ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.Order("name").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) FindBySlug(slug string) (*model.Category, error) {
	var category model.Category
	if err := r.DB.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) CountCourses(categoryID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}
