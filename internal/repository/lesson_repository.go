package repository

import (
	"learning_platform_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) Delete(lesson *model.Lesson) error {
	return r.DB.Delete(lesson).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.Preload("Quiz.Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("quiz_questions.`order`")
	}).
		Preload("Quiz.Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_options.`order`")
		}).
		First(&lesson, id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// CourseID resolves the course owning a lesson via its module.
func (r *LessonRepository) CourseID(lessonID uint) (uint, error) {
	var m model.CourseModule
	err := r.DB.Select("course_modules.course_id").
		Joins("JOIN lessons ON lessons.module_id = course_modules.id").
		Where("lessons.id = ?", lessonID).
		First(&m).Error
	if err != nil {
		return 0, err
	}
	return m.CourseID, nil
}
