package repository

import (
	"learning_platform_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) Create(progress *model.LessonProgress) error {
	return r.DB.Create(progress).Error
}

func (r *ProgressRepository) Update(progress *model.LessonProgress) error {
	return r.DB.Save(progress).Error
}

func (r *ProgressRepository) FindByStudentAndLesson(studentID, lessonID uint) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	err := r.DB.Where("student_id = ? AND lesson_id = ?", studentID, lessonID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) ListByStudentAndCourse(studentID, courseID uint) ([]model.LessonProgress, error) {
	var rows []model.LessonProgress
	err := r.DB.Preload("Lesson").
		Joins("JOIN lessons ON lessons.id = lesson_progress.lesson_id").
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("lesson_progress.student_id = ? AND course_modules.course_id = ?", studentID, courseID).
		Where("lessons.deleted_at IS NULL AND course_modules.deleted_at IS NULL").
		Find(&rows).Error
	return rows, err
}

// CountCompletedForCourse counts a student's completed lessons within
// one course. Always queried live; the aggregator never caches it.
func (r *ProgressRepository) CountCompletedForCourse(studentID, courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progress.lesson_id").
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("lesson_progress.student_id = ? AND course_modules.course_id = ? AND lesson_progress.is_completed = ?",
			studentID, courseID, true).
		Where("lessons.deleted_at IS NULL AND course_modules.deleted_at IS NULL").
		Count(&count).Error
	return count, err
}
