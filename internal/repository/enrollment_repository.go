package repository

import (
	"learning_platform_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) Update(enrollment *model.Enrollment) error {
	return r.DB.Save(enrollment).Error
}

func (r *EnrollmentRepository) FindByID(id uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Preload("Course").Preload("Student").First(&enrollment, id).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) FindByStudentAndCourse(studentID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) ListByStudent(studentID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Preload("Course").Preload("Course.Instructor").
		Where("student_id = ?", studentID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}
