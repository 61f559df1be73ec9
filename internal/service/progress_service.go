package service

import (
	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/repository"
	"learning_platform_backend/internal/util"
)

type ProgressService struct {
	CourseRepo   *repository.CourseRepository
	ProgressRepo *repository.ProgressRepository
}

func NewProgressService(courseRepo *repository.CourseRepository, progressRepo *repository.ProgressRepository) *ProgressService {
	return &ProgressService{
		CourseRepo:   courseRepo,
		ProgressRepo: progressRepo,
	}
}

// ProgressPercentage computes the live completion percentage for an
// enrollment. A completed enrollment short-circuits to 100 regardless
// of the underlying lesson progress; otherwise the value is derived
// from the current lesson counts on every call, never cached.
func (s *ProgressService) ProgressPercentage(enrollment *model.Enrollment) (float64, error) {
	if enrollment.IsCompleted {
		return 100, nil
	}

	totalLessons, err := s.CourseRepo.TotalLessons(enrollment.CourseID)
	if err != nil {
		return 0, err
	}
	if totalLessons == 0 {
		return 0, nil
	}

	completedLessons, err := s.ProgressRepo.CountCompletedForCourse(enrollment.StudentID, enrollment.CourseID)
	if err != nil {
		return 0, err
	}

	return util.Round2(float64(completedLessons) / float64(totalLessons) * 100), nil
}

// LessonProgressForCourse lists a student's per-lesson progress rows
// within one course, for the course detail view.
func (s *ProgressService) LessonProgressForCourse(studentID, courseID uint) ([]model.LessonProgress, error) {
	return s.ProgressRepo.ListByStudentAndCourse(studentID, courseID)
}
