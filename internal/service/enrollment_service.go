package service

import (
	"errors"
	"time"

	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/repository"
	"learning_platform_backend/internal/util"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	Progress       *ProgressService
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	progress *ProgressService,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		Progress:       progress,
	}
}

// Enroll creates an enrollment in a published course. Draft and
// archived courses reject enrollment even when the student can see
// them.
func (s *EnrollmentService) Enroll(studentID uint, courseSlug string, now time.Time) (*model.Enrollment, error) {
	course, err := s.CourseRepo.FindBySlug(courseSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if course.Status != model.CoursePublished {
		return nil, util.ErrCourseNotPublished
	}

	if _, err := s.EnrollmentRepo.FindByStudentAndCourse(studentID, course.ID); err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := &model.Enrollment{
		StudentID:  studentID,
		CourseID:   course.ID,
		EnrolledAt: now,
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}
	enrollment.Course = course
	return enrollment, nil
}

// EnrollmentView pairs an enrollment with its live progress percentage.
type EnrollmentView struct {
	model.Enrollment
	ProgressPercentage float64 `json:"progressPercentage"`
}

func (s *EnrollmentService) ListForStudent(studentID uint) ([]EnrollmentView, error) {
	enrollments, err := s.EnrollmentRepo.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}

	views := make([]EnrollmentView, 0, len(enrollments))
	for i := range enrollments {
		pct, err := s.Progress.ProgressPercentage(&enrollments[i])
		if err != nil {
			return nil, err
		}
		views = append(views, EnrollmentView{Enrollment: enrollments[i], ProgressPercentage: pct})
	}
	return views, nil
}

// EnrollmentDetail adds the per-lesson progress rows to the view.
type EnrollmentDetail struct {
	EnrollmentView
	LessonProgress []model.LessonProgress `json:"lessonProgress"`
}

// GetDetail returns one enrollment with live progress. Students only
// see their own enrollments; staff see all.
func (s *EnrollmentService) GetDetail(enrollmentID uint, actor *util.Claims) (*EnrollmentDetail, error) {
	enrollment, err := s.EnrollmentRepo.FindByID(enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEnrollmentNotFound
		}
		return nil, err
	}
	if enrollment.StudentID != actor.UserID && !actor.IsStaff() {
		return nil, util.ErrPermissionDenied
	}

	pct, err := s.Progress.ProgressPercentage(enrollment)
	if err != nil {
		return nil, err
	}
	lessonProgress, err := s.Progress.LessonProgressForCourse(enrollment.StudentID, enrollment.CourseID)
	if err != nil {
		return nil, err
	}

	return &EnrollmentDetail{
		EnrollmentView: EnrollmentView{Enrollment: *enrollment, ProgressPercentage: pct},
		LessonProgress: lessonProgress,
	}, nil
}

// CourseProgressView is the progress readout for one course, addressed
// by slug rather than enrollment id.
type CourseProgressView struct {
	CourseID           uint                   `json:"courseId"`
	CourseSlug         string                 `json:"courseSlug"`
	IsCompleted        bool                   `json:"isCompleted"`
	ProgressPercentage float64                `json:"progressPercentage"`
	LessonProgress     []model.LessonProgress `json:"lessonProgress"`
}

// CourseProgress reports the caller's live progress in a course they
// are enrolled in.
func (s *EnrollmentService) CourseProgress(studentID uint, courseSlug string) (*CourseProgressView, error) {
	course, err := s.CourseRepo.FindBySlug(courseSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	enrollment, err := s.EnrollmentRepo.FindByStudentAndCourse(studentID, course.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	pct, err := s.Progress.ProgressPercentage(enrollment)
	if err != nil {
		return nil, err
	}
	lessonProgress, err := s.Progress.LessonProgressForCourse(studentID, course.ID)
	if err != nil {
		return nil, err
	}

	return &CourseProgressView{
		CourseID:           course.ID,
		CourseSlug:         course.Slug,
		IsCompleted:        enrollment.IsCompleted,
		ProgressPercentage: pct,
		LessonProgress:     lessonProgress,
	}, nil
}

// Complete flips the enrollment's completed flag. This is the only
// place is_completed changes; it is never derived from lesson progress,
// and once set the progress percentage reports 100. Repeat calls keep
// the original completion time.
func (s *EnrollmentService) Complete(enrollmentID uint, actor *util.Claims, now time.Time) (*model.Enrollment, error) {
	enrollment, err := s.EnrollmentRepo.FindByID(enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEnrollmentNotFound
		}
		return nil, err
	}
	if enrollment.StudentID != actor.UserID && !actor.IsStaff() {
		return nil, util.ErrPermissionDenied
	}

	if enrollment.IsCompleted {
		return enrollment, nil
	}

	enrollment.IsCompleted = true
	enrollment.CompletedAt = &now
	if err := s.EnrollmentRepo.Update(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}
