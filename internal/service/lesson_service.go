package service

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/repository"
	"learning_platform_backend/internal/util"
	"learning_platform_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LessonService struct {
	LessonRepo     *repository.LessonRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ProgressRepo   *repository.ProgressRepository
	Storage        *StorageService
}

func NewLessonService(
	lessonRepo *repository.LessonRepository,
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	progressRepo *repository.ProgressRepository,
	storage *StorageService,
) *LessonService {
	return &LessonService{
		LessonRepo:     lessonRepo,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		ProgressRepo:   progressRepo,
		Storage:        storage,
	}
}

// MarkComplete upserts the student's progress row for a lesson as
// completed. Requires an enrollment in the owning course; repeat calls
// are idempotent.
func (s *LessonService) MarkComplete(studentID, lessonID uint, now time.Time) (*model.LessonProgress, error) {
	courseID, err := s.LessonRepo.CourseID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	if _, err := s.EnrollmentRepo.FindByStudentAndCourse(studentID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	progress, err := s.ProgressRepo.FindByStudentAndLesson(studentID, lessonID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		progress = &model.LessonProgress{
			StudentID:    studentID,
			LessonID:     lessonID,
			IsCompleted:  true,
			CompletedAt:  &now,
			LastAccessed: now,
		}
		if err := s.ProgressRepo.Create(progress); err != nil {
			return nil, err
		}
		return progress, nil
	}

	progress.IsCompleted = true
	progress.CompletedAt = &now
	progress.LastAccessed = now
	if err := s.ProgressRepo.Update(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// TrackTime accumulates minutes spent on a lesson. Existing rows are
// added to, never overwritten. No enrollment is required for time
// tracking (free preview lessons are trackable too).
func (s *LessonService) TrackTime(studentID, lessonID uint, minutes int, now time.Time) (*model.LessonProgress, error) {
	if _, err := s.LessonRepo.CourseID(lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	progress, err := s.ProgressRepo.FindByStudentAndLesson(studentID, lessonID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		progress = &model.LessonProgress{
			StudentID:        studentID,
			LessonID:         lessonID,
			TimeSpentMinutes: minutes,
			LastAccessed:     now,
		}
		if err := s.ProgressRepo.Create(progress); err != nil {
			return nil, err
		}
		return progress, nil
	}

	progress.TimeSpentMinutes += minutes
	progress.LastAccessed = now
	if err := s.ProgressRepo.Update(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// UploadVideo stores a lesson video and fills DurationMinutes from the
// probed container metadata. Only the course owner or an admin may
// upload.
func (s *LessonService) UploadVideo(actor *util.Claims, lessonID uint, file *multipart.FileHeader) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	courseID, err := s.LessonRepo.CourseID(lessonID)
	if err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != actor.UserID && actor.Role != model.Admin {
		return nil, util.ErrPermissionDenied
	}

	tmpPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(file.Filename))
	if err := saveUploadedFile(file, tmpPath); err != nil {
		return nil, err
	}
	defer os.Remove(tmpPath)

	objectName := fmt.Sprintf("lesson_videos/%d/%s%s", lessonID, uuid.New().String(), filepath.Ext(file.Filename))
	url, err := s.Storage.UploadFile(tmpPath, objectName, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	lesson.VideoURL = url
	if info, err := util.ProbeVideo(tmpPath); err == nil {
		lesson.DurationMinutes = info.DurationMinutes()
	} else {
		logger.Log.Warn("video probe failed, duration left unchanged",
			zap.Uint("lessonId", lessonID), zap.Error(err))
	}

	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func saveUploadedFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.ReadFrom(src)
	return err
}
