package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/repository"
	"learning_platform_backend/internal/util"
	"learning_platform_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const publishedCoursesCacheKey = "catalog:published_courses"

// CatalogService manages the Course → Module → Lesson hierarchy. The
// published-course list is cached in redis and invalidated on writes;
// anything involving progress or scores is never cached.
type CatalogService struct {
	CourseRepo   *repository.CourseRepository
	CategoryRepo *repository.CategoryRepository
	LessonRepo   *repository.LessonRepository
	Storage      *StorageService
	Redis        *redis.Client
}

func NewCatalogService(
	courseRepo *repository.CourseRepository,
	categoryRepo *repository.CategoryRepository,
	lessonRepo *repository.LessonRepository,
	storage *StorageService,
	rdb *redis.Client,
) *CatalogService {
	return &CatalogService{
		CourseRepo:   courseRepo,
		CategoryRepo: categoryRepo,
		LessonRepo:   lessonRepo,
		Storage:      storage,
		Redis:        rdb,
	}
}

// CourseSummary is the list-view representation with derived counts.
type CourseSummary struct {
	model.Course
	TotalModules int `json:"totalModules"`
	TotalLessons int `json:"totalLessons"`
}

// CourseDetail adds enrollment count to the full nested course.
type CourseDetail struct {
	model.Course
	TotalModules    int   `json:"totalModules"`
	TotalLessons    int   `json:"totalLessons"`
	EnrollmentCount int64 `json:"enrollmentCount"`
}

func (s *CatalogService) ListCourses(filter repository.CourseFilter) ([]CourseSummary, error) {
	cacheable := s.Redis != nil && filter == (repository.CourseFilter{})

	if cacheable {
		if cached, err := s.Redis.Get(context.Background(), publishedCoursesCacheKey).Result(); err == nil {
			var summaries []CourseSummary
			if json.Unmarshal([]byte(cached), &summaries) == nil {
				return summaries, nil
			}
		}
	}

	courses, err := s.CourseRepo.List(filter)
	if err != nil {
		return nil, err
	}

	summaries := make([]CourseSummary, 0, len(courses))
	for i := range courses {
		summary, err := s.summarize(&courses[i])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}

	if cacheable {
		if data, err := json.Marshal(summaries); err == nil {
			if err := s.Redis.Set(context.Background(), publishedCoursesCacheKey, data, 5*time.Minute).Err(); err != nil {
				logger.Log.Warn("course list cache write failed", zap.Error(err))
			}
		}
	}

	return summaries, nil
}

func (s *CatalogService) summarize(course *model.Course) (*CourseSummary, error) {
	totalLessons, err := s.CourseRepo.TotalLessons(course.ID)
	if err != nil {
		return nil, err
	}
	var totalModules int64
	if err := s.CourseRepo.DB.Model(&model.CourseModule{}).Where("course_id = ?", course.ID).Count(&totalModules).Error; err != nil {
		return nil, err
	}
	return &CourseSummary{
		Course:       *course,
		TotalModules: int(totalModules),
		TotalLessons: int(totalLessons),
	}, nil
}

func (s *CatalogService) invalidateCache() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), publishedCoursesCacheKey).Err(); err != nil && err != redis.Nil {
		logger.Log.Warn("course list cache invalidation failed", zap.Error(err))
	}
}

// GetCourse returns the nested course detail, applying the same
// visibility rules as the listing: unpublished courses are only visible
// to their owner and staff.
func (s *CatalogService) GetCourse(slug string, viewer *util.Claims) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if course.Status != model.CoursePublished {
		if viewer == nil || (viewer.UserID != course.InstructorID && viewer.Role != model.Admin) {
			return nil, util.ErrCourseNotFound
		}
	}

	summary, err := s.summarize(course)
	if err != nil {
		return nil, err
	}
	enrollmentCount, err := s.CourseRepo.CountEnrollments(course.ID)
	if err != nil {
		return nil, err
	}

	return &CourseDetail{
		Course:          summary.Course,
		TotalModules:    summary.TotalModules,
		TotalLessons:    summary.TotalLessons,
		EnrollmentCount: enrollmentCount,
	}, nil
}

type CourseRequest struct {
	Title            string                 `json:"title" binding:"required"`
	Slug             string                 `json:"slug" binding:"required"`
	Description      string                 `json:"description"`
	ShortDescription string                 `json:"shortDescription"`
	CategoryID       *uint                  `json:"categoryId"`
	Difficulty       model.CourseDifficulty `json:"difficulty"`
	DurationHours    int                    `json:"durationHours"`
	Price            string                 `json:"price"`
	Status           model.CourseStatus     `json:"status"`
	IsFeatured       bool                   `json:"isFeatured"`
	MetaDescription  string                 `json:"metaDescription"`
	Tags             string                 `json:"tags"`
}

func (s *CatalogService) CreateCourse(instructorID uint, req CourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:            req.Title,
		Slug:             req.Slug,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		InstructorID:     instructorID,
		CategoryID:       req.CategoryID,
		Difficulty:       req.Difficulty,
		DurationHours:    req.DurationHours,
		Price:            req.Price,
		Status:           req.Status,
		IsFeatured:       req.IsFeatured,
		MetaDescription:  req.MetaDescription,
		Tags:             req.Tags,
	}
	if course.Difficulty == "" {
		course.Difficulty = model.Beginner
	}
	if course.Status == "" {
		course.Status = model.CourseDraft
	}
	if course.Price == "" {
		course.Price = "0.00"
	}

	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	s.invalidateCache()
	return course, nil
}

func (s *CatalogService) ownedCourse(slug string, actor *util.Claims) (*model.Course, error) {
	course, err := s.CourseRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if course.InstructorID != actor.UserID && actor.Role != model.Admin {
		return nil, util.ErrPermissionDenied
	}
	return course, nil
}

func (s *CatalogService) UpdateCourse(slug string, actor *util.Claims, req CourseRequest) (*model.Course, error) {
	course, err := s.ownedCourse(slug, actor)
	if err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Slug = req.Slug
	course.Description = req.Description
	course.ShortDescription = req.ShortDescription
	course.CategoryID = req.CategoryID
	if req.Difficulty != "" {
		course.Difficulty = req.Difficulty
	}
	course.DurationHours = req.DurationHours
	if req.Price != "" {
		course.Price = req.Price
	}
	if req.Status != "" {
		course.Status = req.Status
	}
	course.IsFeatured = req.IsFeatured
	course.MetaDescription = req.MetaDescription
	course.Tags = req.Tags

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	s.invalidateCache()
	return course, nil
}

func (s *CatalogService) DeleteCourse(slug string, actor *util.Claims) error {
	course, err := s.ownedCourse(slug, actor)
	if err != nil {
		return err
	}
	if err := s.CourseRepo.Delete(course); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

func (s *CatalogService) UploadThumbnail(slug string, actor *util.Claims, file *multipart.FileHeader) (*model.Course, error) {
	course, err := s.ownedCourse(slug, actor)
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	objectName := fmt.Sprintf("course_thumbnails/%d/%s%s", course.ID, uuid.New().String(), filepath.Ext(file.Filename))
	url, err := s.Storage.Upload(objectName, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	course.Thumbnail = url
	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	s.invalidateCache()
	return course, nil
}

type ModuleRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Order       int    `json:"order" binding:"required,gte=1"`
}

func (s *CatalogService) CreateModule(slug string, actor *util.Claims, req ModuleRequest) (*model.CourseModule, error) {
	course, err := s.ownedCourse(slug, actor)
	if err != nil {
		return nil, err
	}

	m := &model.CourseModule{
		CourseID:    course.ID,
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
	}
	if err := s.CourseRepo.CreateModule(m); err != nil {
		return nil, err
	}
	s.invalidateCache()
	return m, nil
}

func (s *CatalogService) moduleWithOwnership(moduleID uint, actor *util.Claims) (*model.CourseModule, error) {
	m, err := s.CourseRepo.FindModuleByID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(m.CourseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != actor.UserID && actor.Role != model.Admin {
		return nil, util.ErrPermissionDenied
	}
	return m, nil
}

func (s *CatalogService) UpdateModule(moduleID uint, actor *util.Claims, req ModuleRequest) (*model.CourseModule, error) {
	m, err := s.moduleWithOwnership(moduleID, actor)
	if err != nil {
		return nil, err
	}
	m.Title = req.Title
	m.Description = req.Description
	m.Order = req.Order
	if err := s.CourseRepo.UpdateModule(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CatalogService) DeleteModule(moduleID uint, actor *util.Claims) error {
	m, err := s.moduleWithOwnership(moduleID, actor)
	if err != nil {
		return err
	}
	return s.CourseRepo.DeleteModule(m)
}

type LessonRequest struct {
	Title           string            `json:"title" binding:"required"`
	Description     string            `json:"description"`
	ContentType     model.ContentType `json:"contentType"`
	Content         string            `json:"content"`
	VideoURL        string            `json:"videoUrl"`
	DurationMinutes int               `json:"durationMinutes"`
	Order           int               `json:"order" binding:"required,gte=1"`
	IsFree          bool              `json:"isFree"`
}

func (s *CatalogService) CreateLesson(moduleID uint, actor *util.Claims, req LessonRequest) (*model.Lesson, error) {
	m, err := s.moduleWithOwnership(moduleID, actor)
	if err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		ModuleID:        m.ID,
		Title:           req.Title,
		Description:     req.Description,
		ContentType:     req.ContentType,
		Content:         req.Content,
		VideoURL:        req.VideoURL,
		DurationMinutes: req.DurationMinutes,
		Order:           req.Order,
		IsFree:          req.IsFree,
	}
	if lesson.ContentType == "" {
		lesson.ContentType = model.VideoContent
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	s.invalidateCache()
	return lesson, nil
}

func (s *CatalogService) lessonWithOwnership(lessonID uint, actor *util.Claims) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	if _, err := s.moduleWithOwnership(lesson.ModuleID, actor); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CatalogService) UpdateLesson(lessonID uint, actor *util.Claims, req LessonRequest) (*model.Lesson, error) {
	lesson, err := s.lessonWithOwnership(lessonID, actor)
	if err != nil {
		return nil, err
	}
	lesson.Title = req.Title
	lesson.Description = req.Description
	if req.ContentType != "" {
		lesson.ContentType = req.ContentType
	}
	lesson.Content = req.Content
	lesson.VideoURL = req.VideoURL
	lesson.DurationMinutes = req.DurationMinutes
	lesson.Order = req.Order
	lesson.IsFree = req.IsFree
	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CatalogService) DeleteLesson(lessonID uint, actor *util.Claims) error {
	lesson, err := s.lessonWithOwnership(lessonID, actor)
	if err != nil {
		return err
	}
	if err := s.LessonRepo.Delete(lesson); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

func (s *CatalogService) GetLesson(lessonID uint) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	return lesson, nil
}

// CategoryView pairs a category with its course count.
type CategoryView struct {
	model.Category
	CourseCount int64 `json:"courseCount"`
}

func (s *CatalogService) ListCategories() ([]CategoryView, error) {
	categories, err := s.CategoryRepo.List()
	if err != nil {
		return nil, err
	}

	views := make([]CategoryView, 0, len(categories))
	for _, cat := range categories {
		count, err := s.CategoryRepo.CountCourses(cat.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, CategoryView{Category: cat, CourseCount: count})
	}
	return views, nil
}

func (s *CatalogService) CoursesInCategory(slug string) ([]CourseSummary, error) {
	category, err := s.CategoryRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	courses, err := s.CourseRepo.ListByCategory(category.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]CourseSummary, 0, len(courses))
	for i := range courses {
		summary, err := s.summarize(&courses[i])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}
