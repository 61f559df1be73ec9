package repository

import (
	"learning_platform_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// CourseFilter narrows the course listing. Zero values mean "no filter".
type CourseFilter struct {
	CategorySlug string
	Difficulty   string
	FeaturedOnly bool
	Search       string

	// Visibility: anonymous callers see published courses only,
	// authenticated non-staff additionally see their own, staff see all.
	ViewerID uint
	IsStaff  bool
}

func (r *CourseRepository) List(filter CourseFilter) ([]model.Course, error) {
	query := r.DB.Model(&model.Course{}).
		Preload("Instructor").
		Preload("Category")

	if !filter.IsStaff {
		if filter.ViewerID == 0 {
			query = query.Where("status = ?", model.CoursePublished)
		} else {
			query = query.Where("status = ? OR instructor_id = ?", model.CoursePublished, filter.ViewerID)
		}
	}

	if filter.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = courses.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ? OR tags LIKE ?", like, like, like)
	}

	var courses []model.Course
	err := query.Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) ListByCategory(categoryID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Preload("Instructor").Preload("Category").
		Where("category_id = ? AND status = ?", categoryID, model.CoursePublished).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(course *model.Course) error {
	return r.DB.Delete(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	if err := r.DB.First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindBySlug(slug string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Instructor").
		Preload("Category").
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("course_modules.`order`")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.`order`")
		}).
		Where("slug = ?", slug).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// TotalLessons derives the lesson count across all modules of a course.
// Never stored; the progress aggregator depends on it staying live.
func (r *CourseRepository) TotalLessons(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("course_modules.course_id = ? AND course_modules.deleted_at IS NULL", courseID).
		Count(&count).Error
	return count, err
}

func (r *CourseRepository) CountEnrollments(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (r *CourseRepository) CreateModule(m *model.CourseModule) error {
	return r.DB.Create(m).Error
}

func (r *CourseRepository) UpdateModule(m *model.CourseModule) error {
	return r.DB.Save(m).Error
}

func (r *CourseRepository) DeleteModule(m *model.CourseModule) error {
	return r.DB.Delete(m).Error
}

func (r *CourseRepository) FindModuleByID(id uint) (*model.CourseModule, error) {
	var m model.CourseModule
	if err := r.DB.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
