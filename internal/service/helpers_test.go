package service

import (
	"fmt"
	"testing"
	"time"

	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/repository"
	"learning_platform_backend/pkg/database"
	"learning_platform_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	// A second pooled connection would see an empty in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixtures struct {
	db *gorm.DB

	users       *repository.UserRepository
	courses     *repository.CourseRepository
	lessons     *repository.LessonRepository
	quizzes     *repository.QuizRepository
	enrollments *repository.EnrollmentRepository
	progress    *repository.ProgressRepository
	attempts    *repository.QuizAttemptRepository
}

func newFixtures(t *testing.T) *fixtures {
	db := newTestDB(t)
	return &fixtures{
		db:          db,
		users:       repository.NewUserRepository(db),
		courses:     repository.NewCourseRepository(db),
		lessons:     repository.NewLessonRepository(db),
		quizzes:     repository.NewQuizRepository(db),
		enrollments: repository.NewEnrollmentRepository(db),
		progress:    repository.NewProgressRepository(db),
		attempts:    repository.NewQuizAttemptRepository(db),
	}
}

func (f *fixtures) createUser(t *testing.T, name string, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hashed",
		Role:     role,
	}
	if err := f.users.Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// createCourse builds a published course with one module holding the
// given number of lessons.
func (f *fixtures) createCourse(t *testing.T, instructorID uint, slug string, lessonCount int) (*model.Course, []model.Lesson) {
	t.Helper()
	course := &model.Course{
		Title:        "Course " + slug,
		Slug:         slug,
		InstructorID: instructorID,
		Difficulty:   model.Beginner,
		Status:       model.CoursePublished,
		Price:        "0.00",
	}
	if err := f.courses.Create(course); err != nil {
		t.Fatalf("create course: %v", err)
	}

	m := &model.CourseModule{
		CourseID: course.ID,
		Title:    "Module 1",
		Order:    1,
	}
	if err := f.courses.CreateModule(m); err != nil {
		t.Fatalf("create module: %v", err)
	}

	lessons := make([]model.Lesson, 0, lessonCount)
	for i := 0; i < lessonCount; i++ {
		lesson := model.Lesson{
			ModuleID:    m.ID,
			Title:       fmt.Sprintf("Lesson %d", i+1),
			ContentType: model.TextContent,
			Order:       i + 1,
		}
		if err := f.lessons.Create(&lesson); err != nil {
			t.Fatalf("create lesson: %v", err)
		}
		lessons = append(lessons, lesson)
	}
	return course, lessons
}

func (f *fixtures) enroll(t *testing.T, studentID, courseID uint) *model.Enrollment {
	t.Helper()
	enrollment := &model.Enrollment{
		StudentID:  studentID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
	}
	if err := f.enrollments.Create(enrollment); err != nil {
		t.Fatalf("create enrollment: %v", err)
	}
	return enrollment
}

// createQuiz attaches a quiz to the lesson with the given number of
// multiple choice questions. The first option of each question is the
// correct one.
func (f *fixtures) createQuiz(t *testing.T, lessonID uint, questionCount int) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{
		LessonID:         lessonID,
		Title:            "Checkpoint",
		TimeLimitMinutes: 30,
		PassingScore:     70,
		MaxAttempts:      3,
	}
	for i := 0; i < questionCount; i++ {
		quiz.Questions = append(quiz.Questions, model.QuizQuestion{
			QuestionText: fmt.Sprintf("Question %d", i+1),
			QuestionType: model.MultipleChoice,
			Points:       1,
			Order:        i + 1,
			Options: []model.QuizOption{
				{OptionText: "right", IsCorrect: true, Order: 1},
				{OptionText: "wrong", IsCorrect: false, Order: 2},
			},
		})
	}
	if err := f.quizzes.Create(quiz); err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return quiz
}

func (f *fixtures) gradingService() *GradingService {
	return NewGradingService(f.quizzes, f.lessons, f.enrollments, f.attempts, f.db)
}

func (f *fixtures) progressService() *ProgressService {
	return NewProgressService(f.courses, f.progress)
}

func (f *fixtures) lessonService() *LessonService {
	return NewLessonService(f.lessons, f.courses, f.enrollments, f.progress, &StorageService{Provider: &LocalStorageProvider{}})
}

func (f *fixtures) enrollmentService() *EnrollmentService {
	return NewEnrollmentService(f.enrollments, f.courses, f.progressService())
}

// answerFor picks the matching option id for a loaded question.
func answerFor(question model.QuizQuestion, correct bool) AnswerSubmission {
	var optionID uint
	for _, opt := range question.Options {
		if opt.IsCorrect == correct {
			optionID = opt.ID
			break
		}
	}
	return AnswerSubmission{
		QuestionID: FlexID(fmt.Sprintf("%d", question.ID)),
		OptionID:   FlexID(fmt.Sprintf("%d", optionID)),
	}
}
