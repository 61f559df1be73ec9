package service

import (
	"errors"

	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/repository"
	"learning_platform_backend/internal/util"

	"gorm.io/gorm"
)

// QuizService covers quiz authoring and retrieval. Scoring lives in
// GradingService.
type QuizService struct {
	QuizRepo    *repository.QuizRepository
	LessonRepo  *repository.LessonRepository
	CourseRepo  *repository.CourseRepository
	AttemptRepo *repository.QuizAttemptRepository
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	lessonRepo *repository.LessonRepository,
	courseRepo *repository.CourseRepository,
	attemptRepo *repository.QuizAttemptRepository,
) *QuizService {
	return &QuizService{
		QuizRepo:    quizRepo,
		LessonRepo:  lessonRepo,
		CourseRepo:  courseRepo,
		AttemptRepo: attemptRepo,
	}
}

func (s *QuizService) GetQuiz(quizID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) quizOwnership(quizID uint, actor *util.Claims) (*model.Quiz, error) {
	quiz, err := s.GetQuiz(quizID)
	if err != nil {
		return nil, err
	}
	if err := s.lessonOwnership(quiz.LessonID, actor); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) lessonOwnership(lessonID uint, actor *util.Claims) error {
	courseID, err := s.LessonRepo.CourseID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrLessonNotFound
		}
		return err
	}
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return err
	}
	if course.InstructorID != actor.UserID && actor.Role != model.Admin {
		return util.ErrPermissionDenied
	}
	return nil
}

type QuizRequest struct {
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description"`
	TimeLimitMinutes int    `json:"timeLimitMinutes"`
	PassingScore     int    `json:"passingScore" binding:"omitempty,gte=0,lte=100"`
	MaxAttempts      int    `json:"maxAttempts" binding:"omitempty,gte=1"`
}

// CreateQuiz attaches a quiz to a lesson. A lesson carries at most one
// quiz; a second create is rejected.
func (s *QuizService) CreateQuiz(lessonID uint, actor *util.Claims, req QuizRequest) (*model.Quiz, error) {
	if err := s.lessonOwnership(lessonID, actor); err != nil {
		return nil, err
	}

	if _, err := s.QuizRepo.FindByLesson(lessonID); err == nil {
		return nil, util.ErrQuizExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	quiz := &model.Quiz{
		LessonID:         lessonID,
		Title:            req.Title,
		Description:      req.Description,
		TimeLimitMinutes: req.TimeLimitMinutes,
		PassingScore:     req.PassingScore,
		MaxAttempts:      req.MaxAttempts,
	}
	if quiz.TimeLimitMinutes == 0 {
		quiz.TimeLimitMinutes = 30
	}
	if quiz.PassingScore == 0 {
		quiz.PassingScore = 70
	}
	if quiz.MaxAttempts == 0 {
		quiz.MaxAttempts = 3
	}

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) UpdateQuiz(quizID uint, actor *util.Claims, req QuizRequest) (*model.Quiz, error) {
	quiz, err := s.quizOwnership(quizID, actor)
	if err != nil {
		return nil, err
	}

	quiz.Title = req.Title
	quiz.Description = req.Description
	if req.TimeLimitMinutes > 0 {
		quiz.TimeLimitMinutes = req.TimeLimitMinutes
	}
	if req.PassingScore > 0 {
		quiz.PassingScore = req.PassingScore
	}
	if req.MaxAttempts > 0 {
		quiz.MaxAttempts = req.MaxAttempts
	}

	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

type OptionRequest struct {
	OptionText string `json:"optionText" binding:"required"`
	IsCorrect  bool   `json:"isCorrect"`
	Order      int    `json:"order"`
}

type QuestionRequest struct {
	QuestionText string             `json:"questionText" binding:"required"`
	QuestionType model.QuestionType `json:"questionType"`
	Points       int                `json:"points"`
	Order        int                `json:"order"`
	Options      []OptionRequest    `json:"options"`
}

func (s *QuizService) AddQuestion(quizID uint, actor *util.Claims, req QuestionRequest) (*model.QuizQuestion, error) {
	quiz, err := s.quizOwnership(quizID, actor)
	if err != nil {
		return nil, err
	}

	question := &model.QuizQuestion{
		QuizID:       quiz.ID,
		QuestionText: req.QuestionText,
		QuestionType: req.QuestionType,
		Points:       req.Points,
		Order:        req.Order,
	}
	if question.QuestionType == "" {
		question.QuestionType = model.MultipleChoice
	}
	if question.Points == 0 {
		question.Points = 1
	}
	for _, opt := range req.Options {
		question.Options = append(question.Options, model.QuizOption{
			OptionText: opt.OptionText,
			IsCorrect:  opt.IsCorrect,
			Order:      opt.Order,
		})
	}

	if err := s.QuizRepo.CreateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

// UpdateQuestion replaces the question text and its entire option set.
func (s *QuizService) UpdateQuestion(questionID uint, actor *util.Claims, req QuestionRequest) (*model.QuizQuestion, error) {
	question, err := s.QuizRepo.FindQuestionByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if _, err := s.quizOwnership(question.QuizID, actor); err != nil {
		return nil, err
	}

	question.QuestionText = req.QuestionText
	if req.QuestionType != "" {
		question.QuestionType = req.QuestionType
	}
	if req.Points > 0 {
		question.Points = req.Points
	}
	question.Order = req.Order

	options := make([]model.QuizOption, 0, len(req.Options))
	for _, opt := range req.Options {
		options = append(options, model.QuizOption{
			OptionText: opt.OptionText,
			IsCorrect:  opt.IsCorrect,
			Order:      opt.Order,
		})
	}
	question.Options = nil

	if err := s.QuizRepo.ReplaceQuestionOptions(question, options); err != nil {
		return nil, err
	}
	return s.QuizRepo.FindQuestionByID(questionID)
}

// ListAttempts returns a student's attempt history for one quiz, newest
// first.
func (s *QuizService) ListAttempts(studentID, quizID uint) ([]model.QuizAttempt, error) {
	if _, err := s.GetQuiz(quizID); err != nil {
		return nil, err
	}
	return s.AttemptRepo.ListByStudentAndQuiz(studentID, quizID)
}

// ListAllAttempts returns a student's attempts across every quiz.
func (s *QuizService) ListAllAttempts(studentID uint) ([]model.QuizAttempt, error) {
	return s.AttemptRepo.ListByStudent(studentID)
}
