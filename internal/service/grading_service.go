package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/repository"
	"learning_platform_backend/internal/util"

	"gorm.io/gorm"
)

// FlexID is a submitted entity id that clients may send as a JSON
// number or string. Comparison always happens on the canonical string
// form.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		*f = FlexID(v)
	case float64:
		*f = FlexID(strconv.FormatInt(int64(v), 10))
	case nil:
		*f = ""
	default:
		return fmt.Errorf("id must be a string or number, got %T", v)
	}
	return nil
}

func (f FlexID) String() string {
	return string(f)
}

func (f FlexID) Matches(id uint) bool {
	return string(f) == strconv.FormatUint(uint64(id), 10)
}

type AnswerSubmission struct {
	QuestionID FlexID `json:"question_id" binding:"required"`
	OptionID   FlexID `json:"option_id"`
}

type QuizSubmissionRequest struct {
	Answers []AnswerSubmission `json:"answers"`
}

type GradingService struct {
	QuizRepo       *repository.QuizRepository
	LessonRepo     *repository.LessonRepository
	EnrollmentRepo *repository.EnrollmentRepository
	AttemptRepo    *repository.QuizAttemptRepository
	DB             *gorm.DB
}

func NewGradingService(
	quizRepo *repository.QuizRepository,
	lessonRepo *repository.LessonRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	attemptRepo *repository.QuizAttemptRepository,
	db *gorm.DB,
) *GradingService {
	return &GradingService{
		QuizRepo:       quizRepo,
		LessonRepo:     lessonRepo,
		EnrollmentRepo: enrollmentRepo,
		AttemptRepo:    attemptRepo,
		DB:             db,
	}
}

// SubmitAttempt grades a student's answers against the quiz and
// persists the attempt. The attempt-count check and the insert share
// one transaction so concurrent submissions cannot exceed MaxAttempts.
func (s *GradingService) SubmitAttempt(studentID, quizID uint, answers []AnswerSubmission, now time.Time) (*model.QuizAttempt, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	courseID, err := s.LessonRepo.CourseID(quiz.LessonID)
	if err != nil {
		return nil, err
	}

	if _, err := s.EnrollmentRepo.FindByStudentAndCourse(studentID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	var attempt *model.QuizAttempt
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		count, err := s.AttemptRepo.CountByStudentAndQuiz(tx, studentID, quizID)
		if err != nil {
			return err
		}
		if count >= int64(quiz.MaxAttempts) {
			return util.ErrAttemptLimitExceeded
		}

		score := gradeAnswers(quiz, answers)
		passed := score >= quiz.PassingScore

		attempt = &model.QuizAttempt{
			StudentID:   studentID,
			QuizID:      quizID,
			StartedAt:   now,
			CompletedAt: &now,
			Score:       score,
			Passed:      passed,
		}
		return s.AttemptRepo.Create(tx, attempt)
	})
	if err != nil {
		return nil, err
	}

	return attempt, nil
}

// gradeAnswers computes the integer score 0..100. Only multiple choice
// questions are evaluated; true/false and short answer are iterated but
// never marked correct, and answers referencing questions outside the
// quiz are ignored.
func gradeAnswers(quiz *model.Quiz, answers []AnswerSubmission) int {
	totalQuestions := len(quiz.Questions)
	correctAnswers := 0

	for _, question := range quiz.Questions {
		submitted, ok := findAnswer(answers, question.ID)
		if !ok {
			continue
		}

		switch question.QuestionType {
		case model.MultipleChoice:
			correct := correctOption(question.Options)
			if correct != nil && submitted.OptionID.Matches(correct.ID) {
				correctAnswers++
			}
		case model.TrueFalse:
			// Not evaluated.
		case model.ShortAnswer:
			// Not auto-graded.
		}
	}

	return util.RoundPercent(correctAnswers, totalQuestions)
}

func findAnswer(answers []AnswerSubmission, questionID uint) (AnswerSubmission, bool) {
	for _, a := range answers {
		if a.QuestionID.Matches(questionID) {
			return a, true
		}
	}
	return AnswerSubmission{}, false
}

func correctOption(options []model.QuizOption) *model.QuizOption {
	for i := range options {
		if options[i].IsCorrect {
			return &options[i]
		}
	}
	return nil
}
