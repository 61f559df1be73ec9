package repository

import (
	"learning_platform_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

// FindByID loads a quiz with its questions and options in display order.
func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("quiz_questions.`order`")
	}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_options.`order`")
		}).
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) FindByLesson(lessonID uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Where("lesson_id = ?", lessonID).First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) CreateQuestion(question *model.QuizQuestion) error {
	return r.DB.Create(question).Error
}

func (r *QuizRepository) FindQuestionByID(id uint) (*model.QuizQuestion, error) {
	var question model.QuizQuestion
	err := r.DB.Preload("Options").First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// ReplaceQuestionOptions rewrites a question's option set in one
// transaction, mirroring the update semantics of the admin API.
func (r *QuizRepository) ReplaceQuestionOptions(question *model.QuizQuestion, options []model.QuizOption) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(question).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&model.QuizOption{}).Error; err != nil {
			return err
		}
		for i := range options {
			options[i].ID = 0
			options[i].QuestionID = question.ID
			if err := tx.Create(&options[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
