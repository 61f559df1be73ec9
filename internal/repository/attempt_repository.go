package repository

import (
	"learning_platform_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuizAttemptRepository struct {
	DB *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) *QuizAttemptRepository {
	return &QuizAttemptRepository{DB: db}
}

// CountByStudentAndQuiz counts prior attempts inside the caller's
// transaction. On MySQL the rows are locked so a concurrent submission
// cannot slip past the attempt limit between the count and the insert;
// sqlite has no row locks and serializes writers anyway.
func (r *QuizAttemptRepository) CountByStudentAndQuiz(tx *gorm.DB, studentID, quizID uint) (int64, error) {
	query := tx.Model(&model.QuizAttempt{}).
		Where("student_id = ? AND quiz_id = ?", studentID, quizID)
	if tx.Dialector.Name() == "mysql" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *QuizAttemptRepository) Create(tx *gorm.DB, attempt *model.QuizAttempt) error {
	return tx.Create(attempt).Error
}

func (r *QuizAttemptRepository) ListByStudent(studentID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("student_id = ?", studentID).
		Order("started_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *QuizAttemptRepository) ListByStudentAndQuiz(studentID, quizID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("student_id = ? AND quiz_id = ?", studentID, quizID).
		Order("started_at DESC").
		Find(&attempts).Error
	return attempts, err
}
