package model

import "time"

// QuizAttempt rows are append-only; the per-student count against
// Quiz.MaxAttempts gates whether another may be created.
//
// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	StudentID   uint       `gorm:"index:idx_attempt_student_quiz;type:bigint unsigned;not null" json:"studentId"`
	QuizID      uint       `gorm:"index:idx_attempt_student_quiz;type:bigint unsigned;not null" json:"quizId"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Score       int        `gorm:"default:0" json:"score"`
	Passed      bool       `gorm:"default:false" json:"passed"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
