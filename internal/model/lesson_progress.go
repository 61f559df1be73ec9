package model

import "time"

// swagger:model LessonProgress
type LessonProgress struct {
	BaseModel
	StudentID   uint       `gorm:"uniqueIndex:idx_student_lesson;type:bigint unsigned;not null" json:"studentId"`
	LessonID    uint       `gorm:"uniqueIndex:idx_student_lesson;type:bigint unsigned;not null" json:"lessonId"`
	Lesson      *Lesson    `gorm:"foreignKey:LessonID" json:"lesson,omitempty"`
	IsCompleted bool       `gorm:"default:false" json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	// Accumulates across track-time calls, never overwritten.
	TimeSpentMinutes int       `gorm:"default:0" json:"timeSpentMinutes"`
	LastAccessed     time.Time `json:"lastAccessed"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
