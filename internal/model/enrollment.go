package model

import "time"

// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	StudentID   uint       `gorm:"uniqueIndex:idx_student_course;type:bigint unsigned;not null" json:"studentId"`
	Student     *User      `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	CourseID    uint       `gorm:"uniqueIndex:idx_student_course;type:bigint unsigned;not null" json:"courseId"`
	Course      *Course    `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	EnrolledAt  time.Time  `json:"enrolledAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	// Flipped only by the explicit completion action, never derived
	// from lesson progress.
	IsCompleted bool `gorm:"default:false" json:"isCompleted"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
