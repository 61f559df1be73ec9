package model

type ContentType string

const (
	VideoContent      ContentType = "video"
	TextContent       ContentType = "text"
	QuizContent       ContentType = "quiz"
	AssignmentContent ContentType = "assignment"
	DocumentContent   ContentType = "document"
)

// swagger:model Lesson
type Lesson struct {
	BaseModel
	ModuleID        uint        `gorm:"uniqueIndex:idx_module_order;type:bigint unsigned;not null" json:"moduleId"`
	Title           string      `gorm:"size:200;not null" json:"title"`
	Description     string      `gorm:"type:text" json:"description"`
	ContentType     ContentType `gorm:"size:20;default:'video'" json:"contentType"`
	Content         string      `gorm:"type:text" json:"content"`
	VideoURL        string      `gorm:"size:255" json:"videoUrl"`
	DurationMinutes int         `gorm:"default:0" json:"durationMinutes"`
	Order           int         `gorm:"uniqueIndex:idx_module_order;default:1" json:"order"`
	IsFree          bool        `gorm:"default:false" json:"isFree"`
	Quiz            *Quiz       `gorm:"foreignKey:LessonID" json:"quiz,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}
