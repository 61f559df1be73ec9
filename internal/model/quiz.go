package model

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortAnswer    QuestionType = "short_answer"
)

// swagger:model Quiz
type Quiz struct {
	BaseModel
	LessonID         uint           `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"lessonId"`
	Title            string         `gorm:"size:200;not null" json:"title"`
	Description      string         `gorm:"type:text" json:"description"`
	TimeLimitMinutes int            `gorm:"default:30" json:"timeLimitMinutes"`
	PassingScore     int            `gorm:"default:70" json:"passingScore"`
	MaxAttempts      int            `gorm:"default:3" json:"maxAttempts"`
	Questions        []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	QuizID       uint         `gorm:"index;type:bigint unsigned;not null" json:"quizId"`
	QuestionText string       `gorm:"type:text;not null" json:"questionText"`
	QuestionType QuestionType `gorm:"size:20;default:'multiple_choice'" json:"questionType"`
	Points       int          `gorm:"default:1" json:"points"`
	Order        int          `gorm:"default:1" json:"order"`
	Options      []QuizOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// swagger:model QuizOption
type QuizOption struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned;not null" json:"questionId"`
	OptionText string `gorm:"size:500;not null" json:"optionText"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
	Order      int    `gorm:"default:1" json:"order"`
}

func (QuizOption) TableName() string {
	return "quiz_options"
}
