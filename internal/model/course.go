package model

type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
	CourseArchived  CourseStatus = "archived"
)

type CourseDifficulty string

const (
	Beginner     CourseDifficulty = "beginner"
	Intermediate CourseDifficulty = "intermediate"
	Advanced     CourseDifficulty = "advanced"
)

// swagger:model Course
type Course struct {
	BaseModel
	Title            string           `gorm:"size:200;not null" json:"title"`
	Slug             string           `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Description      string           `gorm:"type:text" json:"description"`
	ShortDescription string           `gorm:"size:300" json:"shortDescription"`
	InstructorID     uint             `gorm:"index;type:bigint unsigned;not null" json:"instructorId"`
	Instructor       *User            `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	CategoryID       *uint            `gorm:"index;type:bigint unsigned" json:"categoryId,omitempty"`
	Category         *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Thumbnail        string           `gorm:"size:255" json:"thumbnail"`
	Difficulty       CourseDifficulty `gorm:"size:20;default:'beginner'" json:"difficulty"`
	DurationHours    int              `gorm:"default:0" json:"durationHours"`
	Price            string           `gorm:"type:decimal(10,2);default:0.00" json:"price"`
	Status           CourseStatus     `gorm:"size:20;default:'draft';index" json:"status"`
	IsFeatured       bool             `gorm:"default:false" json:"isFeatured"`
	MetaDescription  string           `gorm:"size:160" json:"metaDescription"`
	Tags             string           `gorm:"size:500" json:"tags"`
	Modules          []CourseModule   `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model CourseModule
type CourseModule struct {
	BaseModel
	CourseID    uint     `gorm:"uniqueIndex:idx_course_order;type:bigint unsigned;not null" json:"courseId"`
	Title       string   `gorm:"size:200;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Order       int      `gorm:"uniqueIndex:idx_course_order;default:1" json:"order"`
	Lessons     []Lesson `gorm:"foreignKey:ModuleID" json:"lessons,omitempty"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}
