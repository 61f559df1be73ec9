package model

// swagger:model Category
type Category struct {
	BaseModel
	Name        string `gorm:"size:100;unique;not null" json:"name"`
	Slug        string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
}

func (Category) TableName() string {
	return "categories"
}
