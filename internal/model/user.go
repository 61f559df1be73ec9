package model

import "time"

type UserRole string

const (
	Student    UserRole = "student"
	Instructor UserRole = "instructor"
	Admin      UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"size:20;default:'student';index" json:"role"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"autoCreateTime" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsStaff() bool {
	return u.Role == Admin
}
