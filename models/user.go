package models

import (
	"time"
)

const (
	RoleUser      = "user"
	RoleRunner    = "runner"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:80;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:120;not null"`
	Password     string    `json:"-" gorm:"size:255;not null"`
	FirstName    string    `json:"first_name" gorm:"size:50;not null"`
	LastName     string    `json:"last_name" gorm:"size:50;not null"`
	Phone        string    `json:"phone" gorm:"size:20"`
	ProfileImage string    `json:"profile_image" gorm:"size:255"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	IsVerified   bool      `json:"is_verified" gorm:"default:false"`
	Role         string    `json:"role" gorm:"size:20;default:user"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullName is the display name used in chat payloads and admin listings.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
