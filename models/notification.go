package models

import (
	"gorm.io/gorm"
)

// Notification is persisted schema only; no dispatch logic is implemented.
type Notification struct {
	gorm.Model
	UserID  uint   `json:"user_id" gorm:"index;not null"`
	User    User   `json:"-" gorm:"foreignKey:UserID"`
	Type    string `json:"type" gorm:"size:50"`
	Title   string `json:"title" gorm:"size:200"`
	Body    string `json:"body"`
	IsRead  bool   `json:"is_read" gorm:"default:false"`
	Payload string `json:"payload"`
}
