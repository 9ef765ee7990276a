package models

import (
	"gorm.io/gorm"
)

type Service struct {
	gorm.Model
	Name        string `json:"name" gorm:"size:100;not null"`
	Description string `json:"description"`
	Category    string `json:"category" gorm:"size:50;not null"`
	Icon        string `json:"icon" gorm:"size:100"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
}
