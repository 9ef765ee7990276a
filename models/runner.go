package models

import (
	"gorm.io/gorm"
)

// Runner is the provider profile of exactly one User. Rating and the
// counters are denormalized; they are maintained by the review and booking
// flows, never written directly by profile updates.
type Runner struct {
	gorm.Model
	UserID       uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	User         User      `json:"user" gorm:"foreignKey:UserID"`
	Bio          string    `json:"bio"`
	HourlyRate   float64   `json:"hourly_rate" gorm:"not null"`
	City         string    `json:"city" gorm:"size:100;not null"`
	State        string    `json:"state" gorm:"size:50"`
	Country      string    `json:"country" gorm:"size:50;not null"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	IsAvailable  bool      `json:"is_available" gorm:"default:true"`
	IsVerified   bool      `json:"is_verified" gorm:"default:false"`
	Rating       float64   `json:"rating" gorm:"default:0"`
	TotalReviews int       `json:"total_reviews" gorm:"default:0"`
	TotalBookings int      `json:"total_bookings" gorm:"default:0"`
	Services     []Service `json:"services" gorm:"many2many:runner_services;"`
}
