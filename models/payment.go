package models

import (
	"gorm.io/gorm"
)

// Payment is a schema stub; no gateway integration exists.
type Payment struct {
	gorm.Model
	BookingID uint    `json:"booking_id" gorm:"index;not null"`
	Booking   Booking `json:"-" gorm:"foreignKey:BookingID"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency" gorm:"size:3;default:USD"`
	Status    string  `json:"status" gorm:"size:20;default:pending"`
	Reference string  `json:"reference" gorm:"size:100"`
}
