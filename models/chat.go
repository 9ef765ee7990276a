package models

import (
	"gorm.io/gorm"
)

type ChatMessage struct {
	gorm.Model
	BookingID   uint    `json:"booking_id" gorm:"index;not null"`
	Booking     Booking `json:"-" gorm:"foreignKey:BookingID"`
	SenderID    uint    `json:"sender_id" gorm:"not null"`
	Sender      User    `json:"sender" gorm:"foreignKey:SenderID"`
	ReceiverID  uint    `json:"receiver_id" gorm:"not null"`
	Receiver    User    `json:"-" gorm:"foreignKey:ReceiverID"`
	Message     string  `json:"message" gorm:"not null"`
	MessageType string  `json:"message_type" gorm:"size:20;default:text"`
	FileURL     string  `json:"file_url" gorm:"size:255"`
	IsRead      bool    `json:"is_read" gorm:"default:false"`
}
