package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusAccepted   BookingStatus = "accepted"
	StatusDeclined   BookingStatus = "declined"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

var (
	// ErrInvalidStatus is returned for a target outside the status enumeration.
	ErrInvalidStatus = errors.New("invalid booking status")
	// ErrInvalidTransition is returned when the target is not reachable from
	// the current status.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrNotAllowed is returned when the actor may not drive the booking to
	// the requested status.
	ErrNotAllowed = errors.New("actor not allowed for this transition")
)

// transitions holds the reachable targets per status. Terminal statuses have
// no entry.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusAccepted, StatusDeclined, StatusCancelled},
	StatusAccepted:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusDeclined || s == StatusCancelled
}

type Booking struct {
	gorm.Model
	UserID         uint          `json:"user_id" gorm:"not null"`
	User           User          `json:"user" gorm:"foreignKey:UserID"`
	RunnerID       uint          `json:"runner_id" gorm:"not null"`
	Runner         Runner        `json:"runner" gorm:"foreignKey:RunnerID"`
	ServiceID      uint          `json:"service_id" gorm:"not null"`
	Service        Service       `json:"service" gorm:"foreignKey:ServiceID"`
	Title          string        `json:"title" gorm:"size:200;not null"`
	Description    string        `json:"description"`
	Location       string        `json:"location" gorm:"size:255"`
	Latitude       *float64      `json:"latitude"`
	Longitude      *float64      `json:"longitude"`
	ScheduledDate  time.Time     `json:"scheduled_date" gorm:"not null"`
	EstimatedHours float64       `json:"estimated_hours" gorm:"not null"`
	HourlyRate     float64       `json:"hourly_rate" gorm:"not null"`
	TotalAmount    float64       `json:"total_amount" gorm:"not null"`
	Status         BookingStatus `json:"status" gorm:"size:20;default:pending"`
	PaymentStatus  string        `json:"payment_status" gorm:"size:20;default:pending"`
	Notes          string        `json:"notes"`
	CompletedAt    *time.Time    `json:"completed_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = StatusPending
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = PaymentPending
	}
	return nil
}

// RecalculateTotal keeps the amount invariant after estimated-hours edits.
// The stored hourly rate is used, not a fresh runner lookup.
func (b *Booking) RecalculateTotal() {
	b.TotalAmount = b.EstimatedHours * b.HourlyRate
}

// AuthorizeTransition is the single policy deciding whether actorID may
// drive the booking to target. runnerUserID is the user behind the assigned
// runner profile. Accept/decline/start/complete belong to the runner;
// cancelling is open to either participant.
func (b *Booking) AuthorizeTransition(actorID, runnerUserID uint, target BookingStatus) error {
	if !target.Valid() {
		return ErrInvalidStatus
	}
	switch target {
	case StatusAccepted, StatusDeclined, StatusInProgress, StatusCompleted:
		if actorID != runnerUserID {
			return ErrNotAllowed
		}
	case StatusCancelled:
		if actorID != b.UserID && actorID != runnerUserID {
			return ErrNotAllowed
		}
	default:
		return ErrInvalidTransition
	}
	for _, next := range transitions[b.Status] {
		if next == target {
			return nil
		}
	}
	return ErrInvalidTransition
}

// Transition applies an authorized status change. The booking must have its
// Runner preloaded. Completion stamps the booking and bumps the runner's
// booking counter in the same transaction.
func (b *Booking) Transition(tx *gorm.DB, actorID uint, target BookingStatus) error {
	if err := b.AuthorizeTransition(actorID, b.Runner.UserID, target); err != nil {
		return err
	}

	b.Status = target
	if target == StatusCompleted {
		now := time.Now().UTC()
		b.CompletedAt = &now
	}
	if err := tx.Omit(clause.Associations).Save(b).Error; err != nil {
		return err
	}

	if target == StatusCompleted {
		if err := tx.Model(&Runner{}).Where("id = ?", b.RunnerID).
			UpdateColumn("total_bookings", gorm.Expr("total_bookings + ?", 1)).Error; err != nil {
			return err
		}
	}
	return nil
}
