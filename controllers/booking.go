package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/urbanassist/urban-assist/db"
	"github.com/urbanassist/urban-assist/models"
	"github.com/urbanassist/urban-assist/utils"
)

const bookingsPerPage = 20

type BookingInput struct {
	RunnerID       uint     `json:"runner_id" validate:"required"`
	ServiceID      uint     `json:"service_id" validate:"required"`
	Title          string   `json:"title" validate:"required,max=200"`
	Description    string   `json:"description"`
	Location       string   `json:"location" validate:"max=255"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	ScheduledDate  string   `json:"scheduled_date" validate:"required"`
	EstimatedHours float64  `json:"estimated_hours" validate:"required,gt=0"`
	Notes          string   `json:"notes"`
}

// CreateBooking opens a pending booking. The hourly rate is copied from the
// runner at this moment and stays on the booking afterwards.
func CreateBooking(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(BookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var runner models.Runner
	if err := db.DB.First(&runner, input.RunnerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Runner not found",
		})
	}
	if !runner.IsAvailable {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Runner is not available",
		})
	}

	var service models.Service
	if err := db.DB.First(&service, input.ServiceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	scheduled, err := time.Parse(time.RFC3339, input.ScheduledDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date format. Use ISO format.",
		})
	}

	booking := models.Booking{
		UserID:         userID,
		RunnerID:       runner.ID,
		ServiceID:      service.ID,
		Title:          input.Title,
		Description:    input.Description,
		Location:       input.Location,
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
		ScheduledDate:  scheduled,
		EstimatedHours: input.EstimatedHours,
		HourlyRate:     runner.HourlyRate,
		TotalAmount:    input.EstimatedHours * runner.HourlyRate,
		Status:         models.StatusPending,
	}
	booking.Notes = input.Notes

	if err := db.DB.Create(&booking).Error; err != nil {
		log.Error().Err(err).Msg("failed to create booking")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create booking",
		})
	}

	db.DB.Preload("User").Preload("Runner.User").Preload("Service").
		First(&booking, booking.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Booking created successfully",
		"booking": booking,
	})
}

// GetBookings lists the caller's bookings as client or, with as_runner=true,
// as the assigned runner. Newest first, paginated.
func GetBookings(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page, perPage, offset := utils.Pagination(c, bookingsPerPage)

	query := db.DB.Model(&models.Booking{})
	if c.Query("as_runner") == "true" {
		var runner models.Runner
		if err := db.DB.Where("user_id = ?", userID).First(&runner).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Runner profile not found",
			})
		}
		query = query.Where("runner_id = ?", runner.ID)
	} else {
		query = query.Where("user_id = ?", userID)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var bookings []models.Booking
	if err := query.
		Preload("User").Preload("Runner.User").Preload("Service").
		Order("created_at DESC").
		Limit(perPage).
		Offset(offset).
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch bookings",
		})
	}

	return c.JSON(fiber.Map{
		"bookings":     bookings,
		"total":        total,
		"pages":        utils.TotalPages(total, perPage),
		"current_page": page,
		"per_page":     perPage,
	})
}

// GetBooking returns one booking to its participants only.
func GetBooking(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var booking models.Booking
	if err := db.DB.Preload("User").Preload("Runner.User").Preload("Service").
		First(&booking, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}

	if booking.UserID != userID && booking.Runner.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Access denied",
		})
	}
	return c.JSON(booking)
}

// UpdateBookingStatus drives the booking state machine.
func UpdateBookingStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var booking models.Booking
	if err := db.DB.Preload("Runner").First(&booking, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}

	type StatusInput struct {
		Status string `json:"status" validate:"required"`
	}
	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	target := models.BookingStatus(input.Status)
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		return booking.Transition(tx, userID, target)
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotAllowed):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You are not allowed to set this status",
			})
		case errors.Is(err, models.ErrInvalidStatus), errors.Is(err, models.ErrInvalidTransition):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			log.Error().Err(err).Uint("booking", booking.ID).Msg("status transition failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update booking status",
			})
		}
	}

	db.DB.Preload("User").Preload("Runner.User").Preload("Service").
		First(&booking, booking.ID)

	return c.JSON(fiber.Map{
		"message": "Booking status updated to " + input.Status,
		"booking": booking,
	})
}

// UpdateBooking edits descriptive fields while the booking is still pending.
func UpdateBooking(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var booking models.Booking
	if err := db.DB.First(&booking, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}

	if booking.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Access denied",
		})
	}
	if booking.Status != models.StatusPending {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Can only update pending bookings",
		})
	}

	type BookingUpdateInput struct {
		Title          *string  `json:"title"`
		Description    *string  `json:"description"`
		Location       *string  `json:"location"`
		Latitude       *float64 `json:"latitude"`
		Longitude      *float64 `json:"longitude"`
		Notes          *string  `json:"notes"`
		ScheduledDate  *string  `json:"scheduled_date"`
		EstimatedHours *float64 `json:"estimated_hours" validate:"omitempty,gt=0"`
	}
	input := new(BookingUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if input.Title != nil {
		booking.Title = *input.Title
	}
	if input.Description != nil {
		booking.Description = *input.Description
	}
	if input.Location != nil {
		booking.Location = *input.Location
	}
	if input.Latitude != nil {
		booking.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		booking.Longitude = input.Longitude
	}
	if input.Notes != nil {
		booking.Notes = *input.Notes
	}
	if input.ScheduledDate != nil {
		scheduled, err := time.Parse(time.RFC3339, *input.ScheduledDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid date format. Use ISO format.",
			})
		}
		booking.ScheduledDate = scheduled
	}
	if input.EstimatedHours != nil {
		booking.EstimatedHours = *input.EstimatedHours
		booking.RecalculateTotal()
	}

	if err := db.DB.Save(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update booking",
		})
	}

	db.DB.Preload("User").Preload("Runner.User").Preload("Service").
		First(&booking, booking.ID)

	return c.JSON(fiber.Map{
		"message": "Booking updated successfully",
		"booking": booking,
	})
}

// DeleteBooking removes a pending booking; only its client may do so.
func DeleteBooking(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var booking models.Booking
	if err := db.DB.First(&booking, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}

	if booking.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Access denied",
		})
	}
	if booking.Status != models.StatusPending {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Can only delete pending bookings",
		})
	}

	if err := db.DB.Delete(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete booking",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Booking deleted successfully",
	})
}

// GetBookingMessages is the REST view of a booking's chat history: the 50
// most recent messages in chronological order, participants only.
func GetBookingMessages(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var booking models.Booking
	if err := db.DB.Preload("Runner").First(&booking, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}
	if booking.UserID != userID && booking.Runner.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Access denied",
		})
	}

	var messages []models.ChatMessage
	if err := db.DB.Preload("Sender").
		Where("booking_id = ?", booking.ID).
		Order("created_at DESC").
		Limit(50).
		Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch messages",
		})
	}
	// reverse to chronological
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return c.JSON(fiber.Map{
		"messages": messages,
	})
}
