package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urbanassist/urban-assist/db"
	"github.com/urbanassist/urban-assist/models"
	"github.com/urbanassist/urban-assist/utils"
)

// GetBookings lists all bookings with joined participant summaries.
func GetBookings(c *fiber.Ctx) error {
	page, perPage, offset := utils.Pagination(c, adminPerPage)

	query := db.DB.Model(&models.Booking{})
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

	items := make([]fiber.Map, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, fiber.Map{
			"id":           b.ID,
			"title":        b.Title,
			"status":       b.Status,
			"total_amount": b.TotalAmount,
			"created_at":   b.CreatedAt,
			"user": fiber.Map{
				"id":    b.User.ID,
				"name":  b.User.FullName(),
				"email": b.User.Email,
			},
			"runner": fiber.Map{
				"id":    b.Runner.User.ID,
				"name":  b.Runner.User.FullName(),
				"email": b.Runner.User.Email,
			},
			"service": fiber.Map{
				"id":   b.Service.ID,
				"name": b.Service.Name,
			},
		})
	}

	return c.JSON(fiber.Map{
		"bookings": items,
		"pagination": fiber.Map{
			"page":     page,
			"pages":    utils.TotalPages(total, perPage),
			"per_page": perPage,
			"total":    total,
		},
	})
}
