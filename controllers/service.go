package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urbanassist/urban-assist/db"
	"github.com/urbanassist/urban-assist/models"
)

// GetServices lists active catalog entries, optionally by category.
func GetServices(c *fiber.Ctx) error {
	query := db.DB.Where("is_active = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var services []models.Service
	if err := query.Order("name").Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch services",
		})
	}
	return c.JSON(services)
}

// GetServiceCategories returns the distinct categories of active services.
func GetServiceCategories(c *fiber.Ctx) error {
	var categories []string
	if err := db.DB.Model(&models.Service{}).
		Where("is_active = ?", true).
		Distinct().
		Pluck("category", &categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch categories",
		})
	}
	return c.JSON(categories)
}
