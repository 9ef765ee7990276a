package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urbanassist/urban-assist/db"
	"github.com/urbanassist/urban-assist/models"
	"github.com/urbanassist/urban-assist/utils"
)

// GetServices lists the whole catalog, inactive entries included.
func GetServices(c *fiber.Ctx) error {
	var services []models.Service
	if err := db.DB.Order("name").Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch services",
		})
	}
	return c.JSON(fiber.Map{
		"services": services,
	})
}

// CreateService adds a catalog entry.
func CreateService(c *fiber.Ctx) error {
	type ServiceInput struct {
		Name        string `json:"name" validate:"required,max=100"`
		Description string `json:"description"`
		Category    string `json:"category" validate:"required,max=50"`
		Icon        string `json:"icon" validate:"max=100"`
		IsActive    *bool  `json:"is_active"`
	}
	input := new(ServiceInput)
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

	service := models.Service{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Icon:        input.Icon,
		IsActive:    true,
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := db.DB.Create(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create service",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Service created successfully",
		"service": service,
	})
}

// ToggleServiceStatus flips the active flag on a catalog entry.
func ToggleServiceStatus(c *fiber.Ctx) error {
	var service models.Service
	if err := db.DB.First(&service, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	service.IsActive = !service.IsActive
	if err := db.DB.Save(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update service",
		})
	}

	message := "Service deactivated successfully"
	if service.IsActive {
		message = "Service activated successfully"
	}
	return c.JSON(fiber.Map{
		"message":   message,
		"is_active": service.IsActive,
	})
}
