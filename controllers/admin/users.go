package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urbanassist/urban-assist/db"
	"github.com/urbanassist/urban-assist/models"
	"github.com/urbanassist/urban-assist/utils"
)

const adminPerPage = 20

// GetUsers lists users with role and search filters.
func GetUsers(c *fiber.Ctx) error {
	page, perPage, offset := utils.Pagination(c, adminPerPage)

	query := db.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"first_name LIKE ? OR last_name LIKE ? OR email LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.
		Order("created_at DESC").
		Limit(perPage).
		Offset(offset).
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch users",
		})
	}

	return c.JSON(fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"page":     page,
			"pages":    utils.TotalPages(total, perPage),
			"per_page": perPage,
			"total":    total,
		},
	})
}

// ToggleUserStatus flips the active flag on a user account.
func ToggleUserStatus(c *fiber.Ctx) error {
	var user models.User
	if err := db.DB.First(&user, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	user.IsActive = !user.IsActive
	if err := db.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update user",
		})
	}

	message := "User deactivated successfully"
	if user.IsActive {
		message = "User activated successfully"
	}
	return c.JSON(fiber.Map{
		"message":   message,
		"is_active": user.IsActive,
	})
}
