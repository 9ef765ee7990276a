package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/urbanassist/urban-assist/db"
	"github.com/urbanassist/urban-assist/models"
	"github.com/urbanassist/urban-assist/utils"
)

const runnersPerPage = 12

// GetRunners is the public runner directory with filters and pagination.
func GetRunners(c *fiber.Ctx) error {
	page, perPage, offset := utils.Pagination(c, runnersPerPage)

	query := db.DB.Model(&models.Runner{}).
		Joins("JOIN users ON users.id = runners.user_id").
		Where("users.is_active = ?", true)

	if city := c.Query("city"); city != "" {
		query = query.Where("runners.city ILIKE ?", "%"+city+"%")
	}
	if serviceID := c.QueryInt("service_id"); serviceID > 0 {
		query = query.
			Joins("JOIN runner_services ON runner_services.runner_id = runners.id").
			Where("runner_services.service_id = ?", serviceID)
	}
	if minRating := c.QueryFloat("min_rating"); minRating > 0 {
		query = query.Where("runners.rating >= ?", minRating)
	}
	if maxRate := c.QueryFloat("max_rate"); maxRate > 0 {
		query = query.Where("runners.hourly_rate <= ?", maxRate)
	}
	if c.Query("available_only", "true") == "true" {
		query = query.Where("runners.is_available = ?", true)
	}

	var total int64
	query.Count(&total)

	var runners []models.Runner
	if err := query.
		Preload("User").
		Preload("Services").
		Order("runners.rating DESC, runners.total_reviews DESC").
		Limit(perPage).
		Offset(offset).
		Find(&runners).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch runners",
		})
	}

	return c.JSON(fiber.Map{
		"runners":      runners,
		"total":        total,
		"pages":        utils.TotalPages(total, perPage),
		"current_page": page,
		"per_page":     perPage,
	})
}

// GetRunner returns one runner's public profile.
func GetRunner(c *fiber.Ctx) error {
	var runner models.Runner
	if err := db.DB.Preload("User").Preload("Services").
		First(&runner, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Runner not found",
		})
	}
	return c.JSON(runner)
}

// GetRunnerProfile returns the caller's own runner profile.
func GetRunnerProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var runner models.Runner
	if err := db.DB.Preload("User").Preload("Services").
		Where("user_id = ?", userID).First(&runner).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Runner profile not found",
		})
	}
	return c.JSON(runner)
}

type RunnerProfileInput struct {
	Bio        string   `json:"bio"`
	HourlyRate float64  `json:"hourly_rate" validate:"required,gt=0"`
	City       string   `json:"city" validate:"required,max=100"`
	State      string   `json:"state" validate:"max=50"`
	Country    string   `json:"country" validate:"required,max=50"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	ServiceIDs []uint   `json:"service_ids"`
}

// CreateRunnerProfile converts the caller into a runner. One profile per
// user.
func CreateRunnerProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var existing models.Runner
	if db.DB.Where("user_id = ?", userID).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Runner profile already exists",
		})
	}

	input := new(RunnerProfileInput)
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

	runner := models.Runner{
		UserID:      userID,
		Bio:         input.Bio,
		HourlyRate:  input.HourlyRate,
		City:        input.City,
		State:       input.State,
		Country:     input.Country,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		IsAvailable: true,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&runner).Error; err != nil {
			return err
		}
		if len(input.ServiceIDs) > 0 {
			var services []models.Service
			if err := tx.Where("id IN ?", input.ServiceIDs).Find(&services).Error; err != nil {
				return err
			}
			if err := tx.Model(&runner).Association("Services").Append(services); err != nil {
				return err
			}
		}
		// Creating a provider profile promotes the account role.
		return tx.Model(&models.User{}).Where("id = ?", userID).
			Update("role", models.RoleRunner).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create runner profile",
		})
	}

	db.DB.Preload("User").Preload("Services").First(&runner, runner.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Runner profile created successfully",
		"runner":  runner,
	})
}

// UpdateRunnerProfile mutates the caller's runner profile. Rating and the
// counters are never writable here.
func UpdateRunnerProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var runner models.Runner
	if err := db.DB.Where("user_id = ?", userID).First(&runner).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Runner profile not found",
		})
	}

	type RunnerUpdateInput struct {
		Bio         *string  `json:"bio"`
		HourlyRate  *float64 `json:"hourly_rate" validate:"omitempty,gt=0"`
		City        *string  `json:"city"`
		State       *string  `json:"state"`
		Country     *string  `json:"country"`
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
		IsAvailable *bool    `json:"is_available"`
		ServiceIDs  []uint   `json:"service_ids"`
	}
	input := new(RunnerUpdateInput)
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

	if input.Bio != nil {
		runner.Bio = *input.Bio
	}
	if input.HourlyRate != nil {
		runner.HourlyRate = *input.HourlyRate
	}
	if input.City != nil {
		runner.City = *input.City
	}
	if input.State != nil {
		runner.State = *input.State
	}
	if input.Country != nil {
		runner.Country = *input.Country
	}
	if input.Latitude != nil {
		runner.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		runner.Longitude = input.Longitude
	}
	if input.IsAvailable != nil {
		runner.IsAvailable = *input.IsAvailable
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&runner).Error; err != nil {
			return err
		}
		if input.ServiceIDs != nil {
			var services []models.Service
			if err := tx.Where("id IN ?", input.ServiceIDs).Find(&services).Error; err != nil {
				return err
			}
			if err := tx.Model(&runner).Association("Services").Replace(services); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update runner profile",
		})
	}

	db.DB.Preload("User").Preload("Services").First(&runner, runner.ID)

	return c.JSON(fiber.Map{
		"message": "Runner profile updated successfully",
		"runner":  runner,
	})
}
