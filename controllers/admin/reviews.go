package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/urbanassist/urban-assist/db"
	"github.com/urbanassist/urban-assist/models"
	"github.com/urbanassist/urban-assist/utils"
)

// GetReviews lists reviews for moderation, optionally flagged only.
func GetReviews(c *fiber.Ctx) error {
	page, perPage, offset := utils.Pagination(c, adminPerPage)

	query := db.DB.Model(&models.Review{})
	if c.Query("flagged_only") == "true" {
		query = query.Where("is_flagged = ?", true)
	}

	var total int64
	query.Count(&total)

	var reviews []models.Review
	if err := query.
		Preload("Reviewer").Preload("Reviewee").Preload("Booking").
		Order("created_at DESC").
		Limit(perPage).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch reviews",
		})
	}

	return c.JSON(fiber.Map{
		"reviews": reviews,
		"pagination": fiber.Map{
			"page":     page,
			"pages":    utils.TotalPages(total, perPage),
			"per_page": perPage,
			"total":    total,
		},
	})
}

// ToggleReviewFlag flips the moderation flag. The flag is bookkeeping only;
// it never feeds the rating aggregation.
func ToggleReviewFlag(c *fiber.Ctx) error {
	var review models.Review
	if err := db.DB.First(&review, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Review not found",
		})
	}

	review.IsFlagged = !review.IsFlagged
	if err := db.DB.Save(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update review",
		})
	}

	message := "Review unflagged successfully"
	if review.IsFlagged {
		message = "Review flagged successfully"
	}
	return c.JSON(fiber.Map{
		"message":    message,
		"is_flagged": review.IsFlagged,
	})
}

// DeleteReview removes a review and recomputes the reviewee's rating, same
// as a reviewer-initiated delete.
func DeleteReview(c *fiber.Ctx) error {
	var review models.Review
	if err := db.DB.First(&review, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Review not found",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&review).Error; err != nil {
			return err
		}
		return models.RecalculateRunnerRating(tx, review.RevieweeID)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete review")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete review",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Review deleted successfully",
	})
}
