package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/urbanassist/urban-assist/db"
	"github.com/urbanassist/urban-assist/models"
	"github.com/urbanassist/urban-assist/utils"
)

const reviewsPerPage = 20

type ReviewInput struct {
	BookingID  uint   `json:"booking_id" validate:"required"`
	RevieweeID uint   `json:"reviewee_id" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}

// CreateReview attaches a review to a completed booking and refreshes the
// reviewee runner's aggregate rating in the same transaction.
func CreateReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(ReviewInput)
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

	var booking models.Booking
	if err := db.DB.Preload("Runner").First(&booking, input.BookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}
	if booking.Status != models.StatusCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Can only review completed bookings",
		})
	}

	runnerUserID := booking.Runner.UserID
	if booking.UserID != userID && runnerUserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Access denied",
		})
	}

	// The reviewee must be the other participant.
	var expected uint
	if userID == booking.UserID {
		expected = runnerUserID
	} else {
		expected = booking.UserID
	}
	if input.RevieweeID != expected {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid reviewee for this booking",
		})
	}

	review := models.Review{
		BookingID:  input.BookingID,
		ReviewerID: userID,
		RevieweeID: input.RevieweeID,
		Rating:     input.Rating,
		Comment:    input.Comment,
		IsApproved: true,
	}

	exists, err := review.HasExistingReview(db.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check existing reviews",
		})
	}
	if exists {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Review already exists for this booking",
		})
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return models.RecalculateRunnerRating(tx, review.RevieweeID)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create review")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create review",
		})
	}

	db.DB.Preload("Reviewer").Preload("Reviewee").First(&review, review.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Review created successfully",
		"review":  review,
	})
}

// GetReviews lists approved reviews with optional filters. Public.
func GetReviews(c *fiber.Ctx) error {
	page, perPage, offset := utils.Pagination(c, reviewsPerPage)

	query := db.DB.Model(&models.Review{}).Where("is_approved = ?", true)
	if revieweeID := c.QueryInt("reviewee_id"); revieweeID > 0 {
		query = query.Where("reviewee_id = ?", revieweeID)
	}
	if reviewerID := c.QueryInt("reviewer_id"); reviewerID > 0 {
		query = query.Where("reviewer_id = ?", reviewerID)
	}
	if bookingID := c.QueryInt("booking_id"); bookingID > 0 {
		query = query.Where("booking_id = ?", bookingID)
	}
	if minRating := c.QueryInt("min_rating"); minRating > 0 {
		query = query.Where("rating >= ?", minRating)
	}

	var total int64
	query.Count(&total)

	var reviews []models.Review
	if err := query.
		Preload("Reviewer").Preload("Reviewee").
		Order("created_at DESC").
		Limit(perPage).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch reviews",
		})
	}

	return c.JSON(fiber.Map{
		"reviews":      reviews,
		"total":        total,
		"pages":        utils.TotalPages(total, perPage),
		"current_page": page,
		"per_page":     perPage,
	})
}

// GetReview returns one approved review.
func GetReview(c *fiber.Ctx) error {
	var review models.Review
	if err := db.DB.Preload("Reviewer").Preload("Reviewee").
		First(&review, c.Params("id")).Error; err != nil || !review.IsApproved {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Review not found",
		})
	}
	return c.JSON(review)
}

// UpdateReview lets the original reviewer edit rating and comment. A rating
// change recomputes the reviewee's aggregate from scratch.
func UpdateReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var review models.Review
	if err := db.DB.First(&review, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Review not found",
		})
	}
	if review.ReviewerID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to update this review",
		})
	}

	type ReviewUpdateInput struct {
		Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
		Comment *string `json:"comment"`
	}
	input := new(ReviewUpdateInput)
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

	ratingChanged := false
	if input.Rating != nil && *input.Rating != review.Rating {
		review.Rating = *input.Rating
		ratingChanged = true
	}
	if input.Comment != nil {
		review.Comment = *input.Comment
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&review).Error; err != nil {
			return err
		}
		if ratingChanged {
			return models.RecalculateRunnerRating(tx, review.RevieweeID)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update review")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update review",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Review updated successfully",
		"review":  review,
	})
}

// DeleteReview removes the caller's review and recomputes the reviewee's
// aggregate from the remaining approved set.
func DeleteReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var review models.Review
	if err := db.DB.First(&review, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Review not found",
		})
	}
	if review.ReviewerID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to delete this review",
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

// GetReviewStats returns count, 1-decimal mean and the 1-5 star histogram
// over a user's approved reviews as reviewee.
func GetReviewStats(c *fiber.Ctx) error {
	userID := c.Params("userID")

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var total int64
	db.DB.Model(&models.Review{}).
		Where("reviewee_id = ? AND is_approved = ?", userID, true).
		Count(&total)

	distribution := map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	average := 0.0

	if total > 0 {
		var avg struct {
			Avg float64
		}
		db.DB.Model(&models.Review{}).
			Select("COALESCE(AVG(rating), 0) as avg").
			Where("reviewee_id = ? AND is_approved = ?", userID, true).
			Scan(&avg)
		average = models.RoundRating(avg.Avg)

		var buckets []struct {
			Rating int
			Count  int64
		}
		db.DB.Model(&models.Review{}).
			Select("rating, COUNT(*) as count").
			Where("reviewee_id = ? AND is_approved = ?", userID, true).
			Group("rating").
			Scan(&buckets)
		for _, b := range buckets {
			distribution[b.Rating] = b.Count
		}
	}

	return c.JSON(fiber.Map{
		"total_reviews":       total,
		"average_rating":      average,
		"rating_distribution": distribution,
	})
}
