package models

import (
	"math"

	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	BookingID  uint    `json:"booking_id" gorm:"not null"`
	Booking    Booking `json:"booking" gorm:"foreignKey:BookingID"`
	ReviewerID uint    `json:"reviewer_id" gorm:"not null"`
	Reviewer   User    `json:"reviewer" gorm:"foreignKey:ReviewerID"`
	RevieweeID uint    `json:"reviewee_id" gorm:"not null"`
	Reviewee   User    `json:"reviewee" gorm:"foreignKey:RevieweeID"`
	Rating     int     `json:"rating" gorm:"not null"`
	Comment    string  `json:"comment"`
	IsFlagged  bool    `json:"is_flagged" gorm:"default:false"`
	IsApproved bool    `json:"is_approved" gorm:"default:true"`
}

// HasExistingReview reports whether this reviewer already reviewed the
// booking. At most one review per (booking, reviewer) pair.
func (r *Review) HasExistingReview(tx *gorm.DB) (bool, error) {
	var count int64
	err := tx.Model(&Review{}).
		Where("booking_id = ? AND reviewer_id = ?", r.BookingID, r.ReviewerID).
		Count(&count).Error
	return count > 0, err
}

// RoundRating rounds half away from zero to one decimal place.
func RoundRating(x float64) float64 {
	return math.Round(x*10) / 10
}

// RecalculateRunnerRating recomputes the denormalized rating and review
// count for the runner profile behind revieweeID, from scratch over all
// approved reviews. A reviewee without a runner profile is a no-op. Callers
// run this inside the transaction that mutated the review set.
func RecalculateRunnerRating(tx *gorm.DB, revieweeID uint) error {
	var runner Runner
	if err := tx.Where("user_id = ?", revieweeID).First(&runner).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	var agg struct {
		Avg   float64
		Count int64
	}
	if err := tx.Model(&Review{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Where("reviewee_id = ? AND is_approved = ?", revieweeID, true).
		Scan(&agg).Error; err != nil {
		return err
	}

	return tx.Model(&runner).Updates(map[string]interface{}{
		"rating":        RoundRating(agg.Avg),
		"total_reviews": agg.Count,
	}).Error
}
