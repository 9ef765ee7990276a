package admin

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/urbanassist/urban-assist/db"
	"github.com/urbanassist/urban-assist/models"
)

// GetDashboardStats recomputes the platform aggregates on every request.
func GetDashboardStats(c *fiber.Ctx) error {
	monthAgo := time.Now().AddDate(0, 0, -30)

	var totalUsers, totalRunners, newUsers int64
	db.DB.Model(&models.User{}).Where("role = ?", models.RoleUser).Count(&totalUsers)
	db.DB.Model(&models.User{}).Where("role = ?", models.RoleRunner).Count(&totalRunners)
	db.DB.Model(&models.User{}).Where("created_at >= ?", monthAgo).Count(&newUsers)

	var totalBookings, completedBookings, pendingBookings int64
	db.DB.Model(&models.Booking{}).Count(&totalBookings)
	db.DB.Model(&models.Booking{}).Where("status = ?", models.StatusCompleted).Count(&completedBookings)
	db.DB.Model(&models.Booking{}).Where("status = ?", models.StatusPending).Count(&pendingBookings)

	completionRate := 0.0
	if totalBookings > 0 {
		completionRate = float64(completedBookings) / float64(totalBookings) * 100
	}

	var totalRevenue, monthlyRevenue struct {
		Sum float64
	}
	db.DB.Model(&models.Booking{}).
		Select("COALESCE(SUM(total_amount), 0) as sum").
		Where("status = ?", models.StatusCompleted).
		Scan(&totalRevenue)
	db.DB.Model(&models.Booking{}).
		Select("COALESCE(SUM(total_amount), 0) as sum").
		Where("status = ? AND completed_at >= ?", models.StatusCompleted, monthAgo).
		Scan(&monthlyRevenue)

	var totalReviews int64
	var avgRating struct {
		Avg float64
	}
	db.DB.Model(&models.Review{}).Count(&totalReviews)
	db.DB.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as avg").
		Scan(&avgRating)

	return c.JSON(fiber.Map{
		"users": fiber.Map{
			"total_users":         totalUsers,
			"total_runners":       totalRunners,
			"new_users_this_month": newUsers,
		},
		"bookings": fiber.Map{
			"total_bookings":     totalBookings,
			"completed_bookings": completedBookings,
			"pending_bookings":   pendingBookings,
			"completion_rate":    completionRate,
		},
		"revenue": fiber.Map{
			"total_revenue":   totalRevenue.Sum,
			"monthly_revenue": monthlyRevenue.Sum,
		},
		"reviews": fiber.Map{
			"total_reviews":  totalReviews,
			"average_rating": avgRating.Avg,
		},
	})
}
