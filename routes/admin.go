package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urbanassist/urban-assist/controllers/admin"
	"github.com/urbanassist/urban-assist/middleware"
	"github.com/urbanassist/urban-assist/models"
)

// SetupAdminRoutes configures the moderation and reporting surface.
// Review moderation is open to moderators as well; everything else is
// admin-only.
func SetupAdminRoutes(app *fiber.App) {
	grp := app.Group("/admin", middleware.Protected())

	adminOnly := middleware.RequireRole(models.RoleAdmin)
	moderation := middleware.RequireRole(models.RoleAdmin, models.RoleModerator)

	grp.Get("/dashboard/stats", adminOnly, admin.GetDashboardStats)

	grp.Get("/users", adminOnly, admin.GetUsers)
	grp.Post("/users/:id/toggle-status", adminOnly, admin.ToggleUserStatus)

	grp.Get("/bookings", adminOnly, admin.GetBookings)

	grp.Get("/reviews", moderation, admin.GetReviews)
	grp.Post("/reviews/:id/flag", moderation, admin.ToggleReviewFlag)
	grp.Delete("/reviews/:id", moderation, admin.DeleteReview)

	grp.Get("/services", adminOnly, admin.GetServices)
	grp.Post("/services", adminOnly, admin.CreateService)
	grp.Post("/services/:id/toggle-status", adminOnly, admin.ToggleServiceStatus)
}
