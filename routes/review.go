package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urbanassist/urban-assist/controllers"
	"github.com/urbanassist/urban-assist/middleware"
)

// SetupReviewRoutes configures all review related routes
func SetupReviewRoutes(app *fiber.App) {
	review := app.Group("/reviews")
	review.Get("/", controllers.GetReviews)
	review.Get("/stats/:userID", controllers.GetReviewStats)
	review.Get("/:id", controllers.GetReview)
	review.Post("/", middleware.Protected(), controllers.CreateReview)
	review.Put("/:id", middleware.Protected(), controllers.UpdateReview)
	review.Delete("/:id", middleware.Protected(), controllers.DeleteReview)
}
