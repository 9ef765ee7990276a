package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urbanassist/urban-assist/controllers"
	"github.com/urbanassist/urban-assist/middleware"
)

// SetupBookingRoutes configures all booking related routes
func SetupBookingRoutes(app *fiber.App) {
	booking := app.Group("/bookings", middleware.Protected())
	booking.Post("/", controllers.CreateBooking)
	booking.Get("/", controllers.GetBookings)
	booking.Get("/:id", controllers.GetBooking)
	booking.Put("/:id", controllers.UpdateBooking)
	booking.Delete("/:id", controllers.DeleteBooking)
	booking.Put("/:id/status", controllers.UpdateBookingStatus)
	booking.Get("/:id/messages", controllers.GetBookingMessages)
}
