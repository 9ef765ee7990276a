package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urbanassist/urban-assist/controllers"
	"github.com/urbanassist/urban-assist/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)

	// Protected routes
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
}
