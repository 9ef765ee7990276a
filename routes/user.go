package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urbanassist/urban-assist/controllers"
	"github.com/urbanassist/urban-assist/middleware"
)

// SetupUserRoutes configures profile and runner directory routes
func SetupUserRoutes(app *fiber.App) {
	users := app.Group("/users", middleware.Protected())
	users.Get("/profile", controllers.GetProfile)
	users.Put("/profile", controllers.UpdateProfile)

	runners := app.Group("/runners")
	runners.Get("/", controllers.GetRunners)
	runners.Get("/profile", middleware.Protected(), controllers.GetRunnerProfile)
	runners.Post("/profile", middleware.Protected(), controllers.CreateRunnerProfile)
	runners.Put("/profile", middleware.Protected(), controllers.UpdateRunnerProfile)
	runners.Get("/:id", controllers.GetRunner)
}
