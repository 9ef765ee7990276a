package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urbanassist/urban-assist/controllers"
)

func SetupServiceRoutes(app *fiber.App) {
	service := app.Group("/services")
	service.Get("/", controllers.GetServices)
	service.Get("/categories", controllers.GetServiceCategories)
}
