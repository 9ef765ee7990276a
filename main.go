package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/urbanassist/urban-assist/chat"
	"github.com/urbanassist/urban-assist/cron"
	"github.com/urbanassist/urban-assist/db"
	"github.com/urbanassist/urban-assist/redis"
	"github.com/urbanassist/urban-assist/routes"
)

func initLogger() {
	if os.Getenv("APP_ENV") != "production" {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	zlog.Logger = zlog.With().Str("service", "urban-assist").Logger()
}

func main() {
	initLogger()

	db.Init()
	db.Migrate()
	db.SeedServices()
	redis.InitRedis()
	cron.StartCronJobs()

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(logger.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Urban Assist API")
	})

	routes.SetupAuthRoutes(app)
	routes.SetupUserRoutes(app)
	routes.SetupServiceRoutes(app)
	routes.SetupBookingRoutes(app)
	routes.SetupReviewRoutes(app)
	routes.SetupAdminRoutes(app)
	routes.SetupChatRoutes(app, chat.NewHub())

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	if err := app.Listen(":" + port); err != nil {
		zlog.Fatal().Err(err).Msg("server stopped")
	}
}
