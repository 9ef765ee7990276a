package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/urbanassist/urban-assist/chat"
)

// SetupChatRoutes mounts the websocket chat endpoint.
func SetupChatRoutes(app *fiber.App, hub *chat.Hub) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/chat", websocket.New(chat.Handler(hub)))
}
