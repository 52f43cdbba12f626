package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// GameLookup reports whether a game is hosted.
type GameLookup interface {
	HasGame(gameID string) bool
}

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid
// upgrade attempts for a hosted game. Without EnsureClientID ahead of it
// every request is rejected as unidentified.
func WebSocketUpgrade(games GameLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		gameID := c.Params("gameId")
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}
		if !games.HasGame(gameID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "game not found",
			})
		}

		if c.Locals(ClientIDKey) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "client ID is required",
			})
		}
		return c.Next()
	}
}
