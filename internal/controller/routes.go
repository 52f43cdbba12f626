package controller

import (
	"github.com/benbeisheim/chessrules/internal/middleware"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the REST API under /api/game and the game socket
// under /ws/game/:gameId. origin is the only browser origin allowed to open
// a socket.
func RegisterRoutes(app *fiber.App, gameService *service.GameService, origin string) {
	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService)

	app.Get("/ws/game/:gameId",
		middleware.EnsureClientID(),
		middleware.WebSocketUpgrade(gameService),
		websocket.New(wsController.HandleConnection, websocket.Config{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Origins:         []string{origin},
		}))

	api := app.Group("/api", middleware.EnsureClientID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/", gameController.CreateGame)
	gameRoutes.Get("/", gameController.ListGames)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves", gameController.GetLegalMoves)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)
	gameRoutes.Post("/:gameId/undo", gameController.Undo)
	gameRoutes.Post("/:gameId/select", gameController.Select)
}
