package controller

import (
	"log"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	Variant model.Variant `json:"variant"`
}

type selectRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type moveResponse struct {
	Result model.MoveResult `json:"result"`
	State  model.GameState  `json:"state"`
}

// statusFor maps service and engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrOutOfBounds),
		errors.Is(err, model.ErrUnknownVariant),
		errors.Is(err, service.ErrNoPiece):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrNotYourPiece),
		errors.Is(err, service.ErrGameOver),
		errors.Is(err, service.ErrNothingToUndo):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
	}

	gameID, state, err := gc.gameService.CreateGame(req.Variant)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"gameId": gameID,
		"state":  state,
	})
}

func (gc *GameController) ListGames(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"games": gc.gameService.ListGames(),
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	state, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) GetLegalMoves(c *fiber.Ctx) error {
	if c.Query("x") == "" || c.Query("y") == "" {
		return badRequest(c, "x and y are required")
	}
	x, y := c.QueryInt("x", -1), c.QueryInt("y", -1)

	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), x, y)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"from":  model.Position{X: x, Y: y},
		"moves": moves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move model.SimpleMove
	if err := c.BodyParser(&move); err != nil {
		return badRequest(c, "invalid move")
	}

	result, state, err := gc.gameService.HandleMove(c.Params("gameId"), move)
	if err != nil {
		return fail(c, err)
	}
	status := fiber.StatusOK
	if result != model.Committed {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(moveResponse{Result: result, State: state})
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	state, err := gc.gameService.Undo(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) Select(c *fiber.Ctx) error {
	var req selectRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid selection")
	}

	state, err := gc.gameService.Select(c.Params("gameId"), req.X, req.Y)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(state)
}
