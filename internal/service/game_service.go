package service

import (
	"log"
	"time"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/pkg/errors"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame(variant model.Variant) (string, model.GameState, error) {
	session, err := gs.gameManager.CreateGame(variant)
	if err != nil {
		return "", model.GameState{}, errors.Wrap(err, "failed to create game")
	}
	log.Printf("created %s game %s", session.Variant, session.ID)
	return session.ID, session.State(), nil
}

type GameSummary struct {
	ID        string        `json:"gameId"`
	Variant   model.Variant `json:"variant"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (gs *GameService) ListGames() []GameSummary {
	summaries := []GameSummary{}
	for _, id := range gs.gameManager.List() {
		session, err := gs.gameManager.GetGame(id)
		if err != nil {
			continue // closed since List
		}
		summaries = append(summaries, GameSummary{
			ID:        session.ID,
			Variant:   session.Variant,
			CreatedAt: session.CreatedAt,
			UpdatedAt: session.UpdatedAt(),
		})
	}
	return summaries
}

func (gs *GameService) HasGame(gameID string) bool {
	return gs.gameManager.HasGame(gameID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return session.State(), nil
}

// LegalMoves lists the squares the piece on (x, y) can reach by its movement
// rule. An empty square has no moves.
func (gs *GameService) LegalMoves(gameID string, x, y int) ([]model.Position, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}

	moves := []model.Position{}
	_, err = session.withGame(func(g *model.Game) error {
		piece, err := g.Piece(x, y)
		if err != nil {
			return err
		}
		if piece != nil {
			moves = g.Moves(piece)
		}
		return nil
	})
	return moves, err
}

func (gs *GameService) publisher(session *Session) func(model.GameState) {
	return func(state model.GameState) {
		gs.gameManager.broadcast(session, state)
	}
}

func (gs *GameService) Select(gameID string, x, y int) (model.GameState, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}

	state, err := session.update(func(g *model.Game) (bool, error) {
		return true, g.SetSelected(x, y)
	}, gs.publisher(session))
	if err != nil {
		return state, errors.Wrapf(err, "select (%d,%d)", x, y)
	}
	return state, nil
}

// HandleMove plays a move for the side to move. Rule violations come back as
// a MoveResult with a nil error; the turn only advances on Committed.
func (gs *GameService) HandleMove(gameID string, move model.SimpleMove) (model.MoveResult, model.GameState, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.IllegalDestination, model.GameState{}, err
	}

	result := model.IllegalDestination
	state, err := session.update(func(g *model.Game) (bool, error) {
		if g.Status(g.Turn()) == model.StatusCheckmate {
			return false, ErrGameOver
		}
		piece, err := g.Piece(move.From.X, move.From.Y)
		if err != nil {
			return false, err
		}
		if piece == nil {
			return false, ErrNoPiece
		}
		if !g.IsValidPiece(move.From.X, move.From.Y) {
			return false, ErrNotYourPiece
		}

		result = g.AttemptMove(piece, move.To.X, move.To.Y)
		if result != model.Committed {
			return false, nil
		}
		log.Printf("game %s: %s played %s", gameID, g.Turn(), g.LastMove())
		g.NextTurn()
		g.ClearSelected()
		return true, nil
	}, gs.publisher(session))
	if err != nil {
		return result, state, errors.Wrapf(err, "move %v -> %v", move.From, move.To)
	}
	if result == model.Committed && state.Status != model.StatusNormal {
		log.Printf("game %s: %s is in %s", gameID, state.ToMove, state.Status)
	}
	return result, state, nil
}

// Undo takes back the last committed move and hands the turn back to the
// side that played it. Only one move can be taken back.
func (gs *GameService) Undo(gameID string) (model.GameState, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}

	state, err := session.update(func(g *model.Game) (bool, error) {
		if !g.UndoLastMove() {
			return false, ErrNothingToUndo
		}
		g.NextTurn()
		return true, nil
	}, gs.publisher(session))
	if err != nil {
		return state, errors.Wrapf(err, "undo on game %s", gameID)
	}
	return state, nil
}

func (gs *GameService) RegisterConnection(gameID, clientID string, conn Conn) error {
	return gs.gameManager.RegisterConnection(gameID, clientID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, clientID string) {
	gs.gameManager.UnregisterConnection(gameID, clientID)
}
