package service

import "github.com/pkg/errors"

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrAlreadyConnected = errors.New("connection already exists")
	ErrNoPiece          = errors.New("no piece at from square")
	ErrNotYourPiece     = errors.New("not your turn")
	ErrGameOver         = errors.New("game is over")
	ErrNothingToUndo    = errors.New("no move to undo")
)
