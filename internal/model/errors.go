package model

import "errors"

var (
	ErrInvalidDimensions = errors.New("board must have positive dimensions")
	ErrOutOfBounds       = errors.New("not a valid space on board")
	ErrNoTeam            = errors.New("piece must have a team")
	ErrUnknownPieceType  = errors.New("unknown piece type")
	ErrUnknownVariant    = errors.New("unknown game variant")
)
