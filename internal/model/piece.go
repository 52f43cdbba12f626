package model

import (
	"fmt"
	"strings"
)

type Team string

const (
	TeamWhite Team = "white"
	TeamBlack Team = "black"
)

func (t Team) Valid() bool {
	return t == TeamWhite || t == TeamBlack
}

func (t Team) Opposite() Team {
	if t == TeamWhite {
		return TeamBlack
	}
	return TeamWhite
}

type PieceType string

const (
	King       PieceType = "king"
	Queen      PieceType = "queen"
	Rook       PieceType = "rook"
	Bishop     PieceType = "bishop"
	Knight     PieceType = "knight"
	Pawn       PieceType = "pawn"
	Archbishop PieceType = "archbishop"
	Squirrel   PieceType = "squirrel"
)

// Notation is the single-letter symbol of the piece type.
func (p PieceType) Notation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return "P"
	case Archbishop:
		return "A"
	case Squirrel:
		return "S"
	}
	return ""
}

type Piece struct {
	pieceType PieceType
	team      Team
	Position  Position
	Captured  bool
}

func NewPiece(pieceType PieceType, team Team) (*Piece, error) {
	if !team.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrNoTeam, team)
	}
	if _, ok := moveRules[pieceType]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPieceType, pieceType)
	}
	return &Piece{pieceType: pieceType, team: team}, nil
}

// MustPiece is NewPiece for fixed setups; it panics on invalid input.
func MustPiece(pieceType PieceType, team Team) *Piece {
	p, err := NewPiece(pieceType, team)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Piece) Type() PieceType { return p.pieceType }
func (p *Piece) Team() Team      { return p.team }

func (p *Piece) isSameTeam(other *Piece) bool {
	return other != nil && p.team == other.team
}

// String is the piece symbol, upper case for white and lower case for black.
func (p *Piece) String() string {
	if p.team == TeamBlack {
		return strings.ToLower(p.pieceType.Notation())
	}
	return p.pieceType.Notation()
}

// CanMove reports whether the piece may move to (x, y) by its own movement
// rule. It does not consider whether the move exposes the piece's king.
func (p *Piece) CanMove(board *Board, x, y int) bool {
	if !p.canOccupy(board, x, y) {
		return false
	}
	return moveRules[p.pieceType](board, p, Position{X: x, Y: y})
}

// canOccupy is the rule shared by every piece type: the piece and the
// destination are on the board, the destination is not the current square
// and holds no piece of the same team.
func (p *Piece) canOccupy(board *Board, x, y int) bool {
	if !board.IsValidSpace(x, y) || !board.IsValidSpace(p.Position.X, p.Position.Y) {
		return false
	}
	if p.Position.X == x && p.Position.Y == y {
		return false
	}
	return !p.isSameTeam(board.at(x, y))
}

func (p *Piece) CanCapture(board *Board, other *Piece) bool {
	return p.CanMove(board, other.Position.X, other.Position.Y)
}

// MovePiece performs the move when it is legal for the piece and returns the
// record needed to reverse it. It returns nil and leaves the board untouched
// otherwise.
func (p *Piece) MovePiece(board *Board, x, y int) *Move {
	if !p.CanMove(board, x, y) {
		return nil
	}
	move := newMove(p, board.at(x, y), x, y)
	board.RemovePiece(p)
	if defender := board.at(x, y); defender != nil {
		defender.Captured = true
	}
	board.SetPiece(p, x, y)
	return move
}

// Moves lists every square the piece could move to, without checking whether
// the move would leave its king in check.
func (p *Piece) Moves(board *Board) []Position {
	moves := []Position{}
	for x := 0; x < board.Width(); x++ {
		for y := 0; y < board.Height(); y++ {
			if p.CanMove(board, x, y) {
				moves = append(moves, Position{X: x, Y: y})
			}
		}
	}
	return moves
}
