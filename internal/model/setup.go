package model

import "fmt"

type Variant string

const (
	VariantStandard Variant = "standard"
	// VariantCustom swaps one knight for a squirrel and one bishop for an
	// archbishop on each side.
	VariantCustom Variant = "custom"
)

var backRank = [StandardWidth]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// roster slot of the back-rank piece on each file
var backRankSlot = [StandardWidth]int{8, 10, 12, 14, 15, 13, 11, 9}

// NewStandardGame sets up the usual 32 pieces on an 8x8 board. Black holds
// rows 0 and 1, white rows 6 and 7. Pawns fill roster slots 0-7.
func NewStandardGame(opts ...Option) *Game {
	g := newGame(NewStandardBoard(), opts)
	for i := 0; i < StandardWidth; i++ {
		g.black[i] = MustPiece(Pawn, TeamBlack)
		g.board.SetPiece(g.black[i], i, blackPawnRow)
		g.white[i] = MustPiece(Pawn, TeamWhite)
		g.board.SetPiece(g.white[i], i, whitePawnRow)
	}
	for x, pt := range backRank {
		slot := backRankSlot[x]
		g.black[slot] = MustPiece(pt, TeamBlack)
		g.board.SetPiece(g.black[slot], x, 0)
		g.white[slot] = MustPiece(pt, TeamWhite)
		g.board.SetPiece(g.white[slot], x, StandardHeight-1)
	}
	g.blackKing = g.black[15]
	g.whiteKing = g.white[15]
	return g
}

// NewCustomGame is the standard setup with the queen-side black knight and
// king-side black bishop replaced, mirrored for white.
func NewCustomGame(opts ...Option) *Game {
	g := NewStandardGame(opts...)
	g.replace(TeamBlack, 10, Squirrel, 1, 0)
	g.replace(TeamBlack, 13, Archbishop, 5, 0)
	g.replace(TeamWhite, 11, Squirrel, 6, StandardHeight-1)
	g.replace(TeamWhite, 12, Archbishop, 2, StandardHeight-1)
	return g
}

func (g *Game) replace(team Team, slot int, pt PieceType, x, y int) {
	piece := MustPiece(pt, team)
	g.roster(team)[slot] = piece
	g.board.SetPiece(piece, x, y)
}

func NewGameOfVariant(variant Variant, opts ...Option) (*Game, error) {
	switch variant {
	case VariantStandard, "":
		return NewStandardGame(opts...), nil
	case VariantCustom:
		return NewCustomGame(opts...), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
}
