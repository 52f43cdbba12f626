package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmptyGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	g, err := NewGame(StandardWidth, StandardHeight, opts...)
	require.NoError(t, err)
	return g
}

// place adds a fresh piece to the game and returns it.
func place(g *Game, pt PieceType, team Team, x, y int) *Piece {
	piece := MustPiece(pt, team)
	g.AddPiece(piece, x, y)
	return piece
}

func TestNewGameRejectsBadDimensions(t *testing.T) {
	_, err := NewGame(0, 8)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestStartTurn(t *testing.T) {
	g := newEmptyGame(t)
	assert.Equal(t, TeamWhite, g.Turn())
	g.NextTurn()
	assert.Equal(t, TeamBlack, g.Turn())
	g.NextTurn()
	assert.Equal(t, TeamWhite, g.Turn())
}

func TestStandardRosters(t *testing.T) {
	g := NewStandardGame()
	for _, team := range []Team{TeamWhite, TeamBlack} {
		pieces := g.Pieces(team)
		require.Len(t, pieces, RosterSize)
		for _, p := range pieces {
			require.NotNil(t, p)
			assert.Equal(t, team, p.Team())
			cell, err := g.Piece(p.Position.X, p.Position.Y)
			require.NoError(t, err)
			assert.Same(t, p, cell)
		}
	}
}

func TestStandardKings(t *testing.T) {
	g := NewStandardGame()
	white := g.King(TeamWhite)
	require.NotNil(t, white)
	assert.Equal(t, King, white.Type())
	assert.Equal(t, TeamWhite, white.Team())
	assert.Equal(t, Position{X: 4, Y: 7}, white.Position)

	black := g.King(TeamBlack)
	require.NotNil(t, black)
	assert.Equal(t, King, black.Type())
	assert.Equal(t, Position{X: 4, Y: 0}, black.Position)
}

func TestStandardLayout(t *testing.T) {
	g := NewStandardGame()
	assert.Equal(t, "rnbqkbnr\npppppppp\n........\n........\n........\n........\nPPPPPPPP\nRNBQKBNR\n", g.Board().String())
}

func TestCustomLayout(t *testing.T) {
	g := NewCustomGame()
	assert.Equal(t, "rsbqkanr\npppppppp\n........\n........\n........\n........\nPPPPPPPP\nRNAQKBSR\n", g.Board().String())
	assert.Equal(t, Squirrel, g.Pieces(TeamBlack)[10].Type())
	assert.Equal(t, Archbishop, g.Pieces(TeamBlack)[13].Type())
	assert.Equal(t, Squirrel, g.Pieces(TeamWhite)[11].Type())
	assert.Equal(t, Archbishop, g.Pieces(TeamWhite)[12].Type())
}

func TestNewGameOfVariant(t *testing.T) {
	g, err := NewGameOfVariant(VariantCustom, WithStrictKingEscape())
	require.NoError(t, err)
	assert.Equal(t, Archbishop, g.Pieces(TeamWhite)[12].Type())
	assert.Equal(t, EscapeStrict, g.EscapeRule())

	g, err = NewGameOfVariant(VariantStandard)
	require.NoError(t, err)
	assert.Equal(t, EscapeLiteral, g.EscapeRule())

	_, err = NewGameOfVariant(Variant("atomic"))
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestPiecesReturnsCopy(t *testing.T) {
	g := NewStandardGame()
	pieces := g.Pieces(TeamWhite)
	pieces[0] = nil
	assert.NotNil(t, g.Pieces(TeamWhite)[0])
}

func TestAddPiece(t *testing.T) {
	g := newEmptyGame(t)
	king := place(g, King, TeamWhite, 4, 4)
	assert.Same(t, king, g.King(TeamWhite))
	assert.Nil(t, g.King(TeamBlack))

	second := place(g, King, TeamWhite, 0, 0)
	assert.Same(t, king, g.King(TeamWhite), "first king stays the team king")
	assert.Same(t, second, g.Pieces(TeamWhite)[1])

	for i := 2; i < RosterSize; i++ {
		assert.True(t, g.AddPiece(MustPiece(Pawn, TeamWhite), i%8, 2+i/8))
	}
	extra := MustPiece(Queen, TeamWhite)
	assert.False(t, g.AddPiece(extra, 7, 7))
	cell, err := g.Piece(7, 7)
	require.NoError(t, err)
	assert.Nil(t, cell)
	for _, p := range g.Pieces(TeamWhite) {
		assert.NotSame(t, extra, p)
	}
}

func TestAddPieceOffBoard(t *testing.T) {
	g := newEmptyGame(t)
	king := place(g, King, TeamWhite, 4, 0)
	rook := place(g, Rook, TeamBlack, 10, 0)
	queen := place(g, Queen, TeamBlack, -1, 4)

	assert.Same(t, rook, g.Pieces(TeamBlack)[0])
	assert.Equal(t, Position{X: 10, Y: 0}, rook.Position)
	assert.Equal(t, "....K...", strings.Split(g.Board().String(), "\n")[0])

	assert.NotPanics(t, func() {
		assert.False(t, g.InCheck(king, 4, 0))
		assert.Equal(t, StatusNormal, g.Status(TeamWhite))
	})
	assert.Empty(t, rook.Moves(g.Board()))
	assert.Empty(t, queen.Moves(g.Board()))
	assert.Equal(t, IllegalDestination, g.AttemptMove(rook, 7, 0))
}

func TestIsValidPiece(t *testing.T) {
	g := NewStandardGame()
	assert.True(t, g.IsValidPiece(0, 6))
	assert.True(t, g.IsValidPiece(4, 7))
	assert.False(t, g.IsValidPiece(0, 1))
	assert.False(t, g.IsValidPiece(3, 3))
	assert.False(t, g.IsValidPiece(-1, 0))

	g.NextTurn()
	assert.True(t, g.IsValidPiece(0, 1))
	assert.False(t, g.IsValidPiece(0, 6))
}

func TestSelected(t *testing.T) {
	g := NewStandardGame()
	assert.Nil(t, g.Selected())

	require.NoError(t, g.SetSelected(0, 6))
	require.NotNil(t, g.Selected())
	assert.Equal(t, Pawn, g.Selected().Type())

	require.NoError(t, g.SetSelected(-1, -1))
	assert.Nil(t, g.Selected())

	require.NoError(t, g.SetSelected(1, 7))
	assert.ErrorIs(t, g.SetSelected(9, 9), ErrOutOfBounds)
	assert.Equal(t, Knight, g.Selected().Type(), "failed selection keeps the previous one")

	g.ClearSelected()
	assert.Nil(t, g.Selected())
}

func TestAttemptMoveIllegalDestination(t *testing.T) {
	g := newEmptyGame(t)
	king := place(g, King, TeamWhite, 4, 4)
	before := g.Board().String()

	assert.Equal(t, IllegalDestination, g.AttemptMove(king, 6, 6))
	assert.Equal(t, IllegalDestination, g.AttemptMove(king, 4, 4))
	assert.Equal(t, IllegalDestination, g.AttemptMove(king, 4, 9))
	assert.Equal(t, before, g.Board().String())
	assert.Nil(t, g.LastMove())
}

func TestAttemptMoveLeavesSelfInCheck(t *testing.T) {
	g := newEmptyGame(t)
	king := place(g, King, TeamWhite, 4, 7)
	rook := place(g, Rook, TeamWhite, 4, 6)
	place(g, Rook, TeamBlack, 4, 0)
	before := g.Board().String()

	assert.Equal(t, LeavesSelfInCheck, g.AttemptMove(rook, 3, 6))
	assert.Equal(t, before, g.Board().String())
	assert.Equal(t, Position{X: 4, Y: 6}, rook.Position)
	assert.Nil(t, g.LastMove())

	assert.Equal(t, Committed, g.AttemptMove(king, 3, 7))
	assert.Equal(t, Committed, g.AttemptMove(rook, 3, 6), "rook is free once the king left the file")
}

func TestAttemptMoveKingIntoAttack(t *testing.T) {
	g := newEmptyGame(t)
	king := place(g, King, TeamWhite, 4, 4)
	place(g, Rook, TeamBlack, 0, 5)

	assert.Equal(t, LeavesSelfInCheck, g.AttemptMove(king, 4, 5))
	assert.Equal(t, Position{X: 4, Y: 4}, king.Position)
	assert.Equal(t, Committed, g.AttemptMove(king, 4, 3))
	assert.Equal(t, Position{X: 4, Y: 3}, king.Position)
}

func TestAttemptMoveCommitted(t *testing.T) {
	g := newEmptyGame(t)
	place(g, King, TeamWhite, 4, 7)
	rook := place(g, Rook, TeamWhite, 4, 6)
	enemy := place(g, Rook, TeamBlack, 4, 0)

	assert.Equal(t, Committed, g.AttemptMove(rook, 4, 2))
	require.NotNil(t, g.LastMove())
	assert.Same(t, rook, g.LastMove().Attacker())
	assert.Nil(t, g.LastMove().Defender())
	assert.Equal(t, TeamWhite, g.Turn(), "attempting a move never advances the turn")

	assert.Equal(t, Committed, g.AttemptMove(rook, 4, 0))
	assert.True(t, enemy.Captured)
	assert.Same(t, enemy, g.LastMove().Defender())
}

func TestCapturedPieceCannotGiveCheck(t *testing.T) {
	g := newEmptyGame(t)
	king := place(g, King, TeamWhite, 4, 7)
	rook := place(g, Rook, TeamBlack, 4, 0)
	assert.True(t, g.InCheck(king, 4, 7))

	rook.Captured = true
	assert.False(t, g.InCheck(king, 4, 7))
}

func TestUndoMove(t *testing.T) {
	g := newEmptyGame(t)
	assert.False(t, g.UndoMove(nil))
	assert.False(t, g.UndoLastMove())

	place(g, King, TeamWhite, 4, 7)
	rook := place(g, Rook, TeamWhite, 0, 7)
	knight := place(g, Knight, TeamBlack, 0, 2)
	before := g.Board().String()

	require.Equal(t, Committed, g.AttemptMove(rook, 0, 2))
	assert.True(t, knight.Captured)

	assert.True(t, g.UndoLastMove())
	assert.Equal(t, before, g.Board().String())
	assert.Equal(t, Position{X: 0, Y: 7}, rook.Position)
	assert.Equal(t, Position{X: 0, Y: 2}, knight.Position)
	assert.False(t, knight.Captured)
	assert.Nil(t, g.LastMove())
	assert.False(t, g.UndoLastMove())
}

func TestMoveUndoRoundTrip(t *testing.T) {
	g := NewCustomGame()
	// open the position up so most pieces have captures available
	for _, mv := range []struct{ fx, fy, tx, ty int }{
		{4, 6, 4, 4}, {3, 1, 3, 3}, {4, 4, 3, 3}, {3, 0, 3, 3}, {1, 7, 2, 5}, {3, 3, 0, 3},
	} {
		piece, err := g.Piece(mv.fx, mv.fy)
		require.NoError(t, err)
		require.NotNil(t, piece, "no piece at (%d,%d)", mv.fx, mv.fy)
		require.Equal(t, Committed, g.AttemptMove(piece, mv.tx, mv.ty), "%d,%d -> %d,%d", mv.fx, mv.fy, mv.tx, mv.ty)
		g.NextTurn()
	}

	type snapshot struct {
		pos      Position
		captured bool
	}
	capture := func() map[*Piece]snapshot {
		out := map[*Piece]snapshot{}
		for _, team := range []Team{TeamWhite, TeamBlack} {
			for _, p := range g.Pieces(team) {
				out[p] = snapshot{pos: p.Position, captured: p.Captured}
			}
		}
		return out
	}

	before := g.Board().String()
	pieces := capture()
	for _, team := range []Team{TeamWhite, TeamBlack} {
		for _, p := range g.Pieces(team) {
			if p.Captured {
				continue
			}
			for _, dest := range g.Moves(p) {
				move := p.MovePiece(g.Board(), dest.X, dest.Y)
				require.NotNil(t, move)
				require.True(t, g.UndoMove(move))
				require.Equal(t, before, g.Board().String(), "%s after undo", move)
				require.Equal(t, pieces, capture(), "%s after undo", move)
			}
		}
	}
}
