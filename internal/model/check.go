package model

type EscapeRule string

const (
	// EscapeLiteral treats a king with no legal adjacent move as able to
	// escape check. This is the historical behaviour and the default.
	EscapeLiteral EscapeRule = "literal"
	// EscapeStrict treats a king with no legal adjacent move as trapped.
	EscapeStrict EscapeRule = "strict"
)

type Status string

const (
	StatusNormal    Status = "normal"
	StatusCheck     Status = "check"
	StatusCheckmate Status = "checkmate"
)

var kingOffsets = []Position{
	{X: 1, Y: -1}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	{X: -1, Y: 1}, {X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: -1},
}

// InCheck reports whether a king of the given team standing on (x, y) would
// be attacked by any uncaptured opposing piece.
func (g *Game) InCheck(king *Piece, x, y int) bool {
	if !g.board.IsValidSpace(x, y) {
		return false
	}
	for _, piece := range g.roster(king.team.Opposite()) {
		if piece == nil || piece.Captured {
			continue
		}
		if piece.CanMove(g.board, x, y) {
			return true
		}
	}
	return false
}

// InCheckmate reports whether the king on (x, y) can neither step out of
// check nor be saved by any allied move.
func (g *Game) InCheckmate(king *Piece, x, y int) bool {
	return !g.kingCanEscapeCheck(king, x, y) && !g.canDefendCheck(king)
}

func (g *Game) kingCanEscapeCheck(king *Piece, x, y int) bool {
	canEscape := true
	legal := 0
	for _, off := range kingOffsets {
		tx, ty := x+off.X, y+off.Y
		if !king.CanMove(g.board, tx, ty) {
			continue
		}
		legal++
		canEscape = canEscape && !g.InCheck(king, tx, ty)
	}
	if legal == 0 && g.escapeRule == EscapeStrict {
		return false
	}
	return canEscape
}

// canDefendCheck tries every square for every uncaptured allied piece and
// reports whether any of those moves leaves the king out of check. Each probe
// is rolled back and the last move is left alone.
func (g *Game) canDefendCheck(king *Piece) bool {
	for _, piece := range g.roster(king.team) {
		if piece == nil {
			break
		}
		if piece.Captured {
			continue
		}
		for y := 0; y < g.board.Height(); y++ {
			for x := 0; x < g.board.Width(); x++ {
				if !piece.CanMove(g.board, x, y) {
					continue
				}
				defended := false
				g.speculate(piece, x, y, func(*Move) bool {
					defended = !g.kingInCheck(king.team)
					return false
				})
				if defended {
					return true
				}
			}
		}
	}
	return false
}

// Status classifies the position of the team's king on its current square.
func (g *Game) Status(team Team) Status {
	king := g.King(team)
	if king == nil || !g.InCheck(king, king.Position.X, king.Position.Y) {
		return StatusNormal
	}
	if g.InCheckmate(king, king.Position.X, king.Position.Y) {
		return StatusCheckmate
	}
	return StatusCheck
}
