package model

// moveRule is the geometric constraint of one piece type. It is only called
// once the destination has passed canOccupy.
type moveRule func(board *Board, p *Piece, to Position) bool

var moveRules = map[PieceType]moveRule{
	Pawn: pawnCanMove,
	Rook: func(board *Board, p *Piece, to Position) bool {
		return rookReachable(board, p.Position, to)
	},
	Knight: func(_ *Board, p *Piece, to Position) bool {
		return knightReachable(p.Position, to)
	},
	Bishop: func(board *Board, p *Piece, to Position) bool {
		return bishopReachable(board, p.Position, to)
	},
	Queen: func(board *Board, p *Piece, to Position) bool {
		return rookReachable(board, p.Position, to) || bishopReachable(board, p.Position, to)
	},
	King: func(_ *Board, p *Piece, to Position) bool {
		return kingReachable(p.Position, to)
	},
	Archbishop: func(board *Board, p *Piece, to Position) bool {
		return bishopReachable(board, p.Position, to) || knightReachable(p.Position, to)
	},
	Squirrel: func(_ *Board, p *Piece, to Position) bool {
		return squirrelReachable(p.Position, to)
	},
}

// Home rows for the two-square pawn advance.
const (
	whitePawnRow = 6
	blackPawnRow = 1
)

func pawnDir(team Team) int {
	if team == TeamWhite {
		return -1
	}
	return 1
}

func pawnHomeRow(team Team) int {
	if team == TeamWhite {
		return whitePawnRow
	}
	return blackPawnRow
}

func pawnCanMove(board *Board, p *Piece, to Position) bool {
	dir := pawnDir(p.team)
	dx := to.X - p.Position.X
	dy := to.Y - p.Position.Y

	if dx == 0 && dy == 2*dir {
		return p.Position.Y == pawnHomeRow(p.team) &&
			board.isEmpty(to.X, to.Y) &&
			board.isEmpty(to.X, p.Position.Y+dir)
	}
	if dy != dir || abs(dx) > 1 {
		return false
	}
	if dx == 0 {
		return board.isEmpty(to.X, to.Y)
	}
	// diagonal steps only capture; canOccupy already ruled out our own pieces
	return !board.isEmpty(to.X, to.Y)
}

func rookReachable(board *Board, from, to Position) bool {
	if from.X != to.X && from.Y != to.Y {
		return false
	}
	return pathIsClear(board, from, to)
}

func bishopReachable(board *Board, from, to Position) bool {
	if abs(from.X-to.X) != abs(from.Y-to.Y) {
		return false
	}
	return pathIsClear(board, from, to)
}

func knightReachable(from, to Position) bool {
	dx := abs(from.X - to.X)
	dy := abs(from.Y - to.Y)
	return (dx == 2 && dy == 1) || (dx == 1 && dy == 2)
}

func kingReachable(from, to Position) bool {
	return abs(from.X-to.X) <= 1 && abs(from.Y-to.Y) <= 1
}

func squirrelReachable(from, to Position) bool {
	dx := abs(from.X - to.X)
	dy := abs(from.Y - to.Y)
	return (dx == 2 && dy <= 2) || (dx <= 2 && dy == 2)
}

// pathIsClear walks the straight or diagonal line between from and to and
// reports whether every square strictly between them is empty. The
// destination itself is not inspected.
func pathIsClear(board *Board, from, to Position) bool {
	stepX := sign(to.X - from.X)
	stepY := sign(to.Y - from.Y)
	x, y := from.X+stepX, from.Y+stepY
	for x != to.X || y != to.Y {
		if !board.isEmpty(x, y) {
			return false
		}
		x += stepX
		y += stepY
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
