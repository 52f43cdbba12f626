package model

import "fmt"

// RosterSize is the number of piece slots each team has.
const RosterSize = 16

type MoveResult int

const (
	Committed MoveResult = iota
	IllegalDestination
	LeavesSelfInCheck
)

func (r MoveResult) String() string {
	switch r {
	case Committed:
		return "committed"
	case IllegalDestination:
		return "illegalDestination"
	case LeavesSelfInCheck:
		return "leavesSelfInCheck"
	}
	return fmt.Sprintf("MoveResult(%d)", int(r))
}

func (r MoveResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Game holds one game of chess: the board, both rosters and whose turn it is.
// A Game is not safe for concurrent use; checkmate detection mutates the
// board while it probes candidate moves.
type Game struct {
	turn       Team
	board      *Board
	white      [RosterSize]*Piece
	black      [RosterSize]*Piece
	whiteKing  *Piece
	blackKing  *Piece
	selected   *Piece
	lastMove   *Move
	escapeRule EscapeRule
}

type Option func(*Game)

// WithStrictKingEscape makes a king with no legal adjacent move count as
// unable to escape check.
func WithStrictKingEscape() Option {
	return func(g *Game) {
		g.escapeRule = EscapeStrict
	}
}

func WithEscapeRule(rule EscapeRule) Option {
	return func(g *Game) {
		g.escapeRule = rule
	}
}

// NewGame returns a game on an empty width x height board with white to move.
func NewGame(width, height int, opts ...Option) (*Game, error) {
	board, err := NewBoard(width, height)
	if err != nil {
		return nil, err
	}
	return newGame(board, opts), nil
}

func newGame(board *Board, opts []Option) *Game {
	g := &Game{
		turn:       TeamWhite,
		board:      board,
		escapeRule: EscapeLiteral,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Game) roster(team Team) *[RosterSize]*Piece {
	if team == TeamWhite {
		return &g.white
	}
	return &g.black
}

// AddPiece puts the piece in the first free slot of its team's roster and on
// the board. It does nothing and returns false when the roster is full. The
// first king added for a team becomes that team's king. Like SetPiece it does
// not validate (x, y); a piece added off the board is rostered but never
// moves or attacks.
func (g *Game) AddPiece(piece *Piece, x, y int) bool {
	pieces := g.roster(piece.team)
	slot := -1
	for i, p := range pieces {
		if p == nil {
			slot = i
			break
		}
	}
	if slot < 0 {
		return false
	}
	pieces[slot] = piece
	g.board.SetPiece(piece, x, y)
	if piece.pieceType == King && g.King(piece.team) == nil {
		g.setKing(piece)
	}
	return true
}

func (g *Game) setKing(king *Piece) {
	if king.team == TeamWhite {
		g.whiteKing = king
	} else {
		g.blackKing = king
	}
}

// AttemptMove moves the piece when its movement rule allows it and the move
// does not leave its own king in check. The turn is not advanced.
func (g *Game) AttemptMove(piece *Piece, x, y int) MoveResult {
	if !piece.CanMove(g.board, x, y) {
		return IllegalDestination
	}
	move, kept := g.speculate(piece, x, y, func(*Move) bool {
		return !g.kingInCheck(piece.team)
	})
	if !kept {
		return LeavesSelfInCheck
	}
	g.lastMove = move
	return Committed
}

// speculate applies the move, asks keep whether to retain it and undoes it
// otherwise. The board is always back to its prior state unless keep
// returned true.
func (g *Game) speculate(piece *Piece, x, y int, keep func(*Move) bool) (*Move, bool) {
	move := piece.MovePiece(g.board, x, y)
	if move == nil {
		return nil, false
	}
	if keep(move) {
		return move, true
	}
	g.UndoMove(move)
	return move, false
}

// kingInCheck reports whether the team's king is attacked on its current
// square. A team without a king is never in check.
func (g *Game) kingInCheck(team Team) bool {
	king := g.King(team)
	if king == nil {
		return false
	}
	return g.InCheck(king, king.Position.X, king.Position.Y)
}

// UndoMove reverses exactly one applied move. It returns false for a nil move.
func (g *Game) UndoMove(move *Move) bool {
	if move == nil {
		return false
	}
	g.board.RemoveAt(move.to.X, move.to.Y)
	g.board.SetPiece(move.attacker, move.from.X, move.from.Y)
	if move.defender != nil {
		g.board.SetPiece(move.defender, move.to.X, move.to.Y)
		move.defender.Captured = false
	}
	return true
}

// UndoLastMove reverses the last committed move and forgets it, so a second
// call returns false.
func (g *Game) UndoLastMove() bool {
	if !g.UndoMove(g.lastMove) {
		return false
	}
	g.lastMove = nil
	return true
}

func (g *Game) NextTurn() {
	g.turn = g.turn.Opposite()
}

// IsValidPiece reports whether (x, y) holds a piece of the side to move.
func (g *Game) IsValidPiece(x, y int) bool {
	if !g.board.IsValidSpace(x, y) {
		return false
	}
	piece := g.board.at(x, y)
	return piece != nil && piece.team == g.turn
}

func (g *Game) Turn() Team      { return g.turn }
func (g *Game) Board() *Board   { return g.board }
func (g *Game) LastMove() *Move { return g.lastMove }
func (g *Game) Selected() *Piece {
	return g.selected
}

func (g *Game) EscapeRule() EscapeRule { return g.escapeRule }

func (g *Game) King(team Team) *Piece {
	if team == TeamWhite {
		return g.whiteKing
	}
	return g.blackKing
}

// Pieces returns a copy of the team's roster, captured pieces included and
// empty slots nil.
func (g *Game) Pieces(team Team) []*Piece {
	pieces := *g.roster(team)
	return pieces[:]
}

func (g *Game) Piece(x, y int) (*Piece, error) {
	return g.board.Piece(x, y)
}

func (g *Game) Moves(piece *Piece) []Position {
	return piece.Moves(g.board)
}

// SetSelected selects the piece on (x, y), which may be nil for an empty
// square. Two negative coordinates clear the selection.
func (g *Game) SetSelected(x, y int) error {
	if x < 0 && y < 0 {
		g.selected = nil
		return nil
	}
	piece, err := g.board.Piece(x, y)
	if err != nil {
		return err
	}
	g.selected = piece
	return nil
}

func (g *Game) ClearSelected() {
	g.selected = nil
}
