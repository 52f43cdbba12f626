package model

// PieceState is the client view of one piece.
type PieceState struct {
	Type     PieceType `json:"type"`
	Team     Team      `json:"team"`
	Position Position  `json:"position"`
}

type CapturedPieces struct {
	White []PieceState `json:"white"`
	Black []PieceState `json:"black"`
}

// GameState is a JSON-ready snapshot of a game, taken from the point of view
// of the side to move.
type GameState struct {
	Width          int             `json:"width"`
	Height         int             `json:"height"`
	Board          [][]*PieceState `json:"board"` // [y][x]
	ToMove         Team            `json:"toMove"`
	Status         Status          `json:"status"`
	EscapeRule     EscapeRule      `json:"escapeRule"`
	CapturedPieces CapturedPieces  `json:"capturedPieces"`
	SelectedSquare *Position       `json:"selectedSquare"`
	LegalMoves     []Position      `json:"legalMoves"`
	LastMove       *SimpleMove     `json:"lastMove"`
}

func (p *Piece) State() PieceState {
	return PieceState{Type: p.pieceType, Team: p.team, Position: p.Position}
}

// Snapshot copies the current position. LegalMoves lists the destinations of
// the selected piece, if any.
func (g *Game) Snapshot() GameState {
	state := GameState{
		Width:      g.board.Width(),
		Height:     g.board.Height(),
		ToMove:     g.turn,
		Status:     g.Status(g.turn),
		EscapeRule: g.escapeRule,
		CapturedPieces: CapturedPieces{
			White: capturedStates(g.white[:]),
			Black: capturedStates(g.black[:]),
		},
		LegalMoves: make([]Position, 0),
	}
	for y := 0; y < g.board.Height(); y++ {
		row := make([]*PieceState, g.board.Width())
		for x := range row {
			if p := g.board.at(x, y); p != nil {
				ps := p.State()
				row[x] = &ps
			}
		}
		state.Board = append(state.Board, row)
	}
	if g.selected != nil && !g.selected.Captured {
		pos := g.selected.Position
		state.SelectedSquare = &pos
		state.LegalMoves = g.selected.Moves(g.board)
	}
	if g.lastMove != nil {
		lm := g.lastMove.Simple()
		state.LastMove = &lm
	}
	return state
}

func capturedStates(pieces []*Piece) []PieceState {
	out := make([]PieceState, 0)
	for _, p := range pieces {
		if p != nil && p.Captured {
			out = append(out, p.State())
		}
	}
	return out
}
