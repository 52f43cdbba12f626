package model

import "fmt"

// Move is the record of one applied move, enough to reverse it. The defender
// is nil when the attacker moved onto an empty square.
type Move struct {
	attacker *Piece
	defender *Piece
	from     Position
	to       Position
}

func newMove(attacker, defender *Piece, x, y int) *Move {
	return &Move{
		attacker: attacker,
		defender: defender,
		from:     attacker.Position,
		to:       Position{X: x, Y: y},
	}
}

func (m *Move) Attacker() *Piece { return m.attacker }
func (m *Move) Defender() *Piece { return m.defender }
func (m *Move) From() Position   { return m.from }
func (m *Move) To() Position     { return m.to }

func (m *Move) String() string {
	capture := "-"
	if m.defender != nil {
		capture = "x"
	}
	return fmt.Sprintf("%s%s%s%s", m.attacker.pieceType.Notation(), m.from.getSquareNotation(), capture, m.to.getSquareNotation())
}

// SimpleMove is the from/to pair of a move as clients see it.
type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func (m *Move) Simple() SimpleMove {
	return SimpleMove{From: m.from, To: m.to}
}
