package model

import (
	"fmt"
	"strings"
)

const (
	StandardWidth  = 8
	StandardHeight = 8
)

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) getSquareNotation() string {
	return fmt.Sprintf("%c%d", p.X+97, StandardHeight-p.Y)
}

// Board is aligned with (0, 0) in the top-left corner. Black sets up along the
// top rows and white along the bottom rows. Empty cells are nil.
type Board struct {
	width  int
	height int
	cells  [][]*Piece // [y][x]
}

func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	board := &Board{width: width, height: height}
	for i := 0; i < height; i++ {
		board.cells = append(board.cells, make([]*Piece, width))
	}
	return board, nil
}

func NewStandardBoard() *Board {
	board, _ := NewBoard(StandardWidth, StandardHeight)
	return board
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

func (b *Board) IsValidSpace(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// SetPiece records the piece in the cell when (x, y) is on the board. The
// piece's own position is updated either way, so callers must validate
// coordinates first.
func (b *Board) SetPiece(piece *Piece, x, y int) {
	if b.IsValidSpace(x, y) {
		b.cells[y][x] = piece
	}
	piece.Position = Position{X: x, Y: y}
}

func (b *Board) RemovePiece(piece *Piece) {
	b.RemoveAt(piece.Position.X, piece.Position.Y)
}

func (b *Board) RemoveAt(x, y int) {
	if b.IsValidSpace(x, y) {
		b.cells[y][x] = nil
	}
}

func (b *Board) Piece(x, y int) (*Piece, error) {
	if !b.IsValidSpace(x, y) {
		return nil, fmt.Errorf("%w: x = %d, y = %d", ErrOutOfBounds, x, y)
	}
	return b.cells[y][x], nil
}

// at is Piece for coordinates the caller already knows are on the board.
func (b *Board) at(x, y int) *Piece {
	return b.cells[y][x]
}

func (b *Board) isEmpty(x, y int) bool {
	return b.cells[y][x] == nil
}

// String draws the board one row per line, '.' for empty cells.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if p := b.cells[y][x]; p != nil {
				sb.WriteString(p.String())
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
