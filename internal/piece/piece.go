package piece

import (
	"github.com/vovakirdan/blobfall/internal/board"
	"github.com/vovakirdan/blobfall/internal/core"
)

// KickOffsets are the horizontal offsets tried, in order, when a rotation
// collides in place.
var KickOffsets = [5]int{0, -1, 1, -2, 2}

// Piece is the active falling piece. X and Y locate the top-left corner of
// the shape grid; Y may be negative while the piece enters the well.
type Piece struct {
	Shape    Shape
	Color    core.Color
	X        int
	Y        int
	Rotation int // Quarter turns clockwise, 0..3
}

// Spawn places a shape horizontally centered with its bottom row on row 0.
func Spawn(s Shape, color core.Color, cols int) *Piece {
	return &Piece{
		Shape: s,
		Color: color,
		X:     (cols - s.Width()) / 2,
		Y:     1 - s.Height(),
	}
}

// Cells returns the board coordinates covered by the piece.
func (p *Piece) Cells() []board.Coord {
	cells := make([]board.Coord, 0, 8)
	for y, row := range p.Shape.Grid {
		for x, v := range row {
			if v {
				cells = append(cells, board.C(p.X+x, p.Y+y))
			}
		}
	}
	return cells
}

// Collides reports whether the piece overlaps a wall, the floor or a filled
// cell. Cells above the well only collide with the side walls.
func (p *Piece) Collides(b *board.Board) bool {
	return p.collidesAt(b, 0, 0)
}

func (p *Piece) collidesAt(b *board.Board, dx, dy int) bool {
	for _, c := range p.Cells() {
		c = c.Add(dx, dy)
		if c.X < 0 || c.X >= b.Cols || c.Y >= b.Rows {
			return true
		}
		if c.Y >= 0 && b.Filled(c) {
			return true
		}
	}
	return false
}

// Move shifts the piece when the destination is free.
func (p *Piece) Move(b *board.Board, dx, dy int) bool {
	if p.collidesAt(b, dx, dy) {
		return false
	}
	p.X += dx
	p.Y += dy
	return true
}

// Rotate turns the piece, trying each kick offset in order. When every
// offset collides the piece keeps its previous shape and position.
func (p *Piece) Rotate(b *board.Board, cw bool) bool {
	prevShape, prevX, prevRot := p.Shape, p.X, p.Rotation

	p.Shape = prevShape.Rotate(cw)
	for _, dx := range KickOffsets {
		p.X = prevX + dx
		if !p.Collides(b) {
			if cw {
				p.Rotation = (prevRot + 1) % 4
			} else {
				p.Rotation = (prevRot + 3) % 4
			}
			return true
		}
	}

	p.Shape, p.X, p.Rotation = prevShape, prevX, prevRot
	return false
}

// DropDistance returns how many rows the piece can fall before resting.
func (p *Piece) DropDistance(b *board.Board) int {
	d := 0
	for !p.collidesAt(b, 0, d+1) {
		d++
	}
	return d
}

// Resting reports whether moving down one row would collide.
func (p *Piece) Resting(b *board.Board) bool {
	return p.collidesAt(b, 0, 1)
}

// AboveTop reports whether any cell is above row 0.
func (p *Piece) AboveTop() bool {
	for _, c := range p.Cells() {
		if c.Y < 0 {
			return true
		}
	}
	return false
}

// Ghost returns a copy of the piece moved to its landing position.
func (p *Piece) Ghost(b *board.Board) *Piece {
	g := *p
	g.Y += p.DropDistance(b)
	return &g
}

// Merge writes the piece into the board and returns the placed coordinates.
// Cells above the well are dropped.
func (p *Piece) Merge(b *board.Board) []board.Coord {
	placed := make([]board.Coord, 0, p.Shape.Size())
	for _, c := range p.Cells() {
		if !b.InBounds(c) {
			continue
		}
		b.Set(c, p.Color)
		placed = append(placed, c)
	}
	return placed
}
