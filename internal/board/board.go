// Package board implements the well of the falling-block game: the cell grid
// with its metadata, connected-region (blob) detection, interlock detection,
// the two-phase gravity solver and formation detection.
//
// Nothing in this package knows about pieces, timing or scoring. Every
// operation is deterministic and works on plain values so it can be driven
// from a tick loop or from tests alike.
package board

import (
	"strings"

	"github.com/vovakirdan/blobfall/internal/core"
)

// Standard well dimensions.
const (
	DefaultRows = 20
	DefaultCols = 10
	WideCols    = 12
)

// Cell represents a single cell of the well.
type Cell struct {
	Filled bool       // Whether the cell contains a block
	Color  core.Color // Valid only when Filled is true
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{}
}

// FilledCell returns a filled cell with the given color.
func FilledCell(c core.Color) Cell {
	return Cell{Filled: true, Color: c}
}

// Fade is the fade-in state of a freshly placed block.
type Fade struct {
	Active  bool
	Opacity float64 // 0.0 → 1.0
	Scale   float64 // 0.0 → 1.0
}

// Meta carries per-cell flags kept in a grid parallel to the cells.
type Meta struct {
	Gremlin bool // Placed by a gremlin; never part of a blob
	Lattice bool // Pre-filled block; physical but never moves
	Fade    Fade
}

// Block is a cell together with its position and metadata.
// It is the unit moved by gravity and collected by removals.
type Block struct {
	Pos  Coord
	Cell Cell
	Meta Meta
}

// Board is the well: a Rows x Cols grid of cells plus a parallel metadata grid.
// Cells are stored in row-major order: index = y*Cols + x.
type Board struct {
	Rows int
	Cols int

	cells []Cell
	meta  []Meta
}

// New creates an empty board.
func New(rows, cols int) *Board {
	return &Board{
		Rows:  rows,
		Cols:  cols,
		cells: make([]Cell, rows*cols),
		meta:  make([]Meta, rows*cols),
	}
}

func (b *Board) index(c Coord) int {
	return c.Y*b.Cols + c.X
}

// InBounds returns true if the coordinate is inside the well.
func (b *Board) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < b.Cols && c.Y >= 0 && c.Y < b.Rows
}

// Get returns the cell at c, or an empty cell when out of bounds.
func (b *Board) Get(c Coord) Cell {
	if !b.InBounds(c) {
		return Empty()
	}
	return b.cells[b.index(c)]
}

// Filled reports whether c is inside the well and occupied.
func (b *Board) Filled(c Coord) bool {
	return b.Get(c).Filled
}

// MetaAt returns the metadata of the cell at c.
func (b *Board) MetaAt(c Coord) Meta {
	if !b.InBounds(c) {
		return Meta{}
	}
	return b.meta[b.index(c)]
}

// Set fills the cell at c with a color and resets its metadata.
func (b *Board) Set(c Coord, color core.Color) {
	if !b.InBounds(c) {
		return
	}
	i := b.index(c)
	b.cells[i] = FilledCell(color)
	b.meta[i] = Meta{}
}

// SetMeta replaces the metadata of an occupied cell.
// Metadata on an empty cell is ignored so a fade can never outlive its block.
func (b *Board) SetMeta(c Coord, m Meta) {
	if !b.InBounds(c) {
		return
	}
	i := b.index(c)
	if !b.cells[i].Filled {
		return
	}
	b.meta[i] = m
}

// ClearCell empties the cell at c together with its metadata.
func (b *Board) ClearCell(c Coord) {
	if !b.InBounds(c) {
		return
	}
	i := b.index(c)
	b.cells[i] = Empty()
	b.meta[i] = Meta{}
}

// BlockAt returns the block stored at c.
func (b *Board) BlockAt(c Coord) Block {
	return Block{Pos: c, Cell: b.Get(c), Meta: b.MetaAt(c)}
}

// PutBlock writes a block at its position. Empty blocks clear the cell.
func (b *Board) PutBlock(blk Block) {
	if !b.InBounds(blk.Pos) {
		return
	}
	if !blk.Cell.Filled {
		b.ClearCell(blk.Pos)
		return
	}
	i := b.index(blk.Pos)
	b.cells[i] = blk.Cell
	b.meta[i] = blk.Meta
}

// Remove clears the given cells and returns the blocks that were there.
// Empty cells are skipped.
func (b *Board) Remove(coords []Coord) []Block {
	removed := make([]Block, 0, len(coords))
	for _, c := range coords {
		if !b.Filled(c) {
			continue
		}
		removed = append(removed, b.BlockAt(c))
		b.ClearCell(c)
	}
	return removed
}

// Clone returns a deep copy of the board (a phantom for simulation).
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	meta := make([]Meta, len(b.meta))
	copy(meta, b.meta)
	return &Board{Rows: b.Rows, Cols: b.Cols, cells: cells, meta: meta}
}

// Equal returns true if both boards have the same dimensions, cells and flags.
// Fade progress is ignored.
func (b *Board) Equal(other *Board) bool {
	if b.Rows != other.Rows || b.Cols != other.Cols {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
		if b.meta[i].Gremlin != other.meta[i].Gremlin || b.meta[i].Lattice != other.meta[i].Lattice {
			return false
		}
	}
	return true
}

// FilledCount returns the number of occupied cells.
func (b *Board) FilledCount() int {
	n := 0
	for _, c := range b.cells {
		if c.Filled {
			n++
		}
	}
	return n
}

// ColorCounts returns the multiset of colors on the board.
func (b *Board) ColorCounts() map[core.Color]int {
	counts := make(map[core.Color]int)
	for _, c := range b.cells {
		if c.Filled {
			counts[c.Color]++
		}
	}
	return counts
}

// RowFull reports whether every cell of row y is occupied.
func (b *Board) RowFull(y int) bool {
	if y < 0 || y >= b.Rows {
		return false
	}
	for x := 0; x < b.Cols; x++ {
		if !b.cells[y*b.Cols+x].Filled {
			return false
		}
	}
	return true
}

// RowEmpty reports whether row y has no occupied cell.
func (b *Board) RowEmpty(y int) bool {
	if y < 0 || y >= b.Rows {
		return true
	}
	for x := 0; x < b.Cols; x++ {
		if b.cells[y*b.Cols+x].Filled {
			return false
		}
	}
	return true
}

// ColumnTop returns the row of the highest occupied cell in column x,
// or Rows when the column is empty.
func (b *Board) ColumnTop(x int) int {
	for y := 0; y < b.Rows; y++ {
		if b.cells[y*b.Cols+x].Filled {
			return y
		}
	}
	return b.Rows
}

// FilledCoords returns all occupied coordinates in row-major order.
func (b *Board) FilledCoords() []Coord {
	coords := make([]Coord, 0, b.FilledCount())
	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Cols; x++ {
			if b.cells[y*b.Cols+x].Filled {
				coords = append(coords, C(x, y))
			}
		}
	}
	return coords
}

// TickFades advances every active fade-in by step (0..1) and drops finished ones.
func (b *Board) TickFades(step float64) {
	for i := range b.meta {
		f := &b.meta[i].Fade
		if !f.Active {
			continue
		}
		if !b.cells[i].Filled {
			*f = Fade{}
			continue
		}
		f.Opacity = core.ClampF(f.Opacity+step, 0, 1)
		f.Scale = core.ClampF(f.Scale+step, 0, 1)
		if f.Opacity >= 1 && f.Scale >= 1 {
			*f = Fade{}
		}
	}
}

// String renders the board using the legend of Parse.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.Rows; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < b.Cols; x++ {
			c := C(x, y)
			sb.WriteRune(glyphFor(b.Get(c), b.MetaAt(c)))
		}
	}
	return sb.String()
}
