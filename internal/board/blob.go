package board

import (
	"slices"

	"github.com/vovakirdan/blobfall/internal/core"
)

// Blob is a maximal 4-connected region of same-colored cells.
// Blobs carry no identity across solves: ID is the index in the slice
// returned by BuildBlobs.
type Blob struct {
	ID        int
	Color     core.Color
	Positions []Coord // Row-major order

	set    map[Coord]struct{}
	ranges map[int]colRange
}

type colRange struct {
	minY, maxY int
}

func newBlob(id int, color core.Color, positions []Coord) *Blob {
	slices.SortFunc(positions, func(a, b Coord) int {
		switch {
		case a.less(b):
			return -1
		case b.less(a):
			return 1
		}
		return 0
	})
	bl := &Blob{
		ID:        id,
		Color:     color,
		Positions: positions,
		set:       make(map[Coord]struct{}, len(positions)),
		ranges:    make(map[int]colRange),
	}
	for _, p := range positions {
		bl.set[p] = struct{}{}
		r, ok := bl.ranges[p.X]
		if !ok {
			bl.ranges[p.X] = colRange{minY: p.Y, maxY: p.Y}
			continue
		}
		r.minY = min(r.minY, p.Y)
		r.maxY = max(r.maxY, p.Y)
		bl.ranges[p.X] = r
	}
	return bl
}

// Size returns the number of cells in the blob.
func (bl *Blob) Size() int {
	return len(bl.Positions)
}

// Contains reports whether c belongs to the blob.
func (bl *Blob) Contains(c Coord) bool {
	_, ok := bl.set[c]
	return ok
}

// Columns returns the occupied columns in ascending order.
func (bl *Blob) Columns() []int {
	cols := make([]int, 0, len(bl.ranges))
	for x := range bl.ranges {
		cols = append(cols, x)
	}
	slices.Sort(cols)
	return cols
}

// ColumnRange returns the vertical extent of the blob in column x.
func (bl *Blob) ColumnRange(x int) (minY, maxY int, ok bool) {
	r, ok := bl.ranges[x]
	return r.minY, r.maxY, ok
}

// Top returns the smallest row occupied by the blob.
func (bl *Blob) Top() int {
	if len(bl.Positions) == 0 {
		return 0
	}
	return bl.Positions[0].Y
}

// Bottom returns the lowest (largest) row occupied by the blob.
func (bl *Blob) Bottom() int {
	if len(bl.Positions) == 0 {
		return 0
	}
	return bl.Positions[len(bl.Positions)-1].Y
}

// TouchesLeft reports whether the blob has a cell in column 0.
func (bl *Blob) TouchesLeft() bool {
	_, ok := bl.ranges[0]
	return ok
}

// TouchesRight reports whether the blob has a cell in the last column.
func (bl *Blob) TouchesRight(cols int) bool {
	_, ok := bl.ranges[cols-1]
	return ok
}

// TouchesFloor reports whether the blob has a cell on the floor row.
func (bl *Blob) TouchesFloor(rows int) bool {
	return len(bl.Positions) > 0 && bl.Bottom() == rows-1
}

// HasLattice reports whether any cell of the blob is a lattice block on b.
func (bl *Blob) HasLattice(b *Board) bool {
	for _, p := range bl.Positions {
		if b.MetaAt(p).Lattice {
			return true
		}
	}
	return false
}

// BuildOptions constrain adjacency during blob construction.
type BuildOptions struct {
	// Barrier, when it returns true, keeps two adjacent same-colored cells apart.
	Barrier func(a, b Coord) bool

	// Marker, when set, requires adjacent cells to carry the same marker.
	Marker func(c Coord) int

	// IncludeGremlin keeps gremlin-placed cells as blob members.
	IncludeGremlin bool

	// TraverseGremlin lets excluded gremlin cells bridge connectivity
	// without becoming members.
	TraverseGremlin bool

	// KeepLatticeOnly keeps regions made solely of lattice cells.
	KeepLatticeOnly bool
}

// BuildBlobs flood-fills the board and returns every blob in scan order
// (first cell top-left to bottom-right). It uses an explicit stack so large
// regions cannot exhaust the call stack.
func BuildBlobs(b *Board, opts BuildOptions) []*Blob {
	visited := make([]bool, b.Rows*b.Cols)
	excluded := func(c Coord) bool {
		return !opts.IncludeGremlin && b.MetaAt(c).Gremlin
	}

	var blobs []*Blob
	stack := make([]Coord, 0, 64)

	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Cols; x++ {
			start := C(x, y)
			cell := b.Get(start)
			if !cell.Filled || visited[b.index(start)] || excluded(start) {
				continue
			}

			visited[b.index(start)] = true
			stack = append(stack[:0], start)
			var members []Coord

			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if !excluded(cur) {
					members = append(members, cur)
				}

				for _, d := range orthogonal {
					n := cur.Add(d[0], d[1])
					if !b.InBounds(n) || visited[b.index(n)] {
						continue
					}
					nc := b.Get(n)
					if !nc.Filled || nc.Color != cell.Color {
						continue
					}
					if excluded(n) && !opts.TraverseGremlin {
						continue
					}
					if opts.Barrier != nil && opts.Barrier(cur, n) {
						continue
					}
					if opts.Marker != nil && opts.Marker(cur) != opts.Marker(n) {
						continue
					}
					visited[b.index(n)] = true
					stack = append(stack, n)
				}
			}

			if len(members) == 0 {
				continue
			}
			if !opts.KeepLatticeOnly && latticeOnly(b, members) {
				continue
			}
			blobs = append(blobs, newBlob(len(blobs), cell.Color, members))
		}
	}
	return blobs
}

func latticeOnly(b *Board, cells []Coord) bool {
	for _, c := range cells {
		if !b.MetaAt(c).Lattice {
			return false
		}
	}
	return true
}

// BlobAt returns the blob containing c, or nil.
func BlobAt(blobs []*Blob, c Coord) *Blob {
	for _, bl := range blobs {
		if bl.Contains(c) {
			return bl
		}
	}
	return nil
}
