// Package piece implements the falling piece: polyomino shapes, movement with
// wall kicks, lock delay and the randomizer that feeds the well.
package piece

import "strings"

// Shape is an immutable, trimmed polyomino. Grid[y][x] is true where the
// shape has a cell.
type Shape struct {
	Name string
	Grid [][]bool
}

// ParseShape builds a shape from rows where '#' marks a cell.
func ParseShape(name string, rows ...string) Shape {
	grid := make([][]bool, len(rows))
	for y, row := range rows {
		grid[y] = make([]bool, len(row))
		for x, r := range row {
			grid[y][x] = r == '#'
		}
	}
	return Shape{Name: name, Grid: grid}
}

// Width returns the number of columns of the grid.
func (s Shape) Width() int {
	if len(s.Grid) == 0 {
		return 0
	}
	return len(s.Grid[0])
}

// Height returns the number of rows of the grid.
func (s Shape) Height() int {
	return len(s.Grid)
}

// Size returns the number of cells.
func (s Shape) Size() int {
	n := 0
	for _, row := range s.Grid {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

// Rotate returns the shape turned a quarter clockwise (cw) or counterclockwise.
func (s Shape) Rotate(cw bool) Shape {
	h, w := s.Height(), s.Width()
	grid := make([][]bool, w)
	for i := range grid {
		grid[i] = make([]bool, h)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if cw {
				grid[x][h-1-y] = s.Grid[y][x]
			} else {
				grid[w-1-x][y] = s.Grid[y][x]
			}
		}
	}
	return Shape{Name: s.Name, Grid: grid}
}

// Equal reports whether both shapes cover the same cells.
func (s Shape) Equal(o Shape) bool {
	if s.Height() != o.Height() || s.Width() != o.Width() {
		return false
	}
	for y := range s.Grid {
		for x := range s.Grid[y] {
			if s.Grid[y][x] != o.Grid[y][x] {
				return false
			}
		}
	}
	return true
}

// String renders the shape with '#' and '.'.
func (s Shape) String() string {
	var sb strings.Builder
	for y, row := range s.Grid {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, v := range row {
			if v {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
