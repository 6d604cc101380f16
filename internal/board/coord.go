package board

import "fmt"

// Coord is a board position. X increases to the right, Y increases downward;
// Y = Rows-1 is the floor of the well.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Below returns the coordinate directly beneath c.
func (c Coord) Below() Coord {
	return Coord{X: c.X, Y: c.Y + 1}
}

// less orders coordinates row-major (top row first, then left to right).
func (c Coord) less(o Coord) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

var (
	orthogonal = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	octal      = [8][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}
)
