package piece

// Set names a family of shapes a mode draws from.
type Set int

const (
	SetTetromino Set = iota
	SetPentomino
	SetHexomino
	SetHeptomino
)

// String returns the set name.
func (s Set) String() string {
	switch s {
	case SetTetromino:
		return "tetromino"
	case SetPentomino:
		return "pentomino"
	case SetHexomino:
		return "hexomino"
	case SetHeptomino:
		return "heptomino"
	default:
		return "unknown"
	}
}

var tetrominoes = []Shape{
	ParseShape("I", "####"),
	ParseShape("O", "##", "##"),
	ParseShape("T", "###", ".#."),
	ParseShape("S", ".##", "##."),
	ParseShape("Z", "##.", ".##"),
	ParseShape("J", "#..", "###"),
	ParseShape("L", "..#", "###"),
}

var pentominoes = []Shape{
	ParseShape("F5", ".##", "##.", ".#."),
	ParseShape("I5", "#####"),
	ParseShape("L5", "...#", "####"),
	ParseShape("N5", "..##", "###."),
	ParseShape("P5", "##", "##", "#."),
	ParseShape("T5", "###", ".#.", ".#."),
	ParseShape("U5", "#.#", "###"),
	ParseShape("V5", "#..", "#..", "###"),
	ParseShape("W5", "#..", "##.", ".##"),
	ParseShape("X5", ".#.", "###", ".#."),
	ParseShape("Y5", "..#.", "####"),
	ParseShape("Z5", "##.", ".#.", ".##"),
}

var hexominoes = []Shape{
	ParseShape("I6", "######"),
	ParseShape("L6", "....#", "#####"),
	ParseShape("C6", "##", "#.", "##", "#."),
	ParseShape("U6", "#..#", "####"),
	ParseShape("S6", "..##", "###.", "#..."),
	ParseShape("R6", "##.", "###", ".#."),
	ParseShape("O6", "###", "###"),
	ParseShape("T6", "####", ".#..", ".#.."),
}

var heptominoes = []Shape{
	ParseShape("I7", "#######"),
	ParseShape("C7", "###", "#.#", "#.#"),
	ParseShape("H7", "#.#", "###", "#.#"),
	ParseShape("T7", "#####", "..#..", "..#.."),
	ParseShape("Z7", "##..", ".##.", "..##", "...#"),
	ParseShape("E7", "###", "#..", "###"),
}

// Shapes returns the shapes of one set. The returned slice must not be modified.
func Shapes(s Set) []Shape {
	switch s {
	case SetTetromino:
		return tetrominoes
	case SetPentomino:
		return pentominoes
	case SetHexomino:
		return hexominoes
	case SetHeptomino:
		return heptominoes
	default:
		return nil
	}
}

// Collect concatenates the shapes of several sets.
func Collect(sets ...Set) []Shape {
	var out []Shape
	for _, s := range sets {
		out = append(out, Shapes(s)...)
	}
	return out
}

// ParseSet maps a set name to its value.
func ParseSet(name string) (Set, bool) {
	for s := SetTetromino; s <= SetHeptomino; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}
