package board

import (
	"fmt"

	"github.com/vovakirdan/blobfall/internal/core"
)

// Legend used by Parse and String.
//
//	.  empty        R G Y B M C W O P  palette colors
//	L  lava         #  lattice (stone)  g  gremlin block
var glyphColors = map[rune]core.Color{
	'R': core.ColorRed,
	'G': core.ColorGreen,
	'Y': core.ColorYellow,
	'B': core.ColorBlue,
	'M': core.ColorMagenta,
	'C': core.ColorCyan,
	'W': core.ColorWhite,
	'O': core.ColorOrange,
	'P': core.ColorPurple,
	'L': core.ColorLava,
}

func glyphFor(c Cell, m Meta) rune {
	if !c.Filled {
		return '.'
	}
	switch {
	case m.Lattice:
		return '#'
	case m.Gremlin:
		return 'g'
	}
	for r, col := range glyphColors {
		if col == c.Color {
			return r
		}
	}
	return '?'
}

// Parse builds a board from an ASCII picture, one string per row.
// All rows must have the same width.
func Parse(rows ...string) (*Board, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("board: empty picture")
	}
	cols := len([]rune(rows[0]))
	b := New(len(rows), cols)
	for y, line := range rows {
		runes := []rune(line)
		if len(runes) != cols {
			return nil, fmt.Errorf("board: row %d has width %d, want %d", y, len(runes), cols)
		}
		for x, r := range runes {
			c := C(x, y)
			switch r {
			case '.':
			case '#':
				b.Set(c, core.ColorStone)
				b.SetMeta(c, Meta{Lattice: true})
			case 'g':
				b.Set(c, core.ColorGray)
				b.SetMeta(c, Meta{Gremlin: true})
			default:
				col, ok := glyphColors[r]
				if !ok {
					return nil, fmt.Errorf("board: unknown glyph %q at %v", r, c)
				}
				b.Set(c, col)
			}
		}
	}
	return b, nil
}

// MustParse is like Parse but panics on malformed pictures.
// Intended for fixtures.
func MustParse(rows ...string) *Board {
	b, err := Parse(rows...)
	if err != nil {
		panic(err)
	}
	return b
}
