package core

import (
	"fmt"
	"strings"
)

// Color represents a block or glyph color.
// Uses ANSI 256-color codes for terminal compatibility; the zero value is the
// terminal default and never appears on a filled board cell.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorPurple
	ColorGray  // Gremlin-placed blocks
	ColorLava  // Erupted volcano material
	ColorStone // Lattice (pre-filled) blocks
)

var colorNames = map[Color]string{
	ColorDefault: "default",
	ColorRed:     "red",
	ColorGreen:   "green",
	ColorYellow:  "yellow",
	ColorBlue:    "blue",
	ColorMagenta: "magenta",
	ColorCyan:    "cyan",
	ColorWhite:   "white",
	ColorOrange:  "orange",
	ColorPurple:  "purple",
	ColorGray:    "gray",
	ColorLava:    "lava",
	ColorStone:   "stone",
}

// String returns the lowercase color name.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// ParseColor converts a palette name from configuration into a Color.
func ParseColor(name string) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range colorNames {
		if n == name {
			return c, nil
		}
	}
	return ColorDefault, fmt.Errorf("core: unknown color %q", name)
}

// IsSpecial reports whether the color is reserved for engine-placed blocks
// and therefore not available in a piece palette.
func (c Color) IsSpecial() bool {
	return c == ColorDefault || c == ColorGray || c == ColorLava || c == ColorStone
}
