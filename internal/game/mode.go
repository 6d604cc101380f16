package game

import (
	"fmt"

	"github.com/vovakirdan/blobfall/internal/config"
	"github.com/vovakirdan/blobfall/internal/piece"
	"github.com/vovakirdan/blobfall/internal/registry"
)

// Mode selects the well width, the shape sets and the palette.
type Mode int

const (
	ModeClassic Mode = iota // 10 wide, tetrominoes
	ModeWide                // 12 wide, tetrominoes and pentominoes, extended palette
	ModeChaos               // 10 wide, every shape family, lattice-filled floor
)

// Modes lists every mode.
var Modes = []Mode{ModeClassic, ModeWide, ModeChaos}

func init() {
	for _, m := range Modes {
		registry.MustRegister(m.Info(), func() registry.Game { return New(m) })
	}
}

// Info describes the mode under the default config.
func (m Mode) Info() registry.ModeInfo {
	def := config.DefaultConfig()
	return registry.ModeInfo{
		ID:     m.ID(),
		Title:  m.Title(),
		Blurb:  m.Blurb(),
		Order:  int(m),
		Cols:   m.Cols(def.Board),
		Shapes: m.setNames(def.Pieces),
	}
}

// ID returns the registry identifier of the mode.
func (m Mode) ID() string {
	switch m {
	case ModeClassic:
		return "blobfall"
	case ModeWide:
		return "blobfall_wide"
	case ModeChaos:
		return "blobfall_chaos"
	}
	panic(fmt.Sprintf("game: unknown mode %d", int(m)))
}

// Title returns the display name of the mode.
func (m Mode) Title() string {
	switch m {
	case ModeClassic:
		return "Blobfall"
	case ModeWide:
		return "Blobfall (Wide)"
	case ModeChaos:
		return "Blobfall (Chaos)"
	}
	panic(fmt.Sprintf("game: unknown mode %d", int(m)))
}

// Blurb returns a one-line description of the mode.
func (m Mode) Blurb() string {
	switch m {
	case ModeClassic:
		return "Four-block pieces in a standard well"
	case ModeWide:
		return "Bigger pieces and more colors in a wider well"
	case ModeChaos:
		return "Every piece family over a lattice floor"
	}
	panic(fmt.Sprintf("game: unknown mode %d", int(m)))
}

// Cols returns the well width for the mode.
func (m Mode) Cols(cfg config.BoardConfig) int {
	switch m {
	case ModeClassic, ModeChaos:
		return cfg.Cols
	case ModeWide:
		return cfg.WideCols
	}
	panic(fmt.Sprintf("game: unknown mode %d", int(m)))
}

// setNames returns the configured shape set names for the mode.
func (m Mode) setNames(cfg config.PiecesConfig) []string {
	switch m {
	case ModeClassic:
		return cfg.Classic
	case ModeWide:
		return cfg.Wide
	case ModeChaos:
		return cfg.Chaos
	}
	panic(fmt.Sprintf("game: unknown mode %d", int(m)))
}

// Shapes resolves the shapes the mode deals.
func (m Mode) Shapes(cfg config.PiecesConfig) []piece.Shape {
	var sets []piece.Set
	for _, name := range m.setNames(cfg) {
		if s, ok := piece.ParseSet(name); ok {
			sets = append(sets, s)
		}
	}
	if len(sets) == 0 {
		sets = []piece.Set{piece.SetTetromino}
	}
	return piece.Collect(sets...)
}

// WidePalette reports whether the mode uses the extended palette.
func (m Mode) WidePalette() bool {
	switch m {
	case ModeClassic, ModeChaos:
		return false
	case ModeWide:
		return true
	}
	panic(fmt.Sprintf("game: unknown mode %d", int(m)))
}

// Lattice reports whether the well starts with pre-filled lattice rows.
func (m Mode) Lattice() bool {
	switch m {
	case ModeClassic, ModeWide:
		return false
	case ModeChaos:
		return true
	}
	panic(fmt.Sprintf("game: unknown mode %d", int(m)))
}

// ParseMode maps a registry identifier back to its mode.
func ParseMode(id string) (Mode, error) {
	for _, m := range Modes {
		if m.ID() == id {
			return m, nil
		}
	}
	return 0, fmt.Errorf("game: unknown mode %q", id)
}
