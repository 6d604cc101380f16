package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/blobfall/internal/core"
)

// Validation errors, matched with errors.Is.
var (
	ErrInvalidBoard     = errors.New("invalid board")
	ErrInvalidPalette   = errors.New("invalid palette")
	ErrInvalidPieces    = errors.New("invalid pieces")
	ErrInvalidTiming    = errors.New("invalid timing")
	ErrInvalidScoring   = errors.New("invalid scoring")
	ErrInvalidDisasters = errors.New("invalid disasters")
)

// knownSets mirrors the shape families the piece package provides.
var knownSets = map[string]bool{
	"tetromino": true,
	"pentomino": true,
	"hexomino":  true,
	"heptomino": true,
}

// Validate checks the configuration for values the game cannot run with.
func (c GameConfig) Validate() error {
	b := c.Board
	if b.Rows < 8 || b.Cols < 7 || b.WideCols < b.Cols {
		return fmt.Errorf("%w: %dx%d (wide %d)", ErrInvalidBoard, b.Rows, b.Cols, b.WideCols)
	}
	if b.LatticeRows < 0 || b.LatticeRows >= b.Rows/2 {
		return fmt.Errorf("%w: lattice_rows %d", ErrInvalidBoard, b.LatticeRows)
	}

	if len(c.Palette.Colors) < 2 {
		return fmt.Errorf("%w: need at least two colors", ErrInvalidPalette)
	}
	for _, name := range append(append([]string{}, c.Palette.Colors...), c.Palette.Wide...) {
		col, err := core.ParseColor(name)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPalette, err)
		}
		if col.IsSpecial() {
			return fmt.Errorf("%w: %s is reserved", ErrInvalidPalette, name)
		}
	}

	for mode, sets := range map[string][]string{"classic": c.Pieces.Classic, "wide": c.Pieces.Wide, "chaos": c.Pieces.Chaos} {
		if len(sets) == 0 {
			return fmt.Errorf("%w: %s has no shape sets", ErrInvalidPieces, mode)
		}
		for _, s := range sets {
			if !knownSets[s] {
				return fmt.Errorf("%w: %s uses unknown set %q", ErrInvalidPieces, mode, s)
			}
		}
	}
	if c.Pieces.Preview < 0 || c.Pieces.Preview > 6 {
		return fmt.Errorf("%w: preview %d", ErrInvalidPieces, c.Pieces.Preview)
	}

	t := c.Timing
	if t.FallIntervalMs <= 0 || t.MinFallIntervalMs <= 0 || t.MinFallIntervalMs > t.FallIntervalMs {
		return fmt.Errorf("%w: fall interval %d..%d ms", ErrInvalidTiming, t.MinFallIntervalMs, t.FallIntervalMs)
	}
	if t.LockDelayMs <= 0 || t.LockKeep < 0 || t.LockKeep >= 1 || t.MaxLockResets < 0 {
		return fmt.Errorf("%w: lock delay", ErrInvalidTiming)
	}
	if t.SoftDropIntervalMs <= 0 || t.GravityRetryMs <= 0 {
		return fmt.Errorf("%w: soft drop or gravity retry", ErrInvalidTiming)
	}
	if t.SpawnGraceMs < 0 || t.LineClearMs < 0 || t.FormationMs < 0 || t.FallRowMs < 0 || t.FadeInMs < 0 {
		return fmt.Errorf("%w: negative animation time", ErrInvalidTiming)
	}

	s := c.Scoring
	if s.BlobExponent < 1 || s.LinePoints < 0 || s.LinesPerLevel <= 0 || s.StrikeLines <= 0 {
		return fmt.Errorf("%w: exponent %.2f, lines per level %d", ErrInvalidScoring, s.BlobExponent, s.LinesPerLevel)
	}
	for _, m := range []float64{s.LavaMultiplier, s.StrikeMultiplier, s.TsunamiMultiplier, s.BlackHoleMultiplier, s.VolcanoMultiplier} {
		if m < 1 {
			return fmt.Errorf("%w: multiplier %.2f below 1", ErrInvalidScoring, m)
		}
	}

	d := c.Disasters
	if d.Chance < 0 || d.Chance > 1 {
		return fmt.Errorf("%w: chance %.2f", ErrInvalidDisasters, d.Chance)
	}
	if d.Weights.Tornado < 0 || d.Weights.Earthquake < 0 || d.Weights.Gremlin < 0 {
		return fmt.Errorf("%w: negative weight", ErrInvalidDisasters)
	}
	if d.Enabled && d.Weights.Tornado+d.Weights.Earthquake+d.Weights.Gremlin == 0 {
		return fmt.Errorf("%w: all weights are zero", ErrInvalidDisasters)
	}
	if d.Volcano.MaxProjectiles <= 0 || d.Gremlin.Bites < 0 {
		return fmt.Errorf("%w: projectiles %d, bites %d", ErrInvalidDisasters, d.Volcano.MaxProjectiles, d.Gremlin.Bites)
	}
	return nil
}

// Resolve maps the palette names to colors. The wide palette extends the
// base palette when wide is true.
func (p PaletteConfig) Resolve(wide bool) ([]core.Color, error) {
	names := p.Colors
	if wide {
		names = append(append([]string{}, p.Colors...), p.Wide...)
	}
	out := make([]core.Color, 0, len(names))
	for _, n := range names {
		c, err := core.ParseColor(n)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPalette, err)
		}
		out = append(out, c)
	}
	return out, nil
}
