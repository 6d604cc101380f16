package config

import (
	"math"
	"time"
)

// Progress is what the difficulty curve is measured against.
type Progress struct {
	Score int
	Lines int
	Ticks int
}

// DifficultyManager calculates dynamic game parameters based on progress.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(p Progress) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "lines":
		progress = float64(p.Lines) / maxAt
	case "score":
		progress = float64(p.Score) / maxAt
	case "time":
		progress = float64(p.Ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// FallInterval returns the gravity interval of the active piece. The speed
// grows from 1x to (1+SpeedMultiplier)x over the curve and never drops below
// floor.
func (d *DifficultyManager) FallInterval(base, floor time.Duration, p Progress) time.Duration {
	speed := 1.0 + d.Level(p)*d.cfg.Scaling.SpeedMultiplier
	interval := time.Duration(float64(base) / speed)
	if interval < floor {
		return floor
	}
	return interval
}

// DisasterChance returns the per-settle disaster probability.
func (d *DifficultyManager) DisasterChance(base float64, p Progress) float64 {
	return clampF(base+d.Level(p)*d.cfg.Scaling.DisasterChance, 0.0, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
