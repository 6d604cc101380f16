package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/blobfall/internal/core"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	var fromYAML GameConfig
	require.NoError(t, yaml.Unmarshal(DefaultYAML(), &fromYAML))
	assert.Equal(t, DefaultConfig(), fromYAML)
	assert.NoError(t, DefaultConfig().Validate())
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("board:\n  rows: 24\nscoring:\n  line_points: 50\n"))
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.Board.Rows)
	assert.Equal(t, 10, cfg.Board.Cols, "untouched keys keep defaults")
	assert.Equal(t, 50, cfg.Scoring.LinePoints)
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timing:\n  lock_delay_ms: 700\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 700*time.Millisecond, cfg.Timing.LockDelay())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("board: [1, 2"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
		want   error
	}{
		{"tiny board", func(c *GameConfig) { c.Board.Rows = 4 }, ErrInvalidBoard},
		{"narrow wide mode", func(c *GameConfig) { c.Board.WideCols = 8 }, ErrInvalidBoard},
		{"too many lattice rows", func(c *GameConfig) { c.Board.LatticeRows = 15 }, ErrInvalidBoard},
		{"single color", func(c *GameConfig) { c.Palette.Colors = []string{"red"} }, ErrInvalidPalette},
		{"unknown color", func(c *GameConfig) { c.Palette.Colors = []string{"red", "teal"} }, ErrInvalidPalette},
		{"reserved color", func(c *GameConfig) { c.Palette.Colors = []string{"red", "lava"} }, ErrInvalidPalette},
		{"unknown set", func(c *GameConfig) { c.Pieces.Chaos = []string{"octomino"} }, ErrInvalidPieces},
		{"empty set list", func(c *GameConfig) { c.Pieces.Classic = nil }, ErrInvalidPieces},
		{"inverted fall interval", func(c *GameConfig) { c.Timing.MinFallIntervalMs = 2000 }, ErrInvalidTiming},
		{"lock keep of one", func(c *GameConfig) { c.Timing.LockKeep = 1 }, ErrInvalidTiming},
		{"exponent below one", func(c *GameConfig) { c.Scoring.BlobExponent = 0.5 }, ErrInvalidScoring},
		{"multiplier below one", func(c *GameConfig) { c.Scoring.TsunamiMultiplier = 0.5 }, ErrInvalidScoring},
		{"chance above one", func(c *GameConfig) { c.Disasters.Chance = 1.5 }, ErrInvalidDisasters},
		{"zero weights", func(c *GameConfig) { c.Disasters.Weights = DisasterWeights{} }, ErrInvalidDisasters},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestPaletteResolve(t *testing.T) {
	p := DefaultConfig().Palette
	base, err := p.Resolve(false)
	require.NoError(t, err)
	assert.Equal(t, []core.Color{core.ColorRed, core.ColorGreen, core.ColorYellow, core.ColorBlue, core.ColorMagenta}, base)

	wide, err := p.Resolve(true)
	require.NoError(t, err)
	assert.Len(t, wide, len(base)+2)
	assert.Len(t, p.Colors, len(base), "resolve must not grow the base palette")
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()
	ApplyPreset(&cfg, DifficultyFixed)
	assert.False(t, cfg.Difficulty.Enabled)

	cfg = DefaultConfig()
	ApplyPreset(&cfg, DifficultyEasy)
	assert.True(t, cfg.Difficulty.Enabled)
	assert.False(t, cfg.Disasters.Enabled)
	assert.Equal(t, 1000, cfg.Timing.FallIntervalMs)

	cfg = DefaultConfig()
	ApplyPreset(&cfg, DifficultyExpert)
	assert.InDelta(t, 0.8, cfg.Difficulty.InitialLevel, 1e-9)
	assert.InDelta(t, 0.08, cfg.Disasters.Chance, 1e-9)
	assert.NoError(t, cfg.Validate())
}

func TestTiers(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		tier       Tier
		tsunami    bool
		blackHoles bool
		volcanoes  bool
	}{
		{DifficultyEasy, TierEasy, false, false, false},
		{DifficultyNormal, TierNormal, true, true, false},
		{DifficultyFixed, TierNormal, true, true, false},
		{DifficultyHard, TierHard, true, true, false},
		{DifficultyExpert, TierExpert, true, true, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			tier := TierForPreset(tt.preset)
			assert.Equal(t, tt.tier, tier)
			assert.Equal(t, tt.tsunami, tier.Tsunamis())
			assert.Equal(t, tt.blackHoles, tier.BlackHoles())
			assert.Equal(t, tt.volcanoes, tier.Volcanoes())
		})
	}

	p, err := ParsePreset("hard")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, p)
	_, err = ParsePreset("nightmare")
	assert.Error(t, err)
}
