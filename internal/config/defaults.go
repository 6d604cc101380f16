package config

import (
	_ "embed"
)

//go:embed defaults/blobfall.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration. It mirrors the embedded
// defaults/blobfall.yaml and is used when that cannot be parsed.
func DefaultConfig() GameConfig {
	return GameConfig{
		Board: BoardConfig{
			Rows:        20,
			Cols:        10,
			WideCols:    12,
			LatticeRows: 4,
		},
		Palette: PaletteConfig{
			Colors: []string{"red", "green", "yellow", "blue", "magenta"},
			Wide:   []string{"cyan", "orange"},
		},
		Pieces: PiecesConfig{
			Classic: []string{"tetromino"},
			Wide:    []string{"tetromino", "pentomino"},
			Chaos:   []string{"tetromino", "pentomino", "hexomino", "heptomino"},
			Preview: 3,
		},
		Timing: TimingConfig{
			FallIntervalMs:     800,
			MinFallIntervalMs:  80,
			SoftDropIntervalMs: 40,
			LockDelayMs:        500,
			LockKeep:           0.15,
			MaxLockResets:      15,
			SpawnGraceMs:       150,
			LineClearMs:        300,
			FormationMs:        600,
			FallRowMs:          30,
			GravityRetryMs:     50,
			FadeInMs:           250,
		},
		Gravity: GravityConfig{
			MaxPasses:  100,
			MaxRetries: 3,
		},
		Scoring: ScoringConfig{
			BlobExponent:        1.5,
			LinePoints:          100,
			LavaMultiplier:      2,
			StrikeLines:         4,
			StrikeMultiplier:    2,
			TsunamiMultiplier:   3,
			BlackHoleMultiplier: 4,
			VolcanoMultiplier:   5,
			SoftDropPoints:      1,
			HardDropPoints:      2,
			LinesPerLevel:       10,
		},
		Disasters: DisasterConfig{
			Enabled: true,
			Chance:  0.04,
			Weights: DisasterWeights{Tornado: 3, Earthquake: 2, Gremlin: 2},
			Tornado: TornadoConfig{
				DescendMs: 600,
				LiftMs:    400,
				CarryMs:   700,
				DropMs:    300,
			},
			Earthquake: EarthquakeConfig{ShakeMs: 800, CrackMs: 400},
			Volcano:    VolcanoConfig{WarmMs: 700, ProjectileMs: 120, MaxProjectiles: 12},
			Gremlin:    GremlinConfig{Bites: 3, BiteMs: 150},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "lines",
				MaxAt: 150,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 4.0,
				DisasterChance:  0.08,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
