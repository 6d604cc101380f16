// Package config provides YAML-based game configuration loading and
// difficulty management for blobfall.
package config

import "time"

// GameConfig contains all tunable parameters of the game.
type GameConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Palette    PaletteConfig    `yaml:"palette"`
	Pieces     PiecesConfig     `yaml:"pieces"`
	Timing     TimingConfig     `yaml:"timing"`
	Gravity    GravityConfig    `yaml:"gravity"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Disasters  DisasterConfig   `yaml:"disasters"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the well dimensions per mode.
type BoardConfig struct {
	Rows        int `yaml:"rows"`
	Cols        int `yaml:"cols"`
	WideCols    int `yaml:"wide_cols"`
	LatticeRows int `yaml:"lattice_rows"` // Pre-filled rows in chaos mode
}

// PaletteConfig lists the colors pieces spawn with.
type PaletteConfig struct {
	Colors []string `yaml:"colors"`
	Wide   []string `yaml:"wide"` // Extra colors for the wide mode
}

// PiecesConfig selects shape sets per mode.
type PiecesConfig struct {
	Classic []string `yaml:"classic"`
	Wide    []string `yaml:"wide"`
	Chaos   []string `yaml:"chaos"`
	Preview int      `yaml:"preview"` // Number of upcoming pieces shown
}

// TimingConfig holds every duration in milliseconds.
type TimingConfig struct {
	FallIntervalMs     int     `yaml:"fall_interval_ms"`
	MinFallIntervalMs  int     `yaml:"min_fall_interval_ms"`
	SoftDropIntervalMs int     `yaml:"soft_drop_interval_ms"`
	LockDelayMs        int     `yaml:"lock_delay_ms"`
	LockKeep           float64 `yaml:"lock_keep"` // Share of remaining lock time kept per reset
	MaxLockResets      int     `yaml:"max_lock_resets"`
	SpawnGraceMs       int     `yaml:"spawn_grace_ms"`
	LineClearMs        int     `yaml:"line_clear_ms"`
	FormationMs        int     `yaml:"formation_ms"`
	FallRowMs          int     `yaml:"fall_row_ms"` // Fall animation time per row
	GravityRetryMs     int     `yaml:"gravity_retry_ms"`
	FadeInMs           int     `yaml:"fade_in_ms"`
}

// GravityConfig bounds the solver and its self-healing.
type GravityConfig struct {
	MaxPasses  int `yaml:"max_passes"`
	MaxRetries int `yaml:"max_retries"` // Re-solves after a floating row before giving up
}

// ScoringConfig defines every scoring constant.
type ScoringConfig struct {
	BlobExponent        float64 `yaml:"blob_exponent"`
	LinePoints          int     `yaml:"line_points"`
	LavaMultiplier      float64 `yaml:"lava_multiplier"`
	StrikeLines         int     `yaml:"strike_lines"`
	StrikeMultiplier    float64 `yaml:"strike_multiplier"`
	TsunamiMultiplier   float64 `yaml:"tsunami_multiplier"`
	BlackHoleMultiplier float64 `yaml:"black_hole_multiplier"`
	VolcanoMultiplier   float64 `yaml:"volcano_multiplier"`
	SoftDropPoints      int     `yaml:"soft_drop_points"`
	HardDropPoints      int     `yaml:"hard_drop_points"`
	LinesPerLevel       int     `yaml:"lines_per_level"`
}

// DisasterConfig defines the random events rolled after the board settles.
type DisasterConfig struct {
	Enabled    bool             `yaml:"enabled"`
	Chance     float64          `yaml:"chance"` // Base chance per settle
	Weights    DisasterWeights  `yaml:"weights"`
	Tornado    TornadoConfig    `yaml:"tornado"`
	Earthquake EarthquakeConfig `yaml:"earthquake"`
	Volcano    VolcanoConfig    `yaml:"volcano"`
	Gremlin    GremlinConfig    `yaml:"gremlin"`
}

// DisasterWeights are relative odds between disaster kinds.
type DisasterWeights struct {
	Tornado    int `yaml:"tornado"`
	Earthquake int `yaml:"earthquake"`
	Gremlin    int `yaml:"gremlin"`
}

// TornadoConfig holds tornado phase durations.
type TornadoConfig struct {
	DescendMs int `yaml:"descend_ms"`
	LiftMs    int `yaml:"lift_ms"`
	CarryMs   int `yaml:"carry_ms"`
	DropMs    int `yaml:"drop_ms"`
}

// EarthquakeConfig holds earthquake phase durations.
type EarthquakeConfig struct {
	ShakeMs int `yaml:"shake_ms"`
	CrackMs int `yaml:"crack_ms"`
}

// VolcanoConfig holds eruption parameters.
type VolcanoConfig struct {
	WarmMs         int `yaml:"warm_ms"`
	ProjectileMs   int `yaml:"projectile_ms"`
	MaxProjectiles int `yaml:"max_projectiles"`
}

// GremlinConfig holds gremlin attack parameters.
type GremlinConfig struct {
	Bites  int `yaml:"bites"`
	BiteMs int `yaml:"bite_ms"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "lines", "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Lines/score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Fall speed added at max difficulty
	DisasterChance  float64 `yaml:"disaster_chance"`  // Disaster chance added at max difficulty
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// FallInterval returns the base gravity interval of the active piece.
func (t TimingConfig) FallInterval() time.Duration { return ms(t.FallIntervalMs) }

// MinFallInterval returns the fastest gravity interval.
func (t TimingConfig) MinFallInterval() time.Duration { return ms(t.MinFallIntervalMs) }

// SoftDropInterval returns the interval between soft-drop steps.
func (t TimingConfig) SoftDropInterval() time.Duration { return ms(t.SoftDropIntervalMs) }

// LockDelay returns the lock delay.
func (t TimingConfig) LockDelay() time.Duration { return ms(t.LockDelayMs) }

// SpawnGrace returns the period after spawning during which a piece cannot lock.
func (t TimingConfig) SpawnGrace() time.Duration { return ms(t.SpawnGraceMs) }

// LineClear returns the duration of the line-clear animation.
func (t TimingConfig) LineClear() time.Duration { return ms(t.LineClearMs) }

// Formation returns the duration of a formation animation.
func (t TimingConfig) Formation() time.Duration { return ms(t.FormationMs) }

// FallRow returns the fall animation time per row.
func (t TimingConfig) FallRow() time.Duration { return ms(t.FallRowMs) }

// GravityRetry returns the delay before a deferred gravity request is retried.
func (t TimingConfig) GravityRetry() time.Duration { return ms(t.GravityRetryMs) }

// FadeIn returns the fade-in duration of freshly placed blocks.
func (t TimingConfig) FadeIn() time.Duration { return ms(t.FadeInMs) }
