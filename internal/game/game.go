// Package game implements the blobfall rules on top of the board physics:
// the active piece, the resolution chain (formations, line clears, gravity,
// cascades), scoring and the disaster state machines.
//
// The game is a pure tick-driven state machine. Step advances it by one
// RuntimeConfig.TickDuration; nothing in here blocks or starts goroutines.
package game

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blobfall/internal/board"
	"github.com/vovakirdan/blobfall/internal/config"
	"github.com/vovakirdan/blobfall/internal/core"
	"github.com/vovakirdan/blobfall/internal/piece"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// defaultLogger is handed to games created through the registry.
var defaultLogger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names reset it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLogger sets the logger used by games created through the registry.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	defaultLogger = l
}

// Option customizes a game at construction.
type Option func(*Game)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

// WithConfig pins the configuration instead of loading it on Reset.
func WithConfig(cfg config.GameConfig) Option {
	return func(g *Game) {
		g.fixedCfg = &cfg
	}
}

// WithPreset overrides the difficulty preset.
func WithPreset(p config.DifficultyPreset) Option {
	return func(g *Game) {
		g.preset = p
	}
}

// Game implements registry.Game for one mode.
type Game struct {
	mode     Mode
	preset   config.DifficultyPreset
	fixedCfg *config.GameConfig
	log      *log.Logger

	// Configuration
	runtime    core.RuntimeConfig
	cfg        config.GameConfig
	tier       config.Tier
	rules      board.Rules
	scorer     Scorer
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	// Well and piece
	board     *board.Board
	bag       *piece.Bag
	active    *piece.Piece
	lock      *piece.LockDelay
	fallTimer time.Duration
	spawnAge  time.Duration
	softReady time.Duration // Game time when a held soft drop may step again

	// Resolution chain
	phase          Phase
	anim           *animation
	pendingGravity *gravityRequest
	pendingResolve bool
	healRetries    int
	disasterRolled bool

	// Disasters, at most one of each kind
	tornado  *tornado
	quake    *earthquake
	eruption *eruption
	gremlin  *gremlinAttack

	// Progress
	score   int
	lines   int
	level   int
	cascade int
	stats   Stats
	ticks   int
	elapsed time.Duration
	paused  bool
	over    bool

	events  []core.Event
	backlog []core.Event
}

// New creates a game for the given mode. Call Reset before stepping it.
func New(mode Mode, opts ...Option) *Game {
	g := &Game{mode: mode, log: defaultLogger}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.mode.ID()
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.mode.Title()
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg := g.loadConfig()
	preset := g.preset
	if preset == "" {
		preset = difficultyPreset
	}
	if preset != "" {
		config.ApplyPreset(&cfg, preset)
	}
	g.cfg = cfg
	g.tier = config.TierForPreset(preset)
	g.rules = board.Rules{
		Tsunami:   g.tier.Tsunamis(),
		BlackHole: g.tier.BlackHoles(),
		Volcano:   g.tier.Volcanoes(),
		LavaColor: core.ColorLava,
	}
	g.scorer = NewScorer(cfg.Scoring)
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	seed := uint64(runtime.Seed) //#nosec G115 -- seed bits
	g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	g.board = board.New(cfg.Board.Rows, g.mode.Cols(cfg.Board))
	if g.mode.Lattice() {
		g.fillLattice(cfg.Board.LatticeRows)
	}

	palette, err := cfg.Palette.Resolve(g.mode.WidePalette())
	if err != nil {
		g.log.Warn("palette unusable, using defaults", "err", err)
		palette, _ = config.DefaultConfig().Palette.Resolve(g.mode.WidePalette())
	}
	g.bag = piece.NewBag(g.mode.Shapes(cfg.Pieces), palette, g.rng)
	g.lock = piece.NewLockDelay(cfg.Timing.LockDelay(), cfg.Timing.LockKeep, cfg.Timing.MaxLockResets)

	g.active = nil
	g.fallTimer = 0
	g.spawnAge = 0
	g.softReady = 0
	g.phase = PhaseIdle
	g.anim = nil
	g.pendingGravity = nil
	g.pendingResolve = false
	g.healRetries = 0
	g.disasterRolled = false
	g.tornado, g.quake, g.eruption, g.gremlin = nil, nil, nil, nil

	g.score = 0
	g.lines = 0
	g.level = g.scorer.Level(0)
	g.cascade = 0
	g.stats = Stats{Level: g.level}
	g.ticks = 0
	g.elapsed = 0
	g.paused = false
	g.over = false
	g.events = nil
	g.backlog = nil

	g.spawn()
}

func (g *Game) loadConfig() config.GameConfig {
	if g.fixedCfg != nil {
		return *g.fixedCfg
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		g.log.Warn("config not loaded, using defaults", "path", configPath, "err", err)
		return config.DefaultConfig()
	}
	return cfg
}

// fillLattice pre-fills the bottom rows with stone, leaving one hole per row.
func (g *Game) fillLattice(rows int) {
	for y := g.board.Rows - rows; y < g.board.Rows; y++ {
		hole := g.rng.IntN(g.board.Cols)
		for x := 0; x < g.board.Cols; x++ {
			if x == hole {
				continue
			}
			c := board.C(x, y)
			g.board.Set(c, core.ColorStone)
			g.board.SetMeta(c, board.Meta{Lattice: true})
		}
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil

	// Handle restart
	if in.Has(core.ActionRestart) && g.over {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !g.over {
		g.paused = !g.paused
	}

	// Don't update if paused or game over
	if g.paused || g.over {
		return core.StepResult{State: g.State()}
	}

	dt := g.runtime.TickDuration()
	g.ticks++
	g.elapsed += dt

	g.handleInput(in)
	g.updatePiece(dt)
	g.advance(dt)

	if fade := g.cfg.Timing.FadeIn(); fade > 0 {
		g.board.TickFades(float64(dt) / float64(fade))
	} else {
		g.board.TickFades(1)
	}

	return core.StepResult{State: g.State(), Events: g.events}
}

// advance drives animations, deferred gravity, disasters and replayed
// resolves, in that order.
func (g *Game) advance(dt time.Duration) {
	if g.anim != nil && g.anim.advance(dt) {
		a := g.anim
		g.anim = nil
		g.finishAnimation(a)
	}

	g.retryGravity(dt)
	g.advanceDisasters(dt)

	if g.pendingResolve && g.phase == PhaseIdle && !g.busyDisaster() && g.pendingGravity == nil {
		g.pendingResolve = false
		g.resolve()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.over,
		Paused:   g.paused,
	}
}

// Stats returns the statistics of the current game.
func (g *Game) Stats() Stats {
	s := g.stats
	s.Score = g.score
	s.Lines = g.lines
	s.Level = g.level
	s.DurationMs = g.elapsed.Milliseconds()
	return s
}

// DrainEvents returns every event since the previous drain.
func (g *Game) DrainEvents() []core.Event {
	out := g.backlog
	g.backlog = nil
	return out
}

// Board returns the well. Callers must treat it as read-only.
func (g *Game) Board() *board.Board {
	return g.board
}

// Active returns the falling piece, or nil between pieces.
func (g *Game) Active() *piece.Piece {
	return g.active
}

// Phase returns the resolution phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Cascade returns the cascade counter of the running chain.
func (g *Game) Cascade() int {
	return g.cascade
}

// Tier returns the rule tier in effect.
func (g *Game) Tier() config.Tier {
	return g.tier
}

// Config returns the configuration in effect.
func (g *Game) Config() config.GameConfig {
	return g.cfg
}

func (g *Game) emit(e core.Event) {
	g.events = append(g.events, e)
	g.backlog = append(g.backlog, e)
}

func (g *Game) progress() config.Progress {
	return config.Progress{Score: g.score, Lines: g.lines, Ticks: g.ticks}
}

func (g *Game) addScore(points int) {
	g.score += points
}

func (g *Game) addLines(n int) {
	g.lines += n
	if lvl := g.scorer.Level(g.lines); lvl > g.level {
		g.level = lvl
		g.emit(LevelUpEvent{Level: lvl})
	}
}

func (g *Game) gameOver() {
	g.over = true
	g.emit(GameOverEvent{Stats: g.Stats()})
}
