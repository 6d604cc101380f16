package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blobfall/internal/board"
	"github.com/vovakirdan/blobfall/internal/config"
	"github.com/vovakirdan/blobfall/internal/core"
	"github.com/vovakirdan/blobfall/internal/registry"
)

var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 42}

// quietConfig makes every animation instant and keeps the piece from falling
// on its own, so tests drive the chain tick by tick.
func quietConfig() config.GameConfig {
	cfg := config.DefaultConfig()
	cfg.Disasters.Enabled = false
	cfg.Timing.FallIntervalMs = 100000
	cfg.Timing.MinFallIntervalMs = 100000
	cfg.Timing.SpawnGraceMs = 0
	cfg.Timing.LineClearMs = 0
	cfg.Timing.FormationMs = 0
	cfg.Timing.FallRowMs = 0
	return cfg
}

func newTestGame(t *testing.T, preset config.DifficultyPreset, cfg config.GameConfig) *Game {
	t.Helper()
	g := New(ModeClassic, WithConfig(cfg), WithPreset(preset))
	g.Reset(testRuntime)
	return g
}

// setWell replaces the well and clears the active piece.
func setWell(t *testing.T, g *Game, rows ...string) {
	t.Helper()
	b, err := board.Parse(rows...)
	require.NoError(t, err)
	g.board = b
	g.active = nil
	g.disasterRolled = false
	g.DrainEvents()
}

// run steps the game with empty input until stop returns true.
func run(g *Game, maxTicks int, stop func() bool) int {
	for i := 0; i < maxTicks; i++ {
		g.Step(core.NewInputFrame())
		if stop() {
			return i + 1
		}
	}
	return maxTicks
}

func eventsOf[T core.Event](events []core.Event) []T {
	var out []T
	for _, e := range events {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func TestRegisteredModes(t *testing.T) {
	for _, m := range Modes {
		g, err := registry.Create(m.ID())
		require.NoError(t, err, m.ID())
		assert.Equal(t, m.Title(), g.Title())

		info, ok := registry.Lookup(m.ID())
		require.True(t, ok)
		assert.Equal(t, int(m), info.Order)
		assert.Equal(t, m.Blurb(), info.Blurb)
	}

	wide, _ := registry.Lookup(ModeWide.ID())
	assert.Equal(t, 12, wide.Cols)
	assert.Equal(t, []string{"tetromino", "pentomino"}, wide.Shapes)
}

func TestSimpleLineClear(t *testing.T) {
	g := newTestGame(t, config.DifficultyNormal, quietConfig())
	setWell(t, g,
		"....",
		"....",
		"Y...",
		"RRBB",
	)

	g.requestResolve()
	run(g, 20, func() bool { return g.Active() != nil })

	require.NotNil(t, g.Active(), "next piece spawns once settled")
	assert.Equal(t, "....\n....\n....\nY...", g.Board().String())

	events := g.DrainEvents()
	clears := eventsOf[LineClearEvent](events)
	require.Len(t, clears, 1)
	assert.Equal(t, []int{3}, clears[0].Rows)
	// 4 cells of size-2 blobs: 4 * 2^1.5 + 100
	assert.Equal(t, 111, clears[0].Points)
	assert.Equal(t, 1, clears[0].Cascade)
	assert.Equal(t, 111, g.State().Score)
	assert.Equal(t, 1, g.Stats().Lines)
	assert.Equal(t, PhaseIdle, g.Phase())
}

func TestCascadeIntoTsunami(t *testing.T) {
	g := newTestGame(t, config.DifficultyNormal, quietConfig())
	setWell(t, g,
		"....",
		"..GG",
		"GG..",
		"RYRY",
	)

	g.requestResolve()
	run(g, 30, func() bool { return g.Active() != nil })

	events := g.DrainEvents()
	clears := eventsOf[LineClearEvent](events)
	tsunamis := eventsOf[TsunamiEvent](events)
	require.Len(t, clears, 1)
	require.Len(t, tsunamis, 1)
	assert.Equal(t, 104, clears[0].Points)
	assert.Equal(t, 1, clears[0].Cascade)
	// 4^1.5 * 3 at cascade 2
	assert.Equal(t, TsunamiEvent{Size: 4, Points: 48, Cascade: 2}, tsunamis[0])
	assert.Equal(t, 152, g.State().Score)
	assert.Equal(t, 0, g.Board().FilledCount())

	stats := g.Stats()
	assert.Equal(t, 1, stats.Tsunamis)
	assert.Equal(t, 2, stats.MaxCascade)
}

func TestTierGatesFormations(t *testing.T) {
	tests := []struct {
		name     string
		preset   config.DifficultyPreset
		tsunamis int
		clears   int
	}{
		{"easy clears the row", config.DifficultyEasy, 0, 1},
		{"normal washes the blob", config.DifficultyNormal, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, tt.preset, quietConfig())
			setWell(t, g, "....", "....", "....", "GGGG")
			g.requestResolve()
			run(g, 20, func() bool { return g.Active() != nil })

			events := g.DrainEvents()
			assert.Len(t, eventsOf[TsunamiEvent](events), tt.tsunamis)
			assert.Len(t, eventsOf[LineClearEvent](events), tt.clears)
			assert.Equal(t, 0, g.Board().FilledCount())
		})
	}
}

func TestVolcanoEruption(t *testing.T) {
	g := newTestGame(t, config.DifficultyExpert, quietConfig())
	setWell(t, g,
		"....",
		"RR..",
		"BR..",
		"RR..",
	)

	g.requestResolve()
	run(g, 400, func() bool { return g.Active() != nil })
	require.NotNil(t, g.Active())

	events := g.DrainEvents()
	volcanoes := eventsOf[VolcanoEvent](events)
	require.Len(t, volcanoes, 1)
	// (1+5)^1.5 * 5
	assert.Equal(t, VolcanoEvent{Size: 1, Column: 0, Edge: "left", Points: 73, Cascade: 1}, volcanoes[0])
	assert.Empty(t, eventsOf[BlackHoleEvent](events), "volcano wins over black hole")

	var phases []EruptionPhase
	for _, e := range eventsOf[EruptionEvent](events) {
		phases = append(phases, e.Phase)
	}
	assert.Equal(t, []EruptionPhase{EruptionWarming, EruptionErupting, EruptionDone}, phases)

	assert.NotEqual(t, core.ColorBlue, g.Board().Get(board.C(0, 2)).Color)
	assert.Equal(t, 1, g.Board().ColorCounts()[core.ColorLava], "one projectile landed")
	assert.Equal(t, 1, g.Stats().Volcanoes)
}

func TestGravityDeferredWhileClearing(t *testing.T) {
	cfg := quietConfig()
	cfg.Timing.LineClearMs = 100
	g := newTestGame(t, config.DifficultyNormal, cfg)
	setWell(t, g,
		"R...",
		"....",
		"....",
		"GBGB",
	)

	g.requestResolve()
	require.Equal(t, PhaseClearing, g.Phase())
	require.False(t, g.CanSolveGravity())

	g.requestGravity(board.SolveOptions{})
	require.NotNil(t, g.pendingGravity)
	assert.True(t, g.Board().Filled(board.C(0, 0)), "nothing moves while clearing")

	// A retry during the clear is deferred again
	run(g, 4, func() bool { return false })
	assert.Equal(t, PhaseClearing, g.Phase())
	assert.True(t, g.Board().Filled(board.C(0, 0)))

	run(g, 60, func() bool { return g.Active() != nil })
	require.NotNil(t, g.Active())
	assert.Equal(t, "....\n....\n....\nR...", g.Board().String())
	assert.Nil(t, g.pendingGravity)
}

func TestHardDropLocksAtOnce(t *testing.T) {
	g := newTestGame(t, config.DifficultyNormal, quietConfig())
	require.NotNil(t, g.Active())

	first := g.Active()
	d := g.HardDrop()
	assert.Positive(t, d)
	assert.Equal(t, 2*d, g.State().Score)
	assert.Equal(t, 4, g.Board().FilledCount())

	locked := eventsOf[PieceLockedEvent](g.DrainEvents())
	require.Len(t, locked, 1)
	assert.Equal(t, 4, locked[0].Cells)

	// The settled well hands out the next piece in the same call
	require.NotNil(t, g.Active())
	assert.NotSame(t, first, g.Active())
}

func TestControlsWithoutPiece(t *testing.T) {
	g := newTestGame(t, config.DifficultyNormal, quietConfig())
	g.active = nil

	assert.False(t, g.MoveLeft())
	assert.False(t, g.MoveRight())
	assert.False(t, g.RotateCW())
	assert.False(t, g.RotateCCW())
	assert.False(t, g.SoftDropStep())
	assert.Equal(t, 0, g.HardDrop())
	assert.Nil(t, g.Ghost())
	assert.Equal(t, 0, g.State().Score)
}

func TestSoftDropScores(t *testing.T) {
	g := newTestGame(t, config.DifficultyNormal, quietConfig())
	y := g.Active().Y

	g.Step(core.FrameOf(core.ActionSoftDrop))
	assert.Equal(t, y+1, g.Active().Y)
	assert.Equal(t, 1, g.State().Score)
}

func TestHeldSoftDropIsPaced(t *testing.T) {
	cfg := quietConfig()
	cfg.Timing.SoftDropIntervalMs = 50
	g := newTestGame(t, config.DifficultyNormal, cfg)
	y := g.Active().Y

	// 60 ticks per second: a step every 50ms is one row per three ticks
	for i := 0; i < 6; i++ {
		g.Step(core.FrameOf(core.ActionSoftDrop))
	}
	assert.Equal(t, y+2, g.Active().Y)
	assert.Equal(t, 2, g.State().Score)
}

func TestLockDelay(t *testing.T) {
	g := newTestGame(t, config.DifficultyNormal, quietConfig())
	p := g.Active()
	p.Y += p.DropDistance(g.Board())

	// 500ms at 60 ticks per second
	run(g, 20, func() bool { return false })
	assert.NotNil(t, g.Active(), "still sliding")

	run(g, 20, func() bool { return false })
	assert.NotSame(t, p, g.Active(), "locked and replaced")
	assert.Len(t, eventsOf[PieceLockedEvent](g.DrainEvents()), 1)
}

func TestLockResetsAreCapped(t *testing.T) {
	cfg := quietConfig()
	cfg.Timing.LockKeep = 0.99
	cfg.Timing.MaxLockResets = 3
	g := newTestGame(t, config.DifficultyNormal, cfg)
	p := g.Active()
	p.Y += p.DropDistance(g.Board())

	// Wiggle every tick: the timer alone would need about 30 ticks
	ticks := 0
	locked := false
	for ; ticks < 100 && !locked; ticks++ {
		in := core.FrameOf(core.ActionLeft)
		if ticks%2 == 1 {
			in = core.FrameOf(core.ActionRight)
		}
		g.Step(in)
		locked = len(eventsOf[PieceLockedEvent](g.DrainEvents())) > 0
	}
	assert.True(t, locked, "resets run out and the piece locks")
	assert.Less(t, ticks, 10)
}

func TestGameOverWhenSpawnBlocked(t *testing.T) {
	g := newTestGame(t, config.DifficultyEasy, quietConfig())
	rows := make([]string, 20)
	for i := range rows {
		rows[i] = "RRRRRRRRR."
	}
	b, err := board.Parse(rows...)
	require.NoError(t, err)
	g.board = b

	run(g, 120, func() bool { return g.State().GameOver })
	require.True(t, g.State().GameOver)

	over := eventsOf[GameOverEvent](g.DrainEvents())
	require.Len(t, over, 1)
	assert.Equal(t, 1, over[0].Stats.Pieces)

	// Stepping after game over is a no-op until restart
	before := g.Snapshot()
	g.Step(core.FrameOf(core.ActionLeft))
	after := g.Snapshot()
	assert.Equal(t, before.Hash(), after.Hash())

	g.Step(core.FrameOf(core.ActionRestart))
	assert.False(t, g.State().GameOver)
	assert.NotNil(t, g.Active())
}

func TestPauseFreezes(t *testing.T) {
	g := newTestGame(t, config.DifficultyNormal, quietConfig())
	g.Step(core.FrameOf(core.ActionPause))
	require.True(t, g.State().Paused)

	snap := g.Snapshot()
	g.Step(core.FrameOf(core.ActionHardDrop))
	after := g.Snapshot()
	assert.Equal(t, snap.Hash(), after.Hash())

	g.Step(core.FrameOf(core.ActionPause))
	assert.False(t, g.State().Paused)
}

func TestGameDeterminism(t *testing.T) {
	script := make([]core.InputFrame, 1500)
	for i := range script {
		script[i] = core.NewInputFrame()
		switch {
		case i%40 == 39:
			script[i].Set(core.ActionHardDrop)
		case i%11 == 0:
			script[i].Set(core.ActionRotateCW)
		case i%7 < 2:
			script[i].Set(core.ActionLeft)
		case i%7 > 4:
			script[i].Set(core.ActionRight)
		}
	}

	play := func() Snapshot {
		cfg := config.DefaultConfig()
		cfg.Disasters.Chance = 0.5
		g := New(ModeChaos, WithConfig(cfg), WithPreset(config.DifficultyExpert))
		g.Reset(testRuntime)
		for _, in := range script {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	snap1 := play()
	snap2 := play()
	assert.Equal(t, snap1.Hash(), snap2.Hash())
	assert.Equal(t, snap1.Score, snap2.Score)
	assert.Equal(t, snap1.Cells, snap2.Cells)
}

func TestRenderDrawsWell(t *testing.T) {
	g := newTestGame(t, config.DifficultyNormal, quietConfig())
	g.HardDrop()

	screen := core.NewScreen(80, 30)
	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "Score")
	assert.Contains(t, out, "█")

	small := core.NewScreen(30, 10)
	g.Render(small)
	assert.Contains(t, small.String(), "Window too small")
}

func TestViewFollowsPlayback(t *testing.T) {
	cfg := quietConfig()
	cfg.Timing.LineClearMs = 1000
	cfg.Timing.FallRowMs = 1000
	g := newTestGame(t, config.DifficultyNormal, cfg)
	setWell(t, g,
		"....",
		"....",
		"Y...",
		"RRBB",
	)

	g.requestResolve()
	v := g.View()
	assert.Equal(t, PhaseClearing, v.Phase)
	assert.Nil(t, v.Piece)
	assert.ElementsMatch(t, []board.Coord{board.C(0, 3), board.C(1, 3), board.C(2, 3), board.C(3, 3)}, v.Flash)
	assert.NotSame(t, g.Board(), v.Board)

	run(g, 200, func() bool { return g.Phase() == PhaseAnimating })
	v = g.View()
	require.Len(t, v.Journeys, 1)
	assert.Equal(t, 1, v.Journeys[0].Distance())
	assert.Less(t, v.Progress, 1.0)

	run(g, 200, func() bool { return g.Active() != nil })
	v = g.View()
	require.NotNil(t, v.Piece)
	require.NotNil(t, v.Ghost)
	assert.Empty(t, v.Journeys)
	assert.NotEmpty(t, v.Next)
}
