package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blobfall/internal/board"
	"github.com/vovakirdan/blobfall/internal/config"
	"github.com/vovakirdan/blobfall/internal/core"
)

// emptyRows returns n rows of empty cells, cols wide.
func emptyRows(n, cols int) []string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = strings.Repeat(".", cols)
	}
	return rows
}

func TestTornadoCarriesBlob(t *testing.T) {
	g := newTestGame(t, config.DifficultyNormal, quietConfig())
	setWell(t, g, append(emptyRows(18, 10), "RR........", "RRBB......")...)

	require.True(t, g.TriggerDisaster(DisasterTornado))
	assert.False(t, g.TriggerDisaster(DisasterTornado), "one tornado at a time")

	run(g, 600, func() bool { return g.tornado == nil && g.Active() != nil })
	require.Nil(t, g.tornado)
	require.NotNil(t, g.Active())

	var phases []TornadoPhase
	for _, e := range eventsOf[TornadoEvent](g.DrainEvents()) {
		phases = append(phases, e.Phase)
	}
	assert.Equal(t, []TornadoPhase{
		TornadoDescending, TornadoLifting, TornadoCarrying, TornadoDropping, TornadoDone,
	}, phases)

	counts := g.Board().ColorCounts()
	assert.Equal(t, 4, counts[core.ColorRed])
	assert.Equal(t, 6, g.Board().FilledCount())
	_, floating := board.FindFloatingRow(g.Board())
	assert.False(t, floating)
	assert.Equal(t, 1, g.Stats().Disasters)
}

func TestTornadoPreemption(t *testing.T) {
	tests := []struct {
		phase       TornadoPhase
		preemptible bool
	}{
		{TornadoDescending, true},
		{TornadoLifting, false},
		{TornadoCarrying, false},
		{TornadoDropping, false},
		{TornadoDone, true},
	}

	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			tor := &tornado{phase: tt.phase}
			assert.Equal(t, tt.preemptible, tor.preemptible())
			assert.Equal(t, !tt.preemptible, tor.busy())
		})
	}
}

func TestEarthquakeCracksAlongFault(t *testing.T) {
	g := newTestGame(t, config.DifficultyNormal, quietConfig())
	setWell(t, g, append(emptyRows(18, 10), "RRRRRRRRR.", "BBBBBBBBB.")...)

	require.True(t, g.TriggerDisaster(DisasterEarthquake))
	fault := g.quake.fault
	require.Len(t, fault, 20)
	for y := 1; y < len(fault); y++ {
		assert.LessOrEqual(t, core.Abs(fault[y]-fault[y-1]), 1, "fault drifts one column per row")
		assert.GreaterOrEqual(t, fault[y], 1)
		assert.LessOrEqual(t, fault[y], 9)
	}

	run(g, 600, func() bool { return g.quake == nil && g.Active() != nil })
	require.Nil(t, g.quake)

	quakes := eventsOf[EarthquakeEvent](g.DrainEvents())
	require.NotEmpty(t, quakes)
	last := quakes[len(quakes)-1]
	assert.Equal(t, EarthquakeDone, last.Phase)
	assert.Equal(t, 2, last.Destroyed)
	assert.Equal(t, 16, g.Board().FilledCount())
}

func TestEarthquakeBarrier(t *testing.T) {
	q := &earthquake{fault: []int{2, 3}}

	assert.True(t, q.barrier(board.C(1, 0), board.C(2, 0)), "straddles row 0")
	assert.False(t, q.barrier(board.C(2, 0), board.C(3, 0)))
	assert.True(t, q.barrier(board.C(2, 0), board.C(2, 1)), "fault moves right under the cell")
	assert.False(t, q.barrier(board.C(0, 0), board.C(0, 1)))
}

func TestEarthquakeSplitsStraddlingBlob(t *testing.T) {
	b := board.MustParse(
		"....",
		"RR..",
		"R...",
		"R..B",
	)
	q := &earthquake{fault: []int{1, 1, 1, 1}}
	sol := board.Solve(b, board.SolveOptions{Barrier: q.barrier})
	b.ApplyJourneys(sol.Journeys)

	// The right half of the bar loses its support once cut loose
	assert.Equal(t, "....\nR...\nR...\nRR.B", b.String())
}

func TestGremlinEatsAndPlants(t *testing.T) {
	g := newTestGame(t, config.DifficultyNormal, quietConfig())
	setWell(t, g, append(emptyRows(19, 10), "RRRRRR....")...)

	require.True(t, g.TriggerDisaster(DisasterGremlin))
	run(g, 600, func() bool { return g.gremlin == nil && g.Active() != nil })
	require.Nil(t, g.gremlin)

	gremlins := eventsOf[GremlinEvent](g.DrainEvents())
	require.Len(t, gremlins, 1)
	bites := g.Config().Disasters.Gremlin.Bites
	assert.Equal(t, GremlinEvent{Eaten: bites, Planted: true}, gremlins[0])
	assert.Equal(t, 6-bites+1, g.Board().FilledCount())

	planted := 0
	for _, c := range g.Board().FilledCoords() {
		if g.Board().MetaAt(c).Gremlin {
			planted++
			assert.True(t, c.Y == 19 || g.Board().Filled(c.Below()), "gremlin block settles")
		}
	}
	assert.Equal(t, 1, planted)
}

func TestGremlinSkipsLattice(t *testing.T) {
	g := newTestGame(t, config.DifficultyNormal, quietConfig())
	setWell(t, g, append(emptyRows(19, 10), "####.#####")...)

	assert.Zero(t, g.edible())
	require.True(t, g.TriggerDisaster(DisasterGremlin))
	run(g, 600, func() bool { return g.gremlin == nil })

	gremlins := eventsOf[GremlinEvent](g.DrainEvents())
	require.Len(t, gremlins, 1)
	assert.Zero(t, gremlins[0].Eaten)
	assert.Equal(t, 10, g.Board().FilledCount(), "lattice intact plus one gremlin block")
}

func TestRollDisasterRespectsConfig(t *testing.T) {
	cfg := quietConfig()
	cfg.Disasters.Enabled = true
	cfg.Disasters.Chance = 1
	cfg.Disasters.Weights = config.DisasterWeights{Earthquake: 1}
	cfg.Difficulty.Enabled = false
	g := newTestGame(t, config.DifficultyFixed, cfg)
	setWell(t, g, append(emptyRows(19, 10), "RR........")...)

	require.True(t, g.rollDisaster())
	assert.Equal(t, []DisasterKind{DisasterEarthquake}, g.ActiveDisasters())

	cfg.Disasters.Enabled = false
	g2 := newTestGame(t, config.DifficultyFixed, cfg)
	assert.False(t, g2.rollDisaster())
}

func TestSpawnWaitsForDisaster(t *testing.T) {
	g := newTestGame(t, config.DifficultyNormal, quietConfig())
	setWell(t, g, append(emptyRows(19, 10), "RR........")...)

	require.True(t, g.TriggerDisaster(DisasterEarthquake))
	g.requestResolve()
	assert.Nil(t, g.Active(), "no spawn while the earthquake runs")

	run(g, 600, func() bool { return g.Active() != nil })
	assert.NotNil(t, g.Active())
	assert.Nil(t, g.quake)
}

func TestPreemptDisasters(t *testing.T) {
	g := newTestGame(t, config.DifficultyNormal, quietConfig())
	setWell(t, g, append(emptyRows(19, 10), "RR........")...)

	require.True(t, g.TriggerDisaster(DisasterTornado))
	require.True(t, g.TriggerDisaster(DisasterEarthquake))
	g.preemptDisasters()
	assert.Empty(t, g.ActiveDisasters(), "neither had touched the well")
}
