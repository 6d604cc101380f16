package game

import (
	"time"

	"github.com/vovakirdan/blobfall/internal/board"
	"github.com/vovakirdan/blobfall/internal/core"
)

// EarthquakePhase is the state of an earthquake.
type EarthquakePhase int

const (
	EarthquakeShaking  EarthquakePhase = iota // Screen shake, nothing touched yet
	EarthquakeCracking                        // Fault opened, cells along it destroyed
	EarthquakeShifting                        // Both sides settle separately
	EarthquakeDone
)

// String returns the phase name.
func (p EarthquakePhase) String() string {
	switch p {
	case EarthquakeShaking:
		return "shaking"
	case EarthquakeCracking:
		return "cracking"
	case EarthquakeShifting:
		return "shifting"
	case EarthquakeDone:
		return "done"
	default:
		return "unknown"
	}
}

// earthquake opens a jagged vertical fault. fault[y] is the first column
// right of the fault on row y.
type earthquake struct {
	phase     EarthquakePhase
	timer     time.Duration
	fault     []int
	destroyed int
}

func (q *earthquake) busy() bool {
	return q.phase == EarthquakeCracking
}

func (q *earthquake) preemptible() bool {
	return q.phase == EarthquakeShaking || q.phase == EarthquakeDone
}

// side reports whether c lies left of the fault.
func (q *earthquake) side(c board.Coord) bool {
	return c.X < q.fault[c.Y]
}

// barrier keeps blobs from connecting across the fault.
func (q *earthquake) barrier(a, b board.Coord) bool {
	return q.side(a) != q.side(b)
}

func (g *Game) startEarthquake() bool {
	if g.quake != nil || g.board.Cols < 2 {
		return false
	}
	g.quake = &earthquake{phase: EarthquakeShaking, fault: g.faultLine()}
	g.stats.Disasters++
	g.emit(EarthquakeEvent{Phase: EarthquakeShaking})
	g.log.Info("earthquake", "fault", g.quake.fault[0])
	return true
}

// faultLine walks a fault from the top, drifting at most one column per row.
func (g *Game) faultLine() []int {
	cols := g.board.Cols
	fault := make([]int, g.board.Rows)
	x := 1 + g.rng.IntN(cols-1)
	for y := range fault {
		fault[y] = x
		x = core.Clamp(x+g.rng.IntN(3)-1, 1, cols-1)
	}
	return fault
}

func (g *Game) setQuakePhase(p EarthquakePhase) {
	g.quake.phase = p
	g.quake.timer = 0
	g.emit(EarthquakeEvent{Phase: p, Destroyed: g.quake.destroyed})
}

func (g *Game) advanceEarthquake(dt time.Duration) {
	q := g.quake
	cfg := g.cfg.Disasters.Earthquake
	q.timer += dt

	switch q.phase {
	case EarthquakeShaking:
		if q.timer < millis(cfg.ShakeMs) || g.phase != PhaseIdle || g.pendingGravity != nil {
			return
		}
		g.crack()
		g.setQuakePhase(EarthquakeCracking)
	case EarthquakeCracking:
		if q.timer < millis(cfg.CrackMs) {
			return
		}
		g.setQuakePhase(EarthquakeShifting)
		g.requestGravity(board.SolveOptions{Barrier: q.barrier})
	case EarthquakeShifting:
		if g.phase == PhaseIdle && g.pendingGravity == nil && g.anim == nil {
			g.setQuakePhase(EarthquakeDone)
		}
	case EarthquakeDone:
	}
}

// crack destroys the cell just left of the fault on every occupied row.
// Lattice survives.
func (g *Game) crack() {
	q := g.quake
	for y, f := range q.fault {
		if g.board.RowEmpty(y) {
			continue
		}
		c := board.C(f-1, y)
		if !g.board.Filled(c) || g.board.MetaAt(c).Lattice {
			continue
		}
		g.board.ClearCell(c)
		q.destroyed++
	}
}
