package game

import (
	"fmt"
	"time"

	"github.com/vovakirdan/blobfall/internal/board"
)

// Phase is the resolution state of the well. Only one gravity solve and one
// clear may be in flight; everything that wants to move blocks goes through
// requestGravity, which defers while the phase is not idle.
type Phase int

const (
	PhaseIdle      Phase = iota // Nothing in flight
	PhaseSolving                // Gravity solve being committed
	PhaseClearing               // Line-clear animation running
	PhaseAnimating              // Formation or fall playback running
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSolving:
		return "solving"
	case PhaseClearing:
		return "clearing"
	case PhaseAnimating:
		return "animating"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// transitions lists the legal phase changes.
var transitions = map[Phase][]Phase{
	PhaseIdle:      {PhaseSolving, PhaseClearing, PhaseAnimating},
	PhaseSolving:   {PhaseAnimating, PhaseIdle},
	PhaseClearing:  {PhaseIdle},
	PhaseAnimating: {PhaseIdle},
}

// CanTransition reports whether the phase may change from p to next.
func (p Phase) CanTransition(next Phase) bool {
	for _, to := range transitions[p] {
		if to == next {
			return true
		}
	}
	return false
}

// setPhase is the only place the phase changes.
func (g *Game) setPhase(next Phase) {
	if !g.phase.CanTransition(next) {
		g.log.Error("illegal phase transition", "from", g.phase, "to", next)
		return
	}
	g.phase = next
}

// CanSolveGravity reports whether a gravity solve may start right now.
func (g *Game) CanSolveGravity() bool {
	return g.phase == PhaseIdle
}

// gravityRequest is a deferred solve waiting for the gate.
type gravityRequest struct {
	opts board.SolveOptions
	wait time.Duration
}

// requestGravity solves now when the gate is open, otherwise defers the
// request by GravityRetry. Pending requests are coalesced; a barrier from
// the earthquake wins over a plain request.
func (g *Game) requestGravity(opts board.SolveOptions) {
	if !g.CanSolveGravity() || g.busyDisaster() {
		if g.pendingGravity == nil {
			g.pendingGravity = &gravityRequest{}
			g.log.Debug("gravity deferred", "phase", g.phase)
		}
		if opts.Barrier != nil {
			g.pendingGravity.opts = opts
		}
		g.pendingGravity.wait = g.cfg.Timing.GravityRetry()
		return
	}
	g.solveGravity(opts)
}

// retryGravity counts down a deferred request and retries it.
func (g *Game) retryGravity(dt time.Duration) {
	if g.pendingGravity == nil {
		return
	}
	g.pendingGravity.wait -= dt
	if g.pendingGravity.wait > 0 {
		return
	}
	req := g.pendingGravity
	g.pendingGravity = nil
	g.requestGravity(req.opts)
}

// solveGravity runs the solver, commits its result and starts the fall
// playback. The outcome is fully decided before the first animation frame.
func (g *Game) solveGravity(opts board.SolveOptions) {
	g.setPhase(PhaseSolving)
	if opts.MaxPasses == 0 {
		opts.MaxPasses = g.cfg.Gravity.MaxPasses
	}
	sol := board.Solve(g.board, opts)
	g.board.ApplyJourneys(sol.Journeys)
	g.emit(GravityEvent{Moved: len(sol.Journeys), MaxDistance: sol.MaxDistance()})

	if !sol.Moved() {
		g.setPhase(PhaseIdle)
		g.requestResolve()
		return
	}
	g.setPhase(PhaseAnimating)
	g.anim = newFallAnimation(sol.Journeys, g.cfg.Timing.FallRow())
}

// requestResolve runs the resolution chain when idle, otherwise records the
// request so it is replayed once the in-flight work finishes.
func (g *Game) requestResolve() {
	if g.phase != PhaseIdle || g.busyDisaster() || g.pendingGravity != nil {
		g.pendingResolve = true
		return
	}
	g.resolve()
}
