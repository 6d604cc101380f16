package game

import (
	"time"

	"github.com/vovakirdan/blobfall/internal/board"
)

// TornadoPhase is the state of a tornado.
type TornadoPhase int

const (
	TornadoDescending TornadoPhase = iota // Funnel comes down, nothing touched yet
	TornadoLifting                        // Blob pulled out of the well
	TornadoCarrying                       // Blob moved to the target column
	TornadoDropping                       // Blob released at the top
	TornadoDone
)

// String returns the phase name.
func (p TornadoPhase) String() string {
	switch p {
	case TornadoDescending:
		return "descending"
	case TornadoLifting:
		return "lifting"
	case TornadoCarrying:
		return "carrying"
	case TornadoDropping:
		return "dropping"
	case TornadoDone:
		return "done"
	default:
		return "unknown"
	}
}

// tornado lifts one movable blob and drops it elsewhere at the top.
type tornado struct {
	phase   TornadoPhase
	timer   time.Duration
	column  int
	from    int
	target  int
	carried []board.Block
}

func (t *tornado) busy() bool {
	return t.phase == TornadoLifting || t.phase == TornadoCarrying || t.phase == TornadoDropping
}

func (t *tornado) preemptible() bool {
	return t.phase == TornadoDescending || t.phase == TornadoDone
}

func (g *Game) startTornado() bool {
	if g.tornado != nil {
		return false
	}
	g.tornado = &tornado{
		phase:  TornadoDescending,
		column: g.rng.IntN(g.board.Cols),
		target: g.rng.IntN(g.board.Cols),
	}
	g.stats.Disasters++
	g.emit(TornadoEvent{Phase: TornadoDescending, Column: g.tornado.column})
	g.log.Info("tornado", "column", g.tornado.column, "target", g.tornado.target)
	return true
}

func (g *Game) setTornadoPhase(p TornadoPhase) {
	g.tornado.phase = p
	g.tornado.timer = 0
	g.emit(TornadoEvent{Phase: p, Column: g.tornado.column})
}

func (g *Game) advanceTornado(dt time.Duration) {
	t := g.tornado
	cfg := g.cfg.Disasters.Tornado
	t.timer += dt

	switch t.phase {
	case TornadoDescending:
		// Lifting rewrites the well, so it waits for the chain.
		if t.timer < millis(cfg.DescendMs) || g.phase != PhaseIdle || g.pendingGravity != nil {
			return
		}
		if !g.liftBlob() {
			g.setTornadoPhase(TornadoDone)
			return
		}
		t.from = t.column
		g.setTornadoPhase(TornadoLifting)
	case TornadoLifting:
		if t.timer >= millis(cfg.LiftMs) {
			g.setTornadoPhase(TornadoCarrying)
		}
	case TornadoCarrying:
		total := millis(cfg.CarryMs)
		if total > 0 {
			t.column = t.from + int(float64(t.target-t.from)*min(1, float64(t.timer)/float64(total)))
		}
		if t.timer >= total {
			t.column = t.target
			g.setTornadoPhase(TornadoDropping)
		}
	case TornadoDropping:
		if t.timer < millis(cfg.DropMs) {
			return
		}
		g.dropBlob()
		g.setTornadoPhase(TornadoDone)
		g.requestGravity(board.SolveOptions{})
	case TornadoDone:
	}
}

// liftBlob removes a random movable blob, preferring one under the funnel.
func (g *Game) liftBlob() bool {
	var candidates []*board.Blob
	var under []*board.Blob
	for _, bl := range board.BuildBlobs(g.board, board.BuildOptions{}) {
		if bl.HasLattice(g.board) {
			continue
		}
		candidates = append(candidates, bl)
		if _, _, ok := bl.ColumnRange(g.tornado.column); ok {
			under = append(under, bl)
		}
	}
	if len(under) > 0 {
		candidates = under
	}
	if len(candidates) == 0 {
		return false
	}
	bl := candidates[g.rng.IntN(len(candidates))]
	g.tornado.carried = g.board.Remove(bl.Positions)
	return true
}

// dropBlob releases the carried blob in the top rows, as close to the target
// column as it fits. When nothing fits the blob goes back where it was.
func (g *Game) dropBlob() {
	t := g.tornado
	if len(t.carried) == 0 {
		return
	}
	minX, minY, maxX := t.carried[0].Pos.X, t.carried[0].Pos.Y, t.carried[0].Pos.X
	for _, blk := range t.carried {
		minX = min(minX, blk.Pos.X)
		maxX = max(maxX, blk.Pos.X)
		minY = min(minY, blk.Pos.Y)
	}
	width := maxX - minX + 1

	fits := func(x0 int) bool {
		for _, blk := range t.carried {
			c := board.C(blk.Pos.X-minX+x0, blk.Pos.Y-minY)
			if !g.board.InBounds(c) || g.board.Filled(c) {
				return false
			}
		}
		return true
	}

	want := min(max(0, t.target-width/2), g.board.Cols-width)
	for d := 0; d < g.board.Cols; d++ {
		for _, x0 := range []int{want - d, want + d} {
			if x0 < 0 || x0+width > g.board.Cols || !fits(x0) {
				continue
			}
			for _, blk := range t.carried {
				blk.Pos = board.C(blk.Pos.X-minX+x0, blk.Pos.Y-minY)
				blk.Meta.Fade = board.Fade{Active: true}
				g.board.PutBlock(blk)
			}
			t.carried = nil
			return
		}
	}

	g.log.Warn("tornado found no room, returning blob")
	for _, blk := range t.carried {
		g.board.PutBlock(blk)
	}
	t.carried = nil
}
