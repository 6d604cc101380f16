package game

import (
	"time"

	"github.com/vovakirdan/blobfall/internal/board"
	"github.com/vovakirdan/blobfall/internal/core"
)

// gremlinAttack eats random blocks one at a time, then plants a gray block
// of its own that never joins a blob.
type gremlinAttack struct {
	timer time.Duration
	eaten int
	done  bool
}

func (g *Game) startGremlin() bool {
	if g.gremlin != nil || g.board.FilledCount() == 0 {
		return false
	}
	g.gremlin = &gremlinAttack{}
	g.stats.Disasters++
	g.log.Info("gremlin attack", "bites", g.cfg.Disasters.Gremlin.Bites)
	return true
}

func (g *Game) advanceGremlin(dt time.Duration) {
	a := g.gremlin
	cfg := g.cfg.Disasters.Gremlin
	a.timer += dt

	for a.eaten < cfg.Bites && a.timer >= millis(cfg.BiteMs) {
		a.timer -= millis(cfg.BiteMs)
		if !g.bite() {
			break
		}
		a.eaten++
	}
	if a.eaten < cfg.Bites && g.edible() > 0 {
		return
	}

	planted := g.plantGremlin()
	a.done = true
	g.emit(GremlinEvent{Eaten: a.eaten, Planted: planted})
	g.requestGravity(board.SolveOptions{})
}

func (g *Game) edibleCells() []board.Coord {
	var out []board.Coord
	for _, c := range g.board.FilledCoords() {
		if !g.board.MetaAt(c).Lattice {
			out = append(out, c)
		}
	}
	return out
}

func (g *Game) edible() int {
	return len(g.edibleCells())
}

func (g *Game) bite() bool {
	cells := g.edibleCells()
	if len(cells) == 0 {
		return false
	}
	g.board.ClearCell(cells[g.rng.IntN(len(cells))])
	return true
}

// plantGremlin puts a gremlin block on top of a random non-full column.
func (g *Game) plantGremlin() bool {
	var open []int
	for x := 0; x < g.board.Cols; x++ {
		if g.board.ColumnTop(x) > 0 {
			open = append(open, x)
		}
	}
	if len(open) == 0 {
		return false
	}
	x := open[g.rng.IntN(len(open))]
	g.placeFading(board.C(x, g.board.ColumnTop(x)-1), core.ColorGray, true)
	return true
}
