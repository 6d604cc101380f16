package game

import (
	"time"

	"github.com/vovakirdan/blobfall/internal/board"
	"github.com/vovakirdan/blobfall/internal/core"
)

// EruptionPhase is the state of a volcano eruption.
type EruptionPhase int

const (
	EruptionWarming  EruptionPhase = iota // Lava glows in place
	EruptionErupting                      // Lava gone, projectiles landing
	EruptionDone
)

// String returns the phase name.
func (p EruptionPhase) String() string {
	switch p {
	case EruptionWarming:
		return "warming"
	case EruptionErupting:
		return "erupting"
	case EruptionDone:
		return "done"
	default:
		return "unknown"
	}
}

// eruption follows a volcano formation: the enclosed blob turns to lava, is
// blown out and comes down as single lava blocks around the eruption column.
type eruption struct {
	phase       EruptionPhase
	timer       time.Duration
	lava        []board.Coord
	column      int
	projectiles int
	landed      int
}

func (e *eruption) busy() bool {
	return e.phase != EruptionDone
}

func (g *Game) startEruption(f board.VolcanoFormation) {
	if g.eruption != nil {
		g.log.Warn("eruption already running, volcano removed in place")
		g.board.Remove(f.Cells())
		g.requestGravity(board.SolveOptions{})
		return
	}
	g.eruption = &eruption{
		phase:       EruptionWarming,
		lava:        f.Cells(),
		column:      f.EruptionColumn,
		projectiles: min(f.Lava.Size(), g.cfg.Disasters.Volcano.MaxProjectiles),
	}
	for _, c := range g.eruption.lava {
		blk := g.board.BlockAt(c)
		if blk.Cell.Filled {
			blk.Cell.Color = core.ColorLava
			g.board.PutBlock(blk)
		}
	}
	g.stats.Disasters++
	g.emit(EruptionEvent{Phase: EruptionWarming, Column: f.EruptionColumn})
	g.log.Info("volcano erupting", "column", f.EruptionColumn, "lava", f.Lava.Size())
}

func (g *Game) setEruptionPhase(p EruptionPhase) {
	g.eruption.phase = p
	g.eruption.timer = 0
	g.emit(EruptionEvent{Phase: p, Column: g.eruption.column, Projectiles: g.eruption.landed})
}

func (g *Game) advanceEruption(dt time.Duration) {
	e := g.eruption
	cfg := g.cfg.Disasters.Volcano
	e.timer += dt

	switch e.phase {
	case EruptionWarming:
		if e.timer < millis(cfg.WarmMs) {
			return
		}
		for _, c := range e.lava {
			if g.board.Filled(c) && g.board.Get(c).Color == core.ColorLava {
				g.board.ClearCell(c)
			}
		}
		g.setEruptionPhase(EruptionErupting)
	case EruptionErupting:
		for e.landed < e.projectiles && e.timer >= millis(cfg.ProjectileMs) {
			e.timer -= millis(cfg.ProjectileMs)
			g.landProjectile()
			e.landed++
		}
		if e.landed >= e.projectiles {
			g.setEruptionPhase(EruptionDone)
			g.requestGravity(board.SolveOptions{})
		}
	case EruptionDone:
	}
}

// landProjectile drops a lava block on a column near the crater.
func (g *Game) landProjectile() {
	x := min(max(g.eruption.column+g.rng.IntN(5)-2, 0), g.board.Cols-1)
	y := g.board.ColumnTop(x) - 1
	if y < 0 {
		return
	}
	g.placeFading(board.C(x, y), core.ColorLava, false)
}
