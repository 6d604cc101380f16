package game

import (
	"time"

	"github.com/vovakirdan/blobfall/internal/board"
	"github.com/vovakirdan/blobfall/internal/core"
	"github.com/vovakirdan/blobfall/internal/piece"
)

// handleInput applies the player's actions for this tick.
func (g *Game) handleInput(in core.InputFrame) {
	if in.Has(core.ActionLeft) {
		g.MoveLeft()
	}
	if in.Has(core.ActionRight) {
		g.MoveRight()
	}
	if in.Has(core.ActionRotateCW) {
		g.RotateCW()
	}
	if in.Has(core.ActionRotateCCW) {
		g.RotateCCW()
	}
	if in.Has(core.ActionSoftDrop) && g.elapsed >= g.softReady {
		if g.SoftDropStep() {
			g.softReady = g.elapsed + g.cfg.Timing.SoftDropInterval()
		}
	}
	if in.Has(core.ActionHardDrop) {
		g.HardDrop()
	}
}

// MoveLeft shifts the active piece one column left.
func (g *Game) MoveLeft() bool {
	return g.shift(-1)
}

// MoveRight shifts the active piece one column right.
func (g *Game) MoveRight() bool {
	return g.shift(1)
}

func (g *Game) shift(dx int) bool {
	if g.active == nil || g.over {
		return false
	}
	if !g.active.Move(g.board, dx, 0) {
		return false
	}
	g.lock.Reset()
	return true
}

// RotateCW rotates the active piece clockwise with wall kicks.
func (g *Game) RotateCW() bool {
	return g.rotate(true)
}

// RotateCCW rotates the active piece counter-clockwise with wall kicks.
func (g *Game) RotateCCW() bool {
	return g.rotate(false)
}

func (g *Game) rotate(cw bool) bool {
	if g.active == nil || g.over {
		return false
	}
	x := g.active.X
	if !g.active.Rotate(g.board, cw) {
		return false
	}
	g.lock.Reset()
	g.emit(RotateSucceededEvent{Rotation: g.active.Rotation, Kick: g.active.X - x})
	return true
}

// SoftDropStep moves the active piece one row down and scores it.
func (g *Game) SoftDropStep() bool {
	if g.active == nil || g.over {
		return false
	}
	if !g.active.Move(g.board, 0, 1) {
		return false
	}
	g.fallTimer = 0
	g.addScore(g.scorer.SoftDrop(1))
	return true
}

// HardDrop drops the active piece to its landing row and locks it at once.
// It returns the number of rows dropped.
func (g *Game) HardDrop() int {
	if g.active == nil || g.over {
		return 0
	}
	d := g.active.DropDistance(g.board)
	g.active.Y += d
	g.addScore(g.scorer.HardDrop(d))
	g.lockPiece()
	return d
}

// Ghost returns where the active piece would land.
func (g *Game) Ghost() *piece.Piece {
	if g.active == nil {
		return nil
	}
	return g.active.Ghost(g.board)
}

// Next returns the upcoming pieces.
func (g *Game) Next() []piece.Draw {
	if g.bag == nil {
		return nil
	}
	return g.bag.Peek(g.cfg.Pieces.Preview)
}

// spawn brings the next piece in at the top of the well.
func (g *Game) spawn() {
	draw := g.bag.Next()
	g.active = piece.Spawn(draw.Shape, draw.Color, g.board.Cols)
	g.lock.Restart()
	g.fallTimer = 0
	g.spawnAge = 0
	g.log.Debug("piece spawned", "shape", draw.Shape.Name, "color", draw.Color)
}

// updatePiece applies gravity to the active piece and runs the lock delay.
func (g *Game) updatePiece(dt time.Duration) {
	if g.active == nil {
		return
	}
	g.spawnAge += dt

	interval := g.difficulty.FallInterval(g.cfg.Timing.FallInterval(), g.cfg.Timing.MinFallInterval(), g.progress())
	g.fallTimer += dt
	for g.fallTimer >= interval {
		g.fallTimer -= interval
		if !g.active.Move(g.board, 0, 1) {
			g.fallTimer = 0
			break
		}
	}

	if g.spawnAge < g.cfg.Timing.SpawnGrace() {
		return
	}
	resting := g.active.Resting(g.board)
	if resting && g.active.AboveTop() {
		g.lockPiece()
		return
	}
	if g.lock.Tick(dt, resting) {
		g.lockPiece()
	}
}

// lockPiece merges the active piece into the well and starts the chain.
// Locking with any cell above the top row ends the game.
func (g *Game) lockPiece() {
	p := g.active
	g.active = nil
	blocked := p.AboveTop() || p.Collides(g.board)
	cells := p.Merge(g.board)

	g.stats.Pieces++
	g.cascade = 0
	g.disasterRolled = false
	g.emit(PieceLockedEvent{Shape: p.Shape.Name, Cells: len(cells)})

	if blocked {
		g.log.Info("piece locked above the top", "shape", p.Shape.Name, "y", p.Y)
		g.gameOver()
		return
	}
	g.requestResolve()
}

// placeFading fills c and starts its fade-in.
func (g *Game) placeFading(c board.Coord, color core.Color, gremlin bool) {
	g.board.Set(c, color)
	g.board.SetMeta(c, board.Meta{Gremlin: gremlin, Fade: board.Fade{Active: true}})
}
