package game

import (
	"github.com/vovakirdan/blobfall/internal/board"
)

// resolve runs one step of the chain on a quiet well: a formation wins over
// line clears, and when neither applies the well is settled.
func (g *Game) resolve() {
	blobs := board.BuildBlobs(g.board, board.BuildOptions{})
	if f, ok := board.DetectFormations(g.board, blobs, g.rules).Pick(); ok {
		g.setPhase(PhaseAnimating)
		g.anim = newFormationAnimation(f, g.cfg.Timing.Formation())
		g.log.Debug("formation found", "cells", len(f.Cells()))
		return
	}
	if rows := board.FullRows(g.board); len(rows) > 0 {
		g.setPhase(PhaseClearing)
		g.anim = newLineClearAnimation(rows, g.cfg.Timing.LineClear())
		return
	}
	g.settled()
}

// finishAnimation commits whatever the finished playback stood for.
func (g *Game) finishAnimation(a *animation) {
	g.setPhase(PhaseIdle)
	switch a.kind {
	case animFall:
		g.requestResolve()
	case animLineClear:
		g.clearRows(a.rows)
	case animFormation:
		g.triggerFormation(a.formation)
	}
}

// clearRows removes full rows, scores them and asks gravity to close the gap.
func (g *Game) clearRows(rows []int) {
	blobs := board.BuildBlobs(g.board, board.BuildOptions{})
	rc := board.ClearRows(g.board, rows)
	g.cascade++
	g.stats.MaxCascade = max(g.stats.MaxCascade, g.cascade)

	lines := rc.Lines()
	points := g.scorer.LineClear(rc.Removed, blobs, lines, g.cascade, g.level)
	g.addScore(points)
	g.emit(LineClearEvent{Rows: rc.Rows, Points: points, Cascade: g.cascade})
	if g.scorer.IsStrike(lines) {
		g.stats.Strikes++
		g.emit(StrikeEvent{Lines: lines})
	}
	g.addLines(lines)

	g.requestGravity(board.SolveOptions{})
}

// triggerFormation scores a formation and removes its cells. Volcanoes hand
// over to the eruption, which removes the lava itself.
func (g *Game) triggerFormation(f board.Formation) {
	g.preemptDisasters()
	g.cascade++
	g.stats.MaxCascade = max(g.stats.MaxCascade, g.cascade)

	switch f := f.(type) {
	case board.TsunamiFormation:
		points := g.scorer.Tsunami(f.Blob.Size(), g.cascade, g.level)
		g.addScore(points)
		g.board.Remove(f.Cells())
		g.stats.Tsunamis++
		g.emit(TsunamiEvent{Size: f.Blob.Size(), Points: points, Cascade: g.cascade})
		g.requestGravity(board.SolveOptions{})
	case board.BlackHoleFormation:
		points := g.scorer.BlackHole(f.Inner.Size(), f.Outer.Size(), g.cascade, g.level)
		g.addScore(points)
		g.board.Remove(f.Cells())
		g.stats.BlackHoles++
		g.emit(BlackHoleEvent{Inner: f.Inner.Size(), Outer: f.Outer.Size(), Points: points, Cascade: g.cascade})
		g.requestGravity(board.SolveOptions{})
	case board.VolcanoFormation:
		points := g.scorer.Volcano(f.Lava.Size(), f.Outer.Size(), g.cascade, g.level)
		g.addScore(points)
		g.stats.Volcanoes++
		g.emit(VolcanoEvent{
			Size:    f.Lava.Size(),
			Column:  f.EruptionColumn,
			Edge:    f.Edge.String(),
			Points:  points,
			Cascade: g.cascade,
		})
		g.startEruption(f)
	default:
		g.log.Error("unknown formation", "type", f)
		g.requestResolve()
	}
}

// settled runs once the chain has nothing left to do: it heals a floating
// row, rolls for a disaster and spawns the next piece.
func (g *Game) settled() {
	if row, found := board.FindFloatingRow(g.board); found {
		if g.healRetries < g.cfg.Gravity.MaxRetries {
			g.healRetries++
			g.log.Warn("floating row after settle, solving again", "row", row, "attempt", g.healRetries)
			g.requestGravity(board.SolveOptions{})
			return
		}
		g.log.Error("floating row persists", "row", row, "attempts", g.healRetries)
	}
	g.healRetries = 0

	if g.active != nil || g.over || g.anyDisaster() {
		return
	}
	if !g.disasterRolled {
		g.disasterRolled = true
		if g.rollDisaster() {
			return
		}
	}
	g.spawn()
}
