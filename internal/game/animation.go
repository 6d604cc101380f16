package game

import (
	"time"

	"github.com/vovakirdan/blobfall/internal/board"
)

type animKind int

const (
	animFall animKind = iota
	animLineClear
	animFormation
)

// animation is a timed playback. The board is already in its final state
// when a fall animation starts; the renderer interpolates the journeys.
type animation struct {
	kind    animKind
	total   time.Duration
	elapsed time.Duration

	journeys  []board.Journey // animFall
	rows      []int           // animLineClear
	formation board.Formation // animFormation
}

func newFallAnimation(journeys []board.Journey, perRow time.Duration) *animation {
	d := 0
	for _, j := range journeys {
		d = max(d, j.Distance())
	}
	return &animation{kind: animFall, total: time.Duration(d) * perRow, journeys: journeys}
}

func newLineClearAnimation(rows []int, d time.Duration) *animation {
	return &animation{kind: animLineClear, total: d, rows: rows}
}

func newFormationAnimation(f board.Formation, d time.Duration) *animation {
	return &animation{kind: animFormation, total: d, formation: f}
}

// advance moves the playback forward and reports whether it finished.
func (a *animation) advance(dt time.Duration) bool {
	a.elapsed += dt
	return a.elapsed >= a.total
}

// Progress returns the playback position, 0..1.
func (a *animation) Progress() float64 {
	if a.total <= 0 {
		return 1
	}
	return min(1, float64(a.elapsed)/float64(a.total))
}

// fallOffset returns how many rows above its end cell a journey is drawn.
func (a *animation) fallOffset(j board.Journey) int {
	dist := j.Distance()
	if a.total <= 0 {
		return 0
	}
	// Every unit falls at the same speed and lands when its own distance is covered.
	covered := int(float64(a.elapsed) / float64(a.total) * float64(a.maxDistance()))
	return max(0, dist-covered)
}

func (a *animation) maxDistance() int {
	d := 0
	for _, j := range a.journeys {
		d = max(d, j.Distance())
	}
	return d
}
