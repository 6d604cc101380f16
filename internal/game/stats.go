package game

import "time"

// Stats summarizes one game. A copy is attached to GameOverEvent and can be
// read at any time through Game.Stats.
type Stats struct {
	Score      int
	Lines      int
	Level      int
	Strikes    int
	Tsunamis   int
	BlackHoles int
	Volcanoes  int
	Pieces     int
	Disasters  int
	MaxCascade int
	DurationMs int64
}

// Duration returns the played time.
func (s Stats) Duration() time.Duration {
	return time.Duration(s.DurationMs) * time.Millisecond
}
