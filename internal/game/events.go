package game

import "github.com/vovakirdan/blobfall/internal/core"

// Every event implements core.Event. Events are appended in the order they
// happen during a tick and handed out by Step.

// LineClearEvent is emitted when full rows are removed.
type LineClearEvent struct {
	Rows    []int
	Points  int
	Cascade int
}

func (LineClearEvent) EventName() string { return "lineClear" }

// StrikeEvent is emitted when a single clear removes StrikeLines or more rows.
type StrikeEvent struct {
	Lines int
}

func (StrikeEvent) EventName() string { return "strike" }

// TsunamiEvent is emitted when a full-width blob is washed away.
type TsunamiEvent struct {
	Size    int
	Points  int
	Cascade int
}

func (TsunamiEvent) EventName() string { return "tsunami" }

// BlackHoleEvent is emitted when an enveloped blob collapses with its shell.
type BlackHoleEvent struct {
	Inner   int
	Outer   int
	Points  int
	Cascade int
}

func (BlackHoleEvent) EventName() string { return "blackHole" }

// VolcanoEvent is emitted when a volcano starts to erupt.
type VolcanoEvent struct {
	Size    int
	Column  int
	Edge    string
	Points  int
	Cascade int
}

func (VolcanoEvent) EventName() string { return "volcano" }

// PieceLockedEvent is emitted when the active piece merges into the well.
type PieceLockedEvent struct {
	Shape string
	Cells int
}

func (PieceLockedEvent) EventName() string { return "pieceLocked" }

// RotateSucceededEvent is emitted after a successful rotation.
type RotateSucceededEvent struct {
	Rotation int
	Kick     int
}

func (RotateSucceededEvent) EventName() string { return "rotateSucceeded" }

// GameOverEvent is emitted once, when a piece locks above the well.
type GameOverEvent struct {
	Stats Stats
}

func (GameOverEvent) EventName() string { return "gameOver" }

// TornadoEvent reports tornado phase changes.
type TornadoEvent struct {
	Phase  TornadoPhase
	Column int
}

func (TornadoEvent) EventName() string { return "tornado" }

// EarthquakeEvent reports earthquake phase changes.
type EarthquakeEvent struct {
	Phase     EarthquakePhase
	Destroyed int
}

func (EarthquakeEvent) EventName() string { return "earthquake" }

// GremlinEvent is emitted when a gremlin finishes its attack.
type GremlinEvent struct {
	Eaten   int
	Planted bool
}

func (GremlinEvent) EventName() string { return "gremlin" }

// GravityEvent is emitted when a gravity solve was committed.
type GravityEvent struct {
	Moved       int
	MaxDistance int
}

func (GravityEvent) EventName() string { return "gravity" }

// LevelUpEvent is emitted when the scoring level increases.
type LevelUpEvent struct {
	Level int
}

func (LevelUpEvent) EventName() string { return "levelUp" }

var (
	_ core.Event = LineClearEvent{}
	_ core.Event = StrikeEvent{}
	_ core.Event = TsunamiEvent{}
	_ core.Event = BlackHoleEvent{}
	_ core.Event = VolcanoEvent{}
	_ core.Event = PieceLockedEvent{}
	_ core.Event = RotateSucceededEvent{}
	_ core.Event = GameOverEvent{}
	_ core.Event = TornadoEvent{}
	_ core.Event = EarthquakeEvent{}
	_ core.Event = EruptionEvent{}
	_ core.Event = GremlinEvent{}
	_ core.Event = GravityEvent{}
	_ core.Event = LevelUpEvent{}
)

// EruptionEvent reports volcano eruption phase changes.
type EruptionEvent struct {
	Phase       EruptionPhase
	Column      int
	Projectiles int
}

func (EruptionEvent) EventName() string { return "eruption" }
