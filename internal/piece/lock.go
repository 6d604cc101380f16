package piece

import "time"

// Lock delay defaults.
const (
	DefaultLockDelay = 500 * time.Millisecond
	DefaultLockKeep  = 0.15
	DefaultMaxResets = 15
)

// LockDelay decides when a resting piece locks. The timer accumulates while
// the piece rests; a successful move or rotation keeps only Keep of the
// remaining time and counts as one reset. Once MaxResets resets were spent
// the next resting tick locks no matter what the player does.
type LockDelay struct {
	Delay     time.Duration
	Keep      float64
	MaxResets int

	elapsed time.Duration
	resets  int
	active  bool
}

// NewLockDelay creates a lock-delay timer.
func NewLockDelay(delay time.Duration, keep float64, maxResets int) *LockDelay {
	return &LockDelay{Delay: delay, Keep: keep, MaxResets: maxResets}
}

// Tick advances the timer by dt. It returns true when the piece must lock.
func (l *LockDelay) Tick(dt time.Duration, resting bool) bool {
	if !resting {
		l.Clear()
		return false
	}
	l.active = true
	if l.resets >= l.MaxResets {
		return true
	}
	l.elapsed += dt
	return l.elapsed >= l.Delay
}

// Reset decays the timer after a successful move or rotation.
// It reports whether a reset was spent.
func (l *LockDelay) Reset() bool {
	if !l.active || l.resets >= l.MaxResets {
		return false
	}
	remaining := max(0, l.Delay-l.elapsed)
	l.elapsed = l.Delay - time.Duration(float64(remaining)*l.Keep)
	l.resets++
	return true
}

// Clear stops the timer when the piece leaves the ground.
// Spent resets stay spent for the lifetime of the piece.
func (l *LockDelay) Clear() {
	l.active = false
	l.elapsed = 0
}

// Restart forgets everything; called for every new piece.
func (l *LockDelay) Restart() {
	l.Clear()
	l.resets = 0
}

// Active reports whether the piece is currently resting with a running timer.
func (l *LockDelay) Active() bool {
	return l.active
}

// Resets returns the number of resets spent.
func (l *LockDelay) Resets() int {
	return l.resets
}

// Progress returns the accumulated fraction of the delay, 0..1.
func (l *LockDelay) Progress() float64 {
	if !l.active || l.Delay <= 0 {
		return 0
	}
	return min(1, float64(l.elapsed)/float64(l.Delay))
}
