package game

import (
	"fmt"
	"time"
)

// DisasterKind names a disaster.
type DisasterKind int

const (
	DisasterTornado DisasterKind = iota
	DisasterEarthquake
	DisasterVolcano
	DisasterGremlin
)

// String returns the disaster name.
func (k DisasterKind) String() string {
	switch k {
	case DisasterTornado:
		return "tornado"
	case DisasterEarthquake:
		return "earthquake"
	case DisasterVolcano:
		return "volcano"
	case DisasterGremlin:
		return "gremlin"
	default:
		return fmt.Sprintf("disaster(%d)", int(k))
	}
}

func millis(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// TriggerDisaster starts a disaster on demand. Volcanoes only start from a
// formation. It reports false when the kind is already running or there is
// nothing for it to act on.
func (g *Game) TriggerDisaster(kind DisasterKind) bool {
	if g.over {
		return false
	}
	switch kind {
	case DisasterTornado:
		return g.startTornado()
	case DisasterEarthquake:
		return g.startEarthquake()
	case DisasterGremlin:
		return g.startGremlin()
	default:
		return false
	}
}

// rollDisaster rolls once per placement for a random disaster.
func (g *Game) rollDisaster() bool {
	if !g.cfg.Disasters.Enabled {
		return false
	}
	chance := g.difficulty.DisasterChance(g.cfg.Disasters.Chance, g.progress())
	if g.rng.Float64() >= chance {
		return false
	}
	w := g.cfg.Disasters.Weights
	total := w.Tornado + w.Earthquake + w.Gremlin
	if total <= 0 {
		return false
	}
	switch r := g.rng.IntN(total); {
	case r < w.Tornado:
		return g.startTornado()
	case r < w.Tornado+w.Earthquake:
		return g.startEarthquake()
	default:
		return g.startGremlin()
	}
}

// advanceDisasters steps every running disaster. A finished disaster is
// dropped and the chain is resumed so the next piece can spawn.
func (g *Game) advanceDisasters(dt time.Duration) {
	if g.tornado != nil {
		g.advanceTornado(dt)
		if g.tornado.phase == TornadoDone {
			g.tornado = nil
			g.requestResolve()
		}
	}
	if g.quake != nil {
		g.advanceEarthquake(dt)
		if g.quake.phase == EarthquakeDone {
			g.quake = nil
			g.requestResolve()
		}
	}
	if g.eruption != nil {
		g.advanceEruption(dt)
		if g.eruption.phase == EruptionDone {
			g.eruption = nil
			g.requestResolve()
		}
	}
	if g.gremlin != nil {
		g.advanceGremlin(dt)
		if g.gremlin.done {
			g.gremlin = nil
			g.requestResolve()
		}
	}
}

// busyDisaster reports whether a disaster is rewriting the well right now.
// Gravity and the chain wait while it is.
func (g *Game) busyDisaster() bool {
	return (g.tornado != nil && g.tornado.busy()) ||
		(g.quake != nil && g.quake.busy()) ||
		(g.eruption != nil && g.eruption.busy()) ||
		(g.gremlin != nil && !g.gremlin.done)
}

func (g *Game) anyDisaster() bool {
	return g.tornado != nil || g.quake != nil || g.eruption != nil || g.gremlin != nil
}

// preemptDisasters cancels tornadoes and earthquakes that have not touched
// the well yet.
func (g *Game) preemptDisasters() {
	if g.tornado != nil && g.tornado.preemptible() {
		g.log.Debug("tornado preempted", "phase", g.tornado.phase)
		g.tornado = nil
	}
	if g.quake != nil && g.quake.preemptible() {
		g.log.Debug("earthquake preempted", "phase", g.quake.phase)
		g.quake = nil
	}
}

// ActiveDisasters lists the running disasters.
func (g *Game) ActiveDisasters() []DisasterKind {
	var out []DisasterKind
	if g.tornado != nil {
		out = append(out, DisasterTornado)
	}
	if g.quake != nil {
		out = append(out, DisasterEarthquake)
	}
	if g.eruption != nil {
		out = append(out, DisasterVolcano)
	}
	if g.gremlin != nil {
		out = append(out, DisasterGremlin)
	}
	return out
}
