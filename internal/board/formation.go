package board

import (
	"github.com/vovakirdan/blobfall/internal/core"
)

// Rules select which formations are live. They are derived from the
// difficulty tier by the caller.
type Rules struct {
	Tsunami   bool
	BlackHole bool
	Volcano   bool
	LavaColor core.Color
}

// Formation is one of TsunamiFormation, BlackHoleFormation or VolcanoFormation.
type Formation interface {
	// Cells returns every cell consumed by the formation.
	Cells() []Coord
	formation()
}

// TsunamiFormation is a blob spanning the full width of the well.
type TsunamiFormation struct {
	Blob *Blob
}

func (TsunamiFormation) formation() {}

// Cells returns the cells of the spanning blob.
func (f TsunamiFormation) Cells() []Coord {
	return f.Blob.Positions
}

// BlackHoleFormation is a blob fully enclosed, 8-directionally, by another blob.
type BlackHoleFormation struct {
	Inner *Blob
	Outer *Blob
}

func (BlackHoleFormation) formation() {}

// Cells returns the cells of both blobs.
func (f BlackHoleFormation) Cells() []Coord {
	cells := make([]Coord, 0, f.Inner.Size()+f.Outer.Size())
	cells = append(cells, f.Inner.Positions...)
	return append(cells, f.Outer.Positions...)
}

// EdgeMask is a set of well edges touched by a blob.
type EdgeMask uint8

const (
	EdgeLeft EdgeMask = 1 << iota
	EdgeRight
	EdgeFloor
)

// Has reports whether all edges in e2 are present.
func (e EdgeMask) Has(e2 EdgeMask) bool {
	return e&e2 == e2
}

// String returns a short description such as "floor" or "left+floor".
func (e EdgeMask) String() string {
	s := ""
	add := func(name string) {
		if s != "" {
			s += "+"
		}
		s += name
	}
	if e.Has(EdgeLeft) {
		add("left")
	}
	if e.Has(EdgeRight) {
		add("right")
	}
	if e.Has(EdgeFloor) {
		add("floor")
	}
	if s == "" {
		return "none"
	}
	return s
}

// VolcanoFormation is a blob resting against a wall or the floor and otherwise
// enclosed by another blob.
type VolcanoFormation struct {
	Lava           *Blob
	Outer          *Blob
	EruptionColumn int
	Edge           EdgeMask
}

func (VolcanoFormation) formation() {}

// Cells returns the lava blob's cells; the outer ring survives the eruption.
func (f VolcanoFormation) Cells() []Coord {
	return f.Lava.Positions
}

// Formations groups every formation found on one settled board.
type Formations struct {
	Tsunamis   []TsunamiFormation
	BlackHoles []BlackHoleFormation
	Volcanoes  []VolcanoFormation
}

// Empty reports whether nothing was found.
func (f Formations) Empty() bool {
	return len(f.Tsunamis) == 0 && len(f.BlackHoles) == 0 && len(f.Volcanoes) == 0
}

// Pick returns the single formation to trigger for this settle.
// Priority: volcano > black hole > tsunami.
func (f Formations) Pick() (Formation, bool) {
	switch {
	case len(f.Volcanoes) > 0:
		return f.Volcanoes[0], true
	case len(f.BlackHoles) > 0:
		return f.BlackHoles[0], true
	case len(f.Tsunamis) > 0:
		return f.Tsunamis[0], true
	}
	return nil, false
}

// DetectFormations classifies the blobs of b under rules.
// Zero-length blobs are skipped.
func DetectFormations(b *Board, blobs []*Blob, rules Rules) Formations {
	var out Formations

	for _, bl := range blobs {
		if bl.Size() == 0 {
			continue
		}
		if rules.Tsunami && IsTsunami(b, bl) {
			out.Tsunamis = append(out.Tsunamis, TsunamiFormation{Blob: bl})
		}
	}

	if rules.BlackHole {
		for _, inner := range blobs {
			if inner.Size() == 0 {
				continue
			}
			for _, outer := range blobs {
				if Envelops(b, outer, inner) {
					out.BlackHoles = append(out.BlackHoles, BlackHoleFormation{Inner: inner, Outer: outer})
					break
				}
			}
		}
	}

	if rules.Volcano {
		for _, inner := range blobs {
			if inner.Size() == 0 || inner.Color == rules.LavaColor {
				continue
			}
			edges := EdgesTouched(b, inner)
			if edges == 0 {
				continue
			}
			for _, outer := range blobs {
				if EnvelopsForVolcano(b, outer, inner, edges) {
					out.Volcanoes = append(out.Volcanoes, VolcanoFormation{
						Lava:           inner,
						Outer:          outer,
						EruptionColumn: eruptionColumn(inner),
						Edge:           edges,
					})
					break
				}
			}
		}
	}
	return out
}

// IsTsunami reports whether the blob reaches both side walls.
func IsTsunami(b *Board, bl *Blob) bool {
	return bl.TouchesLeft() && bl.TouchesRight(b.Cols)
}

// Envelops reports whether every 8-directional neighbor of every inner cell
// is inside the well and belongs to outer or inner. A blob never envelops
// itself.
func Envelops(b *Board, outer, inner *Blob) bool {
	if outer == nil || inner == nil || outer == inner || outer.ID == inner.ID {
		return false
	}
	if outer.Size() == 0 || inner.Size() == 0 {
		return false
	}
	for _, p := range inner.Positions {
		for _, d := range octal {
			n := p.Add(d[0], d[1])
			if !b.InBounds(n) {
				return false
			}
			if !inner.Contains(n) && !outer.Contains(n) {
				return false
			}
		}
	}
	return true
}

// EdgesTouched returns the walls and floor the blob rests against.
func EdgesTouched(b *Board, bl *Blob) EdgeMask {
	var e EdgeMask
	if bl.TouchesLeft() {
		e |= EdgeLeft
	}
	if bl.TouchesRight(b.Cols) {
		e |= EdgeRight
	}
	if bl.TouchesFloor(b.Rows) {
		e |= EdgeFloor
	}
	return e
}

// EnvelopsForVolcano reports whether outer encloses inner 4-directionally,
// where neighbors leaving the well are allowed only through edges in edges.
// The ceiling is never an allowed exit.
func EnvelopsForVolcano(b *Board, outer, inner *Blob, edges EdgeMask) bool {
	if outer == nil || inner == nil || outer == inner || outer.ID == inner.ID {
		return false
	}
	if outer.Size() == 0 || inner.Size() == 0 {
		return false
	}
	for _, p := range inner.Positions {
		for _, d := range orthogonal {
			n := p.Add(d[0], d[1])
			if !b.InBounds(n) {
				switch {
				case n.X < 0 && edges.Has(EdgeLeft):
				case n.X >= b.Cols && edges.Has(EdgeRight):
				case n.Y >= b.Rows && edges.Has(EdgeFloor):
				default:
					return false
				}
				continue
			}
			if !inner.Contains(n) && !outer.Contains(n) {
				return false
			}
		}
	}
	return true
}

// eruptionColumn is the column of the blob's topmost cell, leftmost on ties.
func eruptionColumn(bl *Blob) int {
	// Positions are row-major, so the first one is topmost-leftmost.
	return bl.Positions[0].X
}
