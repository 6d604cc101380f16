package game

import (
	"math"

	"github.com/vovakirdan/blobfall/internal/board"
	"github.com/vovakirdan/blobfall/internal/config"
	"github.com/vovakirdan/blobfall/internal/core"
)

// Scorer turns removals into points. Every formula is multiplied by the
// cascade counter and the scoring level.
type Scorer struct {
	cfg config.ScoringConfig
}

// NewScorer creates a scorer from configuration.
func NewScorer(cfg config.ScoringConfig) Scorer {
	return Scorer{cfg: cfg}
}

func (s Scorer) power(size int) float64 {
	return math.Pow(float64(size), s.cfg.BlobExponent)
}

func (s Scorer) finish(points float64, cascade, level int) int {
	return int(math.Round(points * float64(max(cascade, 1)) * float64(max(level, 1))))
}

// LineClear scores removed row cells. Each cell is worth the pre-clear size
// of its blob raised to BlobExponent; lava cells count LavaMultiplier times
// and cells outside any blob count as singletons.
func (s Scorer) LineClear(removed []board.Block, blobs []*board.Blob, lines, cascade, level int) int {
	sizes := make(map[board.Coord]int)
	for _, bl := range blobs {
		for _, p := range bl.Positions {
			sizes[p] = bl.Size()
		}
	}

	points := 0.0
	for _, blk := range removed {
		size, ok := sizes[blk.Pos]
		if !ok {
			size = 1
		}
		weight := 1.0
		if blk.Cell.Color == core.ColorLava {
			weight = s.cfg.LavaMultiplier
		}
		points += weight * s.power(size)
	}
	points += float64(s.cfg.LinePoints * lines)
	if s.IsStrike(lines) {
		points *= s.cfg.StrikeMultiplier
	}
	return s.finish(points, cascade, level)
}

// IsStrike reports whether a clear of this many rows is a strike.
func (s Scorer) IsStrike(lines int) bool {
	return lines >= s.cfg.StrikeLines
}

// Tsunami scores a full-width blob.
func (s Scorer) Tsunami(size, cascade, level int) int {
	return s.finish(s.power(size)*s.cfg.TsunamiMultiplier, cascade, level)
}

// BlackHole scores an enveloped blob together with its shell.
func (s Scorer) BlackHole(inner, outer, cascade, level int) int {
	return s.finish(s.power(inner+outer)*s.cfg.BlackHoleMultiplier, cascade, level)
}

// Volcano scores an eruption.
func (s Scorer) Volcano(lava, outer, cascade, level int) int {
	return s.finish(s.power(lava+outer)*s.cfg.VolcanoMultiplier, cascade, level)
}

// SoftDrop scores rows descended by soft drop.
func (s Scorer) SoftDrop(rows int) int {
	return rows * s.cfg.SoftDropPoints
}

// HardDrop scores rows descended by hard drop.
func (s Scorer) HardDrop(rows int) int {
	return rows * s.cfg.HardDropPoints
}

// Level returns the scoring level reached after clearing lines.
func (s Scorer) Level(lines int) int {
	return 1 + lines/s.cfg.LinesPerLevel
}
