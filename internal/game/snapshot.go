package game

import (
	"github.com/vovakirdan/blobfall/internal/board"
)

// Snapshot captures the game state for determinism testing and saved runs.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick     int
	Mode     string
	Score    int
	Lines    int
	Level    int
	Cascade  int
	Phase    int
	GameOver bool

	// Well, row-major. Each cell is color+1, or 0 when empty; lattice adds
	// 100 and gremlin adds 200.
	Rows  int
	Cols  int
	Cells []int

	// Active piece, empty Piece when there is none
	Piece    string
	PieceX   int
	PieceY   int
	Rotation int

	Disasters []int
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:     g.ticks,
		Mode:     g.mode.ID(),
		Score:    g.score,
		Lines:    g.lines,
		Level:    g.level,
		Cascade:  g.cascade,
		Phase:    int(g.phase),
		GameOver: g.over,
		Rows:     g.board.Rows,
		Cols:     g.board.Cols,
		Cells:    make([]int, 0, g.board.Rows*g.board.Cols),
	}
	for y := 0; y < g.board.Rows; y++ {
		for x := 0; x < g.board.Cols; x++ {
			snap.Cells = append(snap.Cells, encodeCell(g.board.BlockAt(board.C(x, y))))
		}
	}
	if g.active != nil {
		snap.Piece = g.active.Shape.Name
		snap.PieceX = g.active.X
		snap.PieceY = g.active.Y
		snap.Rotation = g.active.Rotation
	}
	for _, k := range g.ActiveDisasters() {
		snap.Disasters = append(snap.Disasters, int(k))
	}
	return snap
}

func encodeCell(blk board.Block) int {
	if !blk.Cell.Filled {
		return 0
	}
	v := int(blk.Cell.Color) + 1
	if blk.Meta.Lattice {
		v += 100
	}
	if blk.Meta.Gremlin {
		v += 200
	}
	return v
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Tick)                //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lines)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Cascade)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Phase)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PieceX+64)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PieceY+64)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Rotation)      //#nosec G115 -- hash computation
	h = h*31 + uint64(len(snap.Disasters)) //#nosec G115 -- hash computation

	for _, r := range snap.Mode + snap.Piece {
		h = h*31 + uint64(r) //#nosec G115 -- hash computation
	}

	for _, v := range snap.Cells {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.Disasters {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	if snap.GameOver {
		h = h*31 + 1
	}

	return h
}
