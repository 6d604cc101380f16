package piece

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blobfall/internal/board"
	"github.com/vovakirdan/blobfall/internal/core"
)

func shapeNamed(t *testing.T, name string) Shape {
	t.Helper()
	for _, s := range Collect(SetTetromino, SetPentomino, SetHexomino, SetHeptomino) {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("no shape %q", name)
	return Shape{}
}

func TestTablesHaveExpectedSizes(t *testing.T) {
	tests := []struct {
		set  Set
		size int
	}{
		{SetTetromino, 4},
		{SetPentomino, 5},
		{SetHexomino, 6},
		{SetHeptomino, 7},
	}
	for _, tt := range tests {
		t.Run(tt.set.String(), func(t *testing.T) {
			shapes := Shapes(tt.set)
			require.NotEmpty(t, shapes)
			for _, s := range shapes {
				assert.Equal(t, tt.size, s.Size(), "shape %s", s.Name)
				for _, row := range s.Grid {
					assert.Len(t, row, s.Width(), "shape %s is ragged", s.Name)
				}
			}
		})
	}
	assert.Len(t, Shapes(SetTetromino), 7)
	assert.Len(t, Shapes(SetPentomino), 12)

	s, ok := ParseSet("hexomino")
	assert.True(t, ok)
	assert.Equal(t, SetHexomino, s)
	_, ok = ParseSet("octomino")
	assert.False(t, ok)
}

func TestShapeRotate(t *testing.T) {
	l := shapeNamed(t, "L")
	cw := l.Rotate(true)
	assert.Equal(t, "#.\n#.\n##", cw.String())
	assert.True(t, cw.Rotate(false).Equal(l))

	full := l
	for i := 0; i < 4; i++ {
		full = full.Rotate(true)
	}
	assert.True(t, full.Equal(l))
}

func TestSpawn(t *testing.T) {
	p := Spawn(shapeNamed(t, "T"), core.ColorRed, board.DefaultCols)
	assert.Equal(t, 3, p.X)
	assert.Equal(t, -1, p.Y)
	assert.True(t, p.AboveTop())

	i := Spawn(shapeNamed(t, "I"), core.ColorCyan, board.DefaultCols)
	assert.Equal(t, 3, i.X)
	assert.Equal(t, 0, i.Y)
	assert.False(t, i.AboveTop())
}

func TestMoveAgainstWalls(t *testing.T) {
	b := board.New(4, 4)
	p := &Piece{Shape: shapeNamed(t, "O"), X: 0, Y: 0}

	assert.False(t, p.Move(b, -1, 0))
	assert.True(t, p.Move(b, 1, 0))
	assert.True(t, p.Move(b, 1, 0))
	assert.False(t, p.Move(b, 1, 0))
	assert.Equal(t, 2, p.X)

	b.Set(board.C(2, 3), core.ColorRed)
	assert.True(t, p.Move(b, 0, 1))
	assert.True(t, p.Resting(b))
	assert.False(t, p.Move(b, 0, 1))
}

func TestRotateWallKick(t *testing.T) {
	b := board.New(board.DefaultRows, board.DefaultCols)
	vertical := shapeNamed(t, "I").Rotate(true)

	p := &Piece{Shape: vertical, X: 8, Y: 5}
	require.True(t, p.Rotate(b, true))
	assert.Equal(t, 6, p.X, "kicked two columns left")
	assert.Equal(t, 1, p.Rotation)
	assert.False(t, p.Collides(b))
}

func TestRotateKickExhaustedRestores(t *testing.T) {
	b := board.New(board.DefaultRows, board.DefaultCols)
	vertical := shapeNamed(t, "I").Rotate(true)

	p := &Piece{Shape: vertical, X: 9, Y: 5, Rotation: 1}
	assert.False(t, p.Rotate(b, true))
	assert.True(t, p.Shape.Equal(vertical))
	assert.Equal(t, 9, p.X)
	assert.Equal(t, 5, p.Y)
	assert.Equal(t, 1, p.Rotation)
}

func TestRotateBlockedByCells(t *testing.T) {
	b := board.MustParse(
		"RRR.RRRRRR",
		"RRR.RRRRRR",
		"RRR.RRRRRR",
		"RRR.RRRRRR",
	)
	vertical := shapeNamed(t, "I").Rotate(true)
	p := &Piece{Shape: vertical, X: 3, Y: 0}
	require.False(t, p.Collides(b))
	assert.False(t, p.Rotate(b, false))
	assert.Equal(t, 3, p.X)
}

func TestDropAndMerge(t *testing.T) {
	b := board.New(board.DefaultRows, board.DefaultCols)
	p := Spawn(shapeNamed(t, "O"), core.ColorYellow, b.Cols)
	assert.Equal(t, board.DefaultRows-1, p.DropDistance(b))

	ghost := p.Ghost(b)
	assert.Equal(t, board.DefaultRows-2, ghost.Y)
	assert.Equal(t, -1, p.Y, "ghost is a copy")

	placed := p.Merge(b)
	assert.Len(t, placed, 2, "cells above the well are dropped")
	assert.Equal(t, 2, b.FilledCount())
	assert.Equal(t, core.ColorYellow, b.Get(board.C(4, 0)).Color)
}

func TestLockDelayExpires(t *testing.T) {
	l := NewLockDelay(500*time.Millisecond, DefaultLockKeep, DefaultMaxResets)
	for i := 0; i < 4; i++ {
		require.False(t, l.Tick(100*time.Millisecond, true), "tick %d", i)
	}
	assert.InDelta(t, 0.8, l.Progress(), 1e-9)
	assert.True(t, l.Tick(100*time.Millisecond, true))
}

func TestLockDelayResetDecays(t *testing.T) {
	l := NewLockDelay(500*time.Millisecond, DefaultLockKeep, DefaultMaxResets)
	assert.False(t, l.Reset(), "no reset while airborne")

	l.Tick(400*time.Millisecond, true)
	require.True(t, l.Reset())
	// 100ms remained, 15ms are kept
	assert.InDelta(t, 0.97, l.Progress(), 1e-9)
	assert.Equal(t, 1, l.Resets())
	assert.False(t, l.Tick(10*time.Millisecond, true))
	assert.True(t, l.Tick(10*time.Millisecond, true), "only the kept share is left")

	l.Restart()
	l.Tick(400*time.Millisecond, true)
	require.True(t, l.Reset())

	assert.False(t, l.Tick(100*time.Millisecond, false))
	assert.False(t, l.Active())
	assert.Equal(t, 1, l.Resets(), "leaving the ground keeps spent resets")

	l.Restart()
	assert.Zero(t, l.Resets())
}

func TestLockDelayResetCap(t *testing.T) {
	l := NewLockDelay(500*time.Millisecond, DefaultLockKeep, DefaultMaxResets)
	dt := 16 * time.Millisecond

	for i := 1; i <= DefaultMaxResets; i++ {
		require.False(t, l.Tick(dt, true), "resting tick %d", i)
		require.True(t, l.Reset(), "reset %d", i)
	}
	assert.False(t, l.Reset(), "cap reached")
	assert.True(t, l.Tick(dt, true), "resting tick 16 locks")
}

func TestBagDealsEveryShape(t *testing.T) {
	shapes := Shapes(SetTetromino)
	palette := []core.Color{core.ColorRed, core.ColorBlue}
	bag := NewBag(shapes, palette, rand.New(rand.NewPCG(1, 2)))

	peek := bag.Peek(3)
	require.Len(t, peek, 3)
	first := bag.Next()
	assert.Equal(t, peek[0].Shape.Name, first.Shape.Name)

	seen := map[string]bool{first.Shape.Name: true}
	for i := 1; i < len(shapes); i++ {
		d := bag.Next()
		seen[d.Shape.Name] = true
		assert.Contains(t, palette, d.Color)
	}
	assert.Len(t, seen, len(shapes))
}

func TestBagIsDeterministic(t *testing.T) {
	a := NewBag(Shapes(SetPentomino), []core.Color{core.ColorRed, core.ColorGreen}, rand.New(rand.NewPCG(9, 9)))
	b := NewBag(Shapes(SetPentomino), []core.Color{core.ColorRed, core.ColorGreen}, rand.New(rand.NewPCG(9, 9)))
	for i := 0; i < 40; i++ {
		da, db := a.Next(), b.Next()
		assert.Equal(t, da.Shape.Name, db.Shape.Name)
		assert.Equal(t, da.Color, db.Color)
	}
}
