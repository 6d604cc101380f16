package board

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blobfall/internal/core"
)

func settle(t *testing.T, b *Board) Solution {
	t.Helper()
	before := b.Clone()
	sol := Solve(b, SolveOptions{})
	require.True(t, b.Equal(before), "solve must not touch its input")
	b.ApplyJourneys(sol.Journeys)
	require.True(t, b.Equal(sol.Board), "applied journeys must reproduce the phantom")
	return sol
}

func TestSolveCases(t *testing.T) {
	tests := []struct {
		name  string
		rows  []string
		want  []string
		moved int
	}{
		{
			name: "fall stops at the first point of contact",
			rows: []string{
				"RR.",
				"...",
				"...",
				"...",
				"B..",
				"B..",
				"BG.",
			},
			want: []string{
				"...",
				"...",
				"...",
				"RR.",
				"B..",
				"B..",
				"BG.",
			},
			moved: 1,
		},
		{
			name: "plug travels with its cup",
			rows: []string{
				"R.R",
				"RYR",
				"RRR",
				"...",
				"...",
			},
			want: []string{
				"...",
				"...",
				"R.R",
				"RYR",
				"RRR",
			},
			moved: 2,
		},
		{
			name: "loose plug settles inside the cup",
			rows: []string{
				"RYR",
				"R.R",
				"RRR",
				"...",
				"...",
				"...",
			},
			want: []string{
				"...",
				"...",
				"...",
				"R.R",
				"RYR",
				"RRR",
			},
			moved: 2,
		},
		{
			name: "gremlin block falls on its own",
			rows: []string{
				"Rg",
				"..",
				".B",
			},
			want: []string{
				"..",
				".g",
				"RB",
			},
			moved: 2,
		},
		{
			name: "lattice holds what rests on it",
			rows: []string{
				"R.",
				"#.",
				"..",
				"..",
			},
			want: []string{
				"R.",
				"#.",
				"..",
				"..",
			},
			moved: 0,
		},
		{
			name: "settled board is untouched",
			rows: []string{
				"....",
				"Y..B",
				"RRBB",
			},
			want: []string{
				"....",
				"Y..B",
				"RRBB",
			},
			moved: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := MustParse(tt.rows...)
			sol := settle(t, b)
			assert.Equal(t, MustParse(tt.want...).String(), b.String())
			assert.Len(t, sol.Journeys, tt.moved)
		})
	}
}

func TestSolveFallDistanceIsMinimum(t *testing.T) {
	// Column 0 has three empty rows below the blob, column 1 has five.
	b := MustParse(
		"RR.",
		"...",
		"...",
		"...",
		"B..",
		"B..",
		"BG.",
	)
	sol := Solve(b, SolveOptions{})
	require.Len(t, sol.Journeys, 1)
	j := sol.Journeys[0]
	assert.Equal(t, core.ColorRed, j.Color)
	assert.Equal(t, 3, j.Distance())
	assert.Equal(t, []Coord{C(0, 3), C(1, 3)}, j.End)
	assert.Equal(t, 3, sol.MaxDistance())
}

func TestSolvePlugNeverPassesCup(t *testing.T) {
	b := MustParse(
		"RYR",
		"R.R",
		"RRR",
		"...",
		"...",
	)
	settle(t, b)

	blobs := BuildBlobs(b, BuildOptions{})
	var cup, plug *Blob
	for _, bl := range blobs {
		switch bl.Color {
		case core.ColorRed:
			cup = bl
		case core.ColorYellow:
			plug = bl
		}
	}
	require.NotNil(t, cup)
	require.NotNil(t, plug)

	_, cupBottom, ok := cup.ColumnRange(1)
	require.True(t, ok)
	assert.Less(t, plug.Bottom(), cupBottom, "plug must stay above the cup floor")
}

func TestSolveRegroupsAfterSupportDrops(t *testing.T) {
	// Y holds up a hooked R/G pair that neither blob can leave alone.
	b := MustParse(
		"RRR.....",
		"G.RGG...",
		"G.RRG...",
		"GGGGGBBB",
		"YYYYYY.M",
		".......M",
		".......M",
		".......M",
		".......M",
		".......M",
	)
	sol := settle(t, b)

	want := MustParse(
		"........",
		"........",
		"........",
		".....BBB",
		".......M",
		"RRR....M",
		"G.RGG..M",
		"G.RRG..M",
		"GGGGG..M",
		"YYYYYY.M",
	)
	assert.Equal(t, want.String(), b.String())
	assert.Len(t, sol.Journeys, 3)
	assert.Greater(t, sol.Rounds, 1)

	again := Solve(b, SolveOptions{})
	assert.False(t, again.Moved(), "settled board is a fixed point")
}

func TestSolveAnchoredBlob(t *testing.T) {
	b := MustParse(
		"RR",
		"..",
		"..",
	)
	b.SetMeta(C(1, 0), Meta{Lattice: true})

	sol := Solve(b, SolveOptions{})
	assert.False(t, sol.Moved())
}

func TestSolveBarrierSplitsRegion(t *testing.T) {
	// Without the fault the red region rests on the blue block as one piece.
	b := MustParse(
		"RRRR",
		"B...",
		"B...",
	)
	sol := Solve(b, SolveOptions{})
	assert.False(t, sol.Moved())

	fault := func(a, c Coord) bool {
		return min(a.X, c.X) == 1 && max(a.X, c.X) == 2
	}
	sol = Solve(b, SolveOptions{Barrier: fault})
	require.Len(t, sol.Journeys, 1)
	assert.Equal(t, 2, sol.Journeys[0].Distance())
}

func TestApplyJourneysKeepsFlags(t *testing.T) {
	b := MustParse(
		"R.",
		"..",
	)
	b.SetMeta(C(0, 0), Meta{Fade: Fade{Active: true, Opacity: 0.25}})
	sol := settle(t, b)
	require.Len(t, sol.Journeys, 1)
	assert.True(t, b.MetaAt(C(0, 1)).Fade.Active)
	assert.False(t, b.MetaAt(C(0, 0)).Fade.Active)
}

func randomBoard(r *rand.Rand, rows, cols int, density float64) *Board {
	palette := []core.Color{core.ColorRed, core.ColorGreen, core.ColorBlue, core.ColorYellow}
	b := New(rows, cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if r.Float64() < density {
				b.Set(C(x, y), palette[r.IntN(len(palette))])
			}
		}
	}
	return b
}

func TestSolveProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 200; i++ {
		b := randomBoard(r, DefaultRows, DefaultCols, 0.2+0.6*r.Float64())
		colors := b.ColorCounts()
		filled := b.FilledCount()

		settle(t, b)

		// Mass conservation.
		require.Equal(t, colors, b.ColorCounts(), "board %d", i)
		require.Equal(t, filled, b.FilledCount(), "board %d", i)

		// Idempotence.
		again := Solve(b, SolveOptions{})
		require.False(t, again.Moved(), "board %d is not a fixed point:\n%s", i, b)

		// No floating rows.
		row, found := FindFloatingRow(b)
		require.False(t, found, "board %d floats at row %d:\n%s", i, row, b)
	}
}

func TestFindFloatingRow(t *testing.T) {
	tests := []struct {
		name  string
		rows  []string
		row   int
		found bool
	}{
		{
			name:  "gap under a blob",
			rows:  []string{"RR..", "....", "..BB"},
			row:   1,
			found: true,
		},
		{
			name:  "empty rows on top only",
			rows:  []string{"....", "....", "..BB"},
			row:   -1,
			found: false,
		},
		{
			name:  "hanging lattice",
			rows:  []string{"##..", "....", "..BB"},
			row:   -1,
			found: false,
		},
		{
			name:  "blob resting on lattice",
			rows:  []string{"R...", "#...", "....", "..BB"},
			row:   -1,
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, found := FindFloatingRow(MustParse(tt.rows...))
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.row, row)
		})
	}
}
