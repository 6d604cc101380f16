package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blobfall/internal/core"
)

var allRules = Rules{Tsunami: true, BlackHole: true, Volcano: true, LavaColor: core.ColorLava}

func detect(b *Board, rules Rules) Formations {
	return DetectFormations(b, BuildBlobs(b, BuildOptions{}), rules)
}

func TestDetectTsunami(t *testing.T) {
	b := MustParse(
		"....",
		"RR..",
		".RRR",
	)
	f := detect(b, allRules)
	require.Len(t, f.Tsunamis, 1)
	assert.Equal(t, 5, f.Tsunamis[0].Blob.Size())

	f = detect(b, Rules{})
	assert.True(t, f.Empty())
}

func TestDetectBlackHole(t *testing.T) {
	b := MustParse(
		".....",
		".RRR.",
		".RBR.",
		".RRR.",
		".....",
	)
	f := detect(b, allRules)
	require.Len(t, f.BlackHoles, 1)
	bh := f.BlackHoles[0]
	assert.Equal(t, core.ColorBlue, bh.Inner.Color)
	assert.Equal(t, core.ColorRed, bh.Outer.Color)
	assert.Len(t, bh.Cells(), 9)
	assert.Empty(t, f.Volcanoes)
	assert.Empty(t, f.Tsunamis)
}

func TestBlackHoleNeverAgainstWall(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{
			name: "left wall",
			rows: []string{
				"RRR..",
				"BBR..",
				"RRR..",
			},
		},
		{
			name: "right wall",
			rows: []string{
				"...RRR",
				"...RBB",
				"...RRR",
			},
		},
		{
			name: "ceiling",
			rows: []string{
				"RBR",
				"RRR",
				"...",
			},
		},
		{
			name: "floor",
			rows: []string{
				".....",
				".RRR.",
				".RBR.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := detect(MustParse(tt.rows...), Rules{BlackHole: true})
			assert.Empty(t, f.BlackHoles)
		})
	}
}

func TestEnvelopsExcludesSelf(t *testing.T) {
	b := MustParse(
		"...",
		".R.",
		"...",
	)
	blobs := BuildBlobs(b, BuildOptions{})
	require.Len(t, blobs, 1)
	assert.False(t, Envelops(b, blobs[0], blobs[0]))
	assert.False(t, EnvelopsForVolcano(b, blobs[0], blobs[0], EdgeFloor))
}

func TestDetectVolcano(t *testing.T) {
	b := MustParse(
		"RRR..",
		"BBR..",
		"RRR..",
	)
	f := detect(b, allRules)
	require.Len(t, f.Volcanoes, 1)
	v := f.Volcanoes[0]
	assert.Equal(t, core.ColorBlue, v.Lava.Color)
	assert.Equal(t, core.ColorRed, v.Outer.Color)
	assert.Equal(t, EdgeLeft, v.Edge)
	assert.Equal(t, "left", v.Edge.String())
	assert.Equal(t, 0, v.EruptionColumn)
	assert.Len(t, v.Cells(), 2, "the outer ring survives")
}

func TestDetectVolcanoOnFloor(t *testing.T) {
	b := MustParse(
		".....",
		".RRR.",
		".RBR.",
		".RBR.",
	)
	f := detect(b, allRules)
	require.Len(t, f.Volcanoes, 1)
	assert.Equal(t, EdgeFloor, f.Volcanoes[0].Edge)
	assert.Equal(t, 2, f.Volcanoes[0].EruptionColumn)
}

func TestVolcanoRejections(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{
			name: "already lava",
			rows: []string{
				"RRR..",
				"LLR..",
				"RRR..",
			},
		},
		{
			name: "open to the ceiling",
			rows: []string{
				"BR",
				"RR",
			},
		},
		{
			name: "gap in the ring",
			rows: []string{
				"RRR..",
				"BB...",
				"RRR..",
			},
		},
		{
			name: "not touching any edge",
			rows: []string{
				".....",
				".RRR.",
				".RBR.",
				".RRR.",
				".....",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := detect(MustParse(tt.rows...), Rules{Volcano: true, LavaColor: core.ColorLava})
			assert.Empty(t, f.Volcanoes)
		})
	}
}

func TestFormationPriority(t *testing.T) {
	// A volcano, a black hole and a tsunami in disjoint regions.
	b := MustParse(
		"GGG..YYY.",
		"BGG..YRY.",
		"GGG..YYY.",
		".........",
		"CCCCCCCCC",
	)
	f := detect(b, allRules)
	require.Len(t, f.Volcanoes, 1)
	require.Len(t, f.BlackHoles, 1)
	require.Len(t, f.Tsunamis, 1)

	picked, ok := f.Pick()
	require.True(t, ok)
	v, isVolcano := picked.(VolcanoFormation)
	require.True(t, isVolcano)
	assert.Equal(t, core.ColorBlue, v.Lava.Color)

	// Lower tiers never see the volcano.
	picked, ok = detect(b, Rules{Tsunami: true, BlackHole: true}).Pick()
	require.True(t, ok)
	assert.IsType(t, BlackHoleFormation{}, picked)

	picked, ok = detect(b, Rules{Tsunami: true}).Pick()
	require.True(t, ok)
	assert.IsType(t, TsunamiFormation{}, picked)

	_, ok = Formations{}.Pick()
	assert.False(t, ok)
}

func TestDetectSkipsEmptyBlobs(t *testing.T) {
	b := MustParse("R")
	blobs := []*Blob{newBlob(0, core.ColorRed, nil)}
	assert.True(t, DetectFormations(b, blobs, allRules).Empty())
}

func TestEdgeMaskString(t *testing.T) {
	assert.Equal(t, "none", EdgeMask(0).String())
	assert.Equal(t, "left+floor", (EdgeLeft | EdgeFloor).String())
	assert.True(t, (EdgeLeft | EdgeRight).Has(EdgeRight))
}
