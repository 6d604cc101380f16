package soak

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blobfall/internal/board"
	"github.com/vovakirdan/blobfall/internal/config"
	"github.com/vovakirdan/blobfall/internal/game"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name  string
		rows  []string
		kinds []string
	}{
		{"settled", []string{"....", ".R..", "RRB."}, nil},
		{"loose block", []string{".R..", "....", "BB.."}, []string{"unsettled", "floating"}},
		{"lattice holds", []string{"R...", "#...", "...."}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var kinds []string
			for _, v := range Check(board.MustParse(tt.rows...)) {
				kinds = append(kinds, v.Kind)
			}
			assert.Equal(t, tt.kinds, kinds)
		})
	}
}

func TestRunKeepsInvariants(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Disasters.Chance = 0.3
	var progress []int

	report, err := Run(context.Background(), Options{
		Games:    4,
		MaxTicks: 4000,
		Workers:  2,
		Mode:     game.ModeChaos,
		Preset:   config.DifficultyExpert,
		Seed:     99,
		Config:   &cfg,
	}, func(done int) { progress = append(progress, done) })
	require.NoError(t, err)

	assert.Len(t, report.Results, 4)
	assert.Equal(t, []int{1, 2, 3, 4}, progress)
	assert.Empty(t, report.Violations)
	assert.Positive(t, report.Settles)
	assert.Positive(t, report.PiecesMean)
	for i, res := range report.Results {
		assert.Equal(t, int64(99+i), res.Seed)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	cfg := config.DefaultConfig()
	opts := Options{Games: 2, MaxTicks: 2000, Mode: game.ModeClassic, Seed: 5, Config: &cfg}

	a, err := Run(context.Background(), opts, nil)
	require.NoError(t, err)
	opts.Workers = 2
	b, err := Run(context.Background(), opts, nil)
	require.NoError(t, err)

	assert.Equal(t, a.ScoreMean, b.ScoreMean)
	assert.Equal(t, a.Results[1].Stats, b.Results[1].Stats)
}

func TestRunRejectsBadOptions(t *testing.T) {
	_, err := Run(context.Background(), Options{}, nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, Options{Games: 3, MaxTicks: 10}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
