package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blobfall/internal/board"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file created")
}

func TestSaveRunAndFetch(t *testing.T) {
	store := openTestStore(t)

	b := board.MustParse("....", "g...", "RR#.")
	blob, err := EncodeBoard(b)
	require.NoError(t, err)

	id, err := store.SaveRun(RunRecord{
		Mode:       "blobfall",
		Difficulty: "hard",
		Seed:       7,
		Score:      1234,
		Lines:      12,
		Level:      2,
		Tsunamis:   1,
		MaxCascade: 3,
		Duration:   90 * time.Second,
		Board:      blob,
	})
	require.NoError(t, err)
	assert.Len(t, id, 36, "uuid string")

	run, err := store.RunByID(id)
	require.NoError(t, err)
	assert.Equal(t, "blobfall", run.Mode)
	assert.Equal(t, "hard", run.Difficulty)
	assert.Equal(t, int64(7), run.Seed)
	assert.Equal(t, 1234, run.Score)
	assert.Equal(t, 3, run.MaxCascade)
	assert.Equal(t, 90*time.Second, run.Duration)

	restored, err := DecodeBoard(run.Board)
	require.NoError(t, err)
	assert.True(t, b.Equal(restored))

	_, err = store.RunByID("missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestTopRunsAndScores(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []RunRecord{
		{Mode: "blobfall", Score: 100},
		{Mode: "blobfall", Score: 50},
		{Mode: "blobfall", Score: 200},
		{Mode: "blobfall_wide", Score: 500},
	} {
		_, err := store.SaveRun(r)
		require.NoError(t, err)
	}

	top, err := store.TopRuns("blobfall", 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, 200, top[0].Score)
	assert.Equal(t, 100, top[1].Score)

	scores, err := store.ScoresFor("blobfall")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{100, 50, 200}, scores)

	high, err := store.HighScore("blobfall_wide")
	require.NoError(t, err)
	assert.Equal(t, 500, high)

	high, err = store.HighScore("blobfall_chaos")
	require.NoError(t, err)
	assert.Zero(t, high)

	stats, err := store.AllModeStats()
	require.NoError(t, err)
	require.Contains(t, stats, "blobfall")
	assert.Equal(t, 3, stats["blobfall"].RunsCount)
	assert.InDelta(t, 116.67, stats["blobfall"].AvgScore, 0.01)

	require.NoError(t, store.ClearRuns("blobfall"))
	top, err = store.TopRuns("blobfall", 10)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestSaveRunKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(RunRecord{ID: "fixed-id", Mode: "blobfall", Score: 1})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)

	_, err = store.SaveRun(RunRecord{ID: "fixed-id", Mode: "blobfall", Score: 2})
	assert.Error(t, err, "ids are unique")
}

func TestDecodeBoardRejectsGarbage(t *testing.T) {
	_, err := DecodeBoard([]byte("not zstd"))
	assert.Error(t, err)
}
