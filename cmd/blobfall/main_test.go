package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blobfall/internal/game"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestListShowsModes(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "blobfall_wide")
	assert.Contains(t, out, "Blobfall (Chaos)")
	assert.Contains(t, out, "tetromino, pentomino")
	assert.Contains(t, out, game.ModeChaos.Blurb())
	assert.Less(t, strings.Index(out, "blobfall "), strings.Index(out, "blobfall_wide"), "menu order")
}

func TestBadGlobalFlags(t *testing.T) {
	_, err := execute(t, "list", "--difficulty", "brutal")
	assert.Error(t, err)

	_, err = execute(t, "list", "--difficulty", "", "--log-level", "loud")
	assert.Error(t, err)
}

func TestSoakCommand(t *testing.T) {
	out, err := execute(t, "soak", "--games", "2", "--ticks", "3000", "--workers", "1",
		"--seed", "11", "--quiet", "--log-level", "error", "--difficulty", "normal",
		"--db", filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "Games:      2 (seed 11")
	assert.Contains(t, out, "Violations: 0")
}
