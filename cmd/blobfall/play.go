package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blobfall/internal/core"
	"github.com/vovakirdan/blobfall/internal/platform/tui"
	"github.com/vovakirdan/blobfall/internal/registry"
	"github.com/vovakirdan/blobfall/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode. Without a mode, a menu lets you pick the
mode and difficulty, browse the scoreboard and play again after a game ends.

Controls:
  Left/Right, A/D  - Move
  Up/X, Z          - Rotate clockwise, counter-clockwise
  Down/S           - Soft drop
  Space            - Hard drop
  P/Esc            - Pause
  R                - Restart (after game over)
  B                - Back to menu (paused or game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy    - Line clears only, slow start
  normal  - Tsunamis join in
  hard    - Black holes join in
  expert  - Volcanoes join in
  fixed   - Normal rules, no progression

Examples:
  blobfall play
  blobfall play blobfall --difficulty easy
  blobfall play blobfall_chaos --difficulty expert --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	if len(args) == 1 && !registry.Exists(args[0]) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'blobfall list' to see available modes.")
		os.Exit(1)
	}

	// The alternate screen owns the terminal, so logs go to a file.
	if flagLogFile == "" {
		if path, err := defaultLogPath(); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
				defer f.Close()
				logger.SetOutput(f)
			}
		}
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}

	var runErr error
	if len(args) == 0 {
		runErr = tui.RunSession(store, cfg, flagDifficulty, logger)
	} else {
		g, err := tui.NewGame(args[0], flagDifficulty, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			os.Exit(1)
		}
		runErr = tui.Run(g, store, cfg, flagDifficulty, logger)
	}

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

func defaultLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".blobfall")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "blobfall.log"), nil
}
