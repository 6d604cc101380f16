package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blobfall/internal/config"
	"github.com/vovakirdan/blobfall/internal/game"
	"github.com/vovakirdan/blobfall/internal/soak"
)

var (
	flagSoakGames    int
	flagSoakTicks    int
	flagSoakWorkers  int
	flagSoakMode     string
	flagSoakQuiet    bool
	flagSoakMaxShown int
)

var soakCmd = &cobra.Command{
	Use:   "soak",
	Short: "Play headless games and check the physics",
	Long: `Play many games with a random player and verify, every time the well
settles, that nothing is left to fall, that solving never creates or loses
blocks and that no floating row remains. Exits non-zero on any violation.

Examples:
  blobfall soak
  blobfall soak --games 500 --workers 8 --mode blobfall_chaos --difficulty expert
  blobfall soak --seed 1234 --ticks 50000`,
	RunE: runSoak,
}

func init() {
	soakCmd.Flags().IntVar(&flagSoakGames, "games", 100, "Number of games to play")
	soakCmd.Flags().IntVar(&flagSoakTicks, "ticks", 20000, "Tick limit per game")
	soakCmd.Flags().IntVar(&flagSoakWorkers, "workers", runtime.NumCPU(), "Parallel games")
	soakCmd.Flags().StringVar(&flagSoakMode, "mode", "blobfall", "Mode to play")
	soakCmd.Flags().BoolVar(&flagSoakQuiet, "quiet", false, "Hide the progress bar")
	soakCmd.Flags().IntVar(&flagSoakMaxShown, "show", 20, "Violations to print")
}

func runSoak(cmd *cobra.Command, _ []string) error {
	mode, err := game.ParseMode(flagSoakMode)
	if err != nil {
		return err
	}
	var preset config.DifficultyPreset
	if flagDifficulty != "" {
		preset, _ = config.ParsePreset(flagDifficulty)
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var bar *pb.ProgressBar
	progress := func(int) {}
	if !flagSoakQuiet {
		bar = pb.StartNew(flagSoakGames)
		progress = func(int) { bar.Increment() }
	}

	start := time.Now()
	report, err := soak.Run(ctx, soak.Options{
		Games:    flagSoakGames,
		MaxTicks: flagSoakTicks,
		Workers:  flagSoakWorkers,
		Mode:     mode,
		Preset:   preset,
		Seed:     seed,
		Logger:   logger,
	}, progress)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}

	printReport(cmd, report, seed, time.Since(start))
	if n := len(report.Violations); n > 0 {
		return fmt.Errorf("soak: %d invariant violations", n)
	}
	return nil
}

func printReport(cmd *cobra.Command, r soak.Report, seed int64, took time.Duration) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Games:      %d (seed %d, %s)\n", len(r.Results), seed, took.Round(time.Millisecond))
	fmt.Fprintf(out, "Settles:    %d\n", r.Settles)
	fmt.Fprintf(out, "Score:      mean %.0f  sd %.0f  median %.0f\n", r.ScoreMean, r.ScoreStdDev, r.ScoreMedian)
	fmt.Fprintf(out, "Lines:      mean %.1f\n", r.LinesMean)
	fmt.Fprintf(out, "Pieces:     mean %.1f\n", r.PiecesMean)
	fmt.Fprintf(out, "Max chain:  %d\n", r.MaxCascade)
	fmt.Fprintf(out, "Violations: %d\n", len(r.Violations))
	for i, v := range r.Violations {
		if i == flagSoakMaxShown {
			fmt.Fprintf(out, "  ... %d more\n", len(r.Violations)-i)
			break
		}
		fmt.Fprintf(out, "  %s\n", v)
	}
}
