package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/blobfall/internal/platform/tui"
	"github.com/vovakirdan/blobfall/internal/registry"
	"github.com/vovakirdan/blobfall/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresStats bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show the best runs of a mode",
	Long: `Display the best runs of the given mode.

Examples:
  blobfall scores blobfall
  blobfall scores blobfall_chaos --limit 25
  blobfall scores blobfall --stats`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Print score distribution over every stored run")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every stored run of the mode")
}

func runScores(cmd *cobra.Command, args []string) {
	modeID := args[0]
	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'blobfall list' to see available modes.")
		os.Exit(1)
	}
	g, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if flagScoresClear {
		if err := store.ClearRuns(modeID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			return
		}
		fmt.Fprintf(out, "Cleared every %s run.\n", g.Title())
		return
	}

	runs, err := store.TopRuns(modeID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", g.Title())
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'blobfall play %s' to set the first high score!\n", modeID)
		return
	}

	fmt.Fprintf(out, "  %-4s  %12s  %5s  %3s  %5s  %-7s  %s\n", "Rank", "Score", "Lines", "Lvl", "Chain", "Diff", "Date")
	fmt.Fprintf(out, "  %-4s  %12s  %5s  %3s  %5s  %-7s  %s\n", "----", "-----", "-----", "---", "-----", "----", "----")
	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %12s  %5d  %3d  %5s  %-7s  %s\n",
			i+1, tui.FormatNumber(r.Score), r.Lines, r.Level,
			fmt.Sprintf("x%d", r.MaxCascade), r.Difficulty, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if flagScoresStats {
		scores, err := store.ScoresFor(modeID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			return
		}
		printDistribution(cmd, scores)
	}
}

// printDistribution prints mean, spread and quartiles of scores.
func printDistribution(cmd *cobra.Command, scores []int) {
	if len(scores) == 0 {
		return
	}
	xs := make([]float64, len(scores))
	for i, s := range scores {
		xs[i] = float64(s)
	}
	sort.Float64s(xs)

	mean, std := stat.MeanStdDev(xs, nil)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Runs:   %s\n", tui.FormatNumber(len(xs)))
	fmt.Fprintf(out, "Mean:   %s (sd %s)\n", tui.FormatNumber(int(mean)), tui.FormatNumber(int(std)))
	fmt.Fprintf(out, "Q1/Med/Q3: %s / %s / %s\n",
		tui.FormatNumber(int(stat.Quantile(0.25, stat.Empirical, xs, nil))),
		tui.FormatNumber(int(stat.Quantile(0.5, stat.Empirical, xs, nil))),
		tui.FormatNumber(int(stat.Quantile(0.75, stat.Empirical, xs, nil))))
}
