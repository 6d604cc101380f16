// blobfall is a falling-block puzzle where same-colored blocks fuse into
// blobs that fall as units, raise tsunamis and black holes, erupt volcanoes
// and suffer the odd disaster.
//
// Usage:
//
//	blobfall list              - List available modes
//	blobfall play [mode]       - Play a mode, or pick one from the menu
//	blobfall serve             - Start SSH server for remote play
//	blobfall scores <mode>     - Show the best runs of a mode
//	blobfall soak              - Play headless games and check the physics
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.blobfall/runs.db)
//	--config <path>       - Load a custom game config YAML
//	--difficulty <preset> - easy, normal, hard, expert or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blobfall/internal/config"
	"github.com/vovakirdan/blobfall/internal/game"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blobfall",
	Short: "Blobfall - falling blocks that fuse, flow and erupt",
	Long: `Blobfall is a terminal falling-block puzzle. Touching blocks of one
color fuse into blobs and fall together; full rows clear and shapes in the
stack trigger tsunamis, black holes and volcanoes.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly or pick one from the menu
  serve    - Start SSH server for remote play
  scores   - View the best runs
  soak     - Run headless games and check the physics

Examples:
  blobfall play
  blobfall play blobfall_wide --difficulty hard
  blobfall serve --ssh :2222
  blobfall scores blobfall
  blobfall soak --games 200 --workers 8`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.blobfall/runs.db", "Path to runs database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, expert, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(soakCmd)
}

// setup validates the global flags and configures the game package.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
	}

	out := cmd.ErrOrStderr()
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
	}

	logger = log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "blobfall",
	})

	game.SetConfigPath(flagConfig)
	game.SetDifficultyPreset(flagDifficulty)
	game.SetLogger(logger)
	return nil
}
