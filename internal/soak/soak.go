// Package soak plays many headless games with a random player and checks the
// physics invariants every time the well settles.
package soak

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/blobfall/internal/board"
	"github.com/vovakirdan/blobfall/internal/config"
	"github.com/vovakirdan/blobfall/internal/core"
	"github.com/vovakirdan/blobfall/internal/game"
	"github.com/vovakirdan/blobfall/internal/piece"
)

// Options configures a soak run.
type Options struct {
	Games    int
	MaxTicks int // Per game
	Workers  int
	Mode     game.Mode
	Preset   config.DifficultyPreset
	Seed     int64
	Config   *config.GameConfig // nil loads the usual config
	Logger   *log.Logger
}

// Violation is a broken invariant seen after a settle.
type Violation struct {
	Game   int
	Tick   int
	Kind   string
	Detail string
}

func (v Violation) String() string {
	return fmt.Sprintf("game %d tick %d: %s: %s", v.Game, v.Tick, v.Kind, v.Detail)
}

// GameResult is the outcome of one game.
type GameResult struct {
	Seed       int64
	Ticks      int
	Settles    int
	Stats      game.Stats
	Violations []Violation
}

// Report summarizes a soak run.
type Report struct {
	Results []GameResult

	ScoreMean   float64
	ScoreStdDev float64
	ScoreMedian float64
	LinesMean   float64
	PiecesMean  float64
	MaxCascade  int
	Settles     int
	Violations  []Violation
}

// Run plays opts.Games games. progress, when set, is called after each game
// with the number finished so far.
func Run(ctx context.Context, opts Options, progress func(done int)) (Report, error) {
	if opts.Games <= 0 {
		return Report{}, fmt.Errorf("soak: games must be positive, got %d", opts.Games)
	}
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = 20000
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	results := make([]GameResult, opts.Games)
	jobs := make(chan int)
	var wg sync.WaitGroup
	var mu sync.Mutex
	done := 0

	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = playOne(i, opts)
				mu.Lock()
				done++
				if progress != nil {
					progress(done)
				}
				mu.Unlock()
			}
		}()
	}

	var err error
feed:
	for i := 0; i < opts.Games; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return Report{}, fmt.Errorf("soak: interrupted after %d games: %w", done, err)
	}
	return summarize(results), nil
}

// playOne runs a single game to game over or the tick limit.
func playOne(index int, opts Options) GameResult {
	seed := opts.Seed + int64(index)
	gameOpts := []game.Option{game.WithLogger(opts.Logger)}
	if opts.Config != nil {
		gameOpts = append(gameOpts, game.WithConfig(*opts.Config))
	}
	if opts.Preset != "" {
		gameOpts = append(gameOpts, game.WithPreset(opts.Preset))
	}
	g := game.New(opts.Mode, gameOpts...)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: seed})

	//#nosec G115 -- seed bits
	rng := rand.New(rand.NewPCG(uint64(seed), 0x5eed))
	res := GameResult{Seed: seed}
	var last *piece.Piece
	frame := core.NewInputFrame()

	for tick := 0; tick < opts.MaxTicks && !g.State().GameOver; tick++ {
		if p := g.Active(); p != nil && p != last {
			last = p
			res.Settles++
			for _, v := range Check(g.Board()) {
				v.Game = index
				v.Tick = tick
				res.Violations = append(res.Violations, v)
				opts.Logger.Warn("invariant broken", "game", index, "tick", tick, "kind", v.Kind, "detail", v.Detail)
			}
			dropRandom(g, rng)
		}
		g.Step(frame)
		res.Ticks = tick + 1
	}

	res.Stats = g.Stats()
	return res
}

// dropRandom turns and slides the active piece at random, then hard-drops it.
func dropRandom(g *game.Game, rng *rand.Rand) {
	for range rng.IntN(4) {
		g.RotateCW()
	}
	shift := rng.IntN(g.Board().Cols) - g.Board().Cols/2
	for range core.Abs(shift) {
		var moved bool
		if shift < 0 {
			moved = g.MoveLeft()
		} else {
			moved = g.MoveRight()
		}
		if !moved {
			break
		}
	}
	g.HardDrop()
}

// Check verifies a settled well: solving it again moves nothing, keeps the
// block count and leaves no floating row.
func Check(b *board.Board) []Violation {
	var out []Violation
	sol := board.Solve(b, board.SolveOptions{})
	if sol.Moved() {
		out = append(out, Violation{Kind: "unsettled", Detail: fmt.Sprintf("%d units still fall", len(sol.Journeys))})
	}
	if got, want := sol.Board.FilledCount(), b.FilledCount(); got != want {
		out = append(out, Violation{Kind: "mass", Detail: fmt.Sprintf("solve changed block count %d -> %d", want, got)})
	}
	if row, ok := board.FindFloatingRow(b); ok {
		out = append(out, Violation{Kind: "floating", Detail: fmt.Sprintf("empty row %d under loose blocks", row)})
	}
	return out
}

func summarize(results []GameResult) Report {
	r := Report{Results: results}
	scores := make([]float64, len(results))
	lines := make([]float64, len(results))
	pieces := make([]float64, len(results))
	for i, res := range results {
		scores[i] = float64(res.Stats.Score)
		lines[i] = float64(res.Stats.Lines)
		pieces[i] = float64(res.Stats.Pieces)
		r.MaxCascade = max(r.MaxCascade, res.Stats.MaxCascade)
		r.Settles += res.Settles
		r.Violations = append(r.Violations, res.Violations...)
	}

	r.ScoreMean, r.ScoreStdDev = stat.MeanStdDev(scores, nil)
	r.LinesMean = stat.Mean(lines, nil)
	r.PiecesMean = stat.Mean(pieces, nil)

	sorted := append([]float64(nil), scores...)
	sort.Float64s(sorted)
	r.ScoreMedian = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return r
}
