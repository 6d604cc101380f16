package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blobfall/internal/config"
	"github.com/vovakirdan/blobfall/internal/game"
	"github.com/vovakirdan/blobfall/internal/registry"
	"github.com/vovakirdan/blobfall/internal/storage"
)

// NewGame creates the mode registered under id with a difficulty preset.
// An empty preset keeps whatever game.SetDifficultyPreset chose.
func NewGame(id, preset string, logger *log.Logger) (registry.Game, error) {
	mode, err := game.ParseMode(id)
	if err != nil {
		return registry.Create(id)
	}
	opts := []game.Option{game.WithLogger(logger)}
	if p, err := config.ParsePreset(preset); err == nil {
		opts = append(opts, game.WithPreset(p))
	}
	return game.New(mode, opts...), nil
}

// RunRecord builds the stored record of a finished game.
func RunRecord(g registry.Game, seed int64, preset string, logger *log.Logger) storage.RunRecord {
	rec := storage.RunRecord{
		Mode:       g.ID(),
		Difficulty: preset,
		Seed:       seed,
		Score:      g.State().Score,
	}
	bf, ok := g.(*game.Game)
	if !ok {
		return rec
	}

	st := bf.Stats()
	rec.Lines = st.Lines
	rec.Level = st.Level
	rec.Strikes = st.Strikes
	rec.Tsunamis = st.Tsunamis
	rec.BlackHoles = st.BlackHoles
	rec.Volcanoes = st.Volcanoes
	rec.Pieces = st.Pieces
	rec.Disasters = st.Disasters
	rec.MaxCascade = st.MaxCascade
	rec.Duration = st.Duration()
	if rec.Difficulty == "" {
		rec.Difficulty = bf.Tier().String()
	}

	data, err := storage.EncodeBoard(bf.Board())
	if err != nil {
		if logger != nil {
			logger.Warn("final board not stored", "error", err)
		}
		return rec
	}
	rec.Board = data
	return rec
}
