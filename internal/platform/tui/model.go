package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blobfall/internal/core"
	"github.com/vovakirdan/blobfall/internal/registry"
	"github.com/vovakirdan/blobfall/internal/storage"
)

// GameModel runs one game: it turns keys into input frames, ticks the game
// at a fixed rate and stores the run when it ends.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	preset     string
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       GameKeyMap
	help       help.Model
	quitting   bool
	backToMenu bool
	quitOnBack bool
	runSaved   bool
	announce   func(text string)
}

// NewGameModel creates a model for g. A zero seed is replaced by the clock.
func NewGameModel(g registry.Game, store *storage.Store, cfg core.RuntimeConfig, preset string, logger *log.Logger) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return GameModel{
		game:       g,
		screen:     core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-2)),
		store:      store,
		logger:     logger,
		config:     cfg,
		preset:     preset,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultGameKeyMap(),
		help:       help.New(),
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		// The well does not depend on the window, so the game keeps running.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(1, msg.Height-2))
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Back) && (m.gameState.GameOver || m.gameState.Paused):
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionRestart:
		if !m.gameState.GameOver {
			return m, nil
		}
	case core.ActionNone:
		return m, nil
	}
	m.inputFrame.Set(action)
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if m.announce != nil {
		for _, e := range result.Events {
			if text, ok := headline(e); ok {
				m.announce(text)
			}
		}
	}

	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun stores the finished game. Failures are logged and play goes on.
func (m GameModel) saveRun() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	rec := RunRecord(m.game, m.config.Seed, m.preset, m.logger)
	id, err := m.store.SaveRun(rec)
	if err != nil {
		m.logger.Error("run not saved", "mode", rec.Mode, "error", err)
		return
	}
	m.logger.Info("run saved", "id", id, "mode", rec.Mode, "score", rec.Score)
}

// saveScreenshot writes the current screen to ~/.blobfall/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".blobfall", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(screenshotText(m.screen)), 0o600); err != nil {
		m.logger.Warn("screenshot not written", "error", err)
	}
}

// screenshotText dumps the screen as plain text without trailing blanks.
func screenshotText(s *core.Screen) string {
	lines := make([]string, s.Height())
	for y := range lines {
		lines[y] = strings.TrimRight(s.Row(y), " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}

// View renders the game and the help bar.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// IsQuitting returns true if the user asked to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state seen at the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run plays a single game in the local terminal.
func Run(g registry.Game, store *storage.Store, cfg core.RuntimeConfig, preset string, logger *log.Logger) error {
	model := NewGameModel(g, store, cfg, preset, logger)
	model.quitOnBack = true
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
