package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blobfall/internal/core"
	"github.com/vovakirdan/blobfall/internal/lobby"
	"github.com/vovakirdan/blobfall/internal/storage"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewScores
)

// SessionModel drives one player's flow: menu, game, scoreboard and back.
// It is the top-level model for SSH clients and for local play without a mode.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	preset   string
	logger   *log.Logger
	view     sessionView
	menu     MenuModel
	scores   ScoreboardModel
	game     *GameModel
	quitting bool

	hub  *lobby.Hub
	me   *lobby.ChannelSession
	news []lobby.Announcement
}

// NewSessionModel creates a session starting at the menu.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, preset string, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		store:  store,
		config: cfg,
		preset: preset,
		logger: logger,
		menu:   NewMenuModel(store, preset, cfg.ScreenW, cfg.ScreenH),
	}
}

// WithLobby connects the session to the other players of a server.
func (m SessionModel) WithLobby(hub *lobby.Hub, me *lobby.ChannelSession) SessionModel {
	m.hub = hub
	m.me = me
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.me != nil {
		return tea.Batch(m.menu.Init(), waitForAnnouncement(m.me))
	}
	return m.menu.Init()
}

func (m SessionModel) online() int {
	if m.hub == nil {
		return 0
	}
	return m.hub.Count()
}

// Update routes messages to the active view.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	case announcementMsg:
		m.news = append(m.news, lobby.Announcement(msg))
		if len(m.news) > newsLines {
			m.news = m.news[len(m.news)-newsLines:]
		}
		return m, waitForAnnouncement(m.me)
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.view = viewScores
		return m, m.scores.Init()
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	m.preset = string(m.menu.Preset())
	g, err := NewGame(selected.GameID, m.preset, m.logger)
	if err != nil {
		m.logger.Error("cannot create game", "mode", selected.GameID, "error", err)
		m.menu = NewMenuModel(m.store, m.preset, m.config.ScreenW, m.config.ScreenH)
		return m, nil
	}
	m.logger.Info("game started", "mode", selected.GameID, "difficulty", m.preset)

	gm := NewGameModel(g, m.store, m.config, m.preset, m.logger)
	if m.hub != nil && m.me != nil {
		hub, id := m.hub, m.me.ID()
		gm.announce = func(text string) { hub.Announce(id, text) }
	}
	m.game = &gm
	m.view = viewGame
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.game = &gm
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		m.game = nil
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.scores, cmd = m.scores.Update(msg)

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.store, m.preset, m.config.ScreenW, m.config.ScreenH)
	m.view = viewMenu
	return m, m.menu.Init()
}

// View renders the active view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.view {
	case viewGame:
		if len(m.news) > 0 {
			return m.game.View() + "\n" + dimStyle.Render("» "+m.news[len(m.news)-1].String())
		}
		return m.game.View()
	case viewScores:
		return m.scores.View()
	default:
		if news := newsView(m.news, m.online()); news != "" {
			return m.menu.View() + "\n" + centerBlock(news, m.config.ScreenW)
		}
		return m.menu.View()
	}
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(store *storage.Store, cfg core.RuntimeConfig, preset string, logger *log.Logger) error {
	_, err := tea.NewProgram(NewSessionModel(store, cfg, preset, logger), tea.WithAltScreen()).Run()
	return err
}
