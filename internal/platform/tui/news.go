package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blobfall/internal/core"
	"github.com/vovakirdan/blobfall/internal/game"
	"github.com/vovakirdan/blobfall/internal/lobby"
)

const newsLines = 3

// announcementMsg carries news from another player.
type announcementMsg lobby.Announcement

// waitForAnnouncement blocks until the lobby has news for s or s ends.
func waitForAnnouncement(s *lobby.ChannelSession) tea.Cmd {
	return func() tea.Msg {
		select {
		case a := <-s.Announcements():
			return announcementMsg(a)
		case <-s.Done():
			return nil
		}
	}
}

// headline returns the news worth sharing about e, if any.
func headline(e core.Event) (string, bool) {
	switch e := e.(type) {
	case game.VolcanoEvent:
		return "raised a volcano", true
	case game.BlackHoleEvent:
		return fmt.Sprintf("opened a black hole (%d blocks)", e.Inner+e.Outer), true
	case game.TsunamiEvent:
		return fmt.Sprintf("rode a tsunami of %d", e.Size), true
	case game.StrikeEvent:
		return fmt.Sprintf("struck %d lines at once", e.Lines), true
	case game.LineClearEvent:
		if e.Cascade >= 3 {
			return fmt.Sprintf("chained x%d", e.Cascade), true
		}
	case game.GameOverEvent:
		return "finished with " + FormatNumber(e.Stats.Score), true
	}
	return "", false
}

// newsView renders the latest announcements, newest last.
func newsView(news []lobby.Announcement, online int) string {
	if online <= 1 && len(news) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d online", online)))
	for _, a := range news {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("» " + a.String()))
	}
	return b.String()
}
