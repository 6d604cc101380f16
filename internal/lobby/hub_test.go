package lobby

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recv waits for the announcement with the given text, skipping others.
func recv(t *testing.T, s *ChannelSession, text string) Announcement {
	t.Helper()
	for {
		select {
		case a := <-s.Announcements():
			if a.Text == text {
				return a
			}
		case <-time.After(time.Second):
			t.Fatalf("no %q announcement", text)
			return Announcement{}
		}
	}
}

func TestHubRelaysToOthers(t *testing.T) {
	h := NewHub()
	h.Start()
	defer h.Stop()

	alice := NewChannelSession("a", "alice", 4)
	bob := NewChannelSession("b", "bob", 4)
	h.Join(alice)
	h.Join(bob)

	got := recv(t, alice, "joined")
	assert.Equal(t, "bob joined", got.String())

	h.Announce("a", "raised a volcano")
	got = recv(t, bob, "raised a volcano")
	assert.Equal(t, SessionID("a"), got.From)
	assert.Equal(t, "alice raised a volcano", got.String())

	assert.Equal(t, 2, h.Count())
	assert.Equal(t, []string{"alice", "bob"}, h.Names())

	h.Leave("b")
	assert.Equal(t, 1, h.Count())
	select {
	case a := <-alice.Announcements():
		t.Fatalf("sender got its own announcement %q", a)
	default:
	}
}

func TestChannelSessionDropsOldest(t *testing.T) {
	s := NewChannelSession("x", "x", 2)
	for _, text := range []string{"one", "two", "three"} {
		s.Send(Announcement{Text: text})
	}
	require.Len(t, s.Announcements(), 2)
	assert.Equal(t, "two", (<-s.Announcements()).Text)
	assert.Equal(t, "three", (<-s.Announcements()).Text)

	s.Close()
	s.Close()
	s.Send(Announcement{Text: "late"})
	assert.Empty(t, s.Announcements())
}

func TestAnnounceAfterStop(t *testing.T) {
	h := NewHub()
	h.Stop()
	h.Stop()
	done := make(chan struct{})
	go func() {
		for range 300 {
			h.Announce("a", "spam")
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Announce blocked on a stopped hub")
	}
}
