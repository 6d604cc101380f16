// Package lobby connects the players of one SSH server: it knows who is
// online and relays announcements (big chains, volcanoes, new bests) from
// one session to every other.
package lobby

import (
	"sync"
	"time"
)

// SessionID identifies one SSH connection.
type SessionID string

// Announcement is a line of news shown to other players.
type Announcement struct {
	From SessionID
	Name string
	Text string
	At   time.Time
}

// String formats the announcement for a status line.
func (a Announcement) String() string {
	return a.Name + " " + a.Text
}

// SessionHandle is the transport-neutral side of a session the hub talks to.
type SessionHandle interface {
	ID() SessionID
	Name() string

	// Send delivers an announcement without blocking.
	Send(a Announcement)

	// Done closes when the session ends.
	Done() <-chan struct{}
}

// ChannelSession is a SessionHandle backed by a buffered channel. The TUI
// reads Announcements from it.
type ChannelSession struct {
	id       SessionID
	name     string
	events   chan Announcement
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelSession creates a session handle buffering up to size announcements.
func NewChannelSession(id SessionID, name string, size int) *ChannelSession {
	if size < 1 {
		size = 16
	}
	return &ChannelSession{
		id:     id,
		name:   name,
		events: make(chan Announcement, size),
		done:   make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *ChannelSession) ID() SessionID {
	return s.id
}

// Name returns the player name.
func (s *ChannelSession) Name() string {
	return s.name
}

// Send queues an announcement. When the buffer is full the oldest one is dropped.
func (s *ChannelSession) Send(a Announcement) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- a:
	default:
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- a:
		default:
		}
	}
}

// Announcements returns the channel to receive from.
func (s *ChannelSession) Announcements() <-chan Announcement {
	return s.events
}

// Done returns the done channel.
func (s *ChannelSession) Done() <-chan struct{} {
	return s.done
}

// Close marks the session as done. Safe to call multiple times.
func (s *ChannelSession) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}
