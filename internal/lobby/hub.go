package lobby

import (
	"sort"
	"sync"
	"time"
)

// Hub tracks online sessions and fans announcements out to them. Messages
// are handled by one goroutine in arrival order.
type Hub struct {
	mu       sync.RWMutex
	sessions map[SessionID]SessionHandle

	msgChan  chan hubMessage
	done     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

type hubMessage struct {
	from SessionID
	text string
}

// NewHub creates a hub. Call Start before announcing.
func NewHub() *Hub {
	return &Hub{
		sessions: make(map[SessionID]SessionHandle),
		msgChan:  make(chan hubMessage, 256),
		done:     make(chan struct{}),
		now:      time.Now,
	}
}

// Start begins relaying announcements.
func (h *Hub) Start() {
	go h.processMessages()
}

// Stop shuts the relay down. Safe to call multiple times.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
}

// Join registers a session and tells everyone else about it.
func (h *Hub) Join(s SessionHandle) {
	h.mu.Lock()
	h.sessions[s.ID()] = s
	h.mu.Unlock()
	h.Announce(s.ID(), "joined")
}

// Leave removes a session.
func (h *Hub) Leave(id SessionID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, id)
}

// Announce queues text from a session for every other session. It drops
// the message once the hub is stopped.
func (h *Hub) Announce(from SessionID, text string) {
	select {
	case h.msgChan <- hubMessage{from: from, text: text}:
	case <-h.done:
	}
}

func (h *Hub) processMessages() {
	for {
		select {
		case msg := <-h.msgChan:
			h.broadcast(msg)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) broadcast(msg hubMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sender, ok := h.sessions[msg.from]
	if !ok {
		return
	}
	a := Announcement{From: msg.from, Name: sender.Name(), Text: msg.text, At: h.now()}
	for id, s := range h.sessions {
		if id != msg.from {
			s.Send(a)
		}
	}
}

// Count returns the number of online sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Names returns the online player names, sorted.
func (h *Hub) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, 0, len(h.sessions))
	for _, s := range h.sessions {
		names = append(names, s.Name())
	}
	sort.Strings(names)
	return names
}
