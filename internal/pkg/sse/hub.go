package sse

import (
	"strings"
	"sync"
)

const subscriberBuffer = 10

// Event is one server-sent event addressed to a recipient.
type Event struct {
	Recipient string
	Name      string
	Data      any
}

// Hub fans events out to live subscribers. Recipients are keyed by email,
// compared case-insensitively. A nil *Hub drops everything.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

func key(recipient string) string {
	return strings.ToLower(strings.TrimSpace(recipient))
}

// Subscribe registers a stream for recipient. The returned cleanup closes the
// channel and must be called exactly once.
func (h *Hub) Subscribe(recipient string) (<-chan Event, func()) {
	k := key(recipient)
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	if h.subscribers[k] == nil {
		h.subscribers[k] = make(map[chan Event]struct{})
	}
	h.subscribers[k][ch] = struct{}{}
	h.mu.Unlock()

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[k], ch)
		close(ch)
		if len(h.subscribers[k]) == 0 {
			delete(h.subscribers, k)
		}
	}
	return ch, cleanup
}

// Publish delivers event to every stream of recipient. Full streams are
// skipped so a slow reader never blocks the publisher.
func (h *Hub) Publish(recipient string, event Event) {
	if h == nil {
		return
	}
	k := key(recipient)
	event.Recipient = k

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subscribers[k] {
		select {
		case ch <- event:
		default:
		}
	}
}

func (h *Hub) PublishToMany(recipients []string, event Event) {
	for _, r := range recipients {
		h.Publish(r, event)
	}
}

// SubscriberCount returns the number of open streams for recipient.
func (h *Hub) SubscriberCount(recipient string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[key(recipient)])
}
