package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// Event types published to session subscribers.
const (
	EventCurrentItem     = "current_item"
	EventDetailRequested = "detail_requested"
	EventDetailClosed    = "detail_closed"
	EventMapCenter       = "map_center"
	EventMapPin          = "map_pin"
)

// SSEEvent is the payload published to session subscribers.
type SSEEvent struct {
	Type      string   `json:"type"`
	ItemID    string   `json:"itemId,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Mirror receives every published event, typically to fan it out beyond
// this process.
type Mirror interface {
	Mirror(ctx context.Context, sessionID string, data []byte) error
}

type mirrored struct {
	sessionID string
	data      []byte
}

// Broker is an in-process pub/sub for session events, keyed by session ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}

	mirror Mirror
	outbox chan mirrored
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// WithMirror enables mirroring. Events are handed to m from RunMirror.
func (b *Broker) WithMirror(m Mirror) *Broker {
	b.mirror = m
	b.outbox = make(chan mirrored, 256)
	return b
}

// Subscribe returns a channel that receives JSON-encoded events for the given session.
func (b *Broker) Subscribe(sessionID string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[sessionID] == nil {
		b.subs[sessionID] = make(map[chan []byte]struct{})
	}
	b.subs[sessionID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the session's subscribers.
func (b *Broker) Unsubscribe(sessionID string, ch chan []byte) {
	b.mu.Lock()
	if _, ok := b.subs[sessionID][ch]; ok {
		delete(b.subs[sessionID], ch)
		close(ch)
	}
	if len(b.subs[sessionID]) == 0 {
		delete(b.subs, sessionID)
	}
	b.mu.Unlock()
}

// Subscribers returns how many channels are subscribed to the session.
func (b *Broker) Subscribers(sessionID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[sessionID])
}

// CloseSession closes every subscriber channel of the session.
func (b *Broker) CloseSession(sessionID string) {
	b.mu.Lock()
	for ch := range b.subs[sessionID] {
		close(ch)
	}
	delete(b.subs, sessionID)
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the given session. It never
// blocks.
func (b *Broker) Publish(sessionID string, event SSEEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[sessionID] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()

	if b.outbox != nil {
		select {
		case b.outbox <- mirrored{sessionID: sessionID, data: data}:
		default:
		}
	}
}

// RunMirror forwards published events to the mirror until ctx is done.
func (b *Broker) RunMirror(ctx context.Context, logger *slog.Logger) error {
	if b.mirror == nil {
		<-ctx.Done()
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case m := <-b.outbox:
			if err := b.mirror.Mirror(ctx, m.sessionID, m.data); err != nil {
				logger.Warn("mirroring event failed", "session", m.sessionID, "error", err)
			}
		}
	}
}
