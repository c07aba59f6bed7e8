package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/heilocal/feedmap/internal/catalog"
	"github.com/heilocal/feedmap/internal/feedsync"
	"github.com/heilocal/feedmap/internal/geo"
	"github.com/heilocal/feedmap/internal/gesture"
	"github.com/heilocal/feedmap/internal/timer"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionConfig tunes every feed created by a Sessions registry.
type SessionConfig struct {
	SnapDuration time.Duration
	Policy       gesture.Policy
	CenterOffset float64
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Policy: gesture.DefaultPolicy(),
	}
}

// Session is one feed. All access to the coordinator goes through Do, which
// runs on the session's event loop.
type Session struct {
	ID       string
	loop     *timer.Loop
	feed     *feedsync.Coordinator
	lastSeen atomic.Int64
}

// Do runs fn on the session's loop and waits for it.
func (s *Session) Do(ctx context.Context, fn func(*feedsync.Coordinator)) error {
	s.touch()
	return s.loop.Do(ctx, func() { fn(s.feed) })
}

func (s *Session) touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

func (s *Session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}

type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	cfg     SessionConfig
	broker  *Broker
	metrics *Metrics
	logger  *slog.Logger
}

func NewSessions(logger *slog.Logger, broker *Broker, metrics *Metrics, cfg SessionConfig) *Sessions {
	return &Sessions{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		broker:   broker,
		metrics:  metrics,
		logger:   logger,
	}
}

// Create opens a session over items. setup runs on the session's loop before
// the catalog is loaded, so its filter and anchor apply to the first ranking.
func (r *Sessions) Create(ctx context.Context, items []catalog.Item, setup func(*feedsync.Coordinator)) (*Session, error) {
	id := uuid.NewString()
	loop := timer.NewLoop(64)
	pub := &publisher{sessionID: id, broker: r.broker, metrics: r.metrics}

	opts := []feedsync.Option{
		feedsync.WithLogger(r.logger.With("session", id)),
		feedsync.WithPolicy(r.cfg.Policy),
		feedsync.WithCenterOffset(r.cfg.CenterOffset),
	}
	if r.cfg.SnapDuration > 0 {
		opts = append(opts, feedsync.WithSnapDuration(r.cfg.SnapDuration))
	}

	s := &Session{
		ID:   id,
		loop: loop,
		feed: feedsync.New(loop, pub, pub, opts...),
	}
	err := s.Do(ctx, func(c *feedsync.Coordinator) {
		if setup != nil {
			setup(c)
		}
		c.SetCatalog(items)
	})
	if err != nil {
		loop.Close()
		return nil, fmt.Errorf("initializing session: %w", err)
	}

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()

	r.metrics.sessionOpened()
	r.logger.Info("session opened", "session", id, "items", len(items))
	return s, nil
}

func (r *Sessions) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (r *Sessions) Delete(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	subscribers := r.broker.Subscribers(id)
	r.close(s)
	r.logger.Info("session closed", "session", id, "subscribers", subscribers)
	return nil
}

func (r *Sessions) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep closes sessions idle for longer than idle and returns how many it
// closed.
func (r *Sessions) Sweep(now time.Time, idle time.Duration) int {
	r.mu.Lock()
	var stale []*Session
	for id, s := range r.sessions {
		if s.idleSince(now) > idle {
			stale = append(stale, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range stale {
		r.close(s)
	}
	return len(stale)
}

// RunJanitor sweeps idle sessions every interval until ctx is done.
func (r *Sessions) RunJanitor(ctx context.Context, interval, idle time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-t.C:
			if n := r.Sweep(now, idle); n > 0 {
				r.logger.Info("closed idle sessions", "count", n)
			}
		}
	}
}

func (r *Sessions) Close() error {
	r.mu.Lock()
	all := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range all {
		r.close(s)
	}
	return nil
}

func (r *Sessions) close(s *Session) {
	s.loop.Close()
	r.broker.CloseSession(s.ID)
	r.metrics.sessionClosed()
}

// publisher turns the feed's map commands and notifications into session
// events. It runs on the session's loop.
type publisher struct {
	sessionID string
	broker    *Broker
	metrics   *Metrics
}

func (p *publisher) publish(ev SSEEvent) {
	p.metrics.event(ev.Type)
	p.broker.Publish(p.sessionID, ev)
}

func (p *publisher) SetCenter(c geo.Coordinate) {
	p.publish(SSEEvent{Type: EventMapCenter, Latitude: &c.Latitude, Longitude: &c.Longitude})
}

func (p *publisher) SetSelectedPin(id string) {
	p.publish(SSEEvent{Type: EventMapPin, ItemID: id})
}

func (p *publisher) CurrentItemChanged(item catalog.RankedItem) {
	p.publish(itemEvent(EventCurrentItem, item))
}

func (p *publisher) DetailRequested(item catalog.RankedItem) {
	p.publish(itemEvent(EventDetailRequested, item))
}

func (p *publisher) DetailClosed(id string) {
	p.publish(SSEEvent{Type: EventDetailClosed, ItemID: id})
}

func itemEvent(typ string, item catalog.RankedItem) SSEEvent {
	lat, lng := item.Coordinate.Latitude, item.Coordinate.Longitude
	return SSEEvent{Type: typ, ItemID: item.ID, Latitude: &lat, Longitude: &lng}
}
