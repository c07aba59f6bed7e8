package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/heilocal/feedmap/internal/catalog"
	"github.com/heilocal/feedmap/internal/feedsync"
	"github.com/heilocal/feedmap/internal/timer"
)

func newTestSessions(t *testing.T, cfg SessionConfig) (*Sessions, *Broker) {
	t.Helper()
	broker := NewBroker()
	s := NewSessions(slog.New(slog.NewTextHandler(io.Discard, nil)), broker, NewMetrics(), cfg)
	t.Cleanup(func() { s.Close() })
	return s, broker
}

func TestSessionsCreateGetDelete(t *testing.T) {
	ctx := context.Background()
	sessions, _ := newTestSessions(t, DefaultSessionConfig())

	s, err := sessions.Create(ctx, catalog.DemoItems(), func(c *feedsync.Coordinator) {
		c.SetFilter(catalog.Filter(catalog.Coffee))
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := sessions.Get(s.ID)
	if err != nil || got != s {
		t.Fatalf("get = %v, %v", got, err)
	}

	var view feedsync.View
	if err := s.Do(ctx, func(c *feedsync.Coordinator) { view = c.View() }); err != nil {
		t.Fatalf("do: %v", err)
	}
	if len(view.Items) != 5 || view.CurrentID != "ninnes-cafe-restaurant" {
		t.Errorf("view has %d items, current %q", len(view.Items), view.CurrentID)
	}

	if err := sessions.Delete(s.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := sessions.Get(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("get after delete: %v", err)
	}
	if err := sessions.Delete(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second delete: %v", err)
	}
	if err := s.Do(ctx, func(*feedsync.Coordinator) {}); !errors.Is(err, timer.ErrLoopClosed) {
		t.Errorf("do after delete: %v, want ErrLoopClosed", err)
	}
}

func TestSessionsSweep(t *testing.T) {
	ctx := context.Background()
	sessions, _ := newTestSessions(t, DefaultSessionConfig())

	stale, err := sessions.Create(ctx, catalog.DemoItems(), nil)
	if err != nil {
		t.Fatal(err)
	}
	fresh, err := sessions.Create(ctx, catalog.DemoItems(), nil)
	if err != nil {
		t.Fatal(err)
	}
	stale.lastSeen.Store(time.Now().Add(-time.Hour).UnixNano())

	if n := sessions.Sweep(time.Now(), 10*time.Minute); n != 1 {
		t.Fatalf("swept %d, want 1", n)
	}
	if _, err := sessions.Get(stale.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("stale session still open")
	}
	if _, err := sessions.Get(fresh.ID); err != nil {
		t.Errorf("fresh session closed: %v", err)
	}
	if sessions.Len() != 1 {
		t.Errorf("len = %d, want 1", sessions.Len())
	}
}

func TestSessionSettlesOnItsLoop(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultSessionConfig()
	cfg.SnapDuration = 5 * time.Millisecond
	sessions, _ := newTestSessions(t, cfg)

	items := catalog.DemoItems()[:3]
	s, err := sessions.Create(ctx, items, nil)
	if err != nil {
		t.Fatal(err)
	}

	// The jump snaps on real timers posted back to the session loop.
	err = s.Do(ctx, func(c *feedsync.Coordinator) {
		c.PinTapped(items[2].ID)
	})
	if err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		var view feedsync.View
		if err := s.Do(ctx, func(c *feedsync.Coordinator) { view = c.View() }); err != nil {
			t.Fatal(err)
		}
		if !view.Carousel.Snapping {
			if view.Carousel.LogicalIndex != 3 || view.CurrentID != items[2].ID {
				t.Fatalf("settled at %d (%q)", view.Carousel.LogicalIndex, view.CurrentID)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("snap never settled")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSessionEventsPublished(t *testing.T) {
	ctx := context.Background()
	sessions, broker := newTestSessions(t, DefaultSessionConfig())

	s, err := sessions.Create(ctx, catalog.DemoItems(), nil)
	if err != nil {
		t.Fatal(err)
	}
	ch := broker.Subscribe(s.ID)
	defer broker.Unsubscribe(s.ID, ch)

	if err := s.Do(ctx, func(c *feedsync.Coordinator) { c.PinTapped("kiven-grilli") }); err != nil {
		t.Fatal(err)
	}

	var types []string
	for range 4 {
		select {
		case data := <-ch:
			types = append(types, string(data))
		case <-time.After(time.Second):
			t.Fatalf("got %d events, want 4", len(types))
		}
	}
	want := []string{
		`{"type":"map_pin","itemId":"kiven-grilli"}`,
		`{"type":"map_center","latitude":60.1543805,"longitude":24.6357518}`,
		`{"type":"current_item","itemId":"kiven-grilli","latitude":60.1543805,"longitude":24.6357518}`,
		`{"type":"detail_requested","itemId":"kiven-grilli","latitude":60.1543805,"longitude":24.6357518}`,
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, types[i], want[i])
		}
	}
}

type recordingMirror struct {
	got chan string
}

func (m *recordingMirror) Mirror(_ context.Context, sessionID string, data []byte) error {
	m.got <- sessionID + " " + string(data)
	return nil
}

func TestBrokerMirror(t *testing.T) {
	m := &recordingMirror{got: make(chan string, 1)}
	b := NewBroker().WithMirror(m)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- b.RunMirror(ctx, slog.Default()) }()

	b.Publish("s1", SSEEvent{Type: EventDetailClosed, ItemID: "a"})

	select {
	case got := <-m.got:
		if got != `s1 {"type":"detail_closed","itemId":"a"}` {
			t.Errorf("mirrored %q", got)
		}
	case <-time.After(time.Second):
		t.Fatal("event not mirrored")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("RunMirror: %v", err)
	}
}

func TestBrokerCloseSession(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("s1")
	other := b.Subscribe("s2")

	b.CloseSession("s1")
	if _, open := <-ch; open {
		t.Error("channel still open")
	}
	b.Unsubscribe("s1", ch) // no double close

	b.Publish("s2", SSEEvent{Type: EventMapPin})
	if data := <-other; string(data) != `{"type":"map_pin"}` {
		t.Errorf("s2 got %s", data)
	}
	if b.Subscribers("s1") != 0 || b.Subscribers("s2") != 1 {
		t.Errorf("subscribers = %d, %d", b.Subscribers("s1"), b.Subscribers("s2"))
	}
}

func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         "localhost:1",
		DialTimeout:  10 * time.Millisecond,
		ReadTimeout:  10 * time.Millisecond,
		WriteTimeout: 10 * time.Millisecond,
		MaxRetries:   0,
	})
}

func TestRedisMirror(t *testing.T) {
	rdb := deadRedis()
	defer rdb.Close()
	m := NewRedisMirror(rdb)

	if got := m.Channel("abc"); got != "feedmap:session:abc" {
		t.Errorf("channel = %q", got)
	}
	if err := m.Mirror(context.Background(), "abc", []byte("{}")); err == nil {
		t.Error("expected error from unreachable redis")
	}
}
