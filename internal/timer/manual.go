package timer

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by an explicit clock. Callbacks run
// synchronously inside Advance, in due-time order.
type Manual struct {
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	m   *Manual
	at  time.Duration
	seq int
	fn  func()
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) Handle {
	m.seq++
	t := &manualTimer{m: m, at: m.now + d, seq: m.seq, fn: fn}
	m.pending = append(m.pending, t)
	return t
}

func (t *manualTimer) Stop() bool {
	for i, p := range t.m.pending {
		if p == t {
			t.m.pending = append(t.m.pending[:i], t.m.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves the clock forward by d, firing every callback that falls due,
// including callbacks scheduled by callbacks within the window.
func (m *Manual) Advance(d time.Duration) {
	end := m.now + d
	for {
		sort.SliceStable(m.pending, func(i, j int) bool {
			if m.pending[i].at != m.pending[j].at {
				return m.pending[i].at < m.pending[j].at
			}
			return m.pending[i].seq < m.pending[j].seq
		})
		if len(m.pending) == 0 || m.pending[0].at > end {
			break
		}
		next := m.pending[0]
		m.pending = m.pending[1:]
		m.now = next.at
		next.fn()
	}
	m.now = end
}

// Pending returns how many callbacks are scheduled.
func (m *Manual) Pending() int {
	return len(m.pending)
}

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}
