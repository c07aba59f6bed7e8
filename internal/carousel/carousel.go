// Package carousel models the position of an infinitely looping vertical
// feed. N items are laid out in N+2 slots: slot 0 duplicates the last item
// and slot N+1 duplicates the first, so sliding past either end animates
// into a duplicate and is then silently moved to the matching real slot.
package carousel

import (
	"math"
	"time"

	"github.com/heilocal/feedmap/internal/timer"
)

const (
	DefaultSnapDuration = 600 * time.Millisecond

	// FallbackExtent replaces a zero, negative or non-finite viewport
	// extent in offset arithmetic.
	FallbackExtent = 500.0
)

// State is the carousel position. LogicalIndex is always an integer slot;
// ContinuousOffset carries the sub-slot pixel displacement of a live gesture.
type State struct {
	LogicalIndex     int     `json:"logicalIndex"`
	ContinuousOffset float64 `json:"continuousOffset"`
	Snapping         bool    `json:"isSnapping"`
	SnapFrom         int     `json:"snapFrom,omitempty"`
}

// Snapshot is one consistent read of the state together with the item it
// resolves to.
type Snapshot struct {
	State
	Len         int    `json:"len"`
	VisualIndex int    `json:"visualIndex"`
	CurrentID   string `json:"currentId,omitempty"`
}

func (s Snapshot) Empty() bool { return s.Len == 0 }

type Model struct {
	ids          []string
	positions    map[string]int
	state        State
	extent       float64
	snapDuration time.Duration
	snap         *timer.Slot
	observer     func(Snapshot)
}

type Option func(*Model)

func WithSnapDuration(d time.Duration) Option {
	return func(m *Model) { m.snapDuration = d }
}

func WithViewportExtent(px float64) Option {
	return func(m *Model) { m.extent = px }
}

// New returns an empty model. Snap settlement is scheduled on sched.
func New(sched timer.Scheduler, opts ...Option) *Model {
	m := &Model{
		positions:    map[string]int{},
		state:        State{LogicalIndex: 1},
		extent:       FallbackExtent,
		snapDuration: DefaultSnapDuration,
		snap:         timer.NewSlot(sched),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Observe registers fn to be called after every state change, including
// timer-driven settlement.
func (m *Model) Observe(fn func(Snapshot)) {
	m.observer = fn
}

// Reset replaces the sequence, cancels any pending settlement and returns
// to Idle(1).
func (m *Model) Reset(ids []string) {
	m.snap.Cancel()
	m.ids = append(m.ids[:0:0], ids...)
	m.positions = make(map[string]int, len(ids))
	for i, id := range m.ids {
		if _, dup := m.positions[id]; !dup {
			m.positions[id] = i
		}
	}
	m.state = State{LogicalIndex: 1}
	m.notify()
}

func (m *Model) Len() int { return len(m.ids) }

func (m *Model) Empty() bool { return len(m.ids) == 0 }

func (m *Model) State() State { return m.state }

// ViewportExtent returns the extent used for offset arithmetic, never zero.
func (m *Model) ViewportExtent() float64 {
	if m.extent <= 0 || math.IsNaN(m.extent) || math.IsInf(m.extent, 0) {
		return FallbackExtent
	}
	return m.extent
}

func (m *Model) SetViewportExtent(px float64) {
	m.extent = px
	m.notify()
}

// BeginGesture marks the start of a live gesture: a pending snap is settled
// immediately so no correction can fire mid-drag, and offset changes render
// without animation from here on.
func (m *Model) BeginGesture() {
	if m.Empty() {
		return
	}
	m.flush()
	m.state.Snapping = false
	m.state.SnapFrom = 0
	m.notify()
}

// SetContinuousOffset moves the feed by px during a live gesture. The
// logical index is untouched.
func (m *Model) SetContinuousOffset(px float64) {
	if m.Empty() || math.IsNaN(px) || math.IsInf(px, 0) {
		return
	}
	m.flush()
	m.state.ContinuousOffset = px
	m.state.Snapping = false
	m.state.SnapFrom = 0
	m.notify()
}

func (m *Model) CommitNext() bool { return m.commit(1) }

func (m *Model) CommitPrev() bool { return m.commit(-1) }

func (m *Model) commit(step int) bool {
	if m.Empty() {
		return false
	}
	m.flush()
	m.snapTo(m.state.LogicalIndex + step)
	return true
}

// Release abandons a gesture that did not reach its threshold: the offset
// animates back to zero at the current logical index.
func (m *Model) Release() {
	if m.Empty() {
		return
	}
	m.flush()
	m.snapTo(m.state.LogicalIndex)
}

// ForceJumpTo moves straight to the slot of id. It is a no-op when id is
// already the resolved current item or is not in the sequence.
func (m *Model) ForceJumpTo(id string) bool {
	if m.Empty() {
		return false
	}
	if cur, _ := m.ResolveCurrentItem(); cur == id {
		return false
	}
	pos, ok := m.positions[id]
	if !ok {
		return false
	}
	m.snap.Cancel()
	m.snapTo(pos + 1)
	return true
}

// ResolveCurrentItem returns the id of the item under the viewport centre,
// accounting for any live offset. It reports false for an empty sequence.
func (m *Model) ResolveCurrentItem() (string, bool) {
	if m.Empty() {
		return "", false
	}
	return m.ids[m.realIndex(m.visualIndex())], true
}

func (m *Model) Snapshot() Snapshot {
	s := Snapshot{State: m.state, Len: len(m.ids)}
	if !m.Empty() {
		s.VisualIndex = m.visualIndex()
		s.CurrentID = m.ids[m.realIndex(s.VisualIndex)]
	}
	return s
}

func (m *Model) visualIndex() int {
	shift := -m.state.ContinuousOffset / m.ViewportExtent()
	// Half rounds up, matching how the rendered frame picks a slot.
	return int(math.Floor(float64(m.state.LogicalIndex) + shift + 0.5))
}

func (m *Model) realIndex(visual int) int {
	n := len(m.ids)
	return ((visual-1)%n + n) % n
}

func (m *Model) snapTo(index int) {
	m.state = State{
		LogicalIndex: index,
		Snapping:     true,
		SnapFrom:     m.state.LogicalIndex,
	}
	m.snap.Schedule(m.snapDuration, m.settle)
	m.notify()
}

// flush settles a pending snap right away and cancels its callback.
func (m *Model) flush() {
	if !m.snap.Pending() {
		return
	}
	m.snap.Cancel()
	m.applySettle()
}

func (m *Model) settle() {
	m.applySettle()
	m.notify()
}

// applySettle ends a snap. Landing on a duplicate slot teleports to the
// real slot showing the same item.
func (m *Model) applySettle() {
	n := len(m.ids)
	m.state.Snapping = false
	m.state.SnapFrom = 0
	m.state.ContinuousOffset = 0
	switch m.state.LogicalIndex {
	case 0:
		m.state.LogicalIndex = n
	case n + 1:
		m.state.LogicalIndex = 1
	}
}

func (m *Model) notify() {
	if m.observer != nil {
		m.observer(m.Snapshot())
	}
}
