package carousel

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heilocal/feedmap/internal/timer"
)

func newModel(t *testing.T, ids ...string) (*Model, *timer.Manual) {
	t.Helper()
	clock := timer.NewManual()
	m := New(clock, WithViewportExtent(1000))
	m.Reset(ids)
	return m, clock
}

func current(t *testing.T, m *Model) string {
	t.Helper()
	id, ok := m.ResolveCurrentItem()
	require.True(t, ok)
	return id
}

func TestStartsAtFirstItem(t *testing.T) {
	m, _ := newModel(t, "a", "b", "c")

	assert.Equal(t, State{LogicalIndex: 1}, m.State())
	assert.Equal(t, "a", current(t, m))
}

func TestWrapForward(t *testing.T) {
	for n := 2; n <= 6; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			ids := make([]string, n)
			for i := range ids {
				ids[i] = fmt.Sprintf("item-%d", i)
			}
			m, clock := newModel(t, ids...)
			start := current(t, m)

			for i := 0; i < n; i++ {
				require.True(t, m.CommitNext())
				clock.Advance(DefaultSnapDuration)
			}

			assert.Equal(t, State{LogicalIndex: 1}, m.State())
			assert.Equal(t, start, current(t, m))
		})
	}
}

func TestWrapBackward(t *testing.T) {
	m, clock := newModel(t, "a", "b", "c")

	m.CommitPrev()
	assert.Equal(t, 0, m.State().LogicalIndex)
	assert.Equal(t, "c", current(t, m))

	clock.Advance(DefaultSnapDuration)
	assert.Equal(t, State{LogicalIndex: 3}, m.State())
	assert.Equal(t, "c", current(t, m))
}

func TestResolveConsistency(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}
	m, clock := newModel(t, ids...)

	for i := 1; i <= len(ids); i++ {
		m.ForceJumpTo(ids[i-1])
		clock.Advance(DefaultSnapDuration)
		require.Equal(t, i, m.State().LogicalIndex)
		assert.Equal(t, ids[i-1], current(t, m))
	}
}

func TestScenarioThreeItems(t *testing.T) {
	m, clock := newModel(t, "A", "B", "C")

	m.CommitNext()
	clock.Advance(DefaultSnapDuration)
	m.CommitNext()
	clock.Advance(DefaultSnapDuration)
	assert.Equal(t, "C", current(t, m))

	m.CommitNext()
	assert.Equal(t, 4, m.State().LogicalIndex)
	assert.True(t, m.State().Snapping)
	assert.Equal(t, "A", current(t, m))

	clock.Advance(DefaultSnapDuration)
	assert.Equal(t, State{LogicalIndex: 1}, m.State())
	assert.Equal(t, "A", current(t, m))
}

func TestTeleportWaitsForSnap(t *testing.T) {
	m, clock := newModel(t, "A", "B", "C")
	m.CommitPrev()

	clock.Advance(DefaultSnapDuration - time.Millisecond)
	assert.Equal(t, 0, m.State().LogicalIndex)
	assert.True(t, m.State().Snapping)

	clock.Advance(time.Millisecond)
	assert.Equal(t, 3, m.State().LogicalIndex)
	assert.False(t, m.State().Snapping)
}

func TestForceJumpNoOpOnCurrent(t *testing.T) {
	m, clock := newModel(t, "A", "B", "C")
	m.CommitNext()
	clock.Advance(DefaultSnapDuration)
	m.BeginGesture()
	m.SetContinuousOffset(-100)
	before := m.State()

	assert.False(t, m.ForceJumpTo("B"))
	assert.Equal(t, before, m.State())
	assert.Zero(t, clock.Pending())
}

func TestForceJumpUnknownID(t *testing.T) {
	m, _ := newModel(t, "A", "B", "C")

	assert.False(t, m.ForceJumpTo("Z"))
	assert.Equal(t, State{LogicalIndex: 1}, m.State())
}

func TestForceJumpThenCommit(t *testing.T) {
	m, clock := newModel(t, "A", "B", "C")

	require.True(t, m.ForceJumpTo("C"))
	assert.Equal(t, 3, m.State().LogicalIndex)
	assert.Zero(t, m.State().ContinuousOffset)
	assert.True(t, m.State().Snapping)
	clock.Advance(DefaultSnapDuration)

	m.CommitNext()
	assert.Equal(t, "A", current(t, m))
	clock.Advance(DefaultSnapDuration)
	assert.Equal(t, 1, m.State().LogicalIndex)
}

func TestContinuousOffsetResolution(t *testing.T) {
	m, _ := newModel(t, "A", "B", "C")
	m.BeginGesture()

	tests := []struct {
		offset float64
		want   string
	}{
		{0, "A"},
		{-499, "A"},
		{-500, "B"},
		{-1499, "B"},
		{-1500, "C"},
		{499, "A"},
		{500, "A"},
		{501, "C"},
		{2600, "A"},
	}
	for _, tt := range tests {
		m.SetContinuousOffset(tt.offset)
		assert.Equal(t, tt.want, current(t, m), "offset %v", tt.offset)
		assert.Equal(t, 1, m.State().LogicalIndex)
	}
}

func TestCommitWhileSnappingSettlesFirst(t *testing.T) {
	m, clock := newModel(t, "A", "B")

	m.CommitNext()
	m.CommitNext()
	assert.Equal(t, 3, m.State().LogicalIndex)
	m.CommitNext()
	assert.Equal(t, 2, m.State().LogicalIndex, "duplicate slot settled before the next commit")
	assert.Equal(t, 1, clock.Pending())
}

func TestBeginGestureCancelsTeleport(t *testing.T) {
	m, clock := newModel(t, "A", "B", "C")
	m.CommitPrev()

	m.BeginGesture()
	assert.Equal(t, State{LogicalIndex: 3}, m.State())
	assert.Zero(t, clock.Pending())

	m.SetContinuousOffset(-200)
	clock.Advance(time.Second)
	assert.Equal(t, 3, m.State().LogicalIndex)
	assert.Equal(t, -200.0, m.State().ContinuousOffset)
}

func TestReleaseAnimatesBack(t *testing.T) {
	m, clock := newModel(t, "A", "B", "C")
	m.BeginGesture()
	m.SetContinuousOffset(-149)

	m.Release()
	assert.Equal(t, State{LogicalIndex: 1, Snapping: true, SnapFrom: 1}, m.State())
	clock.Advance(DefaultSnapDuration)
	assert.Equal(t, State{LogicalIndex: 1}, m.State())
}

func TestResetCancelsPendingSnap(t *testing.T) {
	m, clock := newModel(t, "A", "B", "C")
	m.CommitPrev()

	m.Reset([]string{"X", "Y"})
	assert.Zero(t, clock.Pending())
	assert.Equal(t, State{LogicalIndex: 1}, m.State())
	assert.Equal(t, "X", current(t, m))
}

func TestEmptySequence(t *testing.T) {
	m, clock := newModel(t)

	_, ok := m.ResolveCurrentItem()
	assert.False(t, ok)
	assert.False(t, m.CommitNext())
	assert.False(t, m.CommitPrev())
	assert.False(t, m.ForceJumpTo("a"))
	m.SetContinuousOffset(10)
	m.Release()
	assert.Equal(t, State{LogicalIndex: 1}, m.State())
	assert.Zero(t, clock.Pending())
	assert.True(t, m.Snapshot().Empty())
}

func TestViewportExtentFallback(t *testing.T) {
	m, _ := newModel(t, "A", "B", "C")

	for _, px := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		m.SetViewportExtent(px)
		assert.Equal(t, FallbackExtent, m.ViewportExtent())
	}

	m.SetViewportExtent(0)
	m.BeginGesture()
	m.SetContinuousOffset(-250)
	assert.Equal(t, "B", current(t, m))
}

func TestObserverSeesSettlement(t *testing.T) {
	m, clock := newModel(t, "A", "B")
	var seen []Snapshot
	m.Observe(func(s Snapshot) { seen = append(seen, s) })

	m.CommitNext()
	m.CommitNext()
	clock.Advance(DefaultSnapDuration)

	require.NotEmpty(t, seen)
	last := seen[len(seen)-1]
	assert.Equal(t, 1, last.LogicalIndex)
	assert.False(t, last.Snapping)
	assert.Equal(t, "A", last.CurrentID)
}
