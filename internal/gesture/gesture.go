// Package gesture turns touch drags, mouse drags and wheel ticks into one
// signal for the carousel: a live pixel offset plus next/prev commits.
package gesture

import (
	"math"
	"time"

	"github.com/heilocal/feedmap/internal/carousel"
	"github.com/heilocal/feedmap/internal/timer"
)

// Target receives normalized input. *carousel.Model satisfies it.
type Target interface {
	BeginGesture()
	SetContinuousOffset(px float64)
	CommitNext() bool
	CommitPrev() bool
	Release()
	ViewportExtent() float64
}

// Policy holds the per-channel thresholds. Thresholds are fractions of the
// viewport extent.
type Policy struct {
	TouchThreshold   float64
	PointerThreshold float64
	PointerDeadZone  float64
	WheelThreshold   float64
	WheelSensitivity float64
	WheelIdle        time.Duration
	WheelCooldown    time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		TouchThreshold:   0.15,
		PointerThreshold: 0.45,
		PointerDeadZone:  5,
		WheelThreshold:   0.15,
		WheelSensitivity: 0.3,
		WheelIdle:        100 * time.Millisecond,
		WheelCooldown:    700 * time.Millisecond,
	}
}

// Normalizer owns the gesture state of one feed. Only one channel owns the
// drag at a time.
type Normalizer struct {
	target Target
	policy Policy

	owner    Channel
	startY   float64
	dragging bool

	wheelAcc  float64
	wheelIdle *timer.Slot
	cooldown  *timer.Slot
}

func New(target Target, sched timer.Scheduler, policy Policy) *Normalizer {
	return &Normalizer{
		target:    target,
		policy:    policy,
		wheelIdle: timer.NewSlot(sched),
		cooldown:  timer.NewSlot(sched),
	}
}

// Owner returns the channel currently driving the drag.
func (n *Normalizer) Owner() Channel { return n.owner }

// CoolingDown reports whether wheel input is suppressed after a commit.
func (n *Normalizer) CoolingDown() bool { return n.cooldown.Pending() }

// Reset drops all gesture state and pending wheel callbacks without touching
// the target.
func (n *Normalizer) Reset() {
	n.wheelIdle.Cancel()
	n.cooldown.Cancel()
	n.owner = ChannelNone
	n.dragging = false
	n.startY = 0
	n.wheelAcc = 0
}

func (n *Normalizer) Handle(ev Event) Outcome {
	switch e := ev.(type) {
	case TouchDrag:
		return n.touch(e)
	case PointerDrag:
		return n.pointer(e)
	case WheelScroll:
		return n.wheel(e)
	}
	return Outcome{Ignored: true}
}

func (n *Normalizer) touch(e TouchDrag) Outcome {
	switch e.Phase {
	case PhaseStart:
		n.claim(ChannelTouch, e.Y)
		n.dragging = true
		return Outcome{}
	case PhaseMove:
		if n.owner != ChannelTouch {
			return Outcome{Ignored: true}
		}
		offset := e.Y - n.startY
		n.target.SetContinuousOffset(offset)
		return Outcome{Offset: offset}
	case PhaseEnd:
		if n.owner != ChannelTouch {
			return Outcome{Ignored: true}
		}
		return n.finish(n.startY-e.Y, n.policy.TouchThreshold)
	case PhaseCancel:
		if n.owner != ChannelTouch {
			return Outcome{Ignored: true}
		}
		return n.abandon()
	}
	return Outcome{Ignored: true}
}

func (n *Normalizer) pointer(e PointerDrag) Outcome {
	switch e.Phase {
	case PhaseStart:
		n.claim(ChannelPointer, e.Y)
		n.dragging = false
		return Outcome{}
	case PhaseMove:
		if n.owner != ChannelPointer {
			return Outcome{Ignored: true}
		}
		diff := n.startY - e.Y
		if !n.dragging && math.Abs(diff) <= n.policy.PointerDeadZone {
			return Outcome{}
		}
		n.dragging = true
		n.target.SetContinuousOffset(-diff)
		return Outcome{Offset: -diff}
	case PhaseEnd:
		if n.owner != ChannelPointer {
			return Outcome{Ignored: true}
		}
		if !n.dragging {
			// A click, not a drag.
			n.owner = ChannelNone
			return Outcome{}
		}
		return n.finish(n.startY-e.Y, n.policy.PointerThreshold)
	case PhaseCancel:
		if n.owner != ChannelPointer {
			return Outcome{Ignored: true}
		}
		if !n.dragging {
			n.owner = ChannelNone
			return Outcome{}
		}
		return n.abandon()
	}
	return Outcome{Ignored: true}
}

func (n *Normalizer) wheel(e WheelScroll) Outcome {
	if n.cooldown.Pending() {
		return Outcome{Ignored: true}
	}
	if n.owner == ChannelTouch || n.owner == ChannelPointer {
		if n.dragging {
			n.target.Release()
		}
		n.dragging = false
		n.owner = ChannelNone
	}
	if n.owner != ChannelWheel {
		n.owner = ChannelWheel
		n.wheelAcc = 0
		n.target.BeginGesture()
	}

	n.wheelAcc += e.DeltaY * n.policy.WheelSensitivity
	threshold := n.threshold(n.policy.WheelThreshold)

	var dir Direction
	switch {
	case n.wheelAcc >= threshold:
		dir = DirectionNext
	case n.wheelAcc <= -threshold:
		dir = DirectionPrev
	}
	if dir != DirectionNone {
		n.wheelIdle.Cancel()
		n.wheelAcc = 0
		n.owner = ChannelNone
		n.commit(dir)
		n.cooldown.Schedule(n.policy.WheelCooldown, func() {})
		return Outcome{Commit: dir}
	}

	offset := -n.wheelAcc
	n.target.SetContinuousOffset(offset)
	n.wheelIdle.Schedule(n.policy.WheelIdle, n.wheelSettle)
	return Outcome{Offset: offset}
}

// wheelSettle runs when the wheel goes quiet below the threshold.
func (n *Normalizer) wheelSettle() {
	if n.owner != ChannelWheel {
		return
	}
	n.wheelAcc = 0
	n.owner = ChannelNone
	n.target.Release()
}

// claim hands the drag to ch, clearing any wheel accumulation.
func (n *Normalizer) claim(ch Channel, y float64) {
	n.wheelIdle.Cancel()
	n.wheelAcc = 0
	n.owner = ch
	n.startY = y
	n.target.BeginGesture()
}

// finish resolves a released drag. diff is positive when content moved up.
func (n *Normalizer) finish(diff, fraction float64) Outcome {
	n.owner = ChannelNone
	n.dragging = false

	threshold := n.threshold(fraction)
	switch {
	case diff >= threshold:
		n.commit(DirectionNext)
		return Outcome{Commit: DirectionNext}
	case diff <= -threshold:
		n.commit(DirectionPrev)
		return Outcome{Commit: DirectionPrev}
	}
	n.target.Release()
	return Outcome{Abandoned: true}
}

func (n *Normalizer) abandon() Outcome {
	n.owner = ChannelNone
	n.dragging = false
	n.target.Release()
	return Outcome{Abandoned: true}
}

func (n *Normalizer) commit(dir Direction) {
	if dir == DirectionNext {
		n.target.CommitNext()
		return
	}
	n.target.CommitPrev()
}

func (n *Normalizer) threshold(fraction float64) float64 {
	extent := n.target.ViewportExtent()
	if extent <= 0 || math.IsNaN(extent) || math.IsInf(extent, 0) {
		extent = carousel.FallbackExtent
	}
	return fraction * extent
}
