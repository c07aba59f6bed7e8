// Package timer provides fire-once scheduled callbacks that can be cancelled,
// plus a single-goroutine event loop that serializes them with other work.
package timer

import (
	"time"
)

// Handle cancels a scheduled callback. Stop reports whether the call
// prevented the callback from running.
type Handle interface {
	Stop() bool
}

// Scheduler runs fn once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Handle
}

// Slot holds at most one pending callback. Scheduling into an occupied slot
// cancels the previous callback first. A generation counter makes a callback
// that was already dequeued, but cancelled before it ran, a no-op.
type Slot struct {
	sched Scheduler
	h     Handle
	gen   uint64
}

func NewSlot(sched Scheduler) *Slot {
	return &Slot{sched: sched}
}

// Schedule replaces any pending callback with fn after d.
func (s *Slot) Schedule(d time.Duration, fn func()) {
	s.Cancel()
	gen := s.gen
	s.h = s.sched.AfterFunc(d, func() {
		if s.gen != gen {
			return
		}
		s.h = nil
		s.gen++
		fn()
	})
}

// Cancel drops the pending callback, if any.
func (s *Slot) Cancel() {
	if s.h != nil {
		s.h.Stop()
		s.h = nil
	}
	s.gen++
}

// Pending reports whether a callback is scheduled and has not run.
func (s *Slot) Pending() bool {
	return s.h != nil
}
