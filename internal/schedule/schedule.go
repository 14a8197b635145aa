// Package schedule runs timer callbacks on the caller's goroutine against a
// virtual clock that only moves when Advance is called.
package schedule

import (
	"time"
)

// Handle identifies a scheduled timer. The zero Handle refers to no timer.
type Handle uint64

type entry struct {
	deadline time.Time
	interval time.Duration // zero for single-shot timers
	fn       func(now time.Time)
}

// Scheduler is a single-threaded timer queue. It is not safe for concurrent use.
type Scheduler struct {
	now    time.Time
	nextID Handle
	timers map[Handle]*entry
}

// NewScheduler returns a scheduler whose clock starts at start.
func NewScheduler(start time.Time) *Scheduler {
	return &Scheduler{now: start, timers: make(map[Handle]*entry)}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	return s.now
}

// After runs fn once, d after the current time.
func (s *Scheduler) After(d time.Duration, fn func(now time.Time)) Handle {
	return s.add(d, 0, fn)
}

// Every runs fn every d until cancelled. d must be positive.
func (s *Scheduler) Every(d time.Duration, fn func(now time.Time)) Handle {
	if d <= 0 {
		panic("schedule: non-positive interval")
	}
	return s.add(d, d, fn)
}

func (s *Scheduler) add(d, interval time.Duration, fn func(now time.Time)) Handle {
	s.nextID++
	s.timers[s.nextID] = &entry{deadline: s.now.Add(d), interval: interval, fn: fn}
	return s.nextID
}

// Cancel stops a timer. Cancelling a fired, cancelled or zero handle is a no-op.
func (s *Scheduler) Cancel(h Handle) {
	delete(s.timers, h)
}

// CancelAll stops every timer.
func (s *Scheduler) CancelAll() {
	clear(s.timers)
}

// Active reports whether h is still scheduled.
func (s *Scheduler) Active(h Handle) bool {
	_, ok := s.timers[h]
	return ok
}

// Pending returns the number of scheduled timers.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Advance moves the clock to now, firing due callbacks in deadline order.
// Callbacks see the clock at their own deadline and may schedule or cancel
// timers. Returns the number of callbacks fired. A now before the current
// time is ignored.
func (s *Scheduler) Advance(now time.Time) int {
	fired := 0
	for {
		h, e := s.nextDue(now)
		if e == nil {
			break
		}
		s.now = e.deadline
		if e.interval > 0 {
			e.deadline = e.deadline.Add(e.interval)
		} else {
			delete(s.timers, h)
		}
		e.fn(s.now)
		fired++
	}
	if now.After(s.now) {
		s.now = now
	}
	return fired
}

// nextDue returns the earliest timer due at or before now. Ties go to the
// timer scheduled first.
func (s *Scheduler) nextDue(now time.Time) (Handle, *entry) {
	var (
		bestID Handle
		best   *entry
	)
	for h, e := range s.timers {
		if e.deadline.After(now) {
			continue
		}
		if best == nil || e.deadline.Before(best.deadline) || (e.deadline.Equal(best.deadline) && h < bestID) {
			bestID, best = h, e
		}
	}
	return bestID, best
}
