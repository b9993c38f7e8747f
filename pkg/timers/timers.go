// Package timers schedules per-widget delayed and repeating timers. Timers
// are polled, never driven by goroutines: the render tree calls Fire once
// per render pass and asks NextFireTime when the run loop goes idle.
package timers

import (
	"slices"
	"time"

	"github.com/terramach/terramach/pkg/pool"
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ID identifies a scheduled timer within one Timers.
type ID int

// Timer fires once after Delay, then every Interval if Interval is
// positive. A zero Delay fires on the next poll.
type Timer struct {
	Delay    time.Duration
	Interval time.Duration
}

// IsRepeating reports whether the timer keeps firing after the first time.
func (t Timer) IsRepeating() bool {
	return t.Interval > 0
}

type scheduled struct {
	timer   Timer
	since   time.Time
	ongoing bool
}

func (s *scheduled) period() time.Duration {
	if s.ongoing {
		return s.timer.Interval
	}
	return s.timer.Delay
}

func (s *scheduled) fireIn(now time.Time) time.Duration {
	return max(s.period()-now.Sub(s.since), 0)
}

func (s *scheduled) fire(now time.Time) bool {
	if now.Sub(s.since) < s.period() {
		return false
	}
	s.since = now
	s.ongoing = true
	return true
}

// Timers is a set of scheduled timers sharing one clock.
type Timers struct {
	clock  Clock
	ids    *pool.IndexPool
	timers map[ID]*scheduled
}

// New returns an empty set reading time from clock, or the system clock
// when clock is nil.
func New(clock Clock) *Timers {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Timers{
		clock:  clock,
		ids:    pool.NewIndexPool(0),
		timers: make(map[ID]*scheduled),
	}
}

// Add schedules timer starting now.
func (t *Timers) Add(timer Timer) ID {
	id := ID(t.ids.Take())
	t.timers[id] = &scheduled{timer: timer, since: t.clock.Now()}
	return id
}

// Remove cancels id and returns its timer.
func (t *Timers) Remove(id ID) (Timer, bool) {
	s, ok := t.timers[id]
	if !ok {
		return Timer{}, false
	}
	delete(t.timers, id)
	t.ids.Give(int(id))
	return s.timer, true
}

// Timer returns the timer scheduled under id.
func (t *Timers) Timer(id ID) (Timer, bool) {
	s, ok := t.timers[id]
	if !ok {
		return Timer{}, false
	}
	return s.timer, true
}

// Clear cancels every timer.
func (t *Timers) Clear() {
	for id := range t.timers {
		t.ids.Give(int(id))
	}
	clear(t.timers)
}

// Len returns the number of scheduled timers.
func (t *Timers) Len() int {
	return len(t.timers)
}

// IsEmpty reports whether nothing is scheduled.
func (t *Timers) IsEmpty() bool {
	return len(t.timers) == 0
}

// NextFireTime returns how long until the earliest timer fires. It reports
// false when nothing is scheduled.
func (t *Timers) NextFireTime() (time.Duration, bool) {
	if len(t.timers) == 0 {
		return 0, false
	}
	now := t.clock.Now()
	next := time.Duration(-1)
	for _, s := range t.timers {
		if in := s.fireIn(now); next < 0 || in < next {
			next = in
		}
	}
	return next, true
}

// Fire returns the timers due now, in ID order. One-shot timers are
// removed after firing.
func (t *Timers) Fire() []ID {
	if len(t.timers) == 0 {
		return nil
	}
	now := t.clock.Now()
	var fired []ID
	for id, s := range t.timers {
		if !s.fire(now) {
			continue
		}
		fired = append(fired, id)
	}
	slices.Sort(fired)
	for _, id := range fired {
		if !t.timers[id].timer.IsRepeating() {
			t.Remove(id)
		}
	}
	return fired
}
