package timers

import (
	"sync"
	"testing"
	"time"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestDelayedTimerFiresOnce(t *testing.T) {
	clock := newClock()
	ts := New(clock)
	id := ts.Add(Timer{Delay: 100 * time.Millisecond})

	for _, step := range []time.Duration{0, 50 * time.Millisecond, 49 * time.Millisecond} {
		clock.Advance(step)
		if fired := ts.Fire(); len(fired) != 0 {
			t.Fatalf("fired %v before the delay elapsed", fired)
		}
	}

	clock.Advance(time.Millisecond)
	fired := ts.Fire()
	if len(fired) != 1 || fired[0] != id {
		t.Fatalf("Fire = %v, want [%d]", fired, id)
	}
	if !ts.IsEmpty() {
		t.Error("one-shot timer should be removed after firing")
	}

	clock.Advance(time.Second)
	if fired := ts.Fire(); len(fired) != 0 {
		t.Errorf("fired again: %v", fired)
	}
}

func TestRepeatingTimer(t *testing.T) {
	clock := newClock()
	ts := New(clock)
	ts.Add(Timer{Delay: 10 * time.Millisecond, Interval: 30 * time.Millisecond})

	tests := []struct {
		advance time.Duration
		fires   bool
	}{
		{10 * time.Millisecond, true},
		{20 * time.Millisecond, false},
		{10 * time.Millisecond, true},
		{29 * time.Millisecond, false},
		{time.Millisecond, true},
	}
	for i, tt := range tests {
		clock.Advance(tt.advance)
		if got := len(ts.Fire()) == 1; got != tt.fires {
			t.Errorf("step %d: fired = %v, want %v", i, got, tt.fires)
		}
	}
	if ts.Len() != 1 {
		t.Errorf("repeating timer was removed")
	}
}

func TestNextFireTimeIsMinimum(t *testing.T) {
	clock := newClock()
	ts := New(clock)
	if _, ok := ts.NextFireTime(); ok {
		t.Error("NextFireTime on empty set should report false")
	}
	ts.Add(Timer{Delay: 300 * time.Millisecond})
	ts.Add(Timer{Delay: 100 * time.Millisecond})
	ts.Add(Timer{Delay: 200 * time.Millisecond})
	clock.Advance(40 * time.Millisecond)

	next, ok := ts.NextFireTime()
	if !ok || next != 60*time.Millisecond {
		t.Errorf("NextFireTime = %v, %v, want 60ms", next, ok)
	}

	clock.Advance(time.Second)
	if next, _ := ts.NextFireTime(); next != 0 {
		t.Errorf("overdue NextFireTime = %v, want 0", next)
	}
}

func TestRemoveAndReuse(t *testing.T) {
	ts := New(newClock())
	a := ts.Add(Timer{Delay: time.Second})
	if _, ok := ts.Remove(a); !ok {
		t.Fatal("Remove failed")
	}
	if _, ok := ts.Remove(a); ok {
		t.Error("second Remove should fail")
	}
	if b := ts.Add(Timer{}); b != a {
		t.Errorf("freed id %d not reused, got %d", a, b)
	}
	ts.Clear()
	if !ts.IsEmpty() {
		t.Error("Clear left timers behind")
	}
}
