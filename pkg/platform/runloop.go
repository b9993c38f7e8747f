package platform

import (
	"context"
	"sync"
	"time"
)

// RunLoop drives the UI goroutine. Each wakeup runs one step; wakeups
// arriving while a step runs coalesce into a single follow-up step.
type RunLoop struct {
	wake chan struct{}
	stop chan struct{}

	mu       sync.Mutex
	timer    *time.Timer
	deadline time.Time
	stopOnce sync.Once
}

// NewRunLoop returns an idle run loop.
func NewRunLoop() *RunLoop {
	return &RunLoop{
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
	}
}

// Wakeup schedules a step. It is safe to call from any goroutine.
func (l *RunLoop) Wakeup() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// SetNextWakeup schedules a step after d unless an earlier one is already
// scheduled.
func (l *RunLoop) SetNextWakeup(d time.Duration) {
	deadline := time.Now().Add(d)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.timer != nil && !l.deadline.IsZero() && l.deadline.Before(deadline) {
		return
	}
	if l.timer != nil {
		l.timer.Stop()
	}
	l.deadline = deadline
	l.timer = time.AfterFunc(d, func() {
		l.mu.Lock()
		l.deadline = time.Time{}
		l.mu.Unlock()
		l.Wakeup()
	})
}

// Stop makes Run return after the current step.
func (l *RunLoop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stop)
	})
}

// Run calls step once immediately and then on every wakeup. It returns when
// step reports false or an error, when Stop is called, or when ctx is done.
func (l *RunLoop) Run(ctx context.Context, step func(ctx context.Context) (bool, error)) error {
	defer func() {
		l.mu.Lock()
		if l.timer != nil {
			l.timer.Stop()
		}
		l.mu.Unlock()
	}()
	for {
		more, err := step(ctx)
		if err != nil || !more {
			return err
		}
		select {
		case <-l.wake:
		case <-l.stop:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}
