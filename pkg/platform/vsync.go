package platform

import (
	"errors"
	"sync"
	"time"
)

// ErrVSyncStopped is returned by Wait after Stop.
var ErrVSyncStopped = errors.New("vsync stopped")

// FrameRequester schedules a callback for the next display refresh.
type FrameRequester interface {
	RequestFrame(callback func(frameTime time.Time))
}

// TickerVSync paces frames with a ticker at a fixed refresh rate. It stands
// in for a display link on platforms without one and in headless runs.
type TickerVSync struct {
	interval time.Duration
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

// NewTickerVSync returns a vsync ticking refreshRate times per second. Rates
// below 1 fall back to 60.
func NewTickerVSync(refreshRate float64) *TickerVSync {
	if refreshRate < 1 {
		refreshRate = 60
	}
	interval := time.Duration(float64(time.Second) / refreshRate)
	return &TickerVSync{
		interval: interval,
		ticker:   time.NewTicker(interval),
		done:     make(chan struct{}),
	}
}

// Interval returns the time between ticks.
func (v *TickerVSync) Interval() time.Duration {
	return v.interval
}

// Wait blocks until the next tick.
func (v *TickerVSync) Wait() error {
	select {
	case <-v.ticker.C:
		return nil
	case <-v.done:
		return ErrVSyncStopped
	}
}

// RequestFrame calls callback from another goroutine at the next tick. The
// callback is dropped if the vsync stops first.
func (v *TickerVSync) RequestFrame(callback func(frameTime time.Time)) {
	go func() {
		timer := time.NewTimer(v.interval)
		defer timer.Stop()
		select {
		case now := <-timer.C:
			callback(now)
		case <-v.done:
		}
	}()
}

// Stop releases the ticker and unblocks waiters.
func (v *TickerVSync) Stop() {
	v.stopOnce.Do(func() {
		v.ticker.Stop()
		close(v.done)
	})
}

// ImmediateVSync never waits. Headless renders use it to draw every
// submitted frame as fast as possible.
type ImmediateVSync struct{}

// Wait returns at once.
func (ImmediateVSync) Wait() error { return nil }

// RequestFrame calls callback at once on the caller's goroutine.
func (ImmediateVSync) RequestFrame(callback func(frameTime time.Time)) {
	callback(time.Now())
}
