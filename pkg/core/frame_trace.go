package core

import (
	"sync"
	"time"
)

const (
	defaultTraceCapacity = 240
	defaultFrameBudget   = time.Second / 60
)

// FramePhases is the time spent in each step of one Render.
type FramePhases struct {
	Timers time.Duration
	Build  time.Duration
	Layout time.Duration
	Paint  time.Duration
}

// FrameCounts is the work done by one Render.
type FrameCounts struct {
	Built       int
	LaidOut     int
	Painted     int
	WidgetCount int
	LayerCount  int
}

// FrameSample describes one call to RenderTree.Render. Submitted is false
// when nothing needed painting and no frame went to the pipeline.
type FrameSample struct {
	Start     time.Time
	Duration  time.Duration
	Submitted bool
	Phases    FramePhases
	Counts    FrameCounts
}

// FrameTimeline is a copy of a FrameTraceBuffer, oldest sample first.
type FrameTimeline struct {
	Samples []FrameSample
	// Slow counts every recorded render that exceeded the budget, including
	// ones already evicted from Samples.
	Slow   int
	Budget time.Duration
}

// FrameTraceBuffer keeps the most recent render samples. It is safe to
// read from another goroutine while the UI goroutine records.
type FrameTraceBuffer struct {
	mu      sync.Mutex
	samples []FrameSample
	next    int
	full    bool
	slow    int
	budget  time.Duration
}

// NewFrameTraceBuffer keeps up to capacity samples. Renders longer than
// budget are counted as slow. Non-positive arguments select 240 samples
// and a 60Hz budget.
func NewFrameTraceBuffer(capacity int, budget time.Duration) *FrameTraceBuffer {
	if capacity <= 0 {
		capacity = defaultTraceCapacity
	}
	if budget <= 0 {
		budget = defaultFrameBudget
	}
	return &FrameTraceBuffer{samples: make([]FrameSample, 0, capacity), budget: budget}
}

// Capacity returns how many samples are kept.
func (b *FrameTraceBuffer) Capacity() int {
	return cap(b.samples)
}

// Add records sample, evicting the oldest when full.
func (b *FrameTraceBuffer) Add(sample FrameSample) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sample.Duration > b.budget {
		b.slow++
	}
	if !b.full {
		b.samples = append(b.samples, sample)
		b.full = len(b.samples) == cap(b.samples)
		return
	}
	b.samples[b.next] = sample
	b.next = (b.next + 1) % len(b.samples)
}

// Snapshot copies the buffer.
func (b *FrameTraceBuffer) Snapshot() FrameTimeline {
	b.mu.Lock()
	defer b.mu.Unlock()
	samples := make([]FrameSample, 0, len(b.samples))
	samples = append(samples, b.samples[b.next:]...)
	samples = append(samples, b.samples[:b.next]...)
	return FrameTimeline{Samples: samples, Slow: b.slow, Budget: b.budget}
}
