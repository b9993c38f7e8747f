// Package gesture recognizes taps, pans and pinches from the touch sets a
// responder receives in event.Touch.
package gesture

import (
	"time"

	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/input"
)

// TapState is the stage of a tap recognizer.
type TapState int

const (
	TapPossible TapState = iota
	TapBegan
	TapChanged
	TapEnded
	// TapCancelled means the touches moved too far or stayed down too long.
	// The recognizer waits for every touch to lift before starting over.
	TapCancelled
)

func (s TapState) String() string {
	switch s {
	case TapPossible:
		return "possible"
	case TapBegan:
		return "began"
	case TapChanged:
		return "changed"
	case TapEnded:
		return "ended"
	case TapCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// TapGesture recognizes Touches fingers going down and Taps of them lifting.
type TapGesture struct {
	Touches int
	Taps    int
	// MaxDuration cancels the tap when the touches stay down longer. Zero
	// disables the limit.
	MaxDuration time.Duration
	// Slop cancels the tap when the touch center moves further, in logical
	// pixels. Zero disables the limit.
	Slop float64

	state       TapState
	startCount  int
	startTime   time.Time
	startCenter graphics.Point
}

// NewTapGesture returns a single-finger, single-tap recognizer.
func NewTapGesture() *TapGesture {
	return &TapGesture{Touches: 1, Taps: 1}
}

// State returns the last state returned by Update.
func (g *TapGesture) State() TapState {
	return g.state
}

// IsActive reports whether a tap is in progress.
func (g *TapGesture) IsActive() bool {
	return g.state == TapBegan || g.state == TapChanged
}

// Reset returns the recognizer to TapPossible.
func (g *TapGesture) Reset() {
	g.state = TapPossible
	g.startCount = 0
}

// Update feeds the current touch set observed at now.
func (g *TapGesture) Update(touches input.Touches, now time.Time) TapState {
	count := len(touches)
	switch g.state {
	case TapPossible, TapEnded, TapCancelled:
		if g.state == TapCancelled && count > 0 {
			return g.state
		}
		if count >= max(g.Touches, 1) {
			g.startCount = count
			g.startTime = now
			g.startCenter = touches.Center()
			g.state = TapBegan
		} else {
			g.state = TapPossible
		}
	case TapBegan, TapChanged:
		switch {
		case g.MaxDuration > 0 && now.Sub(g.startTime) > g.MaxDuration:
			g.state = TapCancelled
		case g.Slop > 0 && count > 0 && touches.Center().Distance(g.startCenter) > g.Slop:
			g.state = TapCancelled
		case g.startCount-count == max(g.Taps, 1):
			g.state = TapEnded
		default:
			g.state = TapChanged
		}
		if g.state == TapCancelled && count == 0 {
			g.state = TapPossible
		}
	}
	return g.state
}
