package gesture

import (
	"time"

	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/input"
)

// PinchState is the stage of a pinch recognizer.
type PinchState int

const (
	PinchPossible PinchState = iota
	PinchBegan
	PinchChanged
	PinchEnded
)

// PinchGesture recognizes two touches moving apart or together.
type PinchGesture struct {
	state         PinchState
	startDistance float64
	center        graphics.Point
	scale         float64
	velocity      float64
	lastTime      time.Time
}

// NewPinchGesture returns an idle recognizer.
func NewPinchGesture() *PinchGesture {
	return &PinchGesture{}
}

// State returns the last state returned by Update.
func (g *PinchGesture) State() PinchState {
	return g.state
}

// IsActive reports whether a pinch is in progress.
func (g *PinchGesture) IsActive() bool {
	return g.state == PinchBegan || g.state == PinchChanged
}

// Update feeds the current touch set observed at now.
func (g *PinchGesture) Update(touches input.Touches, now time.Time) PinchState {
	if len(touches) != 2 {
		switch g.state {
		case PinchBegan, PinchChanged:
			g.state = PinchEnded
		default:
			g.state = PinchPossible
		}
		return g.state
	}
	all := touches.All()
	distance := all[0].Location.Distance(all[1].Location)
	g.center = touches.Center()
	switch g.state {
	case PinchPossible, PinchEnded:
		g.startDistance = distance
		g.scale = 1
		g.velocity = 0
		g.state = PinchBegan
	case PinchBegan, PinchChanged:
		scale := 1.0
		if g.startDistance > 0 {
			scale = distance / g.startDistance
		}
		if dt := now.Sub(g.lastTime).Seconds(); dt > 0 {
			g.velocity = (scale - g.scale) / dt
		}
		g.scale = scale
		g.state = PinchChanged
	}
	g.lastTime = now
	return g.state
}

// Center returns the midpoint of the two touches while active.
func (g *PinchGesture) Center() (graphics.Point, bool) {
	if !g.IsActive() {
		return graphics.Point{}, false
	}
	return g.center, true
}

// Scale returns the distance ratio relative to the start while active.
func (g *PinchGesture) Scale() (float64, bool) {
	if !g.IsActive() {
		return 0, false
	}
	return g.scale, true
}

// Velocity returns the scale change per second while active.
func (g *PinchGesture) Velocity() (float64, bool) {
	if !g.IsActive() {
		return 0, false
	}
	return g.velocity, true
}
