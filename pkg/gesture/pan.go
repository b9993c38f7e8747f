package gesture

import (
	"math"

	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/input"
)

// MinimumPanDistance is how far the touches must travel on either axis
// before a pan begins.
const MinimumPanDistance = 5.0

// PanState is the stage of a pan recognizer.
type PanState int

const (
	PanPossible PanState = iota
	PanBegan
	PanChanged
	PanEnded
)

// PanGesture recognizes a drag of between MinTouches and MaxTouches
// fingers. The location is the touch center.
type PanGesture struct {
	MinTouches int
	MaxTouches int

	state    PanState
	hasStart bool
	start    graphics.Point
	location graphics.Point
	previous graphics.Point
}

// NewPanGesture returns a recognizer accepting one to ten touches.
func NewPanGesture() *PanGesture {
	return &PanGesture{MinTouches: 1, MaxTouches: 10}
}

// State returns the last state returned by Update.
func (g *PanGesture) State() PanState {
	return g.state
}

// IsActive reports whether a pan is in progress.
func (g *PanGesture) IsActive() bool {
	return g.state == PanBegan || g.state == PanChanged
}

// Update feeds the current touch set.
func (g *PanGesture) Update(touches input.Touches) PanState {
	count := len(touches)
	if count < g.MinTouches || count > g.MaxTouches {
		g.hasStart = false
		switch g.state {
		case PanBegan, PanChanged:
			g.state = PanEnded
		default:
			g.state = PanPossible
		}
		return g.state
	}
	location := touches.Center()
	switch g.state {
	case PanPossible, PanEnded:
		if !g.hasStart {
			g.start, g.hasStart = location, true
		}
		moved := g.start.Sub(location)
		if math.Abs(moved.X) >= MinimumPanDistance || math.Abs(moved.Y) >= MinimumPanDistance {
			g.previous = g.start
			g.location = location
			g.state = PanBegan
		} else {
			g.state = PanPossible
		}
	case PanBegan, PanChanged:
		g.previous = g.location
		g.location = location
		g.state = PanChanged
	}
	return g.state
}

// Location returns the touch center while a pan is active.
func (g *PanGesture) Location() (graphics.Point, bool) {
	if !g.IsActive() {
		return graphics.Point{}, false
	}
	return g.location, true
}

// Delta returns the movement since the previous update while a pan is
// active.
func (g *PanGesture) Delta() graphics.Point {
	if !g.IsActive() {
		return graphics.Point{}
	}
	return g.location.Sub(g.previous)
}

// Translation returns the movement since the pan started.
func (g *PanGesture) Translation() graphics.Point {
	if !g.IsActive() {
		return graphics.Point{}
	}
	return g.location.Sub(g.start)
}
