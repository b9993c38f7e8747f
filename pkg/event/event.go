// Package event defines the events delivered to widgets and the
// thread-safe queues that carry them.
package event

import (
	"time"

	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/input"
)

// Event is delivered to Widget.Event. The concrete types below are the
// complete set.
type Event interface {
	isEvent()
}

// ID is chosen by a widget's creator to tell synthetic events such as Tap
// apart.
type ID int

type (
	// TouchBegin is a touch going down on the responder.
	TouchBegin struct{ Touch input.Touch }
	// TouchUpdate is a moving touch.
	TouchUpdate struct{ Touch input.Touch }
	// TouchEnd is a touch lifting.
	TouchEnd struct{ Touch input.Touch }
	// Touch carries every active touch after a batch of touch updates.
	Touch struct{ Touches input.Touches }
	// Scroll carries a scroll delta in logical pixels.
	Scroll struct{ Delta graphics.Point }
	// Hover is the pointer location while no touch is down.
	Hover struct{ Location graphics.Point }
	// Enter is sent when the pointer starts hovering a widget.
	Enter struct{}
	// Leave is sent when the pointer stops hovering a widget.
	Leave struct{}
	// Frame is a display refresh, sent to widgets that requested one.
	Frame struct{ Time time.Time }
	// Timer reports that the widget's timer with ID fired.
	Timer struct{ ID int }
	// Tap is emitted by tap recognizers.
	Tap struct{ ID ID }
	// Pan is emitted by pan recognizers.
	Pan struct {
		ID       ID
		Phase    PanPhase
		Location graphics.Point
		Delta    graphics.Point
	}
	// Key is a keyboard event for the focused responder.
	Key struct{ Key input.HitKey }
	// Focus reports that the window gained or lost focus.
	Focus struct{ Focused bool }
	// BecameResponder is sent to the widget that takes over touches.
	BecameResponder struct{}
	// ResignedResponder is sent to the previous responder.
	ResignedResponder struct{}
)

// PanPhase is the stage of a pan gesture.
type PanPhase int

const (
	PanBegan PanPhase = iota
	PanChanged
	PanEnded
)

func (TouchBegin) isEvent()        {}
func (TouchUpdate) isEvent()       {}
func (TouchEnd) isEvent()          {}
func (Touch) isEvent()             {}
func (Scroll) isEvent()            {}
func (Hover) isEvent()             {}
func (Enter) isEvent()             {}
func (Leave) isEvent()             {}
func (Frame) isEvent()             {}
func (Timer) isEvent()             {}
func (Tap) isEvent()               {}
func (Pan) isEvent()               {}
func (Key) isEvent()               {}
func (Focus) isEvent()             {}
func (BecameResponder) isEvent()   {}
func (ResignedResponder) isEvent() {}
