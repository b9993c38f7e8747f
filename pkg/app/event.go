package app

import (
	"time"

	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/input"
)

// AppEvent is pushed by platform glue into the app's queue. Locations are in
// logical window coordinates.
type AppEvent interface {
	isAppEvent()
}

type (
	// Quit stops the run loop.
	Quit struct{}
	// Resize reports a new window size.
	Resize struct{ Size graphics.Size }
	// Focus reports that the window gained or lost focus.
	Focus struct{ Focused bool }
	// TouchBegin is a touch or mouse button going down.
	TouchBegin struct{ Touch input.Touch }
	// TouchUpdate is a moving touch.
	TouchUpdate struct{ Touch input.Touch }
	// TouchEnd is a touch lifting.
	TouchEnd struct{ Touch input.Touch }
	// Scroll is a wheel or trackpad scroll in physical pixels.
	Scroll struct{ Delta graphics.Point }
	// Hover is a pointer move with no touch down.
	Hover struct{ Location graphics.Point }
	// Frame is a display refresh requested by the app.
	Frame struct{ Time time.Time }
	// Key is a keyboard event.
	Key struct{ Key input.HitKey }
)

func (Quit) isAppEvent()        {}
func (Resize) isAppEvent()      {}
func (Focus) isAppEvent()       {}
func (TouchBegin) isAppEvent()  {}
func (TouchUpdate) isAppEvent() {}
func (TouchEnd) isAppEvent()    {}
func (Scroll) isAppEvent()      {}
func (Hover) isAppEvent()       {}
func (Frame) isAppEvent()       {}
func (Key) isAppEvent()         {}
