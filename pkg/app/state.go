package app

import (
	"context"
	"time"

	"github.com/terramach/terramach/pkg/core"
	"github.com/terramach/terramach/pkg/event"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/input"
	"github.com/terramach/terramach/pkg/logging"
	"github.com/terramach/terramach/pkg/platform"
)

// Resizer receives window size changes. *gpu.Pipeline implements it.
type Resizer interface {
	Resize(size graphics.Size)
}

// Scheduler wakes the UI goroutine. *platform.RunLoop implements it.
type Scheduler interface {
	Wakeup()
	SetNextWakeup(d time.Duration)
}

// StateConfig wires a State to its surroundings. Nil fields are ignored.
type StateConfig struct {
	Size             graphics.Size
	DevicePixelRatio float64
	Resizer          Resizer
	Scheduler        Scheduler
	Frames           platform.FrameRequester
	OnCursor         func(input.Cursor)
}

// State is the UI side of a running app. It turns queued AppEvents into
// widget events: it picks the touch responder, tracks the hovered widgets
// and their cursors, and renders after every batch. Only the UI goroutine
// may call Step.
type State struct {
	tree      *core.RenderTree
	queue     *event.Queue[AppEvent]
	size      graphics.Size
	dpr       float64
	resizer   Resizer
	scheduler Scheduler
	frames    platform.FrameRequester

	responder    core.EventResponder
	hasResponder bool
	hovered      []core.EventResponder
	touches      input.Touches
	cursors      *Cursors
	focused      bool
	framePending bool
}

// NewState returns a state driving tree with events from queue.
func NewState(tree *core.RenderTree, queue *event.Queue[AppEvent], cfg StateConfig) *State {
	dpr := cfg.DevicePixelRatio
	if dpr <= 0 {
		dpr = 1
	}
	return &State{
		tree:      tree,
		queue:     queue,
		size:      cfg.Size,
		dpr:       dpr,
		resizer:   cfg.Resizer,
		scheduler: cfg.Scheduler,
		frames:    cfg.Frames,
		touches:   input.Touches{},
		cursors:   NewCursors(cfg.OnCursor),
	}
}

// Size returns the current window size.
func (s *State) Size() graphics.Size { return s.size }

// Responder returns the widget receiving touches, keys and focus changes.
func (s *State) Responder() (core.EventResponder, bool) { return s.responder, s.hasResponder }

// Hovered returns the hover stack, outermost first.
func (s *State) Hovered() []core.EventResponder { return s.hovered }

// Cursor returns the cursor of the innermost hovered widget that set one.
func (s *State) Cursor() input.Cursor { return s.cursors.Current() }

// Focused reports whether the window has focus.
func (s *State) Focused() bool { return s.focused }

// Step handles everything queued, renders and schedules the next wakeup.
// It reports false once a Quit was handled. Its signature matches
// platform.RunLoop.Run.
func (s *State) Step(ctx context.Context) (bool, error) {
	issueTouch := false
	for _, ev := range s.queue.Poll() {
		switch ev := ev.(type) {
		case Quit:
			logging.Logger().Info("app quit")
			return false, nil
		case Resize:
			s.size = ev.Size
			s.tree.Invalidate()
			if s.resizer != nil {
				s.resizer.Resize(ev.Size)
			}
		case Focus:
			s.focused = ev.Focused
			if s.hasResponder {
				s.tree.EmitEvent(s.responder.Widget(), event.Focus{Focused: ev.Focused})
			}
		case Key:
			if s.hasResponder {
				s.tree.EmitEvent(s.responder.Widget(), event.Key{Key: ev.Key})
			}
		case Scroll:
			if n := len(s.hovered); n > 0 {
				s.tree.EmitEvent(s.hovered[n-1].Widget(), event.Scroll{Delta: ev.Delta.Scale(s.dpr)})
			}
		case TouchBegin:
			responder, ok := s.tree.HitTest(core.Broadcast, ev.Touch.Location)
			s.swapResponder(responder, ok)
			if s.hasResponder {
				touch := s.responder.TransformTouch(ev.Touch)
				s.touches.Update(touch)
				issueTouch = true
				s.tree.EmitEvent(s.responder.Widget(), event.TouchBegin{Touch: touch})
			}
		case TouchUpdate:
			if s.hasResponder {
				touch := s.responder.TransformTouch(ev.Touch)
				s.touches.Update(touch)
				issueTouch = true
				s.tree.EmitEvent(s.responder.Widget(), event.TouchUpdate{Touch: touch})
			}
		case TouchEnd:
			if s.hasResponder {
				touch := s.responder.TransformTouch(ev.Touch)
				s.touches.Remove(touch.ID)
				issueTouch = true
				s.tree.EmitEvent(s.responder.Widget(), event.TouchEnd{Touch: touch})
			}
		case Hover:
			s.hover(ev.Location)
		case Frame:
			s.framePending = false
			s.tree.EmitEvent(core.Broadcast, event.Frame{Time: ev.Time})
		}
	}
	if issueTouch && s.hasResponder {
		s.tree.EmitEvent(s.responder.Widget(), event.Touch{Touches: s.touches.Clone()})
	}

	s.tree.Render(s.size)

	if next, ok := s.tree.NextTimerTime(); ok && s.scheduler != nil {
		s.scheduler.SetNextWakeup(next)
	}
	if s.tree.NeedsFrame() && !s.framePending && s.frames != nil {
		s.framePending = true
		s.frames.RequestFrame(func(frameTime time.Time) {
			s.queue.Push(Frame{Time: frameTime})
			if s.scheduler != nil {
				s.scheduler.Wakeup()
			}
		})
	}
	return ctx.Err() == nil, nil
}

// swapResponder installs the result of a touch hit test, telling the old
// and new responders when the widget changes.
func (s *State) swapResponder(responder core.EventResponder, hit bool) {
	switch {
	case s.hasResponder && hit && s.responder.Widget() != responder.Widget():
		s.tree.EmitEvent(s.responder.Widget(), event.ResignedResponder{})
		s.tree.EmitEvent(responder.Widget(), event.BecameResponder{})
	case s.hasResponder && !hit:
		s.tree.EmitEvent(s.responder.Widget(), event.ResignedResponder{})
		s.hasResponder = false
		s.responder = core.EventResponder{}
	case !s.hasResponder && hit:
		s.tree.EmitEvent(responder.Widget(), event.BecameResponder{})
	}
	if hit {
		s.responder, s.hasResponder = responder, true
	}
}

// hover updates the hover stack for a pointer at location. Entries the
// pointer left are popped from the top down; the innermost remaining entry
// is then searched for a deeper responder.
func (s *State) hover(location graphics.Point) {
	for i, r := range s.hovered {
		if _, ok := s.tree.HitTest(r.Widget(), r.ParentPoint(location)); !ok {
			s.leave(i)
			break
		}
	}
	if n := len(s.hovered); n > 0 {
		last := s.hovered[n-1]
		if r, ok := s.tree.HitTest(last.Widget(), last.ParentPoint(location)); ok {
			r = r.Rebase(last.ParentTransform())
			if r.Widget() != last.Widget() {
				s.enter(r)
			}
		}
	} else if r, ok := s.tree.HitTest(core.Broadcast, location); ok {
		s.enter(r)
	}
	if n := len(s.hovered); n > 0 {
		last := s.hovered[n-1]
		s.tree.EmitEvent(last.Widget(), event.Hover{Location: last.TransformPoint(location)})
	}
}

func (s *State) enter(r core.EventResponder) {
	if cursor, ok := r.Cursor(); ok {
		s.cursors.Push(cursor)
	}
	s.tree.EmitEvent(r.Widget(), event.Enter{})
	s.hovered = append(s.hovered, r)
}

// leave pops the hover stack down to index i.
func (s *State) leave(i int) {
	for len(s.hovered) > i {
		n := len(s.hovered) - 1
		r := s.hovered[n]
		s.hovered = s.hovered[:n]
		if r.HasCursor() {
			s.cursors.Pop()
		}
		s.tree.EmitEvent(r.Widget(), event.Leave{})
	}
}
