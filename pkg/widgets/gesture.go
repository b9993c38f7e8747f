package widgets

import (
	"time"

	"github.com/terramach/terramach/pkg/core"
	"github.com/terramach/terramach/pkg/event"
	"github.com/terramach/terramach/pkg/gesture"
)

// Gesture recognizes taps and pans on its child and reports them as
// event.Tap and event.Pan values carrying ID. The events go to Emitter,
// which is normally the creating widget's BuildContext.Emitter, so the
// creator sees them in its own Event method:
//
//	func (c counter) Build(ctx *core.WidgetContext, build *core.BuildContext) {
//	    build.Add(widgets.Gesture{
//	        ID:      incrementID,
//	        Emitter: build.Emitter(),
//	        Tap:     true,
//	        Child:   widgets.Text{Content: "+"},
//	    })
//	}
//
// A tap only counts while the pointer hovers the widget, so a press that is
// dragged off and released elsewhere does not tap.
type Gesture struct {
	core.WidgetBase
	ID      event.ID
	Emitter event.Emitter[event.Event]
	// Tap enables single-finger tap recognition.
	Tap bool
	// TapMaxDuration cancels a tap held longer. Zero disables the limit.
	TapMaxDuration time.Duration
	// TapSlop cancels a tap that moves further, in logical pixels. Zero
	// disables the limit.
	TapSlop float64
	// Pan enables drag recognition.
	Pan   bool
	Child core.Widget
}

type gestureState struct {
	tap   *gesture.TapGesture
	pan   *gesture.PanGesture
	hover bool
}

func (g Gesture) configure(state *gestureState) {
	if g.Tap {
		if state.tap == nil {
			state.tap = gesture.NewTapGesture()
		}
		state.tap.MaxDuration = g.TapMaxDuration
		state.tap.Slop = g.TapSlop
	} else {
		state.tap = nil
	}
	if g.Pan {
		if state.pan == nil {
			state.pan = gesture.NewPanGesture()
		}
	} else {
		state.pan = nil
	}
}

func (g Gesture) Mount(ctx *core.WidgetContext, _ *core.MountContext) {
	g.configure(core.UseState[gestureState](ctx, nil))
}

func (g Gesture) Update(ctx *core.WidgetContext, _ *core.UpdateContext) {
	g.configure(core.UseState[gestureState](ctx, nil))
}

func (g Gesture) Build(_ *core.WidgetContext, build *core.BuildContext) {
	if g.Child != nil {
		build.Add(g.Child)
	}
}

func (g Gesture) Event(ctx *core.WidgetContext, ev *core.EventContext) {
	state := core.UseState[gestureState](ctx, nil)
	switch e := ev.Event().(type) {
	case event.Enter:
		state.hover = true
	case event.Leave:
		state.hover = false
	case event.Touch:
		if g.recognize(ctx, state, e) {
			ev.MarkNeedEvent()
		}
	}
}

// recognize feeds touches to the recognizers and reports whether anything
// was emitted.
func (g Gesture) recognize(ctx *core.WidgetContext, state *gestureState, touch event.Touch) bool {
	emitted := false
	if state.tap != nil {
		if state.tap.Update(touch.Touches, ctx.Now()) == gesture.TapEnded && state.hover {
			g.Emitter.Emit(event.Tap{ID: g.ID})
			emitted = true
		}
	}
	if state.pan != nil {
		phase, ok := panPhase(state.pan.Update(touch.Touches))
		if ok {
			location, _ := state.pan.Location()
			g.Emitter.Emit(event.Pan{ID: g.ID, Phase: phase, Location: location, Delta: state.pan.Delta()})
			emitted = true
		}
	}
	return emitted
}

func panPhase(state gesture.PanState) (event.PanPhase, bool) {
	switch state {
	case gesture.PanBegan:
		return event.PanBegan, true
	case gesture.PanChanged:
		return event.PanChanged, true
	case gesture.PanEnded:
		return event.PanEnded, true
	default:
		return 0, false
	}
}

func (g Gesture) HitTest(_ *core.WidgetContext, hit *core.HitTestContext) bool {
	return hit.BecomeResponder()
}
