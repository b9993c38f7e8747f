package testbed

import (
	"time"

	"github.com/terramach/terramach/pkg/core"
	"github.com/terramach/terramach/pkg/event"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/layers"
	"github.com/terramach/terramach/pkg/layout"
)

// AnimatedBox grows its width linearly from From to To over Duration,
// driven by frames.
type AnimatedBox struct {
	core.WidgetBase
	Duration time.Duration
	From     float64
	To       float64
	Height   float64
	Color    graphics.Color
}

type animatedBoxState struct {
	start time.Time
	width float64
}

func (b AnimatedBox) Mount(ctx *core.WidgetContext, _ *core.MountContext) {
	core.UseState(ctx, func() animatedBoxState {
		return animatedBoxState{width: b.From}
	})
	ctx.RequestFrame()
}

func (b AnimatedBox) Event(ctx *core.WidgetContext, ev *core.EventContext) {
	frame, ok := ev.Event().(event.Frame)
	if !ok {
		return
	}
	state, _ := core.StateOf[animatedBoxState](ctx)
	if state.start.IsZero() {
		state.start = frame.Time
	}
	progress := 1.0
	if b.Duration > 0 {
		progress = min(float64(frame.Time.Sub(state.start))/float64(b.Duration), 1)
	}
	state.width = b.From + (b.To-b.From)*progress
	if progress < 1 {
		ctx.RequestFrame()
	}
	ev.MarkNeedLayout()
}

// Width returns the current animated width.
func (b AnimatedBox) Width(ctx *core.WidgetContext) float64 {
	if state, ok := core.StateOf[animatedBoxState](ctx); ok {
		return state.width
	}
	return b.From
}

func (b AnimatedBox) Layout(ctx *core.WidgetContext, l *layout.Context) graphics.Size {
	return l.Constraints().Constrain(graphics.Sz(b.Width(ctx), b.Height))
}

func (b AnimatedBox) Paint(_ *core.WidgetContext, paint *layers.PaintContext) {
	if b.Color != 0 {
		paint.Canvas().DrawRect(graphics.RectFromSize(paint.Size()), graphics.FillPaint(b.Color))
	}
}
