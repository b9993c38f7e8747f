package widgets

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/terramach/terramach/pkg/core"
	"github.com/terramach/terramach/pkg/event"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/layers"
)

// ClipRect clips its child to its own bounds. Hits outside the bounds do
// not reach the child either.
type ClipRect struct {
	core.WidgetBase
	Child core.Widget
}

func (c ClipRect) Build(_ *core.WidgetContext, build *core.BuildContext) {
	if c.Child != nil {
		build.Add(c.Child)
	}
}

func (c ClipRect) Paint(_ *core.WidgetContext, paint *layers.PaintContext) {
	paint.PushClipRect(graphics.RectFromSize(paint.Size()))
	paint.PaintChildren()
}

// Opacity applies transparency to its child widget.
//
// The Opacity value should be between 0.0 (fully transparent) and 1.0
// (fully opaque). At 1.0 no layer is pushed.
//
//	widgets.Opacity{Opacity: 0.5, Child: content}
type Opacity struct {
	core.WidgetBase
	Opacity float64
	Child   core.Widget
}

func (o Opacity) Build(_ *core.WidgetContext, build *core.BuildContext) {
	if o.Child != nil {
		build.Add(o.Child)
	}
}

func (o Opacity) Paint(_ *core.WidgetContext, paint *layers.PaintContext) {
	pushOpacity(paint, o.Opacity)
	paint.PaintChildren()
}

func pushOpacity(paint *layers.PaintContext, opacity float64) {
	opacity = min(max(opacity, 0), 1)
	if opacity < 1 {
		paint.PushOpacity(opacity)
	}
}

// DefaultFadeDuration is the AnimatedOpacity duration used when none is set.
const DefaultFadeDuration = 350 * time.Millisecond

// AnimatedOpacity fades its child to Opacity whenever the value changes.
// The fade eases out over Duration, advancing on every frame.
type AnimatedOpacity struct {
	core.WidgetBase
	Opacity  float64
	Duration time.Duration
	Child    core.Widget
}

type animatedOpacityState struct {
	target    float64
	value     float64
	tween     *gween.Tween
	lastFrame time.Time
}

func (a AnimatedOpacity) duration() time.Duration {
	if a.Duration <= 0 {
		return DefaultFadeDuration
	}
	return a.Duration
}

func (a AnimatedOpacity) Mount(ctx *core.WidgetContext, _ *core.MountContext) {
	core.UseState(ctx, func() animatedOpacityState {
		return animatedOpacityState{target: a.Opacity, value: a.Opacity}
	})
}

func (a AnimatedOpacity) Update(ctx *core.WidgetContext, _ *core.UpdateContext) {
	state, ok := core.StateOf[animatedOpacityState](ctx)
	if !ok || state.target == a.Opacity {
		return
	}
	state.tween = gween.New(float32(state.value), float32(a.Opacity), float32(a.duration().Seconds()), ease.OutQuad)
	state.target = a.Opacity
	state.lastFrame = time.Time{}
	ctx.RequestFrame()
}

func (a AnimatedOpacity) Build(_ *core.WidgetContext, build *core.BuildContext) {
	if a.Child != nil {
		build.Add(a.Child)
	}
}

func (a AnimatedOpacity) Event(ctx *core.WidgetContext, ev *core.EventContext) {
	frame, ok := ev.Event().(event.Frame)
	if !ok {
		return
	}
	state, ok := core.StateOf[animatedOpacityState](ctx)
	if !ok || state.tween == nil {
		return
	}
	var dt float32
	if !state.lastFrame.IsZero() {
		dt = float32(frame.Time.Sub(state.lastFrame).Seconds())
	}
	state.lastFrame = frame.Time
	value, finished := state.tween.Update(dt)
	state.value = float64(value)
	if finished {
		state.tween = nil
		state.value = state.target
	} else {
		ctx.RequestFrame()
	}
	ev.MarkNeedPaint()
}

func (a AnimatedOpacity) Paint(ctx *core.WidgetContext, paint *layers.PaintContext) {
	opacity := a.Opacity
	if state, ok := core.StateOf[animatedOpacityState](ctx); ok {
		opacity = state.value
	}
	pushOpacity(paint, opacity)
	paint.PaintChildren()
}
