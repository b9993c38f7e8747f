// Package demo holds the counter app the terra CLI renders.
package demo

import (
	"strconv"
	"time"

	"github.com/terramach/terramach/pkg/core"
	"github.com/terramach/terramach/pkg/event"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/layout"
	"github.com/terramach/terramach/pkg/widgets"
)

// Tap targets of the counter.
const (
	IncrementTap event.ID = iota + 1
	DecrementTap
)

var (
	background = graphics.RGB(0xF4, 0xF1, 0xEA)
	accent     = graphics.RGB(0x2E, 0x5E, 0x8C)
	ink        = graphics.RGB(0x20, 0x20, 0x20)
)

// disabledOpacity dims the decrement button at zero.
const disabledOpacity = 0.4

// Counter shows a title, a count and buttons to change it. The count never
// drops below zero.
type Counter struct {
	core.WidgetBase
	Title   string
	Initial int
	// TapTimeout and TapSlop configure the buttons' tap recognizers.
	TapTimeout time.Duration
	TapSlop    float64
}

func (c Counter) count(ctx *core.WidgetContext) *int {
	return core.UseState(ctx, func() int { return max(c.Initial, 0) })
}

func (c Counter) Build(ctx *core.WidgetContext, build *core.BuildContext) {
	count := *c.count(ctx)

	decrementOpacity := 1.0
	if count == 0 {
		decrementOpacity = disabledOpacity
	}

	build.Add(widgets.ColoredBox{
		Color: background,
		Child: widgets.Centered(widgets.ColumnOf(
			widgets.MainAxisAlignmentStart,
			widgets.CrossAxisAlignmentCenter,
			widgets.Text{Content: c.Title, Color: ink},
			widgets.VSpace(12),
			widgets.Text{Content: strconv.Itoa(count), Color: accent},
			widgets.VSpace(12),
			widgets.RowOf(
				widgets.MainAxisAlignmentStart,
				widgets.CrossAxisAlignmentCenter,
				widgets.Opacity{Opacity: decrementOpacity, Child: c.button(build, DecrementTap, "-")},
				widgets.HSpace(16),
				c.button(build, IncrementTap, "+"),
			),
		)),
	})
}

func (c Counter) button(build *core.BuildContext, id event.ID, label string) core.Widget {
	return widgets.Gesture{
		ID:             id,
		Emitter:        build.Emitter(),
		Tap:            true,
		TapMaxDuration: c.TapTimeout,
		TapSlop:        c.TapSlop,
		Child: widgets.ClipRect{Child: widgets.ColoredBox{
			Color: accent,
			Child: widgets.Padding{
				Padding: layout.EdgeInsetsSymmetric(12, 6),
				Child:   widgets.Text{Content: label, Color: graphics.ColorWhite},
			},
		}},
	}
}

func (c Counter) Event(ctx *core.WidgetContext, ev *core.EventContext) {
	tap, ok := ev.Event().(event.Tap)
	if !ok {
		return
	}
	count := c.count(ctx)
	switch tap.ID {
	case IncrementTap:
		*count++
	case DecrementTap:
		if *count == 0 {
			return
		}
		*count--
	default:
		return
	}
	ev.MarkNeedBuild()
}
