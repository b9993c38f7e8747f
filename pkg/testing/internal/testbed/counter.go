// Package testbed provides internal test widgets for the testing framework.
package testbed

import (
	"strconv"

	"github.com/terramach/terramach/pkg/core"
	"github.com/terramach/terramach/pkg/event"
	"github.com/terramach/terramach/pkg/widgets"
)

// IncrementTap is the event ID of the Counter's tap target.
const IncrementTap event.ID = 1

// Counter displays a count and increments it on every tap.
type Counter struct {
	core.WidgetBase
	Initial int
	OnTap   func(count int)
}

// ContentEqual ignores OnTap, which cannot be compared.
func (c Counter) ContentEqual(other core.Widget) bool {
	o, ok := other.(Counter)
	return ok && o.Initial == c.Initial
}

func (c Counter) count(ctx *core.WidgetContext) *int {
	return core.UseState(ctx, func() int { return c.Initial })
}

func (c Counter) Build(ctx *core.WidgetContext, build *core.BuildContext) {
	build.Add(widgets.Gesture{
		ID:      IncrementTap,
		Emitter: build.Emitter(),
		Tap:     true,
		Child:   widgets.Text{Content: strconv.Itoa(*c.count(ctx))},
	})
}

func (c Counter) Event(ctx *core.WidgetContext, ev *core.EventContext) {
	tap, ok := ev.Event().(event.Tap)
	if !ok || tap.ID != IncrementTap {
		return
	}
	count := c.count(ctx)
	*count++
	if c.OnTap != nil {
		c.OnTap(*count)
	}
	ev.MarkNeedBuild()
}
