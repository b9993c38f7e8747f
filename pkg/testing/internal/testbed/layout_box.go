package testbed

import (
	"github.com/terramach/terramach/pkg/core"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/layers"
	"github.com/terramach/terramach/pkg/layout"
)

// LayoutBox is a fixed-size colored box for layout testing.
type LayoutBox struct {
	core.WidgetBase
	Width  float64
	Height float64
	Color  graphics.Color
}

func (b LayoutBox) Layout(_ *core.WidgetContext, l *layout.Context) graphics.Size {
	return l.Constraints().Constrain(graphics.Sz(b.Width, b.Height))
}

func (b LayoutBox) Paint(_ *core.WidgetContext, paint *layers.PaintContext) {
	if b.Color != 0 {
		paint.Canvas().DrawRect(graphics.RectFromSize(paint.Size()), graphics.FillPaint(b.Color))
	}
}
