package widgets

import (
	"github.com/terramach/terramach/pkg/core"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/layers"
	"github.com/terramach/terramach/pkg/layout"
)

// Text displays a single line of text.
//
// The line is measured with Font, or the default bitmap font when Font is
// nil, and the widget takes the measured size clamped into its constraints.
// Text never wraps:
//
//	Text{Content: "Label"}
//	Text{Content: "Warning", Color: graphics.ColorRed}
type Text struct {
	core.WidgetBase
	// Content is the text string to display.
	Content string
	// Color defaults to opaque black.
	Color graphics.Color
	// Font defaults to graphics.DefaultFont.
	Font *graphics.Font
}

func (t Text) font() *graphics.Font {
	if t.Font == nil {
		return graphics.DefaultFont()
	}
	return t.Font
}

func (t Text) Layout(_ *core.WidgetContext, l *layout.Context) graphics.Size {
	return l.Constraints().Constrain(t.font().Measure(t.Content))
}

func (t Text) Paint(_ *core.WidgetContext, paint *layers.PaintContext) {
	if t.Content == "" {
		return
	}
	color := t.Color
	if color == 0 {
		color = graphics.ColorBlack
	}
	paint.Canvas().DrawText(t.Content, graphics.Point{}, t.font(), color)
}
