package widgets

import (
	"github.com/terramach/terramach/pkg/core"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/layers"
	"github.com/terramach/terramach/pkg/layout"
)

// Padding adds empty space around its child widget.
//
// The child is constrained to the remaining space after padding is applied.
// If no child is provided, Padding creates an empty box of the padding size.
//
//	Padding{Padding: layout.EdgeInsetsAll(16), Child: child}
//	Padding{Padding: layout.EdgeInsetsSymmetric(24, 12), Child: child}
type Padding struct {
	core.WidgetBase
	Padding layout.EdgeInsets
	Child   core.Widget
}

func (p Padding) Build(_ *core.WidgetContext, build *core.BuildContext) {
	if p.Child != nil {
		build.Add(p.Child)
	}
}

func (p Padding) Layout(_ *core.WidgetContext, l *layout.Context) graphics.Size {
	constraints := l.Constraints()
	childSize, ok := l.LayoutChild(0, constraints.Deflate(p.Padding))
	if !ok {
		return constraints.Constrain(graphics.Sz(p.Padding.Horizontal(), p.Padding.Vertical()))
	}
	l.SetChildOffset(0, p.Padding.TopLeft())
	return constraints.Constrain(childSize.Inflate(p.Padding.Horizontal(), p.Padding.Vertical()))
}

// SizedBox forces a width and/or height on itself and its child.
//
// A zero Width or Height leaves that dimension to the child, or to the
// smallest allowed size when there is no child.
//
//	SizedBox{Width: 100, Height: 50, Child: child}
//	SizedBox{Height: 24} // vertical spacer in a Column
type SizedBox struct {
	core.WidgetBase
	Width  float64
	Height float64
	Child  core.Widget
}

func (s SizedBox) Build(_ *core.WidgetContext, build *core.BuildContext) {
	if s.Child != nil {
		build.Add(s.Child)
	}
}

func (s SizedBox) Layout(_ *core.WidgetContext, l *layout.Context) graphics.Size {
	constraints := l.Constraints()
	inner := constraints
	if s.Width > 0 {
		w := constraints.Constrain(graphics.Sz(s.Width, 0)).Width
		inner.MinWidth, inner.MaxWidth = w, w
	}
	if s.Height > 0 {
		h := constraints.Constrain(graphics.Sz(0, s.Height)).Height
		inner.MinHeight, inner.MaxHeight = h, h
	}
	if size, ok := l.LayoutChild(0, inner); ok {
		return inner.Constrain(size)
	}
	return inner.Constrain(graphics.Size{})
}

// SizedBoxSquare returns a SizedBox of size x size.
func SizedBoxSquare(size float64, child core.Widget) SizedBox {
	return SizedBox{Width: size, Height: size, Child: child}
}

// VSpace creates a fixed-height vertical spacer.
func VSpace(height float64) SizedBox {
	return SizedBox{Height: height}
}

// HSpace creates a fixed-width horizontal spacer.
func HSpace(width float64) SizedBox {
	return SizedBox{Width: width}
}

// ColoredBox fills its bounds with Color and paints its child on top.
// Without a child it expands to the largest bounded size.
type ColoredBox struct {
	core.WidgetBase
	Color graphics.Color
	Child core.Widget
}

func (c ColoredBox) Build(_ *core.WidgetContext, build *core.BuildContext) {
	if c.Child != nil {
		build.Add(c.Child)
	}
}

func (c ColoredBox) Layout(_ *core.WidgetContext, l *layout.Context) graphics.Size {
	if l.ChildCount() > 0 {
		return core.LayoutStack(l)
	}
	return expand(l.Constraints())
}

func (c ColoredBox) Paint(_ *core.WidgetContext, paint *layers.PaintContext) {
	if c.Color.Alpha() > 0 {
		paint.Canvas().DrawRect(graphics.RectFromSize(paint.Size()), graphics.FillPaint(c.Color))
	}
	paint.PaintChildren()
}

// Align positions its child within itself according to the given alignment.
//
// Align expands to fill bounded constraints, then positions the child
// within that space. The child is given loose constraints.
//
//	Align{Alignment: layout.AlignmentBottomRight, Child: Text{Content: "Bottom right"}}
type Align struct {
	core.WidgetBase
	Alignment layout.Alignment
	Child     core.Widget
}

// Centered wraps a child in an Align with AlignmentCenter.
func Centered(child core.Widget) Align {
	return Align{Alignment: layout.AlignmentCenter, Child: child}
}

func (a Align) Build(_ *core.WidgetContext, build *core.BuildContext) {
	if a.Child != nil {
		build.Add(a.Child)
	}
}

func (a Align) Layout(_ *core.WidgetContext, l *layout.Context) graphics.Size {
	constraints := l.Constraints()
	childSize, ok := l.LayoutChild(0, constraints.Loosen())
	if !ok {
		return expand(constraints)
	}
	size := childSize
	if constraints.HasBoundedWidth() {
		size.Width = constraints.MaxWidth
	}
	if constraints.HasBoundedHeight() {
		size.Height = constraints.MaxHeight
	}
	size = constraints.Constrain(size)
	l.SetChildOffset(0, a.Alignment.Offset(size, childSize))
	return size
}

// expand returns the largest size the constraints allow in each bounded
// dimension and the smallest in each unbounded one.
func expand(constraints layout.Constraints) graphics.Size {
	size := constraints.MinSize()
	if constraints.HasBoundedWidth() {
		size.Width = constraints.MaxWidth
	}
	if constraints.HasBoundedHeight() {
		size.Height = constraints.MaxHeight
	}
	return size
}
