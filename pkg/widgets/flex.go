package widgets

import (
	"fmt"
	"math"

	"github.com/terramach/terramach/pkg/core"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/layout"
)

// Axis represents the layout direction.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// String returns a human-readable representation of the axis.
func (a Axis) String() string {
	switch a {
	case AxisVertical:
		return "vertical"
	case AxisHorizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// MainAxisAlignment controls where children sit along the main axis
// (horizontal for [Row], vertical for [Column]) when the flex is larger
// than its content.
type MainAxisAlignment int

const (
	// MainAxisAlignmentStart packs children at the start.
	MainAxisAlignmentStart MainAxisAlignment = iota
	// MainAxisAlignmentEnd packs children at the end.
	MainAxisAlignmentEnd
	// MainAxisAlignmentCenter packs children in the middle.
	MainAxisAlignmentCenter
)

// String returns a human-readable representation of the main axis alignment.
func (a MainAxisAlignment) String() string {
	switch a {
	case MainAxisAlignmentStart:
		return "start"
	case MainAxisAlignmentEnd:
		return "end"
	case MainAxisAlignmentCenter:
		return "center"
	default:
		return fmt.Sprintf("MainAxisAlignment(%d)", int(a))
	}
}

// CrossAxisAlignment controls how children are positioned along the cross
// axis (vertical for [Row], horizontal for [Column]).
type CrossAxisAlignment int

const (
	// CrossAxisAlignmentStart places children at the start of the cross axis.
	CrossAxisAlignmentStart CrossAxisAlignment = iota
	// CrossAxisAlignmentEnd places children at the end of the cross axis.
	CrossAxisAlignmentEnd
	// CrossAxisAlignmentCenter centers children along the cross axis.
	CrossAxisAlignmentCenter
	// CrossAxisAlignmentStretch stretches children to fill the cross axis.
	CrossAxisAlignmentStretch
)

// String returns a human-readable representation of the cross axis alignment.
func (a CrossAxisAlignment) String() string {
	switch a {
	case CrossAxisAlignmentStart:
		return "start"
	case CrossAxisAlignmentEnd:
		return "end"
	case CrossAxisAlignmentCenter:
		return "center"
	case CrossAxisAlignmentStretch:
		return "stretch"
	default:
		return fmt.Sprintf("CrossAxisAlignment(%d)", int(a))
	}
}

// Column lays out children vertically from top to bottom.
//
// Column shrinks to fit its children within the incoming constraints. Wrap
// children in [Expanded] to share the height left over by the others:
//
//	Column{Children: []core.Widget{
//	    Text{Content: "Title"},
//	    Expanded{Child: body},
//	}}
type Column struct {
	core.WidgetBase
	Children           []core.Widget
	MainAxisAlignment  MainAxisAlignment
	CrossAxisAlignment CrossAxisAlignment
}

// ColumnOf creates a Column with the given alignments and children.
func ColumnOf(alignment MainAxisAlignment, crossAlignment CrossAxisAlignment, children ...core.Widget) Column {
	return Column{Children: children, MainAxisAlignment: alignment, CrossAxisAlignment: crossAlignment}
}

func (c Column) Build(_ *core.WidgetContext, build *core.BuildContext) {
	build.Add(c.Children...)
}

func (c Column) Layout(_ *core.WidgetContext, l *layout.Context) graphics.Size {
	f := flex{direction: AxisVertical, alignment: c.MainAxisAlignment, crossAlignment: c.CrossAxisAlignment}
	return f.layout(l, c.Children)
}

// Row lays out children horizontally from left to right. It behaves like
// [Column] with the axes swapped.
type Row struct {
	core.WidgetBase
	Children           []core.Widget
	MainAxisAlignment  MainAxisAlignment
	CrossAxisAlignment CrossAxisAlignment
}

// RowOf creates a Row with the given alignments and children.
func RowOf(alignment MainAxisAlignment, crossAlignment CrossAxisAlignment, children ...core.Widget) Row {
	return Row{Children: children, MainAxisAlignment: alignment, CrossAxisAlignment: crossAlignment}
}

func (r Row) Build(_ *core.WidgetContext, build *core.BuildContext) {
	build.Add(r.Children...)
}

func (r Row) Layout(_ *core.WidgetContext, l *layout.Context) graphics.Size {
	f := flex{direction: AxisHorizontal, alignment: r.MainAxisAlignment, crossAlignment: r.CrossAxisAlignment}
	return f.layout(l, r.Children)
}

// Expanded makes its child fill a share of the main-axis space a [Row] or
// [Column] has left after laying out its other children. Space is divided
// in proportion to Flex, which defaults to 1.
type Expanded struct {
	core.WidgetBase
	Flex  int
	Child core.Widget
}

func (e Expanded) Build(_ *core.WidgetContext, build *core.BuildContext) {
	if e.Child != nil {
		build.Add(e.Child)
	}
}

// Layout fills the constraints the flex hands out.
func (e Expanded) Layout(_ *core.WidgetContext, l *layout.Context) graphics.Size {
	constraints := l.Constraints()
	size := core.LayoutStack(l)
	if constraints.HasBoundedWidth() && constraints.HasBoundedHeight() {
		return constraints.MaxSize()
	}
	return size
}

func (e Expanded) flexFactor() int {
	if e.Flex <= 0 {
		return 1
	}
	return e.Flex
}

type flex struct {
	direction      Axis
	alignment      MainAxisAlignment
	crossAlignment CrossAxisAlignment
}

func (f flex) main(size graphics.Size) float64 {
	if f.direction == AxisVertical {
		return size.Height
	}
	return size.Width
}

func (f flex) cross(size graphics.Size) float64 {
	if f.direction == AxisVertical {
		return size.Width
	}
	return size.Height
}

func (f flex) size(main, cross float64) graphics.Size {
	if f.direction == AxisVertical {
		return graphics.Sz(cross, main)
	}
	return graphics.Sz(main, cross)
}

func (f flex) point(main, cross float64) graphics.Point {
	if f.direction == AxisVertical {
		return graphics.Pt(cross, main)
	}
	return graphics.Pt(main, cross)
}

// childConstraints returns constraints for a child with a main extent
// between minMain and maxMain.
func (f flex) childConstraints(constraints layout.Constraints, minMain, maxMain float64) layout.Constraints {
	maxCross := f.cross(constraints.MaxSize())
	minCross := 0.0
	if f.crossAlignment == CrossAxisAlignmentStretch && !math.IsInf(maxCross, 1) {
		minCross = maxCross
	}
	return layout.NewConstraints(f.size(minMain, minCross), f.size(maxMain, maxCross))
}

// layout lays out inflexible children first, then splits the remaining main
// extent between Expanded children, then positions everything.
func (f flex) layout(l *layout.Context, children []core.Widget) graphics.Size {
	constraints := l.Constraints()
	maxMain := f.main(constraints.MaxSize())
	bounded := !math.IsInf(maxMain, 1)

	count := min(l.ChildCount(), len(children))
	sizes := make([]graphics.Size, count)
	totalFlex := 0
	used := 0.0
	for i := range count {
		if e, ok := children[i].(Expanded); ok && bounded {
			totalFlex += e.flexFactor()
			continue
		}
		child := f.childConstraints(constraints, 0, math.Max(maxMain-used, 0))
		if !bounded {
			child = f.childConstraints(constraints, 0, math.Inf(1))
		}
		size, ok := l.LayoutChild(i, child)
		if !ok {
			continue
		}
		sizes[i] = child.Constrain(size)
		used += f.main(sizes[i])
	}

	if totalFlex > 0 {
		free := math.Max(maxMain-used, 0)
		for i := range count {
			e, ok := children[i].(Expanded)
			if !ok {
				continue
			}
			extent := free * float64(e.flexFactor()) / float64(totalFlex)
			child := f.childConstraints(constraints, extent, extent)
			size, ok := l.LayoutChild(i, child)
			if !ok {
				continue
			}
			sizes[i] = child.Constrain(size)
			used += f.main(sizes[i])
		}
	}

	var crossExtent float64
	for _, size := range sizes {
		crossExtent = math.Max(crossExtent, f.cross(size))
	}
	size := constraints.Constrain(f.size(used, crossExtent))

	var position float64
	switch f.alignment {
	case MainAxisAlignmentEnd:
		position = f.main(size) - used
	case MainAxisAlignmentCenter:
		position = (f.main(size) - used) / 2
	}
	for i := range count {
		if !l.WasLaidOut(i) {
			continue
		}
		var crossOffset float64
		switch f.crossAlignment {
		case CrossAxisAlignmentEnd:
			crossOffset = f.cross(size) - f.cross(sizes[i])
		case CrossAxisAlignmentCenter:
			crossOffset = (f.cross(size) - f.cross(sizes[i])) / 2
		}
		l.SetChildOffset(i, f.point(position, crossOffset))
		position += f.main(sizes[i])
	}
	return size
}
