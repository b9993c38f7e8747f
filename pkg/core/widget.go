package core

import (
	"reflect"

	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/layers"
	"github.com/terramach/terramach/pkg/layout"
)

// Widget describes one node of the UI. Embed WidgetBase and override the
// methods that differ from the defaults.
type Widget interface {
	// Mount is called once, the first time the node is built.
	Mount(ctx *WidgetContext, mount *MountContext)
	// Update is called on every later build of the same node.
	Update(ctx *WidgetContext, update *UpdateContext)
	// Build emits the node's children.
	Build(ctx *WidgetContext, build *BuildContext)
	// Layout sizes the node within the incoming constraints and positions
	// its children.
	Layout(ctx *WidgetContext, layout *layout.Context) graphics.Size
	// Event handles an event and marks what it invalidated.
	Event(ctx *WidgetContext, event *EventContext)
	// Paint records the node into layers.
	Paint(ctx *WidgetContext, paint *layers.PaintContext)
	// HitTest reports whether the location hits the node. Calling
	// BecomeResponder or Absorb on hit steers event routing.
	HitTest(ctx *WidgetContext, hit *HitTestContext) bool
}

// ContentEqual lets a widget replace the reflective field comparison used
// by SameContent, for example when it holds callbacks.
type ContentEqual interface {
	ContentEqual(other Widget) bool
}

// Same reports whether a and b have the same concrete type. A node keeps its
// identity and state across builds while this holds.
func Same(a, b Widget) bool {
	return reflect.TypeOf(a) == reflect.TypeOf(b)
}

// SameContent reports whether a and b are the same type with equal fields.
// Equal content lets the render tree skip rebuilding a subtree.
func SameContent(a, b Widget) bool {
	if !Same(a, b) {
		return false
	}
	if eq, ok := a.(ContentEqual); ok {
		return eq.ContentEqual(b)
	}
	return reflect.DeepEqual(a, b)
}

// WidgetBase provides the default Widget behavior.
type WidgetBase struct{}

func (WidgetBase) Mount(*WidgetContext, *MountContext)   {}
func (WidgetBase) Update(*WidgetContext, *UpdateContext) {}
func (WidgetBase) Build(*WidgetContext, *BuildContext)   {}
func (WidgetBase) Event(*WidgetContext, *EventContext)   {}

// Layout lays out every child once against the incoming constraints, leaves
// them at the origin and takes the largest extent.
func (WidgetBase) Layout(_ *WidgetContext, l *layout.Context) graphics.Size {
	return LayoutStack(l)
}

// Paint paints the children.
func (WidgetBase) Paint(_ *WidgetContext, paint *layers.PaintContext) {
	paint.PaintChildren()
}

// HitTest hits when the location is inside the node.
func (WidgetBase) HitTest(_ *WidgetContext, hit *HitTestContext) bool {
	return hit.InBounds()
}

// LayoutStack is the default layout: each child gets the incoming
// constraints and the node takes the largest child extent.
func LayoutStack(l *layout.Context) graphics.Size {
	constraints := l.Constraints()
	var size graphics.Size
	for i := range l.ChildCount() {
		child, ok := l.LayoutChild(i, constraints)
		if !ok {
			continue
		}
		size = size.Max(constraints.Constrain(child))
	}
	return constraints.Constrain(size)
}
