package layout

import "github.com/terramach/terramach/pkg/graphics"

// ChildLayouter measures the child at index under constraints. It reports
// false when the child cannot be laid out.
type ChildLayouter func(index int, constraints Constraints) (graphics.Size, bool)

// Context is handed to a widget's Layout method. It carries the incoming
// constraints and lets the widget measure and position its children.
type Context struct {
	constraints Constraints
	childCount  int
	layoutChild ChildLayouter
	laidOut     map[int]bool
	offsets     map[int]graphics.Point
}

// NewContext returns a layout context for a widget with childCount children.
func NewContext(constraints Constraints, childCount int, layoutChild ChildLayouter) *Context {
	return &Context{
		constraints: constraints,
		childCount:  childCount,
		layoutChild: layoutChild,
	}
}

// Constraints returns the constraints the widget must satisfy.
func (c *Context) Constraints() Constraints {
	return c.constraints
}

// ChildCount returns the number of children.
func (c *Context) ChildCount() int {
	return c.childCount
}

// LayoutChild measures the child at index.
func (c *Context) LayoutChild(index int, constraints Constraints) (graphics.Size, bool) {
	if index < 0 || index >= c.childCount || c.layoutChild == nil {
		return graphics.Size{}, false
	}
	size, ok := c.layoutChild(index, constraints)
	if ok {
		if c.laidOut == nil {
			c.laidOut = make(map[int]bool)
		}
		c.laidOut[index] = true
	}
	return size, ok
}

// SetChildOffset positions the child at index relative to this widget.
func (c *Context) SetChildOffset(index int, offset graphics.Point) {
	if c.offsets == nil {
		c.offsets = make(map[int]graphics.Point)
	}
	c.offsets[index] = offset
}

// ChildOffsets returns the offsets recorded by SetChildOffset, keyed by
// child index.
func (c *Context) ChildOffsets() map[int]graphics.Point {
	return c.offsets
}

// WasLaidOut reports whether LayoutChild succeeded for index.
func (c *Context) WasLaidOut(index int) bool {
	return c.laidOut[index]
}
