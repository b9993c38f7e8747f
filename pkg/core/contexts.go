package core

import (
	"github.com/terramach/terramach/pkg/errors"
	"github.com/terramach/terramach/pkg/event"
	"github.com/terramach/terramach/pkg/gpu"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/input"
	"github.com/terramach/terramach/pkg/logging"
	"github.com/terramach/terramach/pkg/tree"
)

// nodeContext identifies the node a lifecycle callback runs for.
type nodeContext struct {
	tree *RenderTree
	id   tree.ID
}

// ID returns the node's ID.
func (n nodeContext) ID() tree.ID {
	return n.id
}

// Ancestors returns the widgets above the node, nearest first.
func (n nodeContext) Ancestors() []Widget {
	var ancestors []Widget
	id := n.id
	for {
		parent, ok := n.tree.widgets.Parent(id)
		if !ok {
			return ancestors
		}
		if widget, ok := n.tree.widgets.Node(parent); ok {
			ancestors = append(ancestors, widget)
		}
		id = parent
	}
}

// AncestorWidget returns the nearest ancestor of type T.
func AncestorWidget[T Widget](ctx interface{ Ancestors() []Widget }) (T, bool) {
	for _, widget := range ctx.Ancestors() {
		if match, ok := widget.(T); ok {
			return match, true
		}
	}
	var zero T
	return zero, false
}

// MountContext is passed to Widget.Mount.
type MountContext struct {
	nodeContext
	texture    gpu.TextureID
	hasTexture bool
}

// RegisterTexture hands texture to the render goroutine and binds it to the
// node. The texture is unregistered when the node is removed. A node may
// register at most one texture.
func (m *MountContext) RegisterTexture(texture gpu.RenderTexture) WidgetTexture {
	if m.hasTexture {
		errors.Violation("core.RegisterTexture", "node %d registered a second texture", m.id)
		return WidgetTexture{id: m.texture, pipeline: m.tree.pipeline}
	}
	id := gpu.TextureID(m.tree.textureIDs.Take())
	m.texture, m.hasTexture = id, true
	m.tree.pipeline.RegisterTexture(id, texture)
	logging.Logger().Debug("texture registered", "node", int(m.id), "texture", int(id))
	return WidgetTexture{id: id, pipeline: m.tree.pipeline}
}

// UpdateContext is passed to Widget.Update.
type UpdateContext struct {
	nodeContext
}

// WidgetTexture is the UI-side handle of a texture registered at mount.
// The zero value ignores every call.
type WidgetTexture struct {
	id       gpu.TextureID
	pipeline gpu.Submitter
}

// ID returns the texture ID for use with PaintContext.PushTexture.
func (w WidgetTexture) ID() gpu.TextureID {
	return w.id
}

// Update asks the texture to synchronize its state on the render goroutine.
func (w WidgetTexture) Update() {
	if w.pipeline != nil {
		w.pipeline.UpdateTexture(w.id)
	}
}

// Invalidate asks the texture to render again.
func (w WidgetTexture) Invalidate() {
	if w.pipeline != nil {
		w.pipeline.InvalidateTexture(w.id)
	}
}

// BuildContext collects the children emitted by Widget.Build.
type BuildContext struct {
	children []Widget
	emitter  event.Emitter[event.Event]
}

// Add appends children.
func (b *BuildContext) Add(children ...Widget) *BuildContext {
	b.children = append(b.children, children...)
	return b
}

// Children returns the children added so far.
func (b *BuildContext) Children() []Widget {
	return b.children
}

// Emitter returns an emitter into the building node's event queue. Children
// use it to send events, such as event.Tap, back to the node that created
// them.
func (b *BuildContext) Emitter() event.Emitter[event.Event] {
	return b.emitter
}

// EventContext carries one event to Widget.Event and collects what the
// handler invalidated.
type EventContext struct {
	event      event.Event
	needBuild  bool
	needLayout bool
	needPaint  bool
	needEvent  bool
}

// NewEventContext wraps ev.
func NewEventContext(ev event.Event) *EventContext {
	return &EventContext{event: ev}
}

// Event returns the event being delivered.
func (e *EventContext) Event() event.Event { return e.event }

// MarkNeedBuild schedules the node to rebuild.
func (e *EventContext) MarkNeedBuild() { e.needBuild = true }

// MarkNeedLayout schedules the node and its ancestors to lay out again.
func (e *EventContext) MarkNeedLayout() { e.needLayout = true }

// MarkNeedPaint schedules the node to paint again.
func (e *EventContext) MarkNeedPaint() { e.needPaint = true }

// MarkNeedEvent passes the event on to the node's parent.
func (e *EventContext) MarkNeedEvent() { e.needEvent = true }

// NeedBuild reports whether MarkNeedBuild was called.
func (e *EventContext) NeedBuild() bool { return e.needBuild }

// NeedLayout reports whether MarkNeedLayout was called.
func (e *EventContext) NeedLayout() bool { return e.needLayout }

// NeedPaint reports whether MarkNeedPaint was called.
func (e *EventContext) NeedPaint() bool { return e.needPaint }

// NeedEvent reports whether MarkNeedEvent was called.
func (e *EventContext) NeedEvent() bool { return e.needEvent }

// HitTestContext is passed to Widget.HitTest. The location is in the node's
// own coordinates.
type HitTestContext struct {
	size            graphics.Size
	location        graphics.Point
	transform       graphics.Matrix
	absorb          bool
	becomeResponder bool
	cursor          input.Cursor
	hasCursor       bool
}

// NewHitTestContext returns a context for a node of size hit at location.
func NewHitTestContext(size graphics.Size, location graphics.Point) *HitTestContext {
	return &HitTestContext{size: size, location: location, transform: graphics.Identity()}
}

// Size returns the node size.
func (h *HitTestContext) Size() graphics.Size { return h.size }

// Location returns the hit location in node coordinates.
func (h *HitTestContext) Location() graphics.Point { return h.location }

// InBounds reports whether the location lies inside the node.
func (h *HitTestContext) InBounds() bool { return h.size.Contains(h.location) }

// BecomeResponder asks to receive the events when no descendant does. It
// returns InBounds for use as the HitTest result.
func (h *HitTestContext) BecomeResponder() bool {
	h.becomeResponder = true
	return h.InBounds()
}

// Absorb stops the hit test from descending into the children. It returns
// InBounds for use as the HitTest result.
func (h *HitTestContext) Absorb() bool {
	h.absorb = true
	return h.InBounds()
}

// SetTransform maps node coordinates into the coordinates the children are
// laid out in, for example to account for scrolling.
func (h *HitTestContext) SetTransform(transform graphics.Matrix) {
	h.transform = transform
}

// SetCursor sets the cursor of the responder this hit test produces.
func (h *HitTestContext) SetCursor(cursor input.Cursor) {
	h.cursor, h.hasCursor = cursor, true
}

// EventResponder is the result of a hit test: the node that receives the
// events and the transform from the hit test's coordinates into the node's.
type EventResponder struct {
	widget    tree.ID
	transform graphics.Matrix
	parent    graphics.Matrix
	cursor    input.Cursor
	hasCursor bool
}

// NewEventResponder returns a responder for widget with an identity
// transform.
func NewEventResponder(widget tree.ID) EventResponder {
	return EventResponder{widget: widget, transform: graphics.Identity(), parent: graphics.Identity()}
}

// Widget returns the responder node.
func (r EventResponder) Widget() tree.ID { return r.widget }

// Transform returns the transform into the responder's coordinates.
func (r EventResponder) Transform() graphics.Matrix { return r.transform }

// ParentTransform returns the transform into the coordinates of the
// responder's parent.
func (r EventResponder) ParentTransform() graphics.Matrix { return r.parent }

// Cursor returns the responder's cursor, if any.
func (r EventResponder) Cursor() (input.Cursor, bool) { return r.cursor, r.hasCursor }

// HasCursor reports whether the responder set a cursor.
func (r EventResponder) HasCursor() bool { return r.hasCursor }

// TransformPoint maps point into the responder's coordinates.
func (r EventResponder) TransformPoint(point graphics.Point) graphics.Point {
	return r.transform.MapPoint(point)
}

// ParentPoint maps point into the coordinates of the responder's parent,
// the space RenderTree.HitTest expects when testing from the responder.
func (r EventResponder) ParentPoint(point graphics.Point) graphics.Point {
	return r.parent.MapPoint(point)
}

// TransformTouch maps touch into the responder's coordinates.
func (r EventResponder) TransformTouch(touch input.Touch) input.Touch {
	return input.Touch{ID: touch.ID, Location: r.TransformPoint(touch.Location)}
}

// Rebase prepends outer to the responder's transforms. Use it to express a
// responder found by a hit test started below the root in root coordinates.
func (r EventResponder) Rebase(outer graphics.Matrix) EventResponder {
	r.transform = r.transform.Multiply(outer)
	r.parent = r.parent.Multiply(outer)
	return r
}

// push composes the transform of an ancestor the hit test passed through.
func (r *EventResponder) push(ancestor graphics.Matrix) {
	r.transform = r.transform.Multiply(ancestor)
	r.parent = r.parent.Multiply(ancestor)
}
