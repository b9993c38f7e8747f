package core

import (
	"slices"

	"github.com/terramach/terramach/pkg/errors"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/tree"
)

// HitTest finds the responder for location, starting at id. The location is
// in the coordinates of id's parent; for the root widget, or Broadcast,
// that is window coordinates. The responder's transform maps the same
// space into the responder's own coordinates.
//
// Children are tested topmost first and the deepest responder wins. A node
// that absorbs the hit hides its children; a node that hits without a
// responding descendant becomes the responder if it asked to.
func (t *RenderTree) HitTest(id tree.ID, location graphics.Point) (EventResponder, bool) {
	if id == Broadcast {
		id = t.root
	}
	return t.hitTestWidget(id, location)
}

func (t *RenderTree) hitTestWidget(id tree.ID, location graphics.Point) (EventResponder, bool) {
	widget, ok := t.widgets.Node(id)
	if !ok {
		return EventResponder{}, false
	}
	state, ok := t.states[id]
	if !ok || !state.hasSize {
		errors.Violation("core.HitTest", "node %d hit tested before layout", id)
		return EventResponder{}, false
	}

	toLocal := graphics.Translation(-state.offset.X, -state.offset.Y)
	local := toLocal.MapPoint(location)
	hit := NewHitTestContext(state.size, local)
	if !widget.HitTest(state.context, hit) {
		return EventResponder{}, false
	}

	if !hit.absorb {
		childLocation := hit.transform.MapPoint(local)
		children := t.Children(id)
		for _, child := range slices.Backward(children) {
			if responder, ok := t.hitTestWidget(child, childLocation); ok {
				responder.push(hit.transform.Multiply(toLocal))
				return responder, true
			}
		}
	}

	if !hit.becomeResponder {
		return EventResponder{}, false
	}
	responder := NewEventResponder(id)
	responder.transform = toLocal
	if hit.hasCursor {
		responder.cursor, responder.hasCursor = hit.cursor, true
	} else {
		responder.cursor, responder.hasCursor = state.context.Cursor()
	}
	return responder, true
}
