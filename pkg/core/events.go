package core

import (
	"maps"
	"slices"

	"github.com/terramach/terramach/pkg/errors"
	"github.com/terramach/terramach/pkg/event"
	"github.com/terramach/terramach/pkg/tree"
)

// EmitEvent delivers ev to id. While a handler marks the event with
// MarkNeedEvent it is passed on to the parent. Afterwards the event queues
// of id and its ancestors are drained, bottom-up.
//
// Sending to Broadcast delivers an event.Frame to every node that called
// RequestFrame since the last frame. Broadcasting anything else is a
// contract violation.
func (t *RenderTree) EmitEvent(id tree.ID, ev event.Event) {
	if id == Broadcast {
		frame, ok := ev.(event.Frame)
		if !ok {
			errors.Violation("core.EmitEvent", "%T cannot be broadcast", ev)
			return
		}
		t.emitFrame(frame)
		return
	}
	target := id
	for t.emitDirect(target, ev) {
		parent, ok := t.widgets.Parent(target)
		if !ok {
			break
		}
		target = parent
	}
	t.emitWidgetEvents(id)
}

// emitDirect runs the handler of id and schedules what it invalidated. It
// reports whether the event should continue to the parent.
func (t *RenderTree) emitDirect(id tree.ID, ev event.Event) bool {
	widget, ok := t.widgets.Node(id)
	if !ok {
		return false
	}
	state, ok := t.states[id]
	if !ok {
		return false
	}
	ctx := NewEventContext(ev)
	widget.Event(state.context, ctx)
	switch {
	case ctx.needBuild:
		t.invalidateBuild(id)
	case ctx.needLayout:
		t.invalidateLayout(id)
	case ctx.needPaint:
		t.invalidatePaint(id)
	}
	t.invalidateRequests(id)
	return ctx.needEvent
}

// emitWidgetEvents drains the queues of id and its ancestors. Events a
// handler emits into an ancestor's queue are picked up on the way up.
func (t *RenderTree) emitWidgetEvents(id tree.ID) {
	for {
		state, ok := t.states[id]
		if !ok {
			return
		}
		for _, queued := range state.events.Poll() {
			t.emitDirect(id, queued)
		}
		parent, ok := t.widgets.Parent(id)
		if !ok {
			return
		}
		id = parent
	}
}

func (t *RenderTree) emitFrame(frame event.Frame) {
	if len(t.requestedFrame) == 0 {
		return
	}
	ids := slices.Sorted(maps.Keys(t.requestedFrame))
	clear(t.requestedFrame)
	for _, id := range ids {
		state, ok := t.states[id]
		if !ok {
			continue
		}
		state.context.frameRequested = false
		t.EmitEvent(id, frame)
	}
}
