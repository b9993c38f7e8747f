// Package core holds the widget contract and the render tree that drives it.
//
// # Widgets
//
// A Widget is a plain Go value describing one node of the UI. Widgets are
// recreated freely; the RenderTree keeps one persistent node per position
// and reconciles each new value against the old one. Widgets embed
// WidgetBase to pick up default behavior and override what they need:
//
//	type Counter struct {
//	    core.WidgetBase
//	    Label string
//	}
//
//	func (c Counter) Build(ctx *core.WidgetContext, build *core.BuildContext) {
//	    count := core.UseState(ctx, func() int { return 0 })
//	    build.Add(widgets.Text{Content: fmt.Sprintf("%s: %d", c.Label, *count)})
//	}
//
// # Per-node state
//
// Everything that must survive a rebuild lives in the node's WidgetContext:
// the boxed state value, timers, frame requests and the cursor. The widget
// value itself is replaced on every build.
//
// # Rendering
//
// RenderTree.Render runs three passes over the dirty parts of the tree:
//
//  1. Build reconciles new child lists positionally, keeping node IDs and
//     state when the widget type matches.
//  2. Layout passes constraints down and sizes up, reusing cached sizes of
//     clean nodes.
//  3. Paint records each dirty node into layers and submits a snapshot of
//     the layer tree to the pipeline.
//
// Events are delivered with EmitEvent. A handler marks what it invalidated
// through its EventContext, which schedules the matching pass.
package core
