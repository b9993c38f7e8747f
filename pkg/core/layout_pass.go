package core

import (
	"github.com/terramach/terramach/pkg/errors"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/layout"
	"github.com/terramach/terramach/pkg/tree"
)

type layoutResult struct {
	size        graphics.Size
	constraints layout.Constraints
	offset      graphics.Point
	hasOffset   bool
}

// layoutWidget sizes id within constraints and records the result. A clean
// node laid out with the constraints it had last time keeps its cached size
// and its Layout is not called.
func (t *RenderTree) layoutWidget(id tree.ID, constraints layout.Constraints, results map[tree.ID]layoutResult, laidOut *int) (graphics.Size, bool) {
	state, ok := t.states[id]
	if !ok {
		return graphics.Size{}, false
	}
	if !state.needLayout && state.hasSize && state.hasConstraints && state.constraints == constraints {
		results[id] = layoutResult{size: state.size, constraints: constraints}
		return state.size, true
	}

	children := t.Children(id)
	ctx := layout.NewContext(constraints, len(children), func(index int, c layout.Constraints) (graphics.Size, bool) {
		return t.layoutWidget(children[index], c, results, laidOut)
	})
	widget, _ := t.widgets.Node(id)
	size := widget.Layout(state.context, ctx)
	*laidOut++

	offsets := ctx.ChildOffsets()
	for index, child := range children {
		if !ctx.WasLaidOut(index) {
			continue
		}
		result := results[child]
		result.offset, result.hasOffset = offsets[index], true
		results[child] = result
	}
	for index := range offsets {
		if !ctx.WasLaidOut(index) {
			errors.Violation("core.Layout", "node %d positioned child %d without laying it out", id, index)
		}
	}
	results[id] = layoutResult{size: size, constraints: constraints}
	return size, true
}
