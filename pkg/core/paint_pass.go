package core

import (
	"github.com/terramach/terramach/pkg/errors"
	"github.com/terramach/terramach/pkg/layers"
	"github.com/terramach/terramach/pkg/tree"
)

// paintWidget re-inserts the layers of id and its subtree into the layer
// tree, repainting the nodes marked dirty. Every node is visited so the
// layer tree mirrors the widget order.
func (t *RenderTree) paintWidget(id tree.ID, painted *int) {
	state, ok := t.states[id]
	if !ok {
		return
	}
	if !state.hasSize {
		errors.Violation("core.Paint", "node %d painted before layout", id)
		return
	}
	size := state.size

	t.layerTree.DropKeyLayer(id)

	if state.needPaint {
		widget, _ := t.widgets.Node(id)
		paint := layers.NewPaintContext(size)
		widget.Paint(state.context, paint)
		t.invalidateRequests(id)
		state.needPaint = false
		state.layer = paint.Layers()
		state.leafLayer = paint.LeafLayers()
		*painted++
	}

	parent := t.widgetParentLayer(id)
	if !state.offset.IsZero() {
		parent = t.layerTree.Insert(id, size, layers.OffsetLayer{Offset: state.offset}, parent)
	}
	if state.layer != nil {
		t.layerTree.Insert(id, size, state.layer, parent)
	}
	for _, child := range t.Children(id) {
		t.paintWidget(child, painted)
	}
	if state.leafLayer != nil {
		t.layerTree.InsertLeaf(id, size, state.leafLayer, parent)
	}
}

// widgetParentLayer returns the layer the layers of id attach to: the last
// layer inserted by the nearest ancestor that has one.
func (t *RenderTree) widgetParentLayer(id tree.ID) tree.ID {
	for {
		parent, ok := t.widgets.Parent(id)
		if !ok {
			return tree.Root
		}
		if layer, ok := t.layerTree.ParentKeyLayer(parent); ok {
			return layer
		}
		id = parent
	}
}
