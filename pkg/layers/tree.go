package layers

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/terramach/terramach/pkg/gpu"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/tree"
)

// LayerKey records the layers one widget inserted during the last paint.
type LayerKey struct {
	Size graphics.Size
	// Layers were inserted before the widget's children.
	Layers []tree.ID
	// LeafLayers were inserted after the widget's children and draw on top
	// of them.
	LeafLayers []tree.ID
}

// LayerTree is the composited scene. Keys are widget IDs; the tree itself
// uses its own layer IDs.
type LayerTree struct {
	tree     *tree.Tree[Layer]
	keys     map[tree.ID]*LayerKey
	layerKey map[tree.ID]tree.ID
}

var _ gpu.Scene = (*LayerTree)(nil)

// NewLayerTree returns an empty layer tree.
func NewLayerTree() *LayerTree {
	return &LayerTree{
		tree:     tree.New[Layer](),
		keys:     make(map[tree.ID]*LayerKey),
		layerKey: make(map[tree.ID]tree.ID),
	}
}

// Len returns the number of layers.
func (t *LayerTree) Len() int {
	return t.tree.Len()
}

// Insert adds layer under parent (tree.Root for the top level) on behalf of
// widget key and returns the layer ID.
func (t *LayerTree) Insert(key tree.ID, size graphics.Size, layer Layer, parent tree.ID) tree.ID {
	id := t.tree.Insert(layer, parent)
	k := t.key(key, size)
	k.Layers = append(k.Layers, id)
	t.layerKey[id] = key
	return id
}

// InsertLeaf is like Insert but records the layer as drawn above the
// widget's children.
func (t *LayerTree) InsertLeaf(key tree.ID, size graphics.Size, layer Layer, parent tree.ID) tree.ID {
	id := t.tree.Insert(layer, parent)
	k := t.key(key, size)
	k.LeafLayers = append(k.LeafLayers, id)
	t.layerKey[id] = key
	return id
}

func (t *LayerTree) key(key tree.ID, size graphics.Size) *LayerKey {
	k, ok := t.keys[key]
	if !ok {
		k = &LayerKey{}
		t.keys[key] = k
	}
	k.Size = size
	return k
}

// Key returns the key recorded for widget key.
func (t *LayerTree) Key(key tree.ID) (LayerKey, bool) {
	k, ok := t.keys[key]
	if !ok {
		return LayerKey{}, false
	}
	return *k, true
}

// KeyLayers returns the layers inserted before the children of widget key.
func (t *LayerTree) KeyLayers(key tree.ID) ([]tree.ID, bool) {
	k, ok := t.keys[key]
	if !ok {
		return nil, false
	}
	return k.Layers, true
}

// DropKeyLayer removes every layer of widget key, their subtrees, and the
// keys of any widget whose layers were nested below them.
func (t *LayerTree) DropKeyLayer(key tree.ID) {
	k, ok := t.keys[key]
	if !ok {
		return
	}
	delete(t.keys, key)
	for _, id := range slices.Concat(k.Layers, k.LeafLayers) {
		delete(t.layerKey, id)
		for _, removed := range t.tree.RemoveAll(id) {
			if nested, ok := t.layerKey[removed]; ok {
				delete(t.layerKey, removed)
				t.DropKeyLayer(nested)
			}
		}
	}
}

// ParentKeyLayer returns the layer children of widget key attach to: the
// last layer it inserted before its children.
func (t *LayerTree) ParentKeyLayer(key tree.ID) (tree.ID, bool) {
	k, ok := t.keys[key]
	if !ok || len(k.Layers) == 0 {
		return tree.Root, false
	}
	return k.Layers[len(k.Layers)-1], true
}

// Layer returns the layer with id.
func (t *LayerTree) Layer(id tree.ID) (Layer, bool) {
	return t.tree.Node(id)
}

// Draw composites the tree onto canvas.
func (t *LayerTree) Draw(canvas graphics.Canvas, size graphics.Size, textures gpu.TextureDrawer) {
	children, _ := t.tree.Children(tree.Root)
	for _, child := range children {
		t.drawLayer(canvas, textures, child)
	}
}

func (t *LayerTree) drawLayer(canvas graphics.Canvas, textures gpu.TextureDrawer, id tree.ID) {
	layer, ok := t.tree.Node(id)
	if !ok {
		return
	}
	var size graphics.Size
	if k, ok := t.keys[t.layerKey[id]]; ok {
		size = k.Size
	}
	layer.Draw(NewDrawContext(size, canvas, textures, func() {
		children, _ := t.tree.Children(id)
		for _, child := range children {
			t.drawLayer(canvas, textures, child)
		}
	}))
}

// Clone returns an independent copy. Layers themselves are shared, which is
// safe because they are immutable.
func (t *LayerTree) Clone() *LayerTree {
	c := &LayerTree{
		tree:     t.tree.Clone(),
		keys:     make(map[tree.ID]*LayerKey, len(t.keys)),
		layerKey: maps.Clone(t.layerKey),
	}
	for id, k := range t.keys {
		c.keys[id] = &LayerKey{
			Size:       k.Size,
			Layers:     slices.Clone(k.Layers),
			LeafLayers: slices.Clone(k.LeafLayers),
		}
	}
	return c
}

// Walk visits the layers depth-first with the widget that inserted each.
// Returning false from fn skips the layer's children.
func (t *LayerTree) Walk(fn func(layer Layer, widget tree.ID, depth int) bool) {
	t.tree.Walk(tree.Root, func(id tree.ID, depth int) bool {
		layer, _ := t.tree.Node(id)
		return fn(layer, t.layerKey[id], depth)
	})
}

// Dump writes an indented description of the tree to w.
func (t *LayerTree) Dump(w io.Writer) error {
	var err error
	t.tree.Walk(tree.Root, func(id tree.ID, depth int) bool {
		if err != nil {
			return false
		}
		layer, _ := t.tree.Node(id)
		_, err = fmt.Fprintf(w, "%s%v [widget %d]\n", strings.Repeat("  ", depth), layer, t.layerKey[id])
		return true
	})
	return err
}
