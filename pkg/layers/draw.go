package layers

import (
	"slices"

	"github.com/terramach/terramach/pkg/gpu"
	"github.com/terramach/terramach/pkg/graphics"
)

// DrawContext is handed to Layer.Draw. DrawChildren continues with the next
// chained layer, if any, and finally with the layer's children in the tree.
type DrawContext struct {
	size         graphics.Size
	canvas       graphics.Canvas
	textures     gpu.TextureDrawer
	drawChildren func()
	chain        []Layer
}

// NewDrawContext returns a context drawing onto canvas. drawChildren may be
// nil for layers without tree children.
func NewDrawContext(size graphics.Size, canvas graphics.Canvas, textures gpu.TextureDrawer, drawChildren func()) *DrawContext {
	return &DrawContext{
		size:         size,
		canvas:       canvas,
		textures:     textures,
		drawChildren: drawChildren,
	}
}

// Size returns the size of the widget that emitted the layer.
func (d *DrawContext) Size() graphics.Size {
	return d.size
}

// Canvas returns the target canvas.
func (d *DrawContext) Canvas() graphics.Canvas {
	return d.canvas
}

// DrawTexture draws texture id at the context size.
func (d *DrawContext) DrawTexture(id gpu.TextureID) {
	if d.textures == nil {
		return
	}
	d.textures.DrawTexture(id, d.canvas, d.size)
}

// DrawChildren draws whatever the current layer wraps.
func (d *DrawContext) DrawChildren() {
	if len(d.chain) > 0 {
		next := *d
		next.chain = d.chain[1:]
		d.chain[0].Draw(&next)
		return
	}
	if d.drawChildren != nil {
		d.drawChildren()
	}
}

// DrawChildrenWithLayers draws layers as a chain in front of the current
// children.
func (d *DrawContext) DrawChildrenWithLayers(layers []Layer) {
	next := *d
	next.chain = append(slices.Clone(d.chain), layers...)
	next.DrawChildren()
}
