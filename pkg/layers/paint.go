package layers

import (
	"github.com/terramach/terramach/pkg/gpu"
	"github.com/terramach/terramach/pkg/graphics"
)

// PaintContext collects the layers one widget emits during paint. Drawing
// through Canvas records a picture; pushing a layer or painting children
// flushes it into a PictureLayer first, so layers keep their order.
//
// Layers pushed before PaintChildren end up in Layers and wrap the
// children. Later ones end up in LeafLayers and draw above them.
type PaintContext struct {
	size            graphics.Size
	recorder        *graphics.PictureRecorder
	canvas          graphics.Canvas
	paintedChildren bool
	layer           *ContainerLayer
	leafLayer       *ContainerLayer
}

// NewPaintContext returns a context for a widget of size.
func NewPaintContext(size graphics.Size) *PaintContext {
	return &PaintContext{size: size}
}

// Size returns the widget size.
func (p *PaintContext) Size() graphics.Size {
	return p.size
}

// Canvas returns a recording canvas bounded by the widget size.
func (p *PaintContext) Canvas() graphics.Canvas {
	if p.recorder == nil {
		p.recorder = &graphics.PictureRecorder{}
		p.canvas = p.recorder.BeginRecording(graphics.RectFromSize(p.size))
	}
	return p.canvas
}

// Layers returns the layers drawn below the children, or nil.
func (p *PaintContext) Layers() *ContainerLayer {
	p.flush()
	return p.layer
}

// LeafLayers returns the layers drawn above the children, or nil.
func (p *PaintContext) LeafLayers() *ContainerLayer {
	p.flush()
	return p.leafLayer
}

// PushLayer appends layer after anything drawn so far.
func (p *PaintContext) PushLayer(layer Layer) {
	p.flush()
	p.push(layer)
}

// PushTexture draws texture id at the widget size.
func (p *PaintContext) PushTexture(id gpu.TextureID) {
	p.PushLayer(TextureLayer{Texture: id})
}

// PushOffset translates everything pushed afterwards.
func (p *PaintContext) PushOffset(offset graphics.Point) {
	p.PushLayer(OffsetLayer{Offset: offset})
}

// PushClipRect clips everything pushed afterwards.
func (p *PaintContext) PushClipRect(rect graphics.Rect) {
	p.PushLayer(ClipRectLayer{Rect: rect})
}

// PushClipRRect clips everything pushed afterwards to a rounded rectangle.
func (p *PaintContext) PushClipRRect(rrect graphics.RRect) {
	p.PushLayer(ClipRRectLayer{RRect: rrect})
}

// PushOpacity fades everything pushed afterwards.
func (p *PaintContext) PushOpacity(opacity float64) {
	p.PushLayer(OpacityLayer{Opacity: opacity})
}

// PaintChildren marks where the children are drawn.
func (p *PaintContext) PaintChildren() {
	p.flush()
	p.paintedChildren = true
}

func (p *PaintContext) flush() {
	if p.recorder == nil {
		return
	}
	picture := p.recorder.EndRecording()
	p.recorder = nil
	p.canvas = nil
	if picture != nil {
		p.push(PictureLayer{Picture: picture})
	}
}

func (p *PaintContext) push(layer Layer) {
	if p.paintedChildren {
		if p.leafLayer == nil {
			p.leafLayer = NewContainerLayer()
		}
		p.leafLayer.Push(layer)
		return
	}
	if p.layer == nil {
		p.layer = NewContainerLayer()
	}
	p.layer.Push(layer)
}
