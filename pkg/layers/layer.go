// Package layers holds the retained output of the paint pass. Widgets push
// layers into a PaintContext; the render tree arranges them in a LayerTree,
// which the render goroutine draws.
package layers

import (
	"fmt"

	"github.com/terramach/terramach/pkg/gpu"
	"github.com/terramach/terramach/pkg/graphics"
)

// Layer draws itself and then, usually, its children through the
// DrawContext. Layers are immutable once inserted into a LayerTree.
type Layer interface {
	Draw(draw *DrawContext)
}

// ContainerLayer chains a sequence of layers; each one wraps the rest and
// the container's children in the tree.
type ContainerLayer struct {
	layers []Layer
}

// NewContainerLayer returns a container holding layers in order.
func NewContainerLayer(layers ...Layer) *ContainerLayer {
	return &ContainerLayer{layers: layers}
}

// Push appends layer.
func (c *ContainerLayer) Push(layer Layer) {
	c.layers = append(c.layers, layer)
}

// Len returns the number of contained layers.
func (c *ContainerLayer) Len() int {
	return len(c.layers)
}

// IsEmpty reports whether the container holds no layers.
func (c *ContainerLayer) IsEmpty() bool {
	return len(c.layers) == 0
}

// Layers returns the contained layers. The slice must not be modified.
func (c *ContainerLayer) Layers() []Layer {
	return c.layers
}

func (c *ContainerLayer) Draw(draw *DrawContext) {
	draw.DrawChildrenWithLayers(c.layers)
}

func (c *ContainerLayer) String() string {
	return fmt.Sprintf("ContainerLayer%v", c.layers)
}

// OffsetLayer translates its children.
type OffsetLayer struct {
	Offset graphics.Point
}

func (l OffsetLayer) Draw(draw *DrawContext) {
	canvas := draw.Canvas()
	canvas.Save()
	canvas.Translate(l.Offset.X, l.Offset.Y)
	draw.DrawChildren()
	canvas.Restore()
}

func (l OffsetLayer) String() string {
	return fmt.Sprintf("Offset(%g, %g)", l.Offset.X, l.Offset.Y)
}

// ClipRectLayer clips its children to a rectangle.
type ClipRectLayer struct {
	Rect graphics.Rect
}

func (l ClipRectLayer) Draw(draw *DrawContext) {
	canvas := draw.Canvas()
	canvas.Save()
	canvas.ClipRect(l.Rect)
	draw.DrawChildren()
	canvas.Restore()
}

func (l ClipRectLayer) String() string {
	return fmt.Sprintf("ClipRect(%g, %g, %g, %g)", l.Rect.Left, l.Rect.Top, l.Rect.Width(), l.Rect.Height())
}

// ClipRRectLayer clips its children to a rounded rectangle.
type ClipRRectLayer struct {
	RRect graphics.RRect
}

func (l ClipRRectLayer) Draw(draw *DrawContext) {
	canvas := draw.Canvas()
	canvas.Save()
	canvas.ClipRRect(l.RRect)
	draw.DrawChildren()
	canvas.Restore()
}

func (l ClipRRectLayer) String() string {
	r := l.RRect.Rect
	return fmt.Sprintf("ClipRRect(%g, %g, %g, %g, r=%g)", r.Left, r.Top, r.Width(), r.Height(), l.RRect.Radius)
}

// OpacityLayer composites its children with an alpha between 0 and 1.
type OpacityLayer struct {
	Opacity float64
}

func (l OpacityLayer) Draw(draw *DrawContext) {
	canvas := draw.Canvas()
	canvas.SaveLayerAlpha(l.Opacity)
	draw.DrawChildren()
	canvas.Restore()
}

func (l OpacityLayer) String() string {
	return fmt.Sprintf("Opacity(%g)", l.Opacity)
}

// PictureLayer replays a recorded picture below its children.
type PictureLayer struct {
	Picture *graphics.Picture
}

func (l PictureLayer) Draw(draw *DrawContext) {
	if l.Picture != nil {
		l.Picture.Playback(draw.Canvas())
	}
	draw.DrawChildren()
}

func (l PictureLayer) String() string {
	if l.Picture == nil {
		return "Picture(empty)"
	}
	return fmt.Sprintf("Picture(%d ops)", l.Picture.Len())
}

// TextureLayer draws a registered texture at the layer's size.
type TextureLayer struct {
	Texture gpu.TextureID
}

func (l TextureLayer) Draw(draw *DrawContext) {
	draw.DrawTexture(l.Texture)
	draw.DrawChildren()
}

func (l TextureLayer) String() string {
	return fmt.Sprintf("Texture(%d)", l.Texture)
}
