package software

import (
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/logging"
)

// Canvas draws graphics commands into a gg.Context.
type Canvas struct {
	ctx    *gg.Context
	size   graphics.Size
	layers []bool
	faces  map[faceKey]text.Face
}

type faceKey struct {
	data *byte
	size float64
}

// NewCanvas wraps ctx. The canvas does not take ownership of ctx.
func NewCanvas(ctx *gg.Context) *Canvas {
	return &Canvas{
		ctx:   ctx,
		size:  graphics.Sz(float64(ctx.Width()), float64(ctx.Height())),
		faces: make(map[faceKey]text.Face),
	}
}

// Context returns the underlying gg context.
func (c *Canvas) Context() *gg.Context {
	return c.ctx
}

func (c *Canvas) Save() {
	c.ctx.Push()
	c.layers = append(c.layers, false)
}

func (c *Canvas) SaveLayerAlpha(alpha float64) {
	c.ctx.Push()
	c.ctx.PushLayer(gg.BlendNormal, alpha)
	c.layers = append(c.layers, true)
}

func (c *Canvas) Restore() {
	if len(c.layers) == 0 {
		return
	}
	layer := c.layers[len(c.layers)-1]
	c.layers = c.layers[:len(c.layers)-1]
	if layer {
		c.ctx.PopLayer()
	}
	c.ctx.Pop()
}

func (c *Canvas) Translate(dx, dy float64) { c.ctx.Translate(dx, dy) }
func (c *Canvas) Scale(sx, sy float64)     { c.ctx.Scale(sx, sy) }
func (c *Canvas) Rotate(radians float64)   { c.ctx.Rotate(radians) }

func (c *Canvas) ClipRect(rect graphics.Rect) {
	c.ctx.ClipRect(rect.Left, rect.Top, rect.Width(), rect.Height())
}

func (c *Canvas) ClipRRect(rrect graphics.RRect) {
	r := rrect.Rect
	c.ctx.ClearPath()
	c.ctx.DrawRoundedRectangle(r.Left, r.Top, r.Width(), r.Height(), rrect.Radius)
	c.ctx.Clip()
}

func (c *Canvas) Clear(color graphics.Color) {
	c.ctx.ClearWithColor(toRGBA(color))
}

func (c *Canvas) DrawRect(rect graphics.Rect, paint graphics.Paint) {
	c.ctx.ClearPath()
	c.ctx.DrawRectangle(rect.Left, rect.Top, rect.Width(), rect.Height())
	c.paint(paint)
}

func (c *Canvas) DrawRRect(rrect graphics.RRect, paint graphics.Paint) {
	r := rrect.Rect
	c.ctx.ClearPath()
	c.ctx.DrawRoundedRectangle(r.Left, r.Top, r.Width(), r.Height(), rrect.Radius)
	c.paint(paint)
}

// DrawText rasterizes text with a gg face matching font. The bitmap
// default font is drawn with Go Regular at the same size.
func (c *Canvas) DrawText(s string, origin graphics.Point, font *graphics.Font, color graphics.Color) {
	if font == nil {
		font = graphics.DefaultFont()
	}
	face := c.face(font)
	if face == nil {
		return
	}
	c.ctx.SetFont(face)
	c.setColor(color)
	// gg draws text in device space at the baseline.
	x, y := c.ctx.TransformPoint(origin.X, origin.Y+font.Ascent())
	c.ctx.DrawString(s, x, y)
}

func (c *Canvas) DrawImage(img image.Image, position graphics.Point) {
	if img == nil {
		return
	}
	c.ctx.DrawImage(gg.ImageBufFromImage(img), position.X, position.Y)
}

func (c *Canvas) Size() graphics.Size {
	return c.size
}

func (c *Canvas) paint(paint graphics.Paint) {
	c.setColor(paint.Color)
	var err error
	if paint.Style == graphics.PaintStyleStroke {
		c.ctx.SetLineWidth(paint.StrokeWidth)
		err = c.ctx.Stroke()
	} else {
		err = c.ctx.Fill()
	}
	if err != nil {
		logging.Logger().Warn("software canvas draw failed", "err", err)
	}
}

func (c *Canvas) setColor(color graphics.Color) {
	r, g, b, a := color.RGBAF()
	c.ctx.SetRGBA(r, g, b, a)
}

func (c *Canvas) face(font *graphics.Font) text.Face {
	data := font.Data()
	if len(data) == 0 {
		data = goregular.TTF
	}
	key := faceKey{data: &data[0], size: font.Size()}
	if face, ok := c.faces[key]; ok {
		return face
	}
	source, err := text.NewFontSource(data)
	if err != nil {
		logging.Logger().Warn("font source failed", "err", err)
		return nil
	}
	face := source.Face(font.Size())
	c.faces[key] = face
	return face
}

func toRGBA(color graphics.Color) gg.RGBA {
	r, g, b, a := color.RGBAF()
	return gg.RGBA{R: r, G: g, B: b, A: a}
}
