package testing

import (
	"fmt"
	"image"
	"math"

	"github.com/terramach/terramach/pkg/gpu"
	"github.com/terramach/terramach/pkg/graphics"
)

// DisplayOp is one canvas call made while compositing a scene.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// serializingCanvas implements graphics.Canvas and gpu.TextureDrawer and
// records every call as a DisplayOp.
type serializingCanvas struct {
	ops  []DisplayOp
	size graphics.Size
}

var (
	_ graphics.Canvas   = (*serializingCanvas)(nil)
	_ gpu.TextureDrawer = (*serializingCanvas)(nil)
)

func (c *serializingCanvas) record(op string, kvs ...any) {
	var params map[string]any
	if len(kvs) > 0 {
		params = make(map[string]any, len(kvs)/2)
		for i := 0; i+1 < len(kvs); i += 2 {
			params[kvs[i].(string)] = kvs[i+1]
		}
	}
	c.ops = append(c.ops, DisplayOp{Op: op, Params: params})
}

func (c *serializingCanvas) Save() { c.record("save") }

func (c *serializingCanvas) SaveLayerAlpha(alpha float64) {
	c.record("saveLayerAlpha", "alpha", round2(alpha))
}

func (c *serializingCanvas) Restore() { c.record("restore") }

func (c *serializingCanvas) Translate(dx, dy float64) {
	c.record("translate", "dx", round2(dx), "dy", round2(dy))
}

func (c *serializingCanvas) Scale(sx, sy float64) {
	c.record("scale", "sx", round2(sx), "sy", round2(sy))
}

func (c *serializingCanvas) Rotate(radians float64) {
	c.record("rotate", "radians", round2(radians))
}

func (c *serializingCanvas) ClipRect(rect graphics.Rect) {
	c.record("clipRect", "rect", serializeRect(rect))
}

func (c *serializingCanvas) ClipRRect(rrect graphics.RRect) {
	c.record("clipRRect", "rect", serializeRect(rrect.Rect), "radius", round2(rrect.Radius))
}

func (c *serializingCanvas) Clear(color graphics.Color) {
	c.record("clear", "color", serializeColor(color))
}

func (c *serializingCanvas) DrawRect(rect graphics.Rect, paint graphics.Paint) {
	c.record("drawRect", "rect", serializeRect(rect), "color", serializeColor(paint.Color))
}

func (c *serializingCanvas) DrawRRect(rrect graphics.RRect, paint graphics.Paint) {
	c.record("drawRRect",
		"rect", serializeRect(rrect.Rect),
		"radius", round2(rrect.Radius),
		"color", serializeColor(paint.Color),
	)
}

func (c *serializingCanvas) DrawText(text string, origin graphics.Point, _ *graphics.Font, color graphics.Color) {
	c.record("drawText", "text", text, "x", round2(origin.X), "y", round2(origin.Y), "color", serializeColor(color))
}

func (c *serializingCanvas) DrawImage(img image.Image, position graphics.Point) {
	bounds := img.Bounds()
	c.record("drawImage",
		"x", round2(position.X), "y", round2(position.Y),
		"width", bounds.Dx(), "height", bounds.Dy(),
	)
}

func (c *serializingCanvas) Size() graphics.Size { return c.size }

func (c *serializingCanvas) DrawTexture(id gpu.TextureID, _ graphics.Canvas, size graphics.Size) {
	c.record("drawTexture", "id", int(id), "width", round2(size.Width), "height", round2(size.Height))
}

func serializeRect(r graphics.Rect) map[string]any {
	return map[string]any{
		"left":   round2(r.Left),
		"top":    round2(r.Top),
		"right":  round2(r.Right),
		"bottom": round2(r.Bottom),
	}
}

func serializeColor(c graphics.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
