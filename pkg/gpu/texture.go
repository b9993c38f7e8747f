package gpu

import (
	"fmt"
	"image"

	"github.com/terramach/terramach/pkg/graphics"
)

// TextureID identifies a registered texture.
type TextureID int

// RenderTexture is implemented by widgets that draw into their own
// off-screen surface, such as an embedded map or video.
type RenderTexture interface {
	// Preroll is called once per size change, before the first Render at
	// that size.
	Preroll(preroll *PrerollContext)
	// Update synchronizes state outside of frame rendering.
	Update(update *TextureContext)
	// Render draws into the off-screen surface.
	Render(render *RenderContext)
}

// PrerollContext is passed to RenderTexture.Preroll.
type PrerollContext struct {
	texture    TextureID
	size       graphics.Size
	pipeline   *SharedPipeline
	gpuContext any
}

// Texture returns the ID of the texture being prerolled.
func (p *PrerollContext) Texture() TextureID { return p.texture }

// Size returns the new texture size.
func (p *PrerollContext) Size() graphics.Size { return p.size }

// Pipeline returns a handle that can request updates for this texture.
func (p *PrerollContext) Pipeline() *SharedPipeline { return p.pipeline }

// GPUContext returns the display's GPU context, or nil for CPU displays.
func (p *PrerollContext) GPUContext() any { return p.gpuContext }

// TextureContext is passed to RenderTexture.Update.
type TextureContext struct {
	texture  TextureID
	pipeline *SharedPipeline
}

// Texture returns the ID of the texture being updated.
func (t *TextureContext) Texture() TextureID { return t.texture }

// Invalidate schedules the texture to be rendered again.
func (t *TextureContext) Invalidate() {
	t.pipeline.InvalidateTexture(t.texture)
}

// RenderContext is passed to RenderTexture.Render.
type RenderContext struct {
	canvas graphics.Canvas
	size   graphics.Size
}

// Canvas returns the canvas of the off-screen surface.
func (r *RenderContext) Canvas() graphics.Canvas { return r.canvas }

// Size returns the texture size.
func (r *RenderContext) Size() graphics.Size { return r.size }

// Texture binds a RenderTexture to its off-screen surface. It lives on the
// render goroutine.
type Texture struct {
	id          TextureID
	render      RenderTexture
	display     Display
	pipeline    *SharedPipeline
	surface     Surface
	size        graphics.Size
	image       image.Image
	needPreroll bool
	needRender  bool
	needUpdate  bool
}

func newTexture(id TextureID, render RenderTexture, display Display, pipeline *SharedPipeline) *Texture {
	return &Texture{
		id:          id,
		render:      render,
		display:     display,
		pipeline:    pipeline,
		needPreroll: true,
		needRender:  true,
	}
}

// ID returns the texture ID.
func (t *Texture) ID() TextureID {
	return t.id
}

// NeedsRender reports whether the next Draw renders again.
func (t *Texture) NeedsRender() bool {
	return t.needRender
}

// MarkNeedRender schedules a render on the next Draw.
func (t *Texture) MarkNeedRender() {
	t.needRender = true
}

// Update runs RenderTexture.Update, or defers it until after the first
// preroll.
func (t *Texture) Update() {
	if t.needPreroll {
		t.needUpdate = true
		return
	}
	t.needUpdate = false
	t.render.Update(&TextureContext{texture: t.id, pipeline: t.pipeline})
}

// Preroll allocates the off-screen surface for size. It is a no-op when the
// size is unchanged.
func (t *Texture) Preroll(size graphics.Size) error {
	if !t.needPreroll && size == t.size {
		return nil
	}
	if size.IsEmpty() {
		return fmt.Errorf("texture %d: empty size %v", t.id, size)
	}
	surface, err := t.display.NewOffscreenSurface(size)
	if err != nil {
		return fmt.Errorf("texture %d: offscreen surface: %w", t.id, err)
	}
	t.surface = surface
	t.size = size
	preroll := &PrerollContext{texture: t.id, size: size, pipeline: t.pipeline}
	if p, ok := t.display.(GPUContextProvider); ok {
		preroll.gpuContext = p.GPUContext()
	}
	t.render.Preroll(preroll)
	t.needPreroll = false
	t.needRender = true
	if t.needUpdate {
		t.Update()
	}
	return nil
}

// Draw renders the texture if needed and draws its latest image at the
// canvas origin.
func (t *Texture) Draw(canvas graphics.Canvas) {
	if t.surface == nil {
		return
	}
	if t.needRender {
		surfaceCanvas := t.surface.Canvas()
		surfaceCanvas.Clear(graphics.ColorTransparent)
		t.render.Render(&RenderContext{canvas: surfaceCanvas, size: t.size})
		t.surface.Flush()
		t.image = t.surface.Snapshot()
		t.needRender = false
	}
	if t.image != nil {
		canvas.DrawImage(t.image, graphics.Point{})
	}
}
