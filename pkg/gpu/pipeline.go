package gpu

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/terramach/terramach/pkg/errors"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/logging"
)

// Submitter is the UI-side view of the pipeline used by the render tree.
type Submitter interface {
	SubmitFrame(frame Frame)
	RegisterTexture(id TextureID, texture RenderTexture)
	UpdateTexture(id TextureID)
	InvalidateTexture(id TextureID)
	UnregisterTexture(id TextureID)
}

// Pipeline owns the render goroutine's state. Create it with NewPipeline,
// start Run on its own goroutine, and hand Share() to the UI side.
type Pipeline struct {
	queue    *commandQueue
	vsync    VSync
	display  Display
	textures *TextureRegistry
	frames   atomic.Int64
}

// NewPipeline returns a pipeline drawing to display at the pace of vsync.
func NewPipeline(vsync VSync, display Display) *Pipeline {
	return &Pipeline{
		queue:    newCommandQueue(),
		vsync:    vsync,
		display:  display,
		textures: NewTextureRegistry(),
	}
}

// Share returns a sender handle for the UI side.
func (p *Pipeline) Share() *SharedPipeline {
	return &SharedPipeline{queue: p.queue}
}

// Resize requests a new surface of size.
func (p *Pipeline) Resize(size graphics.Size) {
	p.queue.push(resizeCommand{size: size})
}

// Close asks the render goroutine to finish its current batch and return.
func (p *Pipeline) Close() {
	p.queue.push(terminateCommand{})
}

// FramesDrawn returns how many frames were presented so far.
func (p *Pipeline) FramesDrawn() int64 {
	return p.frames.Load()
}

// Run is the render loop. It returns nil after Close or when ctx is done,
// and an error if the display or vsync fails.
func (p *Pipeline) Run(ctx context.Context) (err error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer p.queue.close()
	defer errors.RecoverWithCallback("gpu.Pipeline.Run", func(r any) {
		err = &errors.PanicError{Op: "gpu.Pipeline.Run", Value: r, Timestamp: time.Now()}
	})

	log := logging.Logger()
	p.display.MakeCurrent()
	defer p.display.ClearCurrent()

	surface, err := p.display.NewSurface()
	if err != nil {
		return &errors.TerraError{Op: "gpu.Pipeline.Run", Kind: errors.KindPipeline, Err: err}
	}
	log.Info("render pipeline started", "size", p.display.Size())

	var frame *Frame
	for {
		batch, ok := p.queue.wait(ctx)
		if !ok {
			log.Info("render pipeline stopped")
			return nil
		}
		if err := p.vsync.Wait(); err != nil {
			return &errors.TerraError{Op: "gpu.Pipeline.Run", Kind: errors.KindPipeline, Err: err}
		}
		batch = append(batch, p.queue.drain()...)

		draw, recreate, terminate := false, false, false
		for _, cmd := range batch {
			switch c := cmd.(type) {
			case terminateCommand:
				terminate = true
			case pushCommand:
				frame = &c.frame
				draw = true
			case resizeCommand:
				p.display.Resize(c.size)
				recreate = true
				draw = true
			case registerTextureCommand:
				p.textures.Register(newTexture(c.id, c.texture, p.display, p.Share()))
				draw = true
			case invalidateTextureCommand:
				if t, ok := p.textures.Texture(c.id); ok {
					t.MarkNeedRender()
					draw = true
				}
			case updateTextureCommand:
				if t, ok := p.textures.Texture(c.id); ok {
					t.Update()
				}
			case unregisterTextureCommand:
				if p.textures.Unregister(c.id) {
					draw = true
				}
			}
		}
		log.Debug("pipeline batch", "commands", len(batch), "draw", draw, "resize", recreate)

		if recreate {
			surface, err = p.display.NewSurface()
			if err != nil {
				return &errors.TerraError{Op: "gpu.Pipeline.Run", Kind: errors.KindPipeline, Err: err}
			}
			log.Debug("surface recreated", "size", p.display.Size())
		}
		if draw && frame != nil {
			canvas := surface.Canvas()
			canvas.Clear(graphics.ColorTransparent)
			frame.Draw(canvas, p.display.Size(), p.textures)
			surface.Flush()
			p.display.PresentCurrent()
			p.frames.Add(1)
		}
		if terminate {
			log.Info("render pipeline terminated")
			return nil
		}
	}
}

// SharedPipeline sends commands to a running Pipeline. It is safe for
// concurrent use; sends after the pipeline stopped are dropped.
type SharedPipeline struct {
	queue *commandQueue
}

// SubmitFrame queues frame for compositing. Older queued frames are
// superseded.
func (s *SharedPipeline) SubmitFrame(frame Frame) {
	s.queue.push(pushCommand{frame: frame})
}

// RegisterTexture hands texture to the render goroutine under id.
func (s *SharedPipeline) RegisterTexture(id TextureID, texture RenderTexture) {
	s.queue.push(registerTextureCommand{id: id, texture: texture})
}

// UpdateTexture asks the texture to synchronize its state.
func (s *SharedPipeline) UpdateTexture(id TextureID) {
	s.queue.push(updateTextureCommand{id: id})
}

// InvalidateTexture schedules the texture to render again.
func (s *SharedPipeline) InvalidateTexture(id TextureID) {
	s.queue.push(invalidateTextureCommand{id: id})
}

// UnregisterTexture releases the texture.
func (s *SharedPipeline) UnregisterTexture(id TextureID) {
	s.queue.push(unregisterTextureCommand{id: id})
}
