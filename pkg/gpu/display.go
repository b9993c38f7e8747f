// Package gpu runs the render side of the engine: a dedicated goroutine
// that owns the display surface, composites submitted frames, and manages
// externally rendered textures. The UI side talks to it only through a
// SharedPipeline.
package gpu

import (
	"image"

	"github.com/terramach/terramach/pkg/graphics"
)

// Surface is a drawable target created by a Display.
type Surface interface {
	// Canvas returns the canvas that draws into the surface.
	Canvas() graphics.Canvas
	// Size returns the surface size.
	Size() graphics.Size
	// Flush completes pending drawing.
	Flush()
	// Snapshot returns the current contents as an image.
	Snapshot() image.Image
}

// Display is implemented per platform backend. The render goroutine is the
// only caller once a Pipeline is running.
type Display interface {
	Size() graphics.Size
	Resize(size graphics.Size)
	NewSurface() (Surface, error)
	NewOffscreenSurface(size graphics.Size) (Surface, error)
	ClearCurrent()
	MakeCurrent()
	PresentCurrent()
}

// GPUContextProvider is implemented by displays backed by a GPU context.
// Render textures receive the context through their PrerollContext.
type GPUContextProvider interface {
	GPUContext() any
}

// VSync blocks until the display is ready for the next frame.
type VSync interface {
	Wait() error
}
