// Package software is a CPU display backend rasterizing with gg. It backs
// headless rendering, screenshots, and tests.
package software

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/gogpu/gg"

	"github.com/terramach/terramach/pkg/gpu"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/logging"
)

// Surface is a gg-backed raster surface.
type Surface struct {
	ctx    *gg.Context
	canvas *Canvas
	size   graphics.Size
}

// NewSurface allocates a surface of size, rounded up to whole pixels.
func NewSurface(size graphics.Size) (*Surface, error) {
	w, h := int(math.Ceil(size.Width)), int(math.Ceil(size.Height))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("software surface: invalid size %v", size)
	}
	ctx := gg.NewContext(w, h)
	return &Surface{ctx: ctx, canvas: NewCanvas(ctx), size: size}, nil
}

func (s *Surface) Canvas() graphics.Canvas { return s.canvas }
func (s *Surface) Size() graphics.Size     { return s.size }

// Flush completes queued accelerator work, if any.
func (s *Surface) Flush() {
	if err := s.ctx.FlushGPU(); err != nil {
		logging.Logger().Warn("surface flush failed", "err", err)
	}
}

// Snapshot returns a copy of the surface pixels.
func (s *Surface) Snapshot() image.Image {
	return s.ctx.Image()
}

// SavePNG writes the surface to path.
func (s *Surface) SavePNG(path string) error {
	return s.ctx.SavePNG(path)
}

// Close releases the gg context.
func (s *Surface) Close() error {
	return s.ctx.Close()
}

// Display is an in-memory window. Presenting copies the current surface
// into a front buffer that other goroutines can read.
type Display struct {
	mu        sync.Mutex
	size      graphics.Size
	current   *Surface
	front     image.Image
	presented int
}

var _ gpu.Display = (*Display)(nil)

// NewDisplay returns a display of size logical pixels.
func NewDisplay(size graphics.Size) *Display {
	return &Display{size: size}
}

func (d *Display) Size() graphics.Size {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.size
}

func (d *Display) Resize(size graphics.Size) {
	d.mu.Lock()
	d.size = size
	d.mu.Unlock()
	logging.Logger().Debug("software display resized", "size", size)
}

// NewSurface replaces the current surface with one of the display size.
func (d *Display) NewSurface() (gpu.Surface, error) {
	surface, err := NewSurface(d.Size())
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	old := d.current
	d.current = surface
	d.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return surface, nil
}

func (d *Display) NewOffscreenSurface(size graphics.Size) (gpu.Surface, error) {
	return NewSurface(size)
}

func (d *Display) MakeCurrent()  {}
func (d *Display) ClearCurrent() {}

// PresentCurrent copies the current surface to the front buffer.
func (d *Display) PresentCurrent() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return
	}
	d.front = d.current.Snapshot()
	d.presented++
}

// Front returns the last presented image, or nil before the first present.
func (d *Display) Front() image.Image {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.front
}

// Presented returns the number of presents so far.
func (d *Display) Presented() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.presented
}
