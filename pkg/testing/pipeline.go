package testing

import (
	"sync"

	"github.com/terramach/terramach/pkg/gpu"
	"github.com/terramach/terramach/pkg/layers"
)

var _ gpu.Submitter = (*RecordingPipeline)(nil)

// RecordingPipeline stands in for the render goroutine. It keeps every
// submitted frame and the texture registry instead of drawing.
type RecordingPipeline struct {
	mu       sync.Mutex
	frames   []gpu.Frame
	textures map[gpu.TextureID]gpu.RenderTexture
	updates  map[gpu.TextureID]int
	redraws  map[gpu.TextureID]int
}

// NewRecordingPipeline returns an empty recorder.
func NewRecordingPipeline() *RecordingPipeline {
	return &RecordingPipeline{
		textures: make(map[gpu.TextureID]gpu.RenderTexture),
		updates:  make(map[gpu.TextureID]int),
		redraws:  make(map[gpu.TextureID]int),
	}
}

func (p *RecordingPipeline) SubmitFrame(frame gpu.Frame) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames = append(p.frames, frame)
}

func (p *RecordingPipeline) RegisterTexture(id gpu.TextureID, texture gpu.RenderTexture) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.textures[id] = texture
}

func (p *RecordingPipeline) UpdateTexture(id gpu.TextureID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates[id]++
}

func (p *RecordingPipeline) InvalidateTexture(id gpu.TextureID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.redraws[id]++
}

func (p *RecordingPipeline) UnregisterTexture(id gpu.TextureID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.textures, id)
}

// FrameCount returns the number of submitted frames.
func (p *RecordingPipeline) FrameCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.frames)
}

// LastScene returns the layer tree of the latest frame.
func (p *RecordingPipeline) LastScene() (*layers.LayerTree, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.frames) == 0 {
		return nil, false
	}
	scene, ok := p.frames[len(p.frames)-1].Scene().(*layers.LayerTree)
	return scene, ok
}

// Texture returns the texture registered under id.
func (p *RecordingPipeline) Texture(id gpu.TextureID) (gpu.RenderTexture, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	texture, ok := p.textures[id]
	return texture, ok
}

// TextureCount returns the number of registered textures.
func (p *RecordingPipeline) TextureCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.textures)
}

// Updates returns how often UpdateTexture was called for id.
func (p *RecordingPipeline) Updates(id gpu.TextureID) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.updates[id]
}

// Invalidations returns how often InvalidateTexture was called for id.
func (p *RecordingPipeline) Invalidations(id gpu.TextureID) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.redraws[id]
}
