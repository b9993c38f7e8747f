package gpu

import (
	"github.com/terramach/terramach/pkg/errors"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/logging"
)

// TextureRegistry holds the textures known to the render goroutine.
type TextureRegistry struct {
	textures map[TextureID]*Texture
}

// NewTextureRegistry returns an empty registry.
func NewTextureRegistry() *TextureRegistry {
	return &TextureRegistry{textures: make(map[TextureID]*Texture)}
}

// Register adds texture. Registering an ID twice is a contract violation.
func (r *TextureRegistry) Register(texture *Texture) {
	if _, exists := r.textures[texture.id]; exists {
		errors.Violation("gpu.TextureRegistry.Register", "texture %d already registered", texture.id)
		return
	}
	r.textures[texture.id] = texture
}

// Unregister removes id and reports whether it was present.
func (r *TextureRegistry) Unregister(id TextureID) bool {
	if _, ok := r.textures[id]; !ok {
		return false
	}
	delete(r.textures, id)
	return true
}

// Texture returns the texture registered under id.
func (r *TextureRegistry) Texture(id TextureID) (*Texture, bool) {
	t, ok := r.textures[id]
	return t, ok
}

// Len returns the number of registered textures.
func (r *TextureRegistry) Len() int {
	return len(r.textures)
}

// DrawTexture prerolls texture id for size and draws it. Unknown IDs are
// skipped; failures are reported and the texture is not drawn.
func (r *TextureRegistry) DrawTexture(id TextureID, canvas graphics.Canvas, size graphics.Size) {
	t, ok := r.textures[id]
	if !ok {
		logging.Logger().Debug("draw of unknown texture", "texture", int(id))
		return
	}
	if err := t.Preroll(size); err != nil {
		errors.Report(&errors.TerraError{
			Op:   "gpu.TextureRegistry.DrawTexture",
			Kind: errors.KindTexture,
			Err:  err,
		})
		return
	}
	t.Draw(canvas)
}
