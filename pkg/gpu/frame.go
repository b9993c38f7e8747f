package gpu

import "github.com/terramach/terramach/pkg/graphics"

// TextureDrawer draws registered textures on behalf of a Scene.
type TextureDrawer interface {
	DrawTexture(id TextureID, canvas graphics.Canvas, size graphics.Size)
}

// Scene is an immutable snapshot that can be composited onto a canvas.
type Scene interface {
	Draw(canvas graphics.Canvas, size graphics.Size, textures TextureDrawer)
}

// Frame is one complete scene submitted to the render goroutine.
type Frame struct {
	scene Scene
}

// NewFrame wraps scene. The scene must not be mutated after submission.
func NewFrame(scene Scene) Frame {
	return Frame{scene: scene}
}

// Scene returns the wrapped scene.
func (f Frame) Scene() Scene {
	return f.scene
}

// Draw composites the frame onto canvas.
func (f Frame) Draw(canvas graphics.Canvas, size graphics.Size, textures TextureDrawer) {
	if f.scene == nil {
		return
	}
	f.scene.Draw(canvas, size, textures)
}
