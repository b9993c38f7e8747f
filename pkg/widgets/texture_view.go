package widgets

import (
	"github.com/terramach/terramach/pkg/core"
	"github.com/terramach/terramach/pkg/gpu"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/layers"
	"github.com/terramach/terramach/pkg/layout"
)

// TextureView shows an off-screen texture rendered on the render goroutine.
// The texture is registered when the view mounts and released when it is
// removed from the tree. TextureView fills bounded constraints.
type TextureView struct {
	core.WidgetBase
	Texture gpu.RenderTexture
}

type textureViewState struct {
	handle core.WidgetTexture
}

func (v TextureView) Mount(ctx *core.WidgetContext, mount *core.MountContext) {
	state := core.UseState[textureViewState](ctx, nil)
	if v.Texture != nil {
		state.handle = mount.RegisterTexture(v.Texture)
	}
}

// Update forwards to the texture's Update on the render goroutine.
func (v TextureView) Update(ctx *core.WidgetContext, _ *core.UpdateContext) {
	if state, ok := core.StateOf[textureViewState](ctx); ok {
		state.handle.Update()
	}
}

func (v TextureView) Layout(_ *core.WidgetContext, l *layout.Context) graphics.Size {
	return expand(l.Constraints())
}

func (v TextureView) Paint(ctx *core.WidgetContext, paint *layers.PaintContext) {
	state, ok := core.StateOf[textureViewState](ctx)
	if !ok || v.Texture == nil {
		return
	}
	paint.PushTexture(state.handle.ID())
}
