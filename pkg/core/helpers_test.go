package core

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/terramach/terramach/pkg/errors"
	"github.com/terramach/terramach/pkg/gpu"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/layers"
	"github.com/terramach/terramach/pkg/layout"
	"github.com/terramach/terramach/pkg/timers"
	"github.com/terramach/terramach/pkg/tree"
)

var windowSize = graphics.Sz(200, 400)

type callLog struct {
	builds  map[string]int
	layouts map[string]int
	paints  map[string]int
	events  []string
}

func newCallLog() *callLog {
	return &callLog{
		builds:  make(map[string]int),
		layouts: make(map[string]int),
		paints:  make(map[string]int),
	}
}

// probe stacks its children vertically and records every callback.
type probe struct {
	WidgetBase
	name      string
	log       *callLog
	size      graphics.Size
	color     graphics.Color
	children  []Widget
	mark      string
	bubble    bool
	responder bool
	frame     bool
}

func (p probe) Mount(ctx *WidgetContext, _ *MountContext) {
	if p.frame {
		ctx.RequestFrame()
	}
}

func (p probe) Build(_ *WidgetContext, build *BuildContext) {
	p.log.builds[p.name]++
	build.Add(p.children...)
}

func (p probe) Layout(_ *WidgetContext, l *layout.Context) graphics.Size {
	p.log.layouts[p.name]++
	constraints := l.Constraints()
	var width, y float64
	for i := range l.ChildCount() {
		size, ok := l.LayoutChild(i, layout.Loose(constraints.MaxSize()))
		if !ok {
			continue
		}
		l.SetChildOffset(i, graphics.Pt(0, y))
		y += size.Height
		width = max(width, size.Width)
	}
	if !p.size.IsEmpty() {
		return constraints.Constrain(p.size)
	}
	return constraints.Constrain(graphics.Sz(width, y))
}

func (p probe) Paint(_ *WidgetContext, paint *layers.PaintContext) {
	p.log.paints[p.name]++
	if p.color != 0 {
		paint.Canvas().DrawRect(graphics.RectFromSize(paint.Size()), graphics.FillPaint(p.color))
	}
	paint.PaintChildren()
}

func (p probe) Event(_ *WidgetContext, ctx *EventContext) {
	p.log.events = append(p.log.events, fmt.Sprintf("%s:%T", p.name, ctx.Event()))
	switch p.mark {
	case "build":
		ctx.MarkNeedBuild()
	case "layout":
		ctx.MarkNeedLayout()
	case "paint":
		ctx.MarkNeedPaint()
	}
	if p.bubble {
		ctx.MarkNeedEvent()
	}
}

func (p probe) HitTest(_ *WidgetContext, hit *HitTestContext) bool {
	if p.responder {
		return hit.BecomeResponder()
	}
	return hit.InBounds()
}

// other has the same behavior as probe but a different type.
type other struct {
	probe
}

// stacked lays its children out on top of each other.
type stacked struct {
	probe
}

func (s stacked) Layout(_ *WidgetContext, l *layout.Context) graphics.Size {
	return LayoutStack(l)
}

// themed carries a value for descendants to look up.
type themed struct {
	WidgetBase
	Value int
	Child Widget
}

func (w themed) Build(_ *WidgetContext, build *BuildContext) {
	build.Add(w.Child)
}

// themeReader keeps the nearest themed ancestor's value as its state.
type themeReader struct {
	WidgetBase
}

func (themeReader) Mount(ctx *WidgetContext, mount *MountContext) {
	value := UseState(ctx, func() int { return 0 })
	if theme, ok := AncestorWidget[themed](mount); ok {
		*value = theme.Value
	}
}

func (themeReader) Update(ctx *WidgetContext, update *UpdateContext) {
	value, ok := StateOf[int](ctx)
	if !ok {
		return
	}
	if theme, ok := AncestorWidget[themed](update); ok {
		*value = theme.Value
	}
}

// recordingSubmitter counts what the render tree sends to the pipeline.
type recordingSubmitter struct {
	frames       []gpu.Frame
	registered   []gpu.TextureID
	unregistered []gpu.TextureID
	updated      []gpu.TextureID
	invalidated  []gpu.TextureID
}

func (r *recordingSubmitter) SubmitFrame(frame gpu.Frame) {
	r.frames = append(r.frames, frame)
}
func (r *recordingSubmitter) RegisterTexture(id gpu.TextureID, _ gpu.RenderTexture) {
	r.registered = append(r.registered, id)
}
func (r *recordingSubmitter) UpdateTexture(id gpu.TextureID) {
	r.updated = append(r.updated, id)
}
func (r *recordingSubmitter) InvalidateTexture(id gpu.TextureID) {
	r.invalidated = append(r.invalidated, id)
}
func (r *recordingSubmitter) UnregisterTexture(id gpu.TextureID) {
	r.unregistered = append(r.unregistered, id)
}

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

var _ timers.Clock = (*manualClock)(nil)

type violationHandler struct {
	violations []*errors.ContractError
}

func (h *violationHandler) HandleError(*errors.TerraError) {}
func (h *violationHandler) HandlePanic(*errors.PanicError) {}
func (h *violationHandler) HandleViolation(err *errors.ContractError) {
	h.violations = append(h.violations, err)
}

// reportViolations disables panicking for the test and collects violations.
func reportViolations(t *testing.T) *violationHandler {
	t.Helper()
	h := &violationHandler{}
	errors.SetHandler(h)
	SetDebugMode(false)
	t.Cleanup(func() {
		errors.SetHandler(nil)
		SetDebugMode(true)
	})
	return h
}

// childNamed returns the child of parent built from a probe called name.
func childNamed(t *testing.T, rt *RenderTree, parent tree.ID, name string) tree.ID {
	t.Helper()
	for _, id := range rt.Children(parent) {
		widget, _ := rt.Widget(id)
		switch w := widget.(type) {
		case probe:
			if w.name == name {
				return id
			}
		case other:
			if w.name == name {
				return id
			}
		}
	}
	t.Fatalf("no child %q under %d", name, parent)
	return 0
}
