// Package app runs a widget tree in a window: it owns the event queue the
// platform pushes into, the UI run loop, and the render pipeline.
//
// A minimal headless program:
//
//	a := app.New(widgets.Text{Content: "hello"}, app.Options{Size: graphics.Sz(400, 300)})
//	go a.Send(app.Quit{})
//	if err := a.Run(ctx); err != nil {
//		log.Fatal(err)
//	}
package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/terramach/terramach/pkg/core"
	"github.com/terramach/terramach/pkg/event"
	"github.com/terramach/terramach/pkg/gpu"
	"github.com/terramach/terramach/pkg/gpu/software"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/input"
	"github.com/terramach/terramach/pkg/logging"
	"github.com/terramach/terramach/pkg/platform"
	"github.com/terramach/terramach/pkg/timers"
)

// VSync paces both the render goroutine and the widget frame requests.
type VSync interface {
	gpu.VSync
	platform.FrameRequester
}

// Options configures an App. Zero values select the defaults.
type Options struct {
	// Size is the window size in logical pixels. Defaults to 400x300.
	Size graphics.Size
	// DevicePixelRatio scales scroll deltas. Defaults to 1.
	DevicePixelRatio float64
	// RefreshRate is the default vsync rate in Hz. Defaults to 60.
	RefreshRate float64
	// Display defaults to a software display of Size.
	Display gpu.Display
	// VSync defaults to a TickerVSync at RefreshRate.
	VSync VSync
	// Clock drives widget timers. Defaults to the system clock.
	Clock timers.Clock
	// OnCursor is called when the hovered cursor changes.
	OnCursor func(input.Cursor)
	// FrameTrace, when set, records every render.
	FrameTrace *core.FrameTraceBuffer
}

// DefaultSize is the window size used when Options.Size is empty.
var DefaultSize = graphics.Sz(400, 300)

// App ties a RenderTree to a Pipeline and a RunLoop.
type App struct {
	queue    *event.Queue[AppEvent]
	display  gpu.Display
	vsync    VSync
	pipeline *gpu.Pipeline
	runLoop  *platform.RunLoop
	tree     *core.RenderTree
	state    *State
}

// New creates an app rendering root. Nothing runs until Run.
func New(root core.Widget, opts Options) *App {
	if opts.Size.IsEmpty() {
		opts.Size = DefaultSize
	}
	if opts.Display == nil {
		opts.Display = software.NewDisplay(opts.Size)
	}
	if opts.VSync == nil {
		opts.VSync = platform.NewTickerVSync(opts.RefreshRate)
	}
	var treeOpts []core.Option
	if opts.Clock != nil {
		treeOpts = append(treeOpts, core.WithClock(opts.Clock))
	}
	if opts.FrameTrace != nil {
		treeOpts = append(treeOpts, core.WithFrameTrace(opts.FrameTrace))
	}

	a := &App{
		queue:   event.NewQueue[AppEvent](),
		display: opts.Display,
		vsync:   opts.VSync,
		runLoop: platform.NewRunLoop(),
	}
	a.pipeline = gpu.NewPipeline(opts.VSync, opts.Display)
	a.tree = core.NewRenderTree(a.pipeline.Share(), root, treeOpts...)
	a.state = NewState(a.tree, a.queue, StateConfig{
		Size:             opts.Size,
		DevicePixelRatio: opts.DevicePixelRatio,
		Resizer:          a.pipeline,
		Scheduler:        a.runLoop,
		Frames:           opts.VSync,
		OnCursor:         opts.OnCursor,
	})
	return a
}

// Send queues ev and wakes the UI goroutine. It is safe for concurrent use.
func (a *App) Send(ev AppEvent) {
	a.queue.Push(ev)
	a.runLoop.Wakeup()
}

// Tree returns the render tree. Only touch it from the UI goroutine, or
// after Run returned.
func (a *App) Tree() *core.RenderTree { return a.tree }

// State returns the UI state machine.
func (a *App) State() *State { return a.state }

// Display returns the display frames are presented on.
func (a *App) Display() gpu.Display { return a.display }

// Pipeline returns the render pipeline.
func (a *App) Pipeline() *gpu.Pipeline { return a.pipeline }

// Run renders until a Quit is handled, ctx is done, or the pipeline fails.
// The pipeline and the run loop each get a goroutine and the first error
// cancels both.
func (a *App) Run(ctx context.Context) error {
	log := logging.Logger()
	log.Info("app starting", "size", a.state.Size())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.pipeline.Run(ctx)
	})
	g.Go(func() error {
		defer a.pipeline.Close()
		return a.runLoop.Run(ctx, a.state.Step)
	})
	err := g.Wait()
	if stopper, ok := a.vsync.(interface{ Stop() }); ok {
		stopper.Stop()
	}
	log.Info("app stopped", "frames", a.pipeline.FramesDrawn(), "err", err)
	return err
}
