package testing

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/terramach/terramach/pkg/app"
	"github.com/terramach/terramach/pkg/core"
	"github.com/terramach/terramach/pkg/event"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/input"
	"github.com/terramach/terramach/pkg/tree"
)

const (
	// DefaultTestWidth is the default logical width for the test surface.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default logical height for the test surface.
	DefaultTestHeight = 600
	// DefaultScale is the default device pixel ratio.
	DefaultScale = 1.0
	// FrameInterval is how far the clock advances per pumped frame.
	FrameInterval = 16 * time.Millisecond
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: widgets kept requesting frames")

// WidgetTester drives a render tree the way a running app does, through
// app.State, but with a fake clock, a recording pipeline and frames that
// only arrive when the test pumps them.
type WidgetTester struct {
	clock    *FakeClock
	pipeline *RecordingPipeline
	queue    *event.Queue[app.AppEvent]
	frames   *manualFrames
	tree     *core.RenderTree
	state    *app.State
	size     graphics.Size
	scale    float64
	touchID  input.TouchID
}

// NewWidgetTester creates a tester with the default test environment.
func NewWidgetTester() *WidgetTester {
	return &WidgetTester{
		clock:    NewFakeClock(),
		pipeline: NewRecordingPipeline(),
		queue:    event.NewQueue[app.AppEvent](),
		frames:   &manualFrames{},
		size:     graphics.Sz(DefaultTestWidth, DefaultTestHeight),
		scale:    DefaultScale,
	}
}

// NewWidgetTesterWithT creates a tester that logs the widget tree when t
// fails.
func NewWidgetTesterWithT(t testing.TB) *WidgetTester {
	tester := NewWidgetTester()
	t.Cleanup(func() {
		if !t.Failed() || tester.tree == nil {
			return
		}
		var dump strings.Builder
		if err := tester.tree.DumpWidgets(&dump); err == nil {
			t.Logf("widget tree:\n%s", dump.String())
		}
	})
	return tester
}

// SetSize sets the logical surface size. After PumpWidget it sends a
// resize to the running tree.
func (t *WidgetTester) SetSize(size graphics.Size) {
	t.size = size
	if t.state != nil {
		t.queue.Push(app.Resize{Size: size})
	}
}

// SetScale sets the device pixel ratio. Must be called before PumpWidget.
func (t *WidgetTester) SetScale(scale float64) {
	t.scale = scale
}

// Clock returns the fake clock for advancing time in tests.
func (t *WidgetTester) Clock() *FakeClock {
	return t.clock
}

// Pipeline returns the pipeline recording submitted frames.
func (t *WidgetTester) Pipeline() *RecordingPipeline {
	return t.pipeline
}

// Tree returns the render tree, or nil before the first PumpWidget.
func (t *WidgetTester) Tree() *core.RenderTree {
	return t.tree
}

// State returns the app state, or nil before the first PumpWidget.
func (t *WidgetTester) State() *app.State {
	return t.state
}

// PumpWidget installs widget as the root and runs one step. The first call
// creates the tree; later calls reconcile against the previous root.
func (t *WidgetTester) PumpWidget(widget core.Widget) error {
	if t.tree == nil {
		t.tree = core.NewRenderTree(t.pipeline, widget, core.WithClock(t.clock))
		t.state = app.NewState(t.tree, t.queue, app.StateConfig{
			Size:             t.size,
			DevicePixelRatio: t.scale,
			Frames:           t.frames,
		})
	} else {
		t.tree.SetRoot(widget)
	}
	return t.Pump()
}

// Pump handles everything queued and renders once, without delivering a
// frame.
func (t *WidgetTester) Pump() error {
	if t.state == nil {
		return errors.New("Pump called before PumpWidget")
	}
	running, err := t.state.Step(context.Background())
	if err != nil {
		return err
	}
	if !running {
		return errors.New("app quit")
	}
	return nil
}

// PumpFrame advances the clock by one FrameInterval, delivers the pending
// frame, if any, and steps.
func (t *WidgetTester) PumpFrame() error {
	now := t.clock.Advance(FrameInterval)
	t.frames.fire(now)
	return t.Pump()
}

// PumpFor pumps frames until d has elapsed on the fake clock.
func (t *WidgetTester) PumpFor(d time.Duration) error {
	for elapsed := time.Duration(0); elapsed < d; elapsed += FrameInterval {
		if err := t.PumpFrame(); err != nil {
			return err
		}
	}
	return nil
}

// PumpAndSettle pumps frames until no widget requests a frame or runs a
// timer, or timeout elapses on the fake clock.
func (t *WidgetTester) PumpAndSettle(timeout time.Duration) error {
	if err := t.Pump(); err != nil {
		return err
	}
	for elapsed := time.Duration(0); elapsed < timeout; elapsed += FrameInterval {
		if !t.needsWork() {
			return nil
		}
		if err := t.PumpFrame(); err != nil {
			return err
		}
	}
	if t.needsWork() {
		return ErrSettleTimeout
	}
	return nil
}

func (t *WidgetTester) needsWork() bool {
	if t.tree == nil {
		return false
	}
	if _, ok := t.tree.NextTimerTime(); ok {
		return true
	}
	return t.frames.pending() || t.tree.NeedsFrame()
}

// Send queues an app event for the next pump.
func (t *WidgetTester) Send(ev app.AppEvent) {
	t.queue.Push(ev)
}

// Find evaluates a finder against the current widget tree.
func (t *WidgetTester) Find(finder Finder) FinderResult {
	if t.tree == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{ids: finder.Evaluate(t.tree), finder: finder, tree: t.tree}
}

// HoverAt moves the pointer to location and pumps.
func (t *WidgetTester) HoverAt(location graphics.Point) error {
	t.queue.Push(app.Hover{Location: location})
	return t.Pump()
}

// TouchDown puts a new finger down at location and pumps. The returned ID
// is used for the matching TouchMove and TouchUp.
func (t *WidgetTester) TouchDown(location graphics.Point) (input.TouchID, error) {
	t.touchID++
	id := t.touchID
	t.queue.Push(app.TouchBegin{Touch: input.Touch{ID: id, Location: location}})
	return id, t.Pump()
}

// TouchMove moves finger id to location and pumps.
func (t *WidgetTester) TouchMove(id input.TouchID, location graphics.Point) error {
	t.queue.Push(app.TouchUpdate{Touch: input.Touch{ID: id, Location: location}})
	return t.Pump()
}

// TouchUp lifts finger id at location and pumps.
func (t *WidgetTester) TouchUp(id input.TouchID, location graphics.Point) error {
	t.queue.Push(app.TouchEnd{Touch: input.Touch{ID: id, Location: location}})
	return t.Pump()
}

// Tap hovers and taps the center of the first node matched by finder.
func (t *WidgetTester) Tap(finder Finder) error {
	result := t.Find(finder)
	if !result.Exists() {
		return errors.New("Tap: finder matched no widgets: " + finder.Description())
	}
	bounds, ok := result.Bounds()
	if !ok {
		return errors.New("Tap: widget was never laid out: " + finder.Description())
	}
	return t.TapAt(bounds.Center())
}

// TapAt hovers location, then presses and releases one finger there.
func (t *WidgetTester) TapAt(location graphics.Point) error {
	if err := t.HoverAt(location); err != nil {
		return err
	}
	id, err := t.TouchDown(location)
	if err != nil {
		return err
	}
	return t.TouchUp(id, location)
}

// DragFrom presses at start, moves by delta in steps of at most 10 logical
// pixels and releases.
func (t *WidgetTester) DragFrom(start, delta graphics.Point) error {
	if err := t.HoverAt(start); err != nil {
		return err
	}
	id, err := t.TouchDown(start)
	if err != nil {
		return err
	}
	steps := max(int(math.Max(math.Abs(delta.X), math.Abs(delta.Y))/10), 1)
	location := start
	for i := 1; i <= steps; i++ {
		location = start.Add(delta.Scale(float64(i) / float64(steps)))
		if err := t.TouchMove(id, location); err != nil {
			return err
		}
	}
	return t.TouchUp(id, location)
}

// bounds returns the root-space rectangle of id.
func bounds(rt *core.RenderTree, id tree.ID) (graphics.Rect, bool) {
	state, ok := rt.State(id)
	if !ok {
		return graphics.Rect{}, false
	}
	size, ok := state.Size()
	if !ok {
		return graphics.Rect{}, false
	}
	origin := state.Offset()
	for parent, ok := rt.Parent(id); ok; parent, ok = rt.Parent(parent) {
		if ps, ok := rt.State(parent); ok {
			origin = origin.Add(ps.Offset())
		}
	}
	return graphics.RectFromLTWH(origin.X, origin.Y, size.Width, size.Height), true
}

// manualFrames holds the frame callback until the tester pumps a frame.
type manualFrames struct {
	callback func(time.Time)
}

func (f *manualFrames) RequestFrame(callback func(frameTime time.Time)) {
	f.callback = callback
}

func (f *manualFrames) pending() bool {
	return f.callback != nil
}

func (f *manualFrames) fire(now time.Time) {
	if f.callback == nil {
		return
	}
	callback := f.callback
	f.callback = nil
	callback(now)
}
