package core

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/terramach/terramach/pkg/errors"
	"github.com/terramach/terramach/pkg/event"
	"github.com/terramach/terramach/pkg/gpu"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/layers"
	"github.com/terramach/terramach/pkg/layout"
	"github.com/terramach/terramach/pkg/logging"
	"github.com/terramach/terramach/pkg/pool"
	"github.com/terramach/terramach/pkg/timers"
	"github.com/terramach/terramach/pkg/tree"
)

// Broadcast addresses EmitEvent to every node that asked for the event.
// Only event.Frame can be broadcast.
const Broadcast = tree.Root

// Option configures a RenderTree.
type Option func(*RenderTree)

// WithClock sets the clock used by widget timers. The system clock is used
// otherwise.
func WithClock(clock timers.Clock) Option {
	return func(t *RenderTree) {
		if clock != nil {
			t.clock = clock
		}
	}
}

// WithFrameTrace records a FrameSample into buffer on every Render.
func WithFrameTrace(buffer *FrameTraceBuffer) Option {
	return func(t *RenderTree) {
		t.trace = buffer
	}
}

// RenderTree owns the widget tree, the per-node states and the layer tree.
// It lives on the UI goroutine and is not safe for concurrent use.
type RenderTree struct {
	root       tree.ID
	widgets    *tree.Tree[Widget]
	states     map[tree.ID]*WidgetState
	layerTree  *layers.LayerTree
	pipeline   gpu.Submitter
	textureIDs *pool.IndexPool
	clock      timers.Clock
	trace      *FrameTraceBuffer

	needPaint      bool
	needBuild      map[tree.ID]struct{}
	requestedFrame map[tree.ID]struct{}
	activeTimers   map[tree.ID]struct{}

	stats FrameSample
}

// NewRenderTree returns a tree rooted at root that submits frames to
// pipeline. A nil pipeline discards everything. Nothing is built until the
// first Render.
func NewRenderTree(pipeline gpu.Submitter, root Widget, opts ...Option) *RenderTree {
	if pipeline == nil {
		pipeline = discardPipeline{}
	}
	t := &RenderTree{
		widgets:        tree.New[Widget](),
		states:         make(map[tree.ID]*WidgetState),
		layerTree:      layers.NewLayerTree(),
		pipeline:       pipeline,
		textureIDs:     pool.NewIndexPool(1),
		clock:          timers.SystemClock{},
		needBuild:      make(map[tree.ID]struct{}),
		requestedFrame: make(map[tree.ID]struct{}),
		activeTimers:   make(map[tree.ID]struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.root = t.widgets.Insert(root, tree.Root)
	t.needBuild[t.root] = struct{}{}
	return t
}

// Root returns the ID of the root widget.
func (t *RenderTree) Root() tree.ID {
	return t.root
}

// Len returns the number of nodes.
func (t *RenderTree) Len() int {
	return t.widgets.Len()
}

// Widget returns the current widget value of id.
func (t *RenderTree) Widget(id tree.ID) (Widget, bool) {
	return t.widgets.Node(id)
}

// State returns the bookkeeping of id.
func (t *RenderTree) State(id tree.ID) (*WidgetState, bool) {
	state, ok := t.states[id]
	return state, ok
}

// Parent returns the parent of id. It reports false for the root widget.
func (t *RenderTree) Parent(id tree.ID) (tree.ID, bool) {
	return t.widgets.Parent(id)
}

// Children returns the children of id in order.
func (t *RenderTree) Children(id tree.ID) []tree.ID {
	children, _ := t.widgets.Children(id)
	return children
}

// Walk visits the nodes depth-first from the root widget.
func (t *RenderTree) Walk(fn func(id tree.ID, depth int) bool) {
	t.widgets.Walk(tree.Root, fn)
}

// LayerTree returns the layer tree of the last paint. It is mutated by the
// next Render; submitted frames carry their own copy.
func (t *RenderTree) LayerTree() *layers.LayerTree {
	return t.layerTree
}

// Stats returns the sample of the last Render.
func (t *RenderTree) Stats() FrameSample {
	return t.stats
}

// NeedsFrame reports whether any node requested a frame.
func (t *RenderTree) NeedsFrame() bool {
	return len(t.requestedFrame) > 0
}

// NextTimerTime returns how long until the earliest widget timer fires.
func (t *RenderTree) NextTimerTime() (time.Duration, bool) {
	var next time.Duration
	found := false
	for id := range t.activeTimers {
		state, ok := t.states[id]
		if !ok {
			continue
		}
		if in, ok := state.context.nextTimer(); ok && (!found || in < next) {
			next, found = in, true
		}
	}
	return next, found
}

// Invalidate schedules every node for layout and paint, for example after
// the window was resized.
func (t *RenderTree) Invalidate() {
	for _, state := range t.states {
		state.needLayout = true
		state.needPaint = true
	}
	t.needPaint = true
}

// Render fires due timers, rebuilds dirty nodes, lays the tree out within
// size and, when anything needs painting, paints and submits a frame.
func (t *RenderTree) Render(size graphics.Size) {
	start := time.Now()
	sample := FrameSample{Start: start}

	t.flushPendingTimers()
	mark := time.Now()
	sample.Phases.Timers = mark.Sub(start)

	sample.Counts.Built = t.flushBuild()
	if t.widgets.Len() != len(t.states) {
		errors.Violation("core.Render", "tree has %d nodes but %d states after build", t.widgets.Len(), len(t.states))
	}
	now := time.Now()
	sample.Phases.Build = now.Sub(mark)
	mark = now

	results := make(map[tree.ID]layoutResult)
	t.layoutWidget(t.root, layout.Tight(size), results, &sample.Counts.LaidOut)
	for id, result := range results {
		state, ok := t.states[id]
		if !ok {
			continue
		}
		if state.hasSize && state.size != result.size {
			state.needPaint = true
			t.needPaint = true
		}
		state.setSize(result.size)
		state.constraints, state.hasConstraints = result.constraints, true
		if result.hasOffset && state.offset != result.offset {
			state.offset = result.offset
			t.needPaint = true
		}
	}
	now = time.Now()
	sample.Phases.Layout = now.Sub(mark)
	mark = now

	if t.needPaint {
		t.needPaint = false
		t.paintWidget(t.root, &sample.Counts.Painted)
		t.pipeline.SubmitFrame(gpu.NewFrame(t.layerTree.Clone()))
		sample.Submitted = true
	}
	end := time.Now()
	sample.Phases.Paint = end.Sub(mark)
	sample.Duration = end.Sub(start)
	sample.Counts.WidgetCount = t.widgets.Len()
	sample.Counts.LayerCount = t.layerTree.Len()
	t.stats = sample
	if t.trace != nil {
		t.trace.Add(sample)
	}
	logging.Logger().Debug("render",
		"built", sample.Counts.Built,
		"laidOut", sample.Counts.LaidOut,
		"painted", sample.Counts.Painted,
		"submitted", sample.Submitted)
}

// DumpWidgets writes an indented description of the widget tree to w.
func (t *RenderTree) DumpWidgets(w io.Writer) error {
	var err error
	t.widgets.Walk(tree.Root, func(id tree.ID, depth int) bool {
		if err != nil {
			return false
		}
		widget, _ := t.widgets.Node(id)
		line := fmt.Sprintf("%s%T [%d]", strings.Repeat("  ", depth), widget, id)
		if state, ok := t.states[id]; ok && state.hasSize {
			line += fmt.Sprintf(" size=%gx%g", state.size.Width, state.size.Height)
			if !state.offset.IsZero() {
				line += fmt.Sprintf(" offset=(%g,%g)", state.offset.X, state.offset.Y)
			}
		}
		_, err = fmt.Fprintln(w, line)
		return true
	})
	return err
}

// invalidateRequests syncs the tree-wide frame and timer sets with the
// node's context.
func (t *RenderTree) invalidateRequests(id tree.ID) {
	state, ok := t.states[id]
	if !ok {
		return
	}
	if state.context.frameRequested {
		t.requestedFrame[id] = struct{}{}
	}
	if state.context.HasActiveTimers() {
		t.activeTimers[id] = struct{}{}
	} else {
		delete(t.activeTimers, id)
	}
}

func (t *RenderTree) invalidatePaint(id tree.ID) {
	if state, ok := t.states[id]; ok {
		state.needPaint = true
		t.needPaint = true
	}
}

func (t *RenderTree) invalidateBuild(id tree.ID) {
	if state, ok := t.states[id]; ok {
		state.needBuild = true
		t.needBuild[id] = struct{}{}
	}
}

// invalidateLayout marks id for layout and paint and its ancestors for
// layout.
func (t *RenderTree) invalidateLayout(id tree.ID) {
	for {
		state, ok := t.states[id]
		if !ok {
			return
		}
		state.needLayout = true
		state.needPaint = true
		t.needPaint = true
		parent, ok := t.widgets.Parent(id)
		if !ok {
			return
		}
		id = parent
	}
}

func (t *RenderTree) flushPendingTimers() {
	if len(t.activeTimers) == 0 {
		return
	}
	for _, id := range slices.Sorted(maps.Keys(t.activeTimers)) {
		state, ok := t.states[id]
		if !ok {
			delete(t.activeTimers, id)
			continue
		}
		for _, timerID := range state.context.firedTimers() {
			t.EmitEvent(id, event.Timer{ID: timerID})
		}
		t.invalidateRequests(id)
	}
}

// sortedByDepth orders ids top-down so parents rebuild before children.
func (t *RenderTree) sortedByDepth(ids []tree.ID) []tree.ID {
	depths := make(map[tree.ID]int, len(ids))
	for _, id := range ids {
		depths[id] = t.widgets.Depth(id)
	}
	slices.SortFunc(ids, func(a, b tree.ID) int {
		return cmp.Or(cmp.Compare(depths[a], depths[b]), cmp.Compare(a, b))
	})
	return ids
}

type discardPipeline struct{}

func (discardPipeline) SubmitFrame(gpu.Frame)                            {}
func (discardPipeline) RegisterTexture(gpu.TextureID, gpu.RenderTexture) {}
func (discardPipeline) UpdateTexture(gpu.TextureID)                      {}
func (discardPipeline) InvalidateTexture(gpu.TextureID)                  {}
func (discardPipeline) UnregisterTexture(gpu.TextureID)                  {}
