package core

import (
	"slices"
	"time"

	"github.com/terramach/terramach/pkg/event"
	"github.com/terramach/terramach/pkg/gpu"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/input"
	"github.com/terramach/terramach/pkg/layers"
	"github.com/terramach/terramach/pkg/layout"
	"github.com/terramach/terramach/pkg/timers"
)

// WidgetContext is the per-node storage handed to every Widget method. It
// outlives the widget values built for the node.
type WidgetContext struct {
	state          any
	cursor         input.Cursor
	hasCursor      bool
	frameRequested bool
	clock          timers.Clock
	timers         *timers.Timers
	timerIDs       map[int]timers.ID
}

func newWidgetContext(clock timers.Clock) *WidgetContext {
	return &WidgetContext{clock: clock}
}

// SetState replaces the node's state value.
func (c *WidgetContext) SetState(state any) {
	c.state = state
}

// State returns the node's state value, or nil.
func (c *WidgetContext) State() any {
	return c.state
}

// Now returns the current time of the render tree's clock.
func (c *WidgetContext) Now() time.Time {
	return c.clock.Now()
}

// RequestFrame asks for one event.Frame on the next vsync.
func (c *WidgetContext) RequestFrame() {
	c.frameRequested = true
}

// FrameRequested reports whether a frame request is pending.
func (c *WidgetContext) FrameRequested() bool {
	return c.frameRequested
}

// ScheduleTimer starts timer under the caller's id, replacing any timer
// already scheduled with that id. Each firing delivers event.Timer{ID: id}.
func (c *WidgetContext) ScheduleTimer(id int, timer timers.Timer) {
	if c.timers == nil {
		c.timers = timers.New(c.clock)
		c.timerIDs = make(map[int]timers.ID)
	}
	if old, ok := c.timerIDs[id]; ok {
		c.timers.Remove(old)
	}
	c.timerIDs[id] = c.timers.Add(timer)
}

// CancelTimer stops the timer scheduled under id.
func (c *WidgetContext) CancelTimer(id int) {
	if old, ok := c.timerIDs[id]; ok {
		c.timers.Remove(old)
		delete(c.timerIDs, id)
	}
}

// CancelAllTimers stops every timer of the node.
func (c *WidgetContext) CancelAllTimers() {
	if c.timers == nil {
		return
	}
	c.timers.Clear()
	clear(c.timerIDs)
}

// HasActiveTimers reports whether any timer is scheduled.
func (c *WidgetContext) HasActiveTimers() bool {
	return c.timers != nil && !c.timers.IsEmpty()
}

// SetCursor sets the cursor shown while the node is the hover responder.
func (c *WidgetContext) SetCursor(cursor input.Cursor) {
	c.cursor = cursor
	c.hasCursor = true
}

// ClearCursor removes the node's cursor.
func (c *WidgetContext) ClearCursor() {
	c.hasCursor = false
}

// Cursor returns the node's cursor, if set.
func (c *WidgetContext) Cursor() (input.Cursor, bool) {
	return c.cursor, c.hasCursor
}

// nextTimer returns how long until the node's next timer fires.
func (c *WidgetContext) nextTimer() (time.Duration, bool) {
	if c.timers == nil {
		return 0, false
	}
	return c.timers.NextFireTime()
}

// firedTimers polls the node's timers and maps the fired ones back to
// caller ids, in ascending order.
func (c *WidgetContext) firedTimers() []int {
	if c.timers == nil {
		return nil
	}
	fired := c.timers.Fire()
	if len(fired) == 0 {
		return nil
	}
	ids := make([]int, 0, len(fired))
	for _, timerID := range fired {
		for id, scheduled := range c.timerIDs {
			if scheduled == timerID {
				ids = append(ids, id)
				break
			}
		}
	}
	// One-shot timers are gone from c.timers after Fire.
	for id, scheduled := range c.timerIDs {
		if _, ok := c.timers.Timer(scheduled); !ok {
			delete(c.timerIDs, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// WidgetState is the render tree's bookkeeping for one node.
type WidgetState struct {
	context    *WidgetContext
	offset     graphics.Point
	size       graphics.Size
	hasSize    bool
	mounted    bool
	needBuild  bool
	needLayout bool
	needPaint  bool
	layer      *layers.ContainerLayer
	leafLayer  *layers.ContainerLayer
	events     *event.Queue[event.Event]
	texture    gpu.TextureID
	hasTexture bool

	constraints    layout.Constraints
	hasConstraints bool
}

func newWidgetState(clock timers.Clock) *WidgetState {
	return &WidgetState{
		context:    newWidgetContext(clock),
		needBuild:  true,
		needLayout: true,
		needPaint:  true,
		events:     event.NewQueue[event.Event](),
	}
}

// Context returns the node's WidgetContext.
func (s *WidgetState) Context() *WidgetContext { return s.context }

// Size returns the size from the last layout.
func (s *WidgetState) Size() (graphics.Size, bool) { return s.size, s.hasSize }

// Offset returns the position within the parent from the last layout.
func (s *WidgetState) Offset() graphics.Point { return s.offset }

// Mounted reports whether Mount was called.
func (s *WidgetState) Mounted() bool { return s.mounted }

// NeedBuild reports whether the node is scheduled to rebuild.
func (s *WidgetState) NeedBuild() bool { return s.needBuild }

// NeedLayout reports whether the node is scheduled to lay out.
func (s *WidgetState) NeedLayout() bool { return s.needLayout }

// NeedPaint reports whether the node is scheduled to paint.
func (s *WidgetState) NeedPaint() bool { return s.needPaint }

// Texture returns the texture registered while mounting, if any.
func (s *WidgetState) Texture() (gpu.TextureID, bool) { return s.texture, s.hasTexture }

func (s *WidgetState) setSize(size graphics.Size) {
	s.size = size
	s.hasSize = true
	s.needLayout = false
}
