package widgets_test

import (
	"testing"
	"time"

	"github.com/terramach/terramach/pkg/core"
	"github.com/terramach/terramach/pkg/event"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/layout"
	terratest "github.com/terramach/terramach/pkg/testing"
	"github.com/terramach/terramach/pkg/widgets"
)

const buttonID event.ID = 7

// gestureHost places a 100x50 Gesture in the top-left corner and records
// the events it emits.
type gestureHost struct {
	core.WidgetBase
	log         *[]event.Event
	tap         bool
	pan         bool
	maxDuration time.Duration
}

func (h gestureHost) Build(_ *core.WidgetContext, build *core.BuildContext) {
	build.Add(widgets.Align{
		Alignment: layout.AlignmentTopLeft,
		Child: widgets.Gesture{
			ID:             buttonID,
			Emitter:        build.Emitter(),
			Tap:            h.tap,
			TapMaxDuration: h.maxDuration,
			Pan:            h.pan,
			Child:          widgets.SizedBox{Width: 100, Height: 50},
		},
	})
}

func (h gestureHost) Event(_ *core.WidgetContext, ev *core.EventContext) {
	switch ev.Event().(type) {
	case event.Tap, event.Pan:
		*h.log = append(*h.log, ev.Event())
	}
}

func pumpGestureHost(t *testing.T, host gestureHost) (*terratest.WidgetTester, *[]event.Event) {
	t.Helper()
	log := &[]event.Event{}
	host.log = log
	tester := terratest.NewWidgetTesterWithT(t)
	if err := tester.PumpWidget(host); err != nil {
		t.Fatal(err)
	}
	return tester, log
}

func taps(log []event.Event) int {
	n := 0
	for _, ev := range log {
		if tap, ok := ev.(event.Tap); ok && tap.ID == buttonID {
			n++
		}
	}
	return n
}

func TestGesture_TapWhileHovered(t *testing.T) {
	tester, log := pumpGestureHost(t, gestureHost{tap: true})

	if err := tester.TapAt(graphics.Pt(50, 25)); err != nil {
		t.Fatal(err)
	}
	if got := taps(*log); got != 1 {
		t.Fatalf("taps = %d, want exactly 1 (%v)", got, *log)
	}

	// Hover alone does not tap again.
	tester.HoverAt(graphics.Pt(60, 25))
	if got := taps(*log); got != 1 {
		t.Errorf("taps after hover = %d, want 1", got)
	}
}

func TestGesture_TapTargetsGesture(t *testing.T) {
	tester, log := pumpGestureHost(t, gestureHost{tap: true})

	if err := tester.Tap(terratest.ByType[widgets.Gesture]()); err != nil {
		t.Fatal(err)
	}
	if got := taps(*log); got != 1 {
		t.Errorf("taps = %d, want 1", got)
	}
}

func TestGesture_NoTapWithoutHover(t *testing.T) {
	tester, log := pumpGestureHost(t, gestureHost{tap: true})

	id, _ := tester.TouchDown(graphics.Pt(50, 25))
	tester.TouchUp(id, graphics.Pt(50, 25))
	if got := taps(*log); got != 0 {
		t.Errorf("taps = %d, want 0", got)
	}
}

func TestGesture_NoTapAfterPointerLeft(t *testing.T) {
	tester, log := pumpGestureHost(t, gestureHost{tap: true})

	tester.HoverAt(graphics.Pt(50, 25))
	id, _ := tester.TouchDown(graphics.Pt(50, 25))
	tester.HoverAt(graphics.Pt(300, 300))
	tester.TouchUp(id, graphics.Pt(50, 25))
	if got := taps(*log); got != 0 {
		t.Errorf("taps = %d, want 0 after the pointer left", got)
	}

	tester.HoverAt(graphics.Pt(50, 25))
	id, _ = tester.TouchDown(graphics.Pt(50, 25))
	tester.TouchUp(id, graphics.Pt(50, 25))
	if got := taps(*log); got != 1 {
		t.Errorf("taps = %d, want 1 after hovering back", got)
	}
}

func TestGesture_TapMaxDuration(t *testing.T) {
	tester, log := pumpGestureHost(t, gestureHost{tap: true, maxDuration: 500 * time.Millisecond})

	tester.HoverAt(graphics.Pt(50, 25))
	id, _ := tester.TouchDown(graphics.Pt(50, 25))
	tester.Clock().Advance(600 * time.Millisecond)
	tester.TouchUp(id, graphics.Pt(50, 25))
	if got := taps(*log); got != 0 {
		t.Errorf("taps = %d, want 0 for a long press", got)
	}

	id, _ = tester.TouchDown(graphics.Pt(50, 25))
	tester.Clock().Advance(100 * time.Millisecond)
	tester.TouchUp(id, graphics.Pt(50, 25))
	if got := taps(*log); got != 1 {
		t.Errorf("taps = %d, want 1 for a short press", got)
	}
}

func TestGesture_Pan(t *testing.T) {
	tester, log := pumpGestureHost(t, gestureHost{pan: true})

	if err := tester.DragFrom(graphics.Pt(20, 25), graphics.Pt(40, 0)); err != nil {
		t.Fatal(err)
	}

	var phases []event.PanPhase
	var moved float64
	for _, ev := range *log {
		pan, ok := ev.(event.Pan)
		if !ok || pan.ID != buttonID {
			continue
		}
		phases = append(phases, pan.Phase)
		moved += pan.Delta.X
	}
	want := []event.PanPhase{event.PanBegan, event.PanChanged, event.PanChanged, event.PanChanged, event.PanEnded}
	if len(phases) != len(want) {
		t.Fatalf("phases = %v, want %v", phases, want)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Errorf("phase %d = %v, want %v", i, phases[i], want[i])
		}
	}
	if moved != 40 {
		t.Errorf("summed delta = %v, want 40", moved)
	}
	if taps(*log) != 0 {
		t.Error("pan-only gesture emitted a tap")
	}
}
