package demo_test

import (
	"testing"

	"github.com/terramach/terramach/cmd/terra/internal/demo"
	terratest "github.com/terramach/terramach/pkg/testing"
	"github.com/terramach/terramach/pkg/widgets"
)

func pumpCounter(t *testing.T, initial int) *terratest.WidgetTester {
	t.Helper()
	tester := terratest.NewWidgetTesterWithT(t)
	if err := tester.PumpWidget(demo.Counter{Title: "Taps", Initial: initial}); err != nil {
		t.Fatalf("PumpWidget: %v", err)
	}
	return tester
}

func tap(t *testing.T, tester *terratest.WidgetTester, label string) {
	t.Helper()
	if err := tester.Tap(terratest.ByText(label)); err != nil {
		t.Fatalf("tap %q: %v", label, err)
	}
}

func TestCounterStartsAtInitial(t *testing.T) {
	tester := pumpCounter(t, 3)
	for _, text := range []string{"Taps", "3", "+", "-"} {
		if !tester.Find(terratest.ByText(text)).Exists() {
			t.Errorf("missing text %q", text)
		}
	}
	if got := tester.Find(terratest.ByType[widgets.Gesture]()).Count(); got != 2 {
		t.Errorf("gesture count = %d, want 2", got)
	}
}

func TestCounterIncrementAndDecrement(t *testing.T) {
	tester := pumpCounter(t, 0)

	tap(t, tester, "+")
	tap(t, tester, "+")
	if !tester.Find(terratest.ByText("2")).Exists() {
		t.Fatal("count should be 2 after two increments")
	}

	tap(t, tester, "-")
	if !tester.Find(terratest.ByText("1")).Exists() {
		t.Fatal("count should be 1 after a decrement")
	}
}

func TestCounterDoesNotGoNegative(t *testing.T) {
	tester := pumpCounter(t, 0)
	tap(t, tester, "-")
	if !tester.Find(terratest.ByText("0")).Exists() {
		t.Fatal("count should stay at 0")
	}
}

func TestDecrementDimmedAtZero(t *testing.T) {
	tests := []struct {
		initial int
		want    float64
	}{
		{0, 0.4},
		{2, 1},
	}
	for _, tt := range tests {
		tester := pumpCounter(t, tt.initial)
		found := tester.Find(terratest.ByType[widgets.Opacity]())
		if found.Count() != 1 {
			t.Fatalf("opacity count = %d", found.Count())
		}
		if got := found.Widget().(widgets.Opacity).Opacity; got != tt.want {
			t.Errorf("initial %d: opacity = %g, want %g", tt.initial, got, tt.want)
		}
	}
}

func TestCounterRendersOncePerTap(t *testing.T) {
	tester := pumpCounter(t, 0)
	before := tester.Pipeline().FrameCount()
	tap(t, tester, "+")
	after := tester.Pipeline().FrameCount()
	if after <= before {
		t.Fatalf("a tap should submit a frame (before %d, after %d)", before, after)
	}
	if err := tester.Pump(); err != nil {
		t.Fatal(err)
	}
	if got := tester.Pipeline().FrameCount(); got != after {
		t.Errorf("idle pump submitted %d extra frames", got-after)
	}
}
