package testing

import (
	"testing"

	"github.com/terramach/terramach/pkg/core"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/layout"
	"github.com/terramach/terramach/pkg/testing/internal/testbed"
	"github.com/terramach/terramach/pkg/widgets"
)

func TestByType(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(testbed.Counter{Initial: 0})

	result := tester.Find(ByType[widgets.Text]())
	if !result.Exists() {
		t.Fatal("expected to find Text widget")
	}
	text := result.Widget().(widgets.Text)
	if text.Content != "0" {
		t.Errorf("expected text '0', got %q", text.Content)
	}
}

func TestByText(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(testbed.Counter{Initial: 42})

	if !tester.Find(ByText("42")).Exists() {
		t.Error("expected to find text '42'")
	}
	if tester.Find(ByText("99")).Exists() {
		t.Error("should not find text '99'")
	}
}

func TestByTextContaining(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(testbed.Counter{Initial: 123})

	if !tester.Find(ByTextContaining("12")).Exists() {
		t.Error("expected to find text containing '12'")
	}
	if tester.Find(ByTextContaining("99")).Exists() {
		t.Error("should not find text containing '99'")
	}
}

func TestByPredicate(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.Column{Children: []core.Widget{
		testbed.LayoutBox{Width: 10, Height: 10},
		testbed.LayoutBox{Width: 20, Height: 10},
		testbed.LayoutBox{Width: 30, Height: 10},
	}})

	finder := ByPredicate("wide box", func(w core.Widget) bool {
		box, ok := w.(testbed.LayoutBox)
		return ok && box.Width >= 20
	})
	wide := tester.Find(finder)
	if wide.Count() != 2 {
		t.Fatalf("Count = %d, want 2", wide.Count())
	}
	if got := wide.Widget().(testbed.LayoutBox).Width; got != 20 {
		t.Errorf("first match width = %v, want 20 (pre-order)", got)
	}
	if got := finder.Description(); got != "ByPredicate(wide box)" {
		t.Errorf("Description = %q", got)
	}
}

func TestDescendant(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.Column{Children: []core.Widget{
		widgets.Text{Content: "outside"},
		widgets.Padding{Child: widgets.Text{Content: "inside"}},
	}})

	result := tester.Find(Descendant(ByType[widgets.Padding](), ByType[widgets.Text]()))
	if result.Count() != 1 {
		t.Fatalf("Count = %d, want 1", result.Count())
	}
	if got := result.Widget().(widgets.Text).Content; got != "inside" {
		t.Errorf("matched %q, want inside", got)
	}
}

func TestFinderResult_Bounds(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.Column{Children: []core.Widget{
		testbed.LayoutBox{Width: 50, Height: 20},
		widgets.Padding{
			Padding: layout.EdgeInsetsAll(5),
			Child:   testbed.LayoutBox{Width: 60, Height: 30},
		},
	}})

	result := tester.Find(ByType[testbed.LayoutBox]())
	if result.Count() != 2 {
		t.Fatalf("Count = %d, want 2", result.Count())
	}
	nested := FinderResult{ids: result.All()[1:], tree: tester.Tree()}
	got, ok := nested.Bounds()
	want := graphics.RectFromLTWH(5, 25, 60, 30)
	if !ok || got != want {
		t.Errorf("Bounds = %v, %v, want %v", got, ok, want)
	}
}

func TestFinderResult_PanicsWithoutMatches(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.Text{Content: "x"})

	defer func() {
		if recover() == nil {
			t.Error("expected First to panic")
		}
	}()
	tester.Find(ByText("missing")).First()
}
