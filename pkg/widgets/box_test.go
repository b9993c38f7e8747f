package widgets_test

import (
	"testing"

	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/layers"
	"github.com/terramach/terramach/pkg/layout"
	terratest "github.com/terramach/terramach/pkg/testing"
	"github.com/terramach/terramach/pkg/widgets"
)

func TestPadding_ChildOffset(t *testing.T) {
	tester := terratest.NewWidgetTesterWithT(t)
	tester.SetSize(graphics.Sz(200, 200))

	tester.PumpWidget(widgets.Padding{
		Padding: layout.EdgeInsetsAll(16),
		Child:   widgets.Text{Content: "padded"},
	})

	_, offset := layoutOf(t, tester, terratest.ByType[widgets.Text](), 0)
	if offset != graphics.Pt(16, 16) {
		t.Errorf("expected child offset {16, 16}, got %v", offset)
	}
	size, _ := layoutOf(t, tester, terratest.ByType[widgets.Text](), 0)
	if size != graphics.Sz(168, 168) {
		t.Errorf("child size = %v, want the deflated 168x168", size)
	}
}

func TestPadding_Size(t *testing.T) {
	tester := terratest.NewWidgetTesterWithT(t)
	tester.SetSize(graphics.Sz(200, 200))

	// Wrap in Centered to give the Padding loose constraints, so it can
	// size to its content rather than being forced to the tester surface size.
	tester.PumpWidget(widgets.Centered(widgets.Padding{
		Padding: layout.EdgeInsetsSymmetric(10, 5),
		Child:   fixedBox{Width: 50, Height: 20},
	}))

	if size, _ := layoutOf(t, tester, terratest.ByType[widgets.Padding](), 0); size != graphics.Sz(70, 30) {
		t.Errorf("padding size = %v, want 70x30", size)
	}
}

func TestPadding_NoChild(t *testing.T) {
	tester := terratest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.Centered(widgets.Padding{Padding: layout.EdgeInsetsAll(8)}))

	if size, _ := layoutOf(t, tester, terratest.ByType[widgets.Padding](), 0); size != graphics.Sz(16, 16) {
		t.Errorf("empty padding size = %v, want 16x16", size)
	}
}

func TestSizedBox(t *testing.T) {
	tests := []struct {
		name string
		box  widgets.SizedBox
		want graphics.Size
	}{
		{"both", widgets.SizedBox{Width: 100, Height: 40, Child: fixedBox{Width: 10, Height: 10}}, graphics.Sz(100, 40)},
		{"width only", widgets.SizedBox{Width: 100, Child: fixedBox{Width: 10, Height: 10}}, graphics.Sz(100, 10)},
		{"square", widgets.SizedBoxSquare(24, nil), graphics.Sz(24, 24)},
		{"vspace", widgets.VSpace(12), graphics.Sz(0, 12)},
		{"hspace", widgets.HSpace(12), graphics.Sz(12, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tester := terratest.NewWidgetTesterWithT(t)
			tester.PumpWidget(widgets.Align{Alignment: layout.AlignmentTopLeft, Child: tt.box})
			if size, _ := layoutOf(t, tester, terratest.ByType[widgets.SizedBox](), 0); size != tt.want {
				t.Errorf("size = %v, want %v", size, tt.want)
			}
		})
	}
}

func TestAlign(t *testing.T) {
	tests := []struct {
		alignment layout.Alignment
		want      graphics.Point
	}{
		{layout.AlignmentTopLeft, graphics.Pt(0, 0)},
		{layout.AlignmentCenter, graphics.Pt(50, 75)},
		{layout.AlignmentBottomRight, graphics.Pt(100, 150)},
	}
	for _, tt := range tests {
		tester := terratest.NewWidgetTesterWithT(t)
		tester.SetSize(graphics.Sz(200, 200))
		tester.PumpWidget(widgets.Align{Alignment: tt.alignment, Child: fixedBox{Width: 100, Height: 50}})
		if _, got := layoutOf(t, tester, terratest.ByType[fixedBox](), 0); got != tt.want {
			t.Errorf("alignment %v: offset = %v, want %v", tt.alignment, got, tt.want)
		}
	}
}

func TestColoredBox_FillsAndPaints(t *testing.T) {
	tester := terratest.NewWidgetTesterWithT(t)
	tester.SetSize(graphics.Sz(120, 80))
	tester.PumpWidget(widgets.ColoredBox{Color: graphics.ColorGreen})

	if size, _ := layoutOf(t, tester, terratest.ByType[widgets.ColoredBox](), 0); size != graphics.Sz(120, 80) {
		t.Errorf("size = %v, want 120x80", size)
	}
	snap := tester.CaptureSnapshot()
	found := false
	for _, op := range snap.DisplayOps {
		if op.Op == "drawRect" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a drawRect op, got %v", snap.DisplayOps)
	}
}

func TestColoredBox_TransparentDrawsNothing(t *testing.T) {
	tester := terratest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.ColoredBox{Color: graphics.ColorTransparent})

	if n := countLayers[layers.PictureLayer](tester.Tree().LayerTree()); n != 0 {
		t.Errorf("picture layers = %d, want 0", n)
	}
}
