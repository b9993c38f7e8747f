package widgets_test

import (
	"testing"

	"github.com/terramach/terramach/pkg/core"
	"github.com/terramach/terramach/pkg/graphics"
	terratest "github.com/terramach/terramach/pkg/testing"
	"github.com/terramach/terramach/pkg/widgets"
)

func TestColumn_Alignment(t *testing.T) {
	tests := []struct {
		name    string
		main    widgets.MainAxisAlignment
		cross   widgets.CrossAxisAlignment
		offsets []graphics.Point
	}{
		{"start", widgets.MainAxisAlignmentStart, widgets.CrossAxisAlignmentStart,
			[]graphics.Point{graphics.Pt(0, 0), graphics.Pt(0, 20)}},
		{"end", widgets.MainAxisAlignmentEnd, widgets.CrossAxisAlignmentEnd,
			[]graphics.Point{graphics.Pt(150, 250), graphics.Pt(140, 270)}},
		{"center", widgets.MainAxisAlignmentCenter, widgets.CrossAxisAlignmentCenter,
			[]graphics.Point{graphics.Pt(75, 125), graphics.Pt(70, 145)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tester := terratest.NewWidgetTesterWithT(t)
			tester.SetSize(graphics.Sz(200, 300))
			tester.PumpWidget(widgets.ColumnOf(tt.main, tt.cross,
				fixedBox{Width: 50, Height: 20},
				fixedBox{Width: 60, Height: 30},
			))
			for i, want := range tt.offsets {
				if _, got := layoutOf(t, tester, terratest.ByType[fixedBox](), i); got != want {
					t.Errorf("child %d offset = %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestColumn_Stretch(t *testing.T) {
	tester := terratest.NewWidgetTesterWithT(t)
	tester.SetSize(graphics.Sz(200, 300))
	tester.PumpWidget(widgets.Column{
		CrossAxisAlignment: widgets.CrossAxisAlignmentStretch,
		Children:           []core.Widget{fixedBox{Width: 50, Height: 20}},
	})

	if size, _ := layoutOf(t, tester, terratest.ByType[fixedBox](), 0); size != graphics.Sz(200, 20) {
		t.Errorf("stretched size = %v, want 200x20", size)
	}
}

func TestColumn_ShrinksInLooseConstraints(t *testing.T) {
	tester := terratest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.Centered(widgets.Column{Children: []core.Widget{
		fixedBox{Width: 50, Height: 20},
		fixedBox{Width: 60, Height: 30},
	}}))

	if size, _ := layoutOf(t, tester, terratest.ByType[widgets.Column](), 0); size != graphics.Sz(60, 50) {
		t.Errorf("column size = %v, want 60x50", size)
	}
}

func TestRow_Expanded(t *testing.T) {
	tester := terratest.NewWidgetTesterWithT(t)
	tester.SetSize(graphics.Sz(800, 100))
	tester.PumpWidget(widgets.Row{Children: []core.Widget{
		fixedBox{Width: 100, Height: 10},
		widgets.Expanded{Child: fixedBox{Height: 10}},
		widgets.Expanded{Flex: 3, Child: fixedBox{Height: 10}},
	}})

	wants := []struct {
		width float64
		x     float64
	}{{175, 100}, {525, 275}}
	for i, want := range wants {
		size, offset := layoutOf(t, tester, terratest.ByType[widgets.Expanded](), i)
		if size.Width != want.width || offset.X != want.x {
			t.Errorf("expanded %d: width %v at x %v, want %v at %v", i, size.Width, offset.X, want.width, want.x)
		}
	}
}

func TestRow_ExpandedInsideColumn(t *testing.T) {
	tester := terratest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.Column{Children: []core.Widget{
		widgets.Row{Children: []core.Widget{
			widgets.Expanded{Child: fixedBox{Width: 30, Height: 10}},
		}},
	}})

	size, _ := layoutOf(t, tester, terratest.ByType[widgets.Expanded](), 0)
	if size.Width != terratest.DefaultTestWidth {
		t.Errorf("expanded width = %v, want %v", size.Width, terratest.DefaultTestWidth)
	}
}

func TestAxisStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{widgets.AxisVertical.String(), "vertical"},
		{widgets.AxisHorizontal.String(), "horizontal"},
		{widgets.MainAxisAlignmentCenter.String(), "center"},
		{widgets.CrossAxisAlignmentStretch.String(), "stretch"},
		{widgets.Axis(9).String(), "Axis(9)"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}
