package cmd

import (
	"context"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/terramach/terramach/cmd/terra/internal/config"
	"github.com/terramach/terramach/pkg/core"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/tree"
	"github.com/terramach/terramach/pkg/widgets"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		raw     string
		want    graphics.Point
		wantErr bool
	}{
		{"10,20", graphics.Pt(10, 20), false},
		{" 1.5 , 2 ", graphics.Pt(1.5, 2), false},
		{"10", graphics.Point{}, true},
		{"a,2", graphics.Point{}, true},
		{"1,b", graphics.Point{}, true},
	}
	for _, tt := range tests {
		got, err := parsePoint(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePoint(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePoint(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParseRenderArgs(t *testing.T) {
	opts, err := parseRenderArgs([]string{"--out", "a.png", "--tap", "1,2", "--tap=3,4"})
	if err != nil {
		t.Fatalf("parseRenderArgs: %v", err)
	}
	if opts.out != "a.png" {
		t.Errorf("out = %q", opts.out)
	}
	if len(opts.taps) != 2 || opts.taps[0] != graphics.Pt(1, 2) || opts.taps[1] != graphics.Pt(3, 4) {
		t.Errorf("taps = %v", opts.taps)
	}

	defaults, err := parseRenderArgs(nil)
	if err != nil || defaults.out != "terra.png" {
		t.Errorf("defaults = %+v, %v", defaults, err)
	}

	for _, args := range [][]string{{"--bogus"}, {"--out"}, {"--tap", "nope"}} {
		if _, err := parseRenderArgs(args); err == nil {
			t.Errorf("parseRenderArgs(%v) should fail", args)
		}
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	err := execute([]string{"paint"})
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("err = %v", err)
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"render", "tree", "version"} {
		if _, ok := commands[name]; !ok {
			t.Errorf("command %q not registered", name)
		}
	}
}

func testConfig() *config.Resolved {
	return &config.Resolved{
		AppName:          "Demo",
		Size:             graphics.Sz(200, 120),
		DevicePixelRatio: 1,
		RefreshRate:      60,
		TapTimeout:       config.DefaultTapTimeout,
		TapSlop:          config.DefaultTapSlop,
	}
}

func findText(rt *core.RenderTree, content string) (tree.ID, bool) {
	var found tree.ID
	ok := false
	rt.Walk(func(id tree.ID, _ int) bool {
		if w, _ := rt.Widget(id); w != nil {
			if text, isText := w.(widgets.Text); isText && text.Content == content {
				found, ok = id, true
				return false
			}
		}
		return !ok
	})
	return found, ok
}

func center(rt *core.RenderTree, id tree.ID) graphics.Point {
	state, _ := rt.State(id)
	size, _ := state.Size()
	origin := state.Offset()
	for parent, ok := rt.Parent(id); ok; parent, ok = rt.Parent(parent) {
		if ps, ok := rt.State(parent); ok {
			origin = origin.Add(ps.Offset())
		}
	}
	return graphics.Pt(origin.X+size.Width/2, origin.Y+size.Height/2)
}

func TestSessionPresentsFirstFrame(t *testing.T) {
	s := newSession(testConfig())
	if err := s.run(context.Background(), nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	img := s.display.Front()
	if img == nil {
		t.Fatal("no frame presented")
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 120 {
		t.Fatalf("image bounds = %v", b)
	}
	got := color.NRGBAModel.Convert(img.At(1, 1)).(color.NRGBA)
	want := color.NRGBA{R: 0xF4, G: 0xF1, B: 0xEA, A: 0xFF}
	if got != want {
		t.Errorf("background pixel = %v, want %v", got, want)
	}
}

func TestSessionTapIncrements(t *testing.T) {
	s := newSession(testConfig())
	err := s.run(context.Background(), func(ctx context.Context) error {
		plus, ok := findText(s.app.Tree(), "+")
		if !ok {
			return errors.New("no + button")
		}
		return s.tap(ctx, center(s.app.Tree(), plus))
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, ok := findText(s.app.Tree(), "1"); !ok {
		t.Error("count should read 1 after tapping +")
	}

	var out strings.Builder
	if err := printTrees(&out, s); err != nil {
		t.Fatalf("printTrees: %v", err)
	}
	for _, want := range []string{"Widgets:", "demo.Counter", "widgets.Gesture", "Layers:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("tree output missing %q:\n%s", want, out.String())
		}
	}
}
