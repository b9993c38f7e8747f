package widgets_test

import (
	"testing"

	"github.com/terramach/terramach/pkg/core"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/layers"
	"github.com/terramach/terramach/pkg/layout"
	terratest "github.com/terramach/terramach/pkg/testing"
	"github.com/terramach/terramach/pkg/tree"
)

// fixedBox asks for a fixed size and fills it with Color.
type fixedBox struct {
	core.WidgetBase
	Width, Height float64
	Color         graphics.Color
}

func (b fixedBox) Layout(_ *core.WidgetContext, l *layout.Context) graphics.Size {
	return l.Constraints().Constrain(graphics.Sz(b.Width, b.Height))
}

func (b fixedBox) Paint(_ *core.WidgetContext, paint *layers.PaintContext) {
	if b.Color != 0 {
		paint.Canvas().DrawRect(graphics.RectFromSize(paint.Size()), graphics.FillPaint(b.Color))
	}
}

// layoutOf returns the size and parent offset of the n-th node matched by
// finder.
func layoutOf(t *testing.T, tester *terratest.WidgetTester, finder terratest.Finder, n int) (graphics.Size, graphics.Point) {
	t.Helper()
	result := tester.Find(finder)
	if result.Count() <= n {
		t.Fatalf("%s matched %d widgets, want more than %d", finder.Description(), result.Count(), n)
	}
	state, ok := tester.Tree().State(result.At(n))
	if !ok {
		t.Fatalf("%s #%d has no state", finder.Description(), n)
	}
	size, ok := state.Size()
	if !ok {
		t.Fatalf("%s #%d was not laid out", finder.Description(), n)
	}
	return size, state.Offset()
}

// collectLayers flattens the layer tree, descending into containers.
func collectLayers(lt *layers.LayerTree) []layers.Layer {
	var out []layers.Layer
	var add func(layer layers.Layer)
	add = func(layer layers.Layer) {
		if c, ok := layer.(*layers.ContainerLayer); ok {
			for _, inner := range c.Layers() {
				add(inner)
			}
			return
		}
		out = append(out, layer)
	}
	lt.Walk(func(layer layers.Layer, _ tree.ID, _ int) bool {
		add(layer)
		return true
	})
	return out
}

func countLayers[T layers.Layer](lt *layers.LayerTree) int {
	n := 0
	for _, layer := range collectLayers(lt) {
		if _, ok := layer.(T); ok {
			n++
		}
	}
	return n
}

func findLayer[T layers.Layer](lt *layers.LayerTree) (T, bool) {
	for _, layer := range collectLayers(lt) {
		if l, ok := layer.(T); ok {
			return l, true
		}
	}
	var zero T
	return zero, false
}
