package testing

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/terramach/terramach/pkg/core"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/tree"
	"github.com/terramach/terramach/pkg/widgets"
)

// Finder locates nodes in the widget tree.
type Finder interface {
	// Evaluate returns all matching nodes in depth-first pre-order.
	Evaluate(rt *core.RenderTree) []tree.ID
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	ids    []tree.ID
	finder Finder
	tree   *core.RenderTree
}

func (r FinderResult) describe() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// First returns the first match. Panics if there are no matches.
func (r FinderResult) First() tree.ID {
	if len(r.ids) == 0 {
		panic(fmt.Sprintf("Finder found no widgets: %s", r.describe()))
	}
	return r.ids[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) tree.ID {
	if index < 0 || index >= len(r.ids) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.ids), r.describe()))
	}
	return r.ids[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []tree.ID {
	return r.ids
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.ids)
}

// Exists reports whether at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.ids) > 0
}

// Widget returns the widget of the first match. Panics if there are no
// matches.
func (r FinderResult) Widget() core.Widget {
	widget, _ := r.tree.Widget(r.First())
	return widget
}

// State returns the state of the first match.
func (r FinderResult) State() *core.WidgetState {
	state, _ := r.tree.State(r.First())
	return state
}

// Bounds returns the window-space rectangle of the first match. It is false
// when nothing matched or the node was never laid out.
func (r FinderResult) Bounds() (graphics.Rect, bool) {
	if len(r.ids) == 0 || r.tree == nil {
		return graphics.Rect{}, false
	}
	return bounds(r.tree, r.ids[0])
}

type predicateFinder struct {
	match       func(core.Widget) bool
	description string
}

func (f predicateFinder) Evaluate(rt *core.RenderTree) []tree.ID {
	var ids []tree.ID
	rt.Walk(func(id tree.ID, _ int) bool {
		if widget, ok := rt.Widget(id); ok && f.match(widget) {
			ids = append(ids, id)
		}
		return true
	})
	return ids
}

func (f predicateFinder) Description() string {
	return f.description
}

// ByType returns a finder that matches nodes whose widget is a T.
func ByType[T core.Widget]() Finder {
	t := reflect.TypeFor[T]()
	return predicateFinder{
		match:       func(w core.Widget) bool { return reflect.TypeOf(w) == t },
		description: fmt.Sprintf("ByType(%s)", t),
	}
}

// ByText returns a finder that matches [widgets.Text] with exact content.
func ByText(text string) Finder {
	return predicateFinder{
		match: func(w core.Widget) bool {
			t, ok := w.(widgets.Text)
			return ok && t.Content == text
		},
		description: fmt.Sprintf("ByText(%q)", text),
	}
}

// ByTextContaining returns a finder that matches [widgets.Text] containing
// substring.
func ByTextContaining(substring string) Finder {
	return predicateFinder{
		match: func(w core.Widget) bool {
			t, ok := w.(widgets.Text)
			return ok && strings.Contains(t.Content, substring)
		},
		description: fmt.Sprintf("ByTextContaining(%q)", substring),
	}
}

// ByPredicate returns a finder that matches widgets for which match returns
// true.
func ByPredicate(description string, match func(core.Widget) bool) Finder {
	return predicateFinder{match: match, description: fmt.Sprintf("ByPredicate(%s)", description)}
}

// descendantFinder finds nodes matching 'matching' below nodes matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f descendantFinder) Evaluate(rt *core.RenderTree) []tree.ID {
	ancestors := make(map[tree.ID]bool)
	for _, id := range f.of.Evaluate(rt) {
		ancestors[id] = true
	}
	var ids []tree.ID
	for _, id := range f.matching.Evaluate(rt) {
		for parent, ok := rt.Parent(id); ok; parent, ok = rt.Parent(parent) {
			if ancestors[parent] {
				ids = append(ids, id)
				break
			}
		}
	}
	return ids
}

func (f descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches nodes satisfying 'matching'
// that are descendants of nodes matching 'of'.
func Descendant(of, matching Finder) Finder {
	return descendantFinder{of: of, matching: matching}
}
