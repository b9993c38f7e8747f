package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/terramach/terramach/pkg/core"
	"github.com/terramach/terramach/pkg/layers"
	"github.com/terramach/terramach/pkg/tree"
)

// UpdateSnapshotsEnv names the environment variable that makes MatchesFile
// rewrite golden files instead of comparing.
const UpdateSnapshotsEnv = "TERRA_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the widget tree, the layer tree and the canvas calls
// made when the last frame is composited.
type Snapshot struct {
	Widgets    *WidgetNode `json:"widgets"`
	Layers     []string    `json:"layers,omitempty"`
	DisplayOps []DisplayOp `json:"displayOps,omitempty"`
}

// WidgetNode represents a node in the serialized widget tree.
type WidgetNode struct {
	ID       string        `json:"id"`
	Type     string        `json:"type"`
	Size     [2]float64    `json:"size"`
	Offset   [2]float64    `json:"offset"`
	Children []*WidgetNode `json:"children,omitempty"`
}

// CaptureSnapshot captures the current trees and replays the last frame
// into a recording canvas.
func (t *WidgetTester) CaptureSnapshot() *Snapshot {
	snap := &Snapshot{Widgets: &WidgetNode{ID: "root", Type: "root"}}
	if t.tree == nil {
		return snap
	}
	counter := &typeCounter{}
	for _, id := range t.tree.Children(tree.Root) {
		snap.Widgets.Children = append(snap.Widgets.Children, captureWidgetNode(t.tree, id, counter))
	}
	snap.Layers = captureLayers(t.tree.LayerTree())
	if scene, ok := t.pipeline.LastScene(); ok {
		canvas := &serializingCanvas{size: t.size}
		scene.Draw(canvas, t.size, canvas)
		snap.DisplayOps = canvas.ops
	}
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When TERRA_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateSnapshotsEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateSnapshotsEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateSnapshotsEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

// typeCounter assigns stable IDs like "Text#0", "Text#1".
type typeCounter struct {
	counts map[string]int
}

func (c *typeCounter) next(typeName string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[typeName]
	c.counts[typeName] = n + 1
	return fmt.Sprintf("%s#%d", typeName, n)
}

func captureWidgetNode(rt *core.RenderTree, id tree.ID, counter *typeCounter) *WidgetNode {
	widget, _ := rt.Widget(id)
	typeName := widgetTypeName(widget)
	node := &WidgetNode{ID: counter.next(typeName), Type: typeName}
	if state, ok := rt.State(id); ok {
		if size, ok := state.Size(); ok {
			node.Size = [2]float64{round2(size.Width), round2(size.Height)}
		}
		offset := state.Offset()
		node.Offset = [2]float64{round2(offset.X), round2(offset.Y)}
	}
	for _, child := range rt.Children(id) {
		node.Children = append(node.Children, captureWidgetNode(rt, child, counter))
	}
	return node
}

func widgetTypeName(widget core.Widget) string {
	t := reflect.TypeOf(widget)
	if t == nil {
		return "nil"
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// captureLayers lists the layers without widget IDs, which depend on
// insertion history.
func captureLayers(lt *layers.LayerTree) []string {
	var lines []string
	lt.Walk(func(layer layers.Layer, _ tree.ID, depth int) bool {
		lines = append(lines, strings.Repeat("  ", depth)+fmt.Sprint(layer))
		return true
	})
	return lines
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	for i := range max(len(expectedLines), len(actualLines)) {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e == a {
			continue
		}
		if i < len(expectedLines) {
			fmt.Fprintf(&buf, "-%s\n", e)
		}
		if i < len(actualLines) {
			fmt.Fprintf(&buf, "+%s\n", a)
		}
	}
	return buf.String()
}
