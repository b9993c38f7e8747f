// Package testing provides a widget testing framework for Terramach.
//
// A WidgetTester runs the same event handling and render passes as a live
// app, through app.State, with a fake clock and a pipeline that records
// frames instead of drawing them. Frames requested by widgets are only
// delivered when the test pumps them.
//
// # Quick Start
//
// Create a tester, pump a widget, and make assertions:
//
//	func TestCounter(t *testing.T) {
//	    tester := terratest.NewWidgetTesterWithT(t)
//	    tester.PumpWidget(Counter{})
//
//	    // Simulate gestures
//	    tester.Tap(terratest.ByType[widgets.Gesture]())
//
//	    // Assert state
//	    if !tester.Find(terratest.ByText("1")).Exists() {
//	        t.Error("expected count 1")
//	    }
//	}
//
// # Snapshot Testing
//
// Capture and compare the widget tree, layer tree and composited canvas
// calls:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/counter.snapshot.json")
//
// Update snapshots with:
//
//	TERRA_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Animation Testing
//
// Each PumpFrame advances the fake clock by FrameInterval and delivers the
// pending frame:
//
//	tester.PumpFor(300 * time.Millisecond)
//	tester.PumpAndSettle(time.Second)
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import terratest "github.com/terramach/terramach/pkg/testing"
package testing
