package input

import (
	"slices"
	"testing"

	"github.com/terramach/terramach/pkg/graphics"
)

func TestKeyTableCoversEveryKey(t *testing.T) {
	if len(keyTable) != int(KeyDown)+1 {
		t.Fatalf("keyTable has %d entries, want %d", len(keyTable), int(KeyDown)+1)
	}
}

func TestKeyFromScanCode(t *testing.T) {
	tests := []struct {
		code ScanCode
		want Key
	}{
		{0, KeyA},
		{29, KeyNum0},
		{53, KeyEscape},
		{126, KeyUp},
		{200, KeyUnknown},
		{0xFFFFFFFF, KeyUnknown},
	}
	for _, tt := range tests {
		if got := KeyFromScanCode(tt.code); got != tt.want {
			t.Errorf("KeyFromScanCode(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestKeyString(t *testing.T) {
	if KeyEnter.String() != "Enter" || Key(-3).String() != "Unknown" || Key(999).String() != "Unknown" {
		t.Errorf("unexpected names: %v %v %v", KeyEnter, Key(-3), Key(999))
	}
}

func TestModifiers(t *testing.T) {
	m := ModShift.With(ModAlt)
	if !m.Has(ModShift) || !m.Has(ModAlt) || m.Has(ModControl) {
		t.Errorf("modifiers = %v", m)
	}
	if m.String() != "shift+alt" {
		t.Errorf("String = %q", m.String())
	}
	if m = m.Without(ModShift); m != ModAlt {
		t.Errorf("Without(shift) = %v", m)
	}
}

func TestKeyTracker(t *testing.T) {
	kt := NewKeyTracker()
	kt.SetModifiers(ModShift)
	kt.PushScanCode(0)
	kt.PushCharacter('A')
	kt.PushAction(KeyPress)

	hits := kt.Poll()
	if len(hits) != 1 {
		t.Fatalf("Poll = %v, want 1 hit", hits)
	}
	if hits[0].Key != KeyA || hits[0].Character != 'A' || hits[0].Modifiers != ModShift {
		t.Errorf("hit = %+v", hits[0])
	}
	if hits := kt.Poll(); len(hits) != 0 {
		t.Errorf("second Poll = %v, want none", hits)
	}

	kt.PushAction(KeyRelease)
	if hits := kt.Poll(); len(hits) != 1 || hits[0].Action != KeyRelease {
		t.Errorf("release Poll = %v", hits)
	}
	if len(kt.keys) != 0 {
		t.Error("released key should be forgotten")
	}
}

func TestTouchesOrderAndCenter(t *testing.T) {
	touches := Touches{}
	touches.Update(Touch{ID: 3, Location: graphics.Pt(10, 0)})
	touches.Update(Touch{ID: 1, Location: graphics.Pt(0, 10)})
	if !slices.Equal(touches.IDs(), []TouchID{1, 3}) {
		t.Errorf("IDs = %v", touches.IDs())
	}
	if c := touches.Center(); c != graphics.Pt(5, 5) {
		t.Errorf("Center = %v", c)
	}
	clone := touches.Clone()
	touches.Remove(1)
	if len(clone) != 2 || len(touches) != 1 {
		t.Errorf("clone = %v, touches = %v", clone, touches)
	}
}

func TestTouchTracker(t *testing.T) {
	tr := NewTouchTracker()
	if _, ok := tr.BeginTouch(0); ok {
		t.Error("touch without a known position should not be active")
	}
	touch, ok := tr.Move(graphics.Pt(4, 5))
	if !ok || touch.Location != graphics.Pt(4, 5) {
		t.Errorf("Move = %v, %v", touch, ok)
	}
	if got, ok := tr.Touch(0); !ok || got.Location != graphics.Pt(4, 5) {
		t.Errorf("Touch(0) = %v, %v", got, ok)
	}
	if _, ok := tr.EndTouch(0); !ok {
		t.Error("EndTouch should return the active touch")
	}
	if !tr.IsEmpty() {
		t.Error("tracker should be empty after EndTouch")
	}

	if _, ok := tr.Move(graphics.Pt(1, 1)); ok {
		t.Error("Move with no touch down should report false")
	}
	if touch, ok := tr.BeginTouch(1); !ok || touch.Location != graphics.Pt(1, 1) {
		t.Errorf("BeginTouch after Move = %v, %v", touch, ok)
	}
}

func TestCursorString(t *testing.T) {
	if CursorText.String() != "text" || Cursor(42).String() != "unknown" {
		t.Error("unexpected cursor names")
	}
}
