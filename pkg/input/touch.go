// Package input holds the platform-neutral input vocabulary: touches,
// keys, modifiers and cursors.
package input

import (
	"maps"
	"slices"

	"github.com/terramach/terramach/pkg/graphics"
)

// TouchID identifies one finger or pointer for the duration of a touch.
type TouchID int

// Touch is a pointer position.
type Touch struct {
	ID       TouchID
	Location graphics.Point
}

// Touches is the set of active touches keyed by ID.
type Touches map[TouchID]Touch

// Update inserts or replaces touch.
func (t Touches) Update(touch Touch) {
	t[touch.ID] = touch
}

// Remove deletes the touch with id.
func (t Touches) Remove(id TouchID) {
	delete(t, id)
}

// IDs returns the active IDs in ascending order.
func (t Touches) IDs() []TouchID {
	return slices.Sorted(maps.Keys(t))
}

// All returns the touches ordered by ID.
func (t Touches) All() []Touch {
	all := make([]Touch, 0, len(t))
	for _, id := range t.IDs() {
		all = append(all, t[id])
	}
	return all
}

// Center returns the mean location, or the origin when empty.
func (t Touches) Center() graphics.Point {
	if len(t) == 0 {
		return graphics.Point{}
	}
	var sum graphics.Point
	for _, touch := range t {
		sum = sum.Add(touch.Location)
	}
	return sum.Scale(1 / float64(len(t)))
}

// Clone returns an independent copy.
func (t Touches) Clone() Touches {
	return maps.Clone(t)
}

type activeTouch struct {
	touch  Touch
	active bool
}

// TouchTracker turns platform mouse callbacks, which report buttons and
// positions separately, into touches. A touch becomes active once a
// position is known for it.
type TouchTracker struct {
	touches map[TouchID]*activeTouch
	current TouchID
	hasCur  bool
	offset  *graphics.Point
}

// NewTouchTracker returns an empty tracker.
func NewTouchTracker() *TouchTracker {
	return &TouchTracker{touches: make(map[TouchID]*activeTouch)}
}

// IsEmpty reports whether no touch is down.
func (t *TouchTracker) IsEmpty() bool {
	return len(t.touches) == 0
}

// Reset forgets every touch and the last known position.
func (t *TouchTracker) Reset() {
	clear(t.touches)
	t.hasCur = false
	t.offset = nil
}

// BeginTouch starts touch id at the last known position. It reports false
// when no position is known yet.
func (t *TouchTracker) BeginTouch(id TouchID) (Touch, bool) {
	at, ok := t.touches[id]
	if !ok {
		at = &activeTouch{touch: Touch{ID: id}}
		t.touches[id] = at
	}
	at.active = false
	t.current, t.hasCur = id, true
	if t.offset == nil {
		return Touch{}, false
	}
	at.active = true
	at.touch.Location = *t.offset
	return at.touch, true
}

// BeginTouchAt starts touch id at location.
func (t *TouchTracker) BeginTouchAt(id TouchID, location graphics.Point) Touch {
	at, ok := t.touches[id]
	if !ok {
		at = &activeTouch{touch: Touch{ID: id}}
		t.touches[id] = at
	}
	t.current, t.hasCur = id, true
	at.active = true
	at.touch.Location = location
	return at.touch
}

// EndTouch releases id and returns it if it was active.
func (t *TouchTracker) EndTouch(id TouchID) (Touch, bool) {
	if t.hasCur && t.current == id {
		t.hasCur = false
	}
	at, ok := t.touches[id]
	if !ok {
		return Touch{}, false
	}
	delete(t.touches, id)
	return at.touch, at.active
}

// Move records a new pointer position and moves the current touch there.
// It reports false when no touch is down.
func (t *TouchTracker) Move(location graphics.Point) (Touch, bool) {
	t.offset = &location
	if !t.hasCur {
		return Touch{}, false
	}
	at, ok := t.touches[t.current]
	if !ok {
		return Touch{}, false
	}
	at.active = true
	at.touch.Location = location
	return at.touch, true
}

// Touch returns the active touch with id.
func (t *TouchTracker) Touch(id TouchID) (Touch, bool) {
	at, ok := t.touches[id]
	if !ok || !at.active {
		return Touch{}, false
	}
	return at.touch, true
}
