package graphics

import (
	"image"
	"slices"
)

// Picture is a recorded display list. Layers keep pictures between frames
// and replay them at composite time, so a picture never changes once
// recording ended.
type Picture struct {
	ops    []func(Canvas)
	bounds Rect
}

// Playback replays the recording onto canvas.
func (p *Picture) Playback(canvas Canvas) {
	for _, op := range p.ops {
		op(canvas)
	}
}

// Bounds returns the rectangle passed to BeginRecording.
func (p *Picture) Bounds() Rect { return p.bounds }

// Len returns the number of recorded calls.
func (p *Picture) Len() int { return len(p.ops) }

// PictureRecorder turns canvas calls into a Picture. One recorder is reused
// across sessions; each EndRecording hands out an independent copy.
type PictureRecorder struct {
	ops       []func(Canvas)
	recording bool
	bounds    Rect
}

// BeginRecording discards any previous session and returns the canvas to
// draw into.
func (r *PictureRecorder) BeginRecording(bounds Rect) Canvas {
	clear(r.ops)
	r.ops = r.ops[:0]
	r.recording = true
	r.bounds = bounds
	return recordingCanvas{r}
}

// IsRecording reports whether BeginRecording was called without a matching
// EndRecording.
func (r *PictureRecorder) IsRecording() bool { return r.recording }

// EndRecording closes the session. Nothing drawn yields nil.
func (r *PictureRecorder) EndRecording() *Picture {
	if !r.recording {
		return nil
	}
	r.recording = false
	if len(r.ops) == 0 {
		return nil
	}
	return &Picture{ops: slices.Clone(r.ops), bounds: r.bounds}
}

func (r *PictureRecorder) record(op func(Canvas)) {
	if r.recording {
		r.ops = append(r.ops, op)
	}
}

// recordingCanvas captures arguments by value; the *Font and image.Image
// pointers are shared with the caller.
type recordingCanvas struct {
	r *PictureRecorder
}

func (c recordingCanvas) Save() { c.r.record(Canvas.Save) }

func (c recordingCanvas) SaveLayerAlpha(alpha float64) {
	c.r.record(func(dst Canvas) { dst.SaveLayerAlpha(alpha) })
}

func (c recordingCanvas) Restore() { c.r.record(Canvas.Restore) }

func (c recordingCanvas) Translate(dx, dy float64) {
	c.r.record(func(dst Canvas) { dst.Translate(dx, dy) })
}

func (c recordingCanvas) Scale(sx, sy float64) {
	c.r.record(func(dst Canvas) { dst.Scale(sx, sy) })
}

func (c recordingCanvas) Rotate(radians float64) {
	c.r.record(func(dst Canvas) { dst.Rotate(radians) })
}

func (c recordingCanvas) ClipRect(rect Rect) {
	c.r.record(func(dst Canvas) { dst.ClipRect(rect) })
}

func (c recordingCanvas) ClipRRect(rrect RRect) {
	c.r.record(func(dst Canvas) { dst.ClipRRect(rrect) })
}

func (c recordingCanvas) Clear(color Color) {
	c.r.record(func(dst Canvas) { dst.Clear(color) })
}

func (c recordingCanvas) DrawRect(rect Rect, paint Paint) {
	c.r.record(func(dst Canvas) { dst.DrawRect(rect, paint) })
}

func (c recordingCanvas) DrawRRect(rrect RRect, paint Paint) {
	c.r.record(func(dst Canvas) { dst.DrawRRect(rrect, paint) })
}

func (c recordingCanvas) DrawText(text string, origin Point, font *Font, color Color) {
	c.r.record(func(dst Canvas) { dst.DrawText(text, origin, font, color) })
}

func (c recordingCanvas) DrawImage(img image.Image, position Point) {
	c.r.record(func(dst Canvas) { dst.DrawImage(img, position) })
}

func (c recordingCanvas) Size() Size { return c.r.bounds.Size() }
