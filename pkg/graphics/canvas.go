package graphics

import "image"

// Canvas is what widgets paint into. During paint it is a recording canvas
// feeding a Picture; at composite time it is the display surface. All
// coordinates are logical pixels in the current transform.
type Canvas interface {
	// Save and SaveLayerAlpha push state that Restore pops. A layer saved
	// with SaveLayerAlpha is blended with alpha in [0, 1] when restored.
	Save()
	SaveLayerAlpha(alpha float64)
	Restore()

	Translate(dx, dy float64)
	Scale(sx, sy float64)
	Rotate(radians float64)

	// ClipRect and ClipRRect intersect the clip until the next Restore.
	ClipRect(rect Rect)
	ClipRRect(rrect RRect)

	// Clear replaces every pixel, ignoring the clip and transform.
	Clear(color Color)
	DrawRect(rect Rect, paint Paint)
	DrawRRect(rrect RRect, paint Paint)
	// DrawText draws one line with its top-left corner at origin.
	DrawText(text string, origin Point, font *Font, color Color)
	DrawImage(img image.Image, position Point)

	Size() Size
}
