package layout

import "github.com/terramach/terramach/pkg/graphics"

// EdgeInsets holds offsets for the four sides of a box.
type EdgeInsets struct {
	Left, Top, Right, Bottom float64
}

// EdgeInsetsAll returns equal insets on every side.
func EdgeInsetsAll(value float64) EdgeInsets {
	return EdgeInsets{Left: value, Top: value, Right: value, Bottom: value}
}

// EdgeInsetsSymmetric returns insets with equal horizontal and vertical sides.
func EdgeInsetsSymmetric(horizontal, vertical float64) EdgeInsets {
	return EdgeInsets{Left: horizontal, Top: vertical, Right: horizontal, Bottom: vertical}
}

// Horizontal returns Left + Right.
func (e EdgeInsets) Horizontal() float64 {
	return e.Left + e.Right
}

// Vertical returns Top + Bottom.
func (e EdgeInsets) Vertical() float64 {
	return e.Top + e.Bottom
}

// TopLeft returns the offset of the inner box.
func (e EdgeInsets) TopLeft() graphics.Point {
	return graphics.Point{X: e.Left, Y: e.Top}
}

// Alignment positions a child inside its parent. (-1, -1) is the top-left
// corner and (1, 1) the bottom-right.
type Alignment struct {
	X, Y float64
}

// Common alignments.
var (
	AlignmentTopLeft     = Alignment{X: -1, Y: -1}
	AlignmentCenter      = Alignment{X: 0, Y: 0}
	AlignmentBottomRight = Alignment{X: 1, Y: 1}
)

// Offset returns where a child of size child sits inside parent.
func (a Alignment) Offset(parent, child graphics.Size) graphics.Point {
	return graphics.Point{
		X: (parent.Width - child.Width) * (a.X + 1) / 2,
		Y: (parent.Height - child.Height) * (a.Y + 1) / 2,
	}
}
