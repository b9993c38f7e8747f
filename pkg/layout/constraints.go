// Package layout defines the box constraint protocol shared by widgets and
// the render tree: constraints passed down, sizes passed up, and offsets
// recorded by parents for their children.
package layout

import (
	"math"

	"github.com/terramach/terramach/pkg/graphics"
)

// Constraints bound the size a widget may choose.
type Constraints struct {
	MinWidth  float64
	MaxWidth  float64
	MinHeight float64
	MaxHeight float64
}

// NewConstraints builds constraints from a minimum and maximum size.
func NewConstraints(min, max graphics.Size) Constraints {
	return Constraints{
		MinWidth:  min.Width,
		MaxWidth:  max.Width,
		MinHeight: min.Height,
		MaxHeight: max.Height,
	}
}

// Tight returns constraints that only allow size.
func Tight(size graphics.Size) Constraints {
	return NewConstraints(size, size)
}

// Loose returns constraints from zero up to size.
func Loose(size graphics.Size) Constraints {
	return NewConstraints(graphics.Size{}, size)
}

// Unbounded returns constraints with no upper limit.
func Unbounded() Constraints {
	return Loose(UnboundSize())
}

// MinSize returns the smallest allowed size.
func (c Constraints) MinSize() graphics.Size {
	return graphics.Size{Width: c.MinWidth, Height: c.MinHeight}
}

// MaxSize returns the largest allowed size.
func (c Constraints) MaxSize() graphics.Size {
	return graphics.Size{Width: c.MaxWidth, Height: c.MaxHeight}
}

// IsTight reports whether exactly one size satisfies the constraints.
func (c Constraints) IsTight() bool {
	return c.MinWidth >= c.MaxWidth && c.MinHeight >= c.MaxHeight
}

// HasBoundedWidth reports whether MaxWidth is finite.
func (c Constraints) HasBoundedWidth() bool {
	return !math.IsInf(c.MaxWidth, 1)
}

// HasBoundedHeight reports whether MaxHeight is finite.
func (c Constraints) HasBoundedHeight() bool {
	return !math.IsInf(c.MaxHeight, 1)
}

// Constrain clamps size into the constraints.
func (c Constraints) Constrain(size graphics.Size) graphics.Size {
	return graphics.Size{
		Width:  math.Max(math.Min(size.Width, c.MaxWidth), c.MinWidth),
		Height: math.Max(math.Min(size.Height, c.MaxHeight), c.MinHeight),
	}
}

// Enforce clamps c into outer.
func (c Constraints) Enforce(outer Constraints) Constraints {
	return NewConstraints(outer.Constrain(c.MinSize()), outer.Constrain(c.MaxSize()))
}

// Loosen drops the minimum size.
func (c Constraints) Loosen() Constraints {
	return Loose(c.MaxSize())
}

// Deflate shrinks both bounds by insets, never below zero.
func (c Constraints) Deflate(insets EdgeInsets) Constraints {
	h := insets.Horizontal()
	v := insets.Vertical()
	return Constraints{
		MinWidth:  math.Max(0, c.MinWidth-h),
		MaxWidth:  math.Max(0, c.MaxWidth-h),
		MinHeight: math.Max(0, c.MinHeight-v),
		MaxHeight: math.Max(0, c.MaxHeight-v),
	}
}

// UnboundSize returns a size that is infinite in both dimensions.
func UnboundSize() graphics.Size {
	return graphics.Size{Width: math.Inf(1), Height: math.Inf(1)}
}

// UnboundHeight returns a size of width and infinite height.
func UnboundHeight(width float64) graphics.Size {
	return graphics.Size{Width: width, Height: math.Inf(1)}
}

// UnboundWidth returns a size of infinite width and the given height.
func UnboundWidth(height float64) graphics.Size {
	return graphics.Size{Width: math.Inf(1), Height: height}
}

// Fit describes how content of one size is scaled into another.
type Fit int

const (
	// FitContain scales down, preserving aspect ratio, until content fits.
	FitContain Fit = iota
	// FitCover scales up, preserving aspect ratio, until content covers.
	FitCover
	// FitFill stretches content to the target size.
	FitFill
)

// FitSize scales content into target according to fit.
func FitSize(content, target graphics.Size, fit Fit) graphics.Size {
	sx := target.Width / content.Width
	sy := target.Height / content.Height
	switch fit {
	case FitContain:
		scale := math.Min(math.Min(sx, sy), 1)
		return graphics.Size{Width: content.Width * scale, Height: content.Height * scale}
	case FitCover:
		scale := math.Max(math.Max(sx, sy), 1)
		return graphics.Size{Width: content.Width * scale, Height: content.Height * scale}
	default:
		return target
	}
}
