package graphics

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Font measures single-line text. TTF-backed fonts also carry their source
// bytes so rasterizing backends can draw with the same face.
type Font struct {
	face font.Face
	size float64
	data []byte
}

var (
	defaultFontOnce sync.Once
	defaultFont     *Font
)

// DefaultFont returns the fixed 7x13 bitmap font. Its metrics do not depend
// on any font file, which keeps layout deterministic.
func DefaultFont() *Font {
	defaultFontOnce.Do(func() {
		defaultFont = &Font{face: basicfont.Face7x13, size: 13}
	})
	return defaultFont
}

// NewFont parses TrueType or OpenType data and returns a face at size points
// (72 DPI, so one point is one logical pixel).
func NewFont(data []byte, size float64) (*Font, error) {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return &Font{face: face, size: size, data: data}, nil
}

// GoRegular returns the Go Regular font at size.
func GoRegular(size float64) (*Font, error) {
	return NewFont(goregular.TTF, size)
}

// Size returns the nominal font size.
func (f *Font) Size() float64 {
	return f.size
}

// Data returns the font file bytes, or nil for bitmap fonts.
func (f *Font) Data() []byte {
	return f.data
}

// Ascent returns the distance from the top of a line to its baseline.
func (f *Font) Ascent() float64 {
	return fixedToFloat(f.face.Metrics().Ascent)
}

// LineHeight returns the recommended line height.
func (f *Font) LineHeight() float64 {
	return fixedToFloat(f.face.Metrics().Height)
}

// Measure returns the size of text laid out on a single line.
func (f *Font) Measure(text string) Size {
	return Size{
		Width:  fixedToFloat(font.MeasureString(f.face, text)),
		Height: f.LineHeight(),
	}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
