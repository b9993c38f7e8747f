package graphics

import "image/color"

// Color is a non-premultiplied 0xAARRGGBB value.
type Color uint32

// RGBA packs r, g, b and a.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB packs an opaque color.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 0xFF)
}

// ColorOf converts any image/color value.
func ColorOf(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA(n.R, n.G, n.B, n.A)
}

// Alpha returns the alpha channel.
func (c Color) Alpha() uint8 { return uint8(c >> 24) }

// NRGBA returns the color as an image/color value.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: c.Alpha()}
}

// RGBAF returns the channels scaled to [0, 1].
func (c Color) RGBAF() (r, g, b, a float64) {
	n := c.NRGBA()
	return float64(n.R) / 255, float64(n.G) / 255, float64(n.B) / 255, float64(n.A) / 255
}

// WithAlpha replaces the alpha channel.
func (c Color) WithAlpha(a uint8) Color {
	return c&0x00FFFFFF | Color(a)<<24
}

// MultiplyAlpha scales the alpha channel by opacity, clamped to [0, 1].
func (c Color) MultiplyAlpha(opacity float64) Color {
	opacity = min(max(opacity, 0), 1)
	return c.WithAlpha(uint8(float64(c.Alpha())*opacity + 0.5))
}

const (
	ColorTransparent Color = 0x00000000
	ColorBlack       Color = 0xFF000000
	ColorWhite       Color = 0xFFFFFFFF
	ColorRed         Color = 0xFFFF0000
	ColorGreen       Color = 0xFF00FF00
	ColorBlue        Color = 0xFF0000FF
)
