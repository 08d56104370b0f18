// Package gfx provides the drawing primitives a watchface renders with: a
// fixed-size window, layers with update procs, text layers, polygon paths
// and fonts. Frames are composited into an *image.RGBA.
package gfx

import "image/color"

// Clear is fully transparent. Filling with Clear leaves the destination as is.
var Clear = color.RGBA{}

var (
	Black = FromHex(0x000000)
	White = FromHex(0xFFFFFF)
	Red   = FromHex(0xFF0000)
)

// FromHex converts a 0xRRGGBB value into an opaque colour.
func FromHex(hex int) color.RGBA {
	return color.RGBA{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: 0xff,
	}
}

// Hex returns c as a "#rrggbb" string.
func Hex(c color.RGBA) string {
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		b[1+2*i] = digits[v>>4]
		b[2+2*i] = digits[v&0x0f]
	}
	return string(b)
}
