package watchface

import (
	"image/color"

	"github.com/tnguyen21/decor-minutes/internal/gfx"
)

// NumThemes is the size of both palettes.
const NumThemes = 9

// Theme pairs the progress bar colour with the window background drawn
// behind it. Both always come from the same palette index.
type Theme struct {
	Name       string
	Foreground color.RGBA
	Background color.RGBA
}

var themes = [NumThemes]Theme{
	{"slate", gfx.FromHex(0x555555), gfx.FromHex(0xAAAAAA)},
	{"tiffany", gfx.FromHex(0x00AAAA), gfx.FromHex(0x55FFFF)},
	{"liberty", gfx.FromHex(0x5555AA), gfx.FromHex(0xAAAAFF)},
	{"jaeger", gfx.FromHex(0x00AA55), gfx.FromHex(0xAAFF55)},
	{"violet", gfx.FromHex(0xAA00FF), gfx.FromHex(0xFF55FF)},
	{"orange", gfx.FromHex(0xFF5500), gfx.FromHex(0xFFAA00)},
	{"army", gfx.FromHex(0x555500), gfx.FromHex(0xAAAA00)},
	{"sunset", gfx.FromHex(0xFF5555), gfx.FromHex(0xFFAAAA)},
	{"cobalt", gfx.FromHex(0x0055AA), gfx.FromHex(0x00AAFF)},
}

// ThemeAt returns the theme at index i, which must be in [0, NumThemes).
func ThemeAt(i int) Theme {
	return themes[i]
}
