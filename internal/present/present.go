// Package present turns composited frames into terminal output.
package present

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/blacktop/go-termimg"
	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
)

// Protocol selects how pixels reach the terminal.
type Protocol int

const (
	ProtocolHalfblocks Protocol = iota
	ProtocolKitty
	ProtocolITerm2
	ProtocolSixel
)

func (p Protocol) String() string {
	switch p {
	case ProtocolHalfblocks:
		return "halfblocks"
	case ProtocolKitty:
		return "kitty"
	case ProtocolITerm2:
		return "iterm2"
	case ProtocolSixel:
		return "sixel"
	default:
		return fmt.Sprintf("Protocol(%d)", int(p))
	}
}

// ParseProtocol parses a config protocol name.
func ParseProtocol(s string) (Protocol, error) {
	switch s {
	case "", "halfblocks":
		return ProtocolHalfblocks, nil
	case "kitty":
		return ProtocolKitty, nil
	case "iterm2":
		return ProtocolITerm2, nil
	case "sixel":
		return ProtocolSixel, nil
	default:
		return 0, fmt.Errorf("unknown display protocol %q", s)
	}
}

// Scale selects how a frame is fitted to the terminal.
type Scale int

const (
	ScaleFit    Scale = iota // shrink to fit, keeping aspect ratio
	ScaleNative              // one pixel per half cell, cropped
)

// ParseScale parses a config scale name.
func ParseScale(s string) (Scale, error) {
	switch s {
	case "", "fit":
		return ScaleFit, nil
	case "native":
		return ScaleNative, nil
	default:
		return 0, fmt.Errorf("unknown display scale %q", s)
	}
}

// Renderer encodes frames for one terminal.
type Renderer struct {
	protocol Protocol
	scale    Scale
	styles   *lipgloss.Renderer
}

// NewRenderer returns a renderer. styles may be nil to use the process
// terminal; SSH sessions pass their own so colours match the client.
func NewRenderer(p Protocol, s Scale, styles *lipgloss.Renderer) *Renderer {
	if styles == nil {
		styles = lipgloss.DefaultRenderer()
	}
	return &Renderer{protocol: p, scale: s, styles: styles}
}

func (r *Renderer) Protocol() Protocol { return r.protocol }

// Render encodes img into at most cols x rows terminal cells.
func (r *Renderer) Render(img image.Image, cols, rows int) (string, error) {
	if img == nil {
		return "", fmt.Errorf("image is nil")
	}
	if cols <= 0 || rows <= 0 {
		return "", nil
	}

	switch r.protocol {
	case ProtocolKitty:
		return renderTermimg(img, termimg.Kitty, cols, rows)
	case ProtocolITerm2:
		return renderTermimg(img, termimg.ITerm2, cols, rows)
	case ProtocolSixel:
		return renderTermimg(img, termimg.Sixel, cols, rows)
	default:
		return r.renderHalfblocks(r.fit(img, cols, rows*2)), nil
	}
}

// fit sizes img to at most w x h pixels.
func (r *Renderer) fit(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if b.Dx() <= w && b.Dy() <= h {
		return img
	}
	if r.scale == ScaleNative {
		return imaging.Crop(img, image.Rect(b.Min.X, b.Min.Y, b.Min.X+w, b.Min.Y+h))
	}
	return imaging.Fit(img, w, h, imaging.Lanczos)
}

// renderTermimg delegates graphics protocols to go-termimg.
func renderTermimg(img image.Image, proto termimg.Protocol, cols, rows int) (string, error) {
	ti := termimg.New(img)
	if ti == nil {
		return "", fmt.Errorf("go-termimg: failed to create image wrapper")
	}
	ti.Protocol(proto).Size(cols, rows).Scale(termimg.ScaleFit)
	return ti.Render()
}

const upperHalf = "▀"

// renderHalfblocks draws two pixel rows per text row: the upper half block
// takes the top pixel as foreground and the bottom pixel as background. Runs
// of identical cells share one styled segment.
func (r *Renderer) renderHalfblocks(img image.Image) string {
	b := img.Bounds()
	var sb strings.Builder
	sb.Grow(b.Dx() * (b.Dy()/2 + 1) * 4)

	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		x := b.Min.X
		for x < b.Max.X {
			top, bot := cell(img, x, y)
			run := 1
			for x+run < b.Max.X {
				t, u := cell(img, x+run, y)
				if t != top || u != bot {
					break
				}
				run++
			}
			style := r.styles.NewStyle().
				Foreground(lipgloss.Color(hex(top))).
				Background(lipgloss.Color(hex(bot)))
			sb.WriteString(style.Render(strings.Repeat(upperHalf, run)))
			x += run
		}
	}
	return sb.String()
}

// cell returns the top and bottom pixel colours of the cell at (x, y). A
// missing bottom row repeats the top pixel.
func cell(img image.Image, x, y int) (color.RGBA, color.RGBA) {
	top := toRGBA(img.At(x, y))
	if y+1 >= img.Bounds().Max.Y {
		return top, top
	}
	return top, toRGBA(img.At(x, y+1))
}

func toRGBA(c color.Color) color.RGBA {
	r, g, b, _ := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xff}
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Snapshot writes img to path; the image format follows the extension.
func Snapshot(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("saving snapshot %s: %w", path, err)
	}
	return nil
}
