package gfx

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Alignment positions text horizontally inside a text layer.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Context draws into one layer of a frame. Coordinates are relative to the
// layer origin and everything is clipped to the layer frame.
type Context struct {
	dst         *image.RGBA
	clip        image.Rectangle
	origin      image.Point
	fill        color.RGBA
	stroke      color.RGBA
	strokeWidth int
}

// NewContext returns a context drawing into dst within frame.
func NewContext(dst *image.RGBA, frame image.Rectangle) *Context {
	return &Context{
		dst:         dst,
		clip:        frame.Intersect(dst.Bounds()),
		origin:      frame.Min,
		fill:        Black,
		stroke:      Black,
		strokeWidth: 1,
	}
}

// Bounds returns the drawable area in layer-local coordinates.
func (c *Context) Bounds() image.Rectangle {
	return c.clip.Sub(c.origin)
}

func (c *Context) SetFillColor(col color.RGBA)   { c.fill = col }
func (c *Context) SetStrokeColor(col color.RGBA) { c.stroke = col }

// SetStrokeWidth sets the outline width in pixels. Widths below 1 become 1.
func (c *Context) SetStrokeWidth(w int) {
	c.strokeWidth = max(w, 1)
}

// FillRect fills r with the fill colour.
func (c *Context) FillRect(r image.Rectangle) {
	r = r.Add(c.origin).Intersect(c.clip)
	if r.Empty() || c.fill.A == 0 {
		return
	}
	draw.Draw(c.dst, r, image.NewUniform(c.fill), image.Point{}, draw.Over)
}

// FillPath fills the polygon described by p with the fill colour.
func (c *Context) FillPath(p *Path) {
	if p == nil || p.destroyed || len(p.points) < 3 || c.fill.A == 0 || c.clip.Empty() {
		return
	}
	z := c.rasterizer()
	c.moveTo(z, float32(p.points[0].X), float32(p.points[0].Y))
	for _, pt := range p.points[1:] {
		c.lineTo(z, float32(pt.X), float32(pt.Y))
	}
	z.ClosePath()
	z.Draw(c.dst, c.clip, image.NewUniform(c.fill), image.Point{})
}

// StrokePath draws the closed outline of p with the stroke colour and width.
// Lines run through pixel centres so a 1px stroke covers exactly the pixels
// named by the points.
func (c *Context) StrokePath(p *Path) {
	if p == nil || p.destroyed || len(p.points) < 2 || c.stroke.A == 0 || c.clip.Empty() {
		return
	}
	z := c.rasterizer()
	half := float64(c.strokeWidth) / 2
	n := len(p.points)
	for i := range n {
		a, b := p.points[i], p.points[(i+1)%n]
		if a == b {
			continue
		}
		c.segment(z, a, b, half)
	}
	z.Draw(c.dst, c.clip, image.NewUniform(c.stroke), image.Point{})
}

// segment adds a square-capped quad of half-width h around a-b.
func (c *Context) segment(z *vector.Rasterizer, a, b image.Point, h float64) {
	ax, ay := float64(a.X)+0.5, float64(a.Y)+0.5
	bx, by := float64(b.X)+0.5, float64(b.Y)+0.5
	dx, dy := bx-ax, by-ay
	l := math.Hypot(dx, dy)
	dx, dy = dx/l*h, dy/l*h
	ax, ay = ax-dx, ay-dy
	bx, by = bx+dx, by+dy
	nx, ny := -dy, dx

	c.moveTo(z, float32(ax-nx), float32(ay-ny))
	c.lineTo(z, float32(bx-nx), float32(by-ny))
	c.lineTo(z, float32(bx+nx), float32(by+ny))
	c.lineTo(z, float32(ax+nx), float32(ay+ny))
	z.ClosePath()
}

func (c *Context) rasterizer() *vector.Rasterizer {
	return vector.NewRasterizer(c.clip.Dx(), c.clip.Dy())
}

// moveTo and lineTo translate layer-local coordinates into rasterizer
// coordinates, whose origin is the clip rectangle's corner.
func (c *Context) moveTo(z *vector.Rasterizer, x, y float32) {
	off := c.origin.Sub(c.clip.Min)
	z.MoveTo(x+float32(off.X), y+float32(off.Y))
}

func (c *Context) lineTo(z *vector.Rasterizer, x, y float32) {
	off := c.origin.Sub(c.clip.Min)
	z.LineTo(x+float32(off.X), y+float32(off.Y))
}

// DrawText draws a single line of text top-aligned inside box.
func (c *Context) DrawText(text string, f *Font, col color.RGBA, box image.Rectangle, align Alignment) {
	if text == "" || f == nil || f.face == nil || col.A == 0 {
		return
	}
	box = box.Add(c.origin)
	clip := box.Intersect(c.clip)
	if clip.Empty() {
		return
	}
	d := &font.Drawer{
		Dst:  c.dst.SubImage(clip).(*image.RGBA),
		Src:  image.NewUniform(col),
		Face: f.face,
	}
	width := d.MeasureString(text).Round()
	x := box.Min.X
	switch align {
	case AlignCenter:
		x += (box.Dx() - width) / 2
	case AlignRight:
		x += box.Dx() - width
	}
	d.Dot = fixed.P(x, box.Min.Y+f.face.Metrics().Ascent.Ceil())
	d.DrawString(text)
}
