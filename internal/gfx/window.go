package gfx

import (
	"image"
	"image/color"
	"slices"
)

// Window is the root drawing surface. Children are composited in the order
// they were added, on top of the background colour.
type Window struct {
	size       image.Point
	background color.RGBA
	children   []Child
	dirty      bool
	frames     uint64
}

// NewWindow returns a white window of the given pixel size.
func NewWindow(width, height int) *Window {
	return &Window{
		size:       image.Pt(width, height),
		background: White,
		dirty:      true,
	}
}

func (w *Window) Bounds() image.Rectangle      { return image.Rectangle{Max: w.size} }
func (w *Window) BackgroundColor() color.RGBA { return w.background }

// SetBackgroundColor changes the background and marks the window dirty.
func (w *Window) SetBackgroundColor(c color.RGBA) {
	w.background = c
	w.dirty = true
}

// AddChild appends c on top of the existing children.
func (w *Window) AddChild(c Child) {
	c.attach(w)
	w.children = append(w.children, c)
	w.dirty = true
}

// RemoveChild detaches c. Removing an unknown child does nothing.
func (w *Window) RemoveChild(c Child) {
	i := slices.Index(w.children, c)
	if i < 0 {
		return
	}
	w.children = slices.Delete(w.children, i, i+1)
	c.attach(nil)
	w.dirty = true
}

// Children returns the number of attached children.
func (w *Window) Children() int { return len(w.children) }

func (w *Window) MarkDirty()  { w.dirty = true }
func (w *Window) Dirty() bool { return w.dirty }

// Frames returns how many times the window has been composited.
func (w *Window) Frames() uint64 { return w.frames }

// Render composites a fresh frame and clears the dirty flag.
func (w *Window) Render() *image.RGBA {
	dst := image.NewRGBA(w.Bounds())
	bg := NewContext(dst, dst.Bounds())
	bg.SetFillColor(w.background)
	bg.FillRect(dst.Bounds())
	for _, c := range w.children {
		c.render(dst)
	}
	w.dirty = false
	w.frames++
	return dst
}
