package gfx

import (
	"image"
	"image/color"
)

// Child is anything a Window can composite.
type Child interface {
	Frame() image.Rectangle
	attach(w *Window)
	render(dst *image.RGBA)
}

// Layer is a rectangular region painted by an update proc.
type Layer struct {
	frame  image.Rectangle
	update func(ctx *Context)
	window *Window
}

// NewLayer creates a layer covering frame, in window coordinates.
func NewLayer(frame image.Rectangle) *Layer {
	return &Layer{frame: frame}
}

func (l *Layer) Frame() image.Rectangle { return l.frame }

// SetUpdateProc registers the paint callback run on every composite.
func (l *Layer) SetUpdateProc(fn func(ctx *Context)) {
	l.update = fn
	l.MarkDirty()
}

// MarkDirty requests a repaint of the window the layer belongs to.
func (l *Layer) MarkDirty() {
	if l.window != nil {
		l.window.MarkDirty()
	}
}

// Destroy detaches the layer from its window and drops the update proc.
func (l *Layer) Destroy() {
	if l.window != nil {
		l.window.RemoveChild(l)
	}
	l.update = nil
}

func (l *Layer) attach(w *Window) { l.window = w }

func (l *Layer) render(dst *image.RGBA) {
	if l.update == nil {
		return
	}
	l.update(NewContext(dst, l.frame))
}

// TextLayer draws a single line of text.
type TextLayer struct {
	frame      image.Rectangle
	text       string
	font       *Font
	color      color.RGBA
	background color.RGBA
	align      Alignment
	window     *Window
}

// NewTextLayer creates a text layer with black text on white, left aligned.
func NewTextLayer(frame image.Rectangle) *TextLayer {
	return &TextLayer{
		frame:      frame,
		color:      Black,
		background: White,
	}
}

func (t *TextLayer) Frame() image.Rectangle { return t.frame }
func (t *TextLayer) Text() string           { return t.text }

func (t *TextLayer) SetText(s string) {
	t.text = s
	t.markDirty()
}

func (t *TextLayer) SetFont(f *Font) {
	t.font = f
	t.markDirty()
}

func (t *TextLayer) SetTextColor(c color.RGBA) {
	t.color = c
	t.markDirty()
}

// SetBackgroundColor sets the fill behind the text; Clear leaves it transparent.
func (t *TextLayer) SetBackgroundColor(c color.RGBA) {
	t.background = c
	t.markDirty()
}

func (t *TextLayer) SetAlignment(a Alignment) {
	t.align = a
	t.markDirty()
}

// Destroy detaches the layer from its window and drops its font reference.
func (t *TextLayer) Destroy() {
	if t.window != nil {
		t.window.RemoveChild(t)
	}
	t.font = nil
}

func (t *TextLayer) markDirty() {
	if t.window != nil {
		t.window.MarkDirty()
	}
}

func (t *TextLayer) attach(w *Window) { t.window = w }

func (t *TextLayer) render(dst *image.RGBA) {
	ctx := NewContext(dst, t.frame)
	ctx.SetFillColor(t.background)
	ctx.FillRect(ctx.Bounds())
	if t.font == nil || t.font.Unloaded() {
		return
	}
	ctx.DrawText(t.text, t.font, t.color, image.Rectangle{Max: t.frame.Size()}, t.align)
}
