package gfx

import (
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/font/gofont/gomonobold"
)

func TestFromHex(t *testing.T) {
	got := FromHex(0x00AA55)
	want := color.RGBA{R: 0x00, G: 0xAA, B: 0x55, A: 0xff}
	if got != want {
		t.Errorf("FromHex(0x00AA55) = %v, want %v", got, want)
	}
	if Hex(got) != "#00aa55" {
		t.Errorf("Hex = %q, want #00aa55", Hex(got))
	}
}

func TestWindowRenderBackground(t *testing.T) {
	w := NewWindow(10, 12)
	w.SetBackgroundColor(FromHex(0x55FFFF))
	img := w.Render()

	if img.Bounds() != image.Rect(0, 0, 10, 12) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(9, 11); got != FromHex(0x55FFFF) {
		t.Errorf("corner pixel = %v, want background", got)
	}
	if w.Dirty() {
		t.Error("Render should clear the dirty flag")
	}
	if w.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", w.Frames())
	}
}

func TestLayerMarkDirtyPropagates(t *testing.T) {
	w := NewWindow(10, 10)
	l := NewLayer(w.Bounds())
	w.AddChild(l)
	w.Render()

	l.MarkDirty()
	if !w.Dirty() {
		t.Error("MarkDirty on an attached layer should dirty the window")
	}

	l.Destroy()
	w.Render()
	l.MarkDirty()
	if w.Dirty() {
		t.Error("a destroyed layer should no longer dirty the window")
	}
	if w.Children() != 0 {
		t.Errorf("Children() = %d, want 0", w.Children())
	}
}

func TestFillRectClipsToLayer(t *testing.T) {
	w := NewWindow(20, 20)
	w.SetBackgroundColor(White)
	l := NewLayer(image.Rect(5, 5, 15, 15))
	l.SetUpdateProc(func(ctx *Context) {
		ctx.SetFillColor(Red)
		ctx.FillRect(image.Rect(0, 0, 100, 100))
	})
	w.AddChild(l)
	img := w.Render()

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{5, 5, Red},
		{14, 14, Red},
		{4, 5, White},
		{15, 15, White},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestFillRectClearIsNoop(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	ctx := NewContext(dst, dst.Bounds())
	ctx.SetFillColor(Red)
	ctx.FillRect(dst.Bounds())
	ctx.SetFillColor(Clear)
	ctx.FillRect(dst.Bounds())
	if got := dst.RGBAAt(1, 1); got != Red {
		t.Errorf("pixel = %v, want red to survive a Clear fill", got)
	}
}

func square() *Path {
	return NewPath([]image.Point{{2, 2}, {10, 2}, {10, 10}, {2, 10}, {2, 2}})
}

func TestFillPath(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 16, 16))
	ctx := NewContext(dst, dst.Bounds())
	ctx.SetFillColor(Red)
	ctx.FillPath(square())

	if got := dst.RGBAAt(6, 6); got != Red {
		t.Errorf("inside pixel = %v, want red", got)
	}
	if got := dst.RGBAAt(12, 12); got.A != 0 {
		t.Errorf("outside pixel = %v, want untouched", got)
	}
}

func TestStrokePathOnePixel(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 16, 16))
	ctx := NewContext(dst, dst.Bounds())
	ctx.SetStrokeColor(White)
	ctx.SetStrokeWidth(1)
	ctx.StrokePath(square())

	for _, pt := range []image.Point{{2, 2}, {6, 2}, {10, 6}, {6, 10}, {2, 6}} {
		if got := dst.RGBAAt(pt.X, pt.Y); got != White {
			t.Errorf("edge pixel %v = %v, want white", pt, got)
		}
	}
	if got := dst.RGBAAt(6, 6); got.A != 0 {
		t.Errorf("centre pixel = %v, want untouched by the outline", got)
	}
	if got := dst.RGBAAt(6, 4); got.A != 0 {
		t.Errorf("pixel two rows inside = %v, want untouched by a 1px stroke", got)
	}
}

func TestStrokeWidthClamped(t *testing.T) {
	ctx := NewContext(image.NewRGBA(image.Rect(0, 0, 1, 1)), image.Rect(0, 0, 1, 1))
	ctx.SetStrokeWidth(0)
	if ctx.strokeWidth != 1 {
		t.Errorf("strokeWidth = %d, want 1", ctx.strokeWidth)
	}
}

func TestDestroyedPathNotDrawn(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 16, 16))
	ctx := NewContext(dst, dst.Bounds())
	p := square()
	p.Destroy()
	if !p.Destroyed() {
		t.Fatal("Destroyed() = false after Destroy")
	}
	ctx.SetFillColor(Red)
	ctx.FillPath(p)
	ctx.StrokePath(p)
	if got := dst.RGBAAt(6, 6); got.A != 0 {
		t.Errorf("pixel = %v, want untouched", got)
	}
}

func TestPathBoundsAndCopy(t *testing.T) {
	pts := []image.Point{{3, 1}, {9, 4}, {5, 7}}
	p := NewPath(pts)
	pts[0] = image.Pt(100, 100)

	if got := p.Bounds(); got != image.Rect(3, 1, 9, 7) {
		t.Errorf("Bounds() = %v", got)
	}
	got := p.Points()
	got[1] = image.Pt(0, 0)
	if p.Points()[1] != image.Pt(9, 4) {
		t.Error("Points() should return a copy")
	}
}

func TestTextLayerDrawsCentered(t *testing.T) {
	f, err := SystemFont(FontGothic18Bold)
	if err != nil {
		t.Fatal(err)
	}
	w := NewWindow(100, 30)
	w.SetBackgroundColor(White)
	tl := NewTextLayer(image.Rect(0, 0, 100, 30))
	tl.SetFont(f)
	tl.SetBackgroundColor(Clear)
	tl.SetAlignment(AlignCenter)
	tl.SetText("I")
	w.AddChild(tl)
	img := w.Render()

	dark := func(x0, x1 int) bool {
		for x := x0; x < x1; x++ {
			for y := 0; y < 30; y++ {
				if img.RGBAAt(x, y).R < 0x80 {
					return true
				}
			}
		}
		return false
	}
	if !dark(40, 60) {
		t.Error("expected glyph pixels near the horizontal centre")
	}
	if dark(0, 30) || dark(70, 100) {
		t.Error("centered single glyph should not reach the edges")
	}
}

func TestTextLayerOpaqueBackground(t *testing.T) {
	w := NewWindow(20, 20)
	w.SetBackgroundColor(Red)
	tl := NewTextLayer(image.Rect(0, 0, 10, 10))
	w.AddChild(tl)
	img := w.Render()
	if got := img.RGBAAt(5, 5); got != White {
		t.Errorf("text layer default background = %v, want white", got)
	}
	if got := img.RGBAAt(15, 15); got != Red {
		t.Errorf("outside text layer = %v, want window background", got)
	}
}

func TestSetTextMarksDirty(t *testing.T) {
	w := NewWindow(20, 20)
	tl := NewTextLayer(w.Bounds())
	w.AddChild(tl)
	w.Render()
	tl.SetText("12:00")
	if !w.Dirty() {
		t.Error("SetText should dirty the window")
	}
	if tl.Text() != "12:00" {
		t.Errorf("Text() = %q", tl.Text())
	}
}

func TestLoadFontUnloadOnce(t *testing.T) {
	f, err := LoadFont(gomonobold.TTF, 42)
	if err != nil {
		t.Fatalf("LoadFont: %v", err)
	}
	if f.LineHeight() < 42 {
		t.Errorf("LineHeight() = %d, want >= 42", f.LineHeight())
	}
	if err := f.Unload(); err != nil {
		t.Fatalf("first Unload: %v", err)
	}
	if err := f.Unload(); err != ErrFontUnloaded {
		t.Errorf("second Unload = %v, want ErrFontUnloaded", err)
	}
}

func TestLoadFontInvalid(t *testing.T) {
	if _, err := LoadFont([]byte("not a font"), 12); err == nil {
		t.Error("expected parse error")
	}
}

func TestSystemFont(t *testing.T) {
	f, err := SystemFont(FontGothic14)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Unload(); err != ErrSystemFont {
		t.Errorf("Unload on system font = %v, want ErrSystemFont", err)
	}
	if _, err := SystemFont("wingdings"); err == nil {
		t.Error("expected error for unknown system font")
	}
}
