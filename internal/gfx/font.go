package gfx

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// System font keys.
const (
	FontGothic14     = "gothic-14"
	FontGothic18Bold = "gothic-18-bold"
	FontGothic24Bold = "gothic-24-bold"
)

var (
	ErrUnknownFont  = errors.New("gfx: unknown system font")
	ErrSystemFont   = errors.New("gfx: system fonts cannot be unloaded")
	ErrFontUnloaded = errors.New("gfx: font already unloaded")
)

// Font is a sized face. Fonts from LoadFont must be unloaded by their owner;
// system fonts are shared and never unloaded.
type Font struct {
	face     font.Face
	system   bool
	unloaded bool
}

// LoadFont parses a TrueType/OpenType font and returns a face at size pixels.
func LoadFont(ttf []byte, size float64) (*Font, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	face, err := newFace(f, size)
	if err != nil {
		return nil, err
	}
	return &Font{face: face}, nil
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %.0fpx face: %w", size, err)
	}
	return face, nil
}

type systemFont struct {
	ttf  []byte
	size float64
}

var systemFonts = map[string]systemFont{
	FontGothic14:     {goregular.TTF, 14},
	FontGothic18Bold: {gobold.TTF, 18},
	FontGothic24Bold: {gobold.TTF, 24},
}

var (
	parsedMu sync.Mutex
	parsed   = map[string]*opentype.Font{}
)

// SystemFont returns the built-in font registered under key. Parsed font
// data is shared; each call gets its own face so fonts can be used from
// different sessions at once.
func SystemFont(key string) (*Font, error) {
	sf, ok := systemFonts[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFont, key)
	}

	parsedMu.Lock()
	f, ok := parsed[key]
	if !ok {
		var err error
		f, err = opentype.Parse(sf.ttf)
		if err != nil {
			parsedMu.Unlock()
			return nil, fmt.Errorf("parsing system font %s: %w", key, err)
		}
		parsed[key] = f
	}
	parsedMu.Unlock()

	face, err := newFace(f, sf.size)
	if err != nil {
		return nil, err
	}
	return &Font{face: face, system: true}, nil
}

// LineHeight returns the face's ascent plus descent in pixels.
func (f *Font) LineHeight() int {
	m := f.face.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}

// Unloaded reports whether Unload has released the face.
func (f *Font) Unloaded() bool {
	return f.unloaded
}

// Unload releases a font returned by LoadFont.
func (f *Font) Unload() error {
	if f.system {
		return ErrSystemFont
	}
	if f.unloaded {
		return ErrFontUnloaded
	}
	f.unloaded = true
	err := f.face.Close()
	f.face = nil
	return err
}
