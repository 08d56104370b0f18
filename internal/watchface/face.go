// Package watchface implements the Decor Minutes face: a progress bar that
// fills across each minute, the time and date, a colour theme that changes
// every minute and a warning glyph when the battery runs low.
package watchface

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/image/font/gofont/gomonobold"

	"github.com/tnguyen21/decor-minutes/internal/battery"
	"github.com/tnguyen21/decor-minutes/internal/gfx"
	"github.com/tnguyen21/decor-minutes/internal/logging"
)

// Screen geometry in pixels.
const (
	ScreenWidth  = 144
	ScreenHeight = 168
)

// LowBatteryThreshold is the charge percentage below which the glyph shows.
const LowBatteryThreshold = 25

const timeFontSize = 42

var (
	ErrTornDown = errors.New("watchface: torn down")
	ErrLoaded   = errors.New("watchface: already loaded")
	// ErrResource is returned when a font or layer cannot be created.
	ErrResource = errors.New("watchface: resource exhausted")
)

// State is the face lifecycle stage.
type State int

const (
	Uninitialized State = iota
	Initialized
	Running
	TornDown
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Running:
		return "running"
	case TornDown:
		return "torn down"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Locale reports the user's clock style.
type Locale interface {
	Is24hStyle() bool
}

// LocaleFunc adapts a function to Locale.
type LocaleFunc func() bool

func (f LocaleFunc) Is24hStyle() bool { return f() }

// Rand picks theme indices. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// BatteryPeeker returns the current charge state on demand.
type BatteryPeeker interface {
	Peek(ctx context.Context) (battery.ChargeState, error)
}

// Options configures a Face. Zero fields get defaults: 24-hour clock, a
// time-seeded generator, no battery service (full charge) and the Go Mono
// Bold face for the time.
type Options struct {
	Locale   Locale
	Rand     Rand
	Battery  BatteryPeeker
	TimeFont []byte
	Logger   *log.Logger
}

// Face is the watchface controller. It owns all face state and is driven by
// its host through Load, Tick, Refresh, BatteryChanged and Unload, one call
// at a time.
type Face struct {
	window  *gfx.Window
	locale  Locale
	rand    Rand
	battery BatteryPeeker
	ttf     []byte
	log     *log.Logger

	canvas    *gfx.Layer
	timeLayer *gfx.TextLayer
	infoLayer *gfx.TextLayer
	timeFont  *gfx.Font
	glyph     *gfx.Path

	theme        int
	batteryLevel int
	boxWidth     int

	clockBuf [len("00:00")]byte
	dateBuf  [len("Wed. 30. Sep. 2026") + 8]byte
	clock    string
	date     string

	state State
}

// New returns an unloaded face drawing into window.
func New(window *gfx.Window, opts Options) *Face {
	f := &Face{
		window:       window,
		locale:       opts.Locale,
		rand:         opts.Rand,
		battery:      opts.Battery,
		ttf:          opts.TimeFont,
		log:          opts.Logger,
		batteryLevel: battery.Default.Percent,
	}
	if f.locale == nil {
		f.locale = LocaleFunc(func() bool { return true })
	}
	if f.rand == nil {
		seed := uint64(time.Now().UnixNano())
		f.rand = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	if f.ttf == nil {
		f.ttf = gomonobold.TTF
	}
	if f.log == nil {
		f.log = logging.For("face")
	}
	return f
}

// Load creates the face's layers, fonts and glyph, reads the battery once
// and renders the first frame as of now.
func (f *Face) Load(ctx context.Context, now time.Time) error {
	switch f.state {
	case Uninitialized:
	case TornDown:
		return ErrTornDown
	default:
		return ErrLoaded
	}

	f.theme = 0
	f.window.SetBackgroundColor(ThemeAt(f.theme).Background)

	timeFont, err := gfx.LoadFont(f.ttf, timeFontSize)
	if err != nil {
		return fmt.Errorf("%w: loading time font: %v", ErrResource, err)
	}
	infoFont, err := gfx.SystemFont(gfx.FontGothic18Bold)
	if err != nil {
		_ = timeFont.Unload()
		return fmt.Errorf("%w: loading date font: %v", ErrResource, err)
	}
	f.timeFont = timeFont

	f.canvas = gfx.NewLayer(image.Rect(0, 0, ScreenWidth, ScreenHeight))
	f.timeLayer = newLabel(image.Rect(0, 30, 144, 84), timeFont)
	f.infoLayer = newLabel(image.Rect(10, 134, 134, 158), infoFont)

	f.window.AddChild(f.canvas)
	f.window.AddChild(f.timeLayer)
	f.window.AddChild(f.infoLayer)

	f.glyph = gfx.NewPath(batteryGlyph)
	f.canvas.SetUpdateProc(f.paint)
	f.state = Initialized

	if f.battery != nil {
		state, err := f.battery.Peek(ctx)
		if err != nil {
			f.log.Warn("battery unavailable, using fallback", "err", err, "percent", state.Percent)
		}
		f.batteryLevel = state.Percent
	}

	f.update(now, true)
	f.log.Debug("face loaded", "theme", ThemeAt(f.theme).Name, "battery", f.batteryLevel)
	return nil
}

func newLabel(frame image.Rectangle, font *gfx.Font) *gfx.TextLayer {
	l := gfx.NewTextLayer(frame)
	l.SetTextColor(gfx.Black)
	l.SetBackgroundColor(gfx.Clear)
	l.SetFont(font)
	l.SetAlignment(gfx.AlignCenter)
	return l
}

// Tick handles the once-per-second clock event.
func (f *Face) Tick(now time.Time) {
	if !f.live() {
		return
	}
	f.state = Running
	f.update(now, false)
}

// Refresh reformats the time and date and picks a new theme regardless of
// where in the minute now falls.
func (f *Face) Refresh(now time.Time) {
	if !f.live() {
		return
	}
	f.update(now, true)
}

// BatteryChanged records a new charge state. The glyph follows on the next
// repaint.
func (f *Face) BatteryChanged(state battery.ChargeState) {
	if !f.live() {
		return
	}
	f.batteryLevel = state.Percent
}

func (f *Face) live() bool {
	return f.state == Initialized || f.state == Running
}

func (f *Face) update(now time.Time, force bool) {
	s := now.Second()
	f.boxWidth = ProgressWidth(s)
	f.canvas.MarkDirty()

	if s > 0 && !force {
		return
	}

	f.clock = string(AppendClock(f.clockBuf[:0], now, f.locale.Is24hStyle()))
	f.date = string(AppendDate(f.dateBuf[:0], now))
	f.infoLayer.SetText(f.date)
	f.timeLayer.SetText(f.clock)

	f.theme = f.rand.IntN(NumThemes)
	f.window.SetBackgroundColor(ThemeAt(f.theme).Background)
}

func (f *Face) paint(ctx *gfx.Context) {
	ctx.SetFillColor(ThemeAt(f.theme).Foreground)
	ctx.FillRect(image.Rect(0, 0, f.boxWidth, ScreenHeight))

	if f.GlyphVisible() {
		f.drawBattery(ctx)
	}
}

func (f *Face) drawBattery(ctx *gfx.Context) {
	ctx.SetStrokeWidth(2)
	ctx.SetFillColor(gfx.Red)
	ctx.FillPath(f.glyph)

	ctx.SetStrokeColor(gfx.Black)
	ctx.StrokePath(f.glyph)

	ctx.SetStrokeColor(gfx.White)
	ctx.SetStrokeWidth(1)
	ctx.StrokePath(f.glyph)
}

// Unload releases the glyph, the time font and the layers. It succeeds once;
// later calls return ErrTornDown.
func (f *Face) Unload() error {
	switch f.state {
	case TornDown:
		return ErrTornDown
	case Uninitialized:
		f.state = TornDown
		return nil
	}
	f.state = TornDown

	f.timeLayer.Destroy()
	f.infoLayer.Destroy()
	f.glyph.Destroy()
	f.canvas.Destroy()

	if err := f.timeFont.Unload(); err != nil {
		return fmt.Errorf("unloading time font: %w", err)
	}
	f.log.Debug("face unloaded")
	return nil
}

func (f *Face) State() State { return f.state }

// ThemeIndex returns the current palette index.
func (f *Face) ThemeIndex() int { return f.theme }

// Theme returns the current foreground/background pair.
func (f *Face) Theme() Theme { return ThemeAt(f.theme) }

func (f *Face) BatteryLevel() int  { return f.batteryLevel }
func (f *Face) ProgressWidth() int { return f.boxWidth }

// Clock returns the displayed time string.
func (f *Face) Clock() string { return f.clock }

// Date returns the displayed date string.
func (f *Face) Date() string { return f.date }

// GlyphVisible reports whether the low-battery glyph is drawn.
func (f *Face) GlyphVisible() bool {
	return f.batteryLevel < LowBatteryThreshold
}
