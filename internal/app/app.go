// Package app is the terminal host for the watchface: a bubbletea program
// that delivers clock ticks, battery changes and config reloads to the face
// and paints its frames.
package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tnguyen21/decor-minutes/internal/battery"
	"github.com/tnguyen21/decor-minutes/internal/config"
	"github.com/tnguyen21/decor-minutes/internal/gfx"
	"github.com/tnguyen21/decor-minutes/internal/logging"
	"github.com/tnguyen21/decor-minutes/internal/present"
	"github.com/tnguyen21/decor-minutes/internal/theme"
	"github.com/tnguyen21/decor-minutes/internal/watchface"
)

// TickMsg is the once-per-second clock event.
type TickMsg time.Time

// ReloadMsg carries a reloaded config file.
type ReloadMsg config.Config

// Options configures a Model. Only Config is required.
type Options struct {
	Config   config.Config
	Source   battery.Source     // nil builds one from Config.Battery
	Styles   *lipgloss.Renderer // nil uses the process terminal
	Location *time.Location     // nil uses time.Local
	Rand     watchface.Rand     // nil seeds from Config.Seed or the clock
	Now      func() time.Time
	Reloads  <-chan config.Config
}

// Model is the root bubbletea Model hosting one watchface.
type Model struct {
	config     *config.Config
	face       *watchface.Face
	window     *gfx.Window
	battery    *battery.Service
	locale     *Locale
	presenter  *present.Renderer
	keys       KeyMap
	help       help.Model
	showHelp   bool
	width      int
	height     int
	layoutMode LayoutMode
	loc        *time.Location
	now        func() time.Time
	reloads    <-chan config.Config
	frame      *frameCache
	closeOnce  *sync.Once
	log        *log.Logger
}

// frameCache holds the last encoded frame so unchanged frames are not
// re-encoded on every View.
type frameCache struct {
	view string
	err  error
	cols int
	rows int
}

// Ensure KeyMap satisfies help.KeyMap at compile time.
var _ help.KeyMap = KeyMap{}

// New builds the host and loads the watchface.
func New(opts Options) (Model, error) {
	cfg := opts.Config

	src := opts.Source
	if src == nil {
		var err error
		src, err = battery.NewSource(cfg.Battery.Source, cfg.Battery.Level, cfg.Battery.Command)
		if err != nil {
			return Model{}, err
		}
	}
	proto, err := present.ParseProtocol(cfg.Display.Protocol)
	if err != nil {
		return Model{}, err
	}
	scale, err := present.ParseScale(cfg.Display.Scale)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		config:    &cfg,
		window:    gfx.NewWindow(watchface.ScreenWidth, watchface.ScreenHeight),
		battery:   battery.NewService(src, 0),
		locale:    NewLocale(cfg.Clock24h),
		presenter: present.NewRenderer(proto, scale, opts.Styles),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		loc:       opts.Location,
		now:       opts.Now,
		reloads:   opts.Reloads,
		frame:     &frameCache{},
		closeOnce: &sync.Once{},
		log:       logging.For("app"),
	}
	m.help.ShowAll = true
	if m.loc == nil {
		m.loc = time.Local
	}
	if m.now == nil {
		m.now = time.Now
	}

	rnd := opts.Rand
	if rnd == nil && cfg.Seed != 0 {
		rnd = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	}
	m.face = watchface.New(m.window, watchface.Options{
		Locale:  m.locale,
		Rand:    rnd,
		Battery: m.battery,
		Logger:  logging.For("face"),
	})
	if err := m.face.Load(context.Background(), m.clockNow()); err != nil {
		return Model{}, fmt.Errorf("loading watchface: %w", err)
	}
	return m, nil
}

// Face returns the hosted watchface.
func (m Model) Face() *watchface.Face { return m.face }

// Snapshot composites the current frame and writes it to path as a PNG.
func (m Model) Snapshot(path string) error {
	return present.Snapshot(m.window.Render(), path)
}

// Close tears the watchface down. Safe to call more than once.
func (m Model) Close() {
	m.closeOnce.Do(func() {
		if err := m.face.Unload(); err != nil {
			m.log.Warn("unloading watchface", "err", err)
		}
	})
}

func (m Model) clockNow() time.Time {
	return m.now().In(m.loc)
}

func (m Model) pollInterval() time.Duration {
	return time.Duration(m.config.Battery.PollInterval) * time.Second
}

// Init starts the clock, the battery poller and the config listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		everySecond(),
		battery.SchedulePoll(m.pollInterval()),
		waitForReload(m.reloads),
	)
}

// everySecond fires on the next wall-clock second boundary.
func everySecond() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func waitForReload(ch <-chan config.Config) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return ReloadMsg(cfg)
	}
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutMode = GetLayoutMode(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.face.Tick(time.Time(msg).In(m.loc))
		return m, everySecond()

	case battery.PollMsg:
		return m, battery.ReadCmd(m.battery)

	case battery.StateMsg:
		if msg.Err != nil {
			m.log.Warn("battery read failed", "err", msg.Err)
		} else if m.battery.Observe(msg.State) {
			m.log.Debug("battery changed", "percent", msg.State.Percent, "charging", msg.State.Charging)
			m.face.BatteryChanged(msg.State)
		}
		return m, battery.SchedulePoll(m.pollInterval())

	case ReloadMsg:
		*m.config = config.Config(msg)
		m.locale.SetSystem(m.config.Clock24h)
		m.face.Refresh(m.clockNow())
		m.log.Info("config reloaded", "clock_24h", m.config.Clock24h)
		return m, waitForReload(m.reloads)
	}

	return m, nil
}

// handleKey processes global key bindings.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp

	case key.Matches(msg, m.keys.Refresh):
		m.face.Refresh(m.clockNow())

	case key.Matches(msg, m.keys.ToggleClock):
		m.locale.Toggle()
		m.face.Refresh(m.clockNow())
	}
	return m, nil
}

// View renders the watchface (or help) above the status bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 || m.face.State() == watchface.TornDown {
		return ""
	}

	rows := ContentHeight(m.height)
	var content string
	if m.showHelp {
		content = m.renderHelp()
	} else {
		content = m.renderFrame(m.width, rows)
	}
	if m.showHelp || m.presenter.Protocol() == present.ProtocolHalfblocks {
		content = lipgloss.Place(m.width, rows, lipgloss.Center, lipgloss.Center, content)
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderStatusBar())
}

// renderFrame composites and encodes a new frame only when the window is
// dirty or the available area changed.
func (m Model) renderFrame(cols, rows int) string {
	c := m.frame
	if m.window.Dirty() || c.cols != cols || c.rows != rows {
		img := m.window.Render()
		c.view, c.err = m.presenter.Render(img, cols, rows)
		c.cols, c.rows = cols, rows
	}
	if c.err != nil {
		return theme.FailStyle.Render("render failed: " + c.err.Error())
	}
	return c.view
}

func (m Model) renderHelp() string {
	title := theme.HelpTitleStyle.Render("Decor Minutes")
	return theme.HelpBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, m.help.View(m.keys)))
}

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	level := fmt.Sprintf("%d%%", m.face.BatteryLevel())
	icon, levelStyle := theme.IconBatteryOK, theme.PassStyle
	if m.face.GlyphVisible() {
		icon, levelStyle = theme.IconBatteryLow, theme.FailStyle
	}
	if m.battery.Last().Charging {
		icon = theme.IconBatteryCharging
	}
	parts := []string{icon + " " + levelStyle.Render(level)}

	if m.layoutMode >= LayoutMedium {
		clock := theme.Label12h
		if m.locale.Is24hStyle() {
			clock = theme.Label24h
		}
		th := m.face.Theme()
		swatch := theme.Swatch(gfx.Hex(th.Foreground)) + theme.Swatch(gfx.Hex(th.Background))
		parts = append(parts,
			theme.AccentStyle.Render(clock),
			swatch+" "+theme.MutedStyle.Render(th.Name),
		)
	}
	if m.layoutMode == LayoutWide {
		parts = append(parts, theme.MutedStyle.Render("?=help  q=quit"))
	}

	return theme.StatusBarStyle.Width(m.width).Render(strings.Join(parts, "  |  "))
}
