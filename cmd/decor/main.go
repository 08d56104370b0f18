package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/jessevdk/go-flags"

	"github.com/tnguyen21/decor-minutes/internal/app"
	"github.com/tnguyen21/decor-minutes/internal/config"
	"github.com/tnguyen21/decor-minutes/internal/logging"
	"github.com/tnguyen21/decor-minutes/internal/server"
)

type options struct {
	Config   string `short:"c" long:"config" description:"path to config file" default:"~/.config/decor/decor.yaml"`
	Serve    bool   `short:"s" long:"serve" description:"serve the face over SSH"`
	Port     int    `short:"p" long:"port" description:"override listen port"`
	Snapshot string `long:"snapshot" value-name:"PATH" description:"write one frame as PNG and exit"`
	At       string `long:"at" value-name:"RFC3339" description:"time to render with --snapshot"`
	Battery  int    `long:"battery" default:"-1" description:"fix the battery level (0-100)"`
	Debug    bool   `long:"debug" description:"log at debug level"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		log.Fatal("loading config", "err", err)
	}
	applyFlags(&cfg, opts)
	if err := config.Validate(cfg); err != nil {
		log.Fatal("invalid options", "err", err)
	}

	switch {
	case opts.Snapshot != "":
		err = snapshot(cfg, opts)
	case opts.Serve:
		err = serve(cfg)
	default:
		err = runLocal(cfg, opts.Config)
	}
	if err != nil {
		log.Fatal("decor", "err", err)
	}
}

func applyFlags(cfg *config.Config, opts options) {
	if opts.Port > 0 {
		cfg.Port = opts.Port
	}
	if opts.Battery >= 0 {
		cfg.Battery.Source = "static"
		cfg.Battery.Level = opts.Battery
	}
	if opts.Debug {
		cfg.Log.Level = "debug"
	}
}

// snapshot renders the face once, as of --at (default now), to a PNG.
func snapshot(cfg config.Config, opts options) error {
	logging.Setup(os.Stderr, cfg.Log.Level)

	at := time.Now()
	if opts.At != "" {
		var err error
		at, err = time.Parse(time.RFC3339, opts.At)
		if err != nil {
			return fmt.Errorf("parsing --at: %w", err)
		}
	}

	m, err := app.New(app.Options{
		Config:   cfg,
		Location: at.Location(),
		Now:      func() time.Time { return at },
	})
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Snapshot(opts.Snapshot); err != nil {
		return err
	}
	log.Info("snapshot written", "path", opts.Snapshot, "at", at.Format(time.RFC3339))
	return nil
}

func serve(cfg config.Config) error {
	logging.Setup(os.Stderr, cfg.Log.Level)

	srv, err := server.New(&cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	errs := make(chan error, 1)
	go func() {
		log.Info("decor listening", "port", cfg.Port)
		errs <- srv.Start()
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("server error: %w", err)
	case sig := <-done:
		fmt.Println()
		log.Info("shutting down", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown error: %w", err)
	}
	log.Info("decor stopped")
	return nil
}

// runLocal runs the face in this terminal, logging to a file and following
// config file changes.
func runLocal(cfg config.Config, configPath string) error {
	f, err := logging.SetupFile(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer f.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads, err := config.Watch(ctx, config.ExpandPath(configPath))
	if err != nil {
		log.Warn("config reload disabled", "err", err)
	}

	m, err := app.New(app.Options{Config: cfg, Reloads: reloads})
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if fm, ok := final.(app.Model); ok {
		fm.Close()
	} else {
		m.Close()
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
