package server

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	wishlog "github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"

	"github.com/tnguyen21/decor-minutes/internal/app"
	"github.com/tnguyen21/decor-minutes/internal/config"
	"github.com/tnguyen21/decor-minutes/internal/logging"
)

// Server wraps a wish SSH server that serves one watchface per session.
type Server struct {
	config *config.Config
	wish   *ssh.Server
}

// New creates a Server configured from cfg.
func New(cfg *config.Config) (*Server, error) {
	logger := logging.For("ssh")

	programHandler := func(sess ssh.Session) *tea.Program {
		loc := sessionLocation(sess.Environ(), time.Local)
		model, err := app.New(app.Options{
			Config:   *cfg,
			Styles:   bubbletea.MakeRenderer(sess),
			Location: loc,
		})
		if err != nil {
			logger.Error("starting session", "user", sess.User(), "err", err)
			wish.Fatalln(sess, err)
			return nil
		}
		logger.Info("session started", "user", sess.User(), "tz", loc.String())

		opts := append(bubbletea.MakeOptions(sess), tea.WithAltScreen())
		p := tea.NewProgram(model, opts...)
		go func() {
			p.Wait()
			model.Close()
			logger.Info("session ended", "user", sess.User())
		}()
		return p
	}

	s, err := wish.NewServer(
		wish.WithAddress(fmt.Sprintf(":%d", cfg.Port)),
		wish.WithHostKeyPath(filepath.Join(config.ExpandPath(cfg.HostKeyDir), "decor_host_key")),
		wish.WithPublicKeyAuth(publicKeyHandler),
		wish.WithMiddleware(
			bubbletea.MiddlewareWithProgramHandler(programHandler, termenv.ANSI256),
			activeterm.Middleware(),
			wishlog.MiddlewareWithLogger(logger),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating wish server: %w", err)
	}

	return &Server{config: cfg, wish: s}, nil
}

// Start begins listening for SSH connections. It blocks until the server
// is shut down or encounters a fatal error. Returns nil on graceful shutdown.
func (s *Server) Start() error {
	if err := s.wish.ListenAndServe(); err != nil && err != ssh.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.wish.Shutdown(ctx)
}

// sessionLocation returns the zone named by TZ in env, or fallback when TZ
// is unset or unknown.
func sessionLocation(env []string, fallback *time.Location) *time.Location {
	for _, kv := range env {
		name, ok := strings.CutPrefix(kv, "TZ=")
		if !ok || name == "" {
			continue
		}
		loc, err := time.LoadLocation(strings.TrimPrefix(name, ":"))
		if err != nil {
			return fallback
		}
		return loc
	}
	return fallback
}

// publicKeyHandler accepts all SSH public keys. The face is read-only, so
// any key may watch it.
func publicKeyHandler(_ ssh.Context, _ ssh.PublicKey) bool {
	return true
}
