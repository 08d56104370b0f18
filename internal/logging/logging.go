// Package logging configures the process logger. The TUI owns the terminal,
// so interactive runs log to a file; serve mode logs to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	mu   sync.Mutex
	root = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
)

// ParseLevel maps a config level name to a log level. Unknown names fall
// back to info.
func ParseLevel(level string) log.Level {
	l, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel
	}
	return l
}

// Setup points the process logger at w.
func Setup(w io.Writer, level string) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	mu.Lock()
	root = l
	mu.Unlock()
	log.SetDefault(l)
	return l
}

// SetupFile opens (appending) the log file at path, creating parent
// directories, and points the process logger at it. The caller closes the
// returned file.
func SetupFile(path, level string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	Setup(f, level)
	return f, nil
}

// For returns a logger tagged with component.
func For(component string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	return root.WithPrefix(component)
}
