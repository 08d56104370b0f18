package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/tnguyen21/decor-minutes/internal/logging"
)

// Watch reloads the config file whenever it is written or recreated and
// delivers each valid result on the returned channel. Invalid edits are
// logged and skipped. The channel closes when ctx is done.
func Watch(ctx context.Context, path string) (<-chan Config, error) {
	resolved := filepath.Clean(expandPath(path))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}
	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(resolved)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(resolved), err)
	}

	logger := logging.For("config")
	out := make(chan Config, 1)
	go func() {
		defer close(out)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != resolved || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := Load(resolved)
				if err != nil {
					logger.Warn("ignoring config change", "path", resolved, "err", err)
					continue
				}
				logger.Debug("config reloaded", "path", resolved, "op", event.Op.String())
				select {
				case out <- cfg:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", "err", err)
			}
		}
	}()
	return out, nil
}
