// Package watch triggers a callback when the configuration file changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/doxconf/internal/logfields"
)

// DefaultDebounce collapses editor save bursts into one reload.
const DefaultDebounce = 500 * time.Millisecond

// ConfigWatcher monitors one configuration file.
type ConfigWatcher struct {
	configPath string
	watcher    *fsnotify.Watcher
	debounce   time.Duration
	onChange   func(ctx context.Context) error
}

// NewConfigWatcher creates a watcher that calls onChange after changes to
// configPath settle for debounce.
func NewConfigWatcher(configPath string, debounce time.Duration, onChange func(ctx context.Context) error) (*ConfigWatcher, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	// Watch the directory: editors often replace the file instead of writing it.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &ConfigWatcher{configPath: absPath, watcher: watcher, debounce: debounce, onChange: onChange}, nil
}

// Run blocks until ctx is done. onChange is never called concurrently with itself.
func (cw *ConfigWatcher) Run(ctx context.Context) error {
	defer func() {
		if err := cw.watcher.Close(); err != nil {
			slog.Warn("Error closing file watcher", logfields.Error(err))
		}
	}()

	slog.Info("Watching configuration", logfields.Path(cw.configPath))

	timer := time.NewTimer(cw.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return nil
			}
			if !cw.relevant(ev) {
				continue
			}
			slog.Debug("Config file change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
			timer.Reset(cw.debounce)
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Config watcher error", logfields.Error(err))
		case <-timer.C:
			if err := cw.onChange(ctx); err != nil {
				slog.Error("Rebuild after config change failed", logfields.Error(err))
			}
		}
	}
}

func (cw *ConfigWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != cw.configPath {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
