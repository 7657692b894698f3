package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/ItsNotGoodName/x-stackwm/internal/core"
	"github.com/fsnotify/fsnotify"
)

const watchDelay = 100 * time.Millisecond

// Watcher signals when the configuration file changes. Bursts of file events
// are reported once.
type Watcher struct {
	filePath string
	changeC  chan struct{}
}

func NewWatcher(filePath string) Watcher {
	return Watcher{
		filePath: filepath.Clean(filePath),
		changeC:  make(chan struct{}, 1),
	}
}

func (w Watcher) String() string {
	return "config.Watcher"
}

func (w Watcher) Changes() <-chan struct{} {
	return w.changeC
}

func (w Watcher) Serve(ctx context.Context) error {
	slog := slog.With("func", "config.Watcher.Serve", "file", w.filePath)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors replace files by renaming, so the directory is watched.
	if err := watcher.Add(filepath.Dir(w.filePath)); err != nil {
		return err
	}

	timer := time.NewTimer(watchDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.filePath || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			slog.Debug("Config file event", "op", ev.Op.String())
			timer.Reset(watchDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watch failed", "error", err)
		case <-timer.C:
			core.FlagChannel(w.changeC)
		}
	}
}
