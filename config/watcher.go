package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileDebounce is how long Watch waits after a file event before reading,
// so editors that truncate then write are seen once.
const FileDebounce = 50 * time.Millisecond

// Watch reloads the config file at path whenever it changes and calls fn
// with the new value. Writes that decode to an identical Config are
// dropped. Decode errors are passed to fn with the defaults. The directory
// is watched rather than the file so replace-on-save editors are followed.
// Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, logger *slog.Logger, fn func(*Config, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With(slog.String("component", "config_watcher"), slog.String("path", abs))

	last, _ := Load(abs)
	var (
		pending <-chan time.Time
		timer   *time.Timer
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("config event", slog.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(FileDebounce)
			} else {
				timer.Reset(FileDebounce)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			cfg, err := Load(abs)
			if err != nil {
				logger.Warn("config reload failed", slog.Any("error", err))
				fn(cfg, err)
				continue
			}
			if last != nil && *cfg == *last {
				continue
			}
			last = cfg
			logger.Info("config reloaded")
			fn(cfg, nil)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("config watcher", slog.Any("error", err))
		}
	}
}
