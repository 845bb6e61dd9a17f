package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// Watch reloads the config at path whenever it is written or replaced and passes each valid
// result to fn. Invalid files are logged and skipped. The directory is watched, not the file,
// so editors that save by rename are seen. Watch returns once the watcher is running; it stops
// when ctx is done.
//
// Parameters:
//   - ctx: stops the watcher
//   - path: the config file
//   - fn: receives each reloaded config, on the watcher goroutine
//   - logger: destination for reload errors, slog.Default when nil
//
// Returns:
//   - error: error if the watcher could not be started
func Watch(ctx context.Context, path string, fn func(Config), logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "config")

	expanded, err := homedir.Expand(path)
	if err != nil {
		return errors.Wrapf(err, "expand %s", path)
	}
	expanded, err = filepath.Abs(expanded)
	if err != nil {
		return errors.Wrapf(err, "resolve %s", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create config watcher")
	}
	if err := watcher.Add(filepath.Dir(expanded)); err != nil {
		watcher.Close()
		return errors.Wrapf(err, "watch %s", filepath.Dir(expanded))
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != expanded || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := Load(expanded)
				if err != nil {
					logger.Warn("config reload failed", "path", expanded, "error", err)
					continue
				}
				logger.Info("config reloaded", "path", expanded)
				fn(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("config watcher error", "error", err)
			}
		}
	}()
	return nil
}
