package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watch initializes a filesystem watcher for the specified files, typically
// the .env file feeding Load. It returns a channel that emits an empty
// struct when a change is detected and debounced. The watcher runs in a
// goroutine until the context is canceled.
func Watch(ctx context.Context, logger zerolog.Logger, files ...string) <-chan struct{} {
	reloadCh := make(chan struct{}, 1) // Buffer 1 so we don't block sender

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create fsnotify watcher")
		close(reloadCh)
		return reloadCh
	}

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			logger.Warn().Str("file", file).Msg("Could not resolve absolute path for watch file")
			continue
		}
		if err := watcher.Add(absPath); err != nil {
			logger.Warn().Str("file", file).Err(err).Msg("Could not watch file")
		} else {
			logger.Debug().Str("file", file).Msg("Watching configuration file")
		}
	}

	go func() {
		defer watcher.Close()
		defer close(reloadCh)

		// Debounce timer logic
		var timer *time.Timer
		debounceDuration := 500 * time.Millisecond

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				// Editors often replace the file on save, so Create counts too
				if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
					if timer != nil {
						timer.Stop()
					}
					timer = time.AfterFunc(debounceDuration, func() {
						logger.Info().Str("file", event.Name).Msg("Configuration change detected")
						// Non-blocking send
						select {
						case reloadCh <- struct{}{}:
						default:
						}
					})
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error().Err(err).Msg("Watcher encountered an error")
			}
		}
	}()

	return reloadCh
}
