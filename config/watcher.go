package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DEBOUNCE_INTERVAL = 100 * time.Millisecond

// Watch reloads path whenever it changes and hands the result to onChange
// until ctx is done. Configs that fail to load are logged and skipped.
//
// The parent directory is watched rather than the file itself since most
// editors save by renaming a temporary file over the original.
func Watch(ctx context.Context, path string, onChange func(Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	err = watcher.Add(filepath.Dir(abs))
	if err != nil {
		return fmt.Errorf("failed to watch %q: %w", filepath.Dir(abs), err)
	}

	// writes usually come in bursts
	debounce := time.NewTimer(DEBOUNCE_INTERVAL)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug().Stringer("op", event.Op).Str("path", event.Name).Msg("fs event")
			debounce.Reset(DEBOUNCE_INTERVAL)

		case <-debounce.C:
			c, err := Load(abs)
			if err != nil {
				logger.Warn().Err(err).Msg("config reload failed")
				continue
			}
			logger.Info().Str("path", path).Dur("sample_duration", c.Sample()).Msg("config reloaded")
			onChange(c)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("fsnotify error")
		}
	}
}
