package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce collapses the burst of events editors emit for one save.
const debounce = 100 * time.Millisecond

// Watch reloads path whenever it is written or recreated and calls onChange with the new configuration.
// Reloads that fail to decode or validate are logged and skipped. The directory is watched rather than the
// file so editors that replace the file on save keep working. Watch blocks until ctx is cancelled.
//
// Parameters:
//   - ctx: cancels the watch
//   - path: the config file
//   - onChange: called from the watcher goroutine with each valid reload
//
// Returns:
//   - error: an error if the watcher could not be started
func Watch(ctx context.Context, path string, onChange func(Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve config path %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

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
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("config watcher error: %v", err)
		case <-timer.C:
			cfg, err := Load(abs)
			if err != nil {
				log.Printf("failed to reload config: %v", err)
				continue
			}
			log.Printf("reloaded config %s", path)
			onChange(cfg)
		}
	}
}
