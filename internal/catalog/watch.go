package catalog

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/malexanderboyd/pwr9-botdr4ft/internal"
)

// Watch refreshes the manifest whenever a json file in the data directory is written,
// created, removed or renamed. It blocks until ctx is done.
func (s *Store) Watch(ctx context.Context) (err error) {
	logger := internal.GetLogger()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create catalog watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("watch data directory: %w", err)
	}
	logger.Infow("watching catalog", "dir", s.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != ".json" {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
				!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if err := s.Refresh(); err != nil {
				logger.Warnw("catalog refresh failed", "file", event.Name, "error", err.Error())
				continue
			}
			logger.Debugw("catalog refreshed", "file", event.Name, "op", event.Op.String())
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("catalog watcher error", "error", err.Error())
		}
	}
}
