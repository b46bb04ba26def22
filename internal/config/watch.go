package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the bursts of events editors produce on save.
const reloadDelay = 150 * time.Millisecond

// Watch calls onChange with the re-read configuration each time path is
// written, until ctx is done. The directory is watched rather than the file
// so editors that save by rename are followed. onChange runs on the
// watcher goroutine.
func Watch(ctx context.Context, path string, onChange func(*UserConfig, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch config: %w", err)
	}

	go func() {
		defer w.Close()
		timer := time.NewTimer(reloadDelay)
		timer.Stop()
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				timer.Reset(reloadDelay)
			case <-timer.C:
				cfg, err := Read(path)
				if errors.Is(err, os.ErrNotExist) {
					// Mid-rename; the Create that follows triggers another read.
					continue
				}
				onChange(cfg, err)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				onChange(nil, fmt.Errorf("watch config: %w", err))
			}
		}
	}()
	return nil
}
