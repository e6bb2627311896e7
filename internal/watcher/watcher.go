// Package watcher follows bookmark files for modification and triggers a
// callback after changes settle. Chromium-family browsers replace the
// bookmark file atomically (write temp, rename over), so the watch is placed
// on each file's parent directory and events are filtered by name.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce spaces out bursts of rename/write events from a single
// browser save into one callback.
const DefaultDebounce = 2 * time.Second

// Watcher triggers OnChange when any of the watched bookmark files is
// rewritten.
type Watcher struct {
	files    map[string]struct{}
	debounce time.Duration

	// OnChange receives the path of the bookmark file that settled.
	OnChange func(path string)

	// Logf reports watch lifecycle and errors. Defaults to a no-op.
	Logf func(format string, args ...any)
}

// New builds a Watcher over the given bookmark file paths.
func New(files []string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	set := make(map[string]struct{}, len(files))
	for _, f := range files {
		set[filepath.Clean(f)] = struct{}{}
	}
	return &Watcher{
		files:    set,
		debounce: debounce,
		Logf:     func(string, ...any) {},
	}
}

// Watch blocks until the context is cancelled, invoking OnChange once per
// settled burst of changes to a watched file.
func (w *Watcher) Watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	dirs := make(map[string]struct{}, len(w.files))
	for file := range w.files {
		dirs[filepath.Dir(file)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.Logf("watching %s", dir)
	}

	// timer is armed on the first relevant event and reset on each follow-up
	// so the callback fires once the browser finishes its save.
	var timer *time.Timer
	var timerC <-chan time.Time
	var pending string

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			pending = filepath.Clean(event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			if w.OnChange != nil {
				w.OnChange(pending)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.Logf("watcher error: %v", err)
		}
	}
}

// relevant reports whether the event touches a watched bookmark file in a way
// that indicates new content.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if _, ok := w.files[filepath.Clean(event.Name)]; !ok {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
