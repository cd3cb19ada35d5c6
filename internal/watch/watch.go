// Package watch reruns work when input files change.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/docgraph/pkg/logging"
)

// DefaultDebounce coalesces the bursts of events editors produce on save.
const DefaultDebounce = 300 * time.Millisecond

// Watcher calls OnChange after any watched file is written or replaced.
// Changes arriving within Debounce of each other trigger one call.
type Watcher struct {
	Paths    []string
	Debounce time.Duration
	OnChange func(ctx context.Context, path string)
}

// New creates a watcher for paths.
func New(onChange func(ctx context.Context, path string), paths ...string) *Watcher {
	return &Watcher{Paths: paths, Debounce: DefaultDebounce, OnChange: onChange}
}

// Run watches until ctx is cancelled and returns ctx.Err(). OnChange runs
// on a timer goroutine, never concurrently with itself.
//
// Directories are watched rather than files so that editors replacing a
// file on save are still noticed.
func (w *Watcher) Run(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	files := make(map[string]bool, len(w.Paths))
	dirs := make(map[string]bool)
	for _, p := range w.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		files[abs] = true
		if dir := filepath.Dir(abs); !dirs[dir] {
			if err := fw.Add(dir); err != nil {
				return err
			}
			dirs[dir] = true
		}
		logger.Info("Watching for changes", "path", abs)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	var (
		mu    sync.Mutex
		timer *time.Timer
		fire  sync.Mutex
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !files[abs] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				if ctx.Err() != nil {
					return
				}
				fire.Lock()
				defer fire.Unlock()
				logger.Info("File changed", "path", abs)
				w.OnChange(ctx, abs)
			})
			mu.Unlock()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "err", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
