package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the file must stay quiet before onChange runs
const DefaultDebounce = 500 * time.Millisecond

// ConfigWatcher calls a function whenever one file changes on disk
type ConfigWatcher struct {
	path     string
	debounce time.Duration
	onChange func(ctx context.Context)
	logger   *log.Logger
}

// New creates a watcher for path. onChange runs at most once per burst of
// writes and never concurrently with itself.
func New(path string, debounce time.Duration, onChange func(ctx context.Context), logger *log.Logger) *ConfigWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = log.Default()
	}

	return &ConfigWatcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}
}

// Run watches until ctx is cancelled
func (w *ConfigWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer watcher.Close()

	// editors replace files by rename, so watch the directory
	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.logger.Debug("watching config file", "path", w.path)

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	fire := func() {
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		w.logger.Info("config file changed, rebuilding catalog", "path", w.path)
		w.onChange(ctx)
	}

	defer func() {
		if timer != nil {
			timer.Stop()
		}
		// wait for a rebuild in flight
		mu.Lock()
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}

			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", "err", err)
		}
	}
}

func (w *ConfigWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
