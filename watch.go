// FILE: lixenwraith/localconfig/watch.go
package localconfig

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchCallback receives a freshly loaded Config after a watched file changed.
// err is non-nil when the reload or the watcher itself failed.
type WatchCallback func(cfg *Config, err error)

// WatchOption configures a Watcher.
type WatchOption func(*watchOptions)

type watchOptions struct {
	debounce time.Duration
}

// WithDebounce coalesces changes within d into one reload. Values below MinDebounce are raised.
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		if d < MinDebounce {
			d = MinDebounce
		}
		o.debounce = d
	}
}

// Watcher reloads configuration when one of its source files changes.
// The watched Config is never modified; every reload builds a new instance from
// the sources registered at the time Watch was called, in the same order relative
// to the last source.
type Watcher struct {
	opts     Options
	before   []Source // merged before the last source
	after    []Source // read after the first access, merged after it
	files    map[string]bool // cleaned paths of watched files
	watcher  *fsnotify.Watcher
	callback WatchCallback
	debounce time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
	running  bool
	timer    *time.Timer
}

// Watch creates a watcher for every file source of cfg and its last source.
// Directories are watched instead of files so editors that replace files by rename are seen.
// Call Start or StartAsync to begin and Stop to release resources.
func Watch(cfg *Config, callback WatchCallback, opts ...WatchOption) (*Watcher, error) {
	options := &watchOptions{debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(options)
	}

	before, after := cfg.splitSources()
	files := make(map[string]bool)
	for _, src := range append(append([]Source(nil), before...), after...) {
		if src.Kind == SourceFile {
			files[filepath.Clean(src.Path)] = true
		}
	}
	if cfg.opts.LastSource != "" {
		files[filepath.Clean(cfg.opts.LastSource)] = true
	}
	if len(files) == 0 {
		return nil, errors.New("config has no file sources to watch")
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	dirs := make(map[string]bool)
	for file := range files {
		dir := filepath.Dir(file)
		if dirs[dir] {
			continue
		}
		if err := fsWatcher.Add(dir); err != nil {
			closeErr := fsWatcher.Close()
			return nil, errors.Join(
				fmt.Errorf("failed to watch directory %s: %w", dir, err),
				closeErr,
			)
		}
		dirs[dir] = true
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		opts:     cfg.opts,
		before:   before,
		after:    after,
		files:    files,
		watcher:  fsWatcher,
		callback: callback,
		debounce: options.debounce,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start runs the watch loop and blocks until Stop.
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	w.run()
}

// StartAsync runs the watch loop in a new goroutine.
func (w *Watcher) StartAsync() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	go w.run()
}

// Stop ends watching and cancels any pending reload.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}

	w.cancel()
	w.running = false
	return w.watcher.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.callback != nil {
				w.callback(nil, fmt.Errorf("watch error: %w", err))
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !w.files[filepath.Clean(event.Name)] {
		return
	}
	// Write covers in-place edits, Create and Rename cover atomic replacement
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.ctx.Done():
			return
		default:
		}

		fresh, err := w.load()
		if w.callback != nil {
			w.callback(fresh, err)
		}
	})
}

// load builds a new Config from the captured sources.
func (w *Watcher) load() (*Config, error) {
	cfg := NewWithOptions(w.opts)
	if err := cfg.Read(w.before...); err != nil {
		return cfg, err
	}
	err := errors.Join(cfg.ensureLoaded(), cfg.applySources(w.after))
	cfg.logger.Debug("config reloaded by watcher", "sources", len(w.before)+len(w.after), "error", err)
	return cfg, err
}
