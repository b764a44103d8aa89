package keymap

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Vedant-Asati03/vim-engine/internal/telemetry"
)

// ErrWatcherClosed is returned by Watch after Close.
var ErrWatcherClosed = errors.New("keymap: watcher closed")

// ReloadResult describes one reload of a watched keymap file.
type ReloadResult struct {
	Path  string
	Count int
	Err   error
}

// Watcher reloads keymap files into a registry when they change on disk.
//
// Parent directories are watched rather than the files themselves so that
// editors which save by renaming a temporary file are picked up. A removed
// file drops the bindings it registered.
type Watcher struct {
	mu sync.Mutex

	fsw      *fsnotify.Watcher
	registry *Registry
	loader   *Loader

	files  map[string]struct{}
	dirs   map[string]struct{}
	timers map[string]*time.Timer

	debounce time.Duration
	onReload func(ReloadResult)
	obs      telemetry.Observer

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce coalesces bursts of events for one file. Default 50ms.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithReloadHandler is called after every reload attempt.
func WithReloadHandler(fn func(ReloadResult)) WatcherOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// WithWatcherObserver reports reloads as events.
func WithWatcherObserver(o telemetry.Observer) WatcherOption {
	return func(w *Watcher) {
		w.obs = telemetry.OrNop(o)
	}
}

// NewWatcher creates a watcher that applies changed files with loader.
func NewWatcher(registry *Registry, loader *Loader, opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if loader == nil {
		loader = NewLoader()
	}

	w := &Watcher{
		fsw:      fsw,
		registry: registry,
		loader:   loader,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
		timers:   make(map[string]*time.Timer),
		debounce: 50 * time.Millisecond,
		obs:      telemetry.Nop(),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.closedWg.Add(1)
	go w.processLoop()
	return w, nil
}

// Watch starts reloading path on change. The file is matched by its
// absolute path, which is also the Source of the bindings it registers.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := FormatFromPath(abs); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	dir := filepath.Dir(abs)
	if _, ok := w.dirs[dir]; !ok {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
		w.dirs[dir] = struct{}{}
	}
	w.files[abs] = struct{}{}
	return nil
}

// Close stops the watcher and cancels pending reloads.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	for p, t := range w.timers {
		t.Stop()
		delete(w.timers, p)
	}
	w.mu.Unlock()

	w.closedWg.Wait()
	return w.fsw.Close()
}

// processLoop handles incoming fsnotify events.
func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.obs.Event("keymap.watch_error", telemetry.Attrs{"error": err.Error()})
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) &&
		!ev.Op.Has(fsnotify.Remove) && !ev.Op.Has(fsnotify.Rename) {
		return
	}
	path := filepath.Clean(ev.Name)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if _, ok := w.files[path]; !ok {
		return
	}
	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.reload(path)
	})
}

// reload applies path, or drops its bindings when the file is gone.
func (w *Watcher) reload(path string) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	delete(w.timers, path)
	w.mu.Unlock()

	res := ReloadResult{Path: path}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		w.registry.UnregisterSource(path)
	} else {
		res.Count, res.Err = w.loader.Apply(w.registry, path)
	}

	attrs := telemetry.Attrs{"path": path, "bindings": res.Count}
	if res.Err != nil {
		attrs["error"] = res.Err.Error()
	}
	w.obs.Event("keymap.reload", attrs)

	if w.onReload != nil {
		w.onReload(res)
	}
}
