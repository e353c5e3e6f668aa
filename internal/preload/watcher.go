package preload

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"ollamastub/pkg/logging"
)

// Watcher defaults.
const (
	DefaultDebounceInterval = 500 * time.Millisecond
	DefaultPollInterval     = 2 * time.Second
)

// WatcherConfig holds configuration for a Watcher.
type WatcherConfig struct {
	// Path is the script file to watch.
	Path string

	// Debounce is how long to wait after the last change before firing.
	Debounce time.Duration

	// PollInterval is the fallback polling interval when fsnotify cannot
	// watch the file's directory.
	PollInterval time.Duration

	// OnChange is called once per burst of changes.
	OnChange func(path string)
}

// Watcher monitors a preload script and calls OnChange when it is written.
// It watches the parent directory so editors that replace the file by rename
// are still noticed, and falls back to polling the modification time.
type Watcher struct {
	mu sync.Mutex

	config WatcherConfig

	fsWatcher *fsnotify.Watcher
	stopCh    chan struct{}
	running   bool

	lastModTime time.Time

	debounceTimer *time.Timer
	debounceMu    sync.Mutex
}

// NewWatcher creates a watcher for config.Path. It does not start watching.
func NewWatcher(config WatcherConfig) *Watcher {
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounceInterval
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPollInterval
	}
	config.Path = filepath.Clean(config.Path)
	return &Watcher{config: config}
}

// Start begins watching. Calling Start on a running watcher is a no-op.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	w.stopCh = make(chan struct{})
	w.running = true

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logging.Warn("Preload", "fsnotify not available, falling back to polling: %v", err)
		w.startPollingLocked()
		return nil
	}

	dir := filepath.Dir(w.config.Path)
	if err := watcher.Add(dir); err != nil {
		logging.Warn("Preload", "failed to watch directory %s, falling back to polling: %v", dir, err)
		watcher.Close()
		w.startPollingLocked()
		return nil
	}

	w.fsWatcher = watcher
	go w.processEvents(w.stopCh, watcher.Events, watcher.Errors)

	logging.Debug("Preload", "watching %s for changes", w.config.Path)
	return nil
}

func (w *Watcher) startPollingLocked() {
	go w.pollForChanges(w.stopCh)
}

// processEvents receives the channels as parameters so Stop can clear
// fsWatcher without racing this goroutine.
func (w *Watcher) processEvents(stopCh <-chan struct{}, eventsCh <-chan fsnotify.Event, errorsCh <-chan error) {
	for {
		select {
		case <-stopCh:
			return

		case event, ok := <-eventsCh:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-errorsCh:
			if !ok {
				return
			}
			logging.Error("Preload", err, "fsnotify error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.config.Path {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	logging.Debug("Preload", "script changed: %s (%s)", event.Name, event.Op)
	w.triggerDebounced()
}

// triggerDebounced collapses a burst of events into one OnChange call.
func (w *Watcher) triggerDebounced() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(w.config.Debounce, func() {
		w.mu.Lock()
		running := w.running
		callback := w.config.OnChange
		w.mu.Unlock()

		if running && callback != nil {
			callback(w.config.Path)
		}
	})
}

func (w *Watcher) pollForChanges(stopCh <-chan struct{}) {
	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	w.checkForChanges()

	for {
		select {
		case <-stopCh:
			return

		case <-ticker.C:
			if w.checkForChanges() {
				logging.Debug("Preload", "script change detected via polling")
				w.triggerDebounced()
			}
		}
	}
}

// checkForChanges records the file's modification time and reports whether
// it moved forward since the previous check.
func (w *Watcher) checkForChanges() bool {
	info, err := os.Stat(w.config.Path)
	if err != nil {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	current := info.ModTime()
	changed := !w.lastModTime.IsZero() && current.After(w.lastModTime)
	w.lastModTime = current
	return changed
}

// Stop stops watching and cancels any pending callback.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.running = false
	close(w.stopCh)

	w.debounceMu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.debounceMu.Unlock()

	if w.fsWatcher != nil {
		if err := w.fsWatcher.Close(); err != nil {
			logging.Warn("Preload", "error closing fsnotify watcher: %v", err)
		}
		w.fsWatcher = nil
	}

	logging.Debug("Preload", "stopped watching %s", w.config.Path)
	return nil
}

// IsRunning reports whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
