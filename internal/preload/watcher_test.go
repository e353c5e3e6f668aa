package preload

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewWatcherDefaults(t *testing.T) {
	w := NewWatcher(WatcherConfig{Path: "/tmp/./script.yaml"})

	if w.config.Debounce != DefaultDebounceInterval {
		t.Errorf("Expected Debounce to be %v, got %v", DefaultDebounceInterval, w.config.Debounce)
	}
	if w.config.PollInterval != DefaultPollInterval {
		t.Errorf("Expected PollInterval to be %v, got %v", DefaultPollInterval, w.config.PollInterval)
	}
	if w.config.Path != "/tmp/script.yaml" {
		t.Errorf("Expected cleaned path, got %s", w.config.Path)
	}
}

func TestWatcher_StartStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte("actions: []\n"), 0600); err != nil {
		t.Fatalf("Failed to create script: %v", err)
	}

	w := NewWatcher(WatcherConfig{Path: path})
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !w.IsRunning() {
		t.Error("Expected watcher to be running")
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Second Start failed: %v", err)
	}

	if err := w.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if w.IsRunning() {
		t.Error("Expected watcher to be stopped")
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("Second Stop failed: %v", err)
	}
}

func TestWatcher_FiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.yaml")
	if err := os.WriteFile(path, []byte("actions: []\n"), 0600); err != nil {
		t.Fatalf("Failed to create script: %v", err)
	}

	var calls atomic.Int32
	w := NewWatcher(WatcherConfig{
		Path:         path,
		Debounce:     20 * time.Millisecond,
		PollInterval: 20 * time.Millisecond,
		OnChange:     func(string) { calls.Add(1) },
	})
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0600); err != nil {
		t.Fatalf("Failed to write other file: %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Fatalf("Expected no callback for unrelated file, got %d", got)
	}

	// Ensure the modification time moves forward for the polling fallback.
	time.Sleep(10 * time.Millisecond)
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("long_term_goals: [a]\n"), 0600); err != nil {
			t.Fatalf("Failed to rewrite script: %v", err)
		}
	}

	deadline := time.Now().Add(3 * time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if calls.Load() == 0 {
		t.Fatal("Expected OnChange to be called after the script was written")
	}
}

func TestWatcher_NoCallbackAfterStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte("actions: []\n"), 0600); err != nil {
		t.Fatalf("Failed to create script: %v", err)
	}

	var calls atomic.Int32
	w := NewWatcher(WatcherConfig{
		Path:     path,
		Debounce: 50 * time.Millisecond,
		OnChange: func(string) { calls.Add(1) },
	})
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	w.triggerDebounced()
	if err := w.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	time.Sleep(150 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("Expected no callback after Stop, got %d", got)
	}
}

func TestWatcher_CheckForChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte("a"), 0600); err != nil {
		t.Fatalf("Failed to create script: %v", err)
	}

	w := NewWatcher(WatcherConfig{Path: path})
	if w.checkForChanges() {
		t.Error("First check only records the modification time")
	}

	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}
	if !w.checkForChanges() {
		t.Error("Expected change after the modification time moved forward")
	}
	if w.checkForChanges() {
		t.Error("Expected no change without a new write")
	}
}
