package app

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ollamastub/internal/config"
	"ollamastub/internal/console/commands"
	"ollamastub/pkg/logging"
)

// syncBuffer is written by the console, the log buffer echo and the
// shutdown goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestApplication(t *testing.T, in io.Reader, mutate func(*config.Config)) (*Application, *syncBuffer) {
	t.Helper()
	settings := config.GetDefaultConfig()
	settings.Server.Port = 0
	settings.Server.ShutdownTimeout = time.Second
	if mutate != nil {
		mutate(&settings)
	}

	out := &syncBuffer{}
	cfg := NewConfig(settings, "")
	cfg.In = in
	cfg.Out = out

	application, err := NewApplication(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { logging.InitForCLI(logging.LevelInfo, io.Discard) })
	return application, out
}

func runAsync(ctx context.Context, a *Application) <-chan error {
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	return done
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestNewApplicationRequiresConfig(t *testing.T) {
	_, err := NewApplication(nil)
	assert.Error(t, err)
}

func TestInitializeServicesUsesSettings(t *testing.T) {
	settings := config.GetDefaultConfig()
	settings.Console.History = 3
	svc := InitializeServices(NewConfig(settings, ""))

	assert.Equal(t, 3, svc.Store.MaxHistory())
	assert.NotNil(t, svc.Logs)
	assert.NotNil(t, svc.Responder)
	assert.NotNil(t, svc.Server)
}

func TestRunPlainQuit(t *testing.T) {
	a, out := newTestApplication(t, strings.NewReader("quit\n"), nil)

	require.NoError(t, a.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, commands.HelpText)
	assert.Contains(t, got, "stub server started.")
	assert.Contains(t, got, "listening on http://127.0.0.1:")
	assert.Contains(t, got, "/api/generate")
	assert.Contains(t, got, "this is a local stub; it does not call real models.")
	assert.Contains(t, got, "shutting down server...")
	assert.False(t, a.services.Server.IsRunning())
}

func TestRunEndOfInputExits(t *testing.T) {
	a, out := newTestApplication(t, strings.NewReader(""), nil)

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "Exiting.")
	assert.Contains(t, out.String(), "shutting down server...")
}

func TestRunServesQueuedAction(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	a, _ := newTestApplication(t, pr, nil)

	done := runAsync(context.Background(), a)

	_, err := io.WriteString(pw, "move forward\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return a.services.Server.IsRunning() && a.services.Store.QueueDepths().Actions == 1
	}, 5*time.Second, 10*time.Millisecond)

	resp, err := http.Post(a.services.Server.Endpoint(), "application/json",
		strings.NewReader(`{"model":"agent","prompt":"<tool_call>"}`))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `request_move_hop`)
	assert.Contains(t, string(body), `nav_0`)

	_, err = io.WriteString(pw, "quit\n")
	require.NoError(t, err)
	require.NoError(t, waitDone(t, done))
}

func TestRunStopsWhenContextCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })
	a, out := newTestApplication(t, pr, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, a)

	require.Eventually(t, a.services.Server.IsRunning, 5*time.Second, 10*time.Millisecond)
	cancel()

	require.NoError(t, waitDone(t, done))
	assert.Contains(t, out.String(), "shutting down server...")
	assert.False(t, a.services.Server.IsRunning())
}

func TestRunAppliesPreloadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
actions:
  - name: request_stay
long_term_goals: ["Reach the inn"]
`), 0o600))

	a, out := newTestApplication(t, strings.NewReader("quit\n"), func(c *config.Config) {
		c.Preload.File = path
	})

	require.NoError(t, a.Run(context.Background()))

	depths := a.services.Store.QueueDepths()
	assert.Equal(t, 1, depths.Actions)
	assert.Equal(t, 1, depths.LongTerm)
	assert.Contains(t, out.String(), "preloaded "+path+": queued 1 actions, 1 long-term goals, 0 short-term plans")
}

func TestRunFailsOnBadPreloadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("actions: [[["), 0o600))

	a, _ := newTestApplication(t, strings.NewReader("quit\n"), func(c *config.Config) {
		c.Preload.File = path
	})

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preload")
	assert.False(t, a.services.Server.IsRunning())
}

func TestRunWatchReloadsScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("long_term_goals: [first]\n"), 0o600))

	pr, pw := io.Pipe()
	defer pw.Close()
	a, out := newTestApplication(t, pr, func(c *config.Config) {
		c.Preload.File = path
		c.Preload.Watch = true
	})

	done := runAsync(context.Background(), a)
	require.Eventually(t, a.services.Server.IsRunning, 5*time.Second, 10*time.Millisecond)

	// Let the watcher settle before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("long_term_goals: [second, third]\n"), 0o600))

	require.Eventually(t, func() bool {
		return a.services.Store.QueueDepths().LongTerm == 3
	}, 5*time.Second, 20*time.Millisecond)
	assert.Contains(t, out.String(), "reloaded "+path)

	_, err := io.WriteString(pw, "quit\n")
	require.NoError(t, err)
	require.NoError(t, waitDone(t, done))
}
