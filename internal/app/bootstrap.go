package app

import (
	"bufio"
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/sync/errgroup"

	"ollamastub/internal/console"
	"ollamastub/internal/preload"
	"ollamastub/internal/server"
	"ollamastub/pkg/logging"
)

// readyTimeout bounds the wait for the listener to accept connections.
const readyTimeout = 5 * time.Second

// Application represents the main application structure that bootstraps and
// runs the stub. It encapsulates the configuration and the services created
// from it.
//
// The Application follows a two-phase initialization pattern:
//  1. Bootstrap phase: initialize logging, create services
//  2. Execution phase: bind, serve, run the console
type Application struct {
	config   *Config
	services *Services
}

// NewApplication creates a new application instance with the provided
// configuration. Logging starts in CLI mode on cfg.Out and moves to the
// console's log buffer once Run hands over the terminal.
func NewApplication(cfg *Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("application config is required")
	}
	logging.InitForCLI(cfg.logLevel(), cfg.Out)

	if cfg.ConfigPath != "" {
		logging.Debug("Bootstrap", "Using configuration from %s", cfg.ConfigPath)
	}

	return &Application{
		config:   cfg,
		services: InitializeServices(cfg),
	}, nil
}

// Run executes the application until the operator quits, input ends, or ctx
// is cancelled. The server is always shut down before Run returns.
func (a *Application) Run(ctx context.Context) error {
	settings := a.config.Settings
	out := a.config.Out
	in := bufio.NewReader(a.config.In)

	var preloaded *preload.Counts
	if path := settings.Preload.File; path != "" {
		counts, err := preload.LoadAndApply(path, a.services.Store)
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to apply preload script")
			return fmt.Errorf("failed to apply preload script: %w", err)
		}
		preloaded = &counts
	}

	if err := bindWithPrompt(a.services.Server, settings.Server.Host, settings.Server.Port, in, out); err != nil {
		logging.Error("Bootstrap", err, "Failed to bind stub server")
		return fmt.Errorf("failed to bind stub server: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(a.services.Server.Serve)
	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Server", "shutting down server...")
		timeout := settings.Server.ShutdownTimeout
		if timeout <= 0 {
			timeout = server.DefaultShutdownTimeout
		}
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()
		return a.services.Server.Shutdown(shutdownCtx)
	})

	if err := a.waitForServer(gctx); err != nil {
		cancel()
		if serveErr := g.Wait(); serveErr != nil {
			err = serveErr
		}
		return fmt.Errorf("stub server did not become ready: %w", err)
	}

	if settings.Preload.Watch {
		if err := a.startWatcher(gctx, g); err != nil {
			logging.Warn("Bootstrap", "Failed to watch preload script: %v", err)
		}
	}

	renderer := newRenderer(a.config, a.services)
	con := console.New(console.Config{
		Store:    a.services.Store,
		Logs:     a.services.Logs,
		Out:      out,
		Renderer: renderer,
	})
	reader, closer := newLineReader(a.config, in, con.Registry())
	con.SetReader(reader)
	defer closer.Close()

	logging.InitForConsole(a.config.logLevel(), a.services.Logs)
	defer logging.InitForCLI(a.config.logLevel(), out)

	endpoint := a.services.Server.Endpoint()
	renderer.SetEndpoint(endpoint)
	logging.Info("Server", "stub server started.")
	logging.Info("Server", "listening on %s", endpoint)
	logging.Info("Server", "this is a local stub; it does not call real models.")
	if preloaded != nil {
		logging.Info("Preload", "preloaded %s: queued %s", settings.Preload.File, *preloaded)
	}

	consoleDone := make(chan error, 1)
	go func() {
		consoleDone <- con.Run(gctx)
	}()

	var consoleErr error
	select {
	case consoleErr = <-consoleDone:
	case <-gctx.Done():
		_ = closer.Close()
	}

	// The dashboard is no longer redrawn, so the remaining lines are printed.
	if !renderer.Plain() {
		a.services.Logs.SetEcho(out)
	}
	cancel()

	if err := g.Wait(); err != nil {
		logging.Error("Bootstrap", err, "Stub server stopped with error")
		return err
	}
	return consoleErr
}

// waitForServer blocks until the listener accepts connections, showing a
// spinner when the output is an interactive terminal.
func (a *Application) waitForServer(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()

	if _, ok := terminalFile(a.config.Out); ok && !a.config.Settings.Console.Plain {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(a.config.Out))
		s.Suffix = " Starting stub server..."
		s.Start()
		defer s.Stop()
	}

	return a.services.Server.WaitForReady(ctx)
}

// startWatcher re-applies the preload script whenever it changes. The
// watcher is stopped when the group's context ends.
func (a *Application) startWatcher(ctx context.Context, g *errgroup.Group) error {
	path := a.config.Settings.Preload.File
	if path == "" {
		return fmt.Errorf("--watch needs a preload script")
	}

	watcher := preload.NewWatcher(preload.WatcherConfig{
		Path:     path,
		OnChange: a.reloadPreload,
	})
	if err := watcher.Start(); err != nil {
		return err
	}

	g.Go(func() error {
		<-ctx.Done()
		return watcher.Stop()
	})
	return nil
}

func (a *Application) reloadPreload(path string) {
	counts, err := preload.LoadAndApply(path, a.services.Store)
	if err != nil {
		logging.Error("Preload", err, "failed to reload %s", path)
		return
	}
	logging.Info("Preload", "reloaded %s: queued %s", path, counts)
}
