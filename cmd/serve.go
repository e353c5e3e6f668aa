package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ollamastub/internal/app"
	"ollamastub/internal/config"
	"ollamastub/pkg/logging"
)

// serveOptions holds the root command's flags. A flag only overrides the
// config file when it was set explicitly.
type serveOptions struct {
	configPath  string
	host        string
	port        int
	history     int
	logCapacity int
	preload     string
	watch       bool
	plain       bool
	debug       bool
}

var serveOpts serveOptions

func (o *serveOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&o.host, "host", config.DefaultHost, "Address to bind")
	fs.IntVar(&o.port, "port", config.DefaultPort, "Port to bind")
	fs.IntVar(&o.history, "history", config.DefaultHistory, "Number of requests kept in history")
	fs.IntVar(&o.logCapacity, "log-capacity", config.DefaultLogCapacity, "Number of log lines kept for the dashboard")
	fs.StringVar(&o.preload, "preload", "", "YAML script queued at startup")
	fs.BoolVar(&o.watch, "watch", false, "Re-queue the preload script whenever it changes")
	fs.BoolVar(&o.plain, "plain", false, "Print log lines instead of drawing the dashboard")
	fs.BoolVar(&o.debug, "debug", false, "Enable debug logging")
}

// settings loads the config file and applies explicitly set flags over it.
func (o *serveOptions) settings(fs *pflag.FlagSet) (config.Config, error) {
	settings, err := config.LoadConfig(o.configPath)
	if err != nil {
		return config.Config{}, err
	}

	if fs.Changed("host") {
		settings.Server.Host = o.host
	}
	if fs.Changed("port") {
		settings.Server.Port = o.port
	}
	if fs.Changed("history") {
		settings.Console.History = o.history
	}
	if fs.Changed("log-capacity") {
		settings.Console.LogCapacity = o.logCapacity
	}
	if fs.Changed("preload") {
		settings.Preload.File = o.preload
	}
	if fs.Changed("watch") {
		settings.Preload.Watch = o.watch
	}
	if fs.Changed("plain") {
		settings.Console.Plain = o.plain
	}
	if fs.Changed("debug") {
		settings.Debug = o.debug
	}

	if err := settings.Validate(o.configPath); err != nil {
		return config.Config{}, err
	}
	return settings, nil
}

// runServe is the main entry point of the root command
func runServe(cmd *cobra.Command, args []string) error {
	level := logging.LevelInfo
	if serveOpts.debug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, cmd.ErrOrStderr())

	settings, err := serveOpts.settings(cmd.Flags())
	if err != nil {
		reportConfigError(cmd.ErrOrStderr(), err)
		return err
	}

	// Create and initialize the application
	application, err := app.NewApplication(app.NewConfig(settings, serveOpts.configPath))
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return application.Run(ctx)
}

// reportConfigError prints the detailed form of a configuration error, or
// the full report when several were found.
func reportConfigError(w io.Writer, err error) {
	var coll config.ConfigurationErrorCollection
	if errors.As(err, &coll) {
		fmt.Fprintln(w, coll.GetDetailedReport())
		return
	}
	var ce config.ConfigurationError
	if errors.As(err, &ce) {
		fmt.Fprintln(w, ce.DetailedError())
	}
}
