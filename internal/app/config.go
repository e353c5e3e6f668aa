package app

import (
	"io"
	"os"

	"ollamastub/internal/config"
	"ollamastub/pkg/logging"
)

// Config holds the application configuration
type Config struct {
	// Settings are the validated file and flag settings.
	Settings config.Config

	// ConfigPath is the file Settings came from, empty for defaults.
	ConfigPath string

	// In and Out are the operator's terminal. Tests replace them.
	In  io.Reader
	Out io.Writer
}

// NewConfig creates a new application configuration bound to the process
// stdin and stdout.
func NewConfig(settings config.Config, configPath string) *Config {
	return &Config{
		Settings:   settings,
		ConfigPath: configPath,
		In:         os.Stdin,
		Out:        os.Stdout,
	}
}

// logLevel maps the debug setting to a log level.
func (c *Config) logLevel() logging.LogLevel {
	if c.Settings.Debug {
		return logging.LevelDebug
	}
	return logging.LevelInfo
}
