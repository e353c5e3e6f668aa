package config

import "time"

const (
	DefaultHost            = "127.0.0.1"
	DefaultPort            = 11435
	DefaultHistory         = 50
	DefaultLogCapacity     = 1000
	DefaultShutdownTimeout = 5 * time.Second
)

// GetDefaultConfig returns the configuration used when no file is given.
func GetDefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Console: ConsoleConfig{
			History:     DefaultHistory,
			LogCapacity: DefaultLogCapacity,
		},
	}
}
