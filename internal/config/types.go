package config

import "time"

// Config is the top-level configuration of the stub. Every field can be set
// from the YAML file and overridden by a command-line flag.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Console ConsoleConfig `yaml:"console"`
	Preload PreloadConfig `yaml:"preload"`

	// Debug lowers the log level to DEBUG.
	Debug bool `yaml:"debug"`
}

// ServerConfig holds settings for the HTTP listener.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// ShutdownTimeout bounds the graceful shutdown on exit.
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// ConsoleConfig holds settings for the operator console and dashboard.
type ConsoleConfig struct {
	// History caps the number of request records kept in memory.
	History int `yaml:"history"`
	// LogCapacity caps the number of lines kept in the log buffer.
	LogCapacity int `yaml:"logCapacity"`
	// Plain disables the dashboard and prints log lines as they happen.
	Plain bool `yaml:"plain"`
}

// PreloadConfig points at a YAML script that seeds the queues at startup.
type PreloadConfig struct {
	File  string `yaml:"file"`
	Watch bool   `yaml:"watch"`
}
