package config

import "fmt"

// Validate checks the settings that would otherwise fail late (at bind time)
// or silently fall back to a default. All problems are reported together.
func (c Config) Validate(path string) error {
	var errs ConfigurationErrorCollection

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs.Add(ConfigurationError{
			FilePath:    path,
			Field:       "server.port",
			ErrorType:   ErrorTypeValidation,
			Message:     fmt.Sprintf("port %d out of range", c.Server.Port),
			Suggestions: []string{"use a port between 1 and 65535"},
		})
	}
	if c.Server.Host == "" {
		errs.Add(ConfigurationError{
			FilePath:    path,
			Field:       "server.host",
			ErrorType:   ErrorTypeValidation,
			Message:     "host is empty",
			Suggestions: []string{fmt.Sprintf("use %s for local clients", DefaultHost)},
		})
	}
	if c.Server.ShutdownTimeout < 0 {
		errs.Add(ConfigurationError{
			FilePath:  path,
			Field:     "server.shutdownTimeout",
			ErrorType: ErrorTypeValidation,
			Message:   "shutdown timeout must not be negative",
		})
	}
	if c.Console.History < 1 {
		errs.Add(ConfigurationError{
			FilePath:  path,
			Field:     "console.history",
			ErrorType: ErrorTypeValidation,
			Message:   fmt.Sprintf("history must be at least 1, got %d", c.Console.History),
		})
	}
	if c.Console.LogCapacity < 1 {
		errs.Add(ConfigurationError{
			FilePath:  path,
			Field:     "console.logCapacity",
			ErrorType: ErrorTypeValidation,
			Message:   fmt.Sprintf("log capacity must be at least 1, got %d", c.Console.LogCapacity),
		})
	}

	if !errs.HasErrors() {
		return nil
	}
	if len(errs.Errors) == 1 {
		return errs.Errors[0]
	}
	return errs
}
