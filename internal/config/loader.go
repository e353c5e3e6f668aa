package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"ollamastub/pkg/logging"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads the YAML file at path over GetDefaultConfig. An empty path
// returns the defaults. A path that was given but does not exist is an error,
// since the operator asked for it explicitly. The result is not validated;
// call Validate after applying flag overrides.
func LoadConfig(path string) (Config, error) {
	config := GetDefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		ce := ConfigurationError{
			FilePath:  path,
			ErrorType: ErrorTypeIO,
			Message:   "cannot read config file",
			Details:   err.Error(),
		}
		if errors.Is(err, os.ErrNotExist) {
			ce.Message = "config file not found"
			ce.Suggestions = []string{"check the --config path", "omit --config to run with defaults"}
		}
		logging.Info("ConfigLoader", "Error loading config from %s: %s", path, err)
		return Config{}, ce
	}

	if err := decode(data, &config); err != nil {
		return Config{}, ConfigurationError{
			FilePath:    path,
			ErrorType:   ErrorTypeParse,
			Message:     "malformed YAML",
			Details:     err.Error(),
			Suggestions: []string{"keys are server, console, preload and debug"},
		}
	}

	logging.Info("ConfigLoader", "Loaded configuration from %s", path)
	return config, nil
}

// decode rejects unknown keys so that a misspelled setting is not silently
// ignored. An empty document leaves config untouched.
func decode(data []byte, config *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
