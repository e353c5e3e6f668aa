// Package config provides configuration loading for ollama-stub.
//
// Configuration comes from three layers, later ones winning:
//
//  1. built-in defaults (GetDefaultConfig)
//  2. an optional YAML file passed with --config
//  3. command-line flags that were set explicitly
//
// # File Format
//
//	server:
//	  host: 127.0.0.1
//	  port: 11435
//	  shutdownTimeout: 5s
//	console:
//	  history: 50
//	  logCapacity: 1000
//	  plain: false
//	preload:
//	  file: ./script.yaml
//	  watch: true
//	debug: false
//
// Unknown keys are rejected. Problems are reported as ConfigurationError
// values, or a ConfigurationErrorCollection when validation finds more than
// one.
package config
