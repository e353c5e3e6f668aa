// Package app provides application bootstrap and lifecycle management for
// ollama-stub.
//
// # Architecture Overview
//
//  1. **Configuration (`config.go`)**: runtime settings plus the process I/O
//  2. **Services (`services.go`)**: builds the store, log buffer, responder,
//     handler and HTTP server
//  3. **Ports (`ports.go`)**: binds the listener, asking the operator for
//     another port when the requested one is taken
//  4. **Modes (`modes.go`)**: chooses dashboard or plain output and the
//     console line reader
//  5. **Bootstrap (`bootstrap.go`)**: wires the above and runs until quit
//
// # Lifecycle
//
// Run binds the port, applies the preload script, starts the HTTP server and
// the optional script watcher under an errgroup, and hands the terminal to
// the console. Logging is switched to the console's log buffer at that point.
// When the console returns (quit, end of input) or the context is cancelled
// (SIGINT, SIGTERM) the server is shut down exactly once.
//
// Example:
//
//	settings, _ := config.LoadConfig(path)
//	application, err := app.NewApplication(app.NewConfig(settings, path))
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
package app
