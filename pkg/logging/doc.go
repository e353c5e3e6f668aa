// Package logging provides the process-wide logging facade for ollama-stub.
//
// Every component logs through four helpers that take a subsystem name and a
// printf-style message:
//
//	logging.Info("Server", "listening on %s", url)
//	logging.Warn("Server", "invalid JSON payload; using empty payload. error=%v", err)
//	logging.Error("Console", err, "error")
//	logging.Debug("Preload", "applied %d actions", n)
//
// # Modes
//
// At startup the facade runs in CLI mode: entries are written by a log/slog
// text handler (InitForCLI). Once the operator console owns the terminal the
// application switches to console mode (InitForConsole) and entries are handed
// to a Sink, normally the dashboard log buffer, which timestamps and stores
// them for the log pane.
//
// Entries below the configured level are dropped in both modes.
package logging
