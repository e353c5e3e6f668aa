package app

import (
	"ollamastub/internal/logbuf"
	"ollamastub/internal/responder"
	"ollamastub/internal/server"
	"ollamastub/internal/state"
)

// Services holds all initialized components used by the application.
//
// The store and the log buffer are the only state shared between the HTTP
// goroutines and the console; every other component holds a reference to
// one of them.
type Services struct {
	// Store holds the queues, knobs and request history.
	Store *state.Store

	// Logs receives every log entry once the console owns the terminal.
	Logs *logbuf.Buffer

	// Responder answers classified requests from Store.
	Responder *responder.Responder

	// Server serves the generate endpoint.
	Server *server.Server
}

// InitializeServices creates every component in dependency order:
//
//  1. the state store (shared)
//  2. the log buffer (shared)
//  3. the responder, reading the store
//  4. the HTTP handler and server
//
// Nothing is bound or started here.
func InitializeServices(cfg *Config) *Services {
	store := state.NewStore(state.Config{
		MaxHistory: cfg.Settings.Console.History,
	})
	logs := logbuf.New(cfg.Settings.Console.LogCapacity)
	resp := responder.New(store)
	handler := server.NewHandler(store, resp)

	return &Services{
		Store:     store,
		Logs:      logs,
		Responder: resp,
		Server:    server.New(handler),
	}
}
