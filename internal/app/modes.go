package app

import (
	"bufio"
	"io"
	"os"

	"ollamastub/internal/console"
	"ollamastub/internal/console/commands"
	"ollamastub/internal/dashboard"
	"ollamastub/pkg/logging"
)

// terminalFile returns v as an *os.File when it is attached to a terminal.
func terminalFile(v any) (*os.File, bool) {
	f, ok := v.(*os.File)
	if !ok || !dashboard.IsTerminal(f) {
		return nil, false
	}
	return f, true
}

// newRenderer selects the output mode. The split-screen dashboard needs a
// terminal on Out; anything else, or --plain, prints log lines as they
// happen.
func newRenderer(cfg *Config, svc *Services) *dashboard.Renderer {
	rcfg := dashboard.Config{
		Out:   cfg.Out,
		Store: svc.Store,
		Logs:  svc.Logs,
		Plain: cfg.Settings.Console.Plain,
	}
	if f, ok := terminalFile(cfg.Out); ok {
		rcfg.Size = dashboard.TerminalSize(f)
	} else {
		rcfg.Plain = true
	}

	if rcfg.Plain {
		logging.Debug("Bootstrap", "Running in plain output mode")
	}
	return dashboard.New(rcfg)
}

// newLineReader picks readline (editing, history, completion) when both ends
// are terminals and a plain line reader otherwise. The returned closer
// unblocks a pending read where the reader supports it.
func newLineReader(cfg *Config, in *bufio.Reader, registry *commands.Registry) (commands.LineReader, io.Closer) {
	_, inTTY := terminalFile(cfg.In)
	_, outTTY := terminalFile(cfg.Out)
	if inTTY && outTTY {
		rl, err := console.NewReadlineReader(registry)
		if err == nil {
			return rl, rl
		}
		logging.Warn("Bootstrap", "line editing unavailable, reading plain lines: %v", err)
	}
	return console.NewPlainReader(in, cfg.Out), nopCloser{}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
