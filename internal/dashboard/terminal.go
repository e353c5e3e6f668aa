package dashboard

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// Fallback size used when the terminal cannot be queried.
const (
	DefaultWidth  = 120
	DefaultHeight = 40
)

// SizeFunc reports the current terminal width and height.
type SizeFunc func() (width, height int)

// TerminalSize returns a SizeFunc for f. COLUMNS and LINES override the
// queried size; DefaultWidth x DefaultHeight is used when neither works.
func TerminalSize(f *os.File) SizeFunc {
	return func() (int, int) {
		width, height, err := term.GetSize(int(f.Fd()))
		if err != nil || width <= 0 || height <= 0 {
			width, height = DefaultWidth, DefaultHeight
		}
		if v, ok := envInt("COLUMNS"); ok {
			width = v
		}
		if v, ok := envInt("LINES"); ok {
			height = v
		}
		return width, height
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func envInt(name string) (int, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
