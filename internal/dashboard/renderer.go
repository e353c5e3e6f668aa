package dashboard

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"ollamastub/internal/logbuf"
	"ollamastub/internal/state"
	"ollamastub/pkg/logging"
)

// ClearScreen clears the terminal and homes the cursor.
const ClearScreen = "\x1b[2J\x1b[H"

// SmallTerminalMessage is logged once when the renderer gives up on the
// split view.
const SmallTerminalMessage = "terminal too small for sidebar UI; falling back to plain output."

// Config configures a Renderer.
type Config struct {
	Out   io.Writer
	Store *state.Store
	Logs  *logbuf.Buffer
	// Size reports the terminal size. Required unless Plain is set.
	Size SizeFunc
	// Plain starts the renderer in plain mode, e.g. when stdout is not a TTY.
	Plain bool
}

// Renderer draws frames to Out. Only the console goroutine calls Render, but
// Plain may be read from elsewhere.
type Renderer struct {
	out   io.Writer
	store *state.Store
	logs  *logbuf.Buffer
	size  SizeFunc

	headingStyle lipgloss.Style

	mu       sync.Mutex
	plain    bool
	endpoint string
}

// New creates a Renderer. In plain mode the log buffer echoes to Out.
func New(cfg Config) *Renderer {
	r := &Renderer{
		out:          cfg.Out,
		store:        cfg.Store,
		logs:         cfg.Logs,
		size:         cfg.Size,
		headingStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		plain:        cfg.Plain || cfg.Size == nil,
	}
	if r.plain {
		r.logs.SetEcho(r.out)
	}
	return r
}

// SetEndpoint sets the URL shown in the sidebar.
func (r *Renderer) SetEndpoint(url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endpoint = url
}

// Plain reports whether the renderer is in plain mode.
func (r *Renderer) Plain() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.plain
}

// Render draws one frame. It is a no-op in plain mode. If the terminal is too
// small the renderer switches to plain mode for good and logs why.
func (r *Renderer) Render() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.plain {
		return nil
	}

	layout, ok := ComputeLayout(r.size())
	if !ok {
		r.plain = true
		r.logs.SetEcho(r.out)
		logging.Warn("Dashboard", SmallTerminalMessage)
		return nil
	}

	sidebar := SidebarLines(r.store.Snapshot(), r.endpoint)
	_, err := io.WriteString(r.out, r.frame(layout, r.logs.Lines(), sidebar))
	return err
}

func (r *Renderer) frame(layout Layout, logLines []string, sidebar []SidebarLine) string {
	var left []string
	for _, line := range logLines {
		left = append(left, WrapLine(line, layout.LogWidth)...)
	}
	left = BottomAnchor(left, layout.Rows)
	right := FitSidebar(sidebar, layout.SidebarWidth, layout.Rows)

	var b strings.Builder
	b.WriteString(ClearScreen)
	for i := 0; i < layout.Rows; i++ {
		b.WriteString(pad(left[i], layout.LogWidth))
		b.WriteByte(' ')
		b.WriteString(r.sidebarCell(right[i], layout.SidebarWidth))
		b.WriteByte('\n')
	}
	return b.String()
}

// sidebarCell pads before styling so escape sequences do not count toward
// the column width.
func (r *Renderer) sidebarCell(line SidebarLine, width int) string {
	if !line.Heading || line.Text == "" {
		return pad(line.Text, width)
	}
	fill := width - runewidth.StringWidth(line.Text)
	return r.headingStyle.Render(line.Text) + strings.Repeat(" ", max(fill, 0))
}
