package dashboard

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Layout thresholds.
const (
	MinWidth       = 60
	MinHeight      = 8
	WideThreshold  = 100
	WideSidebar    = 42
	MinSidebar     = 28
	MinLogWidth    = 20
	columnGapWidth = 1
)

// Layout is the column split for one frame.
type Layout struct {
	LogWidth     int
	SidebarWidth int
	Rows         int
}

// ComputeLayout splits a width x height terminal into log and sidebar
// columns. ok is false when the terminal is too small for the split view.
func ComputeLayout(width, height int) (layout Layout, ok bool) {
	if width < MinWidth || height < MinHeight {
		return Layout{}, false
	}

	sidebar := WideSidebar
	if width < WideThreshold {
		sidebar = max(MinSidebar, width/3)
	}
	logWidth := width - sidebar - columnGapWidth
	if logWidth < MinLogWidth {
		return Layout{}, false
	}

	return Layout{
		LogWidth:     logWidth,
		SidebarWidth: sidebar,
		Rows:         max(1, height-1),
	}, true
}

// WrapLine breaks line into display lines no wider than width. Lines that
// already fit are returned unchanged. Whitespace is preserved, continuation
// lines repeat the line's leading indentation (capped at width-1), and words
// wider than the available space are split.
func WrapLine(line string, width int) []string {
	if width <= 0 {
		return []string{""}
	}
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}

	leading := len(line) - len(strings.TrimLeft(line, " "))
	indent := strings.Repeat(" ", min(leading, width-1))

	chunks := splitChunks(line)
	var out []string
	for len(chunks) > 0 {
		prefix := ""
		if len(out) > 0 {
			prefix = indent
		}
		avail := width - len(prefix)

		var cur strings.Builder
		curWidth := 0
		for len(chunks) > 0 {
			w := runewidth.StringWidth(chunks[0])
			if curWidth+w > avail {
				break
			}
			cur.WriteString(chunks[0])
			curWidth += w
			chunks = chunks[1:]
		}

		if len(chunks) > 0 && runewidth.StringWidth(chunks[0]) > avail {
			head, tail := splitAtWidth(chunks[0], avail-curWidth, curWidth == 0)
			cur.WriteString(head)
			if tail == "" {
				chunks = chunks[1:]
			} else {
				chunks[0] = tail
			}
		}

		if cur.Len() > 0 {
			out = append(out, prefix+cur.String())
		}
	}
	return out
}

// splitChunks separates s into alternating runs of spaces and non-spaces.
func splitChunks(s string) []string {
	var chunks []string
	start := 0
	for i := 1; i <= len(s); i++ {
		if i == len(s) || (s[i] == ' ') != (s[start] == ' ') {
			chunks = append(chunks, s[start:i])
			start = i
		}
	}
	return chunks
}

// splitAtWidth returns the longest prefix of s whose display width fits in
// space, and the rest. When force is set the prefix holds at least one rune
// so that wrapping always makes progress.
func splitAtWidth(s string, space int, force bool) (head, tail string) {
	used := 0
	for i, r := range s {
		w := runewidth.RuneWidth(r)
		if used+w > space {
			if i == 0 && force {
				size := len(string(r))
				return s[:size], s[size:]
			}
			return s[:i], s[i:]
		}
		used += w
	}
	return s, ""
}

// TrimLine shortens line to width display columns, ending in "..." when
// anything was cut and there is room for it.
func TrimLine(line string, width int) string {
	if runewidth.StringWidth(line) <= width {
		return line
	}
	if width <= 1 {
		return runewidth.Truncate(line, max(width, 0), "")
	}
	return runewidth.Truncate(line, width, "...")
}

// BottomAnchor keeps the last rows lines, padding with blank lines above
// when there are fewer.
func BottomAnchor(lines []string, rows int) []string {
	if rows <= 0 {
		return nil
	}
	if len(lines) >= rows {
		return lines[len(lines)-rows:]
	}
	out := make([]string, rows-len(lines), rows)
	return append(out, lines...)
}

// pad truncates or right-pads s to exactly width display columns.
func pad(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, ""), width)
}
