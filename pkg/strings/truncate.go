package strings

import (
	"strings"
)

// ResponsePreviewLen is the length of response previews in log lines.
const ResponsePreviewLen = 60

// PromptPreviewLen is the length of prompt previews in the history table.
const PromptPreviewLen = 120

// Ellipsis marks a shortened preview.
const Ellipsis = "..."

// Flatten replaces newlines with spaces so that text fits on one log or
// table line. Other whitespace is kept as is.
func Flatten(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// Preview flattens s and shortens it to at most maxLen characters, ending in
// "..." when cut. With maxLen of 3 or less there is no room for the
// ellipsis and the text is cut hard.
//
// The function operates on runes rather than bytes, preventing truncation in
// the middle of multi-byte characters.
func Preview(s string, maxLen int) string {
	if maxLen < 0 {
		maxLen = 0
	}

	runes := []rune(Flatten(s))
	if len(runes) <= maxLen {
		return string(runes)
	}
	if maxLen <= len(Ellipsis) {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-len(Ellipsis)]) + Ellipsis
}

// Head flattens s and keeps its first maxLen characters without marking the
// cut.
func Head(s string, maxLen int) string {
	if maxLen < 0 {
		maxLen = 0
	}

	runes := []rune(Flatten(s))
	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}
	return string(runes)
}
