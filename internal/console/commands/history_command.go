package commands

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"ollamastub/internal/state"
	pkgstrings "ollamastub/pkg/strings"
)

// DefaultHistoryCount is the number of rows shown without an argument.
const DefaultHistoryCount = 10

// HistoryCommand lists recent requests.
type HistoryCommand struct {
	*BaseCommand
}

// NewHistoryCommand creates a new history command
func NewHistoryCommand(env *Env) *HistoryCommand {
	return &HistoryCommand{BaseCommand: NewBaseCommand(env)}
}

// Execute logs the last n requests (default 10). n <= 0 shows everything
// retained.
func (h *HistoryCommand) Execute(ctx context.Context, args []string) error {
	n := DefaultHistoryCount
	if raw := arg(args, 0); raw != "" {
		parsed, ok := parseInt(raw)
		if !ok {
			return usagef("history expects an integer count")
		}
		n = parsed
	}
	if n <= 0 {
		n = h.store().MaxHistory()
	}

	h.log(FormatHistory(h.store().History(n)))
	return nil
}

// FormatHistory renders records oldest first.
func FormatHistory(records []state.RequestRecord) string {
	if len(records) == 0 {
		return "No history yet."
	}

	t := newPlainTable()
	t.AppendHeader(table.Row{"#", "TIME", "ROLE", "MODEL", "PROMPT"})
	for i, rec := range records {
		t.AppendRow(table.Row{
			fmt.Sprintf("%02d.", i+1),
			rec.Timestamp.Local().Format("15:04:05"),
			string(rec.Role),
			rec.Model,
			pkgstrings.Head(rec.Prompt, pkgstrings.PromptPreviewLen),
		})
	}
	return "RECENT REQUESTS\n" + trimRight(t.Render())
}

// Usage returns the usage string
func (h *HistoryCommand) Usage() string {
	return "history [n]"
}

// Description returns the command description
func (h *HistoryCommand) Description() string {
	return "Show the most recent requests"
}

// LastCommand shows the most recent response body.
type LastCommand struct {
	*BaseCommand
}

// NewLastCommand creates a new last command
func NewLastCommand(env *Env) *LastCommand {
	return &LastCommand{BaseCommand: NewBaseCommand(env)}
}

// Execute logs the last response text, or "(none)".
func (l *LastCommand) Execute(ctx context.Context, args []string) error {
	last := l.store().LastResponse()
	if last == "" {
		last = "(none)"
	}
	l.log("LAST RESPONSE\n" + last)
	return nil
}

// Usage returns the usage string
func (l *LastCommand) Usage() string {
	return "last"
}

// Description returns the command description
func (l *LastCommand) Description() string {
	return "Show the last response sent to a client"
}
