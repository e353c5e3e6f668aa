package commands

import (
	"errors"
	"strconv"
	"strings"

	"ollamastub/internal/responder"
	"ollamastub/internal/state"
)

// Env is what commands act on.
type Env struct {
	Store *state.Store
	Out   Output
	Input LineReader
	// Plain reports whether the console is in plain (non-dashboard) mode.
	Plain func() bool
}

func (e *Env) plain() bool {
	return e.Plain != nil && e.Plain()
}

// BaseCommand carries the shared environment and small helpers.
type BaseCommand struct {
	env *Env
}

// NewBaseCommand creates a base command over env.
func NewBaseCommand(env *Env) *BaseCommand {
	return &BaseCommand{env: env}
}

func (b *BaseCommand) store() *state.Store { return b.env.Store }

func (b *BaseCommand) log(message string) { b.env.Out.Log(message) }

// enqueue queues an action and logs it as "queued action: <name><suffix>".
func (b *BaseCommand) enqueue(name string, args state.Object, suffix string) {
	b.env.Store.EnqueueAction(name, args)
	b.log("queued action: " + name + suffix)
}

// Completions returns nothing by default.
func (b *BaseCommand) Completions(input string) []string {
	return nil
}

// Aliases returns no aliases by default.
func (b *BaseCommand) Aliases() []string {
	return nil
}

// arg returns args[i] or "".
func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// parseInt accepts an optionally signed decimal integer. Values past the
// int range are clamped to it.
func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if errors.Is(err, strconv.ErrRange) {
		return n, true
	}
	return n, err == nil
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func marshal(v any) string {
	return responder.Marshal(v)
}

func completeFrom(options []string, input string) []string {
	var out []string
	for _, opt := range options {
		if strings.HasPrefix(opt, strings.ToLower(input)) {
			out = append(out, opt)
		}
	}
	return out
}
