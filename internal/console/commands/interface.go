// Package commands provides the operator console commands and the registry
// the console dispatches through.
//
// Each command implements Command and is responsible for its own argument
// parsing. Commands receive at most two arguments: the first word after the
// command name and the rest of the line verbatim.
package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrExit is returned by a command to end the console loop.
var ErrExit = errors.New("exit")

// UsageError is a recoverable operator mistake. The console shows its
// message as is, without the "error: " prefix.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

func usagef(format string, args ...interface{}) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// Command represents a console command.
type Command interface {
	// Execute runs the command with the given arguments
	Execute(ctx context.Context, args []string) error

	// Usage returns the usage string for the command
	Usage() string

	// Description returns a brief description of what the command does
	Description() string

	// Completions returns possible completions for the first argument
	Completions(input string) []string

	// Aliases returns alternative names for this command
	Aliases() []string
}

// LineCommand is implemented by commands that take free text. The console
// calls ExecuteLine with everything after the command word instead of
// Execute.
type LineCommand interface {
	ExecuteLine(ctx context.Context, rest string) error
}

// Output is where commands report to the operator.
type Output interface {
	// Log adds a timestamped entry to the log pane (echoed in plain mode).
	Log(message string)
	// Print writes text directly to the terminal, bypassing the log.
	Print(text string)
}

// LineReader reads one line of operator input.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Registry manages available commands.
type Registry struct {
	commands map[string]Command
	aliases  map[string]string // alias -> primary command name
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		aliases:  make(map[string]string),
	}
}

// Register adds a command to the registry.
func (r *Registry) Register(name string, cmd Command) {
	r.commands[name] = cmd

	for _, alias := range cmd.Aliases() {
		r.aliases[alias] = name
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) (Command, bool) {
	if cmd, exists := r.commands[name]; exists {
		return cmd, true
	}

	if primary, exists := r.aliases[name]; exists {
		if cmd, exists := r.commands[primary]; exists {
			return cmd, true
		}
	}

	return nil, false
}

// List returns all registered command names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AllCompletions returns every command name and alias, sorted.
func (r *Registry) AllCompletions() []string {
	completions := r.List()
	for alias := range r.aliases {
		completions = append(completions, alias)
	}
	sort.Strings(completions)
	return completions
}
