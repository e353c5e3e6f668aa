package commands

import (
	"context"
)

// ExitCommand ends the console session.
type ExitCommand struct {
	*BaseCommand
}

// NewExitCommand creates a new exit command
func NewExitCommand(env *Env) *ExitCommand {
	return &ExitCommand{BaseCommand: NewBaseCommand(env)}
}

// Execute returns ErrExit.
func (e *ExitCommand) Execute(ctx context.Context, args []string) error {
	return ErrExit
}

// Usage returns the usage string
func (e *ExitCommand) Usage() string {
	return "quit"
}

// Description returns the command description
func (e *ExitCommand) Description() string {
	return "Stop the server and exit"
}

// Aliases returns command aliases
func (e *ExitCommand) Aliases() []string {
	return []string{"exit", "q"}
}
