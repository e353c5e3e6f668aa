package commands

import (
	"context"
	"fmt"
	"strings"

	"ollamastub/internal/preload"
)

// LoadCommand applies a preload script.
type LoadCommand struct {
	*BaseCommand
}

// NewLoadCommand creates a new load command
func NewLoadCommand(env *Env) *LoadCommand {
	return &LoadCommand{BaseCommand: NewBaseCommand(env)}
}

// Execute joins args into a path. The console prefers ExecuteLine.
func (l *LoadCommand) Execute(ctx context.Context, args []string) error {
	return l.ExecuteLine(ctx, strings.Join(args, " "))
}

// ExecuteLine loads the script named by rest and queues its contents.
func (l *LoadCommand) ExecuteLine(ctx context.Context, rest string) error {
	path := strings.TrimSpace(rest)
	if path == "" {
		return usagef("usage: %s", l.Usage())
	}

	counts, err := preload.LoadAndApply(path, l.store())
	if err != nil {
		return err
	}
	l.log(fmt.Sprintf("loaded %s: queued %s", path, counts))
	return nil
}

// Usage returns the usage string
func (l *LoadCommand) Usage() string {
	return "load <file>"
}

// Description returns the command description
func (l *LoadCommand) Description() string {
	return "Queue actions and goals from a YAML script"
}

// ClearCommand drops everything queued.
type ClearCommand struct {
	*BaseCommand
}

// NewClearCommand creates a new clear command
func NewClearCommand(env *Env) *ClearCommand {
	return &ClearCommand{BaseCommand: NewBaseCommand(env)}
}

// Execute empties all three queues and logs what was dropped.
func (c *ClearCommand) Execute(ctx context.Context, args []string) error {
	removed := c.store().ClearQueues()
	c.log(fmt.Sprintf("cleared queues: actions=%d, long=%d, short=%d", removed.Actions, removed.LongTerm, removed.ShortTerm))
	return nil
}

// Usage returns the usage string
func (c *ClearCommand) Usage() string {
	return "clear"
}

// Description returns the command description
func (c *ClearCommand) Description() string {
	return "Drop every queued action and goal"
}
