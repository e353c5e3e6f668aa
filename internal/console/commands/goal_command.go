package commands

import (
	"context"
	"fmt"
	"strings"
)

// LongCommand queues a long-term goal.
type LongCommand struct {
	*BaseCommand
}

// NewLongCommand creates a new long command
func NewLongCommand(env *Env) *LongCommand {
	return &LongCommand{BaseCommand: NewBaseCommand(env)}
}

// Execute joins args back together. The console prefers ExecuteLine, which
// keeps the operator's spacing.
func (l *LongCommand) Execute(ctx context.Context, args []string) error {
	return l.ExecuteLine(ctx, strings.Join(args, " "))
}

// ExecuteLine queues rest, trimmed, as one goal.
func (l *LongCommand) ExecuteLine(ctx context.Context, rest string) error {
	goal := strings.TrimSpace(rest)
	if goal == "" {
		return usagef("usage: %s", l.Usage())
	}
	l.store().EnqueueLongTermGoal(goal)
	l.log("queued long-term goal.")
	return nil
}

// Usage returns the usage string
func (l *LongCommand) Usage() string {
	return "long <text>"
}

// Description returns the command description
func (l *LongCommand) Description() string {
	return "Queue a long-term goal"
}

// Short-term collection prompts.
const (
	ShortPrompt     = ".. "
	shortTerminator = "."
)

// ShortCommand collects a multi-line short-term plan.
type ShortCommand struct {
	*BaseCommand
}

// NewShortCommand creates a new short command
func NewShortCommand(env *Env) *ShortCommand {
	return &ShortCommand{BaseCommand: NewBaseCommand(env)}
}

// Execute reads goal lines until a line that is just ".". Blank lines are
// skipped. Nothing is queued when no goals were entered.
func (s *ShortCommand) Execute(ctx context.Context, args []string) error {
	if s.env.plain() {
		s.env.Out.Print("Enter short-term goals, one per line. End with a single '.' line.")
	} else {
		s.log("enter short-term goals; end with a single '.' line.")
	}

	var goals []string
	for {
		line, err := s.env.Input.ReadLine(ShortPrompt)
		if err != nil {
			return fmt.Errorf("reading short-term goals: %w", err)
		}
		goal := strings.TrimSpace(line)
		if goal == shortTerminator {
			break
		}
		if goal != "" {
			goals = append(goals, goal)
		}
	}

	if len(goals) == 0 {
		s.log("no goals entered; nothing queued.")
		return nil
	}
	s.store().EnqueueShortTermGoals(goals)
	s.log(fmt.Sprintf("queued %d short-term goals.", len(goals)))
	return nil
}

// Usage returns the usage string
func (s *ShortCommand) Usage() string {
	return "short"
}

// Description returns the command description
func (s *ShortCommand) Description() string {
	return "Queue a multi-line short-term plan"
}
