package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"ollamastub/internal/console/commands"
	"ollamastub/internal/logbuf"
	"ollamastub/internal/state"
	"ollamastub/pkg/logging"
)

// Prompt is shown when waiting for a command.
const Prompt = "> "

// Greeting is logged when the dashboard is active.
const Greeting = "commands are listed in the sidebar. type 'help' for a plain list."

// Renderer draws the dashboard before each prompt.
type Renderer interface {
	Render() error
	Plain() bool
}

// Config configures a Console.
type Config struct {
	Store    *state.Store
	Logs     *logbuf.Buffer
	Out      io.Writer
	Reader   commands.LineReader
	Renderer Renderer
}

// Console is the operator command loop.
type Console struct {
	registry *commands.Registry
	env      *commands.Env
	reader   commands.LineReader
	renderer Renderer
	out      commands.Output
}

// New creates a Console with the full command set registered.
func New(cfg Config) *Console {
	out := &output{logs: cfg.Logs, w: cfg.Out}
	env := &commands.Env{
		Store: cfg.Store,
		Out:   out,
		Input: cfg.Reader,
		Plain: cfg.Renderer.Plain,
	}

	registry := commands.NewRegistry()
	commands.RegisterAll(registry, env)

	return &Console{
		registry: registry,
		env:      env,
		reader:   cfg.Reader,
		renderer: cfg.Renderer,
		out:      out,
	}
}

// Registry returns the command registry, e.g. for tab completion.
func (c *Console) Registry() *commands.Registry {
	return c.registry
}

// SetReader replaces the line reader. Readers that complete command names
// need the registry, so they are attached after New. Call before Run.
func (c *Console) SetReader(reader commands.LineReader) {
	c.reader = reader
	c.env.Input = reader
}

// Run loops until quit, end of input, an interrupt, or ctx is done. An
// over-long line is reported and skipped; any other read error is returned.
func (c *Console) Run(ctx context.Context) error {
	if c.renderer.Plain() {
		c.out.Print(commands.HelpText)
	} else {
		c.out.Log(Greeting)
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		if err := c.renderer.Render(); err != nil {
			logging.Debug("Console", "failed to render dashboard: %v", err)
		}

		line, err := c.reader.ReadLine(Prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, ErrInterrupted) {
				c.out.Log("Exiting.")
				return nil
			}
			if errors.Is(err, ErrLineTooLong) {
				c.out.Log(fmt.Sprintf("error: input line longer than %d bytes; ignored.", MaxLineLength))
				continue
			}
			return fmt.Errorf("failed to read console input: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if err := c.Execute(ctx, input); errors.Is(err, commands.ErrExit) {
			return nil
		}
	}
}

// Execute runs one command line. It returns commands.ErrExit when the loop
// should end; every other failure, including a panic, is reported to the log
// and swallowed.
func (c *Console) Execute(ctx context.Context, line string) (err error) {
	tokens := SplitLine(line)
	if len(tokens) == 0 {
		return nil
	}

	name := strings.ToLower(tokens[0])
	command, ok := c.registry.Get(name)
	if !ok {
		c.out.Log(fmt.Sprintf("unknown command: %s. type 'help'.", name))
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			c.report(fmt.Errorf("panic: %v", r))
			err = nil
		}
	}()

	if lc, ok := command.(commands.LineCommand); ok {
		err = lc.ExecuteLine(ctx, restOfLine(line))
	} else {
		err = command.Execute(ctx, tokens[1:])
	}

	if errors.Is(err, commands.ErrExit) {
		return err
	}
	if err != nil {
		c.report(err)
	}
	return nil
}

func (c *Console) report(err error) {
	var usage *commands.UsageError
	if errors.As(err, &usage) {
		c.out.Log(usage.Message)
		return
	}
	logging.Debug("Console", "command failed: %v", err)
	c.out.Log("error: " + err.Error())
}

// SplitLine splits line on whitespace into at most three tokens. The third
// token is the rest of the line after the second token's trailing
// whitespace, kept verbatim.
func SplitLine(line string) []string {
	var tokens []string
	rest := strings.TrimLeftFunc(line, unicode.IsSpace)
	for len(tokens) < 2 && rest != "" {
		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			return append(tokens, rest)
		}
		tokens = append(tokens, rest[:end])
		rest = strings.TrimLeftFunc(rest[end:], unicode.IsSpace)
	}
	if rest != "" {
		tokens = append(tokens, rest)
	}
	return tokens
}

// restOfLine returns everything after the first token, without the
// whitespace that separates it.
func restOfLine(line string) string {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	end := strings.IndexFunc(line, unicode.IsSpace)
	if end < 0 {
		return ""
	}
	return strings.TrimLeftFunc(line[end:], unicode.IsSpace)
}

// output sends log entries to the log buffer and raw text to the terminal.
type output struct {
	logs *logbuf.Buffer
	w    io.Writer
}

func (o *output) Log(message string) {
	o.logs.Log(message)
}

func (o *output) Print(text string) {
	fmt.Fprintln(o.w, text)
}
