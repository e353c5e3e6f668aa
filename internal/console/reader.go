package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"

	"ollamastub/internal/console/commands"
)

// ErrInterrupted is returned by ReadLine when the operator pressed Ctrl+C.
var ErrInterrupted = errors.New("interrupted")

// HistoryFileName is the readline history file created in the temp dir.
const HistoryFileName = ".ollama_stub_history"

// ReadlineReader reads operator input with line editing, history, and tab
// completion of command names.
type ReadlineReader struct {
	rl *readline.Instance
}

// NewReadlineReader creates a reader completing from registry.
func NewReadlineReader(registry *commands.Registry) (*ReadlineReader, error) {
	config := &readline.Config{
		Prompt:          Prompt,
		HistoryFile:     filepath.Join(os.TempDir(), HistoryFileName),
		AutoComplete:    newCompleter(registry),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	}

	rl, err := readline.NewEx(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %w", err)
	}
	return &ReadlineReader{rl: rl}, nil
}

// ReadLine shows prompt and reads one line.
func (r *ReadlineReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return line, ErrInterrupted
	}
	return line, err
}

// Close releases the terminal. A blocked ReadLine returns io.EOF.
func (r *ReadlineReader) Close() error {
	return r.rl.Close()
}

// newCompleter offers every command name and alias, and each command's
// first-argument completions.
func newCompleter(registry *commands.Registry) *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, name := range registry.AllCompletions() {
		command, ok := registry.Get(name)
		if !ok {
			continue
		}
		var children []readline.PrefixCompleterInterface
		for _, completion := range command.Completions("") {
			children = append(children, readline.PcItem(completion))
		}
		items = append(items, readline.PcItem(name, children...))
	}
	return readline.NewPrefixCompleter(items...)
}

// filterInput blocks Ctrl+Z.
func filterInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// MaxLineLength caps one line read by a PlainReader, in bytes.
const MaxLineLength = 1 << 20

// ErrLineTooLong is returned by PlainReader.ReadLine for a line over its
// limit. The line is consumed, so the next read starts on the following one.
var ErrLineTooLong = errors.New("input line too long")

// PlainReader reads lines from any io.Reader, echoing the prompt to out.
// It serves piped stdin and tests.
type PlainReader struct {
	reader *bufio.Reader
	out    io.Writer
	limit  int
}

// NewPlainReader creates a PlainReader limited to MaxLineLength. out may be
// nil. A *bufio.Reader passed as in is used directly, so input already
// buffered there is not lost.
func NewPlainReader(in io.Reader, out io.Writer) *PlainReader {
	if out == nil {
		out = io.Discard
	}
	return &PlainReader{reader: bufio.NewReader(in), out: out, limit: MaxLineLength}
}

// ReadLine shows prompt and reads one line without its line ending. io.EOF
// marks end of input; a final line without a newline is still returned.
func (p *PlainReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	var line []byte
	tooLong := false
	for {
		chunk, more, err := p.reader.ReadLine()
		if err != nil {
			if tooLong {
				return "", ErrLineTooLong
			}
			if len(line) > 0 {
				return string(line), nil
			}
			return "", err
		}
		if !tooLong {
			if len(line)+len(chunk) > p.limit {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if !more {
			break
		}
	}

	if tooLong {
		return "", ErrLineTooLong
	}
	return string(line), nil
}
