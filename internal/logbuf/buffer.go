// Package logbuf holds the dashboard log: a bounded ring of pre-formatted,
// timestamped lines shared by every goroutine that wants operator visibility.
package logbuf

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"ollamastub/pkg/logging"
)

// DefaultCapacity is the number of lines retained when no capacity is given.
const DefaultCapacity = 1000

// Buffer is a fixed-capacity circular buffer of log lines. Oldest lines are
// evicted first. It has its own lock, independent of the state store.
type Buffer struct {
	mu sync.Mutex

	lines    []string
	capacity int
	head     int // index where the next write goes once full

	echo io.Writer // when set, appended lines are also written here (plain mode)
	now  func() time.Time
}

// New creates a buffer holding at most capacity lines.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		lines:    make([]string, 0, capacity),
		capacity: capacity,
		now:      time.Now,
	}
}

// SetEcho mirrors every subsequently appended line to w. Pass nil to stop.
func (b *Buffer) SetEcho(w io.Writer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.echo = w
}

// SetClock replaces the time source used for line prefixes.
func (b *Buffer) SetClock(now func() time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = now
}

// Append implements logging.Sink.
func (b *Buffer) Append(entry logging.LogEntry) {
	b.write(entry.Timestamp, entry.Text())
}

// Log appends message stamped with the buffer's clock.
func (b *Buffer) Log(message string) {
	b.mu.Lock()
	now := b.now()
	b.mu.Unlock()
	b.write(now, message)
}

func (b *Buffer) write(ts time.Time, message string) {
	if ts.IsZero() {
		ts = time.Now()
	}
	entries := Format(ts, message)

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, entry := range entries {
		b.writeOneLocked(entry)
	}
	if b.echo != nil {
		for _, entry := range entries {
			fmt.Fprintln(b.echo, entry)
		}
	}
}

// writeOneLocked adds one line, must be called with mu held.
func (b *Buffer) writeOneLocked(line string) {
	if len(b.lines) < b.capacity {
		b.lines = append(b.lines, line)
	} else {
		b.lines[b.head] = line
	}
	b.head = (b.head + 1) % b.capacity
}

// Lines returns a copy of the retained lines, oldest first.
func (b *Buffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, 0, len(b.lines))
	if len(b.lines) < b.capacity {
		return append(out, b.lines...)
	}
	out = append(out, b.lines[b.head:]...)
	return append(out, b.lines[:b.head]...)
}

// Len returns the number of retained lines.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}

// Format splits message into lines and prefixes the first with "[HH:MM:SS] ".
// Continuation lines are indented by the prefix width so a multi-line entry
// stays visually grouped.
func Format(ts time.Time, message string) []string {
	prefix := "[" + ts.Format("15:04:05") + "] "
	lines := strings.Split(strings.TrimRight(message, "\n"), "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if i == 0 {
			out[i] = prefix + line
		} else {
			out[i] = strings.Repeat(" ", len(prefix)) + line
		}
	}
	return out
}
