// Package logger is the central record of events that occur during a
// scorewatch session but which are not part of the capture logbook. Entries
// are kept in memory and can be written out on demand, most usefully via the
// LOG command in the tracker console.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Entry represents a single line/entry in the log
type Entry struct {
	Timestamp time.Time
	tag       string
	detail    string
	repeated  int
}

func (e Entry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %s", e.tag, e.detail))
	if e.repeated > 0 {
		s.WriteString(fmt.Sprintf(" (repeat x%d)", e.repeated+1))
	}
	s.WriteString("\n")
	return s.String()
}

// Logger is a list of time ordered Entries. consecutive entries with the same
// content are collapsed into a single entry with a repeat count
type Logger struct {
	crit       sync.Mutex
	maxEntries int
	entries    []Entry
	echo       io.Writer
}

// NewLogger is the preferred method of initialisation for the Logger type.
// most code should use the package level functions, which work on a single
// central logger
func NewLogger(maxEntries int) *Logger {
	return &Logger{
		maxEntries: maxEntries,
		entries:    make([]Entry, 0, maxEntries),
	}
}

// Log adds an entry to the logger. the detail can be any type and will be
// rendered with the %v verb, meaning errors log their Error() string
func (l *Logger) Log(perm Permission, tag string, detail any) {
	if perm != Allow && !perm.AllowLogging() {
		return
	}

	l.crit.Lock()
	defer l.crit.Unlock()

	// remove all newline characters. each entry is a single line
	tag = strings.ReplaceAll(tag, "\n", "")
	d := strings.ReplaceAll(fmt.Sprintf("%v", detail), "\n", "")

	last := &Entry{}
	if len(l.entries) > 0 {
		last = &l.entries[len(l.entries)-1]
	}

	if d == last.detail && tag == last.tag {
		last.repeated++
		last.Timestamp = time.Now()
		return
	}

	e := Entry{Timestamp: time.Now(), tag: tag, detail: d}
	l.entries = append(l.entries, e)

	if len(l.entries) > l.maxEntries {
		l.entries = l.entries[len(l.entries)-l.maxEntries:]
	}

	if l.echo != nil {
		io.WriteString(l.echo, e.String())
	}
}

// Logf adds a formatted entry to the logger
func (l *Logger) Logf(perm Permission, tag string, format string, args ...any) {
	l.Log(perm, tag, fmt.Sprintf(format, args...))
}

// Clear all entries from the logger
func (l *Logger) Clear() {
	l.crit.Lock()
	defer l.crit.Unlock()
	l.entries = l.entries[:0]
}

// Write contents of logger to io.Writer
func (l *Logger) Write(output io.Writer) {
	l.crit.Lock()
	defer l.crit.Unlock()
	for _, e := range l.entries {
		io.WriteString(output, e.String())
	}
}

// Tail writes the last N entries to io.Writer. a negative number writes all
// entries
func (l *Logger) Tail(output io.Writer, number int) {
	l.crit.Lock()
	defer l.crit.Unlock()

	if number < 0 || number > len(l.entries) {
		number = len(l.entries)
	}

	for _, e := range l.entries[len(l.entries)-number:] {
		io.WriteString(output, e.String())
	}
}

// SetEcho duplicates future entries to io.Writer as they arrive. a nil writer
// stops the echo
func (l *Logger) SetEcho(output io.Writer) {
	l.crit.Lock()
	defer l.crit.Unlock()
	l.echo = output
}
