package capture

import (
	"fmt"
	"os"
	"time"
)

// Filename returns the logbook filename for a session starting at the time
// indicated by the now argument. the time-derived suffix keeps runs from
// colliding with one another
func Filename(now time.Time) string {
	return fmt.Sprintf("scorewatch_%s.log", now.Format("20060102_150405"))
}

// Logbook is the append-only file of capture records. it is opened once for
// the lifetime of the process and closed on shutdown.
//
// A Logbook with a nil file is valid and drops all writes. the tracker uses
// this to degrade to console-only output when the file cannot be opened
type Logbook struct {
	f *os.File
}

// NewLogbook opens the logbook file and writes the session header. the
// returned error does not prevent use of the Logbook, it only means that
// records will not be kept on disk
func NewLogbook(path string, now time.Time) (*Logbook, error) {
	l := &Logbook{}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return l, fmt.Errorf("logbook: %w", err)
	}
	l.f = f

	err = l.writeLine(fmt.Sprintf("[%s] Session started", now.Format(timestampFormat)))
	if err != nil {
		return l, err
	}

	return l, nil
}

// writeLine appends a single line and flushes it immediately so that partial
// runs are not lost
func (l *Logbook) writeLine(s string) error {
	if l.f == nil {
		return nil
	}
	_, err := l.f.WriteString(s + "\n")
	if err != nil {
		return fmt.Errorf("logbook: %w", err)
	}
	err = l.f.Sync()
	if err != nil {
		return fmt.Errorf("logbook: %w", err)
	}
	return nil
}

// Append adds a capture record to the logbook
func (l *Logbook) Append(r Record) error {
	return l.writeLine(r.String())
}

// Close writes the session footer and closes the logbook file
func (l *Logbook) Close() error {
	if l.f == nil {
		return nil
	}
	err := l.writeLine(fmt.Sprintf("[%s] Session ended", time.Now().Format(timestampFormat)))
	if err != nil {
		_ = l.f.Close()
		l.f = nil
		return err
	}
	err = l.f.Close()
	l.f = nil
	if err != nil {
		return fmt.Errorf("logbook: %w", err)
	}
	return nil
}
