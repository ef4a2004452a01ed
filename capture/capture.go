// Package capture turns a final score into a permanent record. Formatting of
// the score and the append-only logbook live here.
package capture

import (
	"fmt"
	"strings"
	"time"
)

// MaxScore is the largest score that can legitimately occur. decoded values
// above this are transient garbage and must never be recorded
const MaxScore = 99999999

// Style is the presentation policy for a formatted score
type Style int

// List of valid Style values
const (
	// thousands separators inserted every three digits from the right
	Separated Style = iota

	// padded to eight digits with leading zeroes and no separators
	ZeroPadded
)

// ParseStyle converts the name of a presentation style, as it would be given
// on the command line, to a Style value
func ParseStyle(s string) (Style, error) {
	switch strings.ToUpper(s) {
	case "COMMA":
		return Separated, nil
	case "PADDED":
		return ZeroPadded, nil
	}
	return Separated, fmt.Errorf("capture: unrecognised score style: %s", s)
}

// the number of digits a ZeroPadded score is padded to
const paddedWidth = 8

// Format renders a score according to the presentation style
func Format(score uint32, style Style) string {
	if style == ZeroPadded {
		return fmt.Sprintf("%0*d", paddedWidth, score)
	}

	s := fmt.Sprintf("%d", score)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteRune(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// timestamp format used in the logbook
const timestampFormat = "2006-01-02 15:04:05"

// Record is a single capture. one is created per successful capture and
// appended to the logbook. only the logbook retains history
type Record struct {
	Time      time.Time
	Score     uint32
	Formatted string

	// Initials is empty when player identification is not being collected
	Initials string
}

// NewRecord is the preferred method of initialisation for the Record type
func NewRecord(now time.Time, score uint32, style Style, initials string) Record {
	return Record{
		Time:      now,
		Score:     score,
		Formatted: Format(score, style),
		Initials:  initials,
	}
}

func (r Record) String() string {
	if r.Initials == "" {
		return fmt.Sprintf("[%s] Final Score: %s", r.Time.Format(timestampFormat), r.Formatted)
	}
	return fmt.Sprintf("[%s] Player: %s - Final Score: %s", r.Time.Format(timestampFormat), r.Initials, r.Formatted)
}

// Summary is the headline description of a session's captures, shown when the
// program ends
type Summary struct {
	Captures int
	Best     Record
}

// Add accounts for a new capture
func (s *Summary) Add(r Record) {
	if s.Captures == 0 || r.Score > s.Best.Score {
		s.Best = r
	}
	s.Captures++
}

func (s Summary) String() string {
	switch s.Captures {
	case 0:
		return "no scores captured"
	case 1:
		return fmt.Sprintf("1 score captured: %s", s.Best.Formatted)
	}
	return fmt.Sprintf("%d scores captured, best: %s", s.Captures, s.Best.Formatted)
}
