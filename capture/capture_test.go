package capture_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/scorewatch/capture"
	"github.com/jetsetilly/scorewatch/test"
)

func TestFormat(t *testing.T) {
	test.ExpectEquality(t, capture.Format(1234500, capture.Separated), "1,234,500")
	test.ExpectEquality(t, capture.Format(1234500, capture.ZeroPadded), "01234500")

	test.ExpectEquality(t, capture.Format(0, capture.Separated), "0")
	test.ExpectEquality(t, capture.Format(0, capture.ZeroPadded), "00000000")

	test.ExpectEquality(t, capture.Format(100, capture.Separated), "100")
	test.ExpectEquality(t, capture.Format(5000000, capture.Separated), "5,000,000")
	test.ExpectEquality(t, capture.Format(99999999, capture.Separated), "99,999,999")
	test.ExpectEquality(t, capture.Format(99999999, capture.ZeroPadded), "99999999")
}

func TestParseStyle(t *testing.T) {
	s, err := capture.ParseStyle("comma")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, capture.Separated)

	s, err = capture.ParseStyle("PADDED")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, capture.ZeroPadded)

	_, err = capture.ParseStyle("roman")
	test.ExpectFailure(t, err)
}

func TestRecordString(t *testing.T) {
	now := time.Date(2025, 6, 1, 20, 30, 40, 0, time.UTC)

	r := capture.NewRecord(now, 5000000, capture.Separated, "")
	test.ExpectEquality(t, r.String(), "[2025-06-01 20:30:40] Final Score: 5,000,000")

	r = capture.NewRecord(now, 5000000, capture.Separated, "JET")
	test.ExpectEquality(t, r.String(), "[2025-06-01 20:30:40] Player: JET - Final Score: 5,000,000")
}

func TestSummary(t *testing.T) {
	var s capture.Summary
	test.ExpectEquality(t, s.String(), "no scores captured")

	now := time.Now()

	s.Add(capture.NewRecord(now, 1234500, capture.Separated, ""))
	test.ExpectEquality(t, s.String(), "1 score captured: 1,234,500")

	s.Add(capture.NewRecord(now, 5000000, capture.Separated, ""))
	test.ExpectEquality(t, s.String(), "2 scores captured, best: 5,000,000")

	// a lower score does not displace the best
	s.Add(capture.NewRecord(now, 100, capture.Separated, ""))
	test.ExpectEquality(t, s.String(), "3 scores captured, best: 5,000,000")
}

func TestLogbook(t *testing.T) {
	now := time.Date(2025, 6, 1, 20, 30, 40, 0, time.UTC)
	pth := filepath.Join(t.TempDir(), capture.Filename(now))

	l, err := capture.NewLogbook(pth, now)
	test.ExpectSuccess(t, err)

	err = l.Append(capture.NewRecord(now, 1234500, capture.Separated, "ABC"))
	test.ExpectSuccess(t, err)

	err = l.Close()
	test.ExpectSuccess(t, err)

	b, err := os.ReadFile(pth)
	test.ExpectSuccess(t, err)

	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	test.ExpectEquality(t, len(lines), 3)
	test.ExpectEquality(t, lines[0], "[2025-06-01 20:30:40] Session started")
	test.ExpectEquality(t, lines[1], "[2025-06-01 20:30:40] Player: ABC - Final Score: 1,234,500")
	test.ExpectSuccess(t, strings.HasSuffix(lines[2], "Session ended"))
}

func TestLogbookDegraded(t *testing.T) {
	// a path that cannot be created. the logbook is still usable but writes
	// are dropped
	l, err := capture.NewLogbook(filepath.Join(t.TempDir(), "no", "such", "dir", "x.log"), time.Now())
	test.ExpectFailure(t, err)

	err = l.Append(capture.NewRecord(time.Now(), 100, capture.Separated, ""))
	test.ExpectSuccess(t, err)

	err = l.Close()
	test.ExpectSuccess(t, err)
}
