package trace

import (
	"testing"
	"time"

	"github.com/jetsetilly/scorewatch/test"
)

func TestLimiterPacing(t *testing.T) {
	l := newLimiter(false)

	start := time.Now()
	for i := 0; i < 3; i++ {
		l.Wait()
	}

	// three frames at ~60Hz is ~50ms. the lower bound is generous so the test
	// does not flake on a loaded machine
	test.ExpectSuccess(t, time.Since(start) > 30*time.Millisecond)
}

func TestLimiterFast(t *testing.T) {
	l := newLimiter(true)

	start := time.Now()
	for i := 0; i < 1000; i++ {
		l.Wait()
	}
	test.ExpectSuccess(t, time.Since(start) < time.Second)
}
