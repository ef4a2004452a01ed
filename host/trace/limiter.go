package trace

import (
	"time"
)

// vertical refresh rate of an NTSC console. the replay runs at the same rate
// the original recording did
const hz = 60.0988

type limiter struct {
	tick *time.Ticker

	// the payload function for the Wait() method
	wait func()
}

func newLimiter(fast bool) *limiter {
	l := &limiter{}

	if fast {
		l.wait = func() {}
		return l
	}

	// the period is fractional so the conversion to a Duration must happen
	// at runtime through a float64 value
	d := float64(time.Second) / hz
	l.tick = time.NewTicker(time.Duration(d))
	l.wait = func() {
		<-l.tick.C
	}

	return l
}

func (l *limiter) Wait() {
	l.wait()
}
