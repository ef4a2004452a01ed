package tracker_test

import (
	"testing"

	"github.com/jetsetilly/scorewatch/memory"
	"github.com/jetsetilly/scorewatch/test"
	"github.com/jetsetilly/scorewatch/tracker"
)

// sample builds a memory.Sample with a raw score of 50000 (displays as
// 5,000,000) unless overridden
func sample(frame uint64, lives uint8, gameOver uint8) memory.Sample {
	return memory.Sample{
		Lives:    lives,
		GameOver: gameOver,
		ScoreRaw: 50000,
		Frame:    frame,
	}
}

func TestBasicCapture(t *testing.T) {
	cfg := tracker.NewConfig()
	s := tracker.NewState(cfg)

	var ev tracker.Events

	// playing normally
	for f := uint64(0); f < 1000; f++ {
		s, ev = s.Tick(sample(f, 3, 0), false, "", cfg)
		test.ExpectFailure(t, ev.Capture)
	}

	// lives drop to zero and the game-over flag goes up at frame 1000
	s, ev = s.Tick(sample(1000, 0, 1), false, "", cfg)
	test.ExpectSuccess(t, ev.GameOver)
	test.ExpectFailure(t, ev.Capture)
	test.ExpectEquality(t, s.GameOverFrame, 1000)

	// no capture before the stabilization delay has elapsed
	for f := uint64(1001); f < 1010; f++ {
		s, ev = s.Tick(sample(f, 0, 1), false, "", cfg)
		test.ExpectFailure(t, ev.Capture)
	}

	// capture fires at frame 1010
	s, ev = s.Tick(sample(1010, 0, 1), false, "", cfg)
	test.ExpectSuccess(t, ev.Capture)
	test.ExpectEquality(t, ev.Score, 5000000)
	test.ExpectSuccess(t, s.ScoreCaptured)
	test.ExpectEquality(t, s.LastCaptureFrame, 1010)
	test.ExpectEquality(t, s.GameOverFrame, 0)
}

func TestCaptureIsIdempotent(t *testing.T) {
	cfg := tracker.NewConfig()
	s := tracker.NewState(cfg)

	var ev tracker.Events

	s, _ = s.Tick(sample(1000, 0, 1), false, "", cfg)
	s, _ = s.Tick(sample(1010, 0, 1), false, "", cfg)
	test.ExpectSuccess(t, s.ScoreCaptured)

	// repeated ticks with the game-over flag still raised never produce a
	// second capture
	for f := uint64(1011); f < 2000; f++ {
		s, ev = s.Tick(sample(f, 0, 1), false, "", cfg)
		test.ExpectFailure(t, ev.Capture)
	}
	test.ExpectSuccess(t, s.ScoreCaptured)
}

func TestNewGameReset(t *testing.T) {
	cfg := tracker.NewConfig()
	s := tracker.NewState(cfg)

	var ev tracker.Events

	s, _ = s.Tick(sample(1000, 0, 1), false, "", cfg)
	s, _ = s.Tick(sample(1010, 0, 1), false, "", cfg)
	test.ExpectSuccess(t, s.ScoreCaptured)

	// scoreCaptured stays true until lives become non-zero again
	s, ev = s.Tick(sample(1011, 0, 0), false, "", cfg)
	test.ExpectFailure(t, ev.NewGame)
	test.ExpectSuccess(t, s.ScoreCaptured)

	s, ev = s.Tick(sample(1012, 3, 0), false, "", cfg)
	test.ExpectSuccess(t, ev.NewGame)
	test.ExpectFailure(t, s.ScoreCaptured)
	test.ExpectEquality(t, s.GameOverFrame, 0)
}

func TestCaptureCooldown(t *testing.T) {
	cfg := tracker.NewConfig()
	s := tracker.NewState(cfg)

	s, _ = s.Tick(sample(1000, 0, 1), false, "", cfg)
	s, _ = s.Tick(sample(1010, 0, 1), false, "", cfg)
	test.ExpectEquality(t, s.LastCaptureFrame, 1010)

	// a new game starts immediately and ends immediately. the flag flickers
	// back up at frame 1020
	s, _ = s.Tick(sample(1015, 3, 0), false, "", cfg)
	s, _ = s.Tick(sample(1020, 0, 1), false, "", cfg)
	test.ExpectEquality(t, s.GameOverFrame, 1020)

	// the stabilization delay elapses at frame 1030 but the cooldown now
	// withholds the capture until more than 120 frames after frame 1010
	var captureFrame uint64
	var ev tracker.Events
	for f := uint64(1021); f < 1200; f++ {
		s, ev = s.Tick(sample(f, 0, 1), false, "", cfg)
		if ev.Capture {
			captureFrame = f
			break
		}
	}
	test.ExpectEquality(t, captureFrame, 1131)
}

func TestCheatSuppression(t *testing.T) {
	cfg := tracker.NewConfig()
	s := tracker.NewState(cfg)

	var ev tracker.Events

	// cheat becomes active during play. rising edge reported once
	s, ev = s.Tick(sample(100, 3, 0), true, "30 Lives (Konami Code)", cfg)
	test.ExpectSuccess(t, ev.CheatEdge)
	test.ExpectSuccess(t, s.CheatsDetected)

	s, ev = s.Tick(sample(101, 3, 0), true, "30 Lives (Konami Code)", cfg)
	test.ExpectFailure(t, ev.CheatEdge)

	// game over with the cheat active. scoreCaptured is set without a
	// capture so the warning does not repeat for the rest of the episode
	s, ev = s.Tick(sample(1000, 0, 1), true, "30 Lives (Konami Code)", cfg)
	test.ExpectSuccess(t, ev.GameOver)
	test.ExpectSuccess(t, ev.Suppressed)
	test.ExpectFailure(t, ev.Capture)
	test.ExpectSuccess(t, s.ScoreCaptured)

	for f := uint64(1001); f < 1200; f++ {
		s, ev = s.Tick(sample(f, 0, 1), true, "30 Lives (Konami Code)", cfg)
		test.ExpectFailure(t, ev.Capture)
		test.ExpectFailure(t, ev.Suppressed)
	}
}

func TestNonGameplayScreenSkipsFrame(t *testing.T) {
	cfg := tracker.NewConfig()
	s := tracker.NewState(cfg)

	// a lives reading outside [0,10] leaves the state untouched, even when
	// the game-over flag appears to be raised
	next, ev := s.Tick(sample(100, 200, 1), false, "", cfg)
	test.ExpectEquality(t, next, s)
	test.ExpectFailure(t, ev.GameOver)
}

func TestLargestReadingIsCapturable(t *testing.T) {
	cfg := tracker.NewConfig()
	s := tracker.NewState(cfg)

	// the largest possible two byte reading decodes to 6,553,500 which is
	// comfortably inside the valid score range. the range check on capture
	// can never reject a genuine reading
	smp := memory.Sample{Lives: 0, GameOver: 1, ScoreRaw: 0xffff, Frame: 1000}
	s, _ = s.Tick(smp, false, "", cfg)

	smp.Frame = 1010
	s, ev := s.Tick(smp, false, "", cfg)
	test.ExpectSuccess(t, ev.Capture)
	test.ExpectEquality(t, ev.Score, 6553500)
}

func TestAwaitingInitials(t *testing.T) {
	cfg := tracker.NewConfig()
	cfg.CollectInitials = true
	s := tracker.NewState(cfg)

	var ev tracker.Events

	s, _ = s.Tick(sample(1000, 0, 1), false, "", cfg)
	s, ev = s.Tick(sample(1010, 0, 1), false, "", cfg)
	test.ExpectSuccess(t, ev.AwaitInitials)
	test.ExpectFailure(t, ev.Capture)
	test.ExpectSuccess(t, s.AwaitingInitials)
	test.ExpectEquality(t, s.PendingScore, 5000000)
	test.ExpectFailure(t, s.ScoreCaptured)

	// capture logic is not re-entered while parked
	for f := uint64(1011); f < 1500; f++ {
		s, ev = s.Tick(sample(f, 0, 1), false, "", cfg)
		test.ExpectFailure(t, ev.AwaitInitials)
		test.ExpectFailure(t, ev.Capture)
	}

	// initials arrive
	s = s.Resolve(1500)
	test.ExpectFailure(t, s.AwaitingInitials)
	test.ExpectSuccess(t, s.ScoreCaptured)
	test.ExpectEquality(t, s.LastCaptureFrame, 1500)
}

func TestEarlyCaptureNotWithheldByCooldown(t *testing.T) {
	cfg := tracker.NewConfig()
	s := tracker.NewState(cfg)

	// a game over very soon after startup must not be withheld by the
	// cooldown measured against an unset last-capture frame
	s, _ = s.Tick(sample(5, 0, 1), false, "", cfg)
	s, ev := s.Tick(sample(15, 0, 1), false, "", cfg)
	test.ExpectSuccess(t, ev.Capture)
}
