package tracker

import (
	"github.com/jetsetilly/scorewatch/capture"
	"github.com/jetsetilly/scorewatch/memory"
)

// default values for the Config type
const (
	// number of frames to wait after first observing game-over before the
	// score reading can be trusted. the score memory may be updated over
	// several frames after the game-over flag is first raised
	DefaultCaptureDelay = 10

	// minimum number of frames between two captures. guards against
	// duplicate captures when the game-over flag flickers. 120 frames is
	// about two seconds
	DefaultCaptureCooldown = 120
)

// Config collects the tunable values of the state machine. the zero value is
// not useful, use NewConfig()
type Config struct {
	CaptureDelay    uint64
	CaptureCooldown uint64

	// lives readings above MaxLives indicate a non-gameplay screen and the
	// frame is skipped entirely
	MaxLives uint8

	// when true a capture is parked in the awaiting-initials sub-state until
	// Resolve() is called
	CollectInitials bool
}

// NewConfig returns a Config with default values
func NewConfig() Config {
	return Config{
		CaptureDelay:    DefaultCaptureDelay,
		CaptureCooldown: DefaultCaptureCooldown,
		MaxLives:        10,
	}
}

// State is everything the tracker knows between frames. it is a value type:
// Tick() returns the next State rather than mutating in place, so the state
// machine can be exercised without a live host environment
type State struct {
	PreviousLives    int16
	ScoreCaptured    bool
	LastCaptureFrame int64

	// the frame on which game-over was first observed. zero means not yet
	// observed, so hosts must deliver frames numbered from one
	GameOverFrame uint64

	CheatsDetected bool
	CheatLabel     string

	// the awaiting-initials sub-state. while true, capture logic is not
	// re-entered and the overlay shows a prompt
	AwaitingInitials bool
	PendingScore     uint32
}

// NewState returns a State ready for the first frame. LastCaptureFrame
// starts in the past so that the cooldown does not withhold a capture that
// occurs soon after startup
func NewState(cfg Config) State {
	return State{
		PreviousLives:    -1,
		LastCaptureFrame: -int64(cfg.CaptureCooldown) - 1,
	}
}

// Events describes what happened during a single Tick(). the caller decides
// how each event is reported
type Events struct {
	// CheatsDetected changed value this frame
	CheatEdge bool

	// game-over first observed this frame
	GameOver bool

	// a new playthrough started after a capture
	NewGame bool

	// a capture fired this frame. Score holds the decoded value
	Capture bool

	// a capture is due but is waiting on player initials
	AwaitInitials bool

	// the capture point was reached with cheats active. no record is made
	Suppressed bool

	// the decoded score was out of range and the capture skipped. the state
	// is unchanged so a later frame may retry
	InvalidScore bool

	// decoded score for the Capture, AwaitInitials, Suppressed and
	// InvalidScore events
	Score uint32
}

// Tick advances the state machine by one frame. the cheat arguments are the
// result of the cheat detector's Detect() for the same frame
func (s State) Tick(smp memory.Sample, cheatActive bool, cheatLabel string, cfg Config) (State, Events) {
	var ev Events

	// a lives reading outside the playable range means a non-gameplay screen
	// and nothing read this frame can be trusted
	if smp.Lives > cfg.MaxLives {
		return s, ev
	}

	// edge detection on the cheat state. the label is refreshed while active
	// in case a different signature takes over
	if cheatActive != s.CheatsDetected {
		s.CheatsDetected = cheatActive
		s.CheatLabel = cheatLabel
		ev.CheatEdge = true
	} else if cheatActive {
		s.CheatLabel = cheatLabel
	}

	// a new playthrough has started
	if smp.Lives > 0 && s.ScoreCaptured {
		s.ScoreCaptured = false
		s.GameOverFrame = 0
		ev.NewGame = true
	}

	// first observation of the game-over condition
	if smp.GameOver == 1 && !s.ScoreCaptured {
		if s.GameOverFrame == 0 {
			s.GameOverFrame = smp.Frame
			ev.GameOver = true
		}
	}

	// capture decision
	if s.GameOverFrame != 0 && !s.ScoreCaptured && !s.AwaitingInitials {
		if s.CheatsDetected {
			// no record is made for a cheated episode. marking the score as
			// captured stops the warning repeating every frame
			s.ScoreCaptured = true
			s.GameOverFrame = 0
			ev.Suppressed = true
			ev.Score = smp.Score()
		} else if smp.Frame-s.GameOverFrame >= cfg.CaptureDelay &&
			int64(smp.Frame)-s.LastCaptureFrame > int64(cfg.CaptureCooldown) {

			score := smp.Score()
			if score > capture.MaxScore {
				ev.InvalidScore = true
				ev.Score = score
			} else if cfg.CollectInitials {
				s.AwaitingInitials = true
				s.PendingScore = score
				ev.AwaitInitials = true
				ev.Score = score
			} else {
				s.ScoreCaptured = true
				s.GameOverFrame = 0
				s.LastCaptureFrame = int64(smp.Frame)
				ev.Capture = true
				ev.Score = score
			}
		}
	}

	// tracked for completeness. nothing currently consumes it
	s.PreviousLives = int16(smp.Lives)

	return s, ev
}

// Resolve completes a capture that was parked in the awaiting-initials
// sub-state. the frame argument is the frame on which the initials arrived
func (s State) Resolve(frame uint64) State {
	s.AwaitingInitials = false
	s.ScoreCaptured = true
	s.GameOverFrame = 0
	s.LastCaptureFrame = int64(frame)
	return s
}
