// Package ui is the meeting point of the tracker and the gui. the two run in
// separate goroutines and communicate only over these channels.
package ui

// Overlay is a projection of the tracker state for one frame. the gui renders
// it verbatim and mutates nothing
type Overlay struct {
	Game  string
	Frame uint64

	// formatted score for plain display
	Score string

	// when a cheat is active the score display is suppressed and a warning
	// shown instead
	CheatActive bool
	CheatLabel  string

	// the gui shows an initials prompt and collects keyboard input while
	// this is true
	AwaitingInitials bool

	// short-lived message after a capture. empty when nothing to show
	Banner string
}

type UI struct {
	// tracker to gui. the tracker drops the send if the gui is behind; only
	// the latest projection matters
	Overlay chan Overlay

	// gui to tracker. a validated upper-case initials string
	Initials chan string
}

func NewUI() *UI {
	return &UI{
		Overlay:  make(chan Overlay, 1),
		Initials: make(chan string, 1),
	}
}
