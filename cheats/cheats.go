// Package cheats decides whether score tracking should be suppressed because
// a cheat is in effect. Detection is a pure query. Edge-triggered reporting of
// transitions between active and inactive is the responsibility of the caller.
package cheats

import (
	"github.com/jetsetilly/scorewatch/memory"
)

// Signature is a known memory state indicating that a specific cheat is
// active. Signatures are static per-game data and are never mutated
type Signature struct {
	Address uint16
	Value   uint8
	Label   string
}

// Cheat is an entry in the host environment's own cheat list
type Cheat struct {
	Label   string
	Enabled bool
}

// Enumerator is implemented by host environments that can list the cheats
// enabled in the emulator itself, as opposed to cheats visible in memory
type Enumerator interface {
	Cheats() []Cheat
}

// label used when the only evidence of cheating is the host environment's
// cheat list
const enumeratedLabel = "Emulator Cheat Active"

// label used when the lives reading indicates an infinite-lives cheat
const infiniteLivesLabel = "Infinite Lives"

// a lives value of 0xff is taken as evidence of an infinite-lives cheat
const infiniteLives = 0xff

// Detector scans for evidence that a cheat is active
type Detector struct {
	mem        memory.Peeker
	signatures []Signature
	livesAddr  uint16

	// enum is nil if the host environment cannot enumerate its own cheats
	enum Enumerator
}

// NewDetector is the preferred method of initialisation for the Detector
// type. the enum argument may be nil
func NewDetector(mem memory.Peeker, enum Enumerator, signatures []Signature, livesAddr uint16) *Detector {
	return &Detector{
		mem:        mem,
		signatures: signatures,
		livesAddr:  livesAddr,
		enum:       enum,
	}
}

// Detect returns true if any evidence of cheating is found, along with a
// label describing the cheat. the signature table is consulted in order and
// the first match wins
func (d *Detector) Detect() (bool, string) {
	for _, sig := range d.signatures {
		if d.mem.Peek(sig.Address) == sig.Value {
			return true, sig.Label
		}
	}

	if d.enum != nil {
		for _, c := range d.enum.Cheats() {
			if c.Enabled {
				return true, enumeratedLabel
			}
		}
	}

	if d.mem.Peek(d.livesAddr) == infiniteLives {
		return true, infiniteLivesLabel
	}

	return false, ""
}
