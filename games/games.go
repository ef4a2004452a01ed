// Package games contains the per-game data consumed by the tracker: the
// memory layout of the values being watched and the table of known cheat
// signatures. Adding support for a new game means adding an entry here and
// nothing else.
package games

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/scorewatch/cheats"
	"github.com/jetsetilly/scorewatch/memory"
)

// Game is the complete description of a supported game
type Game struct {
	Label  string
	Memory memory.Layout

	// the largest lives value that can occur during gameplay. a reading
	// above this indicates a non-gameplay screen (menu, demo reel, etc.)
	MaxLives uint8

	Signatures []cheats.Signature
}

var contra = Game{
	Label: "Contra",
	Memory: memory.Layout{
		Lives:    0x0032,
		GameOver: 0x0038,
		ScoreLo:  0x07e2,
		ScoreHi:  0x07e3,
	},
	MaxLives: 10,
	Signatures: []cheats.Signature{
		{Address: 0xda03, Value: 0xb5, Label: "30 Lives (Konami Code)"},
		{Address: 0xda06, Value: 0x2c, Label: "Invincibility"},
	},
}

var superC = Game{
	Label: "Super C",
	Memory: memory.Layout{
		Lives:    0x0035,
		GameOver: 0x0039,
		ScoreLo:  0x07e4,
		ScoreHi:  0x07e5,
	},
	MaxLives: 10,
	Signatures: []cheats.Signature{
		{Address: 0xda03, Value: 0xb5, Label: "10 Lives (Konami Code)"},
		{Address: 0xda09, Value: 0x71, Label: "Stage Select"},
	},
}

var supported = []Game{contra, superC}

// Lookup returns the Game matching the name argument. the match is case
// insensitive and ignores spaces
func Lookup(name string) (Game, error) {
	normalise := func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, " ", ""))
	}

	for _, g := range supported {
		if normalise(g.Label) == normalise(name) {
			return g, nil
		}
	}

	return Game{}, fmt.Errorf("games: unsupported game: %s", name)
}

// List returns the labels of every supported game
func List() []string {
	l := make([]string, 0, len(supported))
	for _, g := range supported {
		l = append(l, g.Label)
	}
	return l
}
