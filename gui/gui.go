// Package gui is the on-screen overlay. It is a read-only projection of the
// tracker state received over the ui channels: the current score, a warning
// when cheats are active, and the prompt when player initials are being
// collected. The one piece of input it owns is the typing of initials.
package gui

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	input "github.com/quasilyte/ebitengine-input"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/jetsetilly/scorewatch/ui"
	"github.com/jetsetilly/scorewatch/version"
)

const (
	screenWidth  = 640
	screenHeight = 360
)

const (
	ActionQuit input.Action = iota
)

var (
	colorBackground = color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff}
	colorTitle      = color.RGBA{R: 0x90, G: 0x90, B: 0x90, A: 0xff}
	colorScore      = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
	colorCheat      = color.RGBA{R: 0xe0, G: 0x40, B: 0x20, A: 0xff}
	colorPrompt     = color.RGBA{R: 0xe0, G: 0xc0, B: 0x20, A: 0xff}
	colorBanner     = color.RGBA{R: 0x40, G: 0xd0, B: 0x60, A: 0xff}
)

type gui struct {
	started bool
	endGui  chan bool
	u       *ui.UI

	overlay ui.Overlay

	// initials typed so far. only consulted while the overlay is in the
	// awaiting-initials state
	typed string

	inputHandler *input.Handler
	inputSystem  input.System

	face      text.Face
	largeFace text.Face
}

func (g *gui) initialise() {
	keymap := input.Keymap{
		ActionQuit: {input.KeyGamepadStart, input.KeyEscape},
	}
	g.inputHandler = g.inputSystem.NewHandler(uint8(0), keymap)
	g.started = true
}

// initials collects keyboard input for the initials prompt. the result is
// sent to the tracker once confirmed with the enter key
func (g *gui) initials() {
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(g.typed) > 0 {
		g.typed = g.typed[:len(g.typed)-1]
	}

	for _, c := range ebiten.AppendInputChars(nil) {
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c >= 'A' && c <= 'Z' && len(g.typed) < 3 {
			g.typed += string(c)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && len(g.typed) > 0 {
		select {
		case g.u.Initials <- g.typed:
			g.typed = ""
		default:
		}
	}
}

func (g *gui) Update() error {
	if !g.started {
		g.initialise()
	}

	g.inputSystem.Update()
	if g.inputHandler.ActionIsJustPressed(ActionQuit) {
		return ebiten.Termination
	}

	select {
	case <-g.endGui:
		return ebiten.Termination
	case ov := <-g.u.Overlay:
		g.overlay = ov
	default:
	}

	if g.overlay.AwaitingInitials {
		g.initials()
	} else {
		g.typed = ""
	}

	return nil
}

func (g *gui) drawText(screen *ebiten.Image, s string, face text.Face, x, y float64, col color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, s, face, op)
}

func (g *gui) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	g.drawText(screen,
		fmt.Sprintf("%s  %s  frame %d", version.ApplicationName, g.overlay.Game, g.overlay.Frame),
		g.face, 20, 20, colorTitle)

	// the score display is suppressed while a cheat is active
	if g.overlay.CheatActive {
		g.drawText(screen,
			fmt.Sprintf("CHEAT ACTIVE: %s", g.overlay.CheatLabel),
			g.largeFace, 20, 140, colorCheat)
	} else {
		g.drawText(screen, g.overlay.Score, g.largeFace, 20, 140, colorScore)
	}

	if g.overlay.AwaitingInitials {
		g.drawText(screen,
			fmt.Sprintf("ENTER INITIALS: %s_", g.typed),
			g.face, 20, 200, colorPrompt)
	}

	if g.overlay.Banner != "" {
		g.drawText(screen, g.overlay.Banner, g.face, 20, 240, colorBanner)
	}
}

func (g *gui) Layout(width, height int) (int, int) {
	return screenWidth, screenHeight
}

func Launch(endGui chan bool, u *ui.UI) error {
	ebiten.SetWindowTitle(version.Title())
	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowPosition(10, 10)
	ebiten.SetTPS(60)

	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return fmt.Errorf("gui: %w", err)
	}

	g := &gui{
		endGui:    endGui,
		u:         u,
		face:      &text.GoTextFace{Source: src, Size: 16},
		largeFace: &text.GoTextFace{Source: src, Size: 36},
	}

	g.inputSystem.Init(input.SystemConfig{
		DevicesEnabled: input.AnyDevice,
	})

	return ebiten.RunGame(g)
}
