// Package tracker watches the host environment's memory for the end of a
// game and records the final score. It owns the per-frame polling loop and a
// small stdin console in the style of a debugger prompt.
package tracker

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jetsetilly/scorewatch/capture"
	"github.com/jetsetilly/scorewatch/cheats"
	"github.com/jetsetilly/scorewatch/games"
	"github.com/jetsetilly/scorewatch/host/trace"
	"github.com/jetsetilly/scorewatch/logger"
	"github.com/jetsetilly/scorewatch/memory"
	"github.com/jetsetilly/scorewatch/resources"
	"github.com/jetsetilly/scorewatch/statsview"
	"github.com/jetsetilly/scorewatch/ui"
)

type input struct {
	s   string
	err error
}

type tracker struct {
	guiQuit chan bool
	sig     chan os.Signal
	input   chan input

	u *ui.UI

	game     games.Game
	playback *trace.Playback
	sampler  *memory.Sampler
	detect   *cheats.Detector

	cfg   Config
	state State

	style   capture.Style
	logbook *capture.Logbook
	summary capture.Summary

	// most recent sample, for the STATUS command
	last memory.Sample

	// short-lived overlay message after a capture
	banner      string
	bannerUntil uint64

	// printing styles
	styles styles
}

const initialsPrompt = "enter player initials (1 to 3 characters)"

// number of frames the capture banner stays on the overlay. about three
// seconds
const bannerFrames = 180

func (t *tracker) record(score uint32, initials string, frame uint64) {
	rec := capture.NewRecord(time.Now(), score, t.style, initials)
	t.summary.Add(rec)

	err := t.logbook.Append(rec)
	if err != nil {
		logger.Log(logger.Allow, "logbook", err)
	}

	fmt.Println(t.styles.capture.Render(rec.String()))

	t.banner = fmt.Sprintf("FINAL SCORE %s", rec.Formatted)
	t.bannerUntil = frame + bannerFrames
}

// resolveInitials completes a capture that is waiting on player initials. an
// invalid response repeats the prompt
func (t *tracker) resolveInitials(s string, frame uint64) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 1 || len(s) > 3 {
		fmt.Println(t.styles.err.Render("initials must be 1 to 3 characters"))
		fmt.Println(t.styles.prompt.Render(initialsPrompt))
		return
	}

	score := t.state.PendingScore
	t.state = t.state.Resolve(frame)
	t.record(score, s, frame)
}

func (t *tracker) parseAddress(address string) (uint16, error) {
	if strings.HasPrefix(address, "$") {
		address = fmt.Sprintf("0x%s", address[1:])
	}

	addr, err := strconv.ParseUint(address, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("address is not valid: %s", address)
	}

	return uint16(addr), nil
}

// command processes a single console command. returns true if the tracker
// should quit
func (t *tracker) command(s string, frame uint64) bool {
	cmd := strings.Fields(s)
	if len(cmd) == 0 {
		return false
	}

	switch strings.ToUpper(cmd[0]) {
	case "STATUS":
		fmt.Println(t.styles.mem.Render(
			fmt.Sprintf("%s: frame=%d lives=%d gameover=%d score=%s",
				t.game.Label, frame, t.last.Lives, t.last.GameOver,
				capture.Format(t.last.Score(), t.style)),
		))
		fmt.Println(t.styles.mem.Render(
			fmt.Sprintf("captured=%v gameOverFrame=%d lastCaptureFrame=%d",
				t.state.ScoreCaptured, t.state.GameOverFrame, t.state.LastCaptureFrame),
		))
		if t.state.CheatsDetected {
			fmt.Println(t.styles.cheat.Render(
				fmt.Sprintf("cheats active: %s", t.state.CheatLabel),
			))
		}
	case "PEEK":
		if len(cmd) < 2 {
			fmt.Println(t.styles.err.Render(
				"PEEK requires an address",
			))
			break // switch
		}

		addr, err := t.parseAddress(cmd[1])
		if err != nil {
			fmt.Println(t.styles.err.Render(
				fmt.Sprintf("peek: %s", err.Error()),
			))
			break // switch
		}

		fmt.Println(t.styles.mem.Render(
			fmt.Sprintf("$%04x = %02x", addr, t.playback.Peek(addr)),
		))
	case "SIGNATURES":
		for _, sig := range t.game.Signatures {
			fmt.Println(t.styles.mem.Render(
				fmt.Sprintf("$%04x = %02x -> %s", sig.Address, sig.Value, sig.Label),
			))
		}
	case "GAMES":
		for _, l := range games.List() {
			fmt.Println(t.styles.tracker.Render(l))
		}
	case "LOG":
		logger.Tail(os.Stdout, -1)
	case "QUIT":
		return true
	default:
		fmt.Println(t.styles.err.Render(
			fmt.Sprintf("unrecognised command: %s", s),
		))
	}

	return false
}

// run drives the replay, polling memory and advancing the state machine once
// per frame
func (t *tracker) run() error {
	// sentinel errors used to end the replay cleanly
	var (
		quitErr = errors.New("quit")
		endErr  = errors.New("end")
	)

	// hook is called once per frame by the playback
	hook := func(frame uint64) error {
		select {
		case <-t.sig:
			return endErr
		case <-t.guiQuit:
			return quitErr
		case inp := <-t.input:
			if inp.err != nil {
				// console input is exhausted, most likely because stdin has
				// been closed or redirected. the replay carries on without
				// the console
				if !errors.Is(inp.err, io.EOF) {
					logger.Log(logger.Allow, "console", inp.err)
				}
				t.input = nil
			} else if t.state.AwaitingInitials {
				t.resolveInitials(inp.s, frame)
			} else if t.command(inp.s, frame) {
				return quitErr
			}
		case s := <-t.u.Initials:
			if t.state.AwaitingInitials {
				t.resolveInitials(s, frame)
			}
		default:
		}

		smp := t.sampler.Sample(frame)
		t.last = smp

		active, label := t.detect.Detect()

		var ev Events
		t.state, ev = t.state.Tick(smp, active, label, t.cfg)

		if ev.CheatEdge {
			if t.state.CheatsDetected {
				fmt.Println(t.styles.cheat.Render(
					fmt.Sprintf("cheat detected: %s", t.state.CheatLabel),
				))
				logger.Logf(logger.Allow, "cheats", "active: %s", t.state.CheatLabel)
			} else {
				fmt.Println(t.styles.tracker.Render("cheats no longer detected"))
				logger.Log(logger.Allow, "cheats", "inactive")
			}
		}

		if ev.NewGame {
			fmt.Println(t.styles.tracker.Render("new game detected"))
			logger.Log(logger.Allow, "tracker", "new game")
		}

		if ev.GameOver {
			if t.state.CheatsDetected {
				fmt.Println(t.styles.cheat.Render(
					"game over: cheats active, final score will not be recorded",
				))
			} else {
				fmt.Println(t.styles.tracker.Render(
					"game over: waiting for score to stabilise",
				))
			}
			logger.Logf(logger.Allow, "tracker", "game over at frame %d", frame)
		}

		if ev.InvalidScore {
			logger.Logf(logger.Allow, "tracker", "score reading out of range: %d", ev.Score)
		}

		if ev.Suppressed {
			logger.Logf(logger.Allow, "tracker", "capture suppressed: %s", t.state.CheatLabel)
		}

		if ev.Capture {
			t.record(ev.Score, "", frame)
		}

		if ev.AwaitInitials {
			fmt.Println(t.styles.prompt.Render(initialsPrompt))
		}

		if t.banner != "" && frame >= t.bannerUntil {
			t.banner = ""
		}

		// project the frame's state for the overlay. the send is dropped if
		// the gui hasn't consumed the previous frame yet
		ov := ui.Overlay{
			Game:             t.game.Label,
			Frame:            frame,
			Score:            capture.Format(smp.Score(), t.style),
			CheatActive:      t.state.CheatsDetected,
			CheatLabel:       t.state.CheatLabel,
			AwaitingInitials: t.state.AwaitingInitials,
			Banner:           t.banner,
		}
		select {
		case t.u.Overlay <- ov:
		default:
		}

		return nil
	}

	err := t.playback.Run(make(chan bool), hook)

	if errors.Is(err, quitErr) || errors.Is(err, endErr) {
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(t.styles.tracker.Render("replay ended"))
	return nil
}

const programName = "scorewatch"

// Launch the tracker. returns a summary of the session's captures alongside
// any error
func Launch(guiQuit chan bool, u *ui.UI, args []string) (capture.Summary, error) {
	var gameName string
	var styleName string
	var initials bool
	var delay uint64
	var cooldown uint64
	var fast bool
	var profile bool
	var stats bool

	flgs := flag.NewFlagSet(programName, flag.ExitOnError)
	flgs.StringVar(&gameName, "game", "Contra", fmt.Sprintf("game to track: %s", strings.Join(games.List(), ", ")))
	flgs.StringVar(&styleName, "style", "comma", "score presentation: comma or padded")
	flgs.BoolVar(&initials, "initials", false, "prompt for player initials on capture")
	flgs.Uint64Var(&delay, "delay", DefaultCaptureDelay, "frames to wait after game-over before trusting the score")
	flgs.Uint64Var(&cooldown, "cooldown", DefaultCaptureCooldown, "minimum frames between captures")
	flgs.BoolVar(&fast, "fast", false, "replay without frame pacing")
	flgs.BoolVar(&profile, "profile", false, "create CPU profile for tracker")
	flgs.BoolVar(&stats, "statsview", false, "run stats server (requires statsview build tag)")
	err := flgs.Parse(args)
	if err != nil {
		return capture.Summary{}, err
	}
	args = flgs.Args()

	if len(args) != 1 {
		return capture.Summary{}, fmt.Errorf("%s requires a trace file", programName)
	}

	game, err := games.Lookup(gameName)
	if err != nil {
		return capture.Summary{}, err
	}

	style, err := capture.ParseStyle(styleName)
	if err != nil {
		return capture.Summary{}, err
	}

	playback, err := trace.Load(args[0], fast)
	if err != nil {
		return capture.Summary{}, err
	}

	cfg := NewConfig()
	cfg.CaptureDelay = delay
	cfg.CaptureCooldown = cooldown
	cfg.MaxLives = game.MaxLives
	cfg.CollectInitials = initials

	t := &tracker{
		guiQuit:  guiQuit,
		sig:      make(chan os.Signal, 1),
		input:    make(chan input, 1),
		u:        u,
		game:     game,
		playback: playback,
		sampler:  memory.NewSampler(playback, game.Memory),
		detect:   cheats.NewDetector(playback, playback, game.Signatures, game.Memory.Lives),
		cfg:      cfg,
		state:    NewState(cfg),
		style:    style,
		styles:   newStyles(),
	}

	// the logbook is best effort. an unopenable file degrades to console
	// output only
	now := time.Now()
	pth, err := resources.JoinPath("logs", capture.Filename(now))
	if err != nil {
		t.logbook = &capture.Logbook{}
		fmt.Println(t.styles.err.Render(
			fmt.Sprintf("logbook unavailable, recording to console only: %s", err.Error()),
		))
	} else {
		t.logbook, err = capture.NewLogbook(pth, now)
		if err != nil {
			fmt.Println(t.styles.err.Render(
				fmt.Sprintf("logbook unavailable, recording to console only: %s", err.Error()),
			))
		} else {
			fmt.Println(t.styles.tracker.Render(
				fmt.Sprintf("logbook: %s", pth),
			))
		}
	}
	defer func() {
		err := t.logbook.Close()
		if err != nil {
			logger.Log(logger.Allow, "logbook", err)
		}
	}()

	signal.Notify(t.sig, syscall.SIGINT)

	go func() {
		r := bufio.NewReader(os.Stdin)
		b := make([]byte, 256)
		for {
			n, err := r.Read(b)
			if n > 0 {
				select {
				case t.input <- input{s: strings.TrimSpace(string(b[:n]))}:
				default:
				}
			}
			if err != nil {
				select {
				case t.input <- input{err: err}:
				default:
				}
				return
			}
		}
	}()

	fmt.Println(t.styles.tracker.Render(
		fmt.Sprintf("tracking %s", game.Label),
	))

	if profile {
		f, err := os.Create("cpu.profile")
		if err != nil {
			return capture.Summary{}, fmt.Errorf("performance: %w", err)
		}
		defer func() {
			err := f.Close()
			if err != nil {
				logger.Log(logger.Allow, "performance", err)
			}
		}()

		err = pprof.StartCPUProfile(f)
		if err != nil {
			return capture.Summary{}, fmt.Errorf("performance: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	if stats {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Println(t.styles.err.Render(
				"statsview not available in this build",
			))
		}
	}

	err = t.run()
	return t.summary, err
}
