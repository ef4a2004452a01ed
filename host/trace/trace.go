// Package trace implements the host environment used by the standalone
// scorewatch binary. A trace file is a recording of timed memory writes,
// replayed into a 64KB memory image at the console's frame rate. The replay
// stands in for a live emulator: it supplies the memory-read primitive, the
// per-frame tick and, optionally, a scripted emulator cheat list.
//
// Trace files are plain text, one directive per line. Lines beginning with
// '#' are comments. Frames must be non-decreasing. The replay delivers frames
// numbered from one; directives at frame zero are applied before the first
// frame is delivered.
//
//	<frame> <address> <value>          write value to address at frame
//	<frame> cheat on|off <label>       toggle an emulator cheat
//	<frame> end                        end the replay at frame
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jetsetilly/scorewatch/cheats"
)

type poke struct {
	frame   uint64
	address uint16
	value   uint8
}

type cheatEvent struct {
	frame   uint64
	label   string
	enabled bool
}

// Playback replays a recorded memory trace. it implements memory.Peeker and
// cheats.Enumerator
type Playback struct {
	mem []uint8

	pokes   []poke
	pokePos int

	cheatEvents []cheatEvent
	cheatPos    int

	// labels in first-seen order so that Cheats() is stable
	cheatLabels []string
	active      map[string]bool

	// zero means replay until stopped
	endFrame uint64

	frame uint64
	lim   *limiter
}

// Load reads a trace file and returns a Playback ready to run. the fast
// argument disables frame pacing
func Load(filename string, fast bool) (*Playback, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	defer f.Close()

	p, err := parse(f)
	if err != nil {
		return nil, err
	}
	p.lim = newLimiter(fast)

	return p, nil
}

func parse(r io.Reader) (*Playback, error) {
	p := &Playback{
		mem:    make([]uint8, 0x10000),
		active: make(map[string]bool),

		// frames are numbered from one. the tracker reserves frame zero to
		// mean "not yet observed", so a flag raised at the very start of the
		// replay must still appear on a nonzero frame
		frame: 1,
	}

	var lastFrame uint64

	scanner := bufio.NewScanner(r)
	var lineNo int
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)

		frame, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("trace: line %d: bad frame number: %s", lineNo, fields[0])
		}
		if frame < lastFrame {
			return nil, fmt.Errorf("trace: line %d: frames must be non-decreasing", lineNo)
		}
		lastFrame = frame

		if len(fields) < 2 {
			return nil, fmt.Errorf("trace: line %d: incomplete directive", lineNo)
		}

		switch strings.ToLower(fields[1]) {
		case "end":
			p.endFrame = frame

		case "cheat":
			if len(fields) < 4 {
				return nil, fmt.Errorf("trace: line %d: cheat directive requires on/off and a label", lineNo)
			}
			var enabled bool
			switch strings.ToLower(fields[2]) {
			case "on":
				enabled = true
			case "off":
				enabled = false
			default:
				return nil, fmt.Errorf("trace: line %d: cheat directive requires on or off", lineNo)
			}
			p.cheatEvents = append(p.cheatEvents, cheatEvent{
				frame:   frame,
				label:   strings.Join(fields[3:], " "),
				enabled: enabled,
			})

		default:
			if len(fields) < 3 {
				return nil, fmt.Errorf("trace: line %d: incomplete directive", lineNo)
			}
			address, err := strconv.ParseUint(fields[1], 0, 16)
			if err != nil {
				return nil, fmt.Errorf("trace: line %d: bad address: %s", lineNo, fields[1])
			}
			value, err := strconv.ParseUint(fields[2], 0, 8)
			if err != nil {
				return nil, fmt.Errorf("trace: line %d: bad value: %s", lineNo, fields[2])
			}
			p.pokes = append(p.pokes, poke{
				frame:   frame,
				address: uint16(address),
				value:   uint8(value),
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}

	return p, nil
}

// Peek implements the memory.Peeker interface
func (p *Playback) Peek(address uint16) uint8 {
	return p.mem[address]
}

// Cheats implements the cheats.Enumerator interface
func (p *Playback) Cheats() []cheats.Cheat {
	c := make([]cheats.Cheat, 0, len(p.cheatLabels))
	for _, l := range p.cheatLabels {
		c = append(c, cheats.Cheat{Label: l, Enabled: p.active[l]})
	}
	return c
}

// apply all events that are due on the current frame
func (p *Playback) apply() {
	for p.pokePos < len(p.pokes) && p.pokes[p.pokePos].frame <= p.frame {
		pk := p.pokes[p.pokePos]
		p.mem[pk.address] = pk.value
		p.pokePos++
	}
	for p.cheatPos < len(p.cheatEvents) && p.cheatEvents[p.cheatPos].frame <= p.frame {
		ce := p.cheatEvents[p.cheatPos]
		if _, ok := p.active[ce.label]; !ok {
			p.cheatLabels = append(p.cheatLabels, ce.label)
		}
		p.active[ce.label] = ce.enabled
		p.cheatPos++
	}
}

// Run the replay, calling the hook function once per frame. the replay ends
// when the stop channel yields, when the hook returns an error, or when an
// end directive is reached
func (p *Playback) Run(stop chan bool, hook func(frame uint64) error) error {
	for {
		select {
		case <-stop:
			return nil
		default:
		}

		p.apply()

		err := hook(p.frame)
		if err != nil {
			return err
		}

		if p.endFrame > 0 && p.frame >= p.endFrame {
			return nil
		}

		p.frame++
		p.lim.Wait()
	}
}
