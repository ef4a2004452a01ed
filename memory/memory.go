// Package memory reads the small set of addresses that the tracker cares
// about from the host environment's memory space. The reads are repeated
// every frame and the results bundled into a Sample.
package memory

// Peeker is the memory-read primitive supplied by the host environment
type Peeker interface {
	Peek(address uint16) uint8
}

// Layout names the addresses that are sampled every frame. the values are
// game specific and supplied by the games package
type Layout struct {
	Lives    uint16
	GameOver uint16
	ScoreLo  uint16
	ScoreHi  uint16
}

// Sample is a fresh reading of the tracked addresses for a single frame
type Sample struct {
	Lives    uint8
	GameOver uint8
	ScoreRaw uint16
	Frame    uint64
}

// Score returns the display value of the sample's raw score
func (s Sample) Score() uint32 {
	return DecodeScore(uint8(s.ScoreRaw), uint8(s.ScoreRaw>>8))
}

// the game stores the score in units of one hundred points. the display value
// is always the stored value multiplied by this constant
const scoreScale = 100

// DecodeScore converts the two byte little-endian score reading into the
// value shown to the player
func DecodeScore(lo uint8, hi uint8) uint32 {
	return (uint32(lo) + uint32(hi)*256) * scoreScale
}

// Sampler produces a Sample for the current frame
type Sampler struct {
	mem    Peeker
	layout Layout
}

// NewSampler is the preferred method of initialisation for the Sampler type
func NewSampler(mem Peeker, layout Layout) *Sampler {
	return &Sampler{
		mem:    mem,
		layout: layout,
	}
}

// Sample reads the tracked addresses for the frame indicated by the frame
// argument
func (s *Sampler) Sample(frame uint64) Sample {
	lo := s.mem.Peek(s.layout.ScoreLo)
	hi := s.mem.Peek(s.layout.ScoreHi)
	return Sample{
		Lives:    s.mem.Peek(s.layout.Lives),
		GameOver: s.mem.Peek(s.layout.GameOver),
		ScoreRaw: uint16(lo) | uint16(hi)<<8,
		Frame:    frame,
	}
}
