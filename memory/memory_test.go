package memory_test

import (
	"testing"

	"github.com/jetsetilly/scorewatch/memory"
	"github.com/jetsetilly/scorewatch/test"
)

func TestDecodeScore(t *testing.T) {
	test.ExpectEquality(t, memory.DecodeScore(0x00, 0x00), 0)
	test.ExpectEquality(t, memory.DecodeScore(0x01, 0x00), 100)
	test.ExpectEquality(t, memory.DecodeScore(0x00, 0x01), 25600)
	test.ExpectEquality(t, memory.DecodeScore(0x34, 0x12), 466000)

	// the largest possible reading
	test.ExpectEquality(t, memory.DecodeScore(0xff, 0xff), 6553500)

	// the decoded value is always a multiple of one hundred
	for lo := 0; lo < 256; lo += 17 {
		for hi := 0; hi < 256; hi += 13 {
			v := memory.DecodeScore(uint8(lo), uint8(hi))
			test.ExpectEquality(t, v%100, 0)
			test.ExpectEquality(t, v, (uint32(lo)+uint32(hi)*256)*100)
		}
	}
}

// peekMap implements the memory.Peeker interface over a map. addresses not
// in the map read as zero
type peekMap map[uint16]uint8

func (p peekMap) Peek(address uint16) uint8 {
	return p[address]
}

func TestSampler(t *testing.T) {
	layout := memory.Layout{
		Lives:    0x0032,
		GameOver: 0x0038,
		ScoreLo:  0x07e2,
		ScoreHi:  0x07e3,
	}

	mem := peekMap{
		0x0032: 3,
		0x0038: 0,
		0x07e2: 0x50,
		0x07e3: 0xc3,
	}

	smp := memory.NewSampler(mem, layout).Sample(100)
	test.ExpectEquality(t, smp.Lives, 3)
	test.ExpectEquality(t, smp.GameOver, 0)
	test.ExpectEquality(t, smp.ScoreRaw, 0xc350)
	test.ExpectEquality(t, smp.Frame, 100)

	// 0xc350 is 50000 which displays as 5000000
	test.ExpectEquality(t, smp.Score(), 5000000)
}
