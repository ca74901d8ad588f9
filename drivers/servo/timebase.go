package servo

import (
	"servocode-go/errcode"
	"servocode-go/x/mathx"
)

// Frame timing. A servo expects one pulse every 20 ms.
const (
	FrameMs     = 20
	FrameUs     = FrameMs * 1000
	MaxOverflow = 1<<16 - 1
)

// TimeBase is the prescaler/overflow pair that makes one timer period
// last one frame. Prescaler is the 1-based divisor (the register holds
// Prescaler-1).
type TimeBase struct {
	Prescaler uint32
	Overflow  uint16
}

// NewTimeBase picks the smallest prescaler whose overflow fits the 16-bit
// auto-reload register, which gives the finest pulse resolution for the
// clock. 72 MHz yields {22, 65455}.
func NewTimeBase(coreClockHz uint32) (TimeBase, error) {
	cycPerMs := coreClockHz / 1000
	frameCyc := uint64(cycPerMs) * FrameMs
	if frameCyc == 0 {
		return TimeBase{}, errcode.New(errcode.InvalidParams, "timebase", "core clock below 1 kHz")
	}
	p := mathx.CeilDiv(frameCyc, MaxOverflow)
	return TimeBase{
		Prescaler: uint32(p),
		Overflow:  uint16(mathx.RoundDiv(frameCyc, p)),
	}, nil
}

// TickUs is the pulse-width granularity in microseconds.
func (tb TimeBase) TickUs() float64 {
	if tb.Overflow == 0 {
		return 0
	}
	return float64(FrameUs) / float64(tb.Overflow)
}

// UsToCompare converts a pulse width in µs to compare ticks (truncating).
func (tb TimeBase) UsToCompare(us uint16) uint16 {
	return uint16(mathx.Map[uint32](uint32(us), 0, FrameUs, 0, uint32(tb.Overflow)))
}

// CompareToUs converts compare ticks back to µs, rounding to nearest so a
// write/read round trip stays within one tick.
func (tb TimeBase) CompareToUs(c uint16) uint16 {
	if tb.Overflow == 0 {
		return 0
	}
	return uint16(mathx.RoundDiv(uint32(c)*FrameUs, uint32(tb.Overflow)))
}
