package ramp

import (
	"time"

	"servocode-go/x/mathx"
)

// Step applies the next level, already clamped to [lo..hi].
type Step func(level int32)

// Tick waits for d and reports whether to continue (false => cancelled).
type Tick func(d time.Duration) bool

// StartLinear runs a synchronous (caller-driven) integer ramp from cur to
// to, keeping every level inside [lo..hi]. Levels are spread evenly over
// steps; intermediate steps that round to no change are skipped.
// steps==0 or durationMs==0 snaps to 'to'. It reports false if tick
// cancelled the ramp before the final level was set.
func StartLinear(cur, to, lo, hi int32, durationMs uint32, steps uint16, tick Tick, set Step) bool {
	to = mathx.Clamp(to, lo, hi)
	if steps == 0 || durationMs == 0 {
		set(to)
		return true
	}
	d := to - cur
	st := int32(steps)
	acc := int32(0)
	stepDurMs := durationMs / uint32(steps)
	if stepDurMs == 0 {
		stepDurMs = 1
	}
	stepDur := time.Duration(stepDurMs) * time.Millisecond

	for i := uint16(1); i < steps; i++ {
		if !tick(stepDur) {
			return false
		}
		acc += d
		inc := acc / st
		if inc != 0 {
			acc -= inc * st
			cur = mathx.Clamp(cur+inc, lo, hi)
			set(cur)
		}
	}
	if !tick(stepDur) {
		return false
	}
	set(to)
	return true
}
