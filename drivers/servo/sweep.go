package servo

import (
	"context"
	"time"

	"servocode-go/errcode"
	"servocode-go/x/ramp"
)

// Sweep moves from the current angle to 'to' in evenly spaced steps over d.
// steps==0 or d==0 jumps straight to the target. If ctx is cancelled the
// servo holds the last step written and ctx.Err() is returned.
func (s *Servo) Sweep(ctx context.Context, to int, d time.Duration, steps uint16) error {
	if !s.Attached() {
		return errcode.New(errcode.NotAttached, "sweep", "")
	}
	tick := func(wait time.Duration) bool {
		t := time.NewTimer(wait)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return false
		case <-t.C:
			return true
		}
	}
	done := ramp.StartLinear(int32(s.Read()), int32(to),
		int32(s.rng.MinAngle), int32(s.rng.MaxAngle),
		uint32(d/time.Millisecond), steps, tick,
		func(level int32) { s.Write(int(level)) })
	if !done {
		return ctx.Err()
	}
	return nil
}
