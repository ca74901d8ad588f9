package simtimer

import (
	"testing"

	"servocode-go/drivers/servo"
)

func TestWritesIgnoredWithoutClock(t *testing.T) {
	b := New()
	b.ConfigureTimeBase(servo.Timer3, servo.TimeBase{Prescaler: 22, Overflow: 65455})
	b.ConfigureChannel(servo.Timer3, servo.Ch1, 100)
	b.SetCounter(servo.Timer3, true)

	r := b.Regs(servo.Timer3)
	if r.ARR != 0 || r.CEN || r.Channels[0].Enabled {
		t.Fatalf("unclocked timer accepted writes: %+v", r)
	}
	if n := len(b.Calls()); n != 3 {
		t.Fatalf("expected 3 logged calls, got %d", n)
	}
}

func TestTimeBaseAndPreload(t *testing.T) {
	b := New()
	tim, ch := servo.Timer2, servo.Ch3
	b.EnableTimerClock(tim)
	b.ConfigureTimeBase(tim, servo.TimeBase{Prescaler: 22, Overflow: 65455})
	b.ConfigureChannel(tim, ch, 0)
	b.EnableAutoReload(tim)
	b.SetCounter(tim, true)

	r := b.Regs(tim)
	if r.PSC != 21 || r.ARR != 65455 || !r.ARPE || !r.CEN {
		t.Fatalf("unexpected registers: %+v", r)
	}

	b.SetCompare(tim, ch, 4817)
	if got := b.Compare(tim, ch); got != 4817 {
		t.Fatalf("CCR readback = %d", got)
	}
	if got := b.ActiveCompare(tim, ch); got != 0 {
		t.Fatalf("preloaded value leaked before update: %d", got)
	}
	if got := b.PulseUs(tim, ch); got != 0 {
		t.Fatalf("pulse before update = %d", got)
	}

	b.Update(tim)
	if got := b.ActiveCompare(tim, ch); got != 4817 {
		t.Fatalf("active after update = %d", got)
	}
	// 4817 of 65455 ticks is 1471.85 µs.
	if got := b.PulseUs(tim, ch); got != 1472 {
		t.Fatalf("pulse after update = %d", got)
	}
}

func TestStoppedCounterProducesNoUpdate(t *testing.T) {
	b := New()
	tim, ch := servo.Timer4, servo.Ch1
	b.EnableTimerClock(tim)
	b.ConfigureTimeBase(tim, servo.TimeBase{Prescaler: 22, Overflow: 65455})
	b.ConfigureChannel(tim, ch, 0)
	b.SetCompare(tim, ch, 2000)
	before := b.Regs(tim).Updates

	b.Update(tim)
	if b.Regs(tim).Updates != before || b.ActiveCompare(tim, ch) != 0 {
		t.Fatal("update ran with counter disabled")
	}
}

func TestAltOutputAndCallLog(t *testing.T) {
	b := New()
	p := servo.PinInfo{Name: "A0", Port: 'A', Num: 0, Timer: servo.Timer2, Channel: servo.Ch1}
	if b.AltOutput(p) {
		t.Fatal("pin configured before use")
	}
	b.ConfigureAltOutput(p)
	if !b.AltOutput(p) {
		t.Fatal("pin not configured")
	}
	if pinName(servo.PinInfo{Port: 'B', Num: 11}) != "PB11" {
		t.Fatal("pin naming wrong")
	}
	calls := b.Calls()
	if len(calls) != 1 || calls[0].Op != "pin" {
		t.Fatalf("calls=%+v", calls)
	}
	b.ResetCalls()
	if len(b.Calls()) != 0 {
		t.Fatal("log not cleared")
	}
}
