// Package simtimer models the register file of STM32 general-purpose
// timers well enough to run the servo driver on a host. Writes to a timer
// whose bus clock is gated off are dropped, as on silicon, and compare
// writes with preload enabled only reach the active register on Update.
package simtimer

import (
	"sync"

	"servocode-go/drivers/servo"
	"servocode-go/x/conv"
	"servocode-go/x/mathx"
)

var _ servo.Hardware = (*Bank)(nil)

// PWM mode 1 in the OCxM field.
const ocModePWM1 = 0b110

// Channel holds the per-channel compare state.
type Channel struct {
	Mode      uint8 // OCxM
	Preload   bool  // OCxPE
	Enabled   bool  // CCxE
	ActiveLow bool  // CCxP
	CCR       uint16
	Active    uint16 // shadow register driving the output
}

// Regs is a snapshot of one timer.
type Regs struct {
	Clocked   bool
	PSC       uint16
	ARR       uint16
	ARPE      bool
	CEN       bool
	Updates   int
	Channels  [4]Channel
	activeARR uint16
}

// Call is one Hardware method invocation.
type Call struct {
	Op    string
	Timer servo.Timer
	Ch    servo.Channel
	Value uint32
}

// Bank is a set of simulated timers plus pin configuration.
type Bank struct {
	mu     sync.Mutex
	timers map[servo.Timer]*Regs
	pins   map[string]bool // "PA0" => alternate-function output
	calls  []Call
}

func New() *Bank {
	return &Bank{
		timers: make(map[servo.Timer]*Regs),
		pins:   make(map[string]bool),
	}
}

// caller holds lock
func (b *Bank) regs(t servo.Timer) *Regs {
	r := b.timers[t]
	if r == nil {
		r = &Regs{}
		b.timers[t] = r
	}
	return r
}

// caller holds lock
func (b *Bank) log(op string, t servo.Timer, ch servo.Channel, v uint32) {
	b.calls = append(b.calls, Call{Op: op, Timer: t, Ch: ch, Value: v})
}

func (b *Bank) EnableTimerClock(t servo.Timer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log("clock", t, 0, 1)
	b.regs(t).Clocked = true
}

func (b *Bank) ConfigureAltOutput(p servo.PinInfo) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log("pin", p.Timer, p.Channel, uint32(p.Port)<<8|uint32(p.Num))
	b.pins[pinName(p)] = true
}

func (b *Bank) ConfigureTimeBase(t servo.Timer, tb servo.TimeBase) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log("timebase", t, 0, tb.Prescaler<<16|uint32(tb.Overflow))
	r := b.regs(t)
	if !r.Clocked {
		return
	}
	r.PSC = uint16(tb.Prescaler - 1)
	r.ARR = tb.Overflow
	// Time-base init issues an update event so PSC/ARR load at once.
	b.update(r)
}

func (b *Bank) ConfigureChannel(t servo.Timer, ch servo.Channel, pulse uint16) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log("channel", t, ch, uint32(pulse))
	r := b.regs(t)
	if !r.Clocked || !ch.Valid() {
		return
	}
	c := &r.Channels[ch.Index()]
	c.Mode = ocModePWM1
	c.Enabled = true
	c.ActiveLow = false
	c.CCR = pulse
	c.Active = pulse
	c.Preload = true
}

func (b *Bank) EnableAutoReload(t servo.Timer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log("arpe", t, 0, 1)
	if r := b.regs(t); r.Clocked {
		r.ARPE = true
	}
}

func (b *Bank) SetCounter(t servo.Timer, on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v := uint32(0)
	if on {
		v = 1
	}
	b.log("counter", t, 0, v)
	if r := b.regs(t); r.Clocked {
		r.CEN = on
	}
}

func (b *Bank) SetCompare(t servo.Timer, ch servo.Channel, v uint16) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log("set_compare", t, ch, uint32(v))
	r := b.regs(t)
	if !r.Clocked || !ch.Valid() {
		return
	}
	c := &r.Channels[ch.Index()]
	c.CCR = v
	if !c.Preload {
		c.Active = v
	}
}

// Compare reads CCRx, which returns the preload value like the hardware.
func (b *Bank) Compare(t servo.Timer, ch servo.Channel) uint16 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log("compare", t, ch, 0)
	r := b.regs(t)
	if !r.Clocked || !ch.Valid() {
		return 0
	}
	return r.Channels[ch.Index()].CCR
}

// Update simulates the counter wrapping: preloaded registers become
// active. A stopped counter produces no update.
func (b *Bank) Update(t servo.Timer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if r := b.regs(t); r.Clocked && r.CEN {
		b.update(r)
	}
}

// caller holds lock
func (b *Bank) update(r *Regs) {
	r.activeARR = r.ARR
	for i := range r.Channels {
		r.Channels[i].Active = r.Channels[i].CCR
	}
	r.Updates++
}

// Regs returns a copy of timer t's registers.
func (b *Bank) Regs(t servo.Timer) Regs {
	b.mu.Lock()
	defer b.mu.Unlock()
	return *b.regs(t)
}

// ActiveCompare is the compare value currently shaping the output.
func (b *Bank) ActiveCompare(t servo.Timer, ch servo.Channel) uint16 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !ch.Valid() {
		return 0
	}
	return b.regs(t).Channels[ch.Index()].Active
}

// PulseUs is the high time the output would produce this frame, rounded to
// the nearest µs, or 0 when the counter or the channel is off.
func (b *Bank) PulseUs(t servo.Timer, ch servo.Channel) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	r := b.regs(t)
	if !r.CEN || !ch.Valid() || r.activeARR == 0 {
		return 0
	}
	c := r.Channels[ch.Index()]
	if !c.Enabled || c.Mode != ocModePWM1 {
		return 0
	}
	return mathx.RoundDiv(uint32(c.Active)*servo.FrameUs, uint32(r.activeARR))
}

// AltOutput reports whether the pin was switched to its timer function.
func (b *Bank) AltOutput(p servo.PinInfo) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pins[pinName(p)]
}

// Calls returns the method log since the last ResetCalls.
func (b *Bank) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Call, len(b.calls))
	copy(out, b.calls)
	return out
}

// ResetCalls clears the method log, keeping register state.
func (b *Bank) ResetCalls() {
	b.mu.Lock()
	b.calls = b.calls[:0]
	b.mu.Unlock()
}

func pinName(p servo.PinInfo) string {
	return "P" + string(p.Port) + conv.Ustr(uint64(p.Num))
}
