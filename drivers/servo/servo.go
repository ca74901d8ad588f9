// Package servo drives hobby servos from the output-compare channels of a
// general-purpose timer running a 20 ms frame.
//
//	s := servo.New(servo.Config{Hardware: hw, Board: &boards.SparkCore, CoreClockHz: 72_000_000})
//	if err := s.Attach(boards.A0); err != nil { ... }
//	s.Write(90)             // degrees, clamped to the range
//	s.WriteMicroseconds(1500)
//
// Angles map linearly onto pulse widths and pulse widths onto compare
// ticks, all in integer arithmetic. Read rounds the inverse mapping with a
// +1 correction away from the range bounds, so write(a); read() may be off
// by one degree for angles next to the bounds.
//
// Channels of the same timer share one counter and one time base: the
// last Attach on a timer reprograms it for every channel, and Detach stops
// every channel of that timer. Nothing here is safe for concurrent use.
package servo

import (
	"servocode-go/errcode"
	"servocode-go/x/mathx"
)

// Default range, matching common hobby servos.
const (
	DefaultMinPulse uint16 = 544
	DefaultMaxPulse uint16 = 2400
	DefaultMinAngle int16  = 0
	DefaultMaxAngle int16  = 180
)

// Range bounds the pulse sent to the servo and the angles mapped onto it.
// MinPulse < MaxPulse and MinAngle < MaxAngle are assumed, not checked.
type Range struct {
	MinPulse, MaxPulse uint16 // µs
	MinAngle, MaxAngle int16  // degrees
}

// DefaultRange returns 544..2400 µs over 0..180°.
func DefaultRange() Range {
	return Range{
		MinPulse: DefaultMinPulse,
		MaxPulse: DefaultMaxPulse,
		MinAngle: DefaultMinAngle,
		MaxAngle: DefaultMaxAngle,
	}
}

// Config carries the collaborators shared by every servo on a board.
type Config struct {
	Hardware Hardware
	Board    *Board
	// Buses may be nil when no shared bus is ever enabled.
	Buses       BusState
	CoreClockHz uint32
}

// Servo is one servo output.
type Servo struct {
	cfg Config

	pin  Pin
	info PinInfo
	rng  Range
	tb   TimeBase
}

// New returns a detached Servo with the default range.
func New(cfg Config) *Servo {
	s := &Servo{cfg: cfg}
	s.reset()
	return s
}

func (s *Servo) reset() {
	s.pin = NotAttached
	s.info = PinInfo{}
	s.rng = DefaultRange()
	s.tb = TimeBase{}
}

// Attached reports whether the servo owns a pin.
func (s *Servo) Attached() bool { return s.pin != NotAttached }

// Pin returns the attached pin or NotAttached.
func (s *Servo) Pin() Pin { return s.pin }

// Range returns the pulse and angle bounds in use.
func (s *Servo) Range() Range { return s.rng }

// TimeBase returns the timer configuration chosen at attach.
func (s *Servo) TimeBase() TimeBase { return s.tb }

// Attach claims pin and starts its timer channel with a zero pulse. An
// optional Range replaces DefaultRange as given, zero fields included.
// Re-attaching detaches first. On error the servo is left unchanged.
func (s *Servo) Attach(pin Pin, r ...Range) error {
	const op = "attach"
	b := s.cfg.Board
	if b == nil || int(pin) >= len(b.Pins) {
		return errcode.New(errcode.UnknownPin, op, "pin out of range")
	}
	info, ok := b.Lookup(pin)
	if !ok {
		return errcode.New(errcode.NoTimer, op, b.Pins[pin].Name)
	}
	if bus, busy := s.busConflict(pin); busy {
		return errcode.New(errcode.PinInUse, op, info.Name+" held by "+bus.String())
	}
	tb, err := NewTimeBase(s.cfg.CoreClockHz)
	if err != nil {
		return &errcode.E{C: errcode.InvalidParams, Op: op, Err: err}
	}

	rng := DefaultRange()
	if len(r) > 0 {
		rng = r[0]
	}

	if s.Attached() {
		_ = s.Detach()
	}
	s.pin, s.info, s.rng, s.tb = pin, info, rng, tb

	hw := s.cfg.Hardware
	hw.EnableTimerClock(info.Timer)
	hw.ConfigureAltOutput(info)
	hw.ConfigureTimeBase(info.Timer, tb)
	hw.ConfigureChannel(info.Timer, info.Channel, 0)
	hw.EnableAutoReload(info.Timer)
	hw.SetCounter(info.Timer, true)
	return nil
}

func (s *Servo) busConflict(pin Pin) (Bus, bool) {
	if s.cfg.Buses == nil {
		return 0, false
	}
	for _, bus := range [...]Bus{BusSPI, BusI2C, BusUART} {
		if !s.cfg.Buses.Enabled(bus) {
			continue
		}
		for _, p := range s.cfg.Board.BusPins(bus) {
			if p == pin {
				return bus, true
			}
		}
	}
	return 0, false
}

// Detach stops the timer counter and returns the servo to its defaults.
// The counter is shared, so other channels on the same timer stop too.
func (s *Servo) Detach() error {
	if !s.Attached() {
		return errcode.New(errcode.NotAttached, "detach", "")
	}
	s.cfg.Hardware.SetCounter(s.info.Timer, false)
	s.reset()
	return nil
}

// Write moves the servo to deg, clamped to the angle range.
func (s *Servo) Write(deg int) {
	deg = mathx.Clamp(deg, int(s.rng.MinAngle), int(s.rng.MaxAngle))
	s.WriteMicroseconds(s.angleToUs(deg))
}

// Read returns the current angle. The +1 offsets the truncation bias of
// the integer mapping; it is exact at the bounds and within a degree
// elsewhere.
func (s *Servo) Read() int {
	a := int(s.usToAngle(s.ReadMicroseconds()))
	if a == int(s.rng.MinAngle) || a == int(s.rng.MaxAngle) {
		return a
	}
	return a + 1
}

// WriteMicroseconds sets the pulse width, clamped to the pulse range. The
// new width is latched at the next timer update.
func (s *Servo) WriteMicroseconds(us uint16) {
	if !s.Attached() {
		return
	}
	us = mathx.Clamp(us, s.rng.MinPulse, s.rng.MaxPulse)
	s.cfg.Hardware.SetCompare(s.info.Timer, s.info.Channel, s.tb.UsToCompare(us))
}

// ReadMicroseconds returns the programmed pulse width, or 0 when detached.
func (s *Servo) ReadMicroseconds() uint16 {
	if !s.Attached() {
		return 0
	}
	return s.tb.CompareToUs(s.cfg.Hardware.Compare(s.info.Timer, s.info.Channel))
}

func (s *Servo) angleToUs(deg int) uint16 {
	r := s.rng
	return uint16(mathx.Map(int32(deg), int32(r.MinAngle), int32(r.MaxAngle), int32(r.MinPulse), int32(r.MaxPulse)))
}

func (s *Servo) usToAngle(us uint16) int16 {
	r := s.rng
	return int16(mathx.Map(int32(us), int32(r.MinPulse), int32(r.MaxPulse), int32(r.MinAngle), int32(r.MaxAngle)))
}
