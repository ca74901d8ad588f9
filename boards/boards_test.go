package boards

import (
	"bytes"
	"testing"

	"servocode-go/drivers/servo"

	"tinygo.org/x/drivers"
)

// ---- Test doubles ----

type fakeSPI struct{}

func (fakeSPI) Tx(w, r []byte) error          { return nil }
func (fakeSPI) Transfer(b byte) (byte, error) { return b, nil }

type fakeI2C struct{}

func (fakeI2C) Tx(addr uint16, w, r []byte) error { return nil }

var (
	_ drivers.SPI = fakeSPI{}
	_ drivers.I2C = fakeI2C{}
)

// ---- Tests ----

func TestSparkCorePinMap(t *testing.T) {
	if n := len(SparkCore.Pins); n != 21 {
		t.Fatalf("expected 21 pins, got %d", n)
	}
	timerPins := map[servo.Pin]struct {
		tim servo.Timer
		ch  servo.Channel
	}{
		D0: {servo.Timer4, servo.Ch2},
		D1: {servo.Timer4, servo.Ch1},
		A0: {servo.Timer2, servo.Ch1},
		A1: {servo.Timer2, servo.Ch2},
		A4: {servo.Timer3, servo.Ch1},
		A5: {servo.Timer3, servo.Ch2},
		A6: {servo.Timer3, servo.Ch3},
		A7: {servo.Timer3, servo.Ch4},
		RX: {servo.Timer2, servo.Ch4},
		TX: {servo.Timer2, servo.Ch3},
	}
	for p := servo.Pin(0); int(p) < len(SparkCore.Pins); p++ {
		info, ok := SparkCore.Lookup(p)
		want, hasTimer := timerPins[p]
		if ok != hasTimer {
			t.Fatalf("pin %d (%s): timer capability %v, want %v", p, SparkCore.Pins[p].Name, ok, hasTimer)
		}
		if ok && (info.Timer != want.tim || info.Channel != want.ch) {
			t.Fatalf("pin %s: got %s ch%d", info.Name, info.Timer, info.Channel)
		}
	}
	if _, ok := SparkCore.Lookup(BTN + 1); ok {
		t.Fatal("lookup past the table succeeded")
	}
}

func TestTimerChannelsAreUnique(t *testing.T) {
	seen := map[[2]uint8]string{}
	for _, pi := range SparkCore.Pins {
		if pi.Timer == servo.TimerNone {
			continue
		}
		k := [2]uint8{uint8(pi.Timer), uint8(pi.Channel)}
		if other, dup := seen[k]; dup {
			t.Fatalf("%s and %s share %s ch%d", other, pi.Name, pi.Timer, pi.Channel)
		}
		seen[k] = pi.Name
	}
}

func TestBusPins(t *testing.T) {
	b := &SparkCore
	cases := []struct {
		bus  servo.Bus
		pins []servo.Pin
	}{
		{servo.BusSPI, []servo.Pin{A3, A5, A4}},
		{servo.BusI2C, []servo.Pin{D1, D0}},
		{servo.BusUART, []servo.Pin{RX, TX}},
	}
	for _, c := range cases {
		got := b.BusPins(c.bus)
		if len(got) != len(c.pins) {
			t.Fatalf("%s: got %v", c.bus, got)
		}
		for i := range got {
			if got[i] != c.pins[i] {
				t.Fatalf("%s: got %v want %v", c.bus, got, c.pins)
			}
		}
	}
}

func TestBusesEnabled(t *testing.T) {
	var b Buses
	for _, bus := range []servo.Bus{servo.BusSPI, servo.BusI2C, servo.BusUART} {
		if b.Enabled(bus) {
			t.Fatalf("%s enabled on empty registry", bus)
		}
	}

	b.UseSPI(fakeSPI{})
	b.UseI2C(fakeI2C{})
	b.UseUART(&bytes.Buffer{})
	if !b.Enabled(servo.BusSPI) || !b.Enabled(servo.BusI2C) || !b.Enabled(servo.BusUART) {
		t.Fatal("registered buses not reported")
	}
	if b.SPI() == nil || b.I2C() == nil || b.UART() == nil {
		t.Fatal("handles not returned")
	}

	b.UseI2C(nil)
	if b.Enabled(servo.BusI2C) {
		t.Fatal("released bus still enabled")
	}

	var nilBuses *Buses
	if nilBuses.Enabled(servo.BusSPI) {
		t.Fatal("nil registry reported a bus")
	}
}
