package servo

// Pin is a logical board pin index into Board.Pins.
type Pin uint16

// NotAttached marks a detached Servo.
const NotAttached Pin = 0xFFFF

// Timer identifies a general-purpose timer block. Values follow the
// peripheral numbering (Timer2 is TIM2).
type Timer uint8

const (
	TimerNone Timer = 0
	Timer2    Timer = 2
	Timer3    Timer = 3
	Timer4    Timer = 4
)

func (t Timer) String() string {
	switch t {
	case Timer2:
		return "TIM2"
	case Timer3:
		return "TIM3"
	case Timer4:
		return "TIM4"
	}
	return "none"
}

// Channel is one of the four output-compare channels of a timer.
type Channel uint8

const (
	Ch1 Channel = iota + 1
	Ch2
	Ch3
	Ch4
)

// Index returns the zero-based register index (0..3).
func (c Channel) Index() int { return int(c) - 1 }

// Valid reports whether c is one of Ch1..Ch4.
func (c Channel) Valid() bool { return c >= Ch1 && c <= Ch4 }

// PinInfo is one row of the Pin-to-Timer Map.
type PinInfo struct {
	Name    string
	Port    byte  // GPIO port letter, 'A'..'C'
	Num     uint8 // bit within the port
	Timer   Timer // TimerNone when the pin has no timer output
	Channel Channel
}

// Board is the static hardware description a Servo consults.
type Board struct {
	Name string
	Pins []PinInfo

	// Pins owned by the shared buses while those buses are enabled.
	SPIPins  []Pin // SCK, MOSI, MISO
	I2CPins  []Pin // SCL, SDA
	UARTPins []Pin // RX, TX
}

// Lookup returns the map entry for p and whether p drives a timer channel.
func (b *Board) Lookup(p Pin) (PinInfo, bool) {
	if b == nil || int(p) >= len(b.Pins) {
		return PinInfo{}, false
	}
	pi := b.Pins[p]
	return pi, pi.Timer != TimerNone && pi.Channel.Valid()
}

// BusPins returns the pins reserved by bus.
func (b *Board) BusPins(bus Bus) []Pin {
	switch bus {
	case BusSPI:
		return b.SPIPins
	case BusI2C:
		return b.I2CPins
	case BusUART:
		return b.UARTPins
	}
	return nil
}

// Bus names a shared peripheral bus a servo must not steal pins from.
type Bus uint8

const (
	BusSPI Bus = iota
	BusI2C
	BusUART
)

func (b Bus) String() string {
	switch b {
	case BusSPI:
		return "spi"
	case BusI2C:
		return "i2c"
	case BusUART:
		return "uart"
	}
	return "unknown"
}

// BusState answers "is this bus currently enabled".
type BusState interface {
	Enabled(b Bus) bool
}

// Hardware is the register-level surface of the timer peripherals.
// Implementations perform plain register writes; none of the methods block.
type Hardware interface {
	// EnableTimerClock gates on the bus clock feeding t.
	EnableTimerClock(t Timer)
	// ConfigureAltOutput switches the pin to alternate-function push-pull.
	ConfigureAltOutput(p PinInfo)
	// ConfigureTimeBase programs prescaler and auto-reload, counting up.
	ConfigureTimeBase(t Timer, tb TimeBase)
	// ConfigureChannel sets PWM mode 1, active high, output enabled, the
	// initial compare value and compare preload.
	ConfigureChannel(t Timer, ch Channel, pulse uint16)
	// EnableAutoReload turns on auto-reload preload.
	EnableAutoReload(t Timer)
	// SetCounter starts or stops the counter shared by all channels of t.
	SetCounter(t Timer, on bool)
	// SetCompare writes the compare register; with preload the value
	// becomes active at the next update event.
	SetCompare(t Timer, ch Channel, v uint16)
	// Compare reads back the compare register.
	Compare(t Timer, ch Channel) uint16
}
