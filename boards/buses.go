package boards

import (
	"io"

	"servocode-go/drivers/servo"

	"tinygo.org/x/drivers"
)

var _ servo.BusState = (*Buses)(nil)

// Buses records which shared buses other drivers currently hold. A bus is
// enabled while a handle is registered; registering nil releases it.
type Buses struct {
	spi  drivers.SPI
	i2c  drivers.I2C
	uart io.Writer
}

func (b *Buses) UseSPI(s drivers.SPI) { b.spi = s }
func (b *Buses) UseI2C(i drivers.I2C) { b.i2c = i }
func (b *Buses) UseUART(w io.Writer)  { b.uart = w }

func (b *Buses) SPI() drivers.SPI { return b.spi }
func (b *Buses) I2C() drivers.I2C { return b.i2c }
func (b *Buses) UART() io.Writer  { return b.uart }

// Enabled reports whether bus has a registered handle.
func (b *Buses) Enabled(bus servo.Bus) bool {
	if b == nil {
		return false
	}
	switch bus {
	case servo.BusSPI:
		return b.spi != nil
	case servo.BusI2C:
		return b.i2c != nil
	case servo.BusUART:
		return b.uart != nil
	}
	return false
}
