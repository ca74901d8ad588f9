package boards

import "servocode-go/drivers/servo"

// Spark Core logical pins.
const (
	D0 servo.Pin = iota
	D1
	D2
	D3
	D4
	D5
	D6
	D7
	_
	_
	A0
	A1
	A2
	A3
	A4
	A5
	A6
	A7
	RX
	TX
	BTN
)

// Shared bus aliases.
const (
	SDA  = D0
	SCL  = D1
	SS   = A2
	SCK  = A3
	MISO = A4
	MOSI = A5
)

// SparkCore is the STM32F103CB based Spark Core. Only TIM2..TIM4 reach
// the header; D2..D7, A2, A3 and BTN have no timer output.
var SparkCore = servo.Board{
	Name: "spark_core",
	Pins: []servo.PinInfo{
		D0:  {Name: "D0", Port: 'B', Num: 7, Timer: servo.Timer4, Channel: servo.Ch2},
		D1:  {Name: "D1", Port: 'B', Num: 6, Timer: servo.Timer4, Channel: servo.Ch1},
		D2:  {Name: "D2", Port: 'B', Num: 5},
		D3:  {Name: "D3", Port: 'B', Num: 4},
		D4:  {Name: "D4", Port: 'B', Num: 3},
		D5:  {Name: "D5", Port: 'A', Num: 15},
		D6:  {Name: "D6", Port: 'A', Num: 14},
		D7:  {Name: "D7", Port: 'A', Num: 13},
		8:   {Name: "NC8"},
		9:   {Name: "NC9"},
		A0:  {Name: "A0", Port: 'A', Num: 0, Timer: servo.Timer2, Channel: servo.Ch1},
		A1:  {Name: "A1", Port: 'A', Num: 1, Timer: servo.Timer2, Channel: servo.Ch2},
		A2:  {Name: "A2", Port: 'A', Num: 4},
		A3:  {Name: "A3", Port: 'A', Num: 5},
		A4:  {Name: "A4", Port: 'A', Num: 6, Timer: servo.Timer3, Channel: servo.Ch1},
		A5:  {Name: "A5", Port: 'A', Num: 7, Timer: servo.Timer3, Channel: servo.Ch2},
		A6:  {Name: "A6", Port: 'B', Num: 0, Timer: servo.Timer3, Channel: servo.Ch3},
		A7:  {Name: "A7", Port: 'B', Num: 1, Timer: servo.Timer3, Channel: servo.Ch4},
		RX:  {Name: "RX", Port: 'A', Num: 3, Timer: servo.Timer2, Channel: servo.Ch4},
		TX:  {Name: "TX", Port: 'A', Num: 2, Timer: servo.Timer2, Channel: servo.Ch3},
		BTN: {Name: "BTN", Port: 'B', Num: 2},
	},
	SPIPins:  []servo.Pin{SCK, MOSI, MISO},
	I2CPins:  []servo.Pin{SCL, SDA},
	UARTPins: []servo.Pin{RX, TX},
}
