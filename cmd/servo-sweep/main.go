//go:build stm32f103

// cmd/servo-sweep/main.go
package main

import (
	"context"
	"machine"
	"time"

	"servocode-go/boards"
	"servocode-go/drivers/servo"
	"servocode-go/drivers/servo/stm32f1"
	"servocode-go/x/conv"
)

// ---------- Configuration ----------

const (
	servoPin  = boards.A0
	sweepTime = 1500 * time.Millisecond
	steps     = 30
	dwell     = 500 * time.Millisecond
)

func main() {
	// Allow the host to attach a console before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	var buses boards.Buses
	// Serial console owns RX/TX from here on.
	buses.UseUART(machine.Serial)

	s := servo.New(servo.Config{
		Hardware:    stm32f1.New(),
		Board:       &boards.SparkCore,
		Buses:       &buses,
		CoreClockHz: machine.CPUFrequency(),
	})
	if err := s.Attach(servoPin); err != nil {
		println("attach failed:", err.Error())
		for {
			time.Sleep(time.Second)
		}
	}

	tb := s.TimeBase()
	println("servo on", boards.SparkCore.Pins[servoPin].Name,
		"prescaler", conv.Ustr(uint64(tb.Prescaler)),
		"overflow", conv.Ustr(uint64(tb.Overflow)))

	ctx := context.Background()
	r := s.Range()
	var hex [4]byte
	for target := int(r.MaxAngle); ; {
		if err := s.Sweep(ctx, target, sweepTime, steps); err != nil {
			println("sweep:", err.Error())
		}
		us := s.ReadMicroseconds()
		println("at", s.Read(), "deg", us, "us ccr=0x"+string(conv.U16Hex(hex[:], s.TimeBase().UsToCompare(us))))
		time.Sleep(dwell)

		if target == int(r.MaxAngle) {
			target = int(r.MinAngle)
		} else {
			target = int(r.MaxAngle)
		}
	}
}
