//go:build stm32f103

// Package stm32f1 implements servo.Hardware on the STM32F103 general-purpose
// timers TIM2..TIM4 by writing their registers directly.
package stm32f1

import (
	"runtime/volatile"
	"unsafe"

	"servocode-go/drivers/servo"
)

// Peripheral base addresses (RM0008 memory map).
const (
	tim2Base  = 0x40000000
	tim3Base  = 0x40000400
	tim4Base  = 0x40000800
	gpioABase = 0x40010800
	gpioStep  = 0x400 // GPIOB, GPIOC follow GPIOA
	rccBase   = 0x40021000
)

// Register bits.
const (
	cr1CEN  = 1 << 0
	cr1DIR  = 1 << 4
	cr1CMS  = 3 << 5
	cr1ARPE = 1 << 7
	cr1CKD  = 3 << 8

	egrUG = 1 << 0

	// One CCMR byte: CCxS=00 (output), OCxPE=1, OCxM=110 (PWM mode 1).
	ccmrPWM1Preload = 0b0110_1000

	ccerCCxE = 1 << 0
	ccerCCxP = 1 << 1

	apb2AFIOEN = 1 << 0
	apb2IOPAEN = 1 << 2

	// MODE=11 (50 MHz output), CNF=10 (alternate function push-pull).
	gpioAFPushPull = 0b1011
)

type timRegs struct {
	CR1  volatile.Register32 // 0x00
	CR2  volatile.Register32
	SMCR volatile.Register32
	DIER volatile.Register32
	SR   volatile.Register32
	EGR  volatile.Register32    // 0x14
	CCMR [2]volatile.Register32 // 0x18, 0x1C
	CCER volatile.Register32    // 0x20
	CNT  volatile.Register32
	PSC  volatile.Register32 // 0x28
	ARR  volatile.Register32 // 0x2C
	RCR  volatile.Register32
	CCR  [4]volatile.Register32 // 0x34..0x40
}

type rccRegs struct {
	CR       volatile.Register32
	CFGR     volatile.Register32
	CIR      volatile.Register32
	APB2RSTR volatile.Register32
	APB1RSTR volatile.Register32
	AHBENR   volatile.Register32
	APB2ENR  volatile.Register32 // 0x18
	APB1ENR  volatile.Register32 // 0x1C
}

type gpioRegs struct {
	CR [2]volatile.Register32 // CRL, CRH
}

var rcc = (*rccRegs)(unsafe.Pointer(uintptr(rccBase)))

// Timers is the register-backed servo.Hardware.
type Timers struct{}

var _ servo.Hardware = Timers{}

func New() Timers { return Timers{} }

func tim(t servo.Timer) *timRegs {
	switch t {
	case servo.Timer2:
		return (*timRegs)(unsafe.Pointer(uintptr(tim2Base)))
	case servo.Timer3:
		return (*timRegs)(unsafe.Pointer(uintptr(tim3Base)))
	case servo.Timer4:
		return (*timRegs)(unsafe.Pointer(uintptr(tim4Base)))
	}
	return nil
}

// EnableTimerClock sets TIMxEN in APB1ENR; TIM2EN is bit 0.
func (Timers) EnableTimerClock(t servo.Timer) {
	if tim(t) == nil {
		return
	}
	rcc.APB1ENR.SetBits(1 << (uint32(t) - 2))
}

func (Timers) ConfigureAltOutput(p servo.PinInfo) {
	if p.Port < 'A' || p.Port > 'C' || p.Num > 15 {
		return
	}
	port := uint32(p.Port - 'A')
	rcc.APB2ENR.SetBits(apb2AFIOEN | apb2IOPAEN<<port)
	g := (*gpioRegs)(unsafe.Pointer(uintptr(gpioABase + port*gpioStep)))
	g.CR[p.Num/8].ReplaceBits(gpioAFPushPull, 0xF, uint8(p.Num%8)*4)
}

func (Timers) ConfigureTimeBase(t servo.Timer, tb servo.TimeBase) {
	r := tim(t)
	if r == nil || tb.Prescaler == 0 {
		return
	}
	// Edge-aligned, up-counting, no clock division.
	r.CR1.ClearBits(cr1DIR | cr1CMS | cr1CKD)
	r.ARR.Set(uint32(tb.Overflow))
	r.PSC.Set(tb.Prescaler - 1)
	// Load PSC now rather than at the first overflow.
	r.EGR.Set(egrUG)
}

func (Timers) ConfigureChannel(t servo.Timer, ch servo.Channel, pulse uint16) {
	r := tim(t)
	if r == nil || !ch.Valid() {
		return
	}
	i := ch.Index()
	ccer := uint32(ccerCCxE|ccerCCxP) << (4 * i)
	r.CCER.ClearBits(ccer)
	r.CCMR[i/2].ReplaceBits(ccmrPWM1Preload, 0xFF, uint8(i%2)*8)
	r.CCR[i].Set(uint32(pulse))
	r.CCER.SetBits(ccerCCxE << (4 * i))
}

func (Timers) EnableAutoReload(t servo.Timer) {
	if r := tim(t); r != nil {
		r.CR1.SetBits(cr1ARPE)
	}
}

func (Timers) SetCounter(t servo.Timer, on bool) {
	r := tim(t)
	if r == nil {
		return
	}
	if on {
		r.CR1.SetBits(cr1CEN)
	} else {
		r.CR1.ClearBits(cr1CEN)
	}
}

func (Timers) SetCompare(t servo.Timer, ch servo.Channel, v uint16) {
	if r := tim(t); r != nil && ch.Valid() {
		r.CCR[ch.Index()].Set(uint32(v))
	}
}

func (Timers) Compare(t servo.Timer, ch servo.Channel) uint16 {
	if r := tim(t); r != nil && ch.Valid() {
		return uint16(r.CCR[ch.Index()].Get())
	}
	return 0
}
