package segclock

import (
	"go.uber.org/multierr"
	"periph.io/x/conn/v3/gpio"
)

// ShiftLED drives a multiplexed LED display whose segment lines hang off a
// 74HC595 shift register, with one GPIO enable pin per digit. Digit enables
// are active high unless ActiveLow is set.
type ShiftLED struct {
	LD, CLK, DIN gpio.PinIO   // storage register clock (RCLK), shift clock (SRCLK), serial data (SER)
	Dig          []gpio.PinIO // digit enables, leftmost first
	ActiveLow    bool
}

// ScreenOff disables every digit and clears the segment latch.
func (s *ShiftLED) ScreenOff() {
	digitsOff(s.Dig, s.ActiveLow)
	s.RawSegments(0)
}

// SegmentsOn latches pattern onto the segment lines.
func (s *ShiftLED) SegmentsOn(pattern uint8) {
	s.RawSegments(pattern)
}

// DigitOn enables one digit and disables the rest.
func (s *ShiftLED) DigitOn(digit int) {
	digitOn(s.Dig, s.ActiveLow, digit)
}

// RawSegments loads bits into the shift register and latches them. QH (the
// last output) carries bit 7, so the decimal point is shifted in first.
func (s *ShiftLED) RawSegments(bits uint8) {
	// - bit is read on rising edge of SRCLK
	// - the 74HC595 is good for at least 4MHz at 2V, faster than we can
	//   toggle a pin, so there are no delays between edges.
	for i := 7; i >= 0; i-- {
		s.DIN.Out(bits&(1<<i) != 0)
		s.CLK.Out(gpio.High)
		s.CLK.Out(gpio.Low)
	}
	// Then copy the shift register to the output latches.
	s.LD.Out(gpio.High)
	s.LD.Out(gpio.Low)
}

// Halt turns the display off and halts all its pins.
func (s *ShiftLED) Halt() error {
	s.ScreenOff()
	err := haltAll([]gpio.PinIO{s.LD, s.CLK, s.DIN})
	return multierr.Append(err, haltAll(s.Dig))
}
