package segclock

import (
	"go.uber.org/multierr"
	"periph.io/x/conn/v3/gpio"
)

// MuxLED drives a multiplexed LED display wired straight to GPIO pins: one pin
// per segment, shared by every digit, and one enable pin per digit. Segment
// pins are active high. Digit enables are active high unless ActiveLow is set
// (common cathode displays switched by sinking current).
type MuxLED struct {
	Seg       [8]gpio.PinIO // segments A - G then the decimal point; nil pins are skipped
	Dig       []gpio.PinIO  // digit enables, leftmost first
	ActiveLow bool
}

// ScreenOff disables every digit and clears the segment lines.
func (m *MuxLED) ScreenOff() {
	digitsOff(m.Dig, m.ActiveLow)
	m.SegmentsOn(0)
}

// SegmentsOn drives the segment lines with pattern.
func (m *MuxLED) SegmentsOn(pattern uint8) {
	for i, p := range m.Seg {
		if p == nil {
			continue
		}
		p.Out(pattern&(1<<i) != 0)
	}
}

// DigitOn enables one digit and disables the rest.
func (m *MuxLED) DigitOn(digit int) {
	digitOn(m.Dig, m.ActiveLow, digit)
}

// Halt turns the display off and halts all its pins.
func (m *MuxLED) Halt() error {
	m.ScreenOff()
	return multierr.Append(haltAll(m.Seg[:]), haltAll(m.Dig))
}

func digitsOff(dig []gpio.PinIO, activeLow bool) {
	for _, p := range dig {
		p.Out(gpio.Level(activeLow))
	}
}

func digitOn(dig []gpio.PinIO, activeLow bool, digit int) {
	for i, p := range dig {
		p.Out(gpio.Level((i == digit) != activeLow))
	}
}

func haltAll(pins []gpio.PinIO) error {
	var err error
	for _, p := range pins {
		if p != nil {
			err = multierr.Append(err, p.Halt())
		}
	}
	return err
}
