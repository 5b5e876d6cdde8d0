package main

import (
	"sync/atomic"

	"github.com/DrJosh9000/segclock"
)

// latchDriver is a segclock.Driver that remembers the segments each digit
// showed when it was last lit, the way an eye does with a real multiplexed
// display.
type latchDriver struct {
	segments uint8 // only touched by the tick goroutine
	lit      [segclock.MaxDigits]atomic.Uint32
}

func newLatchDriver() *latchDriver {
	return &latchDriver{}
}

func (l *latchDriver) ScreenOff() {
	l.segments = 0
}

func (l *latchDriver) SegmentsOn(pattern uint8) {
	l.segments = pattern
}

func (l *latchDriver) DigitOn(digit int) {
	if digit < 0 || digit >= len(l.lit) {
		return
	}
	l.lit[digit].Store(uint32(l.segments))
}

// Lit returns what digit showed when it was last lit.
func (l *latchDriver) Lit(digit int) uint8 {
	if digit < 0 || digit >= len(l.lit) {
		return 0
	}
	return uint8(l.lit[digit].Load())
}
