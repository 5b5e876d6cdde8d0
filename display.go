// Package segclock runs a clock/alarm appliance on GPIO pins (using
// periph.io): buttons read through a fixed pool of digital handles, a
// time-multiplexed seven-segment LED display, and a mode state machine for
// setting the current time and an alarm time.
package segclock // import "github.com/DrJosh9000/segclock"

import "sync/atomic"

// MaxDigits is the largest number of digits a Display can multiplex.
const MaxDigits = 8

// Driver is the hardware side of a multiplexed display. Only one digit is lit
// at a time; Display calls ScreenOff, SegmentsOn and DigitOn in that order on
// every refresh.
type Driver interface {
	// ScreenOff turns every segment off.
	ScreenOff()
	// SegmentsOn drives the segment lines with pattern (see SegmentA).
	SegmentsOn(pattern uint8)
	// DigitOn enables the common line of a digit position.
	DigitOn(digit int)
}

// Display holds the segment patterns for each digit and multiplexes them onto
// a Driver one digit per Refresh. Refresh must be called often enough that
// every digit is lit at least 50 times a second; 1ms per refresh is typical.
//
// WriteBCD, BlinkDigits and ToggleDots may be called from a different
// goroutine to the one calling Refresh.
type Display struct {
	digits int
	driver Driver

	memory atomic.Uint64 // one byte of segments per digit
	blink  atomic.Uint64 // packed by packBlink

	// Owned by the goroutine calling Refresh.
	active     int
	blinkCount int
}

// NewDisplay returns a blank display of the given number of digits (between 1
// and MaxDigits) and turns the screen off.
func NewDisplay(digits int, d Driver) *Display {
	digits = min(max(digits, 1), MaxDigits)
	disp := &Display{
		digits: digits,
		driver: d,
		active: digits - 1,
	}
	d.ScreenOff()
	return disp
}

// Digits returns the number of digits on the display.
func (d *Display) Digits() int { return d.digits }

// Segments returns the pattern currently stored for a digit.
func (d *Display) Segments(digit int) uint8 {
	if digit < 0 || digit >= d.digits {
		return 0
	}
	return uint8(d.memory.Load() >> (8 * digit))
}

// WriteBCD replaces the contents of the display with decimal digits, one per
// position starting from the left. Extra values are dropped, positions without
// a value are blank, and values above 9 display as blank.
func (d *Display) WriteBCD(values []uint8) {
	var mem uint64
	for i, v := range values {
		if i >= d.digits {
			break
		}
		mem |= uint64(DigitSegments(v)) << (8 * i)
	}
	d.memory.Store(mem)
}

// ToggleDots inverts the decimal point of the digits from through to
// (inclusive).
func (d *Display) ToggleDots(from, to int) {
	var mask uint64
	for i := max(from, 0); i <= to && i < d.digits; i++ {
		mask |= uint64(SegmentP) << (8 * i)
	}
	if mask == 0 {
		return
	}
	for {
		old := d.memory.Load()
		if d.memory.CompareAndSwap(old, old^mask) {
			return
		}
	}
}

// BlinkDigits makes the digits from through to (inclusive) flash. period is
// counted in full passes over the display; the digits are dark for the first
// half of each period. A period of 0 stops blinking.
func (d *Display) BlinkDigits(from, to, period int) {
	d.blink.Store(packBlink(from, to, period))
}

// Refresh lights the next digit.
func (d *Display) Refresh() {
	d.driver.ScreenOff()

	if d.active >= d.digits-1 {
		d.active = 0
	} else {
		d.active++
	}

	segments := d.Segments(d.active)
	from, to, period := unpackBlink(d.blink.Load())
	if period > 0 {
		if d.active == 0 {
			d.blinkCount = (d.blinkCount + 1) % period
		}
		if d.blinkCount < period/2 && d.active >= from && d.active <= to {
			segments = 0
		}
	}

	d.driver.SegmentsOn(segments)
	d.driver.DigitOn(d.active)
}

func packBlink(from, to, period int) uint64 {
	if period <= 0 || to < from {
		return 0
	}
	from = min(max(from, 0), 0xff)
	to = min(max(to, 0), 0xff)
	return uint64(from) | uint64(to)<<8 | uint64(period)<<16
}

func unpackBlink(b uint64) (from, to, period int) {
	return int(b & 0xff), int(b >> 8 & 0xff), int(b >> 16)
}
