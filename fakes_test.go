package segclock

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

// recorder is a Driver that records every call.
type recorder struct {
	calls []string
}

func (r *recorder) ScreenOff()               { r.calls = append(r.calls, "off") }
func (r *recorder) SegmentsOn(pattern uint8) { r.calls = append(r.calls, fmt.Sprintf("seg %#02x", pattern)) }
func (r *recorder) DigitOn(digit int)        { r.calls = append(r.calls, fmt.Sprintf("dig %d", digit)) }

func (r *recorder) reset() { r.calls = nil }

// lit is a Driver that keeps the pattern each digit was last lit with.
type lit struct {
	segments uint8
	digits   [MaxDigits]uint8
	refresh  int
}

func (l *lit) ScreenOff()               { l.segments = 0 }
func (l *lit) SegmentsOn(pattern uint8) { l.segments = pattern }
func (l *lit) DigitOn(digit int) {
	l.digits[digit] = l.segments
	l.refresh++
}

func newPins(names ...string) map[string]*gpiotest.Pin {
	pins := make(map[string]*gpiotest.Pin)
	for i, n := range names {
		pins[n] = &gpiotest.Pin{N: n, Num: i}
	}
	return pins
}

func resolverFor(pins map[string]*gpiotest.Pin) PinResolver {
	return func(name string) (gpio.PinIO, error) {
		p, ok := pins[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPin, name)
		}
		return p, nil
	}
}

// bcdPattern is what WriteBCD stores for digits.
func bcdPattern(digits ...uint8) []uint8 {
	out := make([]uint8, len(digits))
	for i, d := range digits {
		out[i] = DigitSegments(d)
	}
	return out
}
