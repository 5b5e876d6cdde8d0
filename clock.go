package segclock

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrInvalidTime is returned when digits do not form a valid 24-hour time.
var ErrInvalidTime = errors.New("segclock: invalid time")

// Clock keeps the current time and an alarm time. Times are exchanged as BCD
// digits: hours, minutes, then optionally seconds (h h m m s s).
type Clock interface {
	// Tick advances the clock by one tick.
	Tick()
	// Time copies the current time into buf and reports whether the time
	// has been set since startup.
	Time(buf []uint8) bool
	// SetTime sets the current time.
	SetTime(buf []uint8) error
	// Alarm copies the alarm time into buf and reports whether the alarm is
	// enabled.
	Alarm(buf []uint8) bool
	// SetAlarm sets and enables the alarm.
	SetAlarm(buf []uint8) error
	// ToggleAlarm enables a disabled alarm or disables an enabled one.
	ToggleAlarm()
}

// SoftClock is a Clock counted entirely in software from ticks.
type SoftClock struct {
	ticksPerSecond int
	onAlarm        func()

	mu      sync.Mutex
	ticks   int
	now     [3]int // hours, minutes, seconds
	valid   bool
	alarm   [2]int // hours, minutes
	alarmOn bool
}

// NewSoftClock returns a clock at 00:00:00 that has not been set. Each second
// takes ticksPerSecond calls to Tick. onAlarm (which may be nil) is called
// from Tick when an enabled alarm comes due on a clock that has been set.
func NewSoftClock(ticksPerSecond int, onAlarm func()) *SoftClock {
	return &SoftClock{
		ticksPerSecond: max(ticksPerSecond, 1),
		onAlarm:        onAlarm,
	}
}

// Tick advances the clock by one tick.
func (c *SoftClock) Tick() {
	c.mu.Lock()
	c.ticks++
	if c.ticks < c.ticksPerSecond {
		c.mu.Unlock()
		return
	}
	c.ticks = 0
	c.now[2]++
	if c.now[2] == 60 {
		c.now[2] = 0
		c.now[1]++
	}
	if c.now[1] == 60 {
		c.now[1] = 0
		c.now[0]++
	}
	if c.now[0] == 24 {
		c.now[0] = 0
	}
	due := c.valid && c.alarmOn && c.now[2] == 0 &&
		c.now[0] == c.alarm[0] && c.now[1] == c.alarm[1]
	c.mu.Unlock()

	if due && c.onAlarm != nil {
		c.onAlarm()
	}
}

// Time copies the current time into buf (up to 6 digits) and reports whether
// the time has been set.
func (c *SoftClock) Time(buf []uint8) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	copy(buf, encodeTime(c.now[0], c.now[1], c.now[2]))
	return c.valid
}

// SetTime sets the current time from at least 4 digits (seconds default to 0)
// and restarts the current second.
func (c *SoftClock) SetTime(buf []uint8) error {
	h, m, s, err := decodeTime(buf)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = [3]int{h, m, s}
	c.ticks = 0
	c.valid = true
	return nil
}

// Alarm copies the alarm time into buf (up to 4 digits) and reports whether
// the alarm is enabled.
func (c *SoftClock) Alarm(buf []uint8) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	copy(buf, encodeTime(c.alarm[0], c.alarm[1], 0)[:4])
	return c.alarmOn
}

// SetAlarm sets the alarm from at least 4 digits and enables it.
func (c *SoftClock) SetAlarm(buf []uint8) error {
	h, m, _, err := decodeTime(buf)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alarm = [2]int{h, m}
	c.alarmOn = true
	return nil
}

// ToggleAlarm enables a disabled alarm or disables an enabled one.
func (c *SoftClock) ToggleAlarm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alarmOn = !c.alarmOn
}

func encodeTime(h, m, s int) []uint8 {
	return []uint8{
		uint8(h / 10), uint8(h % 10),
		uint8(m / 10), uint8(m % 10),
		uint8(s / 10), uint8(s % 10),
	}
}

func decodeTime(buf []uint8) (h, m, s int, err error) {
	if len(buf) < 4 {
		return 0, 0, 0, errors.Wrapf(ErrInvalidTime, "%d digits", len(buf))
	}
	buf = buf[:min(len(buf), 6)]
	for _, d := range buf {
		if d > 9 {
			return 0, 0, 0, errors.Wrapf(ErrInvalidTime, "digits %v", buf)
		}
	}
	h = int(buf[0])*10 + int(buf[1])
	m = int(buf[2])*10 + int(buf[3])
	if len(buf) == 6 {
		s = int(buf[4])*10 + int(buf[5])
	}
	if h > 23 || m > 59 || s > 59 {
		return 0, 0, 0, errors.Wrapf(ErrInvalidTime, "%02d:%02d:%02d", h, m, s)
	}
	return h, m, s, nil
}
