package segclock

import (
	"context"
	"io"
	"log"
	"sync/atomic"
	"time"
)

// Buttons are the inputs the Controller polls. Nil buttons are never pressed.
type Buttons struct {
	Accept, Cancel, SetTime, SetAlarm, Decrement, Increment *Input
}

// inOrder returns the buttons indexed by Event.
func (b Buttons) inOrder() [eventCount]*Input {
	return [eventCount]*Input{
		Accept:    b.Accept,
		Cancel:    b.Cancel,
		SetTime:   b.SetTime,
		SetAlarm:  b.SetAlarm,
		Decrement: b.Decrement,
		Increment: b.Increment,
	}
}

// Controller is the user interface state machine. It turns button presses
// into mode changes, edits times in its own buffer, writes them to the
// Display, and commits them to the Clock.
//
// Poll, Handle and Run belong to one goroutine. Mode and Ring may be called
// from any goroutine.
type Controller struct {
	display *Display
	clock   Clock
	buttons [eventCount]*Input
	buzzer  *Output
	log     *log.Logger

	mode atomic.Int32
	edit [4]uint8 // h h m m
}

// Option configures a Controller.
type Option func(*Controller)

// WithButtons sets the buttons polled by Poll.
func WithButtons(b Buttons) Option {
	return func(c *Controller) { c.buttons = b.inOrder() }
}

// WithBuzzer sets an output that Ring activates and that Accept or Cancel
// silences while the time is showing.
func WithBuzzer(o *Output) Option {
	return func(c *Controller) { c.buzzer = o }
}

// WithLogger sets where the controller reports problems. The default discards
// them.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// NewController returns a controller in the Unset mode.
func NewController(d *Display, clk Clock, opts ...Option) *Controller {
	c := &Controller{
		display: d,
		clock:   clk,
		log:     log.New(io.Discard, "", 0),
	}
	for _, o := range opts {
		o(c)
	}
	c.changeMode(Unset)
	return c
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	return Mode(c.mode.Load())
}

// Poll checks each button once, in Event order, and handles every button
// that was pressed since the previous Poll.
func (c *Controller) Poll() {
	for e, in := range c.buttons {
		// HasActivated consumes the edge; nothing else may query in.
		if in != nil && in.HasActivated() {
			c.Handle(Event(e))
		}
	}
}

// Handle applies a button press to the current mode.
func (c *Controller) Handle(e Event) {
	m := c.Mode()
	if m < 0 || m >= modeCount || e < 0 || e >= eventCount {
		return
	}
	if f := transitions[m][e]; f != nil {
		f(c)
	}
}

// Run polls the buttons every period until ctx is done.
func (c *Controller) Run(ctx context.Context, period time.Duration) {
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			c.Poll()
		case <-ctx.Done():
			return
		}
	}
}

// Ring activates the buzzer, if there is one. It is suitable as the alarm
// callback of a SoftClock.
func (c *Controller) Ring() {
	if c.buzzer != nil {
		c.buzzer.Activate()
	}
}

// Edit returns the digits being edited (h h m m).
func (c *Controller) Edit() [4]uint8 {
	return c.edit
}

func (c *Controller) changeMode(m Mode) {
	c.mode.Store(int32(m))
	b := modeBlink[m]
	c.display.BlinkDigits(b.from, b.to, b.period)
}

func (c *Controller) silence() {
	if c.buzzer != nil {
		c.buzzer.Deactivate()
	}
}

func (c *Controller) enableAlarm() {
	c.silence()
	var buf [4]uint8
	if !c.clock.Alarm(buf[:]) {
		c.clock.ToggleAlarm()
	}
}

func (c *Controller) disableAlarm() {
	c.silence()
	var buf [4]uint8
	if c.clock.Alarm(buf[:]) {
		c.clock.ToggleAlarm()
	}
}

func (c *Controller) cancelEdit() {
	var buf [4]uint8
	if c.clock.Time(buf[:]) {
		c.changeMode(ShowingTime)
	} else {
		c.changeMode(Unset)
	}
}

// editTime and editAlarm change mode before writing the display, so the
// Tick Handler has stopped showing the live time by the time they do.

func (c *Controller) editTime() {
	c.changeMode(EditingCurrentMinutes)
	c.clock.Time(c.edit[:])
	c.render()
}

func (c *Controller) editAlarm() {
	c.changeMode(EditingAlarmMinutes)
	c.clock.Alarm(c.edit[:])
	c.render()
}

// commitTime and commitAlarm write the Clock before returning to
// ShowingTime, so the Tick Handler only ever shows the old or the new time.

func (c *Controller) commitTime() {
	if err := c.clock.SetTime(c.edit[:]); err != nil {
		c.log.Printf("segclock: setting time %v: %v", c.edit, err)
		return
	}
	c.changeMode(ShowingTime)
}

func (c *Controller) commitAlarm() {
	if err := c.clock.SetAlarm(c.edit[:]); err != nil {
		c.log.Printf("segclock: setting alarm %v: %v", c.edit, err)
		return
	}
	c.changeMode(ShowingTime)
}

func (c *Controller) incrementMinutes() {
	IncrementBCD(c.minutes(), MinutesLimit)
	c.render()
}

func (c *Controller) decrementMinutes() {
	DecrementBCD(c.minutes(), MinutesLimit)
	c.render()
}

func (c *Controller) incrementHours() {
	IncrementBCD(c.hours(), HoursLimit)
	c.render()
}

func (c *Controller) decrementHours() {
	DecrementBCD(c.hours(), HoursLimit)
	c.render()
}

func (c *Controller) hours() *[2]uint8   { return (*[2]uint8)(c.edit[0:2]) }
func (c *Controller) minutes() *[2]uint8 { return (*[2]uint8)(c.edit[2:4]) }

// render shows the edit buffer. The decimal points are lit while editing the
// alarm.
func (c *Controller) render() {
	c.display.WriteBCD(c.edit[:])
	if m := c.Mode(); m == EditingAlarmMinutes || m == EditingAlarmHours {
		c.display.ToggleDots(0, 3)
	}
}
