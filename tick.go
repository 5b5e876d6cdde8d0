package segclock

import (
	"context"
	"time"
)

// TickHandler does the work of the periodic timer: it multiplexes the Display,
// advances the Clock, and keeps the live time on the Display while no time is
// being edited. It is the only caller of Display.Refresh.
type TickHandler struct {
	display   *Display
	clock     Clock
	mode      func() Mode
	perSecond int

	count int
	now   [4]uint8
	alarm [4]uint8
}

// NewTickHandler returns a TickHandler for ticks arriving perSecond times a
// second. mode reports the Controller's current mode.
func NewTickHandler(d *Display, clk Clock, mode func() Mode, perSecond int) *TickHandler {
	return &TickHandler{
		display:   d,
		clock:     clk,
		mode:      mode,
		perSecond: max(perSecond, 2),
	}
}

// Tick handles one tick.
func (t *TickHandler) Tick() {
	t.display.Refresh()
	t.clock.Tick()

	t.count = (t.count + 1) % t.perSecond
	if t.mode() > ShowingTime {
		return
	}
	t.clock.Time(t.now[:])
	t.display.WriteBCD(t.now[:])
	// Seconds indicator: on for the second half of each second.
	if t.count > t.perSecond/2 {
		t.display.ToggleDots(1, 1)
	}
	if t.clock.Alarm(t.alarm[:]) {
		t.display.ToggleDots(3, 3)
	}
}

// Run calls Tick every period until ctx is done.
func (t *TickHandler) Run(ctx context.Context, period time.Duration) {
	tk := time.NewTicker(period)
	defer tk.Stop()
	for {
		select {
		case <-tk.C:
			t.Tick()
		case <-ctx.Done():
			return
		}
	}
}
