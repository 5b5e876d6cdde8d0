package segclock

import (
	"context"
	"log"
	"time"
)

// RunOptions tunes Run. Zero values are replaced with defaults.
type RunOptions struct {
	TickPeriod time.Duration // display refresh and clock tick, default 1ms
	PollPeriod time.Duration // button polling, default 10ms
	Logger     *log.Logger
}

func (o *RunOptions) setDefaults() {
	if o.TickPeriod <= 0 {
		o.TickPeriod = time.Millisecond
	}
	if o.PollPeriod <= 0 {
		o.PollPeriod = 10 * time.Millisecond
	}
}

// Run operates the clock on b until ctx is done, then blanks the display and
// halts the board. Ticks run on their own goroutine; buttons are polled on
// the calling goroutine.
func Run(ctx context.Context, b *Board, opts RunOptions) error {
	opts.setDefaults()
	perSecond := int(time.Second / opts.TickPeriod)

	var ctl *Controller
	clk := NewSoftClock(perSecond, func() { ctl.Ring() })
	ctl = NewController(b.Display, clk,
		WithButtons(b.Buttons),
		WithBuzzer(b.Buzzer),
		WithLogger(opts.Logger),
	)
	th := NewTickHandler(b.Display, clk, ctl.Mode, perSecond)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	ticking := make(chan struct{})
	go func() {
		defer close(ticking)
		th.Run(ctx, opts.TickPeriod)
	}()
	ctl.Run(ctx, opts.PollPeriod)
	<-ticking

	return b.Halt()
}
