package segclock

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio/v4"
	"go.uber.org/multierr"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// ErrUnknownPin is returned when a pin name does not resolve to a pin.
var ErrUnknownPin = errors.New("segclock: unknown pin")

// PinResolver finds a pin by name.
type PinResolver func(name string) (gpio.PinIO, error)

// PeriphPins resolves names through periph's pin registry. host.Init must
// have been called.
func PeriphPins(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, errors.Wrap(ErrUnknownPin, name)
	}
	return p, nil
}

// RPIOPins resolves BCM pin numbers ("17" or "GPIO17") to go-rpio pins.
// rpio.Open must have been called.
func RPIOPins(name string) (gpio.PinIO, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(name, "GPIO"))
	if err != nil || n < 0 || n > 53 {
		return nil, errors.Wrap(ErrUnknownPin, name)
	}
	return NewRPIOPin(n), nil
}

// ExpanderPins resolves "pcf8574:N" to pin N of e and passes every other name
// on to next.
func ExpanderPins(e *Expander, next PinResolver) PinResolver {
	return func(name string) (gpio.PinIO, error) {
		s, ok := strings.CutPrefix(name, "pcf8574:")
		if !ok {
			return next(name)
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, errors.Wrap(ErrUnknownPin, name)
		}
		p := e.Pin(n)
		if p == nil {
			return nil, errors.Wrap(ErrUnknownPin, name)
		}
		return p, nil
	}
}

// OpenPins initialises the backend chosen by cfg (and the expander, if one
// is configured) and returns a resolver for its pins, and a func that
// releases whatever OpenPins opened.
func OpenPins(cfg *Config) (PinResolver, func() error, error) {
	var (
		resolve PinResolver
		closers []func() error
	)
	closeAll := func() error {
		var err error
		for i := len(closers) - 1; i >= 0; i-- {
			err = multierr.Append(err, closers[i]())
		}
		return err
	}

	switch cfg.Backend {
	case BackendPeriph:
		if _, err := host.Init(); err != nil {
			return nil, nil, errors.Wrap(err, "segclock: initialising periph")
		}
		resolve = PeriphPins
	case BackendRPIO:
		if err := rpio.Open(); err != nil {
			return nil, nil, errors.Wrap(err, "segclock: opening rpio")
		}
		closers = append(closers, rpio.Close)
		resolve = RPIOPins
	default:
		return nil, nil, errors.Errorf("segclock: unknown backend %q", cfg.Backend)
	}

	if cfg.Expander != nil {
		e, c, err := OpenExpander(cfg.Expander.Bus, cfg.Expander.Addr)
		if err != nil {
			return nil, nil, multierr.Append(err, closeAll())
		}
		closers = append(closers, c.Close)
		resolve = ExpanderPins(e, resolve)
	}
	return resolve, closeAll, nil
}

// Board is the hardware a clock runs on.
type Board struct {
	Pool    *Pool
	Display *Display
	Driver  Driver
	Buttons Buttons
	Buzzer  *Output // nil if there is no buzzer

	closer func() error
}

// OpenBoard opens the pin backend described by cfg and builds the board on
// it. Halt releases the backend.
func OpenBoard(cfg *Config) (*Board, error) {
	resolve, closePins, err := OpenPins(cfg)
	if err != nil {
		return nil, err
	}
	b, err := NewBoard(cfg, resolve)
	if err != nil {
		return nil, multierr.Append(err, closePins())
	}
	b.closer = closePins
	return b, nil
}

// NewBoard builds the board described by cfg from pins found by resolve.
func NewBoard(cfg *Config, resolve PinResolver) (*Board, error) {
	var err error
	pin := func(name string) gpio.PinIO {
		p, perr := resolve(name)
		err = multierr.Append(err, perr)
		return p
	}
	pins := func(names []string) []gpio.PinIO {
		ps := make([]gpio.PinIO, len(names))
		for i, n := range names {
			ps[i] = pin(n)
		}
		return ps
	}

	b := &Board{Pool: NewPool(cfg.Outputs, cfg.Inputs)}
	switch cfg.Driver {
	case DriverMux:
		m := &MuxLED{Dig: pins(cfg.DigitPins), ActiveLow: cfg.ActiveLow}
		copy(m.Seg[:], pins(cfg.Segments))
		b.Driver = m
	case DriverShift:
		b.Driver = &ShiftLED{
			LD:        pin(cfg.Latch),
			CLK:       pin(cfg.Clock),
			DIN:       pin(cfg.Data),
			Dig:       pins(cfg.DigitPins),
			ActiveLow: cfg.ActiveLow,
		}
	default:
		return nil, errors.Errorf("segclock: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	b.Display = NewDisplay(cfg.Digits, b.Driver)

	buttons := []struct {
		name string
		in   **Input
	}{
		{cfg.Buttons.Accept, &b.Buttons.Accept},
		{cfg.Buttons.Cancel, &b.Buttons.Cancel},
		{cfg.Buttons.SetTime, &b.Buttons.SetTime},
		{cfg.Buttons.SetAlarm, &b.Buttons.SetAlarm},
		{cfg.Buttons.Decrement, &b.Buttons.Decrement},
		{cfg.Buttons.Increment, &b.Buttons.Increment},
	}
	for _, bt := range buttons {
		if bt.name == "" {
			continue
		}
		p := pin(bt.name)
		if p == nil {
			continue
		}
		in, ierr := b.Pool.CreateInput(p, !cfg.ButtonsActiveHigh)
		err = multierr.Append(err, errors.Wrapf(ierr, "button %s", bt.name))
		*bt.in = in
	}
	if cfg.Buzzer != "" {
		if p := pin(cfg.Buzzer); p != nil {
			o, oerr := b.Pool.CreateOutput(p)
			err = multierr.Append(err, errors.Wrapf(oerr, "buzzer %s", cfg.Buzzer))
			b.Buzzer = o
		}
	}
	if err != nil {
		return nil, multierr.Append(err, b.Halt())
	}
	return b, nil
}

// Halt turns the display off, halts every pin, and closes the pin backend if
// the board opened it.
func (b *Board) Halt() error {
	var err error
	if h, ok := b.Driver.(interface{ Halt() error }); ok {
		err = multierr.Append(err, h.Halt())
	} else if b.Driver != nil {
		b.Driver.ScreenOff()
	}
	if b.Pool != nil {
		err = multierr.Append(err, b.Pool.Halt())
	}
	if b.closer != nil {
		err = multierr.Append(err, b.closer())
		b.closer = nil
	}
	return err
}
