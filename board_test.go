package segclock

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

// configPins returns a fake pin for every pin name in cfg.
func configPins(cfg *Config) map[string]*gpiotest.Pin {
	names := append([]string{cfg.Latch, cfg.Clock, cfg.Data, cfg.Buzzer}, cfg.Segments...)
	names = append(names, cfg.DigitPins...)
	b := cfg.Buttons
	names = append(names, b.Accept, b.Cancel, b.SetTime, b.SetAlarm, b.Increment, b.Decrement)
	pins := make(map[string]*gpiotest.Pin)
	for i, n := range names {
		if n != "" {
			pins[n] = &gpiotest.Pin{N: n, Num: i}
		}
	}
	return pins
}

// fakeBus stands in for a PCF8574 on an I2C bus.
type fakeBus struct {
	written []byte
	port    byte
	err     error
}

func (b *fakeBus) Write(p []byte) (int, error) {
	b.written = append(b.written, p...)
	return len(p), nil
}

func (b *fakeBus) Read(p []byte) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	p[0] = b.port
	return 1, nil
}

func TestNewBoard(t *testing.T) {
	cfg := DefaultConfig()
	pins := configPins(cfg)
	b, err := NewBoard(cfg, resolverFor(pins))
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	m, ok := b.Driver.(*MuxLED)
	if !ok {
		t.Fatalf("Driver = %T, want *MuxLED", b.Driver)
	}
	if m.Seg[7] == nil || len(m.Dig) != 4 {
		t.Errorf("MuxLED = %+v", m)
	}
	if b.Display.Digits() != 4 {
		t.Errorf("Display.Digits() = %d, want 4", b.Display.Digits())
	}
	if b.Buzzer == nil {
		t.Fatal("no buzzer")
	}
	for e, in := range b.Buttons.inOrder() {
		if in == nil {
			t.Fatalf("button %v missing", Event(e))
		}
	}

	// Buttons pull to ground by default.
	pins[cfg.Buttons.Accept].Out(gpio.High)
	if b.Buttons.Accept.State() {
		t.Error("released button reads pressed")
	}
	pins[cfg.Buttons.Accept].Out(gpio.Low)
	if !b.Buttons.Accept.State() {
		t.Error("pressed button reads released")
	}

	b.Buzzer.Activate()
	if err := b.Halt(); err != nil {
		t.Errorf("Halt: %v", err)
	}
	if pins[cfg.Buzzer].Read() != gpio.Low {
		t.Error("Halt left the buzzer on")
	}
}

func TestNewBoardShift(t *testing.T) {
	cfg := &Config{
		Driver:            DriverShift,
		Latch:             "LD",
		Clock:             "CLK",
		Data:              "DIN",
		DigitPins:         []string{"D0", "D1", "D2", "D3", "D4", "D5"},
		Digits:            6,
		Buttons:           ButtonPins{SetTime: "SET"},
		ButtonsActiveHigh: true,
	}
	cfg.applyDefaults()
	pins := configPins(cfg)
	b, err := NewBoard(cfg, resolverFor(pins))
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	if _, ok := b.Driver.(*ShiftLED); !ok {
		t.Errorf("Driver = %T, want *ShiftLED", b.Driver)
	}
	if b.Buttons.Accept != nil || b.Buzzer != nil {
		t.Error("unconfigured button or buzzer was created")
	}
	pins["SET"].Out(gpio.High)
	if !b.Buttons.SetTime.State() {
		t.Error("active high button pressed reads released")
	}
}

func TestNewBoardUnknownPins(t *testing.T) {
	cfg := DefaultConfig()
	pins := configPins(cfg)
	delete(pins, cfg.DigitPins[2])
	if _, err := NewBoard(cfg, resolverFor(pins)); !errors.Is(err, ErrUnknownPin) {
		t.Errorf("missing digit pin: err = %v, want ErrUnknownPin", err)
	}

	pins = configPins(cfg)
	delete(pins, cfg.Buttons.Cancel)
	if _, err := NewBoard(cfg, resolverFor(pins)); !errors.Is(err, ErrUnknownPin) {
		t.Errorf("missing button pin: err = %v, want ErrUnknownPin", err)
	}

	cfg.Inputs = 2
	if _, err := NewBoard(cfg, resolverFor(configPins(cfg))); !errors.Is(err, ErrPoolExhausted) {
		t.Errorf("too few inputs: err = %v, want ErrPoolExhausted", err)
	}
}

func TestBoardWithExpander(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Buttons = ButtonPins{
		Accept:  "pcf8574:0",
		Cancel:  "pcf8574:1",
		SetTime: "pcf8574:7",
	}
	bus := &fakeBus{port: 0xff}
	e := NewExpander(bus)
	b, err := NewBoard(cfg, ExpanderPins(e, resolverFor(configPins(cfg))))
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	if got := b.Buttons.SetTime.pin.String(); got != "pcf8574:P7" {
		t.Errorf("SetTime pin = %q", got)
	}
	if b.Buttons.SetTime.State() {
		t.Error("released expander button reads pressed")
	}
	bus.port = 0x7f
	if !b.Buttons.SetTime.State() {
		t.Error("pressed expander button reads released")
	}
	if b.Buttons.Accept.State() {
		t.Error("unpressed expander button reads pressed")
	}
	if len(bus.written) == 0 {
		t.Error("expander inputs were never released")
	}
}

func TestExpanderPins(t *testing.T) {
	e := NewExpander(&fakeBus{})
	resolve := ExpanderPins(e, resolverFor(newPins("GPIO4")))
	for _, name := range []string{"pcf8574:8", "pcf8574:x", "pcf8574:-1", "GPIO5"} {
		if _, err := resolve(name); !errors.Is(err, ErrUnknownPin) {
			t.Errorf("resolve(%q): err = %v, want ErrUnknownPin", name, err)
		}
	}
	p, err := resolve("GPIO4")
	if err != nil || p.Name() != "GPIO4" {
		t.Errorf("resolve(GPIO4) = %v, %v", p, err)
	}
}

func TestRPIOPins(t *testing.T) {
	for _, name := range []string{"17", "GPIO17"} {
		p, err := RPIOPins(name)
		if err != nil {
			t.Fatalf("RPIOPins(%q): %v", name, err)
		}
		if p.Number() != 17 || p.Name() != "GPIO17" {
			t.Errorf("RPIOPins(%q) = %s (%d)", name, p, p.Number())
		}
	}
	for _, name := range []string{"", "54", "-1", "P1_11"} {
		if _, err := RPIOPins(name); !errors.Is(err, ErrUnknownPin) {
			t.Errorf("RPIOPins(%q): err = %v, want ErrUnknownPin", name, err)
		}
	}
}

func TestRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ButtonsActiveHigh = true
	pins := configPins(cfg)
	b, err := NewBoard(cfg, resolverFor(pins))
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := Run(ctx, b, RunOptions{}); err != nil {
		t.Errorf("Run: %v", err)
	}
	for _, n := range cfg.DigitPins {
		if pins[n].Read() != gpio.Low {
			t.Errorf("digit %s still enabled after Run", n)
		}
	}
	if got := b.Display.Segments(0); got != DigitSegments(0) {
		t.Errorf("display shows %#02x, want the unset time", got)
	}
}
