package segclock

import (
	"io"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/davecheney/i2c"
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Expander is a PCF8574 8-bit I/O expander. The chip has no direction
// register: every pin is an open drain output with a weak pull-up, and a pin
// written high can be read as an input. Buttons that pull a line to ground
// therefore read Low when pressed.
type Expander struct {
	mu    sync.Mutex
	bus   io.ReadWriter
	latch uint8 // last value written to the port
}

// NewExpander returns an expander talking over bus, which must already be
// addressed to the chip.
func NewExpander(bus io.ReadWriter) *Expander {
	return &Expander{bus: bus, latch: 0xff}
}

// OpenExpander opens the PCF8574 at addr on /dev/i2c-<bus>. The returned
// closer releases the bus.
func OpenExpander(bus int, addr uint8) (*Expander, io.Closer, error) {
	dev, err := i2c.New(addr, bus)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "segclock: opening pcf8574 at %#x on i2c-%d", addr, bus)
	}
	return NewExpander(dev), dev, nil
}

// Pin returns expander pin n (0 - 7).
func (e *Expander) Pin(n int) gpio.PinIO {
	if n < 0 || n > 7 {
		return nil
	}
	return &expanderPin{dev: e, number: n, name: "P" + strconv.Itoa(n)}
}

func (e *Expander) write(value, mask uint8) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.latch = e.latch&^mask | value&mask
	_, err := e.bus.Write([]byte{e.latch})
	return err
}

func (e *Expander) read() (uint8, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var b [1]byte
	if _, err := e.bus.Read(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

type expanderPin struct {
	dev    *Expander
	number int
	name   string
}

func (p *expanderPin) DefaultPull() gpio.Pull {
	return gpio.PullUp
}

func (p *expanderPin) Function() string {
	return "In/Out"
}

func (p *expanderPin) Halt() error {
	return nil
}

func (p *expanderPin) In(pull gpio.Pull, edge gpio.Edge) error {
	// Writing High releases the line so it can be read.
	if edge != gpio.NoEdge {
		return errors.Wrapf(ErrNotImplemented, "%s: edge detection", p)
	}
	mask := uint8(1) << p.number
	return p.dev.write(mask, mask)
}

func (p *expanderPin) Name() string {
	return p.name
}

func (p *expanderPin) Number() int {
	return p.number
}

func (p *expanderPin) Out(l gpio.Level) error {
	var value uint8
	mask := uint8(1) << p.number
	if l {
		value = mask
	}
	return p.dev.write(value, mask)
}

func (p *expanderPin) Pull() gpio.Pull {
	return gpio.PullUp
}

func (p *expanderPin) Read() gpio.Level {
	v, err := p.dev.read()
	if err != nil {
		log.Println(err)
		return gpio.High
	}
	return v&(1<<p.number) != 0
}

func (p *expanderPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.Wrapf(ErrNotImplemented, "%s: PWM", p)
}

func (p *expanderPin) String() string {
	return "pcf8574:" + p.name
}

// The chip's interrupt line does not say which pin changed.
func (p *expanderPin) WaitForEdge(timeout time.Duration) bool {
	return false
}

var _ gpio.PinIO = &expanderPin{}
