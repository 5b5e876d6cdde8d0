package segclock

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio/v4"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// ErrNotImplemented is returned by pin functions a backend cannot provide.
var ErrNotImplemented = errors.New("segclock: not implemented")

// rpioPin is a Raspberry Pi pin driven through go-rpio's memory mapped
// registers. rpio.Open must have succeeded before it is used.
type rpioPin struct {
	pin  rpio.Pin
	pull atomic.Uint32
	out  atomic.Bool
}

// NewRPIOPin returns the Raspberry Pi pin with the given BCM number as a
// gpio.PinIO backed by go-rpio.
func NewRPIOPin(bcm int) gpio.PinIO {
	return &rpioPin{pin: rpio.Pin(bcm)}
}

func (p *rpioPin) DefaultPull() gpio.Pull {
	return gpio.PullNoChange
}

func (p *rpioPin) Function() string {
	if p.out.Load() {
		return "Out"
	}
	return "In"
}

func (p *rpioPin) Halt() error {
	return nil
}

func (p *rpioPin) In(pull gpio.Pull, edge gpio.Edge) error {
	// go-rpio can only poll for edges, which Input does for itself.
	if edge != gpio.NoEdge {
		return errors.Wrapf(ErrNotImplemented, "%s: edge detection", p)
	}
	p.pin.Input()
	p.out.Store(false)
	switch pull {
	case gpio.Float:
		p.pin.PullOff()
	case gpio.PullDown:
		p.pin.PullDown()
	case gpio.PullUp:
		p.pin.PullUp()
	}
	p.pull.Store(uint32(pull))
	return nil
}

func (p *rpioPin) Name() string {
	return "GPIO" + strconv.Itoa(int(p.pin))
}

func (p *rpioPin) Number() int {
	return int(p.pin)
}

func (p *rpioPin) Out(l gpio.Level) error {
	if !p.out.Swap(true) {
		p.pin.Output()
	}
	if l {
		p.pin.High()
	} else {
		p.pin.Low()
	}
	return nil
}

func (p *rpioPin) Pull() gpio.Pull {
	return gpio.Pull(p.pull.Load())
}

func (p *rpioPin) Read() gpio.Level {
	return p.pin.Read() == rpio.High
}

func (p *rpioPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.Wrapf(ErrNotImplemented, "%s: PWM", p)
}

func (p *rpioPin) String() string {
	return p.Name()
}

func (p *rpioPin) WaitForEdge(timeout time.Duration) bool {
	return false
}

var _ gpio.PinIO = &rpioPin{}
