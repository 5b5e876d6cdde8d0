package segclock

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"periph.io/x/conn/v3/gpio"
)

// ErrPoolExhausted is returned when every slot of a Pool is in use.
var ErrPoolExhausted = errors.New("segclock: pool exhausted")

// Pool is a fixed-capacity arena of digital output and input handles. The
// arena is allocated once by NewPool and never grows; handles point into it
// and remain valid for the life of the pool.
type Pool struct {
	outputs []Output
	inputs  []Input
}

// Output is a digital output handle drawn from a Pool.
type Output struct {
	pin       gpio.PinIO
	allocated bool
}

// Input is a digital input handle drawn from a Pool. It remembers the last
// state it observed, so each of HasChanged, HasActivated and HasDeactivated
// consumes the edge it reports: call at most one of them per handle per
// polling cycle.
type Input struct {
	pin       gpio.PinIO
	allocated bool
	inverted  bool
	last      bool
}

// NewPool returns a pool with room for the given number of outputs and inputs.
func NewPool(outputs, inputs int) *Pool {
	return &Pool{
		outputs: make([]Output, max(outputs, 0)),
		inputs:  make([]Input, max(inputs, 0)),
	}
}

// AllocateOutput marks the first free output slot as allocated and returns it,
// or returns nil if the pool has none left.
func (p *Pool) AllocateOutput() *Output {
	for i := range p.outputs {
		if !p.outputs[i].allocated {
			p.outputs[i].allocated = true
			return &p.outputs[i]
		}
	}
	return nil
}

// AllocateInput marks the first free input slot as allocated and returns it,
// or returns nil if the pool has none left.
func (p *Pool) AllocateInput() *Input {
	for i := range p.inputs {
		if !p.inputs[i].allocated {
			p.inputs[i].allocated = true
			return &p.inputs[i]
		}
	}
	return nil
}

// CreateOutput allocates an output, binds it to pin and drives the pin low.
// It returns ErrPoolExhausted (and a nil handle) when the pool is full.
func (p *Pool) CreateOutput(pin gpio.PinIO) (*Output, error) {
	if pin == nil {
		return nil, errors.New("segclock: nil output pin")
	}
	o := p.AllocateOutput()
	if o == nil {
		return nil, ErrPoolExhausted
	}
	if err := pin.Out(gpio.Low); err != nil {
		p.ReleaseOutput(o)
		return nil, errors.Wrapf(err, "segclock: configuring output %s", pin)
	}
	o.pin = pin
	return o, nil
}

// CreateInput allocates an input and binds it to pin. If inverted is set, the
// handle reports the complement of the pin level (active-low buttons).
// It returns ErrPoolExhausted (and a nil handle) when the pool is full.
func (p *Pool) CreateInput(pin gpio.PinIO, inverted bool) (*Input, error) {
	if pin == nil {
		return nil, errors.New("segclock: nil input pin")
	}
	in := p.AllocateInput()
	if in == nil {
		return nil, ErrPoolExhausted
	}
	if err := pin.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		p.ReleaseInput(in)
		return nil, errors.Wrapf(err, "segclock: configuring input %s", pin)
	}
	in.pin = pin
	in.inverted = inverted
	return in, nil
}

// ReleaseOutput returns o to the pool.
func (p *Pool) ReleaseOutput(o *Output) {
	*o = Output{}
}

// ReleaseInput returns in to the pool.
func (p *Pool) ReleaseInput(in *Input) {
	*in = Input{}
}

// Halt halts every pin bound to an allocated handle.
func (p *Pool) Halt() error {
	var err error
	for i := range p.outputs {
		if o := &p.outputs[i]; o.allocated && o.pin != nil {
			o.pin.Out(gpio.Low)
			err = multierr.Append(err, o.pin.Halt())
		}
	}
	for i := range p.inputs {
		if in := &p.inputs[i]; in.allocated && in.pin != nil {
			err = multierr.Append(err, in.pin.Halt())
		}
	}
	return err
}

// Activate drives the output high.
func (o *Output) Activate() {
	o.pin.Out(gpio.High)
}

// Deactivate drives the output low.
func (o *Output) Deactivate() {
	o.pin.Out(gpio.Low)
}

// Toggle inverts the level currently driven on the output.
func (o *Output) Toggle() {
	o.pin.Out(!o.pin.Read())
}

// State reports the logical state of the input.
func (in *Input) State() bool {
	return bool(in.pin.Read()) != in.inverted
}

// HasChanged reports whether the state differs from the last observation.
func (in *Input) HasChanged() bool {
	now, last := in.observe()
	return now != last
}

// HasActivated reports a rising edge since the last observation.
func (in *Input) HasActivated() bool {
	now, last := in.observe()
	return now && !last
}

// HasDeactivated reports a falling edge since the last observation.
func (in *Input) HasDeactivated() bool {
	now, last := in.observe()
	return !now && last
}

func (in *Input) observe() (now, last bool) {
	now = in.State()
	last, in.last = in.last, now
	return now, last
}
