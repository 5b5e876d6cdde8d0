package segclock

import (
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Pin backends.
const (
	BackendPeriph = "periph" // pins named as in periph's gpioreg, e.g. "GPIO17"
	BackendRPIO   = "rpio"   // pins named by BCM number, e.g. "17"
)

// Display drivers.
const (
	DriverMux   = "mux"   // MuxLED
	DriverShift = "shift" // ShiftLED
)

// Config describes how a clock is wired. Pin names are resolved by the
// selected backend, except names of the form "pcf8574:N" which refer to pin N
// of the I/O expander.
type Config struct {
	Backend string `json:"backend"`

	Digits    int      `json:"digits"`
	Driver    string   `json:"driver"`
	Segments  []string `json:"segments"` // mux: A - G then DP
	Latch     string   `json:"latch"`    // shift
	Clock     string   `json:"clock"`    // shift
	Data      string   `json:"data"`     // shift
	DigitPins []string `json:"digit_pins"`
	ActiveLow bool     `json:"active_low"`

	Buttons           ButtonPins `json:"buttons"`
	ButtonsActiveHigh bool       `json:"buttons_active_high"`
	Buzzer            string     `json:"buzzer"`

	Expander *ExpanderConfig `json:"expander"`

	TickMS  int `json:"tick_ms"`
	PollMS  int `json:"poll_ms"`
	Outputs int `json:"outputs"`
	Inputs  int `json:"inputs"`
}

// ButtonPins names the pin of each button.
type ButtonPins struct {
	Accept    string `json:"accept"`
	Cancel    string `json:"cancel"`
	SetTime   string `json:"set_time"`
	SetAlarm  string `json:"set_alarm"`
	Increment string `json:"increment"`
	Decrement string `json:"decrement"`
}

// ExpanderConfig locates a PCF8574 on an I2C bus.
type ExpanderConfig struct {
	Bus  int   `json:"bus"`
	Addr uint8 `json:"addr"`
}

// LoadConfig parses a JSON configuration and fills in defaults.
func LoadConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "segclock: parsing config")
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ReadConfig loads the configuration file at path.
func ReadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "segclock: reading config")
	}
	return LoadConfig(data)
}

// DefaultConfig returns a four digit display wired directly to a Raspberry Pi
// header, with buttons pulling to ground.
func DefaultConfig() *Config {
	cfg := &Config{
		Segments:  []string{"GPIO5", "GPIO6", "GPIO13", "GPIO19", "GPIO26", "GPIO12", "GPIO16", "GPIO20"},
		DigitPins: []string{"GPIO17", "GPIO27", "GPIO22", "GPIO23"},
		Buttons: ButtonPins{
			Accept:    "GPIO24",
			Cancel:    "GPIO25",
			SetTime:   "GPIO4",
			SetAlarm:  "GPIO18",
			Increment: "GPIO21",
			Decrement: "GPIO7",
		},
		Buzzer: "GPIO8",
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendPeriph
	}
	if c.Driver == "" {
		c.Driver = DriverMux
	}
	if c.Digits == 0 {
		c.Digits = 4
	}
	if c.TickMS == 0 {
		c.TickMS = 1
	}
	if c.PollMS == 0 {
		c.PollMS = 10
	}
	if c.Outputs == 0 {
		c.Outputs = 7
	}
	if c.Inputs == 0 {
		c.Inputs = 6
	}
	if c.Expander != nil && c.Expander.Addr == 0 {
		c.Expander.Addr = 0x20
	}
}

// Validate reports every problem with the configuration.
func (c *Config) Validate() error {
	var err error
	switch c.Backend {
	case BackendPeriph, BackendRPIO:
	default:
		err = multierr.Append(err, errors.Errorf("segclock: unknown backend %q", c.Backend))
	}
	if c.Digits < 1 || c.Digits > MaxDigits {
		err = multierr.Append(err, errors.Errorf("segclock: digits %d out of range 1-%d", c.Digits, MaxDigits))
	}
	if len(c.DigitPins) != c.Digits {
		err = multierr.Append(err, errors.Errorf("segclock: %d digit pins for %d digits", len(c.DigitPins), c.Digits))
	}
	switch c.Driver {
	case DriverMux:
		if n := len(c.Segments); n < 7 || n > 8 {
			err = multierr.Append(err, errors.Errorf("segclock: mux driver needs 7 or 8 segment pins, got %d", n))
		}
	case DriverShift:
		if c.Latch == "" || c.Clock == "" || c.Data == "" {
			err = multierr.Append(err, errors.New("segclock: shift driver needs latch, clock and data pins"))
		}
	default:
		err = multierr.Append(err, errors.Errorf("segclock: unknown driver %q", c.Driver))
	}
	if c.TickMS < 1 || c.PollMS < 1 {
		err = multierr.Append(err, errors.Errorf("segclock: tick_ms %d and poll_ms %d must be positive", c.TickMS, c.PollMS))
	}
	if n := c.Buttons.count(); n > c.Inputs {
		err = multierr.Append(err, errors.Errorf("segclock: %d buttons but only %d inputs", n, c.Inputs))
	}
	return err
}

// RunOptions returns the scheduling part of the configuration.
func (c *Config) RunOptions() RunOptions {
	return RunOptions{
		TickPeriod: time.Duration(c.TickMS) * time.Millisecond,
		PollPeriod: time.Duration(c.PollMS) * time.Millisecond,
	}
}

func (b ButtonPins) count() int {
	n := 0
	for _, s := range []string{b.Accept, b.Cancel, b.SetTime, b.SetAlarm, b.Increment, b.Decrement} {
		if s != "" {
			n++
		}
	}
	return n
}
