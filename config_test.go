package segclock

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/multierr"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.Backend != BackendPeriph || cfg.Driver != DriverMux || cfg.Digits != 4 {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{
		"backend": "rpio",
		"driver": "shift",
		"latch": "17", "clock": "27", "data": "22",
		"digit_pins": ["5", "6", "13", "19", "26", "12"],
		"digits": 6,
		"active_low": true,
		"buttons": {"accept": "pcf8574:0", "cancel": "pcf8574:1", "set_time": "pcf8574:2"},
		"expander": {"bus": 1},
		"poll_ms": 20
	}`))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Backend != BackendRPIO || cfg.Driver != DriverShift || cfg.Digits != 6 || !cfg.ActiveLow {
		t.Errorf("LoadConfig = %+v", cfg)
	}
	if cfg.Expander == nil || cfg.Expander.Bus != 1 || cfg.Expander.Addr != 0x20 {
		t.Errorf("Expander = %+v, want bus 1 at 0x20", cfg.Expander)
	}
	if got, want := cfg.Buttons.SetTime, "pcf8574:2"; got != want {
		t.Errorf("Buttons.SetTime = %q, want %q", got, want)
	}
	opts := cfg.RunOptions()
	if opts.TickPeriod != time.Millisecond || opts.PollPeriod != 20*time.Millisecond {
		t.Errorf("RunOptions() = %+v", opts)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		errs int
	}{
		{"not json", `{`, 1},
		{"empty", `{}`, 2}, // no digit pins, no segments
		{"everything", `{
			"backend": "sysfs",
			"driver": "lcd",
			"digits": 9,
			"digit_pins": ["1"],
			"tick_ms": -1,
			"inputs": 1,
			"buttons": {"accept": "2", "cancel": "3"}
		}`, 6},
		{"shift without pins", `{"driver": "shift", "digit_pins": ["1","2","3","4"]}`, 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := LoadConfig([]byte(test.json))
			if err == nil {
				t.Fatal("LoadConfig succeeded")
			}
			if got := len(multierr.Errors(err)); got != test.errs {
				t.Errorf("LoadConfig: %d errors, want %d: %v", got, test.errs, err)
			}
		})
	}
}

func TestReadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clock.json")
	data := []byte(`{"digit_pins": ["a", "b", "c", "d"], "segments": ["1","2","3","4","5","6","7"]}`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := ReadConfig(path)
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if got := len(cfg.Segments); got != 7 {
		t.Errorf("len(Segments) = %d, want 7", got)
	}
	if _, err := ReadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadConfig of a missing file succeeded")
	}
}

func TestExampleConfig(t *testing.T) {
	cfg, err := ReadConfig(filepath.Join("cmd", "segclock", "example.json"))
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if cfg.Driver != DriverShift || cfg.Expander == nil || cfg.Buttons.count() != 6 {
		t.Errorf("example config = %+v", cfg)
	}
}
