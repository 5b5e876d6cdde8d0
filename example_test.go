package segclock

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

func ExampleMuxLED() {
	host.Init()
	m := &MuxLED{
		Seg: [8]gpio.PinIO{
			gpioreg.ByName("5"),
			gpioreg.ByName("6"),
			gpioreg.ByName("13"),
			gpioreg.ByName("19"),
			gpioreg.ByName("26"),
			gpioreg.ByName("12"),
			gpioreg.ByName("16"),
			gpioreg.ByName("20"),
		},
		Dig: []gpio.PinIO{
			gpioreg.ByName("17"),
			gpioreg.ByName("27"),
			gpioreg.ByName("22"),
			gpioreg.ByName("23"),
		},
	}
	d := NewDisplay(4, m)
	d.WriteBCD([]uint8{1, 2, 3, 4})
	d.ToggleDots(1, 1) // 12.34

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	t := time.NewTicker(time.Millisecond)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			d.Refresh()
		case <-ctx.Done():
			m.Halt()
			return
		}
	}
}

func ExampleRun() {
	b, err := OpenBoard(DefaultConfig())
	if err != nil {
		log.Fatal(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := Run(ctx, b, RunOptions{Logger: log.Default()}); err != nil {
		log.Print(err)
	}
}
