// Command segclock runs the clock on a Raspberry Pi (or any board periph.io
// supports) wired as described by a JSON config file.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/DrJosh9000/segclock"
)

func main() {
	configPath := flag.String("config", "", "JSON wiring file (default: built-in Raspberry Pi wiring)")
	verbose := flag.Bool("v", false, "Log rejected time and alarm settings.")
	flag.Parse()

	cfg := segclock.DefaultConfig()
	if *configPath != "" {
		c, err := segclock.ReadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = c
	}

	b, err := segclock.OpenBoard(cfg)
	if err != nil {
		log.Fatal(err)
	}

	opts := cfg.RunOptions()
	if *verbose {
		opts.Logger = log.Default()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("clock running: %d digits, %s driver on %s pins", cfg.Digits, cfg.Driver, cfg.Backend)
	if err := segclock.Run(ctx, b, opts); err != nil {
		log.Printf("halting board: %v", err)
	}
	log.Printf("exiting")
}
