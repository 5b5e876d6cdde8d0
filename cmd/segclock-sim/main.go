// Command segclock-sim runs the clock in a desktop window. The display is
// drawn from what each digit showed the last time it was lit, and the keyboard
// stands in for the buttons:
//
//	Enter   accept      Escape  cancel
//	T       set time    A       set alarm
//	Up      increment   Down    decrement
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/DrJosh9000/segclock"
)

func main() {
	digits := flag.Int("digits", 4, "Number of digits on the display.")
	tick := flag.Duration("tick", time.Millisecond, "Display refresh and clock tick period.")
	poll := flag.Duration("poll", 10*time.Millisecond, "Button polling period.")
	verbose := flag.Bool("v", false, "Log rejected time and alarm settings.")
	flag.Parse()

	if *digits < 4 || *digits > segclock.MaxDigits {
		fmt.Fprintf(os.Stderr, "digits must be between 4 and %d\n", segclock.MaxDigits)
		os.Exit(2)
	}

	g := newGame(*digits)
	opts := segclock.RunOptions{TickPeriod: *tick, PollPeriod: *poll}
	if *verbose {
		opts.Logger = log.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- segclock.Run(ctx, g.board, opts) }()

	ebiten.SetWindowTitle("segclock")
	ebiten.SetWindowSize(g.width(), digitHeight+2*margin)
	if err := ebiten.RunGame(g); err != nil {
		log.Print(err)
	}
	cancel()
	if err := <-done; err != nil {
		log.Print(err)
	}
}

// newGame builds a board out of fake pins.
func newGame(digits int) *game {
	g := &game{
		latch:  newLatchDriver(),
		digits: digits,
		buzzer: &gpiotest.Pin{N: "BUZZER"},
	}
	pool := segclock.NewPool(1, 6)
	button := func(name string, key ebiten.Key) *segclock.Input {
		p := &gpiotest.Pin{N: name}
		in, err := pool.CreateInput(p, false)
		if err != nil {
			log.Fatal(err)
		}
		g.keys = append(g.keys, keyPin{key: key, pin: p})
		return in
	}
	buzzer, err := pool.CreateOutput(g.buzzer)
	if err != nil {
		log.Fatal(err)
	}
	g.board = &segclock.Board{
		Pool:    pool,
		Display: segclock.NewDisplay(digits, g.latch),
		Driver:  g.latch,
		Buttons: segclock.Buttons{
			Accept:    button("ACCEPT", ebiten.KeyEnter),
			Cancel:    button("CANCEL", ebiten.KeyEscape),
			SetTime:   button("SET_TIME", ebiten.KeyT),
			SetAlarm:  button("SET_ALARM", ebiten.KeyA),
			Decrement: button("DECREMENT", ebiten.KeyArrowDown),
			Increment: button("INCREMENT", ebiten.KeyArrowUp),
		},
		Buzzer: buzzer,
	}
	return g
}

type keyPin struct {
	key ebiten.Key
	pin *gpiotest.Pin
}

type game struct {
	board  *segclock.Board
	latch  *latchDriver
	digits int
	keys   []keyPin
	buzzer *gpiotest.Pin
}

func (g *game) Update() error {
	for _, k := range g.keys {
		k.pin.Out(gpio.Level(ebiten.IsKeyPressed(k.key)))
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	for i := 0; i < g.digits; i++ {
		drawDigit(screen, margin+i*(digitWidth+digitGap), margin, g.latch.Lit(i))
	}
	if g.buzzer.Read() {
		fillRect(screen, g.width()-margin/2-thickness, margin/2-thickness/2, thickness, thickness, segmentOn)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width(), digitHeight + 2*margin
}

func (g *game) width() int {
	return 2*margin + g.digits*digitWidth + (g.digits-1)*digitGap
}
