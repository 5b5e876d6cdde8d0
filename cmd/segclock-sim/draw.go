package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/DrJosh9000/segclock"
)

const (
	margin      = 24
	digitWidth  = 60
	digitHeight = 100
	digitGap    = 24
	thickness   = 10
)

var (
	background = color.RGBA{0x10, 0x10, 0x10, 0xff}
	segmentOff = color.RGBA{0x30, 0x08, 0x08, 0xff}
	segmentOn  = color.RGBA{0xff, 0x20, 0x10, 0xff}
)

// Segment rectangles relative to the top left of a digit, in SegmentA order.
var segmentRects = [8]image.Rectangle{
	rect(thickness, 0, digitWidth-2*thickness, thickness),                         // A
	rect(digitWidth-thickness, thickness, thickness, digitHeight/2-thickness),     // B
	rect(digitWidth-thickness, digitHeight/2, thickness, digitHeight/2-thickness), // C
	rect(thickness, digitHeight-thickness, digitWidth-2*thickness, thickness),     // D
	rect(0, digitHeight/2, thickness, digitHeight/2-thickness),                    // E
	rect(0, thickness, thickness, digitHeight/2-thickness),                        // F
	rect(thickness, digitHeight/2-thickness/2, digitWidth-2*thickness, thickness), // G
	rect(digitWidth+thickness/2, digitHeight-thickness, thickness, thickness),     // P
}

func rect(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h)
}

func drawDigit(screen *ebiten.Image, x, y int, pattern uint8) {
	for i, r := range segmentRects {
		c := segmentOff
		if pattern&(segclock.SegmentA<<i) != 0 {
			c = segmentOn
		}
		r = r.Add(image.Pt(x, y))
		fillRect(screen, r.Min.X, r.Min.Y, r.Dx(), r.Dy(), c)
	}
}

func fillRect(screen *ebiten.Image, x, y, w, h int, c color.Color) {
	screen.SubImage(image.Rect(x, y, x+w, y+h)).(*ebiten.Image).Fill(c)
}
