// Package mixer implements the PixelFIFO arbitration and priority
// resolution described in spec.md §4.6.
package mixer

import (
	"github.com/SuperC03/fpgaboy/internal/ppu/fifo"
	"github.com/SuperC03/fpgaboy/internal/ppu/palette"
	"github.com/SuperC03/fpgaboy/internal/ppu/sprite"
)

// Route describes which fetcher, if any, currently owns the memory
// port. Exactly one of BG, Sprite, or neither is true each tick.
type Route uint8

const (
	RouteNone Route = iota
	RouteBackground
	RouteSprite
)

// Arbitrate resolves the memory-port mux: background wins whenever it's
// busy, sprite wins only once background has released the port.
func Arbitrate(bgBusy, spriteDetected bool) Route {
	switch {
	case bgBusy:
		return RouteBackground
	case spriteDetected:
		return RouteSprite
	default:
		return RouteNone
	}
}

// Mixer pops one entry from each pixel FIFO per tick, resolves priority
// between them, and applies the active palette.
type Mixer struct{}

// Result is the mixer's verdict for one T-cycle.
type Result struct {
	Pixel uint8
	Valid bool
}

// Step pops from bg/obj and produces the palettized pixel for this
// tick, or no pixel if the display is off, a sprite fetch is in
// progress, or the background FIFO has nothing queued.
func (Mixer) Step(bg *fifo.Background, obj *fifo.Sprite, lcdEnabled, spriteDetected, bgWinEnabled bool, bgp, obp0, obp1 uint8) Result {
	if !lcdEnabled || spriteDetected {
		return Result{}
	}

	bgPx := bg.Pop()
	if bgPx == nil {
		return Result{}
	}

	var objPx *sprite.Entry
	if obj.Size > 0 {
		objPx = obj.Pop()
	}

	// Background is always present here (the nil case returned above), so
	// the only choice left is whether a queued sprite pixel overrides it:
	// never if there's no sprite, always if the sprite has priority or the
	// background color is transparent, otherwise the background wins.
	var colorIndex, paletteByte uint8
	switch {
	case objPx == nil:
		colorIndex, paletteByte = bgColor(*bgPx, bgWinEnabled), bgp
	case objPx.Priority || *bgPx == 0:
		colorIndex, paletteByte = objPx.Color, objPalette(*objPx, obp0, obp1)
	default:
		colorIndex, paletteByte = bgColor(*bgPx, bgWinEnabled), bgp
	}

	return Result{Pixel: palette.Resolve(paletteByte, colorIndex), Valid: true}
}

func bgColor(raw uint8, bgWinEnabled bool) uint8 {
	if !bgWinEnabled {
		return 0
	}
	return raw
}

func objPalette(e sprite.Entry, obp0, obp1 uint8) uint8 {
	if e.Palette1 {
		return obp1
	}
	return obp0
}
