// Package background implements the background/window pixel slice
// fetcher described in spec.md §4.3.
package background

import "github.com/SuperC03/fpgaboy/internal/ppu/lcd"

// Phase is one of the fetcher's five states.
type Phase uint8

const (
	FetchTileNum Phase = iota
	FetchTileDataLow
	FetchTileDataHigh
	Push2FIFO
	Pause
)

// Inputs are the signals the fetcher samples each T-cycle.
type Inputs struct {
	MemData  uint8
	MemValid bool

	LCDC lcd.Controller
	SCX  uint8
	SCY  uint8
	WY   uint8
	LY   uint8

	InsideWindow bool
	SpriteActive bool
	// FIFOReady is true when the background FIFO is empty and can accept
	// a fresh row of 8 pixels.
	FIFOReady bool
}

// Outputs are what the fetcher drives this T-cycle.
type Outputs struct {
	AddrOut   uint16
	AddrValid bool
	// Busy is bg_mem_busy: true while the background owns (or is about
	// to need) the memory port.
	Busy bool
	// PushValid is true exactly on the tick the fetcher hands a fresh
	// row of 8 pixels to the background FIFO.
	PushValid bool
	PushRow   [8]uint8
}

// Fetcher is the background/window 4-phase (+Pause) state machine.
type Fetcher struct {
	Phase Phase
	stall bool

	fetcherX    uint8
	windowTileX uint8

	tileNum uint8
	low     uint8
	rowBase uint16

	yCoord     uint8
	pendingRow [8]uint8
}

// New returns a Fetcher parked at FetchTileNum.
func New() *Fetcher {
	return &Fetcher{}
}

// Reset reinitializes the fetcher at the start of a new Draw phase.
func (f *Fetcher) Reset() {
	*f = Fetcher{}
}

// Step advances the fetcher by one T-cycle.
func (f *Fetcher) Step(in Inputs) Outputs {
	out := Outputs{Busy: f.Phase != Pause}

	switch f.Phase {
	case FetchTileNum:
		out.Busy = true
		if !f.stall {
			addr := f.tileNumAddr(in)
			out.AddrOut, out.AddrValid = addr, true
			f.stall = true
			return out
		}
		if in.MemValid {
			f.tileNum = in.MemData
		}
		f.yCoord = f.currentYCoord(in)
		f.stall = false
		f.Phase = FetchTileDataLow
		return out

	case FetchTileDataLow:
		out.Busy = true
		if !f.stall {
			f.rowBase = tileRowBase(in.LCDC, f.tileNum)
			addr := f.rowBase + uint16(f.yCoord&7)*2
			out.AddrOut, out.AddrValid = addr, true
			f.stall = true
			return out
		}
		if in.MemValid {
			f.low = in.MemData
		}
		f.stall = false
		f.Phase = FetchTileDataHigh
		return out

	case FetchTileDataHigh:
		out.Busy = true
		if !f.stall {
			addr := f.rowBase + uint16(f.yCoord&7)*2 + 1
			out.AddrOut, out.AddrValid = addr, true
			f.stall = true
			return out
		}
		var high uint8
		if in.MemValid {
			high = in.MemData
		}
		for i := 0; i < 8; i++ {
			bit := uint8(7 - i)
			out.PushRow[i] = (((high >> bit) & 1) << 1) | ((f.low >> bit) & 1)
		}
		f.stall = false
		f.Phase = Push2FIFO
		f.pendingRow = out.PushRow
		out.Busy = true
		return out

	case Push2FIFO:
		out.Busy = true
		if !in.FIFOReady {
			return out
		}
		out.PushValid = true
		out.PushRow = f.pendingRow
		if in.InsideWindow {
			f.windowTileX++
		} else {
			f.fetcherX++
		}
		if in.SpriteActive {
			f.Phase = Pause
		} else {
			f.Phase = FetchTileNum
		}
		return out

	case Pause:
		out.Busy = false
		if !in.SpriteActive {
			f.Phase = FetchTileNum
		}
		return out
	}

	return out
}

func (f *Fetcher) tileNumAddr(in Inputs) uint16 {
	var base uint16
	if (in.LCDC.BGMap && !in.InsideWindow) || (in.LCDC.WindowMap && in.InsideWindow) {
		base = 0x9C00
	} else {
		base = 0x9800
	}

	var xCoord, yCoord uint8
	if in.InsideWindow {
		xCoord = f.windowTileX
		yCoord = in.WY - in.LY
	} else {
		xCoord = (in.SCX>>3 + f.fetcherX) & 0x1F
		yCoord = in.SCY + in.LY
	}
	return base + uint16(xCoord) + (uint16(yCoord>>3) << 5)
}

func (f *Fetcher) currentYCoord(in Inputs) uint8 {
	if in.InsideWindow {
		return in.WY - in.LY
	}
	return in.SCY + in.LY
}

func tileRowBase(c lcd.Controller, tileNum uint8) uint16 {
	if c.AddrMode {
		return 0x8000 + uint16(tileNum)<<4
	}
	return uint16(int32(0x9000) + int32(int8(tileNum))*16)
}
