// Package sprite implements the object pixel slice fetcher described in
// spec.md §4.4.
package sprite

import "github.com/SuperC03/fpgaboy/internal/types"

// Phase is one of the fetcher's five states.
type Phase uint8

const (
	FetchTileNum Phase = iota
	FetchTileDataLow
	FetchTileDataHigh
	Push2FIFO
	Pause
)

// Object is a sprite buffered by the OAM scanner: its X, OAM index and
// row within the sprite. The attribute byte is not part of it; the
// fetcher reads that from OAM during FetchTileNum.
type Object struct {
	X        uint8
	OAMIndex uint8
	Row      uint8
}

// Flags are the four attribute bits the spec exposes from OAM byte 3.
type Flags struct {
	PaletteSelect bool // bit 4
	FlipX         bool // bit 5
	FlipY         bool // bit 6
	Priority      bool // bit 7; when set the mixer draws the sprite pixel over the background
}

func decodeFlags(b uint8) Flags {
	return Flags{
		PaletteSelect: b&0x10 != 0,
		FlipX:         b&0x20 != 0,
		FlipY:         b&0x40 != 0,
		Priority:      b&0x80 != 0,
	}
}

// Peeker is the combinational OAM read the fetcher uses for the tile
// number and attribute bytes. See DESIGN.md for why OAM reads bypass
// the latched VRAM-oriented MemoryPort.
type Peeker interface {
	Peek(addr uint16) uint8
}

// Entry is a pixel handed to the sprite FIFO: a color index plus the
// palette/priority bits the mixer needs to resolve it.
type Entry struct {
	Color    uint8
	Palette1 bool // true selects OBP1 over OBP0
	Priority bool
}

// Inputs are the signals the fetcher samples each T-cycle.
type Inputs struct {
	MemData  uint8
	MemValid bool
	OAM      Peeker

	TallSprites bool
	// Hit is the lowest-index buffered sprite whose X matches the draw
	// cursor this tick, or nil if none does.
	Hit *Object
	// MemFree is true when the background fetcher doesn't own the
	// memory port (bg_mem_busy is false).
	MemFree bool
}

// Outputs are what the fetcher drives this T-cycle.
type Outputs struct {
	AddrOut   uint16
	AddrValid bool
	Active    bool // true whenever the fetcher isn't idling in Pause
	PushValid bool
	PushRow   [8]Entry
}

// Fetcher is the sprite 4-phase (+Pause) state machine.
type Fetcher struct {
	Phase Phase
	stall bool

	obj     Object
	tileNum uint8
	flags   Flags
	low     uint8
	rowBase uint16
	rowNum  uint8

	pendingRow [8]Entry
}

// New returns a Fetcher parked in Pause.
func New() *Fetcher {
	return &Fetcher{Phase: Pause}
}

// Reset reinitializes the fetcher at the start of a new Draw phase.
func (f *Fetcher) Reset() {
	*f = Fetcher{Phase: Pause}
}

// Step advances the fetcher by one T-cycle.
func (f *Fetcher) Step(in Inputs) Outputs {
	out := Outputs{Active: f.Phase != Pause}

	switch f.Phase {
	case Pause:
		if in.Hit != nil && in.MemFree {
			f.obj = *in.Hit
			f.Phase = FetchTileNum
			f.stall = false
			out.Active = true
		}
		return out

	case FetchTileNum:
		out.Active = true
		tileAddr := types.OAMBase + uint16(f.obj.OAMIndex)<<2 + 2
		attrAddr := types.OAMBase + uint16(f.obj.OAMIndex)<<2 + 3
		out.AddrOut, out.AddrValid = tileAddr, true
		if !f.stall {
			f.stall = true
			return out
		}
		f.tileNum = in.OAM.Peek(tileAddr)
		f.flags = decodeFlags(in.OAM.Peek(attrAddr))
		f.rowNum = rowNumber(f.obj.Row, f.flags.FlipY, in.TallSprites)
		f.rowBase = 0x8000 + uint16(f.tileNum)<<4
		f.stall = false
		f.Phase = FetchTileDataLow
		return out

	case FetchTileDataLow:
		out.Active = true
		if !f.stall {
			addr := f.rowBase + uint16(f.rowNum)*2
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
		out.Active = true
		if !f.stall {
			addr := f.rowBase + uint16(f.rowNum)*2 + 1
			out.AddrOut, out.AddrValid = addr, true
			f.stall = true
			return out
		}
		var high uint8
		if in.MemValid {
			high = in.MemData
		}
		for i := 0; i < 8; i++ {
			bit := uint8(i)
			if !f.flags.FlipX {
				bit = uint8(7 - i)
			}
			color := (((high >> bit) & 1) << 1) | ((f.low >> bit) & 1)
			f.pendingRow[i] = Entry{Color: color, Palette1: f.flags.PaletteSelect, Priority: f.flags.Priority}
		}
		f.stall = false
		f.Phase = Push2FIFO
		return out

	case Push2FIFO:
		out.Active = true
		out.PushValid = true
		out.PushRow = f.pendingRow
		f.Phase = Pause
		return out
	}

	return out
}

func rowNumber(spriteRow uint8, flipY bool, tall bool) uint8 {
	if tall {
		if flipY {
			return 15 - spriteRow
		}
		return spriteRow
	}
	if flipY {
		return 7 - spriteRow
	}
	return spriteRow
}
