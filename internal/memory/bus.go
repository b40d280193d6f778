// Package memory implements the PixelMemoryMap collaborator the PPU core
// treats as external: a byte-addressable VRAM/OAM store plus the PPU's
// register file, answering address reads with one-T-cycle-delayed data.
//
// The real repository's CPU and cartridge are out of scope (spec.md §1);
// this package exists only so the PPU core has something concrete to read
// from in tests and in the cmd/ppuview harness.
package memory

import "github.com/SuperC03/fpgaboy/internal/types"

// MemoryPort is the latched read interface the PPU drives: RequestRead
// issues an address for the next tick, Data returns the byte (and its
// validity) that was requested one tick ago.
type MemoryPort interface {
	RequestRead(addr uint16, valid bool)
	Data() (value uint8, valid bool)
	Tick()
}

// RegisterFile is the combinational register read surface. Unlike VRAM/OAM
// reads, register values are visible to the PPU in the same tick they're
// written - there is no CPU instruction decoding here to cause that delay.
type RegisterFile interface {
	LCDC() uint8
	SCY() uint8
	SCX() uint8
	LYC() uint8
	WY() uint8
	WX() uint8
	BGP() uint8
	OBP0() uint8
	OBP1() uint8
}

// Bus is a minimal memory map covering VRAM (0x8000-0x9FFF), OAM
// (0xFE00-0xFE9F), and the PPU's registers. The registers are read only
// through the RegisterFile methods; reads through the port or Peek at any
// address outside VRAM and OAM, register addresses included, return 0xFF,
// matching the hardware convention for an undriven bus (spec.md §7).
type Bus struct {
	vram [0x2000]uint8
	oam  [0xA0]uint8

	lcdc, stat             uint8
	scy, scx               uint8
	ly, lyc                uint8
	bgp, obp0, obp1        uint8
	wy, wx                 uint8

	reqAddr  uint16
	reqValid bool
	outData  uint8
	outValid bool
}

// NewBus returns a Bus with all storage zeroed.
func NewBus() *Bus {
	return &Bus{}
}

// RequestRead latches the address the PPU wants to read on the next Tick.
func (b *Bus) RequestRead(addr uint16, valid bool) {
	b.reqAddr, b.reqValid = addr, valid
}

// Data returns the result of the read requested on the previous tick.
func (b *Bus) Data() (uint8, bool) {
	return b.outData, b.outValid
}

// Tick resolves the pending read request into Data's next return value.
// It must be called once per T-cycle, after the PPU has issued its
// request for this tick and before it observes Data on the next one.
func (b *Bus) Tick() {
	if !b.reqValid {
		b.outData, b.outValid = 0xFF, false
		return
	}
	b.outData, b.outValid = b.readNow(b.reqAddr), true
}

// Peek reads a byte combinationally, bypassing the latched MemoryPort.
// The OAM scanner uses this during mode 2: real hardware's OAM port
// resolves within the same dot it's addressed, unlike the VRAM path the
// background and sprite fetchers use (see DESIGN.md).
func (b *Bus) Peek(addr uint16) uint8 {
	return b.readNow(addr)
}

func (b *Bus) readNow(addr uint16) uint8 {
	switch {
	case addr >= 0x8000 && addr <= 0x9FFF:
		return b.vram[addr-0x8000]
	case addr >= types.OAMBase && addr <= types.OAMEnd:
		return b.oam[addr-types.OAMBase]
	default:
		return 0xFF
	}
}

// WriteVRAM writes a byte to VRAM as if the CPU had done so directly;
// the PPU only ever observes this through RequestRead/Data.
func (b *Bus) WriteVRAM(addr uint16, value uint8) {
	if addr >= 0x8000 && addr <= 0x9FFF {
		b.vram[addr-0x8000] = value
	}
}

// WriteOAM writes a byte to OAM as if the CPU had done so directly.
func (b *Bus) WriteOAM(addr uint16, value uint8) {
	if addr >= types.OAMBase && addr <= types.OAMEnd {
		b.oam[addr-types.OAMBase] = value
	}
}

// WriteRegister writes a value to one of the PPU's registers, as the CPU
// would via the memory map. STAT and LY are owned by the PPU itself and
// are not accepted here.
func (b *Bus) WriteRegister(addr types.HardwareAddress, value uint8) {
	switch addr {
	case types.LCDC:
		b.lcdc = value
	case types.SCY:
		b.scy = value
	case types.SCX:
		b.scx = value
	case types.LYC:
		b.lyc = value
	case types.BGP:
		b.bgp = value
	case types.OBP0:
		b.obp0 = value
	case types.OBP1:
		b.obp1 = value
	case types.WY:
		b.wy = value
	case types.WX:
		b.wx = value
	}
}

func (b *Bus) LCDC() uint8 { return b.lcdc }
func (b *Bus) SCY() uint8  { return b.scy }
func (b *Bus) SCX() uint8  { return b.scx }
func (b *Bus) LYC() uint8  { return b.lyc }
func (b *Bus) BGP() uint8  { return b.bgp }
func (b *Bus) OBP0() uint8 { return b.obp0 }
func (b *Bus) OBP1() uint8 { return b.obp1 }
func (b *Bus) WY() uint8   { return b.wy }
func (b *Bus) WX() uint8   { return b.wx }
