package types

// HardwareAddress is the address of a memory-mapped I/O register, in the
// range 0xFF00-0xFF7F.
type HardwareAddress = uint16

const (
	// LCDC is the LCD control register. See the bit layout documented on
	// the lcd.Controller type.
	LCDC HardwareAddress = 0xFF40
	// STAT is the LCD status register.
	STAT HardwareAddress = 0xFF41
	// SCY is the background viewport Y scroll register.
	SCY HardwareAddress = 0xFF42
	// SCX is the background viewport X scroll register.
	SCX HardwareAddress = 0xFF43
	// LY is the current scanline, 0-153. Read-only from the CPU's side.
	LY HardwareAddress = 0xFF44
	// LYC is the scanline compare target for the STAT coincidence bit.
	LYC HardwareAddress = 0xFF45
	// BGP is the background palette register.
	BGP HardwareAddress = 0xFF47
	// OBP0 is sprite palette bank 0.
	OBP0 HardwareAddress = 0xFF48
	// OBP1 is sprite palette bank 1.
	OBP1 HardwareAddress = 0xFF49
	// WY is the window Y origin.
	WY HardwareAddress = 0xFF4A
	// WX is the window X origin, biased by +7 at the point of use.
	WX HardwareAddress = 0xFF4B
)

const (
	// OAMBase is the first address of Object Attribute Memory.
	OAMBase uint16 = 0xFE00
	// OAMEnd is the last address of Object Attribute Memory.
	OAMEnd uint16 = 0xFE9F
	// OAMEntrySize is the number of bytes per OAM sprite descriptor.
	OAMEntrySize uint16 = 4
	// OAMEntries is the number of sprite descriptors in OAM.
	OAMEntries = 40

	// VRAMTileDataUnsigned is the base address used when LCDC.4 selects
	// unsigned tile indexing.
	VRAMTileDataUnsigned uint16 = 0x8000
	// VRAMTileDataSigned is the base address used when LCDC.4 selects
	// signed tile indexing (tile number is a signed offset from 0x9000).
	VRAMTileDataSigned uint16 = 0x9000
	// VRAMTileMapLow is the tile map at 0x9800-0x9BFF.
	VRAMTileMapLow uint16 = 0x9800
	// VRAMTileMapHigh is the tile map at 0x9C00-0x9FFF.
	VRAMTileMapHigh uint16 = 0x9C00
)
