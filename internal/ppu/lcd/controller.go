// Package lcd decodes the LCDC and STAT registers into the booleans and
// small integers the rest of the PPU actually wants, the way the
// reference emulator's lcd package does.
package lcd

import "github.com/SuperC03/fpgaboy/pkg/bits"

// Controller is the decoded form of the LCDC register (0xFF40).
//
//	Bit 7 - LCD Enable                     (0=Off, 1=On)
//	Bit 6 - Window Tile Map Select         (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 5 - Window Enable                  (0=Off, 1=On)
//	Bit 4 - BG & Window Tile Data Select   (0=8800-97FF signed, 1=8000-8FFF unsigned)
//	Bit 3 - BG Tile Map Select             (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 2 - OBJ Size                       (0=8x8, 1=8x16)
//	Bit 1 - OBJ Enable                     (0=Off, 1=On)
//	Bit 0 - BG/Window Display Priority     (0=Off, 1=On)
type Controller struct {
	Enabled       bool
	WindowMap     bool // LCDC.6
	WindowEnabled bool // LCDC.5
	AddrMode      bool // LCDC.4, true = unsigned/0x8000 mode
	BGMap         bool // LCDC.3
	TallSprites   bool // LCDC.2
	SpriteEnabled bool // LCDC.1
	BGWinEnabled  bool // LCDC.0
}

// Decode returns the Controller view of a raw LCDC byte.
func Decode(v uint8) Controller {
	return Controller{
		Enabled:       bits.Test(v, 7),
		WindowMap:     bits.Test(v, 6),
		WindowEnabled: bits.Test(v, 5),
		AddrMode:      bits.Test(v, 4),
		BGMap:         bits.Test(v, 3),
		TallSprites:   bits.Test(v, 2),
		SpriteEnabled: bits.Test(v, 1),
		BGWinEnabled:  bits.Test(v, 0),
	}
}

// SpriteHeight returns 16 when LCDC.2 selects tall sprites, 8 otherwise.
func (c Controller) SpriteHeight() uint8 {
	if c.TallSprites {
		return 16
	}
	return 8
}

// BGMapBase returns the tile map base address for the background layer.
func (c Controller) BGMapBase() uint16 {
	if c.BGMap {
		return 0x9C00
	}
	return 0x9800
}

// WindowMapBase returns the tile map base address for the window layer.
func (c Controller) WindowMapBase() uint16 {
	if c.WindowMap {
		return 0x9C00
	}
	return 0x9800
}
