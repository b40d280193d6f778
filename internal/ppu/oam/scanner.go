// Package oam implements the PPU's mode-2 sprite buffer scan.
package oam

import "github.com/SuperC03/fpgaboy/internal/types"

// Capacity is the maximum number of sprites the scanner will buffer for
// a single scanline.
const Capacity = 10

// Entry is one qualifying sprite found during OAMScan. On real hardware
// this is packed into 18 bits ({x[7:0], oam_index[5:0], row[3:0]});
// here it's kept as a plain struct, which is the byte-for-bit equivalent
// a Go implementation should prefer (spec.md §9 Design Notes).
type Entry struct {
	X         uint8
	OAMIndex  uint8
	Row       uint8
}

// Peeker is the combinational OAM read the scanner uses to resolve a
// byte within the same T-cycle it requests it. Unlike the background and
// sprite fetchers' VRAM reads, OAM reads during mode 2 are not routed
// through the one-cycle-delayed MemoryPort - see DESIGN.md for why.
type Peeker interface {
	Peek(addr uint16) uint8
}

// Scanner walks the 40 OAM entries across the 80 T-cycles of mode 2,
// appending up to Capacity qualifying sprites to its buffer.
type Scanner struct {
	buffer   []Entry
	yRes     bool
	pendingY uint8
}

// NewScanner returns an empty Scanner.
func NewScanner() *Scanner {
	return &Scanner{buffer: make([]Entry, 0, Capacity)}
}

// Reset clears the sprite buffer at the start of a new OAMScan.
func (s *Scanner) Reset() {
	s.buffer = s.buffer[:0]
	s.yRes = false
}

// Buffer returns the sprites found so far this scanline, in OAM order.
func (s *Scanner) Buffer() []Entry {
	return s.buffer
}

// Step advances the scanner by one T-cycle. t is the position within
// mode 2 (0-79); lyPlus is LY+16; height is 8 or 16 depending on
// LCDC.tall. It returns the address the scanner wants to read this
// cycle and whether that address is valid, matching spec.md §4.2's
// address sequence.
func (s *Scanner) Step(t uint8, mem Peeker, lyPlus uint16, height uint8) (addr uint16, valid bool) {
	i := uint16(t >> 1)
	parity := t & 1
	addr = types.OAMBase + (i << 2) + uint16(parity)
	valid = true

	if parity == 0 {
		yByte := mem.Peek(addr)
		s.yRes = uint16(yByte) <= lyPlus && lyPlus < uint16(yByte)+uint16(height)
		s.pendingY = yByte
	} else {
		xByte := mem.Peek(addr)
		if s.yRes && xByte > 0 && len(s.buffer) < Capacity {
			s.buffer = append(s.buffer, Entry{
				X:        xByte,
				OAMIndex: uint8(i),
				Row:      uint8((lyPlus - uint16(s.pendingY)) & 0xF),
			})
		}
	}
	return addr, valid
}
