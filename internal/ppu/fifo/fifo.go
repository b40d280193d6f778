// Package fifo provides the two 16-entry pixel queues described in
// spec.md §4.5: the background FIFO (plain 2-bit color indices) and the
// sprite FIFO (color plus palette-select and priority bits).
package fifo

import (
	"github.com/SuperC03/fpgaboy/internal/ppu/sprite"
	"github.com/SuperC03/fpgaboy/pkg/utils"
)

// Depth is the capacity of both pixel FIFOs.
const Depth = 16

// Background is a FIFO of plain 2-bit background/window color indices.
type Background struct {
	*utils.FIFO[uint8]
}

// NewBackground returns an empty background FIFO.
func NewBackground() *Background {
	return &Background{utils.NewFIFO[uint8](Depth)}
}

// Ready reports whether the background fetcher may push a fresh row:
// per spec.md §3, a background push only happens while the FIFO is
// fully drained.
func (b *Background) Ready() bool {
	return b.Size == 0
}

// PushRow accepts all 8 pixels of a fetched tile row at once.
func (b *Background) PushRow(row [8]uint8) {
	for _, px := range row {
		b.Push(px)
	}
}

// Sprite is a FIFO of sprite pixel entries.
type Sprite struct {
	*utils.FIFO[sprite.Entry]
}

// NewSprite returns an empty sprite FIFO.
func NewSprite() *Sprite {
	return &Sprite{utils.NewFIFO[sprite.Entry](Depth)}
}

// Ready reports whether the sprite fetcher may push a fresh row: per
// spec.md §4.5, room for a full row means occupancy <= 8.
func (s *Sprite) Ready() bool {
	return s.Size <= 8
}

// PushRow appends all 8 pixels of a fetched sprite tile row.
func (s *Sprite) PushRow(row [8]sprite.Entry) {
	for _, px := range row {
		s.Push(px)
	}
}
