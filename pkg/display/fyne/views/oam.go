// Package views implements the live debug widgets shown alongside the
// framebuffer in the fyne debug driver: the OAM buffer, the two pixel
// FIFOs, the background tile map, and the DMG palettes.
package views

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/SuperC03/fpgaboy/internal/ppu"
	"github.com/SuperC03/fpgaboy/internal/ppu/oam"
)

// OAM shows the sprites the scanner has buffered for the scanline the PPU
// is currently drawing: OAM index, X, and the row within the sprite being
// fetched.
type OAM struct {
	widget.BaseWidget

	core *ppu.Core
	grid *widget.TextGrid
}

// NewOAM returns an OAM view reading its buffer from core.
func NewOAM(core *ppu.Core) *OAM {
	o := &OAM{core: core}
	o.ExtendBaseWidget(o)
	return o
}

func (o *OAM) CreateRenderer() fyne.WidgetRenderer {
	o.grid = widget.NewTextGrid()
	return widget.NewSimpleRenderer(container.NewVBox(
		widget.NewLabelWithStyle("OAM buffer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		o.grid,
	))
}

// Refresh redraws the buffer table from the PPU's current scanline.
func (o *OAM) Refresh() {
	buf := o.core.OAMBuffer()
	text := fmt.Sprintf("scanline %3d  %d/%d sprites\n", o.core.LY(), len(buf), oam.Capacity)
	text += "idx  oam#  x    row\n"
	for i, e := range buf {
		text += fmt.Sprintf("%-4d %-5d %-4d %-4d\n", i, e.OAMIndex, e.X, e.Row)
	}
	o.grid.SetText(text)
}
