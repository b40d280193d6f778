package views

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/SuperC03/fpgaboy/internal/ppu"
	"github.com/SuperC03/fpgaboy/internal/ppu/fifo"
)

const fifoBarWidth = 200

// FIFO shows the background and sprite pixel FIFOs' occupancy as two bars
// against fifo.Depth, refreshed on the debug driver's refresh ticker.
type FIFO struct {
	widget.BaseWidget

	core *ppu.Core

	bgBar, objBar   *canvas.Rectangle
	bgLabel, objLabel *widget.Label
}

// NewFIFO returns a FIFO occupancy view reading from core.
func NewFIFO(core *ppu.Core) *FIFO {
	f := &FIFO{core: core}
	f.ExtendBaseWidget(f)
	return f
}

func (f *FIFO) CreateRenderer() fyne.WidgetRenderer {
	f.bgBar = canvas.NewRectangle(color.RGBA{R: 0x60, G: 0xA0, B: 0xE0, A: 0xFF})
	f.objBar = canvas.NewRectangle(color.RGBA{R: 0xE0, G: 0x90, B: 0x50, A: 0xFF})
	f.bgLabel = widget.NewLabel("")
	f.objLabel = widget.NewLabel("")

	f.bgBar.SetMinSize(fyne.NewSize(0, 20))
	f.objBar.SetMinSize(fyne.NewSize(0, 20))

	return widget.NewSimpleRenderer(container.NewVBox(
		widget.NewLabelWithStyle("Pixel FIFOs", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("bg "), f.bgBar, f.bgLabel),
		container.NewHBox(widget.NewLabel("obj"), f.objBar, f.objLabel),
	))
}

// Refresh redraws the two bars from the FIFOs' current occupancy.
func (f *FIFO) Refresh() {
	bg, obj := f.core.FIFOOccupancy()

	f.bgBar.SetMinSize(fyne.NewSize(fifoBarWidth*float32(bg)/fifo.Depth, 20))
	f.objBar.SetMinSize(fyne.NewSize(fifoBarWidth*float32(obj)/fifo.Depth, 20))
	f.bgBar.Refresh()
	f.objBar.Refresh()

	f.bgLabel.SetText(fmt.Sprintf("%2d/%d", bg, fifo.Depth))
	f.objLabel.SetText(fmt.Sprintf("%2d/%d", obj, fifo.Depth))
}
