package views

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/SuperC03/fpgaboy/internal/memory"
	"github.com/SuperC03/fpgaboy/internal/ppu/palette"
)

// Palette shows the three DMG palette registers (BGP, OBP0, OBP1) as four
// colored swatches each, decoded through the same Resolve/GetColour path
// the mixer uses.
type Palette struct {
	widget.BaseWidget

	reg   memory.RegisterFile
	swatches [3][4]*canvas.Rectangle
	labels   [3]*widget.Label
}

// NewPalette returns a Palette view reading registers from reg.
func NewPalette(reg memory.RegisterFile) *Palette {
	p := &Palette{reg: reg}
	p.ExtendBaseWidget(p)
	return p
}

func (p *Palette) CreateRenderer() fyne.WidgetRenderer {
	rows := container.NewVBox(widget.NewLabelWithStyle("Palettes", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	names := [3]string{"BGP", "OBP0", "OBP1"}
	for i, name := range names {
		swatchRow := container.NewHBox()
		for j := 0; j < 4; j++ {
			r := canvas.NewRectangle(color.Black)
			r.SetMinSize(fyne.NewSize(24, 24))
			p.swatches[i][j] = r
			swatchRow.Add(r)
		}
		p.labels[i] = widget.NewLabel(name)
		rows.Add(container.NewHBox(widget.NewLabel(name), swatchRow, p.labels[i]))
	}
	return widget.NewSimpleRenderer(rows)
}

// Refresh redecodes the palette registers and repaints the swatches.
func (p *Palette) Refresh() {
	values := [3]uint8{p.reg.BGP(), p.reg.OBP0(), p.reg.OBP1()}
	for i, raw := range values {
		for shade := 0; shade < 4; shade++ {
			idx := palette.Resolve(raw, uint8(shade))
			c := palette.GetColour(idx)
			p.swatches[i][shade].FillColor = color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xFF}
			p.swatches[i][shade].Refresh()
		}
		p.labels[i].SetText(fmt.Sprintf("%#02x", raw))
	}
}
