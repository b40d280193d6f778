package views

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/SuperC03/fpgaboy/internal/memory"
	"github.com/SuperC03/fpgaboy/internal/ppu/lcd"
	"github.com/SuperC03/fpgaboy/internal/ppu/palette"
)

// tilesPerSide is the background tile map's fixed 32x32 tile grid.
const tilesPerSide = 32

// peeker is the combinational VRAM read the tile map view needs; a
// *memory.Bus satisfies it directly.
type peeker interface {
	Peek(addr uint16) uint8
}

// TileMap renders the live background tile map (32x32 tiles, 256x256
// pixels) straight from VRAM, using the same addressing rules the
// background fetcher applies during Draw.
type TileMap struct {
	widget.BaseWidget

	mem peeker
	reg memory.RegisterFile

	img *image.RGBA
	raster *canvas.Image
}

// NewTileMap returns a TileMap view reading VRAM through mem and LCDC/BGP
// through reg.
func NewTileMap(mem peeker, reg memory.RegisterFile) *TileMap {
	t := &TileMap{mem: mem, reg: reg}
	t.ExtendBaseWidget(t)
	return t
}

func (t *TileMap) CreateRenderer() fyne.WidgetRenderer {
	t.img = image.NewRGBA(image.Rect(0, 0, tilesPerSide*8, tilesPerSide*8))
	t.raster = canvas.NewImageFromImage(t.img)
	t.raster.ScaleMode = canvas.ImageScalePixels
	t.raster.SetMinSize(fyne.NewSize(tilesPerSide*8*2, tilesPerSide*8*2))

	return widget.NewSimpleRenderer(container.NewVBox(
		widget.NewLabelWithStyle("Background tile map", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		t.raster,
	))
}

// Refresh redecodes every tile in the current background map and repaints
// the raster.
func (t *TileMap) Refresh() {
	lcdc := lcd.Decode(t.reg.LCDC())
	mapBase := lcdc.BGMapBase()
	bgp := t.reg.BGP()

	for ty := 0; ty < tilesPerSide; ty++ {
		for tx := 0; tx < tilesPerSide; tx++ {
			tileNum := t.mem.Peek(mapBase + uint16(ty*tilesPerSide+tx))
			rowBase := tileDataBase(lcdc, tileNum)
			for row := 0; row < 8; row++ {
				low := t.mem.Peek(rowBase + uint16(row)*2)
				high := t.mem.Peek(rowBase + uint16(row)*2 + 1)
				for col := 0; col < 8; col++ {
					bit := uint8(7 - col)
					colorIndex := ((high>>bit)&1)<<1 | (low>>bit)&1
					shade := palette.Resolve(bgp, colorIndex)
					c := palette.GetColour(shade)
					px := color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xFF}
					t.img.Set(tx*8+col, ty*8+row, px)
				}
			}
		}
	}
	t.raster.Refresh()
}

// tileDataBase mirrors the background fetcher's addressing rule: unsigned
// tile numbers off 0x8000 when LCDC.4 is set, signed tile numbers off
// 0x9000 otherwise.
func tileDataBase(c lcd.Controller, tileNum uint8) uint16 {
	if c.AddrMode {
		return 0x8000 + uint16(tileNum)<<4
	}
	return uint16(int32(0x9000) + int32(int8(tileNum))*16)
}
