// Package fyne implements a debug display.Driver backed by fyne: alongside
// the live framebuffer it renders the OAM buffer, both pixel FIFOs, the
// background tile map, and the DMG palettes, all reading straight off a
// running ppu.Core. Unlike the sdl and glfw drivers it is not installed
// into the display package's registry, because it needs a direct reference
// to the Core and memory bus a debug session is driving rather than just a
// frame channel - the same choice the real gomeboy repository's own fyne
// debugger makes by taking a *gameboy.GameBoy directly instead of going
// through display.Install/GetDriver.
package fyne

import (
	"image"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"github.com/SuperC03/fpgaboy/internal/memory"
	"github.com/SuperC03/fpgaboy/internal/ppu"
	"github.com/SuperC03/fpgaboy/pkg/display/event"
	"github.com/SuperC03/fpgaboy/pkg/display/fyne/views"
)

// refreshInterval governs how often the debug widgets (OAM/FIFO/palette/
// tile map) are redrawn from the Core's live state; the framebuffer itself
// updates as fast as fb delivers frames.
const refreshInterval = 33 * time.Millisecond

// Debugger is a display.Driver that opens a fyne window showing the
// framebuffer next to live PPU internals. It's constructed directly with
// the Core and bus a harness is already driving, rather than through
// display.GetDriver.
type Debugger struct {
	core *ppu.Core
	bus  *memory.Bus

	app    fyne.App
	window fyne.Window

	fbImage *image.RGBA
	fbRaster *canvas.Image

	oam     *views.OAM
	fifo    *views.FIFO
	palette *views.Palette
	tiles   *views.TileMap
}

// NewDebugger returns a Debugger reading pixels and internals from core,
// with VRAM/register access supplied by bus.
func NewDebugger(core *ppu.Core, bus *memory.Bus) *Debugger {
	return &Debugger{
		core:    core,
		bus:     bus,
		oam:     views.NewOAM(core),
		fifo:    views.NewFIFO(core),
		palette: views.NewPalette(bus),
		tiles:   views.NewTileMap(bus, bus),
	}
}

// Start opens the debug window and pumps frames from fb onto the
// framebuffer raster until quit closes or the window is closed.
func (d *Debugger) Start(fb <-chan [ppu.ScreenHeight][ppu.ScreenWidth][3]uint8, events chan<- event.Event, quit <-chan struct{}) error {
	d.app = app.New()
	d.window = d.app.NewWindow("fpgaboy debug")

	d.fbImage = image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	d.fbRaster = canvas.NewImageFromImage(d.fbImage)
	d.fbRaster.ScaleMode = canvas.ImageScalePixels
	d.fbRaster.SetMinSize(fyne.NewSize(ppu.ScreenWidth*3, ppu.ScreenHeight*3))

	sidebar := container.NewVBox(d.oam, d.fifo, d.palette, d.tiles)
	d.window.SetContent(container.NewHBox(d.fbRaster, sidebar))
	d.window.Resize(fyne.NewSize(1100, 700))

	d.window.SetOnClosed(func() {
		select {
		case events <- event.Event{Type: event.Quit}:
		default:
		}
	})

	done := make(chan struct{})
	go d.pump(fb, quit, done)

	d.window.ShowAndRun()
	<-done
	return nil
}

// pump copies delivered frames into the raster and redraws the debug
// widgets on refreshInterval, until quit closes or the window is torn
// down.
func (d *Debugger) pump(fb <-chan [ppu.ScreenHeight][ppu.ScreenWidth][3]uint8, quit <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			d.app.Quit()
			return
		case frame, ok := <-fb:
			if !ok {
				return
			}
			for y := 0; y < ppu.ScreenHeight; y++ {
				for x := 0; x < ppu.ScreenWidth; x++ {
					px := frame[y][x]
					d.fbImage.Set(x, y, color.RGBA{R: px[0], G: px[1], B: px[2], A: 0xFF})
				}
			}
			d.fbRaster.Refresh()
		case <-ticker.C:
			d.oam.Refresh()
			d.fifo.Refresh()
			d.palette.Refresh()
			d.tiles.Refresh()
		}
	}
}

// Stop closes the debug window and its fyne application.
func (d *Debugger) Stop() error {
	if d.app != nil {
		d.app.Quit()
	}
	return nil
}
