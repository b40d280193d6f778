// Package sdl implements a windowed display.Driver backed by SDL2,
// blitting the resolved RGB frame to a hardware texture once per VBlank.
package sdl

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/SuperC03/fpgaboy/internal/ppu"
	"github.com/SuperC03/fpgaboy/pkg/display"
	"github.com/SuperC03/fpgaboy/pkg/display/event"
	"github.com/SuperC03/fpgaboy/pkg/log"
)

func init() {
	driver := &Driver{Scale: 4, log: log.NewNullLogger()}
	display.Install("sdl", driver, []display.DriverOption{
		{
			Name:        "scale",
			Default:     4.0,
			Value:       &driver.Scale,
			Type:        "float",
			Description: "Scale the window by this factor",
		},
	})
}

// Driver is a display.Driver that presents frames in an SDL2 window.
type Driver struct {
	Scale float64
	log   log.Logger

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
}

// SetLogger overrides the driver's silent default logger.
func (d *Driver) SetLogger(l log.Logger) { d.log = l }

// Start opens the SDL2 window and pumps its event loop until quit closes
// or the user closes the window.
func (d *Driver) Start(fb <-chan [ppu.ScreenHeight][ppu.ScreenWidth][3]uint8, events chan<- event.Event, quit <-chan struct{}) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("sdl: init: %w", err)
	}

	w := int32(float64(ppu.ScreenWidth) * d.Scale)
	h := int32(float64(ppu.ScreenHeight) * d.Scale)

	window, err := sdl.CreateWindow("fpgaboy", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, w, h, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("sdl: create window: %w", err)
	}
	d.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("sdl: create renderer: %w", err)
	}
	d.renderer = renderer

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGB24, sdl.TEXTUREACCESS_STREAMING, ppu.ScreenWidth, ppu.ScreenHeight)
	if err != nil {
		return fmt.Errorf("sdl: create texture: %w", err)
	}
	d.texture = texture

	pixels := make([]byte, ppu.ScreenWidth*ppu.ScreenHeight*3)
	pollTicker := time.NewTicker(16 * time.Millisecond)
	defer pollTicker.Stop()

	for {
		select {
		case <-quit:
			return nil
		case frame := <-fb:
			for y := 0; y < ppu.ScreenHeight; y++ {
				for x := 0; x < ppu.ScreenWidth; x++ {
					i := (y*ppu.ScreenWidth + x) * 3
					px := frame[y][x]
					pixels[i], pixels[i+1], pixels[i+2] = px[0], px[1], px[2]
				}
			}
			if err := d.texture.Update(nil, pixels, ppu.ScreenWidth*3); err != nil {
				d.log.Errorf("sdl: update texture: %v", err)
				continue
			}
			d.renderer.Copy(d.texture, nil, nil)
			d.renderer.Present()
		case <-pollTicker.C:
			for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
				if _, ok := e.(*sdl.QuitEvent); ok {
					events <- event.Event{Type: event.Quit}
					return nil
				}
			}
		}
	}
}

// Stop tears down the SDL2 window and renderer.
func (d *Driver) Stop() error {
	if d.texture != nil {
		d.texture.Destroy()
	}
	if d.renderer != nil {
		d.renderer.Destroy()
	}
	if d.window != nil {
		d.window.Destroy()
	}
	sdl.Quit()
	return nil
}
