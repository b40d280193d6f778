// Package glfw implements a windowed display.Driver using GLFW and the
// OpenGL API, for platforms where SDL2 isn't available.
package glfw

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/SuperC03/fpgaboy/internal/ppu"
	"github.com/SuperC03/fpgaboy/pkg/display"
	"github.com/SuperC03/fpgaboy/pkg/display/event"
)

const aspectRatio = float32(ppu.ScreenWidth) / float32(ppu.ScreenHeight)

func init() {
	runtime.LockOSThread()

	driver := &Driver{scale: 4}
	display.Install("glfw", driver, []display.DriverOption{
		{
			Name:        "fullscreen",
			Default:     false,
			Value:       &driver.fullscreen,
			Type:        "bool",
			Description: "Run in fullscreen mode",
		},
		{
			Name:        "scale",
			Default:     4.0,
			Value:       &driver.scale,
			Type:        "float",
			Description: "Scale the window by this factor",
		},
	})
}

// Driver is a display.Driver that presents frames in a GLFW/OpenGL window.
type Driver struct {
	fullscreen bool
	scale      float64

	window  *glfw.Window
	texture uint32
}

// Start opens the GLFW window and runs its draw loop until quit closes or
// the window is asked to close.
func (d *Driver) Start(fb <-chan [ppu.ScreenHeight][ppu.ScreenWidth][3]uint8, events chan<- event.Event, quit <-chan struct{}) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw: init: %w", err)
	}
	defer glfw.Terminate()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("glfw: gl init: %w", err)
	}

	width := int(float64(ppu.ScreenWidth) * d.scale)
	height := int(float64(ppu.ScreenHeight) * d.scale)

	window, err := glfw.CreateWindow(width, height, "fpgaboy", nil, nil)
	if err != nil {
		return fmt.Errorf("glfw: create window: %w", err)
	}
	d.window = window
	window.MakeContextCurrent()

	if d.fullscreen {
		mon := glfw.GetPrimaryMonitor()
		mode := mon.GetVideoMode()
		window.SetMonitor(mon, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	}

	gl.GenTextures(1, &d.texture)
	gl.BindTexture(gl.TEXTURE_2D, d.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)

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

			gl.Clear(gl.COLOR_BUFFER_BIT)
			gl.BindTexture(gl.TEXTURE_2D, d.texture)
			gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB, ppu.ScreenWidth, ppu.ScreenHeight, 0, gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
			window.SwapBuffers()
		case <-pollTicker.C:
			glfw.PollEvents()
			if window.ShouldClose() {
				events <- event.Event{Type: event.Quit}
				return nil
			}
		}
	}
}

// Stop destroys the GLFW window.
func (d *Driver) Stop() error {
	if d.window != nil {
		d.window.Destroy()
	}
	return nil
}
