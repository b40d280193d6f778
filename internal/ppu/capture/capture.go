// Package capture assembles the PPU's palettized pixel stream into RGB
// frames and encodes them as PNG, for golden-image scenario tests.
package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"github.com/SuperC03/fpgaboy/internal/ppu"
	"github.com/SuperC03/fpgaboy/internal/ppu/palette"
)

// Frame is one assembled 160x144 RGB frame.
type Frame [ppu.ScreenHeight][ppu.ScreenWidth][3]uint8

// Assembler is a ppu.PixelSink that collects one frame at a time. Pixel
// must be called exactly ppu.ScreenWidth*ppu.ScreenHeight times between
// consecutive VBlank(true) calls, matching the raster order the PPU core
// produces.
type Assembler struct {
	frame Frame
	x, y  int
	Done  chan Frame
}

// NewAssembler returns an Assembler that delivers each completed frame on
// Done. Done is buffered so the PPU never blocks waiting for a consumer;
// callers that fall behind only see the most recent frame.
func NewAssembler() *Assembler {
	return &Assembler{Done: make(chan Frame, 1)}
}

// Pixel implements ppu.PixelSink.
func (a *Assembler) Pixel(colorIndex uint8) {
	if a.y >= ppu.ScreenHeight {
		return
	}
	a.frame[a.y][a.x] = palette.GetColour(colorIndex)
	a.x++
	if a.x == ppu.ScreenWidth {
		a.x = 0
		a.y++
	}
}

// HBlank implements ppu.PixelSink; the assembler doesn't act on it.
func (a *Assembler) HBlank(bool) {}

// VBlank implements ppu.PixelSink: on the rising edge, the completed
// frame is delivered and the cursor resets for the next one.
func (a *Assembler) VBlank(active bool) {
	if !active {
		return
	}
	select {
	case <-a.Done:
	default:
	}
	a.Done <- a.frame
	a.x, a.y = 0, 0
}

// EncodePNG renders f as a PNG image, matching what a golden-frame
// fixture on disk contains.
func EncodePNG(f Frame) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			c := f[y][x]
			img.Set(x, y, color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xFF})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("capture: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// WritePNG encodes f and writes it to w.
func WritePNG(w io.Writer, f Frame) error {
	data, err := EncodePNG(f)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Upscale renders f at scale*160 x scale*144 using nearest-neighbor
// interpolation, preserving hard pixel edges the way the display drivers
// want when the user's window is larger than the native resolution.
func Upscale(f Frame, scale int) *image.RGBA {
	src := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			c := f[y][x]
			src.Set(x, y, color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xFF})
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth*scale, ppu.ScreenHeight*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// Diff reports the number of differing pixels between two frames and the
// coordinates of the first mismatch, for golden-frame assertions that
// want to report where a render diverged rather than just that it did.
func Diff(got, want Frame) (mismatches int, firstX, firstY int) {
	firstX, firstY = -1, -1
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			if got[y][x] != want[y][x] {
				if firstX == -1 {
					firstX, firstY = x, y
				}
				mismatches++
			}
		}
	}
	return mismatches, firstX, firstY
}
