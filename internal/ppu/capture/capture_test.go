package capture

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/SuperC03/fpgaboy/internal/ppu"
	"github.com/SuperC03/fpgaboy/internal/ppu/palette"
)

func TestAssemblerDeliversFrameOnVBlank(t *testing.T) {
	a := NewAssembler()

	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			a.Pixel(uint8((x + y) % 4))
		}
	}
	a.VBlank(true)

	select {
	case f := <-a.Done:
		want := palette.GetColour(uint8((10 + 3) % 4))
		if f[10][3] != want {
			t.Fatalf("frame[10][3] = %v, want %v", f[10][3], want)
		}
	default:
		t.Fatal("expected a completed frame on Done")
	}
}

func TestAssemblerCursorResetsAfterVBlank(t *testing.T) {
	a := NewAssembler()
	for i := 0; i < ppu.ScreenWidth*ppu.ScreenHeight; i++ {
		a.Pixel(0)
	}
	a.VBlank(true)
	<-a.Done

	if a.x != 0 || a.y != 0 {
		t.Fatalf("cursor after VBlank = (%d,%d), want (0,0)", a.x, a.y)
	}
}

func TestAssemblerDropsExcessPixels(t *testing.T) {
	a := NewAssembler()
	for i := 0; i < ppu.ScreenWidth*ppu.ScreenHeight+100; i++ {
		a.Pixel(1)
	}
	if a.y < ppu.ScreenHeight {
		t.Fatalf("y = %d, want >= %d after overrunning a frame", a.y, ppu.ScreenHeight)
	}
}

func TestEncodePNGRoundTrips(t *testing.T) {
	var f Frame
	f[0][0] = [3]uint8{10, 20, 30}

	data, err := EncodePNG(f)
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	r, g, b, _ := img.At(0, 0).RGBA()
	if uint8(r>>8) != 10 || uint8(g>>8) != 20 || uint8(b>>8) != 30 {
		t.Fatalf("decoded pixel = (%d,%d,%d), want (10,20,30)", r>>8, g>>8, b>>8)
	}
}

func TestUpscaleProducesScaledBounds(t *testing.T) {
	var f Frame
	img := Upscale(f, 3)
	wantW, wantH := ppu.ScreenWidth*3, ppu.ScreenHeight*3
	if b := img.Bounds(); b.Dx() != wantW || b.Dy() != wantH {
		t.Fatalf("bounds = %v, want %dx%d", b, wantW, wantH)
	}
}

func TestDiffCountsMismatchesAndFirstCoordinate(t *testing.T) {
	var a, b Frame
	a[5][7] = [3]uint8{1, 1, 1}
	a[5][8] = [3]uint8{1, 1, 1}

	mismatches, x, y := Diff(a, b)
	if mismatches != 2 {
		t.Fatalf("mismatches = %d, want 2", mismatches)
	}
	if x != 7 || y != 5 {
		t.Fatalf("first mismatch = (%d,%d), want (7,5)", x, y)
	}
}

func TestAssemblerFrameMatchesExpectedPixelLayout(t *testing.T) {
	a := NewAssembler()
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			a.Pixel(uint8(x % 4))
		}
	}
	a.VBlank(true)
	got := <-a.Done

	var want Frame
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			want[y][x] = palette.GetColour(uint8(x % 4))
		}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("assembled frame mismatch (-want +got):\n%s", diff)
	}
}

func TestDiffIdenticalFrames(t *testing.T) {
	var a, b Frame
	mismatches, x, y := Diff(a, b)
	if mismatches != 0 || x != -1 || y != -1 {
		t.Fatalf("identical frames: mismatches=%d x=%d y=%d, want 0/-1/-1", mismatches, x, y)
	}
}
