package sprite

import (
	"testing"

	"github.com/SuperC03/fpgaboy/internal/types"
)

type fakeOAM [160]uint8

func (m *fakeOAM) Peek(addr uint16) uint8 {
	return m[addr-types.OAMBase]
}

func TestFetcherStaysPausedWithoutHit(t *testing.T) {
	f := New()
	out := f.Step(Inputs{MemFree: true})
	if out.Active {
		t.Fatal("no hit: fetcher should remain paused")
	}
	if f.Phase != Pause {
		t.Fatalf("phase = %v, want Pause", f.Phase)
	}
}

func TestFetcherWaitsForMemFree(t *testing.T) {
	f := New()
	hit := &Object{X: 20, OAMIndex: 0, Row: 3}
	out := f.Step(Inputs{Hit: hit, MemFree: false})
	if out.Active {
		t.Fatal("hit present but memory busy: fetcher should not start")
	}
}

func TestFetcherFullFetchProducesRow(t *testing.T) {
	var mem fakeOAM
	mem[2] = 7          // tile number
	mem[3] = 0          // flags: no flip, palette 0, no priority
	hit := &Object{X: 20, OAMIndex: 0, Row: 2}

	f := New()

	// Pause -> FetchTileNum
	out := f.Step(Inputs{Hit: hit, MemFree: true, OAM: &mem})
	if !out.Active || f.Phase != FetchTileNum {
		t.Fatalf("tick1: out=%+v phase=%v, want active FetchTileNum", out, f.Phase)
	}

	// FetchTileNum issues the tile-number address, then resolves the tile
	// number and attribute byte via Peek.
	in := Inputs{OAM: &mem, TallSprites: false}
	out = f.Step(in)
	if !out.AddrValid {
		t.Fatalf("tick2: expected an address request")
	}
	out = f.Step(in)
	if f.Phase != FetchTileDataLow {
		t.Fatalf("tick3: phase = %v, want FetchTileDataLow", f.Phase)
	}
	wantRowBase := uint16(0x8000) + uint16(7)<<4
	if f.rowBase != wantRowBase {
		t.Fatalf("rowBase = %#x, want %#x", f.rowBase, wantRowBase)
	}

	// FetchTileDataLow
	out = f.Step(in)
	if !out.AddrValid || out.AddrOut != wantRowBase+uint16(2)*2 {
		t.Fatalf("tick4: addr = %#x valid=%v", out.AddrOut, out.AddrValid)
	}
	in.MemData, in.MemValid = 0x0F, true
	out = f.Step(in)
	if f.Phase != FetchTileDataHigh {
		t.Fatalf("tick5: phase = %v, want FetchTileDataHigh", f.Phase)
	}

	// FetchTileDataHigh
	out = f.Step(in)
	if !out.AddrValid || out.AddrOut != wantRowBase+uint16(2)*2+1 {
		t.Fatalf("tick6: addr = %#x valid=%v", out.AddrOut, out.AddrValid)
	}
	in.MemData, in.MemValid = 0xF0, true
	out = f.Step(in)
	if f.Phase != Push2FIFO {
		t.Fatalf("tick7: phase = %v, want Push2FIFO", f.Phase)
	}

	// Push2FIFO
	out = f.Step(in)
	if !out.PushValid {
		t.Fatal("tick8: expected a pushed row")
	}
	// low=0x0F=00001111, high=0xF0=11110000: bit7..0 pairs give colors
	// 2,2,2,2,1,1,1,1 (no flip, so bit index runs 7 downto 0 left to right).
	want := [8]Entry{
		{Color: 2}, {Color: 2}, {Color: 2}, {Color: 2},
		{Color: 1}, {Color: 1}, {Color: 1}, {Color: 1},
	}
	if out.PushRow != want {
		t.Fatalf("row = %+v, want %+v", out.PushRow, want)
	}
	if f.Phase != Pause {
		t.Fatalf("phase after push = %v, want Pause", f.Phase)
	}
}

func TestRowNumberFlipping(t *testing.T) {
	if got := rowNumber(2, false, false); got != 2 {
		t.Errorf("8px no-flip: got %d, want 2", got)
	}
	if got := rowNumber(2, true, false); got != 5 {
		t.Errorf("8px flip: got %d, want 5", got)
	}
	if got := rowNumber(2, false, true); got != 2 {
		t.Errorf("16px no-flip: got %d, want 2", got)
	}
	if got := rowNumber(2, true, true); got != 13 {
		t.Errorf("16px flip: got %d, want 13", got)
	}
}

func TestDecodeFlags(t *testing.T) {
	f := decodeFlags(0xF0)
	if !f.PaletteSelect || !f.FlipX || !f.FlipY || !f.Priority {
		t.Fatalf("decodeFlags(0xF0) = %+v, want all four set", f)
	}
	f = decodeFlags(0x00)
	if f.PaletteSelect || f.FlipX || f.FlipY || f.Priority {
		t.Fatalf("decodeFlags(0x00) = %+v, want all four clear", f)
	}
}
