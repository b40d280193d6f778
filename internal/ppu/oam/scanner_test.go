package oam

import "testing"

type fakeOAM [160]uint8

func (m *fakeOAM) Peek(addr uint16) uint8 {
	return m[addr-0xFE00]
}

func (m *fakeOAM) setEntry(index int, y, x uint8) {
	m[index*4] = y
	m[index*4+1] = x
}

func runScan(t *testing.T, mem *fakeOAM, lyPlus uint16, height uint8) *Scanner {
	t.Helper()
	s := NewScanner()
	for tick := uint8(0); tick < 80; tick++ {
		s.Step(tick, mem, lyPlus, height)
	}
	return s
}

func TestScannerFindsQualifyingSprite(t *testing.T) {
	var mem fakeOAM
	mem.setEntry(0, 16, 50) // qualifies for LY=0 at height 8 (lyPlus=16)

	s := runScan(t, &mem, 16, 8)
	buf := s.Buffer()
	if len(buf) != 1 {
		t.Fatalf("buffer = %+v, want 1 entry", buf)
	}
	if buf[0].X != 50 || buf[0].OAMIndex != 0 {
		t.Errorf("entry = %+v, want X=50 OAMIndex=0", buf[0])
	}
}

func TestScannerSkipsXZero(t *testing.T) {
	var mem fakeOAM
	mem.setEntry(0, 16, 0) // off-screen X, must not be buffered

	s := runScan(t, &mem, 16, 8)
	if len(s.Buffer()) != 0 {
		t.Fatalf("buffer = %+v, want empty", s.Buffer())
	}
}

func TestScannerSkipsOutOfRange(t *testing.T) {
	var mem fakeOAM
	mem.setEntry(0, 100, 50) // far below the scanline

	s := runScan(t, &mem, 16, 8)
	if len(s.Buffer()) != 0 {
		t.Fatalf("buffer = %+v, want empty", s.Buffer())
	}
}

func TestScannerCapsAtTenEntries(t *testing.T) {
	var mem fakeOAM
	for i := 0; i < 40; i++ {
		mem.setEntry(i, 16, uint8(i+1))
	}

	s := runScan(t, &mem, 16, 8)
	if len(s.Buffer()) != Capacity {
		t.Fatalf("buffer len = %d, want %d", len(s.Buffer()), Capacity)
	}
	for i, e := range s.Buffer() {
		if int(e.OAMIndex) != i {
			t.Errorf("entry %d has OAMIndex %d, want %d (OAM order preserved)", i, e.OAMIndex, i)
		}
	}
}

func TestScannerResetClearsBuffer(t *testing.T) {
	var mem fakeOAM
	mem.setEntry(0, 16, 50)

	s := runScan(t, &mem, 16, 8)
	if len(s.Buffer()) == 0 {
		t.Fatal("expected a qualifying entry before reset")
	}
	s.Reset()
	if len(s.Buffer()) != 0 {
		t.Fatalf("buffer after reset = %+v, want empty", s.Buffer())
	}
}

func TestScannerAddressSequence(t *testing.T) {
	var mem fakeOAM
	s := NewScanner()

	addr, valid := s.Step(0, &mem, 16, 8)
	if !valid || addr != 0xFE00 {
		t.Fatalf("t=0: addr=%#x valid=%v, want 0xFE00/true", addr, valid)
	}
	addr, valid = s.Step(1, &mem, 16, 8)
	if !valid || addr != 0xFE01 {
		t.Fatalf("t=1: addr=%#x valid=%v, want 0xFE01/true", addr, valid)
	}
	addr, valid = s.Step(2, &mem, 16, 8)
	if !valid || addr != 0xFE04 {
		t.Fatalf("t=2: addr=%#x valid=%v, want 0xFE04/true", addr, valid)
	}
}
