package fixture

import (
	"os"
	"path/filepath"
	"testing"
)

func writeGolden(t *testing.T, fill func(i int) byte) string {
	t.Helper()
	buf := make([]byte, frameBytes)
	for i := range buf {
		buf[i] = fill(i)
	}
	path := filepath.Join(t.TempDir(), "golden.rgb")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadAndFrameRoundTrip(t *testing.T) {
	path := writeGolden(t, func(i int) byte { return byte(i % 251) })

	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer g.Close()

	frame := g.Frame()
	// Pixel (0,1): bytes at offset (0*160+1)*3 = 3,4,5.
	want := [3]byte{byte(3 % 251), byte(4 % 251), byte(5 % 251)}
	got := frame[0][1]
	if got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Fatalf("frame[0][1] = %v, want %v", got, want)
	}
}

func TestLoadRejectsWrongSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.rgb")
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a fixture of the wrong size")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.rgb")); err == nil {
		t.Fatal("expected an error for a missing fixture")
	}
}

func TestCloseUnmapsAndClosesFile(t *testing.T) {
	path := writeGolden(t, func(i int) byte { return 0 })
	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := g.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
