package palette

import "testing"

func TestResolve(t *testing.T) {
	// BGP = 0b11_10_01_00: index 0 -> 0, 1 -> 1, 2 -> 2, 3 -> 3
	identity := uint8(0b11_10_01_00)
	for i := uint8(0); i < 4; i++ {
		if got := Resolve(identity, i); got != i {
			t.Errorf("Resolve(identity, %d) = %d, want %d", i, got, i)
		}
	}

	// A palette that maps every index to shade 3.
	allBlack := uint8(0xFF)
	for i := uint8(0); i < 4; i++ {
		if got := Resolve(allBlack, i); got != 3 {
			t.Errorf("Resolve(allBlack, %d) = %d, want 3", i, got)
		}
	}
}
