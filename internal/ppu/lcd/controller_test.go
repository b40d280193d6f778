package lcd

import "testing"

func TestDecode(t *testing.T) {
	// 1111_1111: everything on, tall sprites, unsigned addressing.
	c := Decode(0xFF)
	if !c.Enabled || !c.WindowMap || !c.WindowEnabled || !c.AddrMode || !c.BGMap || !c.TallSprites || !c.SpriteEnabled || !c.BGWinEnabled {
		t.Fatalf("Decode(0xFF) = %+v, want every field true", c)
	}

	c = Decode(0x00)
	if c.Enabled || c.WindowMap || c.WindowEnabled || c.AddrMode || c.BGMap || c.TallSprites || c.SpriteEnabled || c.BGWinEnabled {
		t.Fatalf("Decode(0x00) = %+v, want every field false", c)
	}
}

func TestSpriteHeight(t *testing.T) {
	if h := Decode(0x00).SpriteHeight(); h != 8 {
		t.Errorf("SpriteHeight() = %d, want 8", h)
	}
	if h := Decode(0x04).SpriteHeight(); h != 16 {
		t.Errorf("SpriteHeight() = %d, want 16", h)
	}
}

func TestMapBases(t *testing.T) {
	low := Decode(0x00)
	if low.BGMapBase() != 0x9800 || low.WindowMapBase() != 0x9800 {
		t.Fatalf("expected both maps at 0x9800 when bits clear, got bg=%#x win=%#x", low.BGMapBase(), low.WindowMapBase())
	}

	high := Decode(0x08 | 0x40)
	if high.BGMapBase() != 0x9C00 || high.WindowMapBase() != 0x9C00 {
		t.Fatalf("expected both maps at 0x9C00 when bits set, got bg=%#x win=%#x", high.BGMapBase(), high.WindowMapBase())
	}
}
