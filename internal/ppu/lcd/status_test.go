package lcd

import "testing"

func TestStatus(t *testing.T) {
	cases := []struct {
		mode        Mode
		coincidence bool
		want        uint8
	}{
		{HBlank, false, 0x80},
		{VBlank, false, 0x81},
		{OAMScan, false, 0x82},
		{Draw, false, 0x83},
		{HBlank, true, 0x84},
		{Draw, true, 0x87},
	}

	for _, c := range cases {
		if got := Status(c.mode, c.coincidence); got != c.want {
			t.Errorf("Status(%d, %v) = %#x, want %#x", c.mode, c.coincidence, got, c.want)
		}
	}
}
