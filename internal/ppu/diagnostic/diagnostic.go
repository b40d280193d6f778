// Package diagnostic renders a recorded mode-per-tick trace as a
// dot-budget timeline, for debugging cycle-count regressions against the
// 456x154 per-frame budget spec.md §8 requires the scheduler to hold to.
package diagnostic

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/SuperC03/fpgaboy/internal/ppu/lcd"
)

// Trace is one frame's worth of sampled modes, one entry per T-cycle
// (456*154 = 70224 entries for a complete frame).
type Trace []lcd.Mode

// Recorder is a ppu.PixelSink-adjacent collaborator: call Sample once per
// Core.Step call with Core.Mode() to build up a Trace.
type Recorder struct {
	trace Trace
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Sample appends the PPU's current mode to the trace.
func (r *Recorder) Sample(m lcd.Mode) {
	r.trace = append(r.trace, m)
}

// Trace returns the samples recorded so far.
func (r *Recorder) Trace() Trace {
	return r.trace
}

// modeLevel maps a mode to the Y value plotted for it, ordered so the
// timeline reads OAMScan/Draw/HBlank low-to-high within a scanline and
// VBlank sits visibly apart above them.
func modeLevel(m lcd.Mode) float64 {
	switch m {
	case lcd.OAMScan:
		return 0
	case lcd.Draw:
		return 1
	case lcd.HBlank:
		return 2
	case lcd.VBlank:
		return 3
	default:
		return -1
	}
}

// RenderPNG draws t as a step plot of mode-vs-T-cycle and returns the
// encoded PNG bytes.
func RenderPNG(t Trace, width, height vg.Length) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "PPU mode timeline"
	p.X.Label.Text = "T-cycle"
	p.Y.Label.Text = "mode (0=OAMScan 1=Draw 2=HBlank 3=VBlank)"

	pts := make(plotter.XYs, len(t))
	for i, m := range t {
		pts[i].X = float64(i)
		pts[i].Y = modeLevel(m)
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("diagnostic: build line: %w", err)
	}
	p.Add(line)

	var buf bytes.Buffer
	writer, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, fmt.Errorf("diagnostic: build writer: %w", err)
	}
	if _, err := writer.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("diagnostic: render: %w", err)
	}
	return buf.Bytes(), nil
}

// FrameDots is the exact per-frame T-cycle budget spec.md §8 requires:
// 456 dots per scanline across all 154 scanlines.
const FrameDots = 456 * 154

// DotBudgetViolations reports the starting index of every complete
// FrameDots-sized window in t whose mode sequence doesn't begin with
// OAMScan, which is the cheapest signal that a scheduler regression has
// drifted the mode boundaries off the expected per-line budget.
func DotBudgetViolations(t Trace) []int {
	var violations []int
	for start := 0; start+FrameDots <= len(t); start += FrameDots {
		if t[start] != lcd.OAMScan {
			violations = append(violations, start)
		}
	}
	return violations
}
