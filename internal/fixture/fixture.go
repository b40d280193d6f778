// Package fixture loads golden-frame fixtures for end-to-end scenario
// tests. Fixtures are raw RGB dumps (ScreenWidth*ScreenHeight*3 bytes, row
// major) matching capture.Frame's layout. They're memory-mapped rather than
// read into a fresh buffer each run, since the same fixture is typically
// reopened across many test cases in a single run.
package fixture

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/SuperC03/fpgaboy/internal/ppu"
	"github.com/SuperC03/fpgaboy/internal/ppu/capture"
)

// Golden is a memory-mapped golden frame. Close must be called once the
// caller is done comparing against it.
type Golden struct {
	file *os.File
	data mmap.MMap
}

const frameBytes = ppu.ScreenHeight * ppu.ScreenWidth * 3

// Load memory-maps the raw RGB fixture at path.
func Load(path string) (*Golden, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("fixture: stat %s: %w", path, err)
	}
	if info.Size() != frameBytes {
		f.Close()
		return nil, fmt.Errorf("fixture: %s is %d bytes, want %d", path, info.Size(), frameBytes)
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("fixture: mmap %s: %w", path, err)
	}

	return &Golden{file: f, data: data}, nil
}

// Frame decodes the mapped bytes into a capture.Frame.
func (g *Golden) Frame() capture.Frame {
	var frame capture.Frame
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			i := (y*ppu.ScreenWidth + x) * 3
			frame[y][x] = [3]uint8{g.data[i], g.data[i+1], g.data[i+2]}
		}
	}
	return frame
}

// Close unmaps the fixture and releases its file handle.
func (g *Golden) Close() error {
	if err := g.data.Unmap(); err != nil {
		g.file.Close()
		return fmt.Errorf("fixture: unmap: %w", err)
	}
	return g.file.Close()
}
