// Package ppu implements the Game Boy's Pixel Processing Unit: the
// OAMScan/Draw/HBlank/VBlank mode scheduler, OAM scanning, background and
// sprite pixel fetching, the two pixel FIFOs, and the priority mixer
// described in spec.md.
package ppu

import (
	"github.com/SuperC03/fpgaboy/internal/memory"
	"github.com/SuperC03/fpgaboy/internal/ppu/background"
	"github.com/SuperC03/fpgaboy/internal/ppu/fifo"
	"github.com/SuperC03/fpgaboy/internal/ppu/lcd"
	"github.com/SuperC03/fpgaboy/internal/ppu/mixer"
	"github.com/SuperC03/fpgaboy/internal/ppu/oam"
	"github.com/SuperC03/fpgaboy/internal/ppu/sprite"
	"github.com/SuperC03/fpgaboy/pkg/log"
)

// ScreenWidth and ScreenHeight are the visible raster dimensions.
const (
	ScreenWidth  = 160
	ScreenHeight = 144
)

// Per-scanline timing budget, per spec.md §3/§8.
const (
	oamScanEnd    = 79
	dotsPerLine   = 456
	linesPerFrame = 154
	lastVisible   = 143
)

// PixelSink is the display collaborator: it receives one palettized
// pixel per Draw cycle in raster order, plus level signals for HBlank
// and VBlank.
type PixelSink interface {
	Pixel(color uint8)
	HBlank(active bool)
	VBlank(active bool)
}

// nullSink discards everything; used when a harness doesn't care about
// output (e.g. timing-only tests).
type nullSink struct{}

func (nullSink) Pixel(uint8)    {}
func (nullSink) HBlank(bool)    {}
func (nullSink) VBlank(bool)    {}

// Core is the top-level PPU: the mode scheduler plus every child
// component it drives.
type Core struct {
	mem memory.MemoryPort
	reg memory.RegisterFile
	sink PixelSink
	log  log.Logger

	mode    lcd.Mode
	ly      uint8
	x       uint8
	t       uint16
	wyLatch bool

	hblank, vblank bool

	scanner *oam.Scanner
	bg      *background.Fetcher
	obj     *sprite.Fetcher
	bgFIFO  *fifo.Background
	objFIFO *fifo.Sprite
	mix     mixer.Mixer

	fetched []bool

	Debug struct {
		BackgroundDisabled bool
		WindowDisabled     bool
		ObjectsDisabled    bool
	}
}

// New returns a Core wired to mem for VRAM/OAM reads and reg for the
// scroll/palette/window registers. sink and logger may be nil, in which
// case output is discarded and logging is silenced.
func New(mem memory.MemoryPort, reg memory.RegisterFile, sink PixelSink, logger log.Logger) *Core {
	if sink == nil {
		sink = nullSink{}
	}
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &Core{
		mem:     mem,
		reg:     reg,
		sink:    sink,
		log:     logger,
		mode:    lcd.OAMScan,
		scanner: oam.NewScanner(),
		bg:      background.New(),
		obj:     sprite.New(),
		bgFIFO:  fifo.NewBackground(),
		objFIFO: fifo.NewSprite(),
	}
}

// Reset reinitializes the PPU to the state it has at power-on: mode
// OAMScan, LY=0, every counter and buffer cleared. Two consecutive
// resets are equal to one.
func (c *Core) Reset() {
	c.mode = lcd.OAMScan
	c.ly, c.x, c.t = 0, 0, 0
	c.wyLatch = false
	c.hblank, c.vblank = false, false
	c.scanner.Reset()
	c.bg.Reset()
	c.obj.Reset()
	c.bgFIFO.Clear()
	c.objFIFO.Clear()
	c.fetched = nil
}

// LY returns the current scanline, 0-153.
func (c *Core) LY() uint8 { return c.ly }

// STAT returns the STAT register value for the current mode and LYC
// coincidence.
func (c *Core) STAT() uint8 {
	return lcd.Status(c.mode, c.ly == c.reg.LYC())
}

// Mode returns the PPU's current mode.
func (c *Core) Mode() lcd.Mode { return c.mode }

// X returns the draw cursor, 0-159. Only meaningful during Draw.
func (c *Core) X() uint8 { return c.x }

// OAMBuffer returns the sprites the scanner has buffered for the current
// scanline, in OAM order. Exposed for debug tooling (pkg/display/fyne's
// live OAM view); the mixer/fetchers read the scanner directly instead.
func (c *Core) OAMBuffer() []oam.Entry {
	return c.scanner.Buffer()
}

// FIFOOccupancy returns how many pixels are currently queued in the
// background and sprite FIFOs, for debug tooling.
func (c *Core) FIFOOccupancy() (bg, obj int) {
	return c.bgFIFO.Size, c.objFIFO.Size
}

// peeker is satisfied by a MemoryPort that also offers a combinational
// read, for the OAM scanner and sprite fetcher's attribute reads.
type peeker interface {
	Peek(addr uint16) uint8
}

// Step advances the PPU by exactly one T-cycle: the memory map's
// one-cycle-delayed data for the request issued last tick is sampled
// first, the child active in the current mode issues this tick's request
// (and in Draw a pixel may be emitted), then the memory map is ticked and
// the remaining mode transitions are evaluated.
func (c *Core) Step() {
	memData, memValid := c.mem.Data()
	lcdc := lcd.Decode(c.reg.LCDC())

	if c.mode != lcd.VBlank && c.reg.WY() == c.ly {
		c.wyLatch = true
	}

	switch c.mode {
	case lcd.OAMScan:
		c.stepOAMScan(lcdc)
	case lcd.Draw:
		c.stepDraw(lcdc, memData, memValid)
	case lcd.HBlank, lcd.VBlank:
		c.mem.RequestRead(0, false)
	}

	c.advanceTime()
}

func (c *Core) stepOAMScan(lcdc lcd.Controller) {
	p, ok := c.mem.(peeker)
	if !ok {
		p = noopPeeker{}
	}
	lyPlus := uint16(c.ly) + 16
	addr, valid := c.scanner.Step(uint8(c.t), p, lyPlus, lcdc.SpriteHeight())
	c.mem.RequestRead(addr, valid)
}

type noopPeeker struct{}

func (noopPeeker) Peek(uint16) uint8 { return 0xFF }

func (c *Core) stepDraw(lcdc lcd.Controller, memData uint8, memValid bool) {
	insideWindow := !c.Debug.WindowDisabled &&
		lcdc.WindowEnabled && c.wyLatch && uint16(c.x)+7 >= uint16(c.reg.WX())

	bgBusyBefore := c.bg.Phase != background.Pause
	hit, hitIdx := c.findHit(lcdc)
	spriteActiveThisTick := c.obj.Phase != sprite.Pause || hit != nil

	bgOut := c.bg.Step(background.Inputs{
		MemData:      memData,
		MemValid:     memValid,
		LCDC:         lcdc,
		SCX:          c.reg.SCX(),
		SCY:          c.reg.SCY(),
		WY:           c.reg.WY(),
		LY:           c.ly,
		InsideWindow: insideWindow,
		SpriteActive: spriteActiveThisTick,
		FIFOReady:    c.bgFIFO.Ready(),
	})
	if bgOut.PushValid && !c.Debug.BackgroundDisabled {
		c.bgFIFO.PushRow(bgOut.PushRow)
	} else if bgOut.PushValid {
		c.bgFIFO.PushRow([8]uint8{})
	}

	p, ok := c.mem.(peeker)
	if !ok {
		p = noopPeeker{}
	}
	objWasPaused := c.obj.Phase == sprite.Pause
	objOut := c.obj.Step(sprite.Inputs{
		MemData:     memData,
		MemValid:    memValid,
		OAM:         p,
		TallSprites: lcdc.TallSprites,
		Hit:         hit,
		MemFree:     !bgBusyBefore,
	})
	if objOut.PushValid && !c.Debug.ObjectsDisabled {
		c.objFIFO.PushRow(objOut.PushRow)
	}
	if objWasPaused && c.obj.Phase != sprite.Pause && hitIdx >= 0 {
		c.fetched[hitIdx] = true
	}

	route := mixer.Arbitrate(bgOut.Busy, objOut.Active)
	switch route {
	case mixer.RouteBackground:
		c.mem.RequestRead(bgOut.AddrOut, bgOut.AddrValid)
	case mixer.RouteSprite:
		c.mem.RequestRead(objOut.AddrOut, objOut.AddrValid)
	default:
		c.mem.RequestRead(0, false)
	}

	result := c.mix.Step(c.bgFIFO, c.objFIFO, lcdc.Enabled, c.obj.Phase != sprite.Pause, lcdc.BGWinEnabled,
		c.reg.BGP(), c.reg.OBP0(), c.reg.OBP1())
	if result.Valid {
		c.sink.Pixel(result.Pixel)
		if c.x == ScreenWidth-1 {
			c.enterHBlank()
		} else {
			c.x++
		}
	}
}

// findHit returns the lowest-index buffered sprite whose X matches the
// draw cursor and hasn't been fetched yet this scanline, per spec.md
// §4.4.
func (c *Core) findHit(lcdc lcd.Controller) (*sprite.Object, int) {
	if c.Debug.ObjectsDisabled || !lcdc.SpriteEnabled {
		return nil, -1
	}
	for i, e := range c.scanner.Buffer() {
		if c.fetched[i] {
			continue
		}
		if e.X > 0 && uint16(e.X) <= uint16(c.x)+8 {
			return &sprite.Object{X: e.X, OAMIndex: e.OAMIndex, Row: e.Row}, i
		}
	}
	return nil, -1
}

func (c *Core) advanceTime() {
	c.mem.Tick()

	switch {
	case c.mode == lcd.OAMScan && c.t == oamScanEnd:
		c.mode = lcd.Draw
		c.bgFIFO.Clear()
		c.objFIFO.Clear()
		c.bg.Reset()
		c.obj.Reset()
		c.fetched = make([]bool, len(c.scanner.Buffer()))
	case c.t == dotsPerLine-1:
		switch c.mode {
		case lcd.HBlank:
			if c.ly == lastVisible {
				c.ly++
				c.enterVBlank()
			} else {
				c.ly++
				c.mode = lcd.OAMScan
				c.x = 0
				c.scanner.Reset()
				if c.hblank {
					c.hblank = false
					c.sink.HBlank(false)
				}
			}
		case lcd.VBlank:
			if c.ly == linesPerFrame-1 {
				c.ly = 0
				c.mode = lcd.OAMScan
				c.x = 0
				c.scanner.Reset()
				if c.vblank {
					c.vblank = false
					c.sink.VBlank(false)
				}
			} else {
				c.ly++
			}
		}
	}

	c.t++
	if c.t == dotsPerLine {
		c.t = 0
	}
}

func (c *Core) enterHBlank() {
	c.mode = lcd.HBlank
	if !c.hblank {
		c.hblank = true
		c.sink.HBlank(true)
	}
}

func (c *Core) enterVBlank() {
	c.mode = lcd.VBlank
	c.wyLatch = false
	if c.hblank {
		c.hblank = false
		c.sink.HBlank(false)
	}
	if !c.vblank {
		c.vblank = true
		c.sink.VBlank(true)
	}
}
