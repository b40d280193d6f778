// Command ppuview is a harness binary that owns a memory map, a PPU core,
// and a display driver, and pumps T-cycles as fast as it can, pausing
// only to hand each completed frame to the driver. It
// exists to exercise the PPU core end-to-end and isn't a full Game Boy -
// there's no CPU, and VRAM/OAM must be populated externally (e.g. from a
// test fixture) before anything interesting appears on screen.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/sync/errgroup"

	_ "github.com/SuperC03/fpgaboy/pkg/display/glfw"
	_ "github.com/SuperC03/fpgaboy/pkg/display/sdl"
	_ "github.com/SuperC03/fpgaboy/pkg/display/web"

	"github.com/SuperC03/fpgaboy/internal/config"
	"github.com/SuperC03/fpgaboy/internal/memory"
	"github.com/SuperC03/fpgaboy/internal/ppu"
	"github.com/SuperC03/fpgaboy/internal/ppu/capture"
	"github.com/SuperC03/fpgaboy/internal/ppu/palette"
	"github.com/SuperC03/fpgaboy/pkg/display"
	"github.com/SuperC03/fpgaboy/pkg/display/event"
	"github.com/SuperC03/fpgaboy/pkg/display/fyne"
	"github.com/SuperC03/fpgaboy/pkg/log"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	driverName := flag.String("driver", "auto", "display driver to use")
	debug := flag.Bool("debug", false, "open the fyne debug window (OAM/FIFO/palette/tile map) instead of -driver")
	display.RegisterFlags()
	flag.Parse()

	logger := log.NewLogrus("ppuview")

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Errorf("config: %v", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *driverName != "auto" {
		cfg.Display.Driver = *driverName
	}

	switch cfg.Palette.Name {
	case "green":
		palette.Current = palette.Green
	case "red":
		palette.Current = palette.Red
	case "yellow":
		palette.Current = palette.Yellow
	default:
		palette.Current = palette.Greyscale
	}

	bus := memory.NewBus()
	sink := capture.NewAssembler()
	core := ppu.New(bus, bus, sink, logger)

	var drv display.Driver
	if *debug {
		drv = fyne.NewDebugger(core, bus)
	} else {
		drv = display.GetDriver(cfg.Display.Driver)
		if drv == nil {
			logger.Errorf("no display driver named %q installed", cfg.Display.Driver)
			os.Exit(1)
		}
	}

	fb := make(chan [ppu.ScreenHeight][ppu.ScreenWidth][3]uint8, 2)
	events := make(chan event.Event, 8)
	quit := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case frame := <-sink.Done:
				select {
				case fb <- frame:
				case <-ctx.Done():
					return nil
				}
			default:
				core.Step()
			}
		}
	})

	g.Go(func() error {
		defer cancel()
		return drv.Start(fb, events, quit)
	})

	g.Go(func() error {
		select {
		case <-sigc:
			cancel()
			close(quit)
		case <-ctx.Done():
			close(quit)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		drv.Stop()
		os.Exit(1)
	}
	drv.Stop()
}
