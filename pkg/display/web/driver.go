// Package web implements a display.Driver that streams frames to browser
// clients over a websocket hub, deduplicating unchanged frames by hash
// before sending, the way the reference emulator's own pkg/display/web
// player does for its patch/frame caches.
package web

import (
	"fmt"
	"net/http"

	"github.com/cespare/xxhash"

	"github.com/SuperC03/fpgaboy/internal/ppu"
	"github.com/SuperC03/fpgaboy/pkg/display"
	"github.com/SuperC03/fpgaboy/pkg/display/event"
	"github.com/SuperC03/fpgaboy/pkg/log"
)

func init() {
	driver := &Driver{Addr: ":8090", log: log.NewNullLogger()}
	display.Install("web", driver, []display.DriverOption{
		{
			Name:        "addr",
			Default:     ":8090",
			Value:       &driver.Addr,
			Type:        "string",
			Description: "Address to serve the websocket viewer on",
		},
	})
}

// Driver is a display.Driver that serves frames over a websocket hub
// instead of opening a native window.
type Driver struct {
	Addr string
	log  log.Logger

	hub    *Hub
	server *http.Server
	cache  *cache
}

// SetLogger overrides the driver's silent default logger.
func (d *Driver) SetLogger(l log.Logger) { d.log = l }

// Start serves the websocket endpoint and pumps frames to it until quit
// closes.
func (d *Driver) Start(fb <-chan [ppu.ScreenHeight][ppu.ScreenWidth][3]uint8, events chan<- event.Event, quit <-chan struct{}) error {
	d.hub = NewHub(d.log)
	d.cache = newCache(1)

	mux := http.NewServeMux()
	mux.Handle("/", d.hub)
	d.server = &http.Server{Addr: d.Addr, Handler: mux}

	hubStop := make(chan struct{})
	go d.hub.Run(hubStop)

	serveErr := make(chan error, 1)
	go func() {
		if err := d.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- fmt.Errorf("web: listen: %w", err)
		}
	}()

	buf := make([]byte, ppu.ScreenWidth*ppu.ScreenHeight*3)

	for {
		select {
		case <-quit:
			close(hubStop)
			return nil
		case err := <-serveErr:
			close(hubStop)
			return err
		case frame := <-fb:
			for y := 0; y < ppu.ScreenHeight; y++ {
				for x := 0; x < ppu.ScreenWidth; x++ {
					i := (y*ppu.ScreenWidth + x) * 3
					px := frame[y][x]
					buf[i], buf[i+1], buf[i+2] = px[0], px[1], px[2]
				}
			}

			hash := xxhash.Sum64(buf)
			if d.cache.has(hash) {
				continue
			}
			d.cache.add(hash)

			message := make([]byte, len(buf))
			copy(message, buf)
			select {
			case d.hub.broadcast <- message:
			default:
				d.log.Errorf("web: broadcast channel full, dropping frame")
			}
		}
	}
}

// Stop shuts down the HTTP server.
func (d *Driver) Stop() error {
	if d.server == nil {
		return nil
	}
	return d.server.Close()
}
