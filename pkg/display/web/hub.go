package web

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/SuperC03/fpgaboy/pkg/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub tracks connected viewers and fans a broadcast frame out to all of
// them, grounded on the reference emulator's own pkg/display/web hub.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	log        log.Logger
}

// NewHub returns a Hub with no connected clients.
func NewHub(logger log.Logger) *Hub {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        logger,
	}
}

// Run services registration and broadcast until stop is closed.
func (h *Hub) Run(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			for c := range h.clients {
				close(c.Send)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.Send)
			}
		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.Send <- message:
				default:
					delete(h.clients, c)
					close(c.Send)
				}
			}
		}
	}
}

// ServeHTTP upgrades an incoming request to a websocket connection and
// registers it as a viewer.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("web: upgrade: %v", err)
		return
	}

	c := newClient(h, conn)
	h.register <- c

	go c.WritePump()
	go c.ReadPump()
}
