// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 16
)

// Update types pushed to pages
const (
	UpdatePrice     = "price_update"
	UpdateCounter   = "inquiry_count"
	UpdateFlicker   = "inquiry_flicker"
	UpdateCountdown = "countdown"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the feed carries no private data
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message is one update on the live feed.
type Message struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans updates out to every connected page.
type Hub struct {
	clients    map[*client]bool
	clientsMux sync.RWMutex
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}
	now        func() time.Time
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		now:        time.Now,
	}
}

// Run delivers broadcasts until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.clientsMux.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.clientsMux.Unlock()
			return

		case c := <-h.register:
			h.clientsMux.Lock()
			h.clients[c] = true
			h.clientsMux.Unlock()

		case c := <-h.unregister:
			h.clientsMux.Lock()
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
			}
			h.clientsMux.Unlock()

		case msg := <-h.broadcast:
			h.clientsMux.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// slow reader, drop it
					delete(h.clients, c)
					close(c.send)
				}
			}
			h.clientsMux.Unlock()
		}
	}
}

// Publish queues an update for every client. It never blocks; when the
// queue is full the update is dropped.
func (h *Hub) Publish(kind string, data any) {
	payload, err := json.Marshal(Message{Type: kind, Timestamp: h.now(), Data: data})
	if err != nil {
		slog.Error("failed to encode live update", "type", kind, "error", err)
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		slog.Warn("live update dropped", "type", kind)
	}
}

// Clients is the number of connected pages.
func (h *Hub) Clients() int {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and streams updates to it.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go h.writePump(c)
	go h.readPump(c)
}

// readPump only exists to notice the page going away and to handle pongs.
func (h *Hub) readPump(c *client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("websocket read error", "error", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
