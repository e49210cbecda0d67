// Package broadcast pushes contest state changes to WebSocket observers.
package broadcast

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Chloelee05/ElevateTM/internal/logging"
	"github.com/Chloelee05/ElevateTM/internal/metrics"
	"github.com/gorilla/websocket"
)

// Event is a JSON message sent to WebSocket clients watching a contest.
type Event struct {
	Type      string      `json:"type"`
	ContestID uint        `json:"contest_id"`
	Payload   interface{} `json:"payload,omitempty"`
}

type message struct {
	contestID uint
	data      []byte
}

type client struct {
	conn      *websocket.Conn
	contestID uint
	// send feeds the client's write pump; gorilla/websocket allows only one
	// concurrent writer per connection, so every outbound frame (broadcasts
	// and pings alike) goes through the pump.
	send chan []byte
}

// Hub manages WebSocket connections grouped by contest and fans events out
// to everyone watching the affected contest. The client set is owned by the
// Run loop; all mutation goes through the register/unregister channels.
type Hub struct {
	clients    map[*client]struct{}
	broadcast  chan message
	register   chan *client
	unregister chan *client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		broadcast:  make(chan message, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

// Run starts the hub's event loop. Must be called in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			metrics.WebSocketClients.Set(float64(len(h.clients)))
			logging.Info("ws client connected", logging.Fields{"contest_id": c.contestID, "total": len(h.clients)})

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			metrics.WebSocketClients.Set(float64(len(h.clients)))

		case msg := <-h.broadcast:
			for c := range h.clients {
				if c.contestID != msg.contestID {
					continue
				}
				select {
				case c.send <- msg.data:
				default:
					// The client's pump is stalled; drop the connection
					// rather than block round processing.
					delete(h.clients, c)
					close(c.send)
				}
			}
			metrics.WebSocketClients.Set(float64(len(h.clients)))
		}
	}
}

// Publish sends an event to every client watching the contest. Drops the
// event when the buffer is full so round processing never blocks on slow
// observers.
func (h *Hub) Publish(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	select {
	case h.broadcast <- message{contestID: ev.ContestID, data: data}:
	default:
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// HandleWS upgrades the request and subscribes the connection to a contest.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request, contestID uint) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("ws upgrade failed", err, logging.Fields{"contest_id": contestID})
		return
	}

	c := &client{conn: conn, contestID: contestID, send: make(chan []byte, 16)}
	h.register <- c
	go h.writePump(c)
	go h.readPump(c)
}

// writePump is the connection's only writer: it drains the send channel and
// keeps the connection alive with periodic pings.
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains inbound frames to detect disconnects and keep the read
// deadline fresh via pongs.
func (h *Hub) readPump(c *client) {
	defer func() { h.unregister <- c }()
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
