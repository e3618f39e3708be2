package realtime

import (
	"log"
	"net/http"
	"sync"
	"time"

	"kds-backend/internal/models"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// refreshHint is the only message the hub pushes. Displays treat it as a
// poke to re-fetch their snapshot; no board data travels over the socket.
type refreshHint struct {
	Type        string             `json:"type"`
	Destination models.Destination `json:"destination"`
}

type client struct {
	conn         *websocket.Conn
	destinations map[models.Destination]bool
	send         chan refreshHint
}

// Hub fans board-change hints out to connected displays. Each connection
// registers the destinations its monitor watches and only hears about
// those.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]bool)}
}

// BoardChanged notifies every display watching the given station.
func (h *Hub) BoardChanged(destination models.Destination) {
	hint := refreshHint{Type: "board_changed", Destination: destination}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if !c.destinations[destination] {
			continue
		}
		select {
		case c.send <- hint:
		default:
			// Slow consumer; it will catch up on its next poll cycle.
		}
	}
}

// Subscribe upgrades the request and keeps the connection until the display
// goes away. Blocks for the life of the socket.
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request, monitor *models.Monitor) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Realtime] Upgrade failed for monitor %d: %v", monitor.ID, err)
		return
	}

	c := &client{
		conn:         conn,
		destinations: make(map[models.Destination]bool, len(monitor.Destinations)),
		send:         make(chan refreshHint, 16),
	}
	for _, d := range monitor.Destinations {
		c.destinations[d] = true
	}

	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
	log.Printf("[Realtime] Monitor %d connected (%d displays online)", monitor.ID, h.count())

	go h.writeLoop(c)
	h.readLoop(c)
}

func (h *Hub) writeLoop(c *client) {
	ping := time.NewTicker(30 * time.Second)
	defer ping.Stop()

	for {
		select {
		case hint, ok := <-c.send:
			if !ok {
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteJSON(hint); err != nil {
				return
			}
		case <-ping.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readLoop drains inbound frames so pong handling works and detects the
// disconnect.
func (h *Hub) readLoop(c *client) {
	defer h.drop(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	c.conn.Close()
	log.Printf("[Realtime] Display disconnected (%d online)", h.count())
}

func (h *Hub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
