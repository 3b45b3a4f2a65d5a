package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/rileyhilliard/botstat/internal/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Frame types pushed to websocket clients.
const (
	FrameDisplay = "display"
	FrameError   = "error"
	FramePong    = "pong"
)

// clientSendBuffer is the per-client backlog before frames are skipped.
const clientSendBuffer = 32

// Frame is a single message sent over the websocket.
type Frame struct {
	Type      string              `json:"type"`
	Seq       uint64              `json:"seq,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
	Data      jsoniter.RawMessage `json:"data,omitempty"`
	Error     string              `json:"error,omitempty"`
}

// client is one connected websocket.
type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	quit chan struct{}
}

// Hub fans encoded frames out to every connected client.
type Hub struct {
	clients    map[string]*client
	broadcast  chan []byte
	register   chan *client
	unregister chan string
	done       chan struct{}
	stopOnce   sync.Once
	mu         sync.RWMutex
	log        logger.Logger
}

// NewHub creates a hub and starts its event loop.
func NewHub(log logger.Logger) *Hub {
	if log == nil {
		log = logger.Noop()
	}
	h := &Hub{
		clients:    make(map[string]*client),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *client),
		unregister: make(chan string),
		done:       make(chan struct{}),
		log:        log,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for id, c := range h.clients {
				delete(h.clients, id)
				close(c.quit)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.id] = c
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Debug("client connected: %s (total: %d)", c.id, total)

		case id := <-h.unregister:
			h.mu.Lock()
			if c, ok := h.clients[id]; ok {
				delete(h.clients, id)
				close(c.quit)
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Debug("client disconnected: %s (total: %d)", id, total)

		case data := <-h.broadcast:
			h.mu.RLock()
			for _, c := range h.clients {
				select {
				case c.send <- data:
				default:
					// Slow client, skip this frame.
					h.log.Debug("client %s send buffer full, frame skipped", c.id)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast encodes f and queues it for every client. It never blocks;
// frames are dropped when the hub is backed up.
func (h *Hub) Broadcast(f Frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
	default:
		h.log.Warn("broadcast queue full, dropping %s frame", f.Type)
	}
	return nil
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Stop closes every client and ends the event loop. Safe to call twice.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// attach registers conn and starts its pumps. It returns false when the hub is stopped.
func (h *Hub) attach(id string, conn *websocket.Conn) bool {
	c := &client{
		id:   id,
		conn: conn,
		send: make(chan []byte, clientSendBuffer),
		quit: make(chan struct{}),
	}
	select {
	case h.register <- c:
	case <-h.done:
		return false
	}
	go h.readPump(c)
	go h.writePump(c)
	return true
}

func (h *Hub) detach(id string) {
	select {
	case h.unregister <- id:
	case <-h.done:
	}
}

// readPump answers pings and detaches the client once the socket closes.
func (h *Hub) readPump(c *client) {
	defer h.detach(c.id)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn("websocket read error: %v", err)
			}
			return
		}

		var msg Frame
		if err := json.Unmarshal(data, &msg); err != nil {
			h.log.Debug("ignoring malformed client message: %v", err)
			continue
		}
		if msg.Type == "ping" {
			pong, _ := json.Marshal(Frame{Type: FramePong, Timestamp: time.Now()})
			select {
			case c.send <- pong:
			case <-c.quit:
				return
			default:
			}
		}
	}
}

// writePump drains the client's queue onto the socket.
func (h *Hub) writePump(c *client) {
	defer c.conn.Close()

	for {
		select {
		case data := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					h.log.Warn("websocket write error: %v", err)
				}
				return
			}
		case <-c.quit:
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
