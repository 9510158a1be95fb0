package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

const broadcastBuffer = 64

// Message is the envelope every realtime notification is sent in
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
	At   time.Time   `json:"at"`
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
	quit       chan struct{}
	once       sync.Once
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, broadcastBuffer),
		quit:       make(chan struct{}),
		log:        log.Named("ws"),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.quit:
			h.mutex.Lock()
			for conn := range h.Clients {
				conn.Close()
				delete(h.Clients, conn)
			}
			h.mutex.Unlock()
			return

		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			h.log.Debug("client connected", zap.Int("clients", h.ClientCount()))

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Close stops Run and drops every connected client
func (h *Hub) Close() {
	h.once.Do(func() { close(h.quit) })
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

// Publish queues a notification for every connected client. It never blocks:
// when the queue is full the message is dropped.
func (h *Hub) Publish(kind string, payload interface{}) {
	msg, err := json.Marshal(Message{Type: kind, Data: payload, At: time.Now().UTC()})
	if err != nil {
		h.log.Error("marshal notification", zap.String("type", kind), zap.Error(err))
		return
	}

	select {
	case h.Broadcast <- msg:
	default:
		h.log.Warn("broadcast queue full, dropping notification", zap.String("type", kind))
	}
}

// Serve keeps a websocket connection registered until the client goes away
func (h *Hub) Serve(c *websocket.Conn) {
	h.Register <- c
	defer func() { h.Unregister <- c }()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
