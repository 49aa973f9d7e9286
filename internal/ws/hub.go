package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventMasterDataUpdate is the type of every change event sent to clients.
const EventMasterDataUpdate = "master_data_update"

const broadcastBuffer = 64

// Event describes a successful master-data mutation.
type Event struct {
	Type     string     `json:"type"`
	Resource string     `json:"resource"`
	Action   string     `json:"action"`
	ID       uuid.UUID  `json:"id"`
	ActorID  *uuid.UUID `json:"actor_id,omitempty"`
	Message  string     `json:"message"`
	At       time.Time  `json:"at"`
}

// client is the subset of *websocket.Conn the hub writes to.
type client interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type Hub struct {
	clients    map[client]bool
	register   chan client
	unregister chan client
	broadcast  chan []byte
	done       chan struct{}
	log        *zap.Logger
	mutex      sync.Mutex
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[client]bool),
		register:   make(chan client),
		unregister: make(chan client),
		broadcast:  make(chan []byte, broadcastBuffer),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run owns the client set until ctx is cancelled, then closes every connection.
// Run must be called at most once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for conn := range h.clients {
				conn.Close()
				delete(h.clients, conn)
			}
			h.mutex.Unlock()
			return

		case conn := <-h.register:
			h.mutex.Lock()
			h.clients[conn] = true
			h.mutex.Unlock()
			h.log.Debug("WS client connected")

		case conn := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Publish queues e for broadcast. It never blocks; events are dropped when the queue is full.
func (h *Hub) Publish(e Event) {
	if e.Type == "" {
		e.Type = EventMasterDataUpdate
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}
	msg, err := json.Marshal(e)
	if err != nil {
		h.log.Error("Failed to encode WS event", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn("WS broadcast queue full, dropping event",
			zap.String("resource", e.Resource),
			zap.String("action", e.Action),
		)
	}
}

// Serve registers conn and blocks until the client disconnects.
func (h *Hub) Serve(conn *websocket.Conn) {
	h.serve(conn, conn.ReadMessage)
}

func (h *Hub) serve(conn client, read func() (int, []byte, error)) {
	select {
	case h.register <- conn:
	case <-h.done:
		conn.Close()
		return
	}
	defer func() {
		select {
		case h.unregister <- conn:
		case <-h.done:
		}
	}()

	for {
		if _, _, err := read(); err != nil {
			return
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}
