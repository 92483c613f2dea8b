// internal/debugfeed/feed.go
package debugfeed

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"grid-tower-defense/internal/app"
	"grid-tower-defense/internal/event"
)

const (
	sendBuffer   = 16
	writeTimeout = 2 * time.Second
)

// Source supplies the views the feed streams. *app.Engine implements it.
type Source interface {
	View() app.View
}

type Config struct {
	Logger *log.Logger
}

// Message is one frame on the wire.
type Message struct {
	Type  string          `json:"type"` // "view" or "event"
	View  *app.View       `json:"view,omitempty"`
	Event event.EventType `json:"event,omitempty"`
	Data  any             `json:"data,omitempty"`
}

type client struct {
	send chan []byte
}

// Hub fans session views and events out to every connected debug client.
// Slow clients drop frames instead of stalling the game loop.
type Hub struct {
	source   Source
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub(source Source, cfg Config) *Hub {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		source: source,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*client]struct{}),
	}
}

// Clients reports how many connections are attached.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// PublishView sends a fresh view to every client.
func (h *Hub) PublishView(v app.View) {
	h.broadcast(Message{Type: "view", View: &v})
}

// OnEvent forwards engine events. It runs under the engine lock, so it only
// queues.
func (h *Hub) OnEvent(e event.Event) {
	h.broadcast(Message{Type: "event", Event: e.Type, Data: e.Data})
}

func (h *Hub) broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.clients) == 0 {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Printf("debugfeed: failed to marshal %s message: %v", msg.Type, err)
		return
	}
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Handle upgrades the request and streams frames until the client goes away.
// The first frame is always the current view.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("debugfeed: upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	defer conn.Close()

	initial, err := json.Marshal(Message{Type: "view", View: viewPtr(h.source.View())})
	if err != nil {
		h.logger.Printf("debugfeed: failed to marshal initial view: %v", err)
		return
	}
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, initial); err != nil {
		return
	}

	c := &client{send: make(chan []byte, sendBuffer)}
	h.register(c)
	defer h.unregister(c)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}

func viewPtr(v app.View) *app.View { return &v }
