package spectate

import (
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/blackjack/internal/auth"
	"github.com/lox/blackjack/internal/game"
)

// Hub fans table events out to every connected viewer. It subscribes to a
// game's bus and never blocks the publisher: a viewer whose buffer is full
// is disconnected.
type Hub struct {
	upgrader  websocket.Upgrader
	validator auth.Validator
	logger    *log.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithValidator requires viewers to present a token accepted by v.
func WithValidator(v auth.Validator) HubOption {
	return func(h *Hub) { h.validator = v }
}

// NewHub creates a hub with no viewers
func NewHub(logger *log.Logger, opts ...HubOption) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := &Hub{
		upgrader: websocket.Upgrader{
			// Viewers are read-only.
			CheckOrigin:     func(*http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		validator: auth.NoopValidator{},
		logger:    logger.WithPrefix("spectate"),
		clients:   make(map[*client]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Attach subscribes the hub to bus.
func (h *Hub) Attach(bus game.EventBus) {
	bus.Subscribe(h)
}

// OnEvent implements game.EventSubscriber.
func (h *Hub) OnEvent(e game.GameEvent) {
	msg, err := Encode(e)
	if err != nil {
		h.logger.Error("Failed to encode event", "type", e.EventType(), "error", err)
		return
	}
	h.Broadcast(msg)
}

// Broadcast queues msg for every viewer.
func (h *Hub) Broadcast(msg *Message) {
	h.mu.RLock()
	var slow []*client
	for c := range h.clients {
		if !c.enqueue(msg) {
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("Viewer send buffer full, disconnecting", "remote", c.remote)
		h.remove(c)
	}
}

// ServeHTTP upgrades the request to a WebSocket and registers the viewer.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, err := h.validator.Validate(r.Context(), auth.TokenFromRequest(r))
	switch {
	case errors.Is(err, auth.ErrInvalidToken):
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	case err != nil:
		h.logger.Warn("Viewer authentication unavailable", "error", err)
		http.Error(w, "authentication unavailable", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	remote := r.RemoteAddr
	if identity != nil {
		remote = identity.Name + "@" + remote
	}
	c := newClient(conn, remote)
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Info("Viewer connected", "remote", c.remote)

	go c.writePump(h.logger)
	go func() {
		c.readPump()
		h.remove(c)
	}()
}

// Clients returns the number of connected viewers
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every viewer and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for c := range clients {
		c.close()
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		c.close()
		h.logger.Info("Viewer disconnected", "remote", c.remote)
	}
}
