package websocket

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/meharaz2020/fair-dashboard/internal/core/domain"
	"github.com/meharaz2020/fair-dashboard/internal/core/ports"
)

// Hub maintains the set of active Clients and broadcasts dashboard events to
// every one of them.
type Hub struct {
	// clients maps connection IDs to their client
	clients map[uuid.UUID]*Client

	// last is the most recent snapshot event, replayed to new clients
	last *domain.Event

	// Broadcast channel for events
	broadcast chan domain.Event

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	// done is closed when Run returns
	done chan struct{}

	// mu protects clients and last
	mu sync.RWMutex

	logger *slog.Logger
}

// Ensure Hub implements the EventBroadcaster interface.
var _ ports.EventBroadcaster = (*Hub)(nil)

// NewHub creates a new WebSocket hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		broadcast:  make(chan domain.Event, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger.With("component", "websocket_hub"),
	}
}

// Broadcast queues an event for all clients. It never blocks; when the queue
// is full the event is dropped.
func (h *Hub) Broadcast(event domain.Event) error {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("broadcast channel full, dropping event",
			"event_type", event.Type,
		)
	}
	return nil
}

// Run starts the hub's event loop and blocks until ctx is done, at which
// point every client is disconnected.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// registerClient adds a client and sends it the current snapshot, if any
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	if h.last != nil {
		select {
		case client.Send <- *h.last:
		default:
		}
	}

	h.logger.Info("client registered",
		"client_id", client.ID,
		"total_connections", len(h.clients),
	)
}

// unregisterClient removes a client from the hub and closes its send channel
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	if existing, ok := h.clients[client.ID]; ok && existing == client {
		delete(h.clients, client.ID)
		h.logger.Info("client unregistered",
			"client_id", client.ID,
			"total_connections", len(h.clients),
		)
	}
	client.CloseSend()
}

// broadcastEvent sends an event to every connected client. Clients whose
// buffer is full are disconnected.
func (h *Hub) broadcastEvent(event domain.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if event.Type == domain.EventSnapshotUpdated {
		e := event
		h.last = &e
	}

	h.logger.Debug("broadcasting event",
		"event_type", event.Type,
		"client_count", len(h.clients),
	)

	for _, client := range h.clients {
		select {
		case client.Send <- event:
		default:
			h.logger.Warn("client send buffer full, unregistering",
				"client_id", client.ID,
			)
			h.removeLocked(client)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		h.removeLocked(client)
	}
}

// unregister hands a client back to the hub, unless the hub has stopped.
func (h *Hub) unregister(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

// GetClientCount returns the total number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Done is closed once the hub has stopped.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}
