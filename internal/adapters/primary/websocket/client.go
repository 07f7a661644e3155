package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/meharaz2020/fair-dashboard/internal/core/domain"
	"github.com/meharaz2020/fair-dashboard/internal/infrastructure/logging"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 1024

	// Outbound events buffered per client.
	sendBufferSize = 16
)

// ClientConfig holds keep-alive timings for a connection
type ClientConfig struct {
	// PongWait is the time allowed to read the next pong message from the peer.
	PongWait time.Duration
	// PingInterval is how often pings are sent. Must be less than PongWait.
	PingInterval time.Duration
}

// DefaultClientConfig returns the standard keep-alive timings
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		PongWait:     60 * time.Second,
		PingInterval: 54 * time.Second,
	}
}

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// Buffered channel of outbound events.
	Send chan domain.Event

	// ID identifies this connection.
	ID uuid.UUID

	cfg ClientConfig

	// mu guards closed so pongs never race the hub closing Send
	mu     sync.Mutex
	closed bool

	logger *slog.Logger
}

// NewClient creates a new WebSocket client with a fresh ID. The pumps outlive
// ctx, so its request ID is copied onto the client's logger along with the ID.
func NewClient(ctx context.Context, hub *Hub, conn *websocket.Conn, cfg ClientConfig, logger *slog.Logger) *Client {
	if cfg.PongWait <= 0 || cfg.PingInterval <= 0 || cfg.PingInterval >= cfg.PongWait {
		cfg = DefaultClientConfig()
	}

	id := uuid.New()
	ctx = logging.WithClientID(ctx, id.String())
	return &Client{
		Hub:    hub,
		Conn:   conn,
		Send:   make(chan domain.Event, sendBufferSize),
		ID:     id,
		cfg:    cfg,
		logger: logging.LoggerFromContext(ctx, logger),
	}
}

// CloseSend safely closes the Send channel exactly once
func (c *Client) CloseSend() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// ReadPump pumps messages from the websocket connection to the hub.
// This method runs in its own goroutine.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.unregister(c)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait)); err != nil {
		c.logger.Error("failed to set read deadline", "error", err)
		return
	}

	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read error", "error", err)
			}
			break
		}

		c.handleIncomingMessage(message)
	}
}

// WritePump pumps events from the hub to the websocket connection.
// This method runs in its own goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error("failed to set write deadline", "error", err)
				return
			}

			if !ok {
				// The hub closed the channel.
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.writeJSON(event); err != nil {
				c.logger.Error("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error("failed to set write deadline for ping", "error", err)
				return
			}

			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("failed to send ping", "error", err)
				return
			}
		}
	}
}

// writeJSON writes a JSON message to the websocket connection
func (c *Client) writeJSON(event domain.Event) error {
	w, err := c.Conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(w).Encode(event); err != nil {
		_ = w.Close()
		return err
	}

	return w.Close()
}

// ClientMessage is the structure for messages sent from the browser.
type ClientMessage struct {
	Type string `json:"type"`
}

// handleIncomingMessage processes messages received from the browser. The
// dashboard only listens, so the sole message understood is a keep-alive.
func (c *Client) handleIncomingMessage(message []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		c.logger.Warn("failed to unmarshal client message", "error", err)
		return
	}

	switch msg.Type {
	case "PING":
		c.sendPong()
	default:
		c.logger.Debug("received unknown message type", "type", msg.Type)
	}
}

func (c *Client) sendPong() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	select {
	case c.Send <- domain.Event{Type: domain.EventPong}:
	default:
		// Channel full, skip pong response
	}
}
