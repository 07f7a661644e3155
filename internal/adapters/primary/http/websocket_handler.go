package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	wsAdapter "github.com/meharaz2020/fair-dashboard/internal/adapters/primary/websocket"
	"github.com/meharaz2020/fair-dashboard/internal/config"
	"github.com/meharaz2020/fair-dashboard/internal/infrastructure/logging"
)

// WebSocketHandler upgrades dashboard viewers to a push-only event stream
type WebSocketHandler struct {
	hub       *wsAdapter.Hub
	clientCfg wsAdapter.ClientConfig
	upgrader  websocket.Upgrader
	logger    *slog.Logger
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(
	hub *wsAdapter.Hub,
	cfg *config.Config,
	logger *slog.Logger,
) *WebSocketHandler {
	handler := &WebSocketHandler{
		hub: hub,
		clientCfg: wsAdapter.ClientConfig{
			PongWait:     cfg.WebSocket.PongWait,
			PingInterval: cfg.WebSocket.PingInterval,
		},
		logger: logger.With("handler", "websocket"),
	}

	handler.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
		WriteBufferSize: cfg.WebSocket.WriteBufferSize,
		CheckOrigin:     handler.makeOriginChecker(cfg),
	}

	return handler
}

// makeOriginChecker creates an origin checking function based on configuration
func (h *WebSocketHandler) makeOriginChecker(cfg *config.Config) func(r *http.Request) bool {
	allowedOrigins := cfg.WebSocket.AllowedOrigins

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		// In development mode, allow all origins (but log a warning)
		if cfg.IsDevelopment() {
			if origin != "" {
				h.logger.Debug("allowing websocket connection in development mode",
					"origin", origin,
					"remote_addr", r.RemoteAddr,
				)
			}
			return true
		}

		// No origin header (same-origin request or non-browser client)
		if origin == "" {
			return true
		}

		// Check against allowed origins
		parsedOrigin, err := url.Parse(origin)
		if err != nil {
			h.logger.Warn("failed to parse websocket origin",
				"origin", origin,
				"error", err,
			)
			return false
		}

		originHost := parsedOrigin.Host

		for _, allowed := range allowedOrigins {
			// Support wildcard subdomains like "*.example.com"
			if strings.HasPrefix(allowed, "*.") {
				suffix := allowed[1:] // Remove the "*", keep ".example.com"
				if strings.HasSuffix(originHost, suffix) || originHost == allowed[2:] {
					return true
				}
			} else if originHost == allowed {
				return true
			}
		}

		h.logger.Warn("websocket connection rejected due to origin",
			"origin", origin,
			"remote_addr", r.RemoteAddr,
			"allowed_origins", allowedOrigins,
		)
		return false
	}
}

// ServeHTTP handles WebSocket connection requests
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	select {
	case <-h.hub.Done():
		http.Error(w, "Live updates are unavailable", http.StatusServiceUnavailable)
		return
	default:
	}

	// 1. Upgrade the connection
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to upgrade websocket connection",
			"remote_addr", r.RemoteAddr,
			"error", err,
		)
		return
	}

	// 2. Create and register the new client
	client := wsAdapter.NewClient(ctx, h.hub, conn, h.clientCfg, h.logger)

	ctx = logging.WithClientID(ctx, client.ID.String())
	h.logger.InfoContext(ctx, "websocket connection established",
		"remote_addr", r.RemoteAddr,
	)

	select {
	case h.hub.Register <- client:
	case <-h.hub.Done():
		_ = conn.Close()
		return
	}

	// 3. Start the I/O pumps in new goroutines
	go client.WritePump()
	go client.ReadPump()
}
