package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/tweakforge/tweakforge/internal/interfaces"
	"github.com/tweakforge/tweakforge/internal/models"
	"github.com/tweakforge/tweakforge/internal/services/compiler"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 64 * 1024
)

// WebSocketHandler recompiles the preview script as the client toggles
// selections, without a POST round trip per click.
type WebSocketHandler struct {
	compiler *compiler.Service
	software interfaces.SoftwareService
	logger   arbor.ILogger

	mu      sync.RWMutex
	clients map[*websocket.Conn]bool
}

// compileMessage is one inbound frame: the current selection.
type compileMessage struct {
	Hardware      models.HardwareProfile `json:"hardware"`
	Optimizations []string               `json:"optimizations"`
	Packages      []string               `json:"packages"`
	DNS           models.DNSProvider     `json:"dns"`
}

// previewMessage is the outbound frame for a recompiled selection.
type previewMessage struct {
	Type                 string   `json:"type"`
	Script               string   `json:"script,omitempty"`
	RiskProfile          string   `json:"risk_profile,omitempty"`
	RestorePointRequired bool     `json:"restore_point_required,omitempty"`
	MissingPackages      []string `json:"missing_packages,omitempty"`
	Error                string   `json:"error,omitempty"`
}

func NewWebSocketHandler(compilerService *compiler.Service, softwareService interfaces.SoftwareService, logger arbor.ILogger) *WebSocketHandler {
	return &WebSocketHandler{
		compiler: compilerService,
		software: softwareService,
		logger:   logger,
		clients:  make(map[*websocket.Conn]bool),
	}
}

// HandleWebSocket upgrades the connection and serves compile previews
// until the client disconnects.
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	h.logger.Debug().Str("remote", r.RemoteAddr).Msg("WebSocket client connected")

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
		h.logger.Debug().Str("remote", r.RemoteAddr).Msg("WebSocket client disconnected")
	}()

	conn.SetReadLimit(maxMessageSize)

	// Per-connection throttle so a held-down key cannot flood the
	// compiler.
	throttle := rate.NewLimiter(rate.Every(50*time.Millisecond), 5)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn().Err(err).Msg("WebSocket read error")
			}
			return
		}

		if !throttle.Allow() {
			continue
		}

		var msg compileMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.writeMessage(conn, previewMessage{Type: "error", Error: "Invalid message: " + err.Error()})
			continue
		}

		selection := models.SelectionState{
			Hardware:      msg.Hardware,
			Optimizations: msg.Optimizations,
			Packages:      msg.Packages,
		}

		script, err := h.compiler.Compile(selection, h.software.Catalog(), msg.DNS)
		if err != nil {
			h.writeMessage(conn, previewMessage{Type: "error", Error: "Compile failed"})
			continue
		}

		h.writeMessage(conn, previewMessage{
			Type:                 "preview",
			Script:               script.Text,
			RiskProfile:          script.RiskProfile,
			RestorePointRequired: script.RestorePointRequired,
			MissingPackages:      script.MissingPackages,
		})
	}
}

func (h *WebSocketHandler) writeMessage(conn *websocket.Conn, msg previewMessage) {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(msg); err != nil {
		h.logger.Warn().Err(err).Msg("WebSocket write failed")
	}
}

// ClientCount returns the number of connected preview clients.
func (h *WebSocketHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
