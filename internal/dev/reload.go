package dev

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// ReloadMessageType represents the type of reload message.
type ReloadMessageType string

const (
	ReloadTypeFull  ReloadMessageType = "reload"
	ReloadTypeError ReloadMessageType = "error"
)

// ReloadMessage is sent to browsers via WebSocket.
type ReloadMessage struct {
	Type  ReloadMessageType `json:"type"`
	File  string            `json:"file,omitempty"`
	Error string            `json:"error,omitempty"`
}

// Reloader manages WebSocket connections for template live reload.
type Reloader struct {
	mu       sync.RWMutex
	clients  map[*websocket.Conn]bool
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewReloader creates a reload broadcaster.
func NewReloader() *Reloader {
	return &Reloader{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Dev only; any origin may connect.
				return true
			},
		},
		logger: slog.Default().With("component", "dev"),
	}
}

// HandleWebSocket handles WebSocket upgrade and connection.
func (rl *Reloader) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := rl.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	rl.mu.Lock()
	rl.clients[conn] = true
	rl.mu.Unlock()

	// Drain until the client disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	rl.mu.Lock()
	delete(rl.clients, conn)
	rl.mu.Unlock()
	conn.Close()
}

// NotifyReload tells all connected browsers that file changed.
func (rl *Reloader) NotifyReload(file string) {
	rl.broadcast(ReloadMessage{Type: ReloadTypeFull, File: file})
}

// NotifyError pushes an error message to all connected browsers.
func (rl *Reloader) NotifyError(msg string) {
	rl.broadcast(ReloadMessage{Type: ReloadTypeError, Error: msg})
}

func (rl *Reloader) broadcast(msg ReloadMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	rl.mu.RLock()
	defer rl.mu.RUnlock()
	for conn := range rl.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			rl.logger.Debug("reload notify failed", "error", err)
		}
	}
}
