// internal/websocket/hub.go
package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"llamacrm-service/internal/domain/lead"
	wstypes "llamacrm-service/internal/domain/websocket"
	xerrors "llamacrm-service/internal/pkg/errors"
	"llamacrm-service/internal/service/auth"
)

// Hub fans lead lifecycle events out to every connected dashboard.
// There is one tenant, so every client sees every event.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	Register   chan *Client
	unregister chan *Client
	broadcast  chan *wstypes.WSMessage

	authService *auth.AuthService
}

func NewHub(authService *auth.AuthService) *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		Register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan *wstypes.WSMessage, 256),
		authService: authService,
	}
}

// AuthenticateClient validates the session token for an incoming
// websocket connection.
func (h *Hub) AuthenticateClient(ctx context.Context, token string) (*ClientAuth, error) {
	claims, err := h.authService.ValidateToken(ctx, token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	return &ClientAuth{
		Operator:  claims.Operator,
		SessionID: claims.ID,
	}, nil
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.broadcastMessage(msg)
		}
	}
}

// LeadCreated implements the store's event sink.
func (h *Hub) LeadCreated(l lead.Lead) {
	h.publish(wstypes.NewMessage(wstypes.EventTypeLeadCreated, l))
}

// LeadUpdated implements the store's event sink.
func (h *Hub) LeadUpdated(l lead.Lead) {
	h.publish(wstypes.NewMessage(wstypes.EventTypeLeadUpdated, l))
}

// SyncFailed implements the store's event sink.
func (h *Hub) SyncFailed(e *xerrors.SyncError) {
	h.publish(wstypes.NewMessage(wstypes.EventTypeSyncError, wstypes.SyncErrorData{
		Op:      e.Op,
		Message: e.Message,
	}))
}

// publish enqueues without blocking the caller; an overloaded hub
// drops the event rather than stalling a store mutation.
func (h *Hub) publish(msg *wstypes.WSMessage) {
	select {
	case h.broadcast <- msg:
	default:
		log.Printf("websocket broadcast queue full, dropping %s", msg.Type)
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true

	log.Printf("Client connected: operator=%s, session=%s, total=%d",
		client.operator, client.sessionID, len(h.clients))

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, map[string]interface{}{
		"operator":   client.operator,
		"session_id": client.sessionID,
	}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.clients[client]; exists {
		delete(h.clients, client)
		client.Close()

		log.Printf("Client disconnected: operator=%s, session=%s, total=%d",
			client.operator, client.sessionID, len(h.clients))
	}
}

func (h *Hub) broadcastMessage(msg *wstypes.WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal broadcast: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			log.Printf("client send buffer full: operator=%s", client.operator)
		}
	}
}

// TotalClients returns the number of connected dashboards.
func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}
