package websocket

import (
	"encoding/json"
	"sync"

	"krishisahay-be/internal/pkg/logger"
)

// Event names sent to clients.
const (
	EventConnectionStatus = "connection-status"
	EventSystemUpdate     = "system-update"
	EventAiTyping         = "ai-typing"
	EventAiResponse       = "ai-response"
	EventAiError          = "ai-error"
)

type envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub tracks connected clients per session. A session can have multiple
// connections (e.g. phone and kiosk side by side).
type Hub struct {
	clients map[string][]*Client // SessionID -> connections

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// OnMessage is invoked for every inbound frame. Set once before Run.
	OnMessage func(c *Client, raw []byte)

	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionID})
			client.Emit(EventConnectionStatus, map[string]interface{}{
				"status":    "connected",
				"sessionId": client.SessionID,
			})
			h.Broadcast(EventSystemUpdate, map[string]interface{}{
				"activeSessions": h.SessionCount(),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.SessionID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.SessionID]) == 0 {
					delete(h.clients, client.SessionID)
					h.logger.Info("Hub", "Session fully disconnected", map[string]interface{}{"session_id": client.SessionID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Rekey moves a client to another session after a join-session event.
func (h *Hub) Rekey(client *Client, sessionID string) {
	h.mu.Lock()
	if clients, ok := h.clients[client.SessionID]; ok {
		for i, c := range clients {
			if c == client {
				h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
				break
			}
		}
		if len(h.clients[client.SessionID]) == 0 {
			delete(h.clients, client.SessionID)
		}
	}
	client.SessionID = sessionID
	h.clients[sessionID] = append(h.clients[sessionID], client)
	h.mu.Unlock()
}

// Broadcast sends an event to every connected client.
func (h *Hub) Broadcast(event string, data interface{}) {
	payload, _ := json.Marshal(envelope{Event: event, Data: data})

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, clients := range h.clients {
		for _, client := range clients {
			select {
			case client.Send <- payload:
			default:
				h.logger.Warn("Hub", "Client send buffer full, dropping broadcast", map[string]interface{}{"session_id": client.SessionID})
			}
		}
	}
}

// SendToSession delivers an event to every connection of one session.
func (h *Hub) SendToSession(sessionID, event string, data interface{}) {
	payload, _ := json.Marshal(envelope{Event: event, Data: data})

	h.mu.RLock()
	clients, ok := h.clients[sessionID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	for _, client := range clients {
		select {
		case client.Send <- payload:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping message", map[string]interface{}{"session_id": sessionID})
		}
	}
}

// SessionCount reports distinct connected sessions.
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
