package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"krishisahay-be/internal/dto"
	"krishisahay-be/internal/pkg/logger"
	"krishisahay-be/internal/service"
)

// Inbound event names.
const (
	eventJoinSession = "join-session"
	eventChatMessage = "chat-message"
)

// chatTimeout bounds one chat round trip including the LLM call.
const chatTimeout = 45 * time.Second

type inboundFrame struct {
	Event     string              `json:"event"`
	SessionID string              `json:"sessionId"`
	Message   string              `json:"message"`
	Context   *dto.ContextPayload `json:"context"`
}

// ChatHandler bridges websocket frames and the advisory service.
type ChatHandler struct {
	hub      *Hub
	advisory service.IAdvisoryService
	logger   logger.ILogger
}

func NewChatHandler(hub *Hub, advisory service.IAdvisoryService, log logger.ILogger) *ChatHandler {
	h := &ChatHandler{hub: hub, advisory: advisory, logger: log}
	hub.OnMessage = h.handleFrame
	return h
}

// ServeWs upgrades one connection and runs its pumps. Blocks until the
// connection closes.
func (h *ChatHandler) ServeWs(conn *websocket.Conn) {
	sessionID := conn.Query("sessionId")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	h.advisory.JoinSession(sessionID)

	client := &Client{Hub: h.hub, Conn: conn, SessionID: sessionID, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}

func (h *ChatHandler) handleFrame(c *Client, raw []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		c.Emit(EventAiError, map[string]interface{}{"message": "invalid message format"})
		return
	}

	switch frame.Event {
	case eventJoinSession:
		sessionID := frame.SessionID
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		h.hub.Rekey(c, sessionID)
		info := h.advisory.JoinSession(sessionID)
		c.Emit(EventConnectionStatus, map[string]interface{}{
			"status":    "joined",
			"sessionId": info.SessionID,
		})
		h.hub.Broadcast(EventSystemUpdate, map[string]interface{}{
			"activeSessions": h.hub.SessionCount(),
		})

	case eventChatMessage:
		h.handleChat(c, &frame)

	default:
		c.Emit(EventAiError, map[string]interface{}{"message": "unknown event: " + frame.Event})
	}
}

// handleChat runs one query through the pipeline. Runs on the client's read
// goroutine so a session's messages are answered in order.
func (h *ChatHandler) handleChat(c *Client, frame *inboundFrame) {
	if frame.Message == "" {
		c.Emit(EventAiError, map[string]interface{}{"message": "message must not be empty"})
		return
	}

	c.Emit(EventAiTyping, map[string]interface{}{"typing": true})

	ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
	defer cancel()

	req := &dto.QueryRequest{
		Query:     frame.Message,
		SessionID: c.SessionID,
		Context:   frame.Context,
	}
	payload, err := h.advisory.Ask(ctx, c.SessionID, req)

	c.Emit(EventAiTyping, map[string]interface{}{"typing": false})

	if err != nil {
		h.logger.Error("Chat", "Query failed", map[string]interface{}{
			"session_id": c.SessionID,
			"error":      err.Error(),
		})
		c.Emit(EventAiError, map[string]interface{}{"message": err.Error()})
		return
	}

	h.hub.SendToSession(c.SessionID, EventAiResponse, payload)
}
