package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	mdwerror "github.com/msto63/knuth/foundation/core/error"
	"github.com/msto63/knuth/internal/knuth/api"
	"github.com/msto63/knuth/internal/knuth/service"
	"github.com/msto63/knuth/pkg/core/logging"
)

const readTimeout = 120 * time.Second

// WebSocket upgrader with permissive settings for local development
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// WebSocketHandler serves the live preview: every render message is
// answered with a result or an error in arrival order
type WebSocketHandler struct {
	service *service.Service
	logger  *logging.Logger
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(svc *service.Service) *WebSocketHandler {
	return &WebSocketHandler{
		service: svc,
		logger:  logging.New("knuth-websocket"),
	}
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string          `json:"type"`         // "render", "ping"
	ID      string          `json:"id,omitempty"` // Echoed in the response
	Payload json.RawMessage `json:"payload"`
}

// WSResponse represents a WebSocket response
type WSResponse struct {
	Type    string      `json:"type"` // "result", "error", "pong"
	ID      string      `json:"id,omitempty"`
	Session string      `json:"session"`
	Payload interface{} `json:"payload"`
}

// WSErrorPayload represents an error payload
type WSErrorPayload struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// ServeHTTP handles WebSocket upgrade and connections
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	h.handleConnection(r.Context(), conn)
}

// handleConnection handles a single WebSocket connection
func (h *WebSocketHandler) handleConnection(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	session := uuid.New().String()
	logger := h.logger.With("session", session)
	logger.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket read error", "error", err)
			} else {
				logger.Info("WebSocket connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		resp := WSResponse{ID: msg.ID, Session: session}
		switch msg.Type {
		case "ping":
			resp.Type = "pong"

		case "render":
			var req api.RenderRequest
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				resp.Type, resp.Payload = "error", WSErrorPayload{Code: "invalid_payload", Message: "Invalid render payload"}
				break
			}
			result, err := h.service.Render(ctx, service.RenderRequest{Input: req.Input, Style: req.Style})
			if err != nil {
				resp.Type, resp.Payload = "error", wsError(err)
				break
			}
			resp.Type, resp.Payload = "result", api.NewRenderResponse(result)

		default:
			resp.Type, resp.Payload = "error", WSErrorPayload{Code: "unknown_type", Message: "Unknown message type: " + msg.Type}
		}

		if err := conn.WriteJSON(resp); err != nil {
			logger.Warn("WebSocket write failed", "error", err)
			return
		}
	}
}

func wsError(err error) WSErrorPayload {
	return WSErrorPayload{
		Code:    string(mdwerror.GetCode(err)),
		Message: err.Error(),
		Details: errorDetails(err),
	}
}
