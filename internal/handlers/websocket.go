package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"tracker78-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for MVP
	},
}

// WebSocketHandler handles WebSocket connections
type WebSocketHandler struct {
	hub             *services.WSHub
	userService     *services.UserService
	sharingService  *services.SharingService
	locationService *services.LocationService
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(
	hub *services.WSHub,
	userService *services.UserService,
	sharingService *services.SharingService,
	locationService *services.LocationService,
) *WebSocketHandler {
	return &WebSocketHandler{
		hub:             hub,
		userService:     userService,
		sharingService:  sharingService,
		locationService: locationService,
	}
}

// HandleWebSocket handles WebSocket connections
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Get token from query parameter
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, "token required", http.StatusUnauthorized)
		return
	}

	// Validate token
	userID, err := h.userService.ValidateJWT(token)
	if err != nil {
		respondError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	// Upgrade connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}
	defer conn.Close()

	// Register connection
	h.hub.Register(userID, conn)
	defer h.unregister(r.Context(), userID)

	ctx := r.Context()

	// Tell everyone this user shares with that they came online
	viewerIDs, err := h.sharingService.ViewerIDs(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load viewers")
	} else {
		h.hub.NotifyFriendStatus(userID, viewerIDs, true)
	}

	// Send the online status of everyone sharing with this user
	sharerIDs, err := h.sharingService.SharerIDs(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load sharers")
	} else {
		online := make(map[string]bool, len(sharerIDs))
		for _, sharerID := range sharerIDs {
			online[sharerID] = h.hub.IsOnline(sharerID)
		}
		statusMsg := services.WSMessage{
			Type: "friends_online",
			Data: online,
		}
		if err := h.hub.SendToUser(userID, statusMsg); err != nil {
			log.Error().
				Err(err).
				Str("user_id", userID).
				Msg("Failed to send friends_online message")
		}
	}

	log.Info().Str("user_id", userID).Msg("WebSocket connection established")

	// Handle messages
	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("user_id", userID).Msg("WebSocket error")
			}
			break
		}

		var msg services.WSMessage
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to parse WebSocket message")
			h.sendError(conn, "Invalid message format")
			continue
		}

		if err := h.handleMessage(ctx, userID, msg); err != nil {
			log.Error().Err(err).Str("user_id", userID).Str("type", msg.Type).Msg("Failed to handle message")
			h.sendError(conn, err.Error())
		}
	}
}

// unregister drops the connection and notifies viewers the user went offline
func (h *WebSocketHandler) unregister(ctx context.Context, userID string) {
	h.hub.Unregister(userID)

	viewerIDs, err := h.sharingService.ViewerIDs(context.WithoutCancel(ctx), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load viewers")
		return
	}
	h.hub.NotifyFriendStatus(userID, viewerIDs, false)
}

// handleMessage processes incoming WebSocket messages
func (h *WebSocketHandler) handleMessage(ctx context.Context, userID string, msg services.WSMessage) error {
	switch msg.Type {
	case "location_update":
		return h.handleLocationUpdate(ctx, userID, msg)
	case "ping":
		return h.hub.SendToUser(userID, services.WSMessage{Type: "pong"})
	default:
		return h.sendErrorToUser(userID, "Unknown message type")
	}
}

// handleLocationUpdate handles a location_update message. The fan-out to
// online viewers happens inside the location service.
func (h *WebSocketHandler) handleLocationUpdate(ctx context.Context, userID string, msg services.WSMessage) error {
	if _, err := h.locationService.Update(ctx, userID, nil, msg.Latitude, msg.Longitude); err != nil {
		return h.sendErrorToUser(userID, "Failed to record location")
	}
	return nil
}

// sendError sends an error message to the WebSocket connection
func (h *WebSocketHandler) sendError(conn *websocket.Conn, message string) {
	msg := services.WSMessage{
		Type:    "error",
		Message: message,
	}
	data, _ := json.Marshal(msg)
	conn.WriteMessage(websocket.TextMessage, data)
}

// sendErrorToUser sends an error message to a user
func (h *WebSocketHandler) sendErrorToUser(userID, message string) error {
	msg := services.WSMessage{
		Type:    "error",
		Message: message,
	}
	return h.hub.SendToUser(userID, msg)
}
