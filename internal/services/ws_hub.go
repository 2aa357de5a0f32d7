package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"tracker78-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type      string      `json:"type"`
	UserID    string      `json:"user_id,omitempty"`
	Latitude  float64     `json:"latitude,omitempty"`
	Longitude float64     `json:"longitude,omitempty"`
	Timestamp int64       `json:"timestamp,omitempty"`
	Online    *bool       `json:"online,omitempty"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

// WSHub manages WebSocket connections keyed by user ID
type WSHub struct {
	mu          sync.RWMutex
	connections map[string]*websocket.Conn
}

// NewWSHub creates a new WebSocket hub
func NewWSHub() *WSHub {
	return &WSHub{
		connections: make(map[string]*websocket.Conn),
	}
}

// Register registers a new WebSocket connection for a user
func (h *WSHub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Close existing connection if any
	if existing, exists := h.connections[userID]; exists {
		existing.Close()
	}

	h.connections[userID] = conn

	log.Info().Str("user_id", userID).Msg("WebSocket connection registered")
}

// Unregister removes a WebSocket connection for a user
func (h *WSHub) Unregister(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, exists := h.connections[userID]; exists {
		conn.Close()
		delete(h.connections, userID)
		log.Info().Str("user_id", userID).Msg("WebSocket connection unregistered")
	}
}

// SendToUser sends a message to a specific user
func (h *WSHub) SendToUser(userID string, message WSMessage) error {
	h.mu.RLock()
	conn, exists := h.connections[userID]
	h.mu.RUnlock()

	if !exists {
		return fmt.Errorf("user %s is not connected", userID)
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.Unregister(userID)
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// IsOnline checks if a user is online
func (h *WSHub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, exists := h.connections[userID]
	return exists
}

// BroadcastLocation pushes a location update to every online viewer
func (h *WSHub) BroadcastLocation(viewerIDs []string, loc *models.Location) {
	message := WSMessage{
		Type:      "location_update",
		UserID:    loc.UserID,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Timestamp: loc.RecordedAt.UnixMilli(),
	}

	for _, viewerID := range viewerIDs {
		if !h.IsOnline(viewerID) {
			continue
		}
		if err := h.SendToUser(viewerID, message); err != nil {
			log.Error().
				Err(err).
				Str("viewer_id", viewerID).
				Msg("Failed to push location update")
		}
	}
}

// NotifyFriendStatus notifies viewers about a user going online or offline
func (h *WSHub) NotifyFriendStatus(userID string, viewerIDs []string, online bool) {
	message := WSMessage{
		Type:   "friend_status",
		UserID: userID,
		Online: &online,
	}

	for _, viewerID := range viewerIDs {
		if !h.IsOnline(viewerID) {
			continue
		}
		if err := h.SendToUser(viewerID, message); err != nil {
			log.Error().
				Err(err).
				Str("viewer_id", viewerID).
				Msg("Failed to notify friend status")
		}
	}
}

// NotifyRequestReceived notifies a recipient about a new pending request
func (h *WSHub) NotifyRequestReceived(recipientID string, req *models.FriendRequest) {
	if !h.IsOnline(recipientID) {
		return
	}
	message := WSMessage{
		Type:      "friend_request",
		UserID:    req.SenderID,
		Timestamp: req.CreatedAt.UnixMilli(),
		Data: map[string]interface{}{
			"request_id":   req.ID,
			"contact":      req.RecipientContact,
			"contact_type": req.ContactType,
		},
	}
	if err := h.SendToUser(recipientID, message); err != nil {
		log.Error().
			Err(err).
			Str("recipient_id", recipientID).
			Msg("Failed to notify friend request")
	}
}

// NotifyRequestAccepted notifies a sender that their request was accepted
func (h *WSHub) NotifyRequestAccepted(senderID string, result *AcceptResult) {
	if !h.IsOnline(senderID) {
		return
	}
	message := WSMessage{
		Type:      "request_accepted",
		Timestamp: time.Now().UnixMilli(),
		Data: map[string]interface{}{
			"request_id": result.RequestID,
			"friend_id":  result.FriendID,
		},
	}
	if err := h.SendToUser(senderID, message); err != nil {
		log.Error().
			Err(err).
			Str("sender_id", senderID).
			Msg("Failed to notify request accepted")
	}
}
