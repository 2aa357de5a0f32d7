package handlers

import (
	"encoding/json"
	"net/http"

	"tracker78-backend/internal/middleware"
	"tracker78-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// FriendRequestHandler handles tracking-request HTTP requests
type FriendRequestHandler struct {
	requestService *services.FriendRequestService
	wsHub          *services.WSHub
}

// NewFriendRequestHandler creates a new friend request handler
func NewFriendRequestHandler(requestService *services.FriendRequestService, wsHub *services.WSHub) *FriendRequestHandler {
	return &FriendRequestHandler{
		requestService: requestService,
		wsHub:          wsHub,
	}
}

// SendRequest represents the request body for sending a tracking request
type SendRequest struct {
	Contact string `json:"contact"`
}

// Send handles POST /api/v1/friend-requests
func (h *FriendRequestHandler) Send(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Contact == "" {
		respondError(w, "contact is required", http.StatusBadRequest)
		return
	}

	request, err := h.requestService.Send(ctx, userID, req.Contact)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to send friend request")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("request_id", request.ID).
		Str("contact_type", request.ContactType).
		Msg("Friend request sent")

	// Push to the recipient if they are online
	if request.RecipientID != nil {
		h.wsHub.NotifyRequestReceived(*request.RecipientID, request)
	}

	respondJSON(w, http.StatusCreated, request)
}

// ListPending handles GET /api/v1/friend-requests/pending
func (h *FriendRequestHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	pending, err := h.requestService.ListPending(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list pending requests")
		respondError(w, "Failed to list pending requests", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, pending)
}

// Accept handles POST /api/v1/friend-requests/{request_id}/accept
func (h *FriendRequestHandler) Accept(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	requestID := chi.URLParam(r, "request_id")

	result, err := h.requestService.Accept(ctx, userID, requestID)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("request_id", requestID).
			Msg("Failed to accept friend request")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("request_id", requestID).
		Str("friend_id", result.FriendID).
		Msg("Friend request accepted")

	// Tell the sender their request went through, if they are online
	h.wsHub.NotifyRequestAccepted(result.SenderID, result)

	respondJSON(w, http.StatusOK, result)
}

// Reject handles POST /api/v1/friend-requests/{request_id}/reject
func (h *FriendRequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	requestID := chi.URLParam(r, "request_id")

	if err := h.requestService.Reject(ctx, userID, requestID); err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("request_id", requestID).
			Msg("Failed to reject friend request")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
