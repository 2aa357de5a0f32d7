package handlers

import (
	"encoding/json"
	"net/http"

	"tracker78-backend/internal/middleware"
	"tracker78-backend/internal/models"
	"tracker78-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// FriendHandler handles friend-list HTTP requests
type FriendHandler struct {
	friendService *services.FriendService
}

// NewFriendHandler creates a new friend handler
func NewFriendHandler(friendService *services.FriendService) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

// AddFriendRequest represents the request body for adding a friend
type AddFriendRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// Add handles POST /api/v1/friends
func (h *FriendHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req AddFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Contact == "" {
		respondError(w, "contact is required", http.StatusBadRequest)
		return
	}

	friend, err := h.friendService.AddFriend(ctx, userID, req.Name, req.Contact)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to add friend")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("friend_id", friend.ID).
		Msg("Friend added")

	respondJSON(w, http.StatusCreated, friend)
}

// List handles GET /api/v1/friends
func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	friends, err := h.friendService.ListFriends(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list friends")
		respondError(w, "Failed to list friends", http.StatusInternalServerError)
		return
	}

	if friends == nil {
		friends = []*models.Friend{}
	}
	respondJSON(w, http.StatusOK, friends)
}

// Remove handles DELETE /api/v1/friends/{friend_id}
func (h *FriendHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	friendID := chi.URLParam(r, "friend_id")

	if friendID == "" {
		respondError(w, "friend_id is required", http.StatusBadRequest)
		return
	}

	if err := h.friendService.RemoveFriend(ctx, userID, friendID); err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("friend_id", friendID).
			Msg("Failed to remove friend")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("friend_id", friendID).
		Msg("Friend removed")

	w.WriteHeader(http.StatusNoContent)
}
