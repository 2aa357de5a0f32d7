package handlers

import (
	"net/http"

	"tracker78-backend/internal/middleware"
	"tracker78-backend/internal/models"
	"tracker78-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// SharingHandler handles location-sharing HTTP requests
type SharingHandler struct {
	sharingService *services.SharingService
}

// NewSharingHandler creates a new sharing handler
func NewSharingHandler(sharingService *services.SharingService) *SharingHandler {
	return &SharingHandler{sharingService: sharingService}
}

// Enable handles POST /api/v1/location-sharing/{friend_id}/enable
func (h *SharingHandler) Enable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	friendID := chi.URLParam(r, "friend_id")

	if err := h.sharingService.Enable(ctx, userID, friendID); err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("friend_id", friendID).
			Msg("Failed to enable location sharing")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("friend_id", friendID).
		Msg("Location sharing enabled")

	respondJSON(w, http.StatusOK, map[string]bool{"enabled": true})
}

// Disable handles POST /api/v1/location-sharing/{friend_id}/disable
func (h *SharingHandler) Disable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	friendID := chi.URLParam(r, "friend_id")

	if err := h.sharingService.Disable(ctx, userID, friendID); err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("friend_id", friendID).
			Msg("Failed to disable location sharing")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"enabled": false})
}

// SharedWithMe handles GET /api/v1/location-sharing/shared-with-me
func (h *SharingHandler) SharedWithMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	shares, err := h.sharingService.SharedWithMe(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list shares")
		respondError(w, "Failed to list shares", http.StatusInternalServerError)
		return
	}

	if shares == nil {
		shares = []*models.LocationShare{}
	}
	respondJSON(w, http.StatusOK, shares)
}
