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

// LocationHandler handles location HTTP requests
type LocationHandler struct {
	locationService *services.LocationService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locationService *services.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// UpdateLocationRequest represents the request body for a location update
type UpdateLocationRequest struct {
	CircleID  *string `json:"circle_id,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Update handles POST /api/v1/locations
func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req UpdateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	loc, err := h.locationService.Update(ctx, userID, req.CircleID, req.Latitude, req.Longitude)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to record location")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	respondJSON(w, http.StatusCreated, loc)
}

// Latest handles GET /api/v1/locations/users/{user_id}/latest
func (h *LocationHandler) Latest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	targetID := chi.URLParam(r, "user_id")

	loc, err := h.locationService.Latest(ctx, targetID)
	if err != nil {
		respondError(w, err.Error(), statusFor(err))
		return
	}

	respondJSON(w, http.StatusOK, loc)
}

// CircleLatest handles GET /api/v1/locations/circles/{circle_id}
func (h *LocationHandler) CircleLatest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	circleID := chi.URLParam(r, "circle_id")

	locs, err := h.locationService.CircleLatest(ctx, circleID, userID)
	if err != nil {
		respondError(w, err.Error(), statusFor(err))
		return
	}

	if locs == nil {
		locs = []*models.Location{}
	}
	respondJSON(w, http.StatusOK, locs)
}

// FriendsLatest handles GET /api/v1/locations/friends/latest
func (h *LocationHandler) FriendsLatest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	locs, err := h.locationService.FriendsLatest(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list friend locations")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	if locs == nil {
		locs = []*models.Location{}
	}
	respondJSON(w, http.StatusOK, locs)
}
