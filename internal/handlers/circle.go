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

// CircleHandler handles circle HTTP requests
type CircleHandler struct {
	circleService *services.CircleService
}

// NewCircleHandler creates a new circle handler
func NewCircleHandler(circleService *services.CircleService) *CircleHandler {
	return &CircleHandler{circleService: circleService}
}

// CreateCircleRequest represents the request body for creating a circle
type CreateCircleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Create handles POST /api/v1/circles
func (h *CircleHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req CreateCircleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		respondError(w, "name is required", http.StatusBadRequest)
		return
	}

	circle, err := h.circleService.CreateCircle(ctx, userID, req.Name, req.Description)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create circle")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("circle_id", circle.ID).
		Str("join_code", circle.JoinCode).
		Msg("Circle created")

	respondJSON(w, http.StatusCreated, circle)
}

// JoinCircleRequest represents the request body for joining a circle
type JoinCircleRequest struct {
	JoinCode string `json:"join_code"`
}

// Join handles POST /api/v1/circles/join
func (h *CircleHandler) Join(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req JoinCircleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.JoinCode == "" {
		respondError(w, "join_code is required", http.StatusBadRequest)
		return
	}
	if len(req.JoinCode) != 6 {
		respondError(w, "join_code must be 6 characters", http.StatusBadRequest)
		return
	}

	circle, err := h.circleService.JoinByCode(ctx, userID, req.JoinCode)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("join_code", req.JoinCode).
			Msg("Failed to join circle")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("circle_id", circle.ID).
		Msg("Joined circle")

	respondJSON(w, http.StatusOK, circle)
}

// Members handles GET /api/v1/circles/{circle_id}/members
func (h *CircleHandler) Members(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	circleID := chi.URLParam(r, "circle_id")

	members, err := h.circleService.Members(ctx, circleID, userID)
	if err != nil {
		respondError(w, err.Error(), statusFor(err))
		return
	}

	if members == nil {
		members = []*models.CircleMember{}
	}
	respondJSON(w, http.StatusOK, members)
}

// Leave handles POST /api/v1/circles/{circle_id}/leave
func (h *CircleHandler) Leave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	circleID := chi.URLParam(r, "circle_id")

	if err := h.circleService.Leave(ctx, circleID, userID); err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("circle_id", circleID).
			Msg("Failed to leave circle")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("circle_id", circleID).
		Msg("Left circle")

	w.WriteHeader(http.StatusNoContent)
}
