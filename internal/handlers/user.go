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

// UserHandler handles account-related HTTP requests
type UserHandler struct {
	userService   *services.UserService
	avatarService *services.AvatarService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, avatarService *services.AvatarService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		avatarService: avatarService,
	}
}

// SignupRequest represents the request body for creating an account
type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse carries an account and its bearer token
type SessionResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Signup handles POST /api/v1/auth/signup
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, "email and password are required", http.StatusBadRequest)
		return
	}

	user, token, err := h.userService.Signup(ctx, req.Email, req.Name, req.Password)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to sign up")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	log.Info().Str("user_id", user.ID).Msg("User created")
	respondJSON(w, http.StatusCreated, SessionResponse{User: user, Token: token})
}

// Login handles POST /api/v1/auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, token, err := h.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		log.Warn().Str("email", req.Email).Msg("Login failed")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	respondJSON(w, http.StatusOK, SessionResponse{User: user, Token: token})
}

// Account handles GET /api/v1/account
func (h *UserHandler) Account(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	user, err := h.userService.GetAccount(ctx, userID)
	if err != nil {
		respondError(w, err.Error(), statusFor(err))
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// Search handles GET /api/v1/users/search?q=
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	term := r.URL.Query().Get("q")

	users, err := h.userService.Search(ctx, term)
	if err != nil {
		log.Error().Err(err).Str("term", term).Msg("Failed to search users")
		respondError(w, "Failed to search users", http.StatusInternalServerError)
		return
	}

	if users == nil {
		users = []*models.User{}
	}
	respondJSON(w, http.StatusOK, users)
}

// Profile handles GET /api/v1/users/{user_id}
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "user_id")

	user, err := h.userService.GetAccount(ctx, userID)
	if err != nil {
		respondError(w, err.Error(), statusFor(err))
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// AvatarUploadRequest represents the request body for an avatar upload
type AvatarUploadRequest struct {
	ContentType string `json:"content_type"`
}

// Avatar handles POST /api/v1/users/avatar
func (h *UserHandler) Avatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req AvatarUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ContentType == "" {
		req.ContentType = "image/jpeg"
	}

	resp, err := h.avatarService.PresignUpload(ctx, userID, req.ContentType)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to presign avatar upload")
		respondError(w, err.Error(), statusFor(err))
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// Health handles GET /api/v1/health
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
