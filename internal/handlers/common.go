package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"tracker78-backend/internal/services"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// respondJSON sends a JSON success response
func respondJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// statusFor maps service failures onto HTTP statuses
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateContact),
		errors.Is(err, services.ErrRequestPending),
		errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidContact),
		errors.Is(err, services.ErrCannotRequestSelf),
		errors.Is(err, services.ErrRequestNotPending):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotMember),
		errors.Is(err, services.ErrNotRequestOwner):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
