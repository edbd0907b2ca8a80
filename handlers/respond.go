package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/krushnapatil2025/Task-Manager/logging"
	"github.com/krushnapatil2025/Task-Manager/middleware"
	"github.com/krushnapatil2025/Task-Manager/models"
	"github.com/krushnapatil2025/Task-Manager/services"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondError maps service failures to HTTP statuses. Store failures stay
// opaque to the caller and are logged server-side.
func respondError(w http.ResponseWriter, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": ve.Message, "field": ve.Field})
	case errors.Is(err, services.ErrTaskNotFound):
		respondMessage(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, services.ErrUserNotFound):
		respondMessage(w, http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrForbidden):
		respondMessage(w, http.StatusForbidden, "You are not authorized to perform this action")
	case errors.Is(err, services.ErrInvalidCredentials):
		respondMessage(w, http.StatusUnauthorized, "Invalid email or password")
	default:
		logging.Logger.Errorf("Event ID: REQUEST_FAILED, Description: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Server error")
	}
}

func principalFrom(w http.ResponseWriter, r *http.Request) (models.Principal, bool) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Not authorized")
	}
	return principal, ok
}
