package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Varun5711/noted/internal/logger"
	"github.com/Varun5711/noted/internal/models"
	"github.com/Varun5711/noted/internal/service"
	"github.com/Varun5711/noted/internal/storage"
	"github.com/Varun5711/noted/internal/validation"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	errResp := models.ErrorResponse{
		Error:   "error",
		Message: message,
	}
	respondJSON(w, status, errResp)
}

var validationErrors = []error{
	validation.ErrUsernameTooShort,
	validation.ErrUsernameTooLong,
	validation.ErrUsernameInvalidChars,
	validation.ErrUsernameReserved,
	validation.ErrPasswordTooShort,
	validation.ErrPasswordTooLong,
	validation.ErrTitleEmpty,
	validation.ErrTitleTooLong,
}

func isValidationError(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// respondServiceError maps the service error taxonomy to status codes.
// Unexpected errors turn into an opaque 500; the detail stays in the logs.
func respondServiceError(w http.ResponseWriter, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, storage.ErrNoteNotFound):
		respondError(w, http.StatusNotFound, "note not found")
	case errors.Is(err, storage.ErrUserExists):
		respondError(w, http.StatusConflict, "username already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid username or password")
	case isValidationError(err):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error("Internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
