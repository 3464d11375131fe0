package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"event-judging/internal/middleware"
	"event-judging/internal/models"
	"event-judging/internal/service"
	"event-judging/pkg/validator"
)

// maxBodyBytes caps request bodies; every request DTO is tiny
const maxBodyBytes = 1 << 20

// Envelope is the uniform response body of every API endpoint
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// respondWithJSON writes a successful envelope
func respondWithJSON(w http.ResponseWriter, code int, data any, message string) {
	if err := JSONResponse(w, code, Envelope{Success: true, Data: data, Message: message}); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// respondWithError writes a failed envelope. error carries the status text,
// message the human readable cause.
func respondWithError(w http.ResponseWriter, code int, message string) {
	if err := JSONResponse(w, code, Envelope{Error: http.StatusText(code), Message: message}); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}

// respondWithServiceError maps workflow error kinds onto status codes.
// Anything unclassified is logged and answered generically.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var we *service.WorkflowError
	if errors.As(err, &we) {
		switch {
		case errors.Is(err, service.ErrForbidden):
			respondWithError(w, http.StatusForbidden, we.Message)
			return
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, we.Message)
			return
		case errors.Is(err, service.ErrConflict):
			respondWithError(w, http.StatusConflict, we.Message)
			return
		case errors.Is(err, service.ErrValidation):
			respondWithError(w, http.StatusUnprocessableEntity, we.Message)
			return
		}
	}

	slog.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	respondWithError(w, http.StatusInternalServerError, ErrMsgInternal)
}

// decodeJSON reads and validates a request body into dst. An empty body
// is accepted so that optional-only DTOs can be omitted. It writes the
// error response itself and reports whether the handler may continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return false
	}
	if err := validator.ValidateStruct(dst); err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return false
	}
	return true
}

// pathID returns a trimmed path value, answering 400 when it is blank
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := strings.TrimSpace(r.PathValue(name))
	if id == "" {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return "", false
	}
	return id, true
}

// actor returns the authenticated principal, answering 401 without one
func actor(w http.ResponseWriter, r *http.Request) (models.Actor, bool) {
	a, ok := middleware.GetActor(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
	}
	return a, ok
}
