package handlers

import (
	"fmt"
	"net/http"

	"event-judging/internal/models"
	"event-judging/internal/service"
)

// ResetRequest names the scope whose certifications, and those of every
// scope beneath it, are removed
type ResetRequest struct {
	ScopeType    string `json:"scope_type" validate:"required"`
	EventID      string `json:"event_id,omitempty" validate:"max=36"`
	ContestID    string `json:"contest_id,omitempty" validate:"max=36"`
	CategoryID   string `json:"category_id,omitempty" validate:"max=36"`
	ContestantID string `json:"contestant_id,omitempty" validate:"max=36"`
}

// ResetHandler handles bulk certification resets
type ResetHandler struct {
	resetService *service.ResetService
}

// NewResetHandler creates a new reset handler
func NewResetHandler(resetService *service.ResetService) *ResetHandler {
	return &ResetHandler{resetService: resetService}
}

// Reset removes every certification under a scope in one transaction
// @Summary Bulk certification reset
// @Description Removes the scope's certifications and all descendants' and returns the count
// @Tags Certifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ResetRequest true "Scope"
// @Success 200 {object} Envelope{data=models.ResetResult}
// @Failure 403 {object} Envelope "Forbidden"
// @Failure 404 {object} Envelope "Scope not found"
// @Failure 422 {object} Envelope "Unsupported scope"
// @Router /bulk-certification-reset [post]
func (h *ResetHandler) Reset(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var req ResetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	kind, err := models.ParseScopeKind(req.ScopeType)
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	result, err := h.resetService.Reset(r.Context(), models.ScopeRef{
		Kind:         kind,
		EventID:      req.EventID,
		ContestID:    req.ContestID,
		CategoryID:   req.CategoryID,
		ContestantID: req.ContestantID,
	}, a)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result, fmt.Sprintf("Removed %d certification(s)", result.Removed))
}
