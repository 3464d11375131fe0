package handlers

import (
	"net/http"
	"strconv"

	"event-judging/internal/repository"
	"event-judging/internal/service"
)

// AuditHandler handles audit log requests
type AuditHandler struct {
	auditService *service.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListAuditLogs lists audit logs with pagination (admin only)
// @Summary List audit logs
// @Description Workflow transitions, newest first
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(50)
// @Param user_id query string false "Filter by acting user"
// @Param resource query string false "Filter by resource"
// @Param resource_id query string false "Filter by resource ID"
// @Success 200 {object} Envelope{data=[]models.AuditLog}
// @Failure 401 {object} Envelope "Unauthorized"
// @Failure 403 {object} Envelope "Forbidden - admin only"
// @Router /audit-logs [get]
func (h *AuditHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	limit := 50
	if pageStr := q.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	logs, err := h.auditService.List(r.Context(), repository.AuditFilter{
		UserID:     q.Get("user_id"),
		Resource:   q.Get("resource"),
		ResourceID: q.Get("resource_id"),
		Limit:      limit,
		Offset:     (page - 1) * limit,
	})
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, logs, "")
}
