package handlers

import (
	"net/http"
	"strings"

	"event-judging/internal/models"
	"event-judging/internal/repository"
	"event-judging/internal/service"
)

// DeductionRequest represents the request body for proposing a deduction
type DeductionRequest struct {
	CategoryID   string `json:"category_id" validate:"required,max=36"`
	ContestantID string `json:"contestant_id" validate:"required,max=36"`
	Points       int    `json:"points" validate:"gt=0"`
	Reason       string `json:"reason" validate:"required,max=1000"`
}

// DecisionRequest carries an optional comment with an approve or reject
type DecisionRequest struct {
	Comment string `json:"comment,omitempty" validate:"max=500"`
}

// DeductionHandler handles deduction workflow requests
type DeductionHandler struct {
	deductionService *service.DeductionService
}

// NewDeductionHandler creates a new deduction handler
func NewDeductionHandler(deductionService *service.DeductionService) *DeductionHandler {
	return &DeductionHandler{deductionService: deductionService}
}

// CreateRequest proposes a point deduction for a contestant
// @Summary Request deduction
// @Tags Deductions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DeductionRequest true "Deduction"
// @Success 201 {object} Envelope{data=models.DeductionRequest}
// @Failure 403 {object} Envelope "Forbidden"
// @Failure 404 {object} Envelope "Category or contestant not found"
// @Failure 422 {object} Envelope "Invalid input"
// @Router /deductions/request [post]
func (h *DeductionHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var req DeductionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.deductionService.CreateRequest(r.Context(), service.CreateDeductionInput{
		CategoryID:   req.CategoryID,
		ContestantID: req.ContestantID,
		Points:       req.Points,
		Reason:       req.Reason,
	}, a)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created, "Deduction requested")
}

// Approve records the caller's role approval
// @Summary Approve deduction
// @Description The request becomes APPROVED once every required approver role has approved
// @Tags Deductions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deduction request ID"
// @Param request body DecisionRequest false "Comment"
// @Success 200 {object} Envelope{data=models.DeductionRequest}
// @Failure 403 {object} Envelope "Role is not an approver"
// @Failure 404 {object} Envelope "Request not found"
// @Failure 409 {object} Envelope "Already decided"
// @Router /deductions/{id}/approve [post]
func (h *DeductionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, models.DecisionApproved)
}

// Reject records the caller's role rejection, which rejects the request
// @Summary Reject deduction
// @Description A single rejection rejects the request
// @Tags Deductions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deduction request ID"
// @Param request body DecisionRequest false "Comment"
// @Success 200 {object} Envelope{data=models.DeductionRequest}
// @Failure 409 {object} Envelope "Already decided"
// @Router /deductions/{id}/reject [post]
func (h *DeductionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, models.DecisionRejected)
}

func (h *DeductionHandler) decide(w http.ResponseWriter, r *http.Request, decision models.Decision) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var req DecisionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.deductionService.Decide(r.Context(), id, decision, a, req.Comment)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated, "Deduction is "+string(updated.Status))
}

// GetApprovalStatus returns the approver quorum of a request
// @Summary Get deduction approval status
// @Tags Deductions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deduction request ID"
// @Success 200 {object} Envelope{data=models.ApprovalStatus}
// @Failure 404 {object} Envelope "Request not found"
// @Router /deductions/{id}/status [get]
func (h *DeductionHandler) GetApprovalStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	status, err := h.deductionService.GetApprovalStatus(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, status, "")
}

// GetRequest returns a deduction request
// @Summary Get deduction request
// @Tags Deductions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deduction request ID"
// @Success 200 {object} Envelope{data=models.DeductionRequest}
// @Failure 404 {object} Envelope "Request not found"
// @Router /deductions/{id} [get]
func (h *DeductionHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	req, err := h.deductionService.GetRequest(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, req, "")
}

// ListRequests lists deduction requests
// @Summary List deduction requests
// @Tags Deductions
// @Produce json
// @Security BearerAuth
// @Param category_id query string false "Filter by category"
// @Param contestant_id query string false "Filter by contestant"
// @Param status query string false "PENDING, APPROVED or REJECTED"
// @Success 200 {object} Envelope{data=[]models.DeductionRequest}
// @Failure 422 {object} Envelope "Unknown status"
// @Router /deductions [get]
func (h *DeductionHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	requests, err := h.deductionService.ListRequests(r.Context(), repository.DeductionFilter{
		CategoryID:   q.Get("category_id"),
		ContestantID: q.Get("contestant_id"),
		Status:       models.RequestStatus(strings.ToUpper(q.Get("status"))),
	})
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, requests, "")
}

// Apply turns an approved deduction into a score adjustment
// @Summary Apply deduction
// @Description Applies an APPROVED deduction exactly once
// @Tags Deductions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deduction request ID"
// @Success 201 {object} Envelope{data=models.ScoreAdjustment}
// @Failure 404 {object} Envelope "Request not found"
// @Failure 409 {object} Envelope "Not approved or already applied"
// @Router /deductions/{id}/apply [post]
func (h *DeductionHandler) Apply(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	a, ok := actor(w, r)
	if !ok {
		return
	}
	adj, err := h.deductionService.Apply(r.Context(), id, a)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, adj, "Deduction applied")
}
