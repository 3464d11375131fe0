package handlers

import (
	"net/http"
	"strings"

	"event-judging/internal/models"
	"event-judging/internal/service"
)

// UncertificationRequest represents the request body a judge files to
// revoke their own certifications in a category
type UncertificationRequest struct {
	JudgeID    string `json:"judge_id" validate:"required,max=36"`
	CategoryID string `json:"category_id" validate:"required,max=36"`
	Reason     string `json:"reason" validate:"required,max=1000"`
}

// RejectUncertificationRequest carries the reason a request is turned down
type RejectUncertificationRequest struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

// UncertificationHandler handles judge uncertification requests
type UncertificationHandler struct {
	uncertificationService *service.UncertificationService
}

// NewUncertificationHandler creates a new uncertification handler
func NewUncertificationHandler(uncertificationService *service.UncertificationService) *UncertificationHandler {
	return &UncertificationHandler{uncertificationService: uncertificationService}
}

// CreateRequest files an uncertification request for the calling judge
// @Summary Request judge uncertification
// @Tags Uncertification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UncertificationRequest true "Judge, category and reason"
// @Success 201 {object} Envelope{data=models.UncertificationRequest}
// @Failure 403 {object} Envelope "Only the judge may request"
// @Failure 404 {object} Envelope "Judge or category not found"
// @Failure 409 {object} Envelope "A request is already pending"
// @Router /judge-uncertification/request [post]
func (h *UncertificationHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var req UncertificationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.uncertificationService.Request(r.Context(), req.JudgeID, req.CategoryID, req.Reason, a)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created, "Uncertification requested")
}

// Sign adds the caller's role signature
// @Summary Sign uncertification request
// @Description Idempotent per role; the requester cannot sign
// @Tags Uncertification
// @Produce json
// @Security BearerAuth
// @Param id path string true "Uncertification request ID"
// @Success 200 {object} Envelope{data=models.SignatureStatus}
// @Failure 403 {object} Envelope "Not a signer or is the requester"
// @Failure 404 {object} Envelope "Request not found"
// @Failure 409 {object} Envelope "Request no longer pending"
// @Router /judge-uncertification/{id}/approve [post]
func (h *UncertificationHandler) Sign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	a, ok := actor(w, r)
	if !ok {
		return
	}
	status, err := h.uncertificationService.Sign(r.Context(), id, a)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	message := "Signature recorded"
	if status.AllSigned {
		message = "All parties have signed"
	}
	respondWithJSON(w, http.StatusOK, status, message)
}

// Execute removes the judge's certifications and scores once fully signed
// @Summary Execute uncertification
// @Tags Uncertification
// @Produce json
// @Security BearerAuth
// @Param id path string true "Uncertification request ID"
// @Success 200 {object} Envelope{data=models.ExecuteResult}
// @Failure 404 {object} Envelope "Request not found"
// @Failure 409 {object} Envelope "Signatures missing or request not pending"
// @Router /judge-uncertification/{id}/execute [post]
func (h *UncertificationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	a, ok := actor(w, r)
	if !ok {
		return
	}
	result, err := h.uncertificationService.Execute(r.Context(), id, a)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result, result.Message)
}

// Reject turns down a pending request
// @Summary Reject uncertification
// @Tags Uncertification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Uncertification request ID"
// @Param request body RejectUncertificationRequest true "Reason"
// @Success 200 {object} Envelope{data=models.UncertificationRequest}
// @Failure 409 {object} Envelope "Request no longer pending"
// @Router /judge-uncertification/{id}/reject [post]
func (h *UncertificationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var req RejectUncertificationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rejected, err := h.uncertificationService.Reject(r.Context(), id, req.Reason, a)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, rejected, "Uncertification rejected")
}

// GetStatus returns a request with its signatures
// @Summary Get uncertification request
// @Tags Uncertification
// @Produce json
// @Security BearerAuth
// @Param id path string true "Uncertification request ID"
// @Success 200 {object} Envelope{data=models.SignatureStatus}
// @Failure 404 {object} Envelope "Request not found"
// @Router /judge-uncertification/{id} [get]
func (h *UncertificationHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	status, err := h.uncertificationService.GetStatus(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, status, "")
}

// ListRequests lists uncertification requests
// @Summary List uncertification requests
// @Tags Uncertification
// @Produce json
// @Security BearerAuth
// @Param status query string false "PENDING, APPROVED or REJECTED"
// @Success 200 {object} Envelope{data=[]models.UncertificationRequest}
// @Failure 422 {object} Envelope "Unknown status"
// @Router /judge-uncertification [get]
func (h *UncertificationHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	status := models.RequestStatus(strings.ToUpper(r.URL.Query().Get("status")))
	requests, err := h.uncertificationService.ListRequests(r.Context(), status)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, requests, "")
}
