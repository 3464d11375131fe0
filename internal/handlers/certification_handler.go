package handlers

import (
	"net/http"

	"event-judging/internal/models"
	"event-judging/internal/service"
)

// CertifyRequest names the role slot to fill. Role defaults to JUDGE on
// judge-contestant scopes and to the caller's own role elsewhere.
type CertifyRequest struct {
	Role    string `json:"role,omitempty" validate:"omitempty,role"`
	Comment string `json:"comment,omitempty" validate:"max=500"`
}

// ContestantCertifyRequest certifies either a judge's scores for the
// contestant (judge_id set) or the contestant's category result.
type ContestantCertifyRequest struct {
	CertifyRequest
	JudgeID string `json:"judge_id,omitempty" validate:"omitempty,max=36"`
}

// CertificationHandler handles certification progress and sign-off requests
type CertificationHandler struct {
	certificationService *service.CertificationService
}

// NewCertificationHandler creates a new certification handler
func NewCertificationHandler(certificationService *service.CertificationService) *CertificationHandler {
	return &CertificationHandler{certificationService: certificationService}
}

// GetCategoryProgress returns the per-role certification state of a category
// @Summary Get category progress
// @Description Which required roles have certified the category and whether it is unlocked
// @Tags Certifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} Envelope{data=models.ProgressView}
// @Failure 401 {object} Envelope "Unauthorized"
// @Failure 403 {object} Envelope "Forbidden"
// @Failure 404 {object} Envelope "Category not found"
// @Router /certifications/category/{id}/progress [get]
func (h *CertificationHandler) GetCategoryProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	h.progress(w, r, models.CategoryScope(id))
}

// GetContestantProgress returns the per-role state of a contestant's category result
// @Summary Get contestant progress
// @Tags Certifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param cid path string true "Contestant ID"
// @Success 200 {object} Envelope{data=models.ProgressView}
// @Failure 404 {object} Envelope "Contestant not in category"
// @Router /certifications/category/{id}/contestant/{cid}/progress [get]
func (h *CertificationHandler) GetContestantProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	cid, ok := pathID(w, r, "cid")
	if !ok {
		return
	}
	h.progress(w, r, models.ContestantCategoryScope(cid, id))
}

// GetJudgeContestantProgress returns whether a judge has certified a contestant
// @Summary Get judge-contestant progress
// @Tags Certifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param cid path string true "Contestant ID"
// @Param jid path string true "Judge ID"
// @Success 200 {object} Envelope{data=models.ProgressView}
// @Failure 404 {object} Envelope "Judge or contestant not in category"
// @Router /certifications/category/{id}/contestant/{cid}/judge/{jid}/progress [get]
func (h *CertificationHandler) GetJudgeContestantProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	cid, ok := pathID(w, r, "cid")
	if !ok {
		return
	}
	jid, ok := pathID(w, r, "jid")
	if !ok {
		return
	}
	h.progress(w, r, models.JudgeContestantScope(jid, cid, id))
}

// GetContestProgress returns the per-role certification state of a contest
// @Summary Get contest progress
// @Tags Certifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contest ID"
// @Success 200 {object} Envelope{data=models.ProgressView}
// @Failure 404 {object} Envelope "Contest not found"
// @Router /certifications/contest/{id}/progress [get]
func (h *CertificationHandler) GetContestProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	h.progress(w, r, models.ContestScope(id))
}

// GetEventProgress returns the per-role certification state of an event
// @Summary Get event progress
// @Tags Certifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} Envelope{data=models.ProgressView}
// @Failure 404 {object} Envelope "Event not found"
// @Router /certifications/event/{id}/progress [get]
func (h *CertificationHandler) GetEventProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	h.progress(w, r, models.EventScope(id))
}

func (h *CertificationHandler) progress(w http.ResponseWriter, r *http.Request, scope models.ScopeRef) {
	view, err := h.certificationService.GetProgress(r.Context(), scope)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view, "")
}

// GetCategoryTracker summarizes every certification beneath a category
// @Summary Get category tracker
// @Description Per contestant: certified and pending judges, contestant-level roles
// @Tags Certifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} Envelope{data=models.CategoryTracker}
// @Failure 404 {object} Envelope "Category not found"
// @Router /certifications/category/{id}/tracker [get]
func (h *CertificationHandler) GetCategoryTracker(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	tracker, err := h.certificationService.GetCategoryTracker(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tracker, "")
}

// CertifyContestant certifies a judge-contestant or contestant-category scope
// @Summary Certify contestant
// @Description With judge_id the judge's scores for the contestant are certified, otherwise the contestant's category result (gated on all judges)
// @Tags Certifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param cid path string true "Contestant ID"
// @Param request body ContestantCertifyRequest false "Slot and comment"
// @Success 201 {object} Envelope{data=models.Certification}
// @Failure 403 {object} Envelope "Role may not fill the slot"
// @Failure 404 {object} Envelope "Scope not found"
// @Failure 409 {object} Envelope "Already certified or lower levels incomplete"
// @Failure 422 {object} Envelope "Invalid input"
// @Router /certifications/category/{id}/contestant/{cid}/certify [post]
func (h *CertificationHandler) CertifyContestant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	cid, ok := pathID(w, r, "cid")
	if !ok {
		return
	}
	var req ContestantCertifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	scope := models.ContestantCategoryScope(cid, id)
	if req.JudgeID != "" {
		scope = models.JudgeContestantScope(req.JudgeID, cid, id)
	}
	h.certify(w, r, scope, req.CertifyRequest)
}

// CertifyCategory certifies a category
// @Summary Certify category
// @Description Requires every contestant and judge certification beneath the category
// @Tags Certifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param request body CertifyRequest false "Slot and comment"
// @Success 201 {object} Envelope{data=models.Certification}
// @Failure 403 {object} Envelope "Role may not fill the slot"
// @Failure 404 {object} Envelope "Category not found"
// @Failure 409 {object} Envelope "Already certified or lower levels incomplete"
// @Router /certifications/category/{id}/certify [post]
func (h *CertificationHandler) CertifyCategory(w http.ResponseWriter, r *http.Request) {
	h.certifySingle(w, r, models.CategoryScope)
}

// CertifyContest certifies a contest
// @Summary Certify contest
// @Description Requires every category of the contest to be fully certified
// @Tags Certifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contest ID"
// @Param request body CertifyRequest false "Slot and comment"
// @Success 201 {object} Envelope{data=models.Certification}
// @Failure 409 {object} Envelope "Already certified or lower levels incomplete"
// @Router /certifications/contest/{id}/certify [post]
func (h *CertificationHandler) CertifyContest(w http.ResponseWriter, r *http.Request) {
	h.certifySingle(w, r, models.ContestScope)
}

// CertifyEvent certifies an event
// @Summary Certify event
// @Description Requires every contest of the event to be fully certified
// @Tags Certifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body CertifyRequest false "Slot and comment"
// @Success 201 {object} Envelope{data=models.Certification}
// @Failure 409 {object} Envelope "Already certified or lower levels incomplete"
// @Router /certifications/event/{id}/certify [post]
func (h *CertificationHandler) CertifyEvent(w http.ResponseWriter, r *http.Request) {
	h.certifySingle(w, r, models.EventScope)
}

func (h *CertificationHandler) certifySingle(w http.ResponseWriter, r *http.Request, scopeOf func(string) models.ScopeRef) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req CertifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.certify(w, r, scopeOf(id), req)
}

func (h *CertificationHandler) certify(w http.ResponseWriter, r *http.Request, scope models.ScopeRef, req CertifyRequest) {
	a, ok := actor(w, r)
	if !ok {
		return
	}

	// an empty role stays empty so the service picks the default slot
	var role models.Role
	if req.Role != "" {
		parsed, err := models.ParseRole(req.Role)
		if err != nil {
			respondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		role = parsed
	}

	cert, err := h.certificationService.Certify(r.Context(), service.CertifyInput{
		Scope:   scope,
		Role:    role,
		Comment: req.Comment,
	}, a)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, cert, "Certified "+scope.String()+" as "+string(cert.Role))
}
