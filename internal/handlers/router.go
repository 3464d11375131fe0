package handlers

import (
	"net/http"

	"event-judging/internal/middleware"
	"event-judging/internal/models"
	"event-judging/internal/policy"
)

// Router holds everything needed to mount the /api/v1 routes
type Router struct {
	Auth             *middleware.AuthMiddleware
	RBAC             *middleware.RBACMiddleware
	Certifications   *CertificationHandler
	Deductions       *DeductionHandler
	Uncertifications *UncertificationHandler
	Resets           *ResetHandler
	Audit            *AuditHandler
	Config           *ConfigHandler
}

// Register mounts every API route on mux. Each route authenticates the
// bearer token and checks the policy table before reaching the handler;
// the services repeat the check with the full scope.
func (rt *Router) Register(mux *http.ServeMux) {
	guard := func(op policy.Operation, kind models.ScopeKind, h http.HandlerFunc) http.Handler {
		return rt.Auth.Authenticate(rt.RBAC.RequireOperation(op, kind)(h))
	}
	// certifying a contestant fills a judge or a contestant slot depending
	// on the body, the service resolves which
	authenticated := func(h http.HandlerFunc) http.Handler {
		return rt.Auth.Authenticate(h)
	}

	const base = APIBasePath

	// Certification progress
	mux.Handle("GET "+base+"/certifications/category/{id}/progress",
		guard(policy.OpViewProgress, models.ScopeCategory, rt.Certifications.GetCategoryProgress))
	mux.Handle("GET "+base+"/certifications/category/{id}/tracker",
		guard(policy.OpViewProgress, models.ScopeCategory, rt.Certifications.GetCategoryTracker))
	mux.Handle("GET "+base+"/certifications/category/{id}/contestant/{cid}/progress",
		guard(policy.OpViewProgress, models.ScopeContestantCategory, rt.Certifications.GetContestantProgress))
	mux.Handle("GET "+base+"/certifications/category/{id}/contestant/{cid}/judge/{jid}/progress",
		guard(policy.OpViewProgress, models.ScopeJudgeContestant, rt.Certifications.GetJudgeContestantProgress))
	mux.Handle("GET "+base+"/certifications/contest/{id}/progress",
		guard(policy.OpViewProgress, models.ScopeContest, rt.Certifications.GetContestProgress))
	mux.Handle("GET "+base+"/certifications/event/{id}/progress",
		guard(policy.OpViewProgress, models.ScopeEvent, rt.Certifications.GetEventProgress))

	// Certification sign-off
	mux.Handle("POST "+base+"/certifications/category/{id}/contestant/{cid}/certify",
		authenticated(rt.Certifications.CertifyContestant))
	mux.Handle("POST "+base+"/certifications/category/{id}/certify",
		guard(policy.OpCertify, models.ScopeCategory, rt.Certifications.CertifyCategory))
	mux.Handle("POST "+base+"/certifications/contest/{id}/certify",
		guard(policy.OpCertify, models.ScopeContest, rt.Certifications.CertifyContest))
	mux.Handle("POST "+base+"/certifications/event/{id}/certify",
		guard(policy.OpCertify, models.ScopeEvent, rt.Certifications.CertifyEvent))

	mux.Handle("POST "+base+"/bulk-certification-reset",
		guard(policy.OpResetCertifications, "", rt.Resets.Reset))

	// Deductions
	mux.Handle("POST "+base+"/deductions/request",
		guard(policy.OpCreateDeduction, "", rt.Deductions.CreateRequest))
	mux.Handle("GET "+base+"/deductions",
		guard(policy.OpViewDeduction, "", rt.Deductions.ListRequests))
	mux.Handle("GET "+base+"/deductions/{id}",
		guard(policy.OpViewDeduction, "", rt.Deductions.GetRequest))
	mux.Handle("GET "+base+"/deductions/{id}/status",
		guard(policy.OpViewDeduction, "", rt.Deductions.GetApprovalStatus))
	mux.Handle("POST "+base+"/deductions/{id}/approve",
		guard(policy.OpDecideDeduction, "", rt.Deductions.Approve))
	mux.Handle("POST "+base+"/deductions/{id}/reject",
		guard(policy.OpDecideDeduction, "", rt.Deductions.Reject))
	mux.Handle("POST "+base+"/deductions/{id}/apply",
		guard(policy.OpApplyDeduction, "", rt.Deductions.Apply))

	// Judge uncertification
	mux.Handle("POST "+base+"/judge-uncertification/request",
		guard(policy.OpRequestUncertification, "", rt.Uncertifications.CreateRequest))
	mux.Handle("GET "+base+"/judge-uncertification",
		guard(policy.OpViewUncertification, "", rt.Uncertifications.ListRequests))
	mux.Handle("GET "+base+"/judge-uncertification/{id}",
		guard(policy.OpViewUncertification, "", rt.Uncertifications.GetStatus))
	mux.Handle("POST "+base+"/judge-uncertification/{id}/approve",
		guard(policy.OpSignUncertification, "", rt.Uncertifications.Sign))
	mux.Handle("POST "+base+"/judge-uncertification/{id}/reject",
		guard(policy.OpRejectUncertification, "", rt.Uncertifications.Reject))
	mux.Handle("POST "+base+"/judge-uncertification/{id}/execute",
		guard(policy.OpExecuteUncertification, "", rt.Uncertifications.Execute))

	// Admin and config
	mux.Handle("GET "+base+"/audit-logs",
		guard(policy.OpViewAudit, "", rt.Audit.ListAuditLogs))
	mux.Handle("GET "+base+"/config/policy",
		guard(policy.OpViewPolicy, "", rt.Config.GetPolicy))

	mux.HandleFunc("GET /health", rt.Config.Health)
}
