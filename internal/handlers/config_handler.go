package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"event-judging/internal/policy"
)

// HealthChecker is a dependency whose reachability is reported by /health
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// ConfigHandler exposes the effective configuration and health
type ConfigHandler struct {
	policy   *policy.Table
	checkers map[string]HealthChecker
	version  string
}

// NewConfigHandler creates a new config handler. checkers are probed by
// Health under their map key.
func NewConfigHandler(p *policy.Table, version string, checkers map[string]HealthChecker) *ConfigHandler {
	return &ConfigHandler{policy: p, checkers: checkers, version: version}
}

// GetPolicy returns the effective role policy
// @Summary Get role policy
// @Description Required certifying roles per scope, approver and signer quorums, permitted roles per operation
// @Tags Config
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope{data=policy.View}
// @Router /config/policy [get]
func (h *ConfigHandler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.policy.View(), "")
}

// HealthStatus is the body of the health endpoint
type HealthStatus struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}

// Health reports whether every dependency is reachable
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} Envelope{data=HealthStatus}
// @Failure 503 {object} Envelope{data=HealthStatus}
// @Router /health [get]
func (h *ConfigHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := HealthStatus{Status: "healthy", Version: h.version, Checks: make(map[string]string, len(h.checkers))}
	code := http.StatusOK
	for name, checker := range h.checkers {
		if err := checker.HealthCheck(ctx); err != nil {
			status.Checks[name] = err.Error()
			status.Status = "unhealthy"
			code = http.StatusServiceUnavailable
			continue
		}
		status.Checks[name] = "ok"
	}

	if code != http.StatusOK {
		if err := JSONResponse(w, code, Envelope{Data: status, Error: http.StatusText(code), Message: "Service unhealthy"}); err != nil {
			slog.Error("Failed to encode health response", "error", err)
		}
		return
	}
	respondWithJSON(w, code, status, "")
}
