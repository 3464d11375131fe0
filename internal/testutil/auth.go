package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"event-judging/internal/auth"
	"event-judging/internal/models"
)

// AuthHelper provides JWT token generation for tests
type AuthHelper struct {
	Service *auth.Service
}

// NewAuthHelper creates a new auth helper with a fresh signing key
func NewAuthHelper(t *testing.T) *AuthHelper {
	t.Helper()
	key, err := auth.GenerateKey()
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	return &AuthHelper{Service: auth.NewServiceWithKey(key, time.Hour)}
}

// AddAuthHeader adds an authorization header to the request
func (h *AuthHelper) AddAuthHeader(t *testing.T, req *http.Request, actor models.Actor) {
	t.Helper()

	token, err := h.Service.GenerateToken(actor.UserID, actor.Role)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
}

// CreateAuthenticatedRequest creates a request with auth header
func (h *AuthHelper) CreateAuthenticatedRequest(t *testing.T, method, url string, body string, actor models.Actor) *http.Request {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, url, nil)
	} else {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	h.AddAuthHeader(t, req, actor)
	return req
}
