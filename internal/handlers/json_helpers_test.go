package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-judging/internal/models"
)

func TestJSONResponseNormalizesNilSlices(t *testing.T) {
	certifiedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	by := "user-1"

	payload := Envelope{
		Success: true,
		Data: &models.ApprovalStatus{
			RequestID: "req-1",
			Status:    models.StatusPending,
			Required:  []models.Role{models.RoleBoard},
		},
	}

	rec := httptest.NewRecorder()
	require.NoError(t, JSONResponse(rec, 200, payload))
	assert.JSONEq(t, `{
		"success": true,
		"data": {
			"request_id": "req-1",
			"status": "PENDING",
			"required": ["BOARD"],
			"approved": [],
			"rejected": [],
			"applied": false
		}
	}`, rec.Body.String())

	rec = httptest.NewRecorder()
	require.NoError(t, JSONResponse(rec, 200, []models.RoleProgress{
		{Role: models.RoleAuditor, Certified: true, CertifiedBy: &by, CertifiedAt: &certifiedAt},
	}))
	assert.JSONEq(t, `[{"role":"AUDITOR","certified":true,"certified_by":"user-1","certified_at":"2026-03-01T12:00:00Z"}]`, rec.Body.String())
}

func TestNormalizeSlicesInsideMaps(t *testing.T) {
	in := map[models.ScopeKind]models.RoleSet{models.ScopeEvent: nil}

	out, ok := normalizeSlices(in).(map[models.ScopeKind]models.RoleSet)
	require.True(t, ok)
	assert.NotNil(t, out[models.ScopeEvent])
	assert.Empty(t, out[models.ScopeEvent])
	assert.Nil(t, in[models.ScopeEvent], "input must not be modified")
}
