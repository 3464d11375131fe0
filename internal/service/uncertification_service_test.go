package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-judging/internal/models"
	"event-judging/internal/service"
	"event-judging/internal/testutil"
)

const auditorAndBoard = `
[uncertification]
signers = ["AUDITOR", "BOARD"]
`

func TestUncertificationScenario(t *testing.T) {
	env := newTestEnv(t, auditorAndBoard)
	ctx := context.Background()
	category := env.fx.Category.ID
	j1 := env.fx.Judges[0]
	env.fx.CertifyAllJudges(t, category)
	before := env.fx.CountCertifications(t)

	req, err := env.uncertifications.Request(ctx, j1.ID, category, "scored the wrong round", testutil.JudgeActor(0))
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, req.Status)

	// J1 holding a signer role still cannot sign their own request
	_, err = env.uncertifications.Sign(ctx, req.ID, models.Actor{UserID: j1.UserID, Role: models.RoleAuditor})
	require.ErrorIs(t, err, service.ErrForbidden)

	status, err := env.uncertifications.Sign(ctx, req.ID, testutil.Actor(models.RoleAuditor))
	require.NoError(t, err)
	assert.False(t, status.AllSigned)
	assert.Equal(t, []models.Role{models.RoleAuditor}, status.Signed)

	_, err = env.uncertifications.Execute(ctx, req.ID, testutil.Actor(models.RoleBoard))
	require.ErrorIs(t, err, service.ErrConflict)
	assert.Contains(t, err.Error(), "not all parties have signed")
	assert.Equal(t, before, env.fx.CountCertifications(t), "a refused execute removes nothing")

	status, err = env.uncertifications.Sign(ctx, req.ID, testutil.Actor(models.RoleBoard))
	require.NoError(t, err)
	assert.True(t, status.AllSigned)

	// signing again is a no-op
	status, err = env.uncertifications.Sign(ctx, req.ID, models.Actor{UserID: "another-board-member", Role: models.RoleBoard})
	require.NoError(t, err)
	assert.True(t, status.AllSigned)
	assert.Len(t, status.Signed, 2)

	result, err := env.uncertifications.Execute(ctx, req.ID, testutil.Actor(models.RoleBoard))
	require.NoError(t, err)
	assert.Equal(t, len(env.fx.Contestants), result.CertificationsRemoved)
	assert.Equal(t, len(env.fx.Contestants), result.ScoresRemoved)
	assert.Zero(t, result.CertificationsAbove)
	assert.NotContains(t, result.Message, "reset")

	remaining, err := env.store.Read().Certifications.CountJudgeCategory(ctx, j1.ID, category)
	require.NoError(t, err)
	assert.Zero(t, remaining)
	assert.Equal(t, before-result.CertificationsRemoved, env.fx.CountCertifications(t), "other judges keep theirs")

	final, err := env.uncertifications.GetStatus(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, final.Request.Status)
	assert.NotNil(t, final.Request.ExecutedAt)

	_, err = env.uncertifications.Execute(ctx, req.ID, testutil.Actor(models.RoleBoard))
	require.ErrorIs(t, err, service.ErrConflict)
	_, err = env.uncertifications.Sign(ctx, req.ID, testutil.Actor(models.RoleAuditor))
	require.ErrorIs(t, err, service.ErrConflict)
}

func TestRequestUncertificationChecks(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	category := env.fx.Category.ID
	j1 := env.fx.Judges[0].ID

	_, err := env.uncertifications.Request(ctx, j1, category, "", testutil.JudgeActor(0))
	require.ErrorIs(t, err, service.ErrValidation)

	_, err = env.uncertifications.Request(ctx, j1, category, "wrong round", testutil.Actor(models.RoleTallyMaster))
	require.ErrorIs(t, err, service.ErrForbidden)

	_, err = env.uncertifications.Request(ctx, j1, category, "wrong round", testutil.JudgeActor(1))
	require.ErrorIs(t, err, service.ErrForbidden, "judges act only for themselves")

	_, err = env.uncertifications.Request(ctx, env.fx.Judges[1].ID, env.fx.Other.ID, "wrong round", testutil.JudgeActor(1))
	require.ErrorIs(t, err, service.ErrNotFound)

	_, err = env.uncertifications.Request(ctx, "judge-404", category, "wrong round", testutil.JudgeActor(0))
	require.ErrorIs(t, err, service.ErrNotFound)

	_, err = env.uncertifications.Request(ctx, j1, category, "wrong round", testutil.JudgeActor(0))
	require.NoError(t, err)
	_, err = env.uncertifications.Request(ctx, j1, category, "still wrong", testutil.JudgeActor(0))
	require.ErrorIs(t, err, service.ErrConflict)

	// a different category is a different request
	_, err = env.uncertifications.Request(ctx, j1, env.fx.Other.ID, "wrong round", testutil.JudgeActor(0))
	require.NoError(t, err)
}

func TestRejectUncertification(t *testing.T) {
	env := newTestEnv(t, auditorAndBoard)
	ctx := context.Background()
	category := env.fx.Category.ID

	req, err := env.uncertifications.Request(ctx, env.fx.Judges[0].ID, category, "wrong round", testutil.JudgeActor(0))
	require.NoError(t, err)

	_, err = env.uncertifications.Reject(ctx, req.ID, "no reason", testutil.Actor(models.RoleTallyMaster))
	require.ErrorIs(t, err, service.ErrForbidden)

	_, err = env.uncertifications.Reject(ctx, req.ID, "", testutil.Actor(models.RoleAuditor))
	require.ErrorIs(t, err, service.ErrValidation)

	rejected, err := env.uncertifications.Reject(ctx, req.ID, "scores verified", testutil.Actor(models.RoleAuditor))
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "scores verified", *rejected.RejectionReason)

	_, err = env.uncertifications.Sign(ctx, req.ID, testutil.Actor(models.RoleBoard))
	require.ErrorIs(t, err, service.ErrConflict)

	// a fully signed request is still dead once rejected
	env.fx.CertifyAllJudges(t, category)
	before := env.fx.CountCertifications(t)
	signed, err := env.uncertifications.Request(ctx, env.fx.Judges[1].ID, category, "wrong sheet", testutil.JudgeActor(1))
	require.NoError(t, err)
	for _, role := range []models.Role{models.RoleAuditor, models.RoleBoard} {
		status, err := env.uncertifications.Sign(ctx, signed.ID, testutil.Actor(role))
		require.NoError(t, err)
		require.Equal(t, role == models.RoleBoard, status.AllSigned)
	}
	_, err = env.uncertifications.Reject(ctx, signed.ID, "judge confirmed the sheet", testutil.Actor(models.RoleBoard))
	require.NoError(t, err)
	_, err = env.uncertifications.Execute(ctx, signed.ID, testutil.Actor(models.RoleAuditor))
	require.ErrorIs(t, err, service.ErrConflict)
	assert.Equal(t, before, env.fx.CountCertifications(t), "a rejected request removes nothing")

	// a rejected request no longer blocks a new one
	_, err = env.uncertifications.Request(ctx, env.fx.Judges[0].ID, category, "second attempt", testutil.JudgeActor(0))
	require.NoError(t, err)

	pending, err := env.uncertifications.ListRequests(ctx, models.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestSignRequiresSignerRole(t *testing.T) {
	env := newTestEnv(t, auditorAndBoard)
	ctx := context.Background()

	req, err := env.uncertifications.Request(ctx, env.fx.Judges[0].ID, env.fx.Category.ID, "wrong round", testutil.JudgeActor(0))
	require.NoError(t, err)

	_, err = env.uncertifications.Sign(ctx, req.ID, testutil.Actor(models.RoleTallyMaster))
	require.ErrorIs(t, err, service.ErrForbidden)

	_, err = env.uncertifications.Sign(ctx, "request-404", testutil.Actor(models.RoleBoard))
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestExecuteReportsCertificationsAbove(t *testing.T) {
	env := newTestEnv(t, auditorAndBoard)
	ctx := context.Background()
	category := env.fx.Category.ID
	env.completeCategory(t, category)

	req, err := env.uncertifications.Request(ctx, env.fx.Judges[0].ID, category, "scored the wrong round", testutil.JudgeActor(0))
	require.NoError(t, err)
	for _, role := range []models.Role{models.RoleAuditor, models.RoleBoard} {
		_, err := env.uncertifications.Sign(ctx, req.ID, testutil.Actor(role))
		require.NoError(t, err)
	}

	result, err := env.uncertifications.Execute(ctx, req.ID, testutil.Actor(models.RoleBoard))
	require.NoError(t, err)

	above := len(env.fx.Contestants)*len(env.policy.RequiredRoles(models.ScopeContestantCategory)) +
		len(env.policy.RequiredRoles(models.ScopeCategory))
	assert.Equal(t, above, result.CertificationsAbove)
	assert.Contains(t, result.Message, "reset the category")

	progress, err := env.certifications.GetProgress(ctx, models.CategoryScope(category))
	require.NoError(t, err)
	assert.False(t, progress.Unlocked, "the category now sits over a missing judge")
}
