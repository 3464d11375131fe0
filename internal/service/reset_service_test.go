package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-judging/internal/models"
	"event-judging/internal/service"
	"event-judging/internal/testutil"
)

func TestResetCategoryCascades(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	env.completeCategory(t, env.fx.Category.ID)
	env.completeCategory(t, env.fx.Other.ID)
	total := env.fx.CountCertifications(t)

	result, err := env.resets.Reset(ctx, models.CategoryScope(env.fx.Category.ID), testutil.Actor(models.RoleBoard))
	require.NoError(t, err)

	// 2 judges x 2 contestants, 2 contestants x 2 roles, 4 category roles
	assert.Equal(t, 4, result.ByKind[models.ScopeJudgeContestant])
	assert.Equal(t, 4, result.ByKind[models.ScopeContestantCategory])
	assert.Equal(t, 4, result.ByKind[models.ScopeCategory])
	assert.Equal(t, 12, result.Removed)
	assert.Equal(t, env.fx.Contest.ID, result.Scope.ContestID)
	assert.Equal(t, total-12, env.fx.CountCertifications(t), "the other category is untouched")

	progress, err := env.certifications.GetProgress(ctx, models.CategoryScope(env.fx.Other.ID))
	require.NoError(t, err)
	assert.True(t, progress.Complete)
}

func TestResetContestLeavesNothingBehind(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	env.completeCategory(t, env.fx.Category.ID)
	env.completeCategory(t, env.fx.Other.ID)
	for _, role := range env.policy.RequiredRoles(models.ScopeContest) {
		env.fx.Insert(t, models.ContestScope(env.fx.Contest.ID), role)
	}
	total := env.fx.CountCertifications(t)

	result, err := env.resets.Reset(ctx, models.ContestScope(env.fx.Contest.ID), testutil.Actor(models.RoleOrganizer))
	require.NoError(t, err)
	assert.Equal(t, total, result.Removed)
	assert.Zero(t, env.fx.CountCertifications(t))
}

func TestResetChecks(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	_, err := env.resets.Reset(ctx, models.CategoryScope(env.fx.Category.ID), testutil.Actor(models.RoleTallyMaster))
	require.ErrorIs(t, err, service.ErrForbidden)

	_, err = env.resets.Reset(ctx,
		models.JudgeContestantScope(env.fx.Judges[0].ID, env.fx.Contestants[0].ID, env.fx.Category.ID),
		testutil.Actor(models.RoleAdmin))
	require.ErrorIs(t, err, service.ErrValidation)

	_, err = env.resets.Reset(ctx, models.EventScope("event-404"), testutil.Actor(models.RoleAdmin))
	require.ErrorIs(t, err, service.ErrNotFound)

	result, err := env.resets.Reset(ctx, models.EventScope(env.fx.Event.ID), testutil.Actor(models.RoleAdmin))
	require.NoError(t, err)
	assert.Zero(t, result.Removed, "resetting an uncertified event is not an error")
}

func TestResetRollsBackOnFailure(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	env.completeCategory(t, env.fx.Category.ID)
	env.completeCategory(t, env.fx.Other.ID)
	for _, role := range env.policy.RequiredRoles(models.ScopeContest) {
		env.fx.Insert(t, models.ContestScope(env.fx.Contest.ID), role)
	}
	before := env.fx.CountCertifications(t)

	// categories and below are deleted before the contest rows, so this
	// fails the cascade half way through
	_, err := env.fx.DB.Exec(`
		CREATE TRIGGER fail_contest_reset BEFORE DELETE ON certifications
		WHEN OLD.scope_type = 'CONTEST'
		BEGIN
			SELECT RAISE(ABORT, 'simulated failure');
		END
	`)
	require.NoError(t, err)

	_, err = env.resets.Reset(ctx, models.ContestScope(env.fx.Contest.ID), testutil.Actor(models.RoleBoard))
	require.Error(t, err)
	var wfErr *service.WorkflowError
	assert.False(t, errors.As(err, &wfErr), "storage failures are not workflow errors")

	assert.Equal(t, before, env.fx.CountCertifications(t))
	progress, err := env.certifications.GetProgress(ctx, models.CategoryScope(env.fx.Category.ID))
	require.NoError(t, err)
	assert.True(t, progress.Complete)
	assert.True(t, progress.Unlocked)
}
