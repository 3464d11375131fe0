package service_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-judging/internal/models"
	"event-judging/internal/repository"
	"event-judging/internal/service"
	"event-judging/internal/testutil"
)

func createDeduction(t *testing.T, env *testEnv, points int) *models.DeductionRequest {
	t.Helper()
	req, err := env.deductions.CreateRequest(context.Background(), service.CreateDeductionInput{
		CategoryID:   env.fx.Category.ID,
		ContestantID: env.fx.Contestants[0].ID,
		Points:       points,
		Reason:       "late entry",
	}, testutil.JudgeActor(0))
	require.NoError(t, err)
	return req
}

func TestCreateDeductionValidation(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	valid := service.CreateDeductionInput{
		CategoryID:   env.fx.Category.ID,
		ContestantID: env.fx.Contestants[0].ID,
		Points:       5,
		Reason:       "props over time limit",
	}

	tests := []struct {
		name    string
		mutate  func(*service.CreateDeductionInput)
		actor   models.Actor
		wantErr error
	}{
		{
			name:    "negative points",
			mutate:  func(in *service.CreateDeductionInput) { in.Points = -3 },
			actor:   testutil.Actor(models.RoleOrganizer),
			wantErr: service.ErrValidation,
		},
		{
			name:    "blank reason",
			mutate:  func(in *service.CreateDeductionInput) { in.Reason = "   " },
			actor:   testutil.Actor(models.RoleOrganizer),
			wantErr: service.ErrValidation,
		},
		{
			name:    "auditor cannot request",
			actor:   testutil.Actor(models.RoleAuditor),
			wantErr: service.ErrForbidden,
		},
		{
			name:    "unknown category",
			mutate:  func(in *service.CreateDeductionInput) { in.CategoryID = "category-404" },
			actor:   testutil.Actor(models.RoleBoard),
			wantErr: service.ErrNotFound,
		},
		{
			name:    "contestant outside category",
			mutate: func(in *service.CreateDeductionInput) {
				in.CategoryID = env.fx.Other.ID
				in.ContestantID = env.fx.Contestants[1].ID
			},
			actor:   testutil.Actor(models.RoleBoard),
			wantErr: service.ErrNotFound,
		},
		{
			name:    "judge outside category",
			mutate:  func(in *service.CreateDeductionInput) { in.CategoryID = env.fx.Other.ID },
			actor:   testutil.JudgeActor(1),
			wantErr: service.ErrForbidden,
		},
		{
			name:  "admin",
			actor: testutil.Actor(models.RoleAdmin),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			if tt.mutate != nil {
				tt.mutate(&in)
			}
			req, err := env.deductions.CreateRequest(ctx, in, tt.actor)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, models.StatusPending, req.Status)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDeductionApprovalIsUnanimous(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	req := createDeduction(t, env, 5)

	for _, role := range []models.Role{models.RoleTallyMaster, models.RoleAuditor} {
		decided, err := env.deductions.Decide(ctx, req.ID, models.DecisionApproved, testutil.Actor(role), "")
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, decided.Status)
	}

	_, err := env.deductions.Decide(ctx, req.ID, models.DecisionApproved, testutil.Actor(models.RoleTallyMaster), "")
	require.ErrorIs(t, err, service.ErrConflict, "a role decides once")

	decided, err := env.deductions.Decide(ctx, req.ID, models.DecisionApproved, testutil.Actor(models.RoleBoard), "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, decided.Status)
	assert.NotNil(t, decided.DecidedAt)

	status, err := env.deductions.GetApprovalStatus(ctx, req.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.Role{models.RoleTallyMaster, models.RoleAuditor, models.RoleBoard}, status.Approved)
	assert.Empty(t, status.Rejected)
	assert.False(t, status.Applied)

	_, err = env.deductions.Decide(ctx, req.ID, models.DecisionRejected, testutil.Actor(models.RoleAuditor), "")
	require.ErrorIs(t, err, service.ErrConflict, "decided requests are closed")
}

func TestDeductionRejectIsVeto(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	req := createDeduction(t, env, 5)

	_, err := env.deductions.Decide(ctx, req.ID, models.DecisionApproved, testutil.Actor(models.RoleTallyMaster), "")
	require.NoError(t, err)
	_, err = env.deductions.Decide(ctx, req.ID, models.DecisionApproved, testutil.Actor(models.RoleBoard), "")
	require.NoError(t, err)

	decided, err := env.deductions.Decide(ctx, req.ID, models.DecisionRejected, testutil.Actor(models.RoleAuditor), "not supported by video")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, decided.Status)

	status, err := env.deductions.GetApprovalStatus(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Role{models.RoleAuditor}, status.Rejected)
	assert.Len(t, status.Approved, 2)

	_, err = env.deductions.Apply(ctx, req.ID, testutil.Actor(models.RoleTallyMaster))
	require.ErrorIs(t, err, service.ErrConflict)
}

func TestDecideChecks(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	req := createDeduction(t, env, 2)

	_, err := env.deductions.Decide(ctx, req.ID, models.DecisionApproved, testutil.Actor(models.RoleOrganizer), "")
	require.ErrorIs(t, err, service.ErrForbidden)

	_, err = env.deductions.Decide(ctx, req.ID, models.Decision("MAYBE"), testutil.Actor(models.RoleBoard), "")
	require.ErrorIs(t, err, service.ErrValidation)

	_, err = env.deductions.Decide(ctx, "request-404", models.DecisionApproved, testutil.Actor(models.RoleBoard), "")
	require.ErrorIs(t, err, service.ErrNotFound)

	_, err = env.deductions.GetApprovalStatus(ctx, "request-404")
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestApplyDeductionOnce(t *testing.T) {
	env := newTestEnv(t, `
[deduction]
approvers = ["BOARD"]
`)
	ctx := context.Background()
	req := createDeduction(t, env, 7)
	tally := testutil.Actor(models.RoleTallyMaster)

	_, err := env.deductions.Apply(ctx, req.ID, tally)
	require.ErrorIs(t, err, service.ErrConflict, "pending requests cannot be applied")

	_, err = env.deductions.Decide(ctx, req.ID, models.DecisionApproved, testutil.Actor(models.RoleBoard), "")
	require.NoError(t, err)

	_, err = env.deductions.Apply(ctx, req.ID, testutil.JudgeActor(0))
	require.ErrorIs(t, err, service.ErrForbidden)

	adj, err := env.deductions.Apply(ctx, req.ID, tally)
	require.NoError(t, err)
	assert.Equal(t, -7, adj.Points)
	assert.Equal(t, req.ID, adj.SourceRequestID)

	_, err = env.deductions.Apply(ctx, req.ID, tally)
	require.ErrorIs(t, err, service.ErrConflict)

	total, err := env.store.Read().Scores.TotalAdjustment(ctx, req.CategoryID, req.ContestantID)
	require.NoError(t, err)
	assert.Equal(t, -7, total)

	status, err := env.deductions.GetApprovalStatus(ctx, req.ID)
	require.NoError(t, err)
	assert.True(t, status.Applied)
}

func TestConcurrentApplyAppliesOnce(t *testing.T) {
	env := newTestEnv(t, `
[deduction]
approvers = ["AUDITOR"]
`)
	ctx := context.Background()
	req := createDeduction(t, env, 3)
	_, err := env.deductions.Decide(ctx, req.ID, models.DecisionApproved, testutil.Actor(models.RoleAuditor), "")
	require.NoError(t, err)

	const workers = 6
	var wg sync.WaitGroup
	var applied atomic.Int32
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.deductions.Apply(ctx, req.ID, testutil.Actor(models.RoleOrganizer))
			if err == nil {
				applied.Add(1)
			} else if !errors.Is(err, service.ErrConflict) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), applied.Load())
	total, err := env.store.Read().Scores.TotalAdjustment(ctx, req.CategoryID, req.ContestantID)
	require.NoError(t, err)
	assert.Equal(t, -3, total)
}

func TestListDeductions(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	first := createDeduction(t, env, 1)
	createDeduction(t, env, 2)

	_, err := env.deductions.Decide(ctx, first.ID, models.DecisionRejected, testutil.Actor(models.RoleBoard), "")
	require.NoError(t, err)

	pending, err := env.deductions.ListRequests(ctx, repository.DeductionFilter{Status: models.StatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 2, pending[0].Points)

	all, err := env.deductions.ListRequests(ctx, repository.DeductionFilter{CategoryID: env.fx.Category.ID})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = env.deductions.ListRequests(ctx, repository.DeductionFilter{Status: "OPEN"})
	require.ErrorIs(t, err, service.ErrValidation)

	got, err := env.deductions.GetRequest(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, got.Status)
}
