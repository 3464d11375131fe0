//go:build integration

package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-judging/internal/models"
	"event-judging/internal/service"
	"event-judging/internal/testutil"
)

// race runs fn from workers goroutines at once and counts outcomes
func race(t *testing.T, workers int, fn func(i int) error) (succeeded, conflicted int32) {
	t.Helper()

	var wg sync.WaitGroup
	var ok, conflict atomic.Int32
	start := make(chan struct{})
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			err := fn(i)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, service.ErrConflict):
				conflict.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()
	return ok.Load(), conflict.Load()
}

// TestPostgresConstraintsUnderContention runs the racing workflows against
// a real Postgres with a connection pool, where the unique constraints and
// conditional updates are what keeps the outcome single
func TestPostgresConstraintsUnderContention(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	containers.DB.SetMaxOpenConns(16)
	env := newTestEnvWithDB(t, containers.DB, `
[deduction]
approvers = ["AUDITOR"]
`)
	ctx := context.Background()
	const workers = 12

	t.Run("certify", func(t *testing.T) {
		scope := models.JudgeContestantScope(env.fx.Judges[0].ID, env.fx.Contestants[0].ID, env.fx.Category.ID)

		succeeded, conflicted := race(t, workers, func(i int) error {
			actor := models.Actor{UserID: fmt.Sprintf("tally-%d", i), Role: models.RoleTallyMaster}
			_, err := env.certifications.Certify(ctx, service.CertifyInput{Scope: scope, Role: models.RoleJudge}, actor)
			return err
		})
		assert.Equal(t, int32(1), succeeded)
		assert.Equal(t, int32(workers-1), conflicted)
		assert.Equal(t, 1, env.fx.CountCertifications(t))
	})

	t.Run("apply deduction", func(t *testing.T) {
		req, err := env.deductions.CreateRequest(ctx, service.CreateDeductionInput{
			CategoryID:   env.fx.Category.ID,
			ContestantID: env.fx.Contestants[1].ID,
			Points:       3,
			Reason:       "costume change overran",
		}, testutil.Actor(models.RoleOrganizer))
		require.NoError(t, err)
		_, err = env.deductions.Decide(ctx, req.ID, models.DecisionApproved, testutil.Actor(models.RoleAuditor), "")
		require.NoError(t, err)

		succeeded, conflicted := race(t, workers, func(int) error {
			_, err := env.deductions.Apply(ctx, req.ID, testutil.Actor(models.RoleTallyMaster))
			return err
		})
		assert.Equal(t, int32(1), succeeded)
		assert.Equal(t, int32(workers-1), conflicted)

		var adjustments int
		require.NoError(t, containers.DB.Get(&adjustments,
			`SELECT COUNT(*) FROM score_adjustments WHERE source_request_id = $1`, req.ID))
		assert.Equal(t, 1, adjustments)
	})

	t.Run("one pending uncertification", func(t *testing.T) {
		succeeded, conflicted := race(t, workers, func(int) error {
			_, err := env.uncertifications.Request(ctx, env.fx.Judges[1].ID, env.fx.Category.ID,
				"double submitted", testutil.JudgeActor(1))
			return err
		})
		assert.Equal(t, int32(1), succeeded)
		assert.Equal(t, int32(workers-1), conflicted)
	})

	t.Run("decide same role", func(t *testing.T) {
		req, err := env.deductions.CreateRequest(ctx, service.CreateDeductionInput{
			CategoryID:   env.fx.Category.ID,
			ContestantID: env.fx.Contestants[0].ID,
			Points:       2,
			Reason:       "props left on stage",
		}, testutil.Actor(models.RoleOrganizer))
		require.NoError(t, err)

		succeeded, conflicted := race(t, workers, func(i int) error {
			actor := models.Actor{UserID: fmt.Sprintf("auditor-%d", i), Role: models.RoleAuditor}
			_, err := env.deductions.Decide(ctx, req.ID, models.DecisionApproved, actor, "")
			return err
		})
		assert.Equal(t, int32(1), succeeded)
		assert.Equal(t, int32(workers-1), conflicted)

		status, err := env.deductions.GetApprovalStatus(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, []models.Role{models.RoleAuditor}, status.Approved)
	})

	// signs every required role on a fresh request and returns its id
	signedRequest := func(t *testing.T, judge int, categoryID string) string {
		t.Helper()
		req, err := env.uncertifications.Request(ctx, env.fx.Judges[judge].ID, categoryID, "scored the wrong round", testutil.JudgeActor(judge))
		require.NoError(t, err)
		for _, role := range env.policy.UncertificationSigners() {
			_, err := env.uncertifications.Sign(ctx, req.ID, testutil.Actor(role))
			require.NoError(t, err)
		}
		return req.ID
	}

	t.Run("execute against reject", func(t *testing.T) {
		judgeID, categoryID := env.fx.Judges[0].ID, env.fx.Category.ID
		countRows := func() (certs, scores int) {
			certs, err := env.store.Read().Certifications.CountJudgeCategory(ctx, judgeID, categoryID)
			require.NoError(t, err)
			require.NoError(t, containers.DB.Get(&scores,
				`SELECT COUNT(*) FROM scores WHERE judge_id = $1 AND category_id = $2`, judgeID, categoryID))
			return certs, scores
		}
		certsBefore, scoresBefore := countRows()
		require.NotZero(t, certsBefore)
		require.NotZero(t, scoresBefore)

		requestID := signedRequest(t, 0, categoryID)

		succeeded, conflicted := race(t, workers, func(i int) error {
			if i%2 == 0 {
				_, err := env.uncertifications.Execute(ctx, requestID, testutil.Actor(models.RoleBoard))
				return err
			}
			_, err := env.uncertifications.Reject(ctx, requestID, "judge confirmed the sheet", testutil.Actor(models.RoleAuditor))
			return err
		})
		assert.Equal(t, int32(1), succeeded)
		assert.Equal(t, int32(workers-1), conflicted)

		final, err := env.uncertifications.GetStatus(ctx, requestID)
		require.NoError(t, err)
		certs, scores := countRows()
		switch final.Request.Status {
		case models.StatusRejected:
			assert.Equal(t, certsBefore, certs, "a rejected request removes nothing")
			assert.Equal(t, scoresBefore, scores)
			assert.Nil(t, final.Request.ExecutedAt)
		case models.StatusApproved:
			assert.Zero(t, certs)
			assert.Zero(t, scores)
		default:
			t.Fatalf("request left %s", final.Request.Status)
		}
	})

	t.Run("sign against reject", func(t *testing.T) {
		req, err := env.uncertifications.Request(ctx, env.fx.Judges[0].ID, env.fx.Other.ID, "wrong sheet", testutil.JudgeActor(0))
		require.NoError(t, err)

		signers := env.policy.UncertificationSigners()
		var rejected atomic.Int32
		var signedRoles sync.Map
		succeeded, conflicted := race(t, workers, func(i int) error {
			if i == 0 {
				_, err := env.uncertifications.Reject(ctx, req.ID, "judge confirmed the sheet", testutil.Actor(models.RoleOrganizer))
				if err == nil {
					rejected.Add(1)
				}
				return err
			}
			role := signers[i%len(signers)]
			_, err := env.uncertifications.Sign(ctx, req.ID, models.Actor{UserID: fmt.Sprintf("signer-%d", i), Role: role})
			if err == nil {
				signedRoles.Store(role, true)
			}
			return err
		})
		assert.Equal(t, int32(1), rejected.Load())
		assert.Equal(t, int32(workers), succeeded+conflicted)

		final, err := env.uncertifications.GetStatus(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusRejected, final.Request.Status)

		distinct := 0
		signedRoles.Range(func(any, any) bool {
			distinct++
			return true
		})
		var rows int
		require.NoError(t, containers.DB.Get(&rows,
			`SELECT COUNT(*) FROM uncertification_signatures WHERE request_id = $1`, req.ID))
		assert.Equal(t, distinct, rows, "only signatures acknowledged before the reject are stored")

		_, err = env.uncertifications.Sign(ctx, req.ID, testutil.Actor(models.RoleBoard))
		require.ErrorIs(t, err, service.ErrConflict)
	})
}
