package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-judging/internal/models"
	"event-judging/internal/repository"
	"event-judging/internal/testutil"
)

func newCertification(id string, scope models.ScopeRef, role models.Role) *models.Certification {
	category := scope.CategoryID
	return &models.Certification{
		ID:          id,
		ScopeType:   scope.Kind,
		ScopeID:     scope.Key(),
		Role:        role,
		EventID:     "event-1",
		CategoryID:  &category,
		ActorUserID: "user-1",
		ActorRole:   role,
		CertifiedAt: time.Now(),
	}
}

func TestCertificationUniquePerScopeAndRole(t *testing.T) {
	db := testutil.SetupSQLite(t)
	testutil.SetupFixtures(t, db)
	repo := repository.NewCertificationRepository(db)
	ctx := context.Background()
	scope := models.CategoryScope("category-1")

	require.NoError(t, repo.Create(ctx, newCertification("cert-1", scope, models.RoleBoard)))

	err := repo.Create(ctx, newCertification("cert-2", scope, models.RoleBoard))
	require.ErrorIs(t, err, repository.ErrDuplicate)

	require.NoError(t, repo.Create(ctx, newCertification("cert-3", scope, models.RoleAuditor)))

	ok, err := repo.Exists(ctx, scope.Kind, scope.Key(), models.RoleBoard)
	require.NoError(t, err)
	assert.True(t, ok)

	certs, err := repo.ListByScope(ctx, scope.Kind, scope.Key())
	require.NoError(t, err)
	require.Len(t, certs, 2)
	assert.Equal(t, "category-1", *certs[0].CategoryID)
	assert.Nil(t, certs[0].ContestID)
}

func TestCheckConstraintIsNotDuplicate(t *testing.T) {
	db := testutil.SetupSQLite(t)
	testutil.SetupFixtures(t, db)
	repo := repository.NewCertificationRepository(db)

	err := repo.Create(context.Background(), newCertification("cert-1", models.ScopeRef{Kind: "DIVISION", CategoryID: "category-1"}, models.RoleBoard))
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrDuplicate)
}

func TestDeleteKindUnder(t *testing.T) {
	db := testutil.SetupSQLite(t)
	fx := testutil.SetupFixtures(t, db)
	repo := repository.NewCertificationRepository(db)
	ctx := context.Background()

	fx.CertifyAllJudges(t, fx.Category.ID)
	fx.CertifyAllJudges(t, fx.Other.ID)

	scope := models.ContestantCategoryScope(fx.Contestants[0].ID, fx.Category.ID)
	n, err := repo.DeleteKindUnder(ctx, models.ScopeJudgeContestant, scope)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "one row per judge of the contestant")

	_, err = repo.DeleteKindUnder(ctx, models.ScopeCategory, scope)
	require.Error(t, err, "kind above scope")

	contest := models.ContestScope(fx.Contest.ID)
	n, err = repo.DeleteKindUnder(ctx, models.ScopeJudgeContestant, contest)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Zero(t, fx.CountCertifications(t))
}

func TestDeleteJudgeCategory(t *testing.T) {
	db := testutil.SetupSQLite(t)
	fx := testutil.SetupFixtures(t, db)
	r := repository.NewRepositories(db)
	ctx := context.Background()
	fx.CertifyAllJudges(t, fx.Category.ID)
	fx.CertifyAllJudges(t, fx.Other.ID)
	judge := fx.Judges[0].ID

	count, err := r.Certifications.CountJudgeCategory(ctx, judge, fx.Category.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	n, err := r.Certifications.DeleteJudgeCategory(ctx, judge, fx.Category.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = r.Scores.DeleteJudgeCategory(ctx, judge, fx.Category.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	count, err = r.Certifications.CountJudgeCategory(ctx, judge, fx.Other.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "other categories are kept")
}

func TestSignatureInsertIsIdempotent(t *testing.T) {
	db := testutil.SetupSQLite(t)
	fx := testutil.SetupFixtures(t, db)
	repo := repository.NewUncertificationRepository(db)
	ctx := context.Background()
	now := time.Now()

	req := &models.UncertificationRequest{
		ID:          "request-1",
		JudgeID:     fx.Judges[0].ID,
		CategoryID:  fx.Category.ID,
		Reason:      "wrong round",
		RequestedBy: fx.Judges[0].UserID,
		RequestedAt: now,
		Status:      models.StatusPending,
		UpdatedAt:   now,
	}
	require.NoError(t, repo.CreateRequest(ctx, req))

	dup := *req
	dup.ID = "request-2"
	require.ErrorIs(t, repo.CreateRequest(ctx, &dup), repository.ErrDuplicate, "one pending request per judge and category")

	sign := func(id, user string) bool {
		inserted, err := repo.AddSignature(ctx, &models.UncertificationSignature{
			ID: id, RequestID: req.ID, SignerUserID: user, SignerRole: models.RoleBoard, SignedAt: now,
		})
		require.NoError(t, err)
		return inserted
	}
	assert.True(t, sign("sig-1", "board-1"))
	assert.False(t, sign("sig-2", "board-2"))

	sigs, err := repo.ListSignatures(ctx, req.ID)
	require.NoError(t, err)
	require.Len(t, sigs, 1)
	assert.Equal(t, "board-1", sigs[0].SignerUserID)

	locked, err := repo.LockPending(ctx, req.ID, now)
	require.NoError(t, err)
	assert.True(t, locked)

	rejected, err := repo.Reject(ctx, req.ID, "reviewer", "scores verified", now)
	require.NoError(t, err)
	assert.True(t, rejected)

	locked, err = repo.LockPending(ctx, req.ID, now)
	require.NoError(t, err)
	assert.False(t, locked)

	require.NoError(t, repo.CreateRequest(ctx, &dup), "rejected requests free the slot")
}

func TestAuditListFilters(t *testing.T) {
	db := testutil.SetupSQLite(t)
	repo := repository.NewAuditRepository(db)
	ctx := context.Background()
	user := "user-1"

	for i, resource := range []string{"certification", "certification", "deduction_request"} {
		id := string(rune('a' + i))
		require.NoError(t, repo.Create(ctx, &models.AuditLog{
			ID:        "log-" + id,
			UserID:    &user,
			Action:    "test",
			Resource:  resource,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}))
	}

	logs, err := repo.List(ctx, repository.AuditFilter{Resource: "certification"})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "log-b", logs[0].ID, "newest first")

	logs, err = repo.List(ctx, repository.AuditFilter{UserID: user, Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "log-b", logs[0].ID)
}
