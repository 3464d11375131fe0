package service_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"event-judging/internal/models"
	"event-judging/internal/policy"
	"event-judging/internal/repository"
	"event-judging/internal/service"
	"event-judging/internal/testutil"
)

type testEnv struct {
	fx               *testutil.Fixtures
	store            *repository.Store
	policy           *policy.Table
	audit            *service.AuditService
	certifications   *service.CertificationService
	deductions       *service.DeductionService
	uncertifications *service.UncertificationService
	resets           *service.ResetService
}

// newTestEnv wires every service against a fresh in-memory database. An
// empty policyTOML keeps the default policy.
func newTestEnv(t *testing.T, policyTOML string) *testEnv {
	t.Helper()
	return newTestEnvWithDB(t, testutil.SetupSQLite(t), policyTOML)
}

func newTestEnvWithDB(t *testing.T, db *sqlx.DB, policyTOML string) *testEnv {
	t.Helper()

	fx := testutil.SetupFixtures(t, db)

	table := policy.Default()
	if policyTOML != "" {
		var err error
		table, err = policy.Parse([]byte(policyTOML))
		require.NoError(t, err)
	}

	store := repository.NewStore(db)
	audit := service.NewAuditService(store)
	return &testEnv{
		fx:               fx,
		store:            store,
		policy:           table,
		audit:            audit,
		certifications:   service.NewCertificationService(store, table, audit),
		deductions:       service.NewDeductionService(store, table, audit),
		uncertifications: service.NewUncertificationService(store, table, audit),
		resets:           service.NewResetService(store, table, audit),
	}
}

// completeBelow certifies every judge and contestant level scope of the
// category with the roles the policy requires
func (e *testEnv) completeBelow(t *testing.T, categoryID string) {
	t.Helper()
	e.fx.CertifyAllJudges(t, categoryID)
	e.certifyContestants(t, categoryID)
}

// certifyContestants fills every contestant level slot of the category
func (e *testEnv) certifyContestants(t *testing.T, categoryID string) {
	t.Helper()
	contestants, err := e.store.Read().Scopes.ListCategoryContestants(context.Background(), categoryID)
	require.NoError(t, err)
	for _, c := range contestants {
		for _, role := range e.policy.RequiredRoles(models.ScopeContestantCategory) {
			e.fx.Insert(t, models.ContestantCategoryScope(c.ID, categoryID), role)
		}
	}
}

// completeCategory certifies the category and everything below it
func (e *testEnv) completeCategory(t *testing.T, categoryID string) {
	t.Helper()
	e.completeBelow(t, categoryID)
	for _, role := range e.policy.RequiredRoles(models.ScopeCategory) {
		e.fx.Insert(t, models.CategoryScope(categoryID), role)
	}
}
