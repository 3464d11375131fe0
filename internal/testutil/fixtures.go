package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"event-judging/internal/models"
	"event-judging/internal/repository"
)

// Fixtures holds a small judging hierarchy:
//
//	Event
//	└── Contest
//	    ├── Category (contestants 0,1; judges 0,1)
//	    └── Other    (contestant 0; judge 0)
type Fixtures struct {
	DB          *sqlx.DB
	Event       *models.Event
	Contest     *models.Contest
	Category    *models.Category
	Other       *models.Category
	Contestants []models.Contestant
	Judges      []models.Judge
}

// SetupFixtures creates test data
func SetupFixtures(t *testing.T, db *sqlx.DB) *Fixtures {
	t.Helper()
	ctx := context.Background()
	r := repository.NewRepositories(db)
	now := time.Now().UTC()

	f := &Fixtures{
		DB:      db,
		Event:   &models.Event{ID: "event-1", Name: "Spring Festival", CreatedAt: now},
		Contest: &models.Contest{ID: "contest-1", EventID: "event-1", Name: "Vocal", CreatedAt: now},
		Category: &models.Category{
			ID: "category-1", ContestID: "contest-1", EventID: "event-1", Name: "Solo", CreatedAt: now,
		},
		Other: &models.Category{
			ID: "category-2", ContestID: "contest-1", EventID: "event-1", Name: "Duet", CreatedAt: now,
		},
		Contestants: []models.Contestant{
			{ID: "contestant-1", Name: "Ada"},
			{ID: "contestant-2", Name: "Grace"},
		},
		Judges: []models.Judge{
			{ID: "judge-1", UserID: JudgeUserID(0), Name: "First Judge"},
			{ID: "judge-2", UserID: JudgeUserID(1), Name: "Second Judge"},
		},
	}

	must(t, r.Scopes.CreateEvent(ctx, f.Event))
	must(t, r.Scopes.CreateContest(ctx, f.Contest))
	must(t, r.Scopes.CreateCategory(ctx, f.Category))
	must(t, r.Scopes.CreateCategory(ctx, f.Other))
	for i := range f.Contestants {
		must(t, r.Scopes.CreateContestant(ctx, &f.Contestants[i]))
	}
	for i := range f.Judges {
		must(t, r.Scopes.CreateJudge(ctx, &f.Judges[i]))
	}

	for _, c := range f.Contestants {
		must(t, r.Scopes.AssignContestant(ctx, f.Category.ID, c.ID))
	}
	for _, j := range f.Judges {
		must(t, r.Scopes.AssignJudge(ctx, f.Category.ID, j.ID))
	}
	must(t, r.Scopes.AssignContestant(ctx, f.Other.ID, f.Contestants[0].ID))
	must(t, r.Scopes.AssignJudge(ctx, f.Other.ID, f.Judges[0].ID))

	for _, j := range f.Judges {
		for i, c := range f.Contestants {
			must(t, r.Scores.Create(ctx, &models.Score{
				ID:           j.ID + "-" + c.ID,
				CategoryID:   f.Category.ID,
				JudgeID:      j.ID,
				ContestantID: c.ID,
				Points:       80 + i,
				CreatedAt:    now,
			}))
		}
	}

	return f
}

// JudgeUserID is the user id owning the i-th fixture judge seat
func JudgeUserID(i int) string {
	return []string{"user-judge-1", "user-judge-2"}[i]
}

// Actor returns a principal acting under role. Judges act as the first
// fixture judge.
func Actor(role models.Role) models.Actor {
	if role == models.RoleJudge {
		return models.Actor{UserID: JudgeUserID(0), Role: role}
	}
	return models.Actor{UserID: "user-" + string(role), Role: role}
}

// JudgeActor returns the principal owning the i-th fixture judge seat
func JudgeActor(i int) models.Actor {
	return models.Actor{UserID: JudgeUserID(i), Role: models.RoleJudge}
}

// CertifyAllJudges fills the judge slot of every judge-contestant scope in
// the category directly through the repository
func (f *Fixtures) CertifyAllJudges(t *testing.T, categoryID string) {
	t.Helper()
	r := repository.NewRepositories(f.DB)
	ctx := context.Background()

	judges, err := r.Scopes.ListCategoryJudges(ctx, categoryID)
	must(t, err)
	contestants, err := r.Scopes.ListCategoryContestants(ctx, categoryID)
	must(t, err)
	for _, j := range judges {
		for _, c := range contestants {
			f.Insert(t, models.JudgeContestantScope(j.ID, c.ID, categoryID), models.RoleJudge)
		}
	}
}

// Insert writes one certification without any workflow checks
func (f *Fixtures) Insert(t *testing.T, scope models.ScopeRef, role models.Role) {
	t.Helper()
	scope.EventID = f.Event.ID
	if scope.Kind != models.ScopeEvent {
		scope.ContestID = f.Contest.ID
	}

	cert := &models.Certification{
		ID:          uuid.NewString(),
		ScopeType:   scope.Kind,
		ScopeID:     scope.Key(),
		Role:        role,
		EventID:     scope.EventID,
		ActorUserID: "fixture",
		ActorRole:   models.RoleAdmin,
		CertifiedAt: time.Now().UTC(),
	}
	if scope.ContestID != "" {
		cert.ContestID = &scope.ContestID
	}
	if scope.CategoryID != "" {
		cert.CategoryID = &scope.CategoryID
	}
	if scope.ContestantID != "" {
		cert.ContestantID = &scope.ContestantID
	}
	if scope.JudgeID != "" {
		cert.JudgeID = &scope.JudgeID
	}
	must(t, repository.NewCertificationRepository(f.DB).Create(context.Background(), cert))
}

// CountCertifications counts every certification row
func (f *Fixtures) CountCertifications(t *testing.T) int {
	t.Helper()
	var n int
	must(t, f.DB.Get(&n, `SELECT COUNT(*) FROM certifications`))
	return n
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Fixture setup failed: %v", err)
	}
}
