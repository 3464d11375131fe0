package service

import (
	"context"
	"fmt"

	"event-judging/internal/models"
	"event-judging/internal/policy"
	"event-judging/internal/repository"
)

// Gap is a scope below the one being examined that still lacks
// certifications.
type Gap struct {
	Scope   models.ScopeRef `json:"scope"`
	Missing []models.Role   `json:"missing"`
}

// ScopeTree walks the judging hierarchy through one set of repositories.
// Built from transaction-bound repositories, every answer it gives reflects
// the state the surrounding transaction will commit against.
type ScopeTree struct {
	repos  *repository.Repositories
	policy *policy.Table
}

// NewScopeTree creates a tree reader over r
func NewScopeTree(r *repository.Repositories, p *policy.Table) *ScopeTree {
	return &ScopeTree{repos: r, policy: p}
}

// Resolve checks that every entity named by scope exists and belongs
// together, and fills in the contest and event ids.
func (t *ScopeTree) Resolve(ctx context.Context, scope models.ScopeRef) (models.ScopeRef, error) {
	switch scope.Kind {
	case models.ScopeJudgeContestant, models.ScopeContestantCategory, models.ScopeCategory:
		category, err := t.repos.Scopes.GetCategory(ctx, scope.CategoryID)
		if err != nil {
			return scope, fmt.Errorf("failed to get category: %w", err)
		}
		if category == nil {
			return scope, notFound("category %s not found", scope.CategoryID)
		}
		scope.ContestID = category.ContestID
		scope.EventID = category.EventID

		if scope.Kind == models.ScopeCategory {
			return scope, nil
		}
		ok, err := t.repos.Scopes.IsContestantInCategory(ctx, scope.CategoryID, scope.ContestantID)
		if err != nil {
			return scope, fmt.Errorf("failed to check contestant assignment: %w", err)
		}
		if !ok {
			return scope, notFound("contestant %s is not in category %s", scope.ContestantID, scope.CategoryID)
		}

		if scope.Kind == models.ScopeJudgeContestant {
			ok, err := t.repos.Scopes.IsJudgeInCategory(ctx, scope.CategoryID, scope.JudgeID)
			if err != nil {
				return scope, fmt.Errorf("failed to check judge assignment: %w", err)
			}
			if !ok {
				return scope, notFound("judge %s is not assigned to category %s", scope.JudgeID, scope.CategoryID)
			}
		}
		return scope, nil

	case models.ScopeContest:
		contest, err := t.repos.Scopes.GetContest(ctx, scope.ContestID)
		if err != nil {
			return scope, fmt.Errorf("failed to get contest: %w", err)
		}
		if contest == nil {
			return scope, notFound("contest %s not found", scope.ContestID)
		}
		scope.EventID = contest.EventID
		return scope, nil

	case models.ScopeEvent:
		event, err := t.repos.Scopes.GetEvent(ctx, scope.EventID)
		if err != nil {
			return scope, fmt.Errorf("failed to get event: %w", err)
		}
		if event == nil {
			return scope, notFound("event %s not found", scope.EventID)
		}
		return scope, nil
	}
	return scope, invalid("unknown scope type %q", scope.Kind)
}

// Progress reports which required roles have certified scope and whether
// everything below it is certified. scope must be resolved.
func (t *ScopeTree) Progress(ctx context.Context, scope models.ScopeRef) (*models.ProgressView, error) {
	certs, err := t.repos.Certifications.ListByScope(ctx, scope.Kind, scope.Key())
	if err != nil {
		return nil, fmt.Errorf("failed to list certifications: %w", err)
	}

	view := &models.ProgressView{
		Scope:    scope,
		Roles:    roleProgress(t.policy.RequiredRoles(scope.Kind), certs),
		Complete: true,
	}
	for _, rp := range view.Roles {
		if !rp.Certified {
			view.Complete = false
		}
	}

	unlocked, err := t.IsFullyCertifiedBelow(ctx, scope)
	if err != nil {
		return nil, err
	}
	view.Unlocked = unlocked
	return view, nil
}

// IsFullyCertifiedBelow reports whether every scope strictly beneath scope
// holds all of its required certifications. A scope with nothing beneath
// it is fully certified below.
func (t *ScopeTree) IsFullyCertifiedBelow(ctx context.Context, scope models.ScopeRef) (bool, error) {
	gaps, err := t.MissingBelow(ctx, scope)
	if err != nil {
		return false, err
	}
	return len(gaps) == 0, nil
}

// MissingBelow lists every scope beneath scope that is not complete,
// deepest levels first within each branch.
func (t *ScopeTree) MissingBelow(ctx context.Context, scope models.ScopeRef) ([]Gap, error) {
	switch scope.Kind {
	case models.ScopeJudgeContestant:
		return nil, nil

	case models.ScopeContestantCategory:
		return t.categoryGaps(ctx, scope.CategoryID, scope.ContestantID)

	case models.ScopeCategory:
		return t.categoryGaps(ctx, scope.CategoryID, "")

	case models.ScopeContest:
		categories, err := t.repos.Scopes.ListContestCategories(ctx, scope.ContestID)
		if err != nil {
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}
		var gaps []Gap
		for _, c := range categories {
			below, err := t.categoryGaps(ctx, c.ID, "")
			if err != nil {
				return nil, err
			}
			gaps = append(gaps, below...)

			own, err := t.ownGap(ctx, models.CategoryScope(c.ID))
			if err != nil {
				return nil, err
			}
			gaps = append(gaps, own...)
		}
		return gaps, nil

	case models.ScopeEvent:
		contests, err := t.repos.Scopes.ListEventContests(ctx, scope.EventID)
		if err != nil {
			return nil, fmt.Errorf("failed to list contests: %w", err)
		}
		var gaps []Gap
		for _, c := range contests {
			contest := models.ContestScope(c.ID)
			below, err := t.MissingBelow(ctx, contest)
			if err != nil {
				return nil, err
			}
			gaps = append(gaps, below...)

			own, err := t.ownGap(ctx, contest)
			if err != nil {
				return nil, err
			}
			gaps = append(gaps, own...)
		}
		return gaps, nil
	}
	return nil, invalid("unknown scope type %q", scope.Kind)
}

// ownGap returns a single gap when scope itself lacks required roles
func (t *ScopeTree) ownGap(ctx context.Context, scope models.ScopeRef) ([]Gap, error) {
	certs, err := t.repos.Certifications.ListByScope(ctx, scope.Kind, scope.Key())
	if err != nil {
		return nil, fmt.Errorf("failed to list certifications: %w", err)
	}
	missing := t.policy.RequiredRoles(scope.Kind).Missing(certifiedRoles(certs))
	if len(missing) == 0 {
		return nil, nil
	}
	return []Gap{{Scope: scope, Missing: missing}}, nil
}

// categoryGaps checks the judge and contestant level of one category with
// a fixed number of queries. When onlyContestant is set, the contestant
// level row of that contestant is not examined, only its judge rows.
func (t *ScopeTree) categoryGaps(ctx context.Context, categoryID, onlyContestant string) ([]Gap, error) {
	level, err := loadCategoryLevel(ctx, t.repos, categoryID)
	if err != nil {
		return nil, err
	}

	requiredJC := t.policy.RequiredRoles(models.ScopeJudgeContestant)
	requiredCC := t.policy.RequiredRoles(models.ScopeContestantCategory)

	var gaps []Gap
	for _, contestant := range level.contestants {
		if onlyContestant != "" && contestant.ID != onlyContestant {
			continue
		}
		for _, judge := range level.judges {
			scope := models.JudgeContestantScope(judge.ID, contestant.ID, categoryID)
			if missing := requiredJC.Missing(level.roles[scope.Key()]); len(missing) > 0 {
				gaps = append(gaps, Gap{Scope: scope, Missing: missing})
			}
		}
		if onlyContestant != "" {
			continue
		}
		scope := models.ContestantCategoryScope(contestant.ID, categoryID)
		if missing := requiredCC.Missing(level.roles[scope.Key()]); len(missing) > 0 {
			gaps = append(gaps, Gap{Scope: scope, Missing: missing})
		}
	}
	return gaps, nil
}

// categoryLevel is everything certified at the judge and contestant level
// of one category, keyed by scope key.
type categoryLevel struct {
	contestants []models.Contestant
	judges      []models.Judge
	certs       map[string][]models.Certification
	roles       map[string][]models.Role
}

func loadCategoryLevel(ctx context.Context, r *repository.Repositories, categoryID string) (*categoryLevel, error) {
	contestants, err := r.Scopes.ListCategoryContestants(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contestants: %w", err)
	}
	judges, err := r.Scopes.ListCategoryJudges(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list judges: %w", err)
	}

	level := &categoryLevel{
		contestants: contestants,
		judges:      judges,
		certs:       make(map[string][]models.Certification),
		roles:       make(map[string][]models.Role),
	}
	for _, kind := range []models.ScopeKind{models.ScopeJudgeContestant, models.ScopeContestantCategory} {
		certs, err := r.Certifications.ListByCategory(ctx, categoryID, kind)
		if err != nil {
			return nil, fmt.Errorf("failed to list certifications: %w", err)
		}
		for _, c := range certs {
			level.certs[c.ScopeID] = append(level.certs[c.ScopeID], c)
			level.roles[c.ScopeID] = append(level.roles[c.ScopeID], c.Role)
		}
	}
	return level, nil
}

func certifiedRoles(certs []models.Certification) []models.Role {
	roles := make([]models.Role, 0, len(certs))
	for _, c := range certs {
		roles = append(roles, c.Role)
	}
	return roles
}

func roleProgress(required models.RoleSet, certs []models.Certification) []models.RoleProgress {
	out := make([]models.RoleProgress, 0, len(required))
	for _, role := range required {
		rp := models.RoleProgress{Role: role}
		for _, c := range certs {
			if c.Role == role {
				rp.Certified = true
				by := c.ActorUserID
				at := c.CertifiedAt
				rp.CertifiedBy = &by
				rp.CertifiedAt = &at
				break
			}
		}
		out = append(out, rp)
	}
	return out
}
