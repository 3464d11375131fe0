package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"event-judging/internal/models"
	"event-judging/internal/policy"
	"event-judging/internal/repository"
)

// CertificationService handles certification progress and sign-off at
// every level of the judging hierarchy
type CertificationService struct {
	store  Store
	policy *policy.Table
	audit  *AuditService
	now    Clock
}

// NewCertificationService creates a new certification service
func NewCertificationService(store Store, p *policy.Table, audit *AuditService) *CertificationService {
	return &CertificationService{
		store:  store,
		policy: p,
		audit:  audit,
		now:    systemClock,
	}
}

// CertifyInput describes one certification. Role is the slot being
// filled; when empty it defaults to the judge slot on judge-contestant
// scopes and to the actor's own role elsewhere.
type CertifyInput struct {
	Scope   models.ScopeRef
	Role    models.Role
	Comment string
}

// GetProgress returns the certification state of a scope
func (s *CertificationService) GetProgress(ctx context.Context, scope models.ScopeRef) (*models.ProgressView, error) {
	if err := scope.Validate(); err != nil {
		return nil, invalid("%s", err.Error())
	}

	tree := NewScopeTree(s.store.Read(), s.policy)
	resolved, err := tree.Resolve(ctx, scope)
	if err != nil {
		return nil, err
	}
	return tree.Progress(ctx, resolved)
}

// Certify records that a role has signed off a scope. Scopes above the
// judge level are gated: everything beneath them must already be
// certified. The gate, the duplicate check and the insert all run in one
// transaction; a concurrent duplicate is rejected by the unique constraint
// and reported the same way.
func (s *CertificationService) Certify(ctx context.Context, in CertifyInput, actor models.Actor) (cert *models.Certification, err error) {
	defer func() { record("certification", "certify", err) }()

	scope := in.Scope
	if err := scope.Validate(); err != nil {
		return nil, invalid("%s", err.Error())
	}
	role := in.Role
	if role == "" {
		role = actor.Role
		if scope.Kind == models.ScopeJudgeContestant {
			role = models.RoleJudge
		}
	}
	if !role.Valid() {
		return nil, invalid("unknown role %q", role)
	}
	if !s.policy.RequiredRoles(scope.Kind).Contains(role) {
		return nil, forbidden("role %s does not certify %s scopes", role, scope.Kind)
	}
	if !s.policy.CanFillSlot(scope.Kind, role, actor.Role) {
		return nil, forbidden("role %s cannot certify as %s", actor.Role, role)
	}

	err = s.store.InTx(ctx, func(r *repository.Repositories) error {
		tree := NewScopeTree(r, s.policy)
		resolved, err := tree.Resolve(ctx, scope)
		if err != nil {
			return err
		}

		if resolved.Kind == models.ScopeJudgeContestant && actor.Role == models.RoleJudge {
			judge, err := r.Scopes.GetJudge(ctx, resolved.JudgeID)
			if err != nil {
				return fmt.Errorf("failed to get judge: %w", err)
			}
			if judge == nil || judge.UserID != actor.UserID {
				return forbidden("judges may only certify their own scores")
			}
		}

		exists, err := r.Certifications.Exists(ctx, resolved.Kind, resolved.Key(), role)
		if err != nil {
			return fmt.Errorf("failed to check certification: %w", err)
		}
		if exists {
			return alreadyCertified(resolved, role)
		}

		gaps, err := tree.MissingBelow(ctx, resolved)
		if err != nil {
			return err
		}
		if len(gaps) > 0 {
			return conflict("cannot certify %s: %d lower-level certification(s) incomplete, first %s missing %s",
				resolved, len(gaps), gaps[0].Scope, models.RoleSet(gaps[0].Missing))
		}

		cert = &models.Certification{
			ID:           newID(),
			ScopeType:    resolved.Kind,
			ScopeID:      resolved.Key(),
			Role:         role,
			EventID:      resolved.EventID,
			ContestID:    strPtr(resolved.ContestID),
			CategoryID:   strPtr(resolved.CategoryID),
			ContestantID: strPtr(resolved.ContestantID),
			JudgeID:      strPtr(resolved.JudgeID),
			ActorUserID:  actor.UserID,
			ActorRole:    actor.Role,
			Comment:      strPtr(strings.TrimSpace(in.Comment)),
			CertifiedAt:  s.now(),
		}
		if err := r.Certifications.Create(ctx, cert); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return alreadyCertified(resolved, role)
			}
			return fmt.Errorf("failed to create certification: %w", err)
		}

		return s.audit.Record(ctx, r, actor, ActionCertify, ResourceCertification, cert.ID,
			fmt.Sprintf("scope=%s slot=%s", resolved, role))
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Scope certified", "scope", cert.ScopeType, "scope_id", cert.ScopeID, "role", role, "user_id", actor.UserID)
	return cert, nil
}

func alreadyCertified(scope models.ScopeRef, role models.Role) error {
	return conflict("%s has already certified %s", role, scope)
}

// CertifyJudgeContestant certifies a judge's scores for one contestant
func (s *CertificationService) CertifyJudgeContestant(ctx context.Context, judgeID, contestantID, categoryID string, actor models.Actor, comment string) (*models.Certification, error) {
	return s.Certify(ctx, CertifyInput{
		Scope:   models.JudgeContestantScope(judgeID, contestantID, categoryID),
		Role:    models.RoleJudge,
		Comment: comment,
	}, actor)
}

// CertifyContestantCategory certifies a contestant's results in a category
// under the actor's own role
func (s *CertificationService) CertifyContestantCategory(ctx context.Context, contestantID, categoryID string, actor models.Actor, comment string) (*models.Certification, error) {
	return s.Certify(ctx, CertifyInput{
		Scope:   models.ContestantCategoryScope(contestantID, categoryID),
		Comment: comment,
	}, actor)
}

// CertifyCategory certifies a whole category
func (s *CertificationService) CertifyCategory(ctx context.Context, categoryID string, actor models.Actor, comment string) (*models.Certification, error) {
	return s.Certify(ctx, CertifyInput{Scope: models.CategoryScope(categoryID), Comment: comment}, actor)
}

// CertifyContest certifies a whole contest
func (s *CertificationService) CertifyContest(ctx context.Context, contestID string, actor models.Actor, comment string) (*models.Certification, error) {
	return s.Certify(ctx, CertifyInput{Scope: models.ContestScope(contestID), Comment: comment}, actor)
}

// CertifyEvent certifies a whole event
func (s *CertificationService) CertifyEvent(ctx context.Context, eventID string, actor models.Actor, comment string) (*models.Certification, error) {
	return s.Certify(ctx, CertifyInput{Scope: models.EventScope(eventID), Comment: comment}, actor)
}

// GetCategoryTracker summarizes the judge and contestant level
// certifications of a category together with the category's own progress
func (s *CertificationService) GetCategoryTracker(ctx context.Context, categoryID string) (*models.CategoryTracker, error) {
	if strings.TrimSpace(categoryID) == "" {
		return nil, invalid("category_id is required")
	}

	r := s.store.Read()
	tree := NewScopeTree(r, s.policy)
	scope, err := tree.Resolve(ctx, models.CategoryScope(categoryID))
	if err != nil {
		return nil, err
	}

	level, err := loadCategoryLevel(ctx, r, categoryID)
	if err != nil {
		return nil, err
	}

	requiredJC := s.policy.RequiredRoles(models.ScopeJudgeContestant)
	requiredCC := s.policy.RequiredRoles(models.ScopeContestantCategory)

	tracker := &models.CategoryTracker{
		CategoryID:  categoryID,
		Contestants: make([]models.ContestantTracker, 0, len(level.contestants)),
	}
	for _, contestant := range level.contestants {
		row := models.ContestantTracker{
			ContestantID:    contestant.ID,
			ContestantName:  contestant.Name,
			CertifiedJudges: []string{},
			PendingJudges:   []string{},
		}
		for _, judge := range level.judges {
			key := models.JudgeContestantScope(judge.ID, contestant.ID, categoryID).Key()
			if requiredJC.SatisfiedBy(level.roles[key]) {
				row.CertifiedJudges = append(row.CertifiedJudges, judge.ID)
			} else {
				row.PendingJudges = append(row.PendingJudges, judge.ID)
			}
		}

		key := models.ContestantCategoryScope(contestant.ID, categoryID).Key()
		row.ContestantRoles = roleProgress(requiredCC, level.certs[key])
		row.FullyCertified = len(row.PendingJudges) == 0 && requiredCC.SatisfiedBy(level.roles[key])
		tracker.Contestants = append(tracker.Contestants, row)
	}

	progress, err := tree.Progress(ctx, scope)
	if err != nil {
		return nil, err
	}
	tracker.Category = *progress
	return tracker, nil
}
