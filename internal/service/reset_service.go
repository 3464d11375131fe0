package service

import (
	"context"
	"fmt"
	"log/slog"

	"event-judging/internal/metrics"
	"event-judging/internal/models"
	"event-judging/internal/policy"
	"event-judging/internal/repository"
)

// ResetService clears certification state across a scope subtree
type ResetService struct {
	store  Store
	policy *policy.Table
	audit  *AuditService
}

// NewResetService creates a new reset service
func NewResetService(store Store, p *policy.Table, audit *AuditService) *ResetService {
	return &ResetService{store: store, policy: p, audit: audit}
}

// Reset deletes every certification at or below scope in one transaction,
// children before parents. Judge-contestant scopes cannot be reset here;
// they are revoked through uncertification.
func (s *ResetService) Reset(ctx context.Context, scope models.ScopeRef, actor models.Actor) (result *models.ResetResult, err error) {
	defer func() { record("reset", "reset", err) }()

	if err := scope.Validate(); err != nil {
		return nil, invalid("%s", err.Error())
	}
	if scope.Kind == models.ScopeJudgeContestant {
		return nil, invalid("judge-contestant certifications are revoked through uncertification")
	}
	if !s.policy.Allows(policy.OpResetCertifications, scope.Kind, actor.Role) {
		return nil, forbidden("role %s cannot reset certifications", actor.Role)
	}

	err = s.store.InTx(ctx, func(r *repository.Repositories) error {
		resolved, err := NewScopeTree(r, s.policy).Resolve(ctx, scope)
		if err != nil {
			return err
		}

		result = &models.ResetResult{Scope: resolved, ByKind: make(map[models.ScopeKind]int)}
		for _, kind := range models.ScopeKinds {
			if kind.Depth() > resolved.Kind.Depth() {
				break
			}
			n, err := r.Certifications.DeleteKindUnder(ctx, kind, resolved)
			if err != nil {
				return err
			}
			result.ByKind[kind] = n
			result.Removed += n
		}

		return s.audit.Record(ctx, r, actor, ActionResetCertifications, ResourceCertification, resolved.Key(),
			fmt.Sprintf("scope=%s removed=%d", resolved, result.Removed))
	})
	if err != nil {
		return nil, err
	}

	metrics.CertificationsRemovedTotal.WithLabelValues("reset").Add(float64(result.Removed))
	slog.Warn("Certifications reset", "scope", result.Scope.String(), "removed", result.Removed, "user_id", actor.UserID, "role", actor.Role)
	return result, nil
}
