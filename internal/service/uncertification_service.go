package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"event-judging/internal/metrics"
	"event-judging/internal/models"
	"event-judging/internal/policy"
	"event-judging/internal/repository"
)

// UncertificationService handles a judge's request to revoke their own
// certifications in a category, the signer quorum that approves it and
// the atomic removal that executes it
type UncertificationService struct {
	store  Store
	policy *policy.Table
	audit  *AuditService
	now    Clock
}

// NewUncertificationService creates a new uncertification service
func NewUncertificationService(store Store, p *policy.Table, audit *AuditService) *UncertificationService {
	return &UncertificationService{
		store:  store,
		policy: p,
		audit:  audit,
		now:    systemClock,
	}
}

// Request files a PENDING uncertification. Only a judge acting for their
// own seat may file one, and only one may be pending per judge and category.
func (s *UncertificationService) Request(ctx context.Context, judgeID, categoryID, reason string, actor models.Actor) (req *models.UncertificationRequest, err error) {
	defer func() { record("uncertification", "request", err) }()

	reason = strings.TrimSpace(reason)
	switch {
	case judgeID == "" || categoryID == "":
		return nil, invalid("judge_id and category_id are required")
	case reason == "":
		return nil, invalid("reason is required")
	}
	if actor.Role != models.RoleJudge {
		return nil, forbidden("only judges can request uncertification")
	}

	err = s.store.InTx(ctx, func(r *repository.Repositories) error {
		judge, err := r.Scopes.GetJudge(ctx, judgeID)
		if err != nil {
			return fmt.Errorf("failed to get judge: %w", err)
		}
		if judge == nil {
			return notFound("judge %s not found", judgeID)
		}
		if judge.UserID != actor.UserID {
			return forbidden("judges may only request uncertification for themselves")
		}

		category, err := r.Scopes.GetCategory(ctx, categoryID)
		if err != nil {
			return fmt.Errorf("failed to get category: %w", err)
		}
		if category == nil {
			return notFound("category %s not found", categoryID)
		}
		ok, err := r.Scopes.IsJudgeInCategory(ctx, categoryID, judgeID)
		if err != nil {
			return fmt.Errorf("failed to check judge assignment: %w", err)
		}
		if !ok {
			return notFound("judge %s is not assigned to category %s", judgeID, categoryID)
		}

		now := s.now()
		req = &models.UncertificationRequest{
			ID:          newID(),
			JudgeID:     judgeID,
			CategoryID:  categoryID,
			Reason:      reason,
			RequestedBy: actor.UserID,
			RequestedAt: now,
			Status:      models.StatusPending,
			UpdatedAt:   now,
		}
		if err := r.Uncertifications.CreateRequest(ctx, req); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return conflict("an uncertification request for judge %s in category %s is already pending", judgeID, categoryID)
			}
			return err
		}

		return s.audit.Record(ctx, r, actor, ActionRequestUncertification, ResourceUncertification, req.ID,
			fmt.Sprintf("judge=%s category=%s", judgeID, categoryID))
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Uncertification requested", "request_id", req.ID, "judge_id", judgeID, "category_id", categoryID)
	return req, nil
}

// Sign adds the actor's role to the signer set. Signing again with a role
// that has already signed changes nothing and reports the current state.
func (s *UncertificationService) Sign(ctx context.Context, requestID string, actor models.Actor) (status *models.SignatureStatus, err error) {
	defer func() { record("uncertification", "sign", err) }()

	signers := s.policy.UncertificationSigners()
	if !signers.Contains(actor.Role) {
		return nil, forbidden("role %s is not an uncertification signer", actor.Role)
	}

	var inserted bool
	err = s.store.InTx(ctx, func(r *repository.Repositories) error {
		req, err := s.pending(ctx, r, requestID)
		if err != nil {
			return err
		}
		if req.RequestedBy == actor.UserID {
			return forbidden("the requester cannot sign their own uncertification request")
		}

		now := s.now()
		locked, err := r.Uncertifications.LockPending(ctx, requestID, now)
		if err != nil {
			return err
		}
		if !locked {
			return conflict("uncertification request is no longer pending")
		}

		inserted, err = r.Uncertifications.AddSignature(ctx, &models.UncertificationSignature{
			ID:           newID(),
			RequestID:    requestID,
			SignerUserID: actor.UserID,
			SignerRole:   actor.Role,
			SignedAt:     now,
		})
		if err != nil {
			return err
		}
		if inserted {
			if err := s.audit.Record(ctx, r, actor, ActionSignUncertification, ResourceUncertification, requestID, ""); err != nil {
				return err
			}
		}

		status, err = s.signatureStatus(ctx, r, requestID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if inserted {
		slog.Info("Uncertification signed", "request_id", requestID, "role", actor.Role, "all_signed", status.AllSigned)
	}
	return status, nil
}

// Execute removes the judge's certifications and scores for the category
// and approves the request. The signer quorum is recomputed inside the
// same transaction that deletes.
//
// Only judge-contestant rows are removed. Contestant and category level
// certifications built on them stay in place and are counted in the
// result; clearing them is a bulk reset of the category.
func (s *UncertificationService) Execute(ctx context.Context, requestID string, actor models.Actor) (result *models.ExecuteResult, err error) {
	defer func() { record("uncertification", "execute", err) }()

	if !s.policy.Allows(policy.OpExecuteUncertification, "", actor.Role) {
		return nil, forbidden("role %s cannot execute uncertification", actor.Role)
	}

	err = s.store.InTx(ctx, func(r *repository.Repositories) error {
		req, err := s.pending(ctx, r, requestID)
		if err != nil {
			return err
		}

		now := s.now()
		locked, err := r.Uncertifications.LockPending(ctx, requestID, now)
		if err != nil {
			return err
		}
		if !locked {
			return conflict("uncertification request is no longer pending")
		}

		signatures, err := r.Uncertifications.ListSignatures(ctx, requestID)
		if err != nil {
			return err
		}
		if missing := s.policy.UncertificationSigners().Missing(signedRoles(signatures)); len(missing) > 0 {
			return conflict("not all parties have signed, missing %s", models.RoleSet(missing))
		}

		certs, err := r.Certifications.DeleteJudgeCategory(ctx, req.JudgeID, req.CategoryID)
		if err != nil {
			return err
		}
		scores, err := r.Scores.DeleteJudgeCategory(ctx, req.JudgeID, req.CategoryID)
		if err != nil {
			return err
		}
		above := 0
		for _, kind := range []models.ScopeKind{models.ScopeContestantCategory, models.ScopeCategory} {
			kept, err := r.Certifications.ListByCategory(ctx, req.CategoryID, kind)
			if err != nil {
				return err
			}
			above += len(kept)
		}
		executed, err := r.Uncertifications.MarkExecuted(ctx, requestID, actor.UserID, now)
		if err != nil {
			return err
		}
		if !executed {
			return conflict("uncertification request is no longer pending")
		}

		message := fmt.Sprintf("removed %d certification(s) and %d score(s) of judge %s", certs, scores, req.JudgeID)
		if above > 0 {
			message += fmt.Sprintf("; %d higher level certification(s) of category %s remain, reset the category to clear them", above, req.CategoryID)
		}
		result = &models.ExecuteResult{
			Message:               message,
			RequestID:             requestID,
			CertificationsRemoved: certs,
			ScoresRemoved:         scores,
			CertificationsAbove:   above,
		}
		return s.audit.Record(ctx, r, actor, ActionExecuteUncertification, ResourceUncertification, requestID,
			fmt.Sprintf("judge=%s category=%s certifications=%d scores=%d", req.JudgeID, req.CategoryID, certs, scores))
	})
	if err != nil {
		return nil, err
	}

	metrics.CertificationsRemovedTotal.WithLabelValues("uncertification").Add(float64(result.CertificationsRemoved))
	slog.Info("Uncertification executed", "request_id", requestID, "certifications", result.CertificationsRemoved, "scores", result.ScoresRemoved, "user_id", actor.UserID)
	return result, nil
}

// Reject terminates a PENDING request. Any signer role may reject.
func (s *UncertificationService) Reject(ctx context.Context, requestID, reason string, actor models.Actor) (req *models.UncertificationRequest, err error) {
	defer func() { record("uncertification", "reject", err) }()

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, invalid("reason is required")
	}
	if !s.policy.Allows(policy.OpRejectUncertification, "", actor.Role) {
		return nil, forbidden("role %s cannot reject uncertification", actor.Role)
	}

	err = s.store.InTx(ctx, func(r *repository.Repositories) error {
		if _, err := s.pending(ctx, r, requestID); err != nil {
			return err
		}
		rejected, err := r.Uncertifications.Reject(ctx, requestID, actor.UserID, reason, s.now())
		if err != nil {
			return err
		}
		if !rejected {
			return conflict("uncertification request is no longer pending")
		}
		if err := s.audit.Record(ctx, r, actor, ActionRejectUncertification, ResourceUncertification, requestID, ""); err != nil {
			return err
		}
		req, err = r.Uncertifications.GetRequest(ctx, requestID)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Uncertification rejected", "request_id", requestID, "user_id", actor.UserID)
	return req, nil
}

// GetStatus returns a request with its signer quorum
func (s *UncertificationService) GetStatus(ctx context.Context, requestID string) (*models.SignatureStatus, error) {
	return s.signatureStatus(ctx, s.store.Read(), requestID)
}

// ListRequests returns requests, optionally filtered by status
func (s *UncertificationService) ListRequests(ctx context.Context, status models.RequestStatus) ([]models.UncertificationRequest, error) {
	if status != "" && status != models.StatusPending && status != models.StatusApproved && status != models.StatusRejected {
		return nil, invalid("unknown status %q", status)
	}
	return s.store.Read().Uncertifications.ListRequests(ctx, status)
}

func (s *UncertificationService) pending(ctx context.Context, r *repository.Repositories, requestID string) (*models.UncertificationRequest, error) {
	req, err := r.Uncertifications.GetRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get uncertification request: %w", err)
	}
	if req == nil {
		return nil, notFound("uncertification request %s not found", requestID)
	}
	if req.Status != models.StatusPending {
		return nil, conflict("uncertification request is already %s", req.Status)
	}
	return req, nil
}

func (s *UncertificationService) signatureStatus(ctx context.Context, r *repository.Repositories, requestID string) (*models.SignatureStatus, error) {
	req, err := r.Uncertifications.GetRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get uncertification request: %w", err)
	}
	if req == nil {
		return nil, notFound("uncertification request %s not found", requestID)
	}
	signatures, err := r.Uncertifications.ListSignatures(ctx, requestID)
	if err != nil {
		return nil, err
	}

	required := s.policy.UncertificationSigners()
	signed := signedRoles(signatures)
	return &models.SignatureStatus{
		Request:   req,
		Required:  required,
		Signed:    signed,
		AllSigned: required.SatisfiedBy(signed),
	}, nil
}

func signedRoles(signatures []models.UncertificationSignature) []models.Role {
	roles := make([]models.Role, 0, len(signatures))
	for _, sig := range signatures {
		roles = append(roles, sig.SignerRole)
	}
	return roles
}
