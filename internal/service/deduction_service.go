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

// DeductionService handles point deduction requests, their multi-role
// approval and the one-time application of approved deductions
type DeductionService struct {
	store  Store
	policy *policy.Table
	audit  *AuditService
	now    Clock
}

// NewDeductionService creates a new deduction service
func NewDeductionService(store Store, p *policy.Table, audit *AuditService) *DeductionService {
	return &DeductionService{
		store:  store,
		policy: p,
		audit:  audit,
		now:    systemClock,
	}
}

// CreateDeductionInput describes a proposed deduction
type CreateDeductionInput struct {
	CategoryID   string
	ContestantID string
	Points       int
	Reason       string
}

// CreateRequest opens a PENDING deduction request
func (s *DeductionService) CreateRequest(ctx context.Context, in CreateDeductionInput, actor models.Actor) (req *models.DeductionRequest, err error) {
	defer func() { record("deduction", "create", err) }()

	in.Reason = strings.TrimSpace(in.Reason)
	switch {
	case in.CategoryID == "" || in.ContestantID == "":
		return nil, invalid("category_id and contestant_id are required")
	case in.Points <= 0:
		return nil, invalid("points must be greater than zero")
	case in.Reason == "":
		return nil, invalid("reason is required")
	}
	if !s.policy.Allows(policy.OpCreateDeduction, "", actor.Role) {
		return nil, forbidden("role %s cannot request deductions", actor.Role)
	}

	err = s.store.InTx(ctx, func(r *repository.Repositories) error {
		category, err := r.Scopes.GetCategory(ctx, in.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to get category: %w", err)
		}
		if category == nil {
			return notFound("category %s not found", in.CategoryID)
		}
		ok, err := r.Scopes.IsContestantInCategory(ctx, in.CategoryID, in.ContestantID)
		if err != nil {
			return fmt.Errorf("failed to check contestant assignment: %w", err)
		}
		if !ok {
			return notFound("contestant %s is not in category %s", in.ContestantID, in.CategoryID)
		}

		if actor.Role == models.RoleJudge {
			if err := requireJudgeOfCategory(ctx, r, actor, in.CategoryID); err != nil {
				return err
			}
		}

		now := s.now()
		req = &models.DeductionRequest{
			ID:            newID(),
			CategoryID:    in.CategoryID,
			ContestantID:  in.ContestantID,
			RequestedBy:   actor.UserID,
			RequestedRole: actor.Role,
			Reason:        in.Reason,
			Points:        in.Points,
			Status:        models.StatusPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := r.Deductions.CreateRequest(ctx, req); err != nil {
			return err
		}

		return s.audit.Record(ctx, r, actor, ActionRequestDeduction, ResourceDeduction, req.ID,
			fmt.Sprintf("contestant=%s category=%s points=%d", in.ContestantID, in.CategoryID, in.Points))
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Deduction requested", "request_id", req.ID, "category_id", req.CategoryID, "contestant_id", req.ContestantID, "points", req.Points, "user_id", actor.UserID)
	return req, nil
}

// requireJudgeOfCategory checks that a judge actor holds a seat in the category
func requireJudgeOfCategory(ctx context.Context, r *repository.Repositories, actor models.Actor, categoryID string) error {
	judge, err := r.Scopes.GetJudgeByUserID(ctx, actor.UserID)
	if err != nil {
		return fmt.Errorf("failed to get judge: %w", err)
	}
	if judge == nil {
		return forbidden("user %s is not a judge", actor.UserID)
	}
	ok, err := r.Scopes.IsJudgeInCategory(ctx, categoryID, judge.ID)
	if err != nil {
		return fmt.Errorf("failed to check judge assignment: %w", err)
	}
	if !ok {
		return forbidden("judge %s is not assigned to category %s", judge.ID, categoryID)
	}
	return nil
}

// Decide records one approver role's decision. A rejection resolves the
// request immediately; an approval resolves it once every approver role
// has approved. The request row is locked first, so concurrent decisions
// on the same request are serialized and the quorum is recomputed from
// the stored approvals each time.
func (s *DeductionService) Decide(ctx context.Context, requestID string, decision models.Decision, actor models.Actor, comment string) (req *models.DeductionRequest, err error) {
	defer func() { record("deduction", "decide", err) }()

	if decision != models.DecisionApproved && decision != models.DecisionRejected {
		return nil, invalid("decision must be APPROVED or REJECTED")
	}
	approvers := s.policy.DeductionApprovers()
	if !approvers.Contains(actor.Role) {
		return nil, forbidden("role %s is not a deduction approver", actor.Role)
	}

	err = s.store.InTx(ctx, func(r *repository.Repositories) error {
		current, err := r.Deductions.GetRequest(ctx, requestID)
		if err != nil {
			return fmt.Errorf("failed to get deduction request: %w", err)
		}
		if current == nil {
			return notFound("deduction request %s not found", requestID)
		}
		if current.Status != models.StatusPending {
			return conflict("deduction request is already %s", current.Status)
		}

		now := s.now()
		locked, err := r.Deductions.LockPending(ctx, requestID, now)
		if err != nil {
			return err
		}
		if !locked {
			return conflict("deduction request is no longer pending")
		}

		approvals, err := r.Deductions.ListApprovals(ctx, requestID)
		if err != nil {
			return err
		}
		for _, a := range approvals {
			if a.ApproverRole == actor.Role {
				return conflict("%s has already decided this request", actor.Role)
			}
		}

		approval := &models.DeductionApproval{
			ID:             newID(),
			RequestID:      requestID,
			ApproverUserID: actor.UserID,
			ApproverRole:   actor.Role,
			Decision:       decision,
			Comment:        strPtr(strings.TrimSpace(comment)),
			DecidedAt:      now,
		}
		if err := r.Deductions.CreateApproval(ctx, approval); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return conflict("%s has already decided this request", actor.Role)
			}
			return err
		}
		approvals = append(approvals, *approval)

		status := models.StatusPending
		if decision == models.DecisionRejected {
			status = models.StatusRejected
		} else if approvers.SatisfiedBy(approvedRoles(approvals)) {
			status = models.StatusApproved
		}
		if status != models.StatusPending {
			if _, err := r.Deductions.Resolve(ctx, requestID, status, now); err != nil {
				return err
			}
		}

		if err := s.audit.Record(ctx, r, actor, ActionDecideDeduction, ResourceDeduction, requestID,
			fmt.Sprintf("decision=%s status=%s", decision, status)); err != nil {
			return err
		}

		req, err = r.Deductions.GetRequest(ctx, requestID)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Deduction decided", "request_id", requestID, "decision", decision, "status", req.Status, "role", actor.Role)
	return req, nil
}

// GetApprovalStatus returns the quorum state of a request
func (s *DeductionService) GetApprovalStatus(ctx context.Context, requestID string) (*models.ApprovalStatus, error) {
	r := s.store.Read()
	req, err := r.Deductions.GetRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deduction request: %w", err)
	}
	if req == nil {
		return nil, notFound("deduction request %s not found", requestID)
	}
	approvals, err := r.Deductions.ListApprovals(ctx, requestID)
	if err != nil {
		return nil, err
	}

	status := &models.ApprovalStatus{
		RequestID: req.ID,
		Status:    req.Status,
		Required:  s.policy.DeductionApprovers(),
		Approved:  approvedRoles(approvals),
		Rejected:  []models.Role{},
		Applied:   req.AppliedAt != nil,
	}
	for _, a := range approvals {
		if a.Decision == models.DecisionRejected {
			status.Rejected = append(status.Rejected, a.ApproverRole)
		}
	}
	return status, nil
}

// GetRequest returns a single request
func (s *DeductionService) GetRequest(ctx context.Context, requestID string) (*models.DeductionRequest, error) {
	req, err := s.store.Read().Deductions.GetRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deduction request: %w", err)
	}
	if req == nil {
		return nil, notFound("deduction request %s not found", requestID)
	}
	return req, nil
}

// ListRequests returns requests matching the filter, newest first
func (s *DeductionService) ListRequests(ctx context.Context, f repository.DeductionFilter) ([]models.DeductionRequest, error) {
	if f.Status != "" && f.Status != models.StatusPending && f.Status != models.StatusApproved && f.Status != models.StatusRejected {
		return nil, invalid("unknown status %q", f.Status)
	}
	return s.store.Read().Deductions.ListRequests(ctx, f)
}

// Apply turns an APPROVED request into a score adjustment. A request is
// applied at most once: the request row is marked applied conditionally
// and the adjustment is unique per source request.
func (s *DeductionService) Apply(ctx context.Context, requestID string, actor models.Actor) (adj *models.ScoreAdjustment, err error) {
	defer func() { record("deduction", "apply", err) }()

	if !s.policy.Allows(policy.OpApplyDeduction, "", actor.Role) {
		return nil, forbidden("role %s cannot apply deductions", actor.Role)
	}

	err = s.store.InTx(ctx, func(r *repository.Repositories) error {
		req, err := r.Deductions.GetRequest(ctx, requestID)
		if err != nil {
			return fmt.Errorf("failed to get deduction request: %w", err)
		}
		if req == nil {
			return notFound("deduction request %s not found", requestID)
		}
		if req.AppliedAt != nil {
			return conflict("deduction request has already been applied")
		}
		if req.Status != models.StatusApproved {
			return conflict("only APPROVED deductions can be applied, request is %s", req.Status)
		}

		now := s.now()
		marked, err := r.Deductions.MarkApplied(ctx, requestID, actor.UserID, now)
		if err != nil {
			return err
		}
		if !marked {
			return conflict("deduction request has already been applied")
		}

		adj = &models.ScoreAdjustment{
			ID:              newID(),
			CategoryID:      req.CategoryID,
			ContestantID:    req.ContestantID,
			Points:          -req.Points,
			SourceRequestID: req.ID,
			CreatedBy:       actor.UserID,
			CreatedAt:       now,
		}
		if err := r.Scores.CreateAdjustment(ctx, adj); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return conflict("deduction request has already been applied")
			}
			return err
		}

		return s.audit.Record(ctx, r, actor, ActionApplyDeduction, ResourceDeduction, requestID,
			fmt.Sprintf("adjustment=%s points=%d", adj.ID, adj.Points))
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Deduction applied", "request_id", requestID, "points", adj.Points, "user_id", actor.UserID)
	return adj, nil
}

func approvedRoles(approvals []models.DeductionApproval) []models.Role {
	roles := []models.Role{}
	for _, a := range approvals {
		if a.Decision == models.DecisionApproved {
			roles = append(roles, a.ApproverRole)
		}
	}
	return roles
}
