package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"event-judging/internal/models"
)

const deductionColumns = `
	id, category_id, contestant_id, requested_by, requested_role, reason, points,
	status, created_at, updated_at, decided_at, applied_at, applied_by
`

// DeductionFilter narrows ListRequests. Empty fields match everything.
type DeductionFilter struct {
	CategoryID   string
	ContestantID string
	Status       models.RequestStatus
}

// DeductionRepository handles deduction requests, their approvals and the
// score adjustments they produce
type DeductionRepository struct {
	db sqlx.ExtContext
}

// NewDeductionRepository creates a new deduction repository
func NewDeductionRepository(db sqlx.ExtContext) *DeductionRepository {
	return &DeductionRepository{db: db}
}

// CreateRequest inserts a new request
func (r *DeductionRepository) CreateRequest(ctx context.Context, d *models.DeductionRequest) error {
	query := `
		INSERT INTO deduction_requests (` + deductionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		d.ID, d.CategoryID, d.ContestantID, d.RequestedBy, string(d.RequestedRole), d.Reason, d.Points,
		string(d.Status), d.CreatedAt.UTC(), d.UpdatedAt.UTC(), nullTime(d.DecidedAt), nullTime(d.AppliedAt), nullString(d.AppliedBy),
	)
	if err != nil {
		return fmt.Errorf("failed to create deduction request: %w", mapWriteError(err))
	}
	return nil
}

// GetRequest returns nil if the request does not exist
func (r *DeductionRepository) GetRequest(ctx context.Context, id string) (*models.DeductionRequest, error) {
	query := `SELECT ` + deductionColumns + ` FROM deduction_requests WHERE id = ?`
	var d models.DeductionRequest
	err := sqlx.GetContext(ctx, r.db, &d, r.db.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deduction request: %w", err)
	}
	return &d, nil
}

// ListRequests returns requests matching the filter, newest first
func (r *DeductionRepository) ListRequests(ctx context.Context, f DeductionFilter) ([]models.DeductionRequest, error) {
	var conds []string
	var args []any
	if f.CategoryID != "" {
		conds = append(conds, "category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.ContestantID != "" {
		conds = append(conds, "contestant_id = ?")
		args = append(args, f.ContestantID)
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(f.Status))
	}

	query := `SELECT ` + deductionColumns + ` FROM deduction_requests`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC, id`

	var requests []models.DeductionRequest
	if err := sqlx.SelectContext(ctx, r.db, &requests, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list deduction requests: %w", err)
	}
	return requests, nil
}

// LockPending bumps updated_at on a PENDING request. Inside a transaction
// the update holds the row lock, so concurrent decisions on the same
// request serialize. Returns false if the request is not PENDING.
func (r *DeductionRepository) LockPending(ctx context.Context, id string, now time.Time) (bool, error) {
	query := `UPDATE deduction_requests SET updated_at = ? WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), now.UTC(), id, string(models.StatusPending))
	if err != nil {
		return false, fmt.Errorf("failed to lock deduction request: %w", err)
	}
	n, err := rowsAffected(res)
	return n == 1, err
}

// Resolve moves a PENDING request to a final status. Returns false if the
// request was no longer PENDING.
func (r *DeductionRepository) Resolve(ctx context.Context, id string, status models.RequestStatus, now time.Time) (bool, error) {
	query := `
		UPDATE deduction_requests
		SET status = ?, decided_at = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), string(status), now.UTC(), now.UTC(), id, string(models.StatusPending))
	if err != nil {
		return false, fmt.Errorf("failed to resolve deduction request: %w", err)
	}
	n, err := rowsAffected(res)
	return n == 1, err
}

// MarkApplied flags an APPROVED request as applied. Returns false if it is
// not approved or was applied already.
func (r *DeductionRepository) MarkApplied(ctx context.Context, id, actorID string, now time.Time) (bool, error) {
	query := `
		UPDATE deduction_requests
		SET applied_at = ?, applied_by = ?, updated_at = ?
		WHERE id = ? AND status = ? AND applied_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), now.UTC(), actorID, now.UTC(), id, string(models.StatusApproved))
	if err != nil {
		return false, fmt.Errorf("failed to mark deduction applied: %w", err)
	}
	n, err := rowsAffected(res)
	return n == 1, err
}

// CreateApproval records one role's decision. A second decision by the same
// role fails with ErrDuplicate.
func (r *DeductionRepository) CreateApproval(ctx context.Context, a *models.DeductionApproval) error {
	query := `
		INSERT INTO deduction_approvals (id, request_id, approver_user_id, approver_role, decision, comment, decided_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		a.ID, a.RequestID, a.ApproverUserID, string(a.ApproverRole), string(a.Decision), nullString(a.Comment), a.DecidedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create deduction approval: %w", err)
	}
	return nil
}

// ListApprovals returns the decisions recorded on a request
func (r *DeductionRepository) ListApprovals(ctx context.Context, requestID string) ([]models.DeductionApproval, error) {
	query := `
		SELECT id, request_id, approver_user_id, approver_role, decision, comment, decided_at
		FROM deduction_approvals
		WHERE request_id = ?
		ORDER BY decided_at ASC, id
	`
	var approvals []models.DeductionApproval
	if err := sqlx.SelectContext(ctx, r.db, &approvals, r.db.Rebind(query), requestID); err != nil {
		return nil, fmt.Errorf("failed to list deduction approvals: %w", err)
	}
	return approvals, nil
}
