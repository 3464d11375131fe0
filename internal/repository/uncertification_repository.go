package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"event-judging/internal/models"
)

const uncertificationColumns = `
	id, judge_id, category_id, reason, requested_by, requested_at, status,
	rejection_reason, rejected_by, executed_by, executed_at, updated_at
`

// UncertificationRepository handles uncertification requests and signatures
type UncertificationRepository struct {
	db sqlx.ExtContext
}

// NewUncertificationRepository creates a new uncertification repository
func NewUncertificationRepository(db sqlx.ExtContext) *UncertificationRepository {
	return &UncertificationRepository{db: db}
}

// CreateRequest inserts a PENDING request. A judge may have only one open
// request per category; a second one fails with ErrDuplicate.
func (r *UncertificationRepository) CreateRequest(ctx context.Context, u *models.UncertificationRequest) error {
	query := `
		INSERT INTO uncertification_requests (` + uncertificationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		u.ID, u.JudgeID, u.CategoryID, u.Reason, u.RequestedBy, u.RequestedAt.UTC(), string(u.Status),
		nullString(u.RejectionReason), nullString(u.RejectedBy), nullString(u.ExecutedBy), nullTime(u.ExecutedAt), u.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create uncertification request: %w", err)
	}
	return nil
}

// GetRequest returns nil if the request does not exist
func (r *UncertificationRepository) GetRequest(ctx context.Context, id string) (*models.UncertificationRequest, error) {
	query := `SELECT ` + uncertificationColumns + ` FROM uncertification_requests WHERE id = ?`
	var u models.UncertificationRequest
	err := sqlx.GetContext(ctx, r.db, &u, r.db.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get uncertification request: %w", err)
	}
	return &u, nil
}

// ListRequests returns requests, optionally filtered by status, newest first
func (r *UncertificationRepository) ListRequests(ctx context.Context, status models.RequestStatus) ([]models.UncertificationRequest, error) {
	query := `SELECT ` + uncertificationColumns + ` FROM uncertification_requests`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY requested_at DESC, id`

	var requests []models.UncertificationRequest
	if err := sqlx.SelectContext(ctx, r.db, &requests, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list uncertification requests: %w", err)
	}
	return requests, nil
}

// LockPending bumps updated_at on a PENDING request, taking its row lock for
// the rest of the transaction. Returns false if the request is not PENDING.
func (r *UncertificationRepository) LockPending(ctx context.Context, id string, now time.Time) (bool, error) {
	query := `UPDATE uncertification_requests SET updated_at = ? WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), now.UTC(), id, string(models.StatusPending))
	if err != nil {
		return false, fmt.Errorf("failed to lock uncertification request: %w", err)
	}
	n, err := rowsAffected(res)
	return n == 1, err
}

// Reject terminates a PENDING request
func (r *UncertificationRepository) Reject(ctx context.Context, id, actorID, reason string, now time.Time) (bool, error) {
	query := `
		UPDATE uncertification_requests
		SET status = ?, rejection_reason = ?, rejected_by = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		string(models.StatusRejected), reason, actorID, now.UTC(), id, string(models.StatusPending),
	)
	if err != nil {
		return false, fmt.Errorf("failed to reject uncertification request: %w", err)
	}
	n, err := rowsAffected(res)
	return n == 1, err
}

// MarkExecuted moves a PENDING request to APPROVED
func (r *UncertificationRepository) MarkExecuted(ctx context.Context, id, actorID string, now time.Time) (bool, error) {
	query := `
		UPDATE uncertification_requests
		SET status = ?, executed_by = ?, executed_at = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		string(models.StatusApproved), actorID, now.UTC(), now.UTC(), id, string(models.StatusPending),
	)
	if err != nil {
		return false, fmt.Errorf("failed to execute uncertification request: %w", err)
	}
	n, err := rowsAffected(res)
	return n == 1, err
}

// AddSignature records a role's signature. Signing again with the same role
// is ignored; the returned bool reports whether a row was inserted.
func (r *UncertificationRepository) AddSignature(ctx context.Context, s *models.UncertificationSignature) (bool, error) {
	query := `
		INSERT INTO uncertification_signatures (id, request_id, signer_user_id, signer_role, signed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (request_id, signer_role) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		s.ID, s.RequestID, s.SignerUserID, string(s.SignerRole), s.SignedAt.UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to add signature: %w", mapWriteError(err))
	}
	n, err := rowsAffected(res)
	return n == 1, err
}

// ListSignatures returns the signatures of a request in signing order
func (r *UncertificationRepository) ListSignatures(ctx context.Context, requestID string) ([]models.UncertificationSignature, error) {
	query := `
		SELECT id, request_id, signer_user_id, signer_role, signed_at
		FROM uncertification_signatures
		WHERE request_id = ?
		ORDER BY signed_at ASC, id
	`
	var sigs []models.UncertificationSignature
	if err := sqlx.SelectContext(ctx, r.db, &sigs, r.db.Rebind(query), requestID); err != nil {
		return nil, fmt.Errorf("failed to list signatures: %w", err)
	}
	return sigs, nil
}
