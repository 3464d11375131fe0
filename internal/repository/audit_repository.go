package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"event-judging/internal/models"
)

// AuditFilter narrows audit log listings. Empty fields match everything.
type AuditFilter struct {
	UserID     string
	Resource   string
	ResourceID string
	Limit      int
	Offset     int
}

// AuditRepository handles audit log database operations
type AuditRepository struct {
	db sqlx.ExtContext
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db sqlx.ExtContext) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create creates a new audit log entry
func (r *AuditRepository) Create(ctx context.Context, log *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, user_id, action, resource, resource_id, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		log.ID,
		nullString(log.UserID),
		log.Action,
		log.Resource,
		nullString(log.ResourceID),
		nullString(log.Details),
		log.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

// List retrieves audit logs matching the filter, newest first
func (r *AuditRepository) List(ctx context.Context, f AuditFilter) ([]models.AuditLog, error) {
	var conds []string
	var args []any
	if f.UserID != "" {
		conds = append(conds, "user_id = ?")
		args = append(args, f.UserID)
	}
	if f.Resource != "" {
		conds = append(conds, "resource = ?")
		args = append(args, f.Resource)
	}
	if f.ResourceID != "" {
		conds = append(conds, "resource_id = ?")
		args = append(args, f.ResourceID)
	}

	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	offset := max(f.Offset, 0)

	query := `SELECT id, user_id, action, resource, resource_id, details, created_at FROM audit_logs`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var logs []models.AuditLog
	if err := sqlx.SelectContext(ctx, r.db, &logs, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get audit logs: %w", err)
	}
	return logs, nil
}
