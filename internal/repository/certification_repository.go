package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"event-judging/internal/models"
)

const certificationColumns = `
	id, scope_type, scope_id, role, event_id, contest_id, category_id,
	contestant_id, judge_id, actor_user_id, actor_role, comment, certified_at
`

// CertificationRepository handles certification rows. Rows are only ever
// inserted or deleted, never updated.
type CertificationRepository struct {
	db sqlx.ExtContext
}

// NewCertificationRepository creates a new certification repository
func NewCertificationRepository(db sqlx.ExtContext) *CertificationRepository {
	return &CertificationRepository{db: db}
}

// Create inserts a certification. A second row for the same scope and role
// fails with ErrDuplicate.
func (r *CertificationRepository) Create(ctx context.Context, c *models.Certification) error {
	query := `
		INSERT INTO certifications (` + certificationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		c.ID, string(c.ScopeType), c.ScopeID, string(c.Role), c.EventID,
		nullString(c.ContestID), nullString(c.CategoryID), nullString(c.ContestantID), nullString(c.JudgeID),
		c.ActorUserID, string(c.ActorRole), nullString(c.Comment), c.CertifiedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create certification: %w", err)
	}
	return nil
}

// Exists reports whether the scope already holds a certification for role
func (r *CertificationRepository) Exists(ctx context.Context, kind models.ScopeKind, scopeID string, role models.Role) (bool, error) {
	var n int
	query := `SELECT COUNT(*) FROM certifications WHERE scope_type = ? AND scope_id = ? AND role = ?`
	if err := sqlx.GetContext(ctx, r.db, &n, r.db.Rebind(query), string(kind), scopeID, string(role)); err != nil {
		return false, fmt.Errorf("failed to check certification: %w", err)
	}
	return n > 0, nil
}

// ListByScope returns every certification of one scope
func (r *CertificationRepository) ListByScope(ctx context.Context, kind models.ScopeKind, scopeID string) ([]models.Certification, error) {
	query := `SELECT ` + certificationColumns + ` FROM certifications WHERE scope_type = ? AND scope_id = ? ORDER BY certified_at, id`
	var certs []models.Certification
	if err := sqlx.SelectContext(ctx, r.db, &certs, r.db.Rebind(query), string(kind), scopeID); err != nil {
		return nil, fmt.Errorf("failed to list certifications: %w", err)
	}
	return certs, nil
}

// ListByCategory returns the certifications of one kind attached to a
// category, e.g. every judge-contestant row of the category.
func (r *CertificationRepository) ListByCategory(ctx context.Context, categoryID string, kind models.ScopeKind) ([]models.Certification, error) {
	query := `SELECT ` + certificationColumns + ` FROM certifications WHERE category_id = ? AND scope_type = ? ORDER BY certified_at, id`
	var certs []models.Certification
	if err := sqlx.SelectContext(ctx, r.db, &certs, r.db.Rebind(query), categoryID, string(kind)); err != nil {
		return nil, fmt.Errorf("failed to list category certifications: %w", err)
	}
	return certs, nil
}

// CountJudgeCategory counts the judge-contestant certifications a judge
// holds in a category
func (r *CertificationRepository) CountJudgeCategory(ctx context.Context, judgeID, categoryID string) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM certifications WHERE scope_type = ? AND judge_id = ? AND category_id = ?`
	if err := sqlx.GetContext(ctx, r.db, &n, r.db.Rebind(query), string(models.ScopeJudgeContestant), judgeID, categoryID); err != nil {
		return 0, fmt.Errorf("failed to count judge certifications: %w", err)
	}
	return n, nil
}

// DeleteJudgeCategory removes the judge-contestant certifications a judge
// holds in a category
func (r *CertificationRepository) DeleteJudgeCategory(ctx context.Context, judgeID, categoryID string) (int, error) {
	query := `DELETE FROM certifications WHERE scope_type = ? AND judge_id = ? AND category_id = ?`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), string(models.ScopeJudgeContestant), judgeID, categoryID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete judge certifications: %w", err)
	}
	return rowsAffected(res)
}

// DeleteKindUnder removes every certification of kind that sits at or below
// the given scope. kind must not be above scope.Kind.
func (r *CertificationRepository) DeleteKindUnder(ctx context.Context, kind models.ScopeKind, scope models.ScopeRef) (int, error) {
	var where string
	var args []any
	switch scope.Kind {
	case models.ScopeContestantCategory:
		where, args = "category_id = ? AND contestant_id = ?", []any{scope.CategoryID, scope.ContestantID}
	case models.ScopeCategory:
		where, args = "category_id = ?", []any{scope.CategoryID}
	case models.ScopeContest:
		where, args = "contest_id = ?", []any{scope.ContestID}
	case models.ScopeEvent:
		where, args = "event_id = ?", []any{scope.EventID}
	default:
		return 0, fmt.Errorf("cannot delete certifications under %s", scope.Kind)
	}
	if kind.Depth() > scope.Kind.Depth() {
		return 0, fmt.Errorf("%s is above %s", kind, scope.Kind)
	}

	query := `DELETE FROM certifications WHERE scope_type = ? AND ` + where
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), append([]any{string(kind)}, args...)...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s certifications: %w", kind, err)
	}
	return rowsAffected(res)
}
