package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"event-judging/internal/models"
)

// ScoreRepository handles judge scores and applied score adjustments
type ScoreRepository struct {
	db sqlx.ExtContext
}

// NewScoreRepository creates a new score repository
func NewScoreRepository(db sqlx.ExtContext) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// Create inserts a score
func (r *ScoreRepository) Create(ctx context.Context, s *models.Score) error {
	query := `
		INSERT INTO scores (id, category_id, judge_id, contestant_id, points, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		s.ID, s.CategoryID, s.JudgeID, s.ContestantID, s.Points, s.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create score: %w", mapWriteError(err))
	}
	return nil
}

// ListByCategory returns the scores entered in a category
func (r *ScoreRepository) ListByCategory(ctx context.Context, categoryID string) ([]models.Score, error) {
	query := `
		SELECT id, category_id, judge_id, contestant_id, points, created_at
		FROM scores
		WHERE category_id = ?
		ORDER BY contestant_id, judge_id
	`
	var scores []models.Score
	if err := sqlx.SelectContext(ctx, r.db, &scores, r.db.Rebind(query), categoryID); err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	return scores, nil
}

// DeleteJudgeCategory removes every score a judge entered in a category
func (r *ScoreRepository) DeleteJudgeCategory(ctx context.Context, judgeID, categoryID string) (int, error) {
	query := `DELETE FROM scores WHERE judge_id = ? AND category_id = ?`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), judgeID, categoryID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete scores: %w", err)
	}
	return rowsAffected(res)
}

// CreateAdjustment records an applied deduction. A request can only be
// applied once; a second row fails with ErrDuplicate.
func (r *ScoreRepository) CreateAdjustment(ctx context.Context, a *models.ScoreAdjustment) error {
	query := `
		INSERT INTO score_adjustments (id, category_id, contestant_id, points, source_request_id, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		a.ID, a.CategoryID, a.ContestantID, a.Points, a.SourceRequestID, a.CreatedBy, a.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create score adjustment: %w", err)
	}
	return nil
}

// GetAdjustmentByRequest returns nil if the request has not been applied
func (r *ScoreRepository) GetAdjustmentByRequest(ctx context.Context, requestID string) (*models.ScoreAdjustment, error) {
	query := `
		SELECT id, category_id, contestant_id, points, source_request_id, created_by, created_at
		FROM score_adjustments
		WHERE source_request_id = ?
	`
	var a models.ScoreAdjustment
	err := sqlx.GetContext(ctx, r.db, &a, r.db.Rebind(query), requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get score adjustment: %w", err)
	}
	return &a, nil
}

// TotalAdjustment sums the applied adjustments of a contestant in a category
func (r *ScoreRepository) TotalAdjustment(ctx context.Context, categoryID, contestantID string) (int, error) {
	query := `SELECT COALESCE(SUM(points), 0) FROM score_adjustments WHERE category_id = ? AND contestant_id = ?`
	var total int
	if err := sqlx.GetContext(ctx, r.db, &total, r.db.Rebind(query), categoryID, contestantID); err != nil {
		return 0, fmt.Errorf("failed to sum score adjustments: %w", err)
	}
	return total, nil
}
