package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"event-judging/internal/models"
)

// ScopeRepository reads and seeds the judging hierarchy: events, contests,
// categories and their contestant and judge assignments.
type ScopeRepository struct {
	db sqlx.ExtContext
}

// NewScopeRepository creates a new scope repository
func NewScopeRepository(db sqlx.ExtContext) *ScopeRepository {
	return &ScopeRepository{db: db}
}

func (r *ScopeRepository) get(ctx context.Context, dest any, query string, args ...any) (bool, error) {
	err := sqlx.GetContext(ctx, r.db, dest, r.db.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateEvent inserts an event
func (r *ScopeRepository) CreateEvent(ctx context.Context, e *models.Event) error {
	query := `INSERT INTO events (id, name, created_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query), e.ID, e.Name, e.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create event: %w", mapWriteError(err))
	}
	return nil
}

// CreateContest inserts a contest
func (r *ScopeRepository) CreateContest(ctx context.Context, c *models.Contest) error {
	query := `INSERT INTO contests (id, event_id, name, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query), c.ID, c.EventID, c.Name, c.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create contest: %w", mapWriteError(err))
	}
	return nil
}

// CreateCategory inserts a category
func (r *ScopeRepository) CreateCategory(ctx context.Context, c *models.Category) error {
	query := `INSERT INTO categories (id, contest_id, name, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query), c.ID, c.ContestID, c.Name, c.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create category: %w", mapWriteError(err))
	}
	return nil
}

// CreateContestant inserts a contestant
func (r *ScopeRepository) CreateContestant(ctx context.Context, c *models.Contestant) error {
	query := `INSERT INTO contestants (id, name) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query), c.ID, c.Name)
	if err != nil {
		return fmt.Errorf("failed to create contestant: %w", mapWriteError(err))
	}
	return nil
}

// CreateJudge inserts a judge
func (r *ScopeRepository) CreateJudge(ctx context.Context, j *models.Judge) error {
	query := `INSERT INTO judges (id, user_id, name) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query), j.ID, j.UserID, j.Name)
	if err != nil {
		return fmt.Errorf("failed to create judge: %w", mapWriteError(err))
	}
	return nil
}

// AssignContestant adds a contestant to a category
func (r *ScopeRepository) AssignContestant(ctx context.Context, categoryID, contestantID string) error {
	query := `INSERT INTO category_contestants (category_id, contestant_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query), categoryID, contestantID)
	if err != nil {
		return fmt.Errorf("failed to assign contestant: %w", mapWriteError(err))
	}
	return nil
}

// AssignJudge adds a judge to a category
func (r *ScopeRepository) AssignJudge(ctx context.Context, categoryID, judgeID string) error {
	query := `INSERT INTO category_judges (category_id, judge_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query), categoryID, judgeID)
	if err != nil {
		return fmt.Errorf("failed to assign judge: %w", mapWriteError(err))
	}
	return nil
}

// GetEvent returns nil if the event does not exist
func (r *ScopeRepository) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var e models.Event
	found, err := r.get(ctx, &e, `SELECT id, name, created_at FROM events WHERE id = ?`, id)
	if err != nil || !found {
		return nil, err
	}
	return &e, nil
}

// GetContest returns nil if the contest does not exist
func (r *ScopeRepository) GetContest(ctx context.Context, id string) (*models.Contest, error) {
	var c models.Contest
	found, err := r.get(ctx, &c, `SELECT id, event_id, name, created_at FROM contests WHERE id = ?`, id)
	if err != nil || !found {
		return nil, err
	}
	return &c, nil
}

// GetCategory returns the category with its event id, or nil if it does
// not exist
func (r *ScopeRepository) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	query := `
		SELECT cat.id, cat.contest_id, con.event_id, cat.name, cat.created_at
		FROM categories cat
		JOIN contests con ON con.id = cat.contest_id
		WHERE cat.id = ?
	`
	var c models.Category
	found, err := r.get(ctx, &c, query, id)
	if err != nil || !found {
		return nil, err
	}
	return &c, nil
}

// GetContestant returns nil if the contestant does not exist
func (r *ScopeRepository) GetContestant(ctx context.Context, id string) (*models.Contestant, error) {
	var c models.Contestant
	found, err := r.get(ctx, &c, `SELECT id, name FROM contestants WHERE id = ?`, id)
	if err != nil || !found {
		return nil, err
	}
	return &c, nil
}

// GetJudge returns nil if the judge does not exist
func (r *ScopeRepository) GetJudge(ctx context.Context, id string) (*models.Judge, error) {
	var j models.Judge
	found, err := r.get(ctx, &j, `SELECT id, user_id, name FROM judges WHERE id = ?`, id)
	if err != nil || !found {
		return nil, err
	}
	return &j, nil
}

// GetJudgeByUserID returns the judge seat bound to a user, or nil
func (r *ScopeRepository) GetJudgeByUserID(ctx context.Context, userID string) (*models.Judge, error) {
	var j models.Judge
	found, err := r.get(ctx, &j, `SELECT id, user_id, name FROM judges WHERE user_id = ?`, userID)
	if err != nil || !found {
		return nil, err
	}
	return &j, nil
}

// IsContestantInCategory reports whether the contestant is assigned to the category
func (r *ScopeRepository) IsContestantInCategory(ctx context.Context, categoryID, contestantID string) (bool, error) {
	var n int
	query := `SELECT COUNT(*) FROM category_contestants WHERE category_id = ? AND contestant_id = ?`
	if err := sqlx.GetContext(ctx, r.db, &n, r.db.Rebind(query), categoryID, contestantID); err != nil {
		return false, err
	}
	return n > 0, nil
}

// IsJudgeInCategory reports whether the judge is assigned to the category
func (r *ScopeRepository) IsJudgeInCategory(ctx context.Context, categoryID, judgeID string) (bool, error) {
	var n int
	query := `SELECT COUNT(*) FROM category_judges WHERE category_id = ? AND judge_id = ?`
	if err := sqlx.GetContext(ctx, r.db, &n, r.db.Rebind(query), categoryID, judgeID); err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListCategoryContestants returns the contestants of a category ordered by name
func (r *ScopeRepository) ListCategoryContestants(ctx context.Context, categoryID string) ([]models.Contestant, error) {
	query := `
		SELECT c.id, c.name
		FROM contestants c
		JOIN category_contestants cc ON cc.contestant_id = c.id
		WHERE cc.category_id = ?
		ORDER BY c.name, c.id
	`
	var contestants []models.Contestant
	if err := sqlx.SelectContext(ctx, r.db, &contestants, r.db.Rebind(query), categoryID); err != nil {
		return nil, fmt.Errorf("failed to list category contestants: %w", err)
	}
	return contestants, nil
}

// ListCategoryJudges returns the judges of a category ordered by name
func (r *ScopeRepository) ListCategoryJudges(ctx context.Context, categoryID string) ([]models.Judge, error) {
	query := `
		SELECT j.id, j.user_id, j.name
		FROM judges j
		JOIN category_judges cj ON cj.judge_id = j.id
		WHERE cj.category_id = ?
		ORDER BY j.name, j.id
	`
	var judges []models.Judge
	if err := sqlx.SelectContext(ctx, r.db, &judges, r.db.Rebind(query), categoryID); err != nil {
		return nil, fmt.Errorf("failed to list category judges: %w", err)
	}
	return judges, nil
}

// ListContestCategories returns the categories of a contest
func (r *ScopeRepository) ListContestCategories(ctx context.Context, contestID string) ([]models.Category, error) {
	query := `
		SELECT cat.id, cat.contest_id, con.event_id, cat.name, cat.created_at
		FROM categories cat
		JOIN contests con ON con.id = cat.contest_id
		WHERE cat.contest_id = ?
		ORDER BY cat.created_at, cat.id
	`
	var categories []models.Category
	if err := sqlx.SelectContext(ctx, r.db, &categories, r.db.Rebind(query), contestID); err != nil {
		return nil, fmt.Errorf("failed to list contest categories: %w", err)
	}
	return categories, nil
}

// ListEventContests returns the contests of an event
func (r *ScopeRepository) ListEventContests(ctx context.Context, eventID string) ([]models.Contest, error) {
	query := `
		SELECT id, event_id, name, created_at
		FROM contests
		WHERE event_id = ?
		ORDER BY created_at, id
	`
	var contests []models.Contest
	if err := sqlx.SelectContext(ctx, r.db, &contests, r.db.Rebind(query), eventID); err != nil {
		return nil, fmt.Errorf("failed to list event contests: %w", err)
	}
	return contests, nil
}
