package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"event-judging/internal/database"
)

// Repositories groups every repository bound to the same executor, either
// the connection pool or one open transaction.
type Repositories struct {
	Scopes           *ScopeRepository
	Certifications   *CertificationRepository
	Deductions       *DeductionRepository
	Uncertifications *UncertificationRepository
	Scores           *ScoreRepository
	Audit            *AuditRepository
}

// NewRepositories binds all repositories to db, which may be a *sqlx.DB or
// a *sqlx.Tx.
func NewRepositories(db sqlx.ExtContext) *Repositories {
	return &Repositories{
		Scopes:           NewScopeRepository(db),
		Certifications:   NewCertificationRepository(db),
		Deductions:       NewDeductionRepository(db),
		Uncertifications: NewUncertificationRepository(db),
		Scores:           NewScoreRepository(db),
		Audit:            NewAuditRepository(db),
	}
}

// Store hands out repositories bound to the pool or to a transaction
type Store struct {
	db   *sqlx.DB
	read *Repositories
}

// NewStore creates a new store
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, read: NewRepositories(db)}
}

// Read returns repositories running outside any transaction
func (s *Store) Read() *Repositories {
	return s.read
}

// InTx runs fn with repositories bound to a single transaction. Every write
// made through them commits together or not at all.
func (s *Store) InTx(ctx context.Context, fn func(r *Repositories) error) error {
	return database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return fn(NewRepositories(tx))
	})
}
