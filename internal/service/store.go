package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"event-judging/internal/repository"
)

// Store is the persistence the workflow services depend on.
// *repository.Store satisfies it.
type Store interface {
	// Read returns repositories bound to the connection pool
	Read() *repository.Repositories
	// InTx runs fn in one transaction; returning an error rolls it back
	InTx(ctx context.Context, fn func(r *repository.Repositories) error) error
}

// Clock returns the current time. Tests pin it.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

func newID() string {
	return uuid.NewString()
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
