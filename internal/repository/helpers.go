package repository

import (
	"database/sql"
	"fmt"
	"time"
)

func rowsAffected(res sql.Result) (int, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return int(n), nil
}

// Query arguments are reduced to plain driver values (string, int,
// time.Time, nil) so both drivers bind them without conversion.

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
