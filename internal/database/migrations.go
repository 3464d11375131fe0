package database

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// Migration represents a database migration
type Migration struct {
	Version  string
	Name     string
	Title    string // Human-readable title derived from filename
	UpSQL    string
	DownSQL  string
	Checksum string // SHA256 checksum of UpSQL content
}

// MigrationExecutor handles database migrations
type MigrationExecutor struct {
	db *sqlx.DB
}

// NewMigrationExecutor creates a new migration executor
func NewMigrationExecutor(db *sqlx.DB) *MigrationExecutor {
	return &MigrationExecutor{db: db}
}

// RunMigrations executes all pending migrations found in fsys
func (m *MigrationExecutor) RunMigrations(ctx context.Context, fsys fs.FS) error {
	if err := m.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	migrations, err := ReadMigrations(fsys)
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}

	if err := m.validateMigrationChecksums(ctx, migrations); err != nil {
		return fmt.Errorf("migration validation failed: %w", err)
	}

	applied, err := m.getAppliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, migration := range migrations {
		if slices.Contains(applied, migration.Version) {
			continue
		}
		if err := m.executeMigration(ctx, migration); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", migration.Version, err)
		}
		slog.Info("Applied migration", "version", migration.Version, "title", migration.Title)
	}

	return nil
}

func (m *MigrationExecutor) createMigrationsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			title VARCHAR(500),
			checksum VARCHAR(64),
			applied_at TIMESTAMP NOT NULL
		)
	`
	_, err := m.db.ExecContext(ctx, query)
	return err
}

// ReadMigrations collects NNN_name.up.sql / NNN_name.down.sql pairs from
// the root of fsys, sorted by version. Versions without an up file are
// ignored.
func ReadMigrations(fsys fs.FS) ([]Migration, error) {
	files, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	migrationsMap := make(map[string]*Migration)

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		filename := file.Name()
		isUp := strings.HasSuffix(filename, ".up.sql")
		isDown := strings.HasSuffix(filename, ".down.sql")
		if !isUp && !isDown {
			continue
		}

		version, rest, ok := strings.Cut(filename, "_")
		if !ok || version == "" {
			continue
		}

		content, err := fs.ReadFile(fsys, filename)
		if err != nil {
			return nil, err
		}

		if migrationsMap[version] == nil {
			name := strings.TrimSuffix(strings.TrimSuffix(rest, ".up.sql"), ".down.sql")
			migrationsMap[version] = &Migration{
				Version: version,
				Name:    name,
				Title:   strings.ReplaceAll(name, "_", " "),
			}
		}

		if isUp {
			migrationsMap[version].UpSQL = string(content)
			migrationsMap[version].Checksum = calculateChecksum(string(content))
		} else {
			migrationsMap[version].DownSQL = string(content)
		}
	}

	var migrations []Migration
	for _, migration := range migrationsMap {
		if migration.UpSQL != "" {
			migrations = append(migrations, *migration)
		}
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

func (m *MigrationExecutor) getAppliedMigrations(ctx context.Context) ([]string, error) {
	var versions []string
	err := m.db.SelectContext(ctx, &versions, `SELECT version FROM schema_migrations ORDER BY version`)
	return versions, err
}

func (m *MigrationExecutor) executeMigration(ctx context.Context, migration Migration) error {
	return WithTx(ctx, m.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, migration.UpSQL); err != nil {
			return fmt.Errorf("migration SQL failed: %w", err)
		}

		query := tx.Rebind(`INSERT INTO schema_migrations (version, title, checksum, applied_at) VALUES (?, ?, ?, ?)`)
		if _, err := tx.ExecContext(ctx, query, migration.Version, migration.Title, migration.Checksum, time.Now().UTC()); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
		return nil
	})
}

// validateMigrationChecksums verifies that applied migrations haven't been modified
func (m *MigrationExecutor) validateMigrationChecksums(ctx context.Context, migrations []Migration) error {
	type appliedRow struct {
		Version  string         `db:"version"`
		Title    sql.NullString `db:"title"`
		Checksum string         `db:"checksum"`
	}
	var rows []appliedRow
	err := m.db.SelectContext(ctx, &rows, `SELECT version, title, checksum FROM schema_migrations WHERE checksum IS NOT NULL`)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	appliedChecksums := make(map[string]string, len(rows))
	for _, row := range rows {
		appliedChecksums[row.Version] = row.Checksum
	}

	var mismatches []string
	for _, migration := range migrations {
		if checksum, exists := appliedChecksums[migration.Version]; exists && checksum != migration.Checksum {
			mismatches = append(mismatches, fmt.Sprintf(
				"\n  Migration %s (%s):\n    Expected checksum: %s\n    Current checksum:  %s",
				migration.Version, migration.Title, checksum, migration.Checksum,
			))
		}
	}

	if len(mismatches) > 0 {
		return fmt.Errorf(
			"CRITICAL: Applied migrations have been modified!%s\n\n"+
				"Restore the original migration files or add a new migration with the change.",
			strings.Join(mismatches, ""),
		)
	}

	return nil
}

// calculateChecksum generates a SHA256 checksum for migration content
func calculateChecksum(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
