package database

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-judging/internal/config"
	"event-judging/migrations"
)

func openMemory(t *testing.T) *Database {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(&config.DatabaseConfig{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestOpenSQLiteEnablesForeignKeys(t *testing.T) {
	db := openMemory(t)

	var enabled int
	require.NoError(t, db.DB.Get(&enabled, "PRAGMA foreign_keys"))
	assert.Equal(t, 1, enabled)
	assert.Equal(t, DriverSQLite, db.DriverName())
	assert.NoError(t, db.HealthCheck(context.Background()))
}

func TestRunEmbeddedMigrations(t *testing.T) {
	db := openMemory(t)
	exec := NewMigrationExecutor(db.DB)
	ctx := context.Background()

	require.NoError(t, exec.RunMigrations(ctx, migrations.FS))
	// second run is a no-op
	require.NoError(t, exec.RunMigrations(ctx, migrations.FS))

	var count int
	require.NoError(t, db.DB.Get(&count, "SELECT COUNT(*) FROM schema_migrations"))
	all, err := ReadMigrations(migrations.FS)
	require.NoError(t, err)
	assert.Equal(t, len(all), count)

	for _, table := range []string{"certifications", "deduction_requests", "uncertification_signatures", "audit_logs"} {
		var n int
		require.NoError(t, db.DB.Get(&n, "SELECT COUNT(*) FROM "+table), table)
	}
}

func TestReadMigrationsOrdersAndPairs(t *testing.T) {
	fsys := fstest.MapFS{
		"002_second_step.up.sql":   {Data: []byte("CREATE TABLE b (id INTEGER);")},
		"002_second_step.down.sql": {Data: []byte("DROP TABLE b;")},
		"001_first.up.sql":         {Data: []byte("CREATE TABLE a (id INTEGER);")},
		"003_only_down.down.sql":   {Data: []byte("DROP TABLE c;")},
		"README.md":                {Data: []byte("ignored")},
	}

	got, err := ReadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "001", got[0].Version)
	assert.Equal(t, "second step", got[1].Title)
	assert.Equal(t, "DROP TABLE b;", got[1].DownSQL)
	assert.Len(t, got[0].Checksum, 64)
}

func TestRunMigrationsDetectsModifiedFile(t *testing.T) {
	db := openMemory(t)
	exec := NewMigrationExecutor(db.DB)
	ctx := context.Background()

	original := fstest.MapFS{"001_init.up.sql": {Data: []byte("CREATE TABLE t (id INTEGER);")}}
	require.NoError(t, exec.RunMigrations(ctx, original))

	modified := fstest.MapFS{"001_init.up.sql": {Data: []byte("CREATE TABLE t (id INTEGER, name TEXT);")}}
	err := exec.RunMigrations(ctx, modified)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "have been modified")
}

func TestFailedMigrationIsNotRecorded(t *testing.T) {
	db := openMemory(t)
	exec := NewMigrationExecutor(db.DB)

	broken := fstest.MapFS{"001_broken.up.sql": {Data: []byte("CREATE TABLE;")}}
	require.Error(t, exec.RunMigrations(context.Background(), broken))

	var count int
	require.NoError(t, db.DB.Get(&count, "SELECT COUNT(*) FROM schema_migrations"))
	assert.Zero(t, count)
}

func TestWithTxCommitsAndRollsBack(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()
	_, err := db.DB.Exec("CREATE TABLE items (id INTEGER PRIMARY KEY)")
	require.NoError(t, err)

	require.NoError(t, db.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.Exec("INSERT INTO items (id) VALUES (1)")
		return err
	}))

	boom := errors.New("boom")
	err = db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.Exec("INSERT INTO items (id) VALUES (2)"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.Panics(t, func() {
		_ = db.WithTx(ctx, func(tx *sqlx.Tx) error {
			_, _ = tx.Exec("INSERT INTO items (id) VALUES (3)")
			panic("mid-transaction")
		})
	})

	var ids []int
	require.NoError(t, db.DB.Select(&ids, "SELECT id FROM items ORDER BY id"))
	assert.Equal(t, []int{1}, ids)
}
