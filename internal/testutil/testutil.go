package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/vault"
	"github.com/testcontainers/testcontainers-go/wait"

	"event-judging/internal/database"
	"event-judging/migrations"
)

// SetupSQLite opens a migrated in-memory database that is closed when the
// test ends
func SetupSQLite(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.NewMigrationExecutor(db.DB).RunMigrations(context.Background(), migrations.FS); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db.DB
}

// TestContainers holds references to test containers
type TestContainers struct {
	PostgresContainer *postgres.PostgresContainer
	VaultContainer    *vault.VaultContainer
	DB                *sqlx.DB
	DBConnString      string
	VaultToken        string
	VaultAddr         string
}

// SetupTestContainers initializes PostgreSQL and Vault containers
func SetupTestContainers(t *testing.T) *TestContainers {
	t.Helper()
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:18",
		postgres.WithDatabase("judging_test"),
		postgres.WithUsername("judging_test"),
		postgres.WithPassword("judging_test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	db, err := sqlx.Connect(database.DriverPostgres, connStr)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.NewMigrationExecutor(db).RunMigrations(ctx, migrations.FS); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	vaultContainer, err := vault.Run(ctx,
		"hashicorp/vault:1.15",
		vault.WithToken("test-token"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("Vault server started!").
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start Vault container: %v", err)
	}

	vaultAddr, err := vaultContainer.HttpHostAddress(ctx)
	if err != nil {
		t.Fatalf("Failed to get Vault address: %v", err)
	}

	return &TestContainers{
		PostgresContainer: postgresContainer,
		VaultContainer:    vaultContainer,
		DB:                db,
		DBConnString:      connStr,
		VaultToken:        "test-token",
		VaultAddr:         vaultAddr,
	}
}

// Cleanup terminates all test containers
func (tc *TestContainers) Cleanup(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	if tc.DB != nil {
		tc.DB.Close()
	}

	if tc.PostgresContainer != nil {
		if err := tc.PostgresContainer.Terminate(ctx); err != nil {
			t.Errorf("Failed to terminate PostgreSQL container: %v", err)
		}
	}

	if tc.VaultContainer != nil {
		if err := tc.VaultContainer.Terminate(ctx); err != nil {
			t.Errorf("Failed to terminate Vault container: %v", err)
		}
	}
}
