package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/prestamos/loan-service/migrations"
	pg "github.com/prestamos/loan-service/pkg/postgres"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance.
type PostgresContainer struct {
	Container *postgres.PostgresContainer
	DSN       string
	Pool      *pgxpool.Pool
}

// NewPostgresContainer starts a PostgreSQL container for testing.
// The caller should defer container.Cleanup(t).
func NewPostgresContainer(ctx context.Context, t *testing.T) *PostgresContainer {
	t.Helper()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("loans_test"),
		postgres.WithUsername("loans"),
		postgres.WithPassword("loans"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to create pgxpool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping postgres: %v", err)
	}

	return &PostgresContainer{
		Container: pgContainer,
		DSN:       dsn,
		Pool:      pool,
	}
}

// Cleanup terminates the container.
func (pc *PostgresContainer) Cleanup(t *testing.T) {
	t.Helper()

	if pc.Pool != nil {
		pc.Pool.Close()
	}

	if pc.Container != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := pc.Container.Terminate(ctx); err != nil {
			t.Logf("warning: failed to terminate postgres container: %v", err)
		}
	}
}

// RunMigrations applies the embedded schema migrations with golang-migrate.
func (pc *PostgresContainer) RunMigrations(t *testing.T) {
	t.Helper()

	if err := pg.RunMigrations(pc.DSN, migrations.FS); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}
}

// Truncate empties every table so subtests start from a clean schema.
func (pc *PostgresContainer) Truncate(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := pc.Pool.Exec(ctx, `TRUNCATE installments, contracts, beneficiaries`); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}
