package testdb

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"grantboard/internal/database"
)

var (
	sharedContainer *PostgresContainer
	sharedOnce      sync.Once
)

// PostgresContainer wraps the postgres testcontainer with a connected
// pool and the schema already migrated.
type PostgresContainer struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	DSN       string
}

// SetupSharedPostgres starts a single PostgreSQL container shared by
// every test in the package. Much faster than one container per test;
// callers are responsible for truncating tables between tests, and
// subtests touching the same tables must not run in parallel.
func SetupSharedPostgres(t *testing.T) *PostgresContainer {
	t.Helper()

	sharedOnce.Do(func() {
		ctx := context.Background()

		pgContainer, err := postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("testdb"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2),
			),
		)
		require.NoError(t, err)

		connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err)

		pool, err := pgxpool.New(ctx, connStr)
		require.NoError(t, err)
		require.NoError(t, pool.Ping(ctx))

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		require.NoError(t, database.RunMigrations(ctx, pool, logger))

		sharedContainer = &PostgresContainer{
			Container: pgContainer,
			Pool:      pool,
			DSN:       connStr,
		}
	})

	return sharedContainer
}

// Reset wipes every application table (and the seed marker) so each
// test starts from an empty store with fresh identities.
func (pc *PostgresContainer) Reset(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	_, err := pc.Pool.Exec(ctx, "TRUNCATE foundations RESTART IDENTITY CASCADE")
	require.NoError(t, err)

	_, err = pc.Pool.Exec(ctx, "DELETE FROM seed_state")
	require.NoError(t, err)
}
