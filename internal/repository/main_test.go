package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/deppfellow/job-board/internal/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// testDatabaseURLEnv points the integration tests at a disposable database.
// The tests truncate every table they touch.
const testDatabaseURLEnv = "JOBBOARD_TEST_DATABASE_URL"

// newTestPool migrates the test database, empties it and returns a pool.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(testDatabaseURLEnv)
	if dsn == "" {
		t.Skipf("%s not set, skipping database integration test", testDatabaseURLEnv)
	}

	ctx := context.Background()
	logger := zerolog.Nop()

	if err := database.Migrate(ctx, &logger, dsn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, `TRUNCATE companies, jobs, employment_types_jobs, departments_jobs RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	return pool
}

func countRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()

	var n int
	if err := pool.QueryRow(context.Background(), `SELECT count(*) FROM `+table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
