// Package pgtest gives integration tests an isolated schema on a real PostgreSQL.
// Tests are skipped unless TEST_DATABASE_URL is set.
package pgtest

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"repo-stats-admin/internal/storage/postgres"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

const dsnEnv = "TEST_DATABASE_URL"

// GivenSchema connects, creates a throwaway schema and points the session's search_path at it.
// The schema is dropped when the test finishes.
func GivenSchema(t testing.TB) (*sqlx.DB, string) {
	t.Helper()

	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		t.Skipf("%s is not set", dsnEnv)
	}

	ctx := context.Background()
	db, err := postgres.ConnectDSN(ctx, dsn)
	require.NoError(t, err, "error in arranging test database")

	schema := "it_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	quoted := pq.QuoteIdentifier(schema)

	_, err = db.ExecContext(ctx, "CREATE SCHEMA "+quoted)
	require.NoError(t, err, "error in arranging test schema")
	_, err = db.ExecContext(ctx, fmt.Sprintf("SET search_path TO %s", quoted))
	require.NoError(t, err, "error in arranging search_path")

	t.Cleanup(func() {
		_, _ = db.ExecContext(context.Background(), "DROP SCHEMA IF EXISTS "+quoted+" CASCADE")
		_ = db.Close()
	})

	return db, schema
}

// Exec runs arrangement statements in order and fails the test on the first error.
func Exec(t testing.TB, db *sqlx.DB, statements ...string) {
	t.Helper()

	for _, stmt := range statements {
		_, err := db.ExecContext(context.Background(), stmt)
		require.NoError(t, err, "error in arranging test data: %s", stmt)
	}
}
