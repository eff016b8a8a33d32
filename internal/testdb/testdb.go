package testdb

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/gearcast-api/internal/ciutil"
	"github.com/phrazzld/gearcast-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

var migrateOnce sync.Map // database URL -> *migrationResult

type migrationResult struct {
	once sync.Once
	err  error
}

// GetTestDatabaseURL returns the database URL for tests, or "" when none
// is configured.
func GetTestDatabaseURL() string {
	return ciutil.GetTestDatabaseURL(nil)
}

// IsIntegrationTestEnvironment reports whether a test database is configured.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// GetTestDBWithT returns a migrated database connection that is closed when
// the test finishes. Without a database URL it skips the test, or fails it
// when running in CI.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	url := GetTestDatabaseURL()
	if url == "" {
		if ciutil.IsCI() {
			t.Fatal("no test database configured in CI; set DATABASE_URL or GEARCAST_TEST_DB_URL")
		}
		t.Skip("DATABASE_URL or GEARCAST_TEST_DB_URL not set - skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, url, postgres.PoolConfig{MaxOpenConns: 10, MaxIdleConns: 5})
	require.NoError(t, err, "Failed to open test database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close database connection: %v", err)
		}
	})

	v, _ := migrateOnce.LoadOrStore(url, &migrationResult{})
	res := v.(*migrationResult)
	res.once.Do(func() {
		res.err = postgres.Migrate(context.Background(), db, nil, "up")
	})
	require.NoError(t, res.err, "Failed to run migrations")

	return db
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
