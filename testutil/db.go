// Package testutil holds helpers for the opt-in integration tests. Each
// helper skips the calling test when the backing service is not configured,
// so `go test ./...` passes on a machine without Postgres or Redis.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // "pgx" driver for database/sql
)

// DatabaseURLEnv names the variable that points the integration tests at a
// disposable Postgres database.
const DatabaseURLEnv = "TEST_DATABASE_URL"

// NewPool returns a pgx pool on the test database, closed with the test.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := databaseURL(t)

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("testutil.NewPool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// NewSQLDB returns a database/sql handle on the test database for code that
// drives goose directly.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenSQLDB(databaseURL(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// OpenSQLDB opens and pings a database/sql handle for dsn. TestMain
// functions use it where no *testing.T exists; the caller closes the handle.
func OpenSQLDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func databaseURL(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv(DatabaseURLEnv)
	if dsn == "" {
		t.Skip(DatabaseURLEnv + " not set; skipping integration test")
	}
	return dsn
}
