// Package dbtest opens throwaway in-memory SQLite stores for tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/eaglebank/expense-ledger/internal/database"
)

func New(tb testing.TB) *sql.DB {
	tb.Helper()
	db, err := database.Open(context.Background(), database.DriverSQLite, ":memory:")
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	tb.Cleanup(func() { db.Close() })
	return db
}
