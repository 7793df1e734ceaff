// Package storetest opens throwaway in-memory stores for tests.
package storetest

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/Lixing-Zhang/orderdesk/internal/store"
	"github.com/Lixing-Zhang/orderdesk/pkg/logger"
)

var counter atomic.Int64

// New returns a store backed by a private in-memory SQLite database with the
// schema already created. The database is closed when the test finishes.
func New(t testing.TB) *store.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:storetest_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", counter.Add(1))
	sqlDB, err := sql.Open(store.DialectSQLite.DriverName(), dsn)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// A single connection keeps the in-memory database alive and shared.
	sqlDB.SetMaxOpenConns(1)

	db := store.New(sqlDB, store.DialectSQLite, logger.New("error"))
	if err := db.EnsureSchema(context.Background()); err != nil {
		sqlDB.Close()
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
