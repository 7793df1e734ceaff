// Package store owns the connection to the relational store and the scoped
// transactional sessions every request runs in.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Lixing-Zhang/orderdesk/internal/config"
	"github.com/google/uuid"
)

// DB is the store handle shared by all services
type DB struct {
	sqlDB   *sql.DB
	dialect Dialect
	log     *slog.Logger
}

// Open connects to the configured store, verifies the connection and
// creates the schema if it is missing
func Open(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*DB, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn := cfg.DSN
	if dialect == DialectSQLite {
		dsn = sqliteDSN(dsn)
	}

	sqlDB, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, WrapConnectionError(err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	db := New(sqlDB, dialect, log)

	if err := db.Ping(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}

	if err := db.EnsureSchema(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// New wraps an already opened *sql.DB
func New(sqlDB *sql.DB, dialect Dialect, log *slog.Logger) *DB {
	return &DB{
		sqlDB:   sqlDB,
		dialect: dialect,
		log:     log.With("component", "store"),
	}
}

// Ping verifies the store is reachable
func (db *DB) Ping(ctx context.Context) error {
	if err := db.sqlDB.PingContext(ctx); err != nil {
		return WrapConnectionError(err)
	}
	return nil
}

// Close releases every pooled connection
func (db *DB) Close() error {
	return db.sqlDB.Close()
}

// WithSession runs fn inside a single transaction. The transaction is
// committed when fn returns nil and rolled back when it returns an error or
// panics; the underlying connection is released in every case.
func (db *DB) WithSession(ctx context.Context, fn func(*Session) error) error {
	tx, err := db.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return WrapTransactionError(err, "BEGIN")
	}

	sess := &Session{
		id:      uuid.NewString(),
		tx:      tx,
		dialect: db.dialect,
	}
	log := db.log.With("session_id", sess.id)
	log.Debug("session opened")

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			log.Error("failed to roll back session", "error", rbErr)
			return
		}
		log.Debug("session rolled back")
	}()

	if err := fn(sess); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return WrapTransactionError(err, "COMMIT")
	}
	committed = true

	log.Debug("session committed")
	return nil
}

// WrapConnectionError wraps a connection-related error
func WrapConnectionError(err error) error {
	return WrapError(err, "CONNECT", "")
}

// WrapTransactionError wraps a transaction-related error
func WrapTransactionError(err error, op string) error {
	return WrapError(err, "TRANSACTION:"+op, "")
}
