package store

import (
	"context"
	"database/sql"
)

// Session is a transactional handle scoped to one WithSession call.
// Statements use ? placeholders regardless of dialect.
type Session struct {
	id      string
	tx      *sql.Tx
	dialect Dialect
}

// ID identifies the session in logs
func (s *Session) ID() string {
	return s.id
}

// Exec runs a statement that returns no rows
func (s *Session) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.tx.ExecContext(ctx, s.dialect.Rebind(query), args...)
}

// Query runs a statement that returns rows
func (s *Session) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.tx.QueryContext(ctx, s.dialect.Rebind(query), args...)
}

// QueryRow runs a statement that returns at most one row
func (s *Session) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.tx.QueryRowContext(ctx, s.dialect.Rebind(query), args...)
}

// Insert runs an INSERT statement and returns the generated id
func (s *Session) Insert(ctx context.Context, query string, args ...any) (int64, error) {
	if s.dialect == DialectPostgres {
		var id int64
		err := s.tx.QueryRowContext(ctx, s.dialect.Rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}

	res, err := s.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
