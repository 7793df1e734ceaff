package store

import (
	"errors"
	"fmt"
	"strings"
)

// Error wraps a store failure with the operation and table it happened on
type Error struct {
	Op    string // SELECT, INSERT, UPDATE, DELETE, BEGIN, COMMIT, ...
	Table string
	Query string
	Err   error
}

func (e *Error) Error() string {
	var parts []string
	if e.Op != "" {
		parts = append(parts, "operation="+e.Op)
	}
	if e.Table != "" {
		parts = append(parts, "table="+e.Table)
	}

	if len(parts) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s [%s]", e.Err.Error(), strings.Join(parts, ", "))
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WrapError wraps err with operation and table context. Nil stays nil.
func WrapError(err error, op, table string) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Table: table, Err: err}
}

// WrapErrorWithQuery is WrapError that also records the failing statement
func WrapErrorWithQuery(err error, op, table, query string) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Table: table, Query: query, Err: err}
}

// ErrorContext extracts the store context from anywhere in err's chain
func ErrorContext(err error) (*Error, bool) {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr, true
	}
	return nil, false
}
