package database

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// txKey is a context key type for storing database transactions.
type txKey struct{}

// Querier represents a database query executor (either *sql.DB or *sql.Tx).
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxManager runs a function inside a single all-or-nothing unit of work.
// Repositories pick the transaction up from the context passed to fn.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// TxOption configures a TxManager.
type TxOption func(*txOptions)

type txOptions struct {
	timeout time.Duration
}

// WithTimeout bounds every transaction by the given duration. Zero disables the bound.
func WithTimeout(d time.Duration) TxOption {
	return func(o *txOptions) {
		o.timeout = d
	}
}

func applyTxOptions(opts []TxOption) txOptions {
	var o txOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// sqlTxManager implements TxManager for SQL databases.
type sqlTxManager struct {
	db      *sql.DB
	timeout time.Duration
}

// NewTxManager creates a new TxManager for the given database.
func NewTxManager(db *sql.DB, opts ...TxOption) TxManager {
	o := applyTxOptions(opts)
	return &sqlTxManager{db: db, timeout: o.timeout}
}

// WithTx executes fn within a database transaction. A transaction already present in
// ctx is reused so use cases can compose.
func (m *sqlTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	ctx = context.WithValue(ctx, txKey{}, tx)

	if err := fn(ctx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return rbErr
		}
		return err
	}

	return tx.Commit()
}

// GetTx retrieves a transaction from context, or returns the DB connection.
func GetTx(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}
