// Package dbx provides tiny DB abstractions shared by repositories:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx,
// a helper to run functions inside a transaction, and a Transactor
// that lets services stay unaware of whether a real database is behind them.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxFunc is the unit of work executed by WithTx and Transactor.InTx.
type TxFunc func(ctx context.Context, tx DBTX) error

// WithTx begins a transaction, runs fn with a transactional handle, and then
// commits on success or rolls back on error/panic. Panics are rethrown.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    _, err := tx.ExecContext(ctx, "UPDATE ...")
//	    return err
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn TxFunc) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}

// Transactor hands out the handle used for single statements and runs
// grouped statements atomically.
type Transactor interface {
	Conn() DBTX
	InTx(ctx context.Context, fn TxFunc) error
}

// SQLTransactor runs units of work in database/sql transactions.
type SQLTransactor struct {
	db *sql.DB
}

// NewSQLTransactor wraps db.
func NewSQLTransactor(db *sql.DB) *SQLTransactor {
	return &SQLTransactor{db: db}
}

func (t *SQLTransactor) Conn() DBTX { return t.db }

func (t *SQLTransactor) InTx(ctx context.Context, fn TxFunc) error {
	return WithTx(ctx, t.db, nil, fn)
}

// NoTx is a Transactor for stores that ignore the DBTX handle (in-memory
// repositories). InTx simply calls fn with a nil handle; there is no rollback.
type NoTx struct{}

func (NoTx) Conn() DBTX { return nil }

func (NoTx) InTx(ctx context.Context, fn TxFunc) error {
	return fn(ctx, nil)
}
