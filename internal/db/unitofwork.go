package db

import (
	"context"
	"database/sql"
	"fmt"
)

// ConnProvider hands out a dedicated connection per operation.
// *sql.DB satisfies it.
type ConnProvider interface {
	Conn(ctx context.Context) (*sql.Conn, error)
}

var _ ConnProvider = (*sql.DB)(nil)

// UnitOfWork manages transactional boundaries. The callback receives a DBTX
// backed by a *sql.Tx; callers create tx-scoped repositories from it.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLUnitOfWork implements UnitOfWork using database/sql transactions, one
// acquired connection per call.
type SQLUnitOfWork struct {
	conns  ConnProvider
	driver string
}

// NewSQLUnitOfWork creates a UnitOfWork that acquires connections from conns.
// driver selects the placeholder style statements are rebound to.
func NewSQLUnitOfWork(conns ConnProvider, driver string) *SQLUnitOfWork {
	return &SQLUnitOfWork{conns: conns, driver: driver}
}

// NewSQLiteUnitOfWork creates a UnitOfWork backed by the given SQLite *sql.DB.
func NewSQLiteUnitOfWork(database *sql.DB) *SQLUnitOfWork {
	return NewSQLUnitOfWork(database, DriverSQLite)
}

// WithinTx runs fn inside a transaction on a freshly acquired connection.
// The transaction commits when fn returns nil and rolls back on error or
// panic. The connection is released on every path, including a failed rollback.
func (u *SQLUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	conn, err := u.conns.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, Rebind(tx, u.driver)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
