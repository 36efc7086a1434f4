package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/projects/internal/db"
)

// FailOnNthStatementUoW is a test UoW that injects an error on the Nth
// statement issued within a transaction. This enables rollback integration
// tests by simulating failures at precise points in multi-statement operations.
//
// ExecContext and QueryContext calls are counted starting at 1.
// QueryRowContext is not counted.
type FailOnNthStatementUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthStatementUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	conn, err := u.DB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", db.ErrConnection, err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnNth{DBTX: tx, failOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnNth struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNth) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.count.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

func (f *failOnNth) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if f.count.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.QueryContext(ctx, query, args...)
}
