package db

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// DBTX is the common interface satisfied by both *sql.DB and *sql.Tx.
// Repository implementations depend on this interface instead of the
// concrete *sql.DB, enabling transactional composition.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Compile-time verification that *sql.DB and *sql.Tx satisfy DBTX.
var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// rebindTx rewrites "?" placeholders into the driver's native bind style
// before handing each statement to the transaction.
type rebindTx struct {
	tx       DBTX
	bindType int
}

// Rebind wraps conn so that queries written with "?" placeholders run on the
// given driver. Drivers that already use "?" get conn back unchanged.
func Rebind(conn DBTX, driver string) DBTX {
	bindType := sqlx.BindType(driver)
	if bindType == sqlx.QUESTION || bindType == sqlx.UNKNOWN {
		return conn
	}
	return &rebindTx{tx: conn, bindType: bindType}
}

func (r *rebindTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return r.tx.ExecContext(ctx, sqlx.Rebind(r.bindType, query), args...)
}

func (r *rebindTx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return r.tx.QueryContext(ctx, sqlx.Rebind(r.bindType, query), args...)
}

func (r *rebindTx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return r.tx.QueryRowContext(ctx, sqlx.Rebind(r.bindType, query), args...)
}
