package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Supported storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const memoryPath = ":memory:"

// OpenDB opens a SQLite database at the given path.
// If path is ":memory:", uses an in-memory database.
func OpenDB(path string) (*sql.DB, error) {
	return Open(DriverSQLite, path)
}

// Open opens a database for the given driver and runs migrations.
// SQLite connections get foreign keys enforced (cascading deletes rely on it)
// and WAL mode when backed by a file.
func Open(driver, dsn string) (*sql.DB, error) {
	var (
		database *sql.DB
		err      error
	)
	switch driver {
	case DriverSQLite:
		database, err = openSQLite(dsn)
	case DriverPostgres:
		database, err = openPostgres(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	if err := Migrate(database, driver); err != nil {
		database.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return database, nil
}

func openSQLite(path string) (*sql.DB, error) {
	pragmas := []string{"_pragma=foreign_keys(1)"}
	if path != memoryPath {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
		pragmas = append(pragmas, "_pragma=journal_mode(WAL)", "_pragma=busy_timeout(5000)")
	}

	database, err := sql.Open(DriverSQLite, path+"?"+strings.Join(pragmas, "&"))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Every new connection to ":memory:" is a separate empty database.
	if path == memoryPath {
		database.SetMaxOpenConns(1)
	}

	if err := database.PingContext(context.Background()); err != nil {
		database.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return database, nil
}

func openPostgres(dsn string) (*sql.DB, error) {
	database, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := database.PingContext(context.Background()); err != nil {
		database.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return database, nil
}
