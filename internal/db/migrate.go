package db

import (
	"database/sql"
	"fmt"
)

// Migrate creates the schema for the given driver. Every statement is
// idempotent so it runs on each startup.
func Migrate(db *sql.DB, driver string) error {
	var stmts []string
	switch driver {
	case DriverSQLite:
		stmts = sqliteMigrations
	case DriverPostgres:
		stmts = postgresMigrations
	default:
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	for i, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// AUTOINCREMENT keeps SQLite from handing out the id of a deleted project again.
var sqliteMigrations = []string{
	`CREATE TABLE IF NOT EXISTS project (
		project_id      INTEGER PRIMARY KEY AUTOINCREMENT,
		project_name    VARCHAR(128) NOT NULL,
		estimated_hours DECIMAL(7,2),
		actual_hours    DECIMAL(7,2),
		difficulty      INT,
		notes           TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS material (
		material_id   INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id    INTEGER NOT NULL REFERENCES project(project_id) ON DELETE CASCADE,
		material_name VARCHAR(128) NOT NULL,
		num_required  INT,
		cost          DECIMAL(7,2)
	)`,

	`CREATE TABLE IF NOT EXISTS step (
		step_id    INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER NOT NULL REFERENCES project(project_id) ON DELETE CASCADE,
		step_text  TEXT NOT NULL,
		step_order INT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS category (
		category_id   INTEGER PRIMARY KEY AUTOINCREMENT,
		category_name VARCHAR(128) NOT NULL UNIQUE
	)`,

	`CREATE TABLE IF NOT EXISTS project_category (
		project_id  INTEGER NOT NULL REFERENCES project(project_id) ON DELETE CASCADE,
		category_id INTEGER NOT NULL REFERENCES category(category_id) ON DELETE CASCADE,
		UNIQUE (project_id, category_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_material_project ON material(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_step_project ON step(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_project_category_category ON project_category(category_id)`,
}

var postgresMigrations = []string{
	`CREATE TABLE IF NOT EXISTS project (
		project_id      SERIAL PRIMARY KEY,
		project_name    VARCHAR(128) NOT NULL,
		estimated_hours NUMERIC(7,2),
		actual_hours    NUMERIC(7,2),
		difficulty      INT,
		notes           TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS material (
		material_id   SERIAL PRIMARY KEY,
		project_id    INT NOT NULL REFERENCES project(project_id) ON DELETE CASCADE,
		material_name VARCHAR(128) NOT NULL,
		num_required  INT,
		cost          NUMERIC(7,2)
	)`,

	`CREATE TABLE IF NOT EXISTS step (
		step_id    SERIAL PRIMARY KEY,
		project_id INT NOT NULL REFERENCES project(project_id) ON DELETE CASCADE,
		step_text  TEXT NOT NULL,
		step_order INT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS category (
		category_id   SERIAL PRIMARY KEY,
		category_name VARCHAR(128) NOT NULL UNIQUE
	)`,

	`CREATE TABLE IF NOT EXISTS project_category (
		project_id  INT NOT NULL REFERENCES project(project_id) ON DELETE CASCADE,
		category_id INT NOT NULL REFERENCES category(category_id) ON DELETE CASCADE,
		UNIQUE (project_id, category_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_material_project ON material(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_step_project ON step(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_project_category_category ON project_category(category_id)`,
}
