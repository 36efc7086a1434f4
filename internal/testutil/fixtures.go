package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/projects/internal/domain"
	"github.com/shopspring/decimal"
)

// Project options
type ProjectOption func(*domain.Project)

func WithEstimatedHours(h string) ProjectOption {
	return func(p *domain.Project) {
		d := decimal.RequireFromString(h)
		p.EstimatedHours = &d
	}
}

func WithActualHours(h string) ProjectOption {
	return func(p *domain.Project) {
		d := decimal.RequireFromString(h)
		p.ActualHours = &d
	}
}

func WithDifficulty(d int) ProjectOption {
	return func(p *domain.Project) {
		p.Difficulty = &d
	}
}

func WithNotes(n string) ProjectOption {
	return func(p *domain.Project) {
		p.Notes = &n
	}
}

// NewTestProject builds an unsaved project with every scalar populated
// except ActualHours.
func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	est := decimal.RequireFromString("10.00")
	difficulty := 2
	notes := "test project"
	p := &domain.Project{
		Name:           name,
		EstimatedHours: &est,
		Difficulty:     &difficulty,
		Notes:          &notes,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SeedMaterial inserts a material row directly, bypassing the repository.
func SeedMaterial(t *testing.T, database *sql.DB, projectID int64, name string, numRequired int, cost string) int64 {
	t.Helper()
	return insertReturningID(t, database,
		`INSERT INTO material (project_id, material_name, num_required, cost) VALUES (?, ?, ?, ?)`,
		projectID, name, numRequired, cost)
}

// SeedStep inserts a step row directly, bypassing the repository.
func SeedStep(t *testing.T, database *sql.DB, projectID int64, text string, order int) int64 {
	t.Helper()
	return insertReturningID(t, database,
		`INSERT INTO step (project_id, step_text, step_order) VALUES (?, ?, ?)`,
		projectID, text, order)
}

// SeedCategory inserts a category row directly and returns its ID.
func SeedCategory(t *testing.T, database *sql.DB, name string) int64 {
	t.Helper()
	return insertReturningID(t, database,
		`INSERT INTO category (category_name) VALUES (?)`, name)
}

// LinkCategory associates a project with a category.
func LinkCategory(t *testing.T, database *sql.DB, projectID, categoryID int64) {
	t.Helper()
	if _, err := database.Exec(
		`INSERT INTO project_category (project_id, category_id) VALUES (?, ?)`,
		projectID, categoryID); err != nil {
		t.Fatalf("linking category %d to project %d: %v", categoryID, projectID, err)
	}
}

// CountRows returns the number of rows in table matching where (may be empty).
func CountRows(t *testing.T, database *sql.DB, table, where string, args ...any) int {
	t.Helper()
	query := `SELECT COUNT(*) FROM ` + table
	if where != "" {
		query += ` WHERE ` + where
	}
	var n int
	if err := database.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("counting %s: %v", table, err)
	}
	return n
}

func insertReturningID(t *testing.T, database *sql.DB, query string, args ...any) int64 {
	t.Helper()
	res, err := database.Exec(query, args...)
	if err != nil {
		t.Fatalf("seeding: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("seeding: reading id: %v", err)
	}
	return id
}
