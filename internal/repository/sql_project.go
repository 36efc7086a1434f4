package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/projects/internal/db"
	"github.com/alexanderramin/projects/internal/domain"
	"github.com/alexanderramin/projects/internal/rowcodec"
)

// SQLProjectRepo implements ProjectRepo on database/sql. Statements are
// written with "?" placeholders; the unit of work rebinds them per driver.
type SQLProjectRepo struct {
	uow   db.UnitOfWork
	codec rowcodec.Codec
}

var _ ProjectRepo = (*SQLProjectRepo)(nil)

// NewSQLProjectRepo creates a new SQLProjectRepo.
func NewSQLProjectRepo(uow db.UnitOfWork, codec rowcodec.Codec) *SQLProjectRepo {
	return &SQLProjectRepo{uow: uow, codec: codec}
}

const projectColumns = `project_id, project_name, estimated_hours, actual_hours, difficulty, notes`

func (r *SQLProjectRepo) Insert(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	query := `INSERT INTO project (project_name, estimated_hours, actual_hours, difficulty, notes)
		VALUES (?, ?, ?, ?, ?)
		RETURNING project_id`

	var id int64
	err := r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		args, err := rowcodec.BindAll(r.codec, r.scalarParams(p)...)
		if err != nil {
			return err
		}

		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("inserting project: %w", err)
		}
		defer rows.Close()

		if !rows.Next() {
			if err := rows.Err(); err != nil {
				return fmt.Errorf("reading project id: %w", err)
			}
			return fmt.Errorf("reading project id: no id returned")
		}
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("reading project id: %w", err)
		}
		return rows.Close()
	})
	if err != nil {
		return nil, db.WrapStorage("insert project", err)
	}

	p.ID = id
	return p, nil
}

func (r *SQLProjectRepo) FetchAll(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM project ORDER BY project_name`

	var projects []*domain.Project
	err := r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		projects, err = queryAll[*domain.Project](ctx, tx, r.codec, query)
		if err != nil {
			return fmt.Errorf("listing projects: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, db.WrapStorage("fetch all projects", err)
	}
	return projects, nil
}

func (r *SQLProjectRepo) FetchByID(ctx context.Context, id int64) (*domain.Project, bool, error) {
	var project *domain.Project
	err := r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		args, err := rowcodec.BindAll(r.codec, rowcodec.P(id, rowcodec.Integer))
		if err != nil {
			return err
		}

		found, err := queryAll[*domain.Project](ctx, tx, r.codec,
			`SELECT `+projectColumns+` FROM project WHERE project_id = ?`, args...)
		if err != nil {
			return fmt.Errorf("fetching project: %w", err)
		}
		if len(found) == 0 {
			return nil
		}
		p := found[0]

		materials, err := queryAll[domain.Material](ctx, tx, r.codec,
			`SELECT material_id, project_id, material_name, num_required, cost
			FROM material WHERE project_id = ? ORDER BY material_id`, args...)
		if err != nil {
			return fmt.Errorf("fetching materials: %w", err)
		}

		steps, err := queryAll[domain.Step](ctx, tx, r.codec,
			`SELECT step_id, project_id, step_text, step_order
			FROM step WHERE project_id = ? ORDER BY step_order, step_id`, args...)
		if err != nil {
			return fmt.Errorf("fetching steps: %w", err)
		}

		categories, err := queryAll[domain.Category](ctx, tx, r.codec,
			`SELECT c.category_id, c.category_name
			FROM category c
			JOIN project_category pc ON pc.category_id = c.category_id
			WHERE pc.project_id = ?
			ORDER BY c.category_name`, args...)
		if err != nil {
			return fmt.Errorf("fetching categories: %w", err)
		}

		p.Materials = materials
		p.Steps = steps
		p.Categories = categories
		project = p
		return nil
	})
	if err != nil {
		return nil, false, db.WrapStorage(fmt.Sprintf("fetch project %d", id), err)
	}
	return project, project != nil, nil
}

func (r *SQLProjectRepo) Update(ctx context.Context, p *domain.Project) (bool, error) {
	query := `UPDATE project
		SET project_name = ?, estimated_hours = ?, actual_hours = ?, difficulty = ?, notes = ?
		WHERE project_id = ?`

	params := append(r.scalarParams(p), rowcodec.P(p.ID, rowcodec.Integer))
	affected, err := r.execAffecting(ctx, query, params...)
	if err != nil {
		return false, db.WrapStorage(fmt.Sprintf("update project %d", p.ID), err)
	}
	return affected == 1, nil
}

func (r *SQLProjectRepo) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM project WHERE project_id = ?`

	affected, err := r.execAffecting(ctx, query, rowcodec.P(id, rowcodec.Integer))
	if err != nil {
		return false, db.WrapStorage(fmt.Sprintf("delete project %d", id), err)
	}
	return affected == 1, nil
}

// scalarParams lists the five mutable project columns in statement order.
func (r *SQLProjectRepo) scalarParams(p *domain.Project) []rowcodec.Param {
	return []rowcodec.Param{
		rowcodec.P(p.Name, rowcodec.Text),
		rowcodec.P(p.EstimatedHours, rowcodec.Decimal),
		rowcodec.P(p.ActualHours, rowcodec.Decimal),
		rowcodec.P(p.Difficulty, rowcodec.Integer),
		rowcodec.P(p.Notes, rowcodec.Text),
	}
}

// execAffecting runs a single statement in its own transaction and returns
// the affected row count. Zero rows commits like any other outcome.
func (r *SQLProjectRepo) execAffecting(ctx context.Context, query string, params ...rowcodec.Param) (int64, error) {
	var affected int64
	err := r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		args, err := rowcodec.BindAll(r.codec, params...)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("executing statement: %w", err)
		}
		affected, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("reading affected rows: %w", err)
		}
		return nil
	})
	return affected, err
}
