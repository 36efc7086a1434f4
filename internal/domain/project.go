package domain

import (
	"github.com/shopspring/decimal"
)

// Project is the aggregate root. ID is assigned by storage on insert and is
// never reassigned. Materials, Steps and Categories are filled together by a
// single-project fetch and left nil by listings.
type Project struct {
	ID             int64            `db:"project_id"`
	Name           string           `db:"project_name"`
	EstimatedHours *decimal.Decimal `db:"estimated_hours"`
	ActualHours    *decimal.Decimal `db:"actual_hours"`
	Difficulty     *int             `db:"difficulty"`
	Notes          *string          `db:"notes"`

	Materials  []Material `db:"-"`
	Steps      []Step     `db:"-"`
	Categories []Category `db:"-"`
}

// Material is owned by exactly one project and removed with it.
type Material struct {
	ID          int64            `db:"material_id"`
	ProjectID   int64            `db:"project_id"`
	Name        string           `db:"material_name"`
	NumRequired *int             `db:"num_required"`
	Cost        *decimal.Decimal `db:"cost"`
}

// Step is owned by exactly one project and removed with it.
type Step struct {
	ID        int64  `db:"step_id"`
	ProjectID int64  `db:"project_id"`
	Text      string `db:"step_text"`
	Order     int    `db:"step_order"`
}

// Category may be shared by many projects through project_category.
type Category struct {
	ID   int64  `db:"category_id"`
	Name string `db:"category_name"`
}

// HasDetails reports whether the owned and linked collections were loaded.
func (p *Project) HasDetails() bool {
	return p.Materials != nil && p.Steps != nil && p.Categories != nil
}

// TotalMaterialCost sums cost * num_required over materials that carry a cost.
// A missing quantity counts as one.
func (p *Project) TotalMaterialCost() decimal.Decimal {
	total := decimal.Zero
	for _, m := range p.Materials {
		if m.Cost == nil {
			continue
		}
		qty := int64(IntFromPtrWithDefault(1, m.NumRequired))
		total = total.Add(m.Cost.Mul(decimal.NewFromInt(qty)))
	}
	return total
}
