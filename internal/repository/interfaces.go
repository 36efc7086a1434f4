package repository

import (
	"context"

	"github.com/alexanderramin/projects/internal/domain"
)

// ProjectRepo persists the project aggregate. Every method runs in its own
// transaction on its own connection.
type ProjectRepo interface {
	// Insert stores p and returns it with the storage-assigned ID attached.
	// p is left untouched when an error is returned.
	Insert(ctx context.Context, p *domain.Project) (*domain.Project, error)

	// FetchAll lists every project ordered by name, without collections.
	FetchAll(ctx context.Context) ([]*domain.Project, error)

	// FetchByID loads a project with its materials, steps and categories.
	// found is false, with a nil error, when no project has the ID.
	FetchByID(ctx context.Context, id int64) (p *domain.Project, found bool, err error)

	// Update overwrites the scalar fields of the project with p.ID and
	// reports whether a row was changed.
	Update(ctx context.Context, p *domain.Project) (bool, error)

	// Delete removes the project with the given ID and reports whether a
	// row was removed.
	Delete(ctx context.Context, id int64) (bool, error)
}
