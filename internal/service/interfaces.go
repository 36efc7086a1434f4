package service

import (
	"context"

	"github.com/alexanderramin/projects/internal/domain"
)

type ProjectService interface {
	Add(ctx context.Context, p *domain.Project) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id int64) error
}
