package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/projects/internal/domain"
	"github.com/alexanderramin/projects/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	observer UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, observers ...UseCaseObserver) ProjectService {
	return &projectService{
		projects: projects,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) Add(ctx context.Context, p *domain.Project) (saved *domain.Project, err error) {
	defer s.observe(ctx, "add-project", time.Now().UTC(), &err, map[string]any{"name": p.Name})

	saved, err = s.projects.Insert(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("adding project %q: %w", p.Name, err)
	}
	return saved, nil
}

func (s *projectService) List(ctx context.Context) (projects []*domain.Project, err error) {
	fields := map[string]any{}
	defer s.observe(ctx, "list-projects", time.Now().UTC(), &err, fields)

	projects, err = s.projects.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	fields["count"] = len(projects)
	return projects, nil
}

func (s *projectService) GetByID(ctx context.Context, id int64) (p *domain.Project, err error) {
	defer s.observe(ctx, "get-project", time.Now().UTC(), &err, map[string]any{"project_id": id})

	p, found, err := s.projects.FetchByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching project %d: %w", id, err)
	}
	if !found {
		return nil, notFound(id)
	}
	return p, nil
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) (err error) {
	defer s.observe(ctx, "update-project", time.Now().UTC(), &err, map[string]any{"project_id": p.ID})

	ok, err := s.projects.Update(ctx, p)
	if err != nil {
		return fmt.Errorf("updating project %d: %w", p.ID, err)
	}
	if !ok {
		return notFound(p.ID)
	}
	return nil
}

func (s *projectService) Delete(ctx context.Context, id int64) (err error) {
	defer s.observe(ctx, "delete-project", time.Now().UTC(), &err, map[string]any{"project_id": id})

	ok, err := s.projects.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting project %d: %w", id, err)
	}
	if !ok {
		return notFound(id)
	}
	return nil
}

func (s *projectService) observe(ctx context.Context, name string, startedAt time.Time, errp *error, fields map[string]any) {
	err := *errp
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func notFound(id int64) error {
	return fmt.Errorf("project with ID=%d does not exist: %w", id, domain.ErrNotFound)
}
