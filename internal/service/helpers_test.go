package service

import (
	"context"
	"sync"
	"testing"

	"github.com/alexanderramin/projects/internal/repository"
	"github.com/alexanderramin/projects/internal/rowcodec"
	"github.com/alexanderramin/projects/internal/testutil"
)

func setupService(t *testing.T, observers ...UseCaseObserver) ProjectService {
	t.Helper()
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLProjectRepo(testutil.NewTestUoW(database), rowcodec.Tagged{})
	return NewProjectService(repo, observers...)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}
