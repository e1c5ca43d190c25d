package memory

import (
	"context"
	"sync"

	"job-board/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationRepository struct {
	mu   sync.RWMutex
	apps []application.Application
	byID map[uuid.UUID]int
}

func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{byID: make(map[uuid.UUID]int)}
}

func (r *ApplicationRepository) Add(ctx context.Context, a application.Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[a.ID] = len(r.apps)
	r.apps = append(r.apps, a)
	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	if err := ctx.Err(); err != nil {
		return application.Application{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	return r.apps[i], nil
}

func (r *ApplicationRepository) FindByJobID(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	return r.filter(ctx, func(a application.Application) bool { return a.JobID == jobID })
}

func (r *ApplicationRepository) FindByUsername(ctx context.Context, username string) ([]application.Application, error) {
	return r.filter(ctx, func(a application.Application) bool { return a.ApplicantUsername == username })
}

func (r *ApplicationRepository) FindAll(ctx context.Context) ([]application.Application, error) {
	return r.filter(ctx, func(application.Application) bool { return true })
}

func (r *ApplicationRepository) Update(ctx context.Context, id uuid.UUID, fn func(*application.Application) error) (application.Application, error) {
	if err := ctx.Err(); err != nil {
		return application.Application{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.byID[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}

	cur := r.apps[i]
	next := cur
	if err := fn(&next); err != nil {
		return application.Application{}, err
	}
	next.ID = cur.ID
	next.ApplicantUsername = cur.ApplicantUsername
	next.JobID = cur.JobID
	next.ResumePath = cur.ResumePath

	r.apps[i] = next
	return next, nil
}

func (r *ApplicationRepository) filter(ctx context.Context, keep func(application.Application) bool) ([]application.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]application.Application, 0, len(r.apps))
	for _, a := range r.apps {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out, nil
}
