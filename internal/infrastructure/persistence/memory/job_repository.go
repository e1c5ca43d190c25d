package memory

import (
	"context"
	"sync"

	"job-board/internal/domain/job"

	"github.com/google/uuid"
)

type JobRepository struct {
	mu   sync.RWMutex
	jobs []job.Job
}

func NewJobRepository() *JobRepository {
	return &JobRepository{}
}

func (r *JobRepository) Add(ctx context.Context, j job.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs = append(r.jobs, j)
	return nil
}

func (r *JobRepository) FindByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	if err := ctx.Err(); err != nil {
		return job.Job{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.jobs[i], nil
	}
	return job.Job{}, job.ErrNotFound
}

func (r *JobRepository) FindAll(ctx context.Context) ([]job.Job, error) {
	return r.filter(ctx, func(job.Job) bool { return true })
}

func (r *JobRepository) FindByCompany(ctx context.Context, companyUsername string) ([]job.Job, error) {
	return r.filter(ctx, func(j job.Job) bool { return j.CompanyUsername == companyUsername })
}

func (r *JobRepository) Update(ctx context.Context, id uuid.UUID, fn func(*job.Job) error) (job.Job, error) {
	if err := ctx.Err(); err != nil {
		return job.Job{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return job.Job{}, job.ErrNotFound
	}

	cur := r.jobs[i]
	next := cur
	if err := fn(&next); err != nil {
		return job.Job{}, err
	}
	next.ID = cur.ID
	next.CompanyUsername = cur.CompanyUsername
	next.CreatedAt = cur.CreatedAt

	r.jobs[i] = next
	return next, nil
}

func (r *JobRepository) Remove(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return job.ErrNotFound
	}
	r.jobs = append(r.jobs[:i:i], r.jobs[i+1:]...)
	return nil
}

func (r *JobRepository) indexOf(id uuid.UUID) int {
	for i := range r.jobs {
		if r.jobs[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *JobRepository) filter(ctx context.Context, keep func(job.Job) bool) ([]job.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]job.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		if keep(j) {
			out = append(out, j)
		}
	}
	return out, nil
}
