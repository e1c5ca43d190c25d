package job

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

type Repository interface {
	Add(ctx context.Context, j Job) error
	FindByID(ctx context.Context, id uuid.UUID) (Job, error)
	FindAll(ctx context.Context) ([]Job, error)
	FindByCompany(ctx context.Context, companyUsername string) ([]Job, error)
	// Update runs fn under the store lock; ID and CompanyUsername are immutable.
	Update(ctx context.Context, id uuid.UUID, fn func(*Job) error) (Job, error)
	Remove(ctx context.Context, id uuid.UUID) error
}
