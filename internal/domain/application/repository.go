package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("application not found")
	ErrInvalidStatus = errors.New("invalid application status")
)

type Repository interface {
	Add(ctx context.Context, a Application) error
	FindByID(ctx context.Context, id uuid.UUID) (Application, error)
	FindByJobID(ctx context.Context, jobID uuid.UUID) ([]Application, error)
	FindByUsername(ctx context.Context, username string) ([]Application, error)
	FindAll(ctx context.Context) ([]Application, error)
	// Update runs fn under the store lock and stores the result.
	Update(ctx context.Context, id uuid.UUID, fn func(*Application) error) (Application, error)
}
