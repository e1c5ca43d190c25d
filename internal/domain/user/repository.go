package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already registered")
	ErrUnknownRole       = errors.New("unknown role")
)

type Repository interface {
	// Add fails with ErrDuplicateUsername instead of overwriting.
	Add(ctx context.Context, u User) error
	FindByUsername(ctx context.Context, username string) (User, error)
	FindAll(ctx context.Context) ([]User, error)
	FindByRole(ctx context.Context, role Role) ([]User, error)
	// Update runs fn on the stored user under the store lock and persists the
	// result unless fn returns an error. Username and Role changes are ignored.
	Update(ctx context.Context, username string, fn func(*User) error) (User, error)
}
