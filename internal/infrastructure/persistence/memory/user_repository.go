package memory

import (
	"context"
	"sync"

	"job-board/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	users []user.User
	index map[string]int
}

func NewUserRepository() *UserRepository {
	return &UserRepository{index: make(map[string]int)}
}

func (r *UserRepository) Add(ctx context.Context, u user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[u.Username]; ok {
		return user.ErrDuplicateUsername
	}
	r.index[u.Username] = len(r.users)
	r.users = append(r.users, u.Clone())
	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[username]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return r.users[i].Clone(), nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]user.User, error) {
	return r.filter(ctx, func(user.User) bool { return true })
}

func (r *UserRepository) FindByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	return r.filter(ctx, func(u user.User) bool { return u.Role == role })
}

func (r *UserRepository) Update(ctx context.Context, username string, fn func(*user.User) error) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[username]
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	cur := r.users[i]
	next := cur.Clone()
	if err := fn(&next); err != nil {
		return user.User{}, err
	}
	next.Username = cur.Username
	next.Role = cur.Role

	r.users[i] = next.Clone()
	return next, nil
}

func (r *UserRepository) filter(ctx context.Context, keep func(user.User) bool) ([]user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.users))
	for _, u := range r.users {
		if keep(u) {
			out = append(out, u.Clone())
		}
	}
	return out, nil
}
