package auth

import (
	"context"
	"errors"

	"job-board/internal/domain/user"

	"golang.org/x/crypto/bcrypt"
)

// Verifier checks a username/password pair. Implementations must not reveal
// whether the username exists.
type Verifier interface {
	Verify(ctx context.Context, username, password string) (user.User, error)
}

// StoreVerifier checks credentials against the user store. Unknown users and
// wrong passwords both yield user.ErrNotFound.
type StoreVerifier struct {
	users     user.Repository
	dummyHash []byte
}

func NewStoreVerifier(users user.Repository, cost int) *StoreVerifier {
	v := &StoreVerifier{users: users}
	// Used to spend the same bcrypt time on unknown usernames.
	if h, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), normalizeCost(cost)); err == nil {
		v.dummyHash = h
	}
	return v
}

func (v *StoreVerifier) Verify(ctx context.Context, username, password string) (user.User, error) {
	u, err := v.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			if v.dummyHash != nil {
				_ = bcrypt.CompareHashAndPassword(v.dummyHash, []byte(password))
			}
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return user.User{}, user.ErrNotFound
	}
	return u.Sanitized(), nil
}

func normalizeCost(cost int) int {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}
