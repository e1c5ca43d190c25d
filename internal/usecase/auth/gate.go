package auth

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"job-board/internal/domain/user"
	"job-board/internal/metrics"

	"github.com/sirupsen/logrus"
)

const DefaultMaxAttempts = 3

// AttemptCounter holds the number of login attempts since the last
// success. Increment must be atomic: the gate reserves an attempt with it
// before the password is checked.
type AttemptCounter interface {
	Increment(ctx context.Context) (int, error)
	Reset(ctx context.Context) error
}

// MemoryCounter is a process-lifetime AttemptCounter.
type MemoryCounter struct {
	n atomic.Int64
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{}
}

func (c *MemoryCounter) Count(context.Context) (int, error) {
	return int(c.n.Load()), nil
}

func (c *MemoryCounter) Increment(context.Context) (int, error) {
	return int(c.n.Add(1)), nil
}

func (c *MemoryCounter) Reset(context.Context) error {
	c.n.Store(0)
	return nil
}

// Gate wraps a Verifier with a failed-attempt lockout. The counter is shared
// by every login that goes through the same Gate, not kept per username.
type Gate struct {
	verifier    Verifier
	counter     AttemptCounter
	maxAttempts int
	logger      *logrus.Logger
}

func NewGate(verifier Verifier, counter AttemptCounter, maxAttempts int, logger *logrus.Logger) *Gate {
	if counter == nil {
		counter = NewMemoryCounter()
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Gate{verifier: verifier, counter: counter, maxAttempts: maxAttempts, logger: logger}
}

func (g *Gate) MaxAttempts() int {
	return g.maxAttempts
}

// Verify fails with ErrLockedOut once maxAttempts consecutive failures have
// been recorded, without consulting the wrapped verifier. Each call claims
// its attempt up front, so concurrent logins cannot all slip under the limit.
func (g *Gate) Verify(ctx context.Context, username, password string) (user.User, error) {
	n, err := g.counter.Increment(ctx)
	if err != nil {
		g.logger.WithError(err).Error("[Auth] attempt counter unavailable")
		return user.User{}, fmt.Errorf("%w: attempt counter: %v", ErrInternal, err)
	}
	if n > g.maxAttempts {
		metrics.RecordLogin(metrics.LoginLocked)
		g.logger.WithFields(logrus.Fields{"username": username, "attempts": n - 1}).Warn("[Auth] login refused, locked out")
		return user.User{}, ErrLockedOut
	}

	u, err := g.verifier.Verify(ctx, username, password)
	if err != nil {
		// The claimed attempt stays counted, also when the store failed.
		if !errors.Is(err, user.ErrNotFound) {
			return user.User{}, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		metrics.RecordLogin(metrics.LoginInvalid)
		entry := g.logger.WithFields(logrus.Fields{"username": username, "attempts": n, "max_attempts": g.maxAttempts})
		if n >= g.maxAttempts {
			entry.Warn("[Auth] failed login attempt, lockout engaged")
		} else {
			entry.Info("[Auth] failed login attempt")
		}
		return user.User{}, ErrInvalidCredentials
	}

	if err := g.counter.Reset(ctx); err != nil {
		g.logger.WithError(err).Error("[Auth] failed to reset attempt counter")
	}
	metrics.RecordLogin(metrics.LoginSuccess)
	return u, nil
}
