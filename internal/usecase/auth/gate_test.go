package auth

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"job-board/internal/domain/user"
	"job-board/internal/infrastructure/persistence/memory"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type countingVerifier struct {
	calls int
	ok    map[string]string
}

func (v *countingVerifier) Verify(_ context.Context, username, password string) (user.User, error) {
	v.calls++
	if pw, ok := v.ok[username]; ok && pw == password {
		return user.User{Username: username, Role: user.RoleCompany}, nil
	}
	return user.User{}, user.ErrNotFound
}

type brokenCounter struct{}

func (brokenCounter) Increment(context.Context) (int, error) { return 0, errors.New("redis down") }
func (brokenCounter) Reset(context.Context) error            { return errors.New("redis down") }

// slowVerifier rejects every password after a delay, so concurrent logins
// overlap inside the gate.
type slowVerifier struct {
	calls atomic.Int32
	delay time.Duration
}

func (v *slowVerifier) Verify(context.Context, string, string) (user.User, error) {
	v.calls.Add(1)
	time.Sleep(v.delay)
	return user.User{}, user.ErrNotFound
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestGate_LocksOutAfterMaxFailures(t *testing.T) {
	ctx := context.Background()
	v := &countingVerifier{ok: map[string]string{"acme": "pw1"}}
	g := NewGate(v, NewMemoryCounter(), 3, quietLogger())

	for i := 0; i < 3; i++ {
		if _, err := g.Verify(ctx, "acme", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}

	if _, err := g.Verify(ctx, "acme", "pw1"); !errors.Is(err, ErrLockedOut) {
		t.Fatalf("expected ErrLockedOut with correct credentials, got %v", err)
	}
	if v.calls != 3 {
		t.Fatalf("locked gate must not consult the verifier, calls=%d", v.calls)
	}
}

func TestGate_SuccessResetsCounter(t *testing.T) {
	ctx := context.Background()
	v := &countingVerifier{ok: map[string]string{"acme": "pw1"}}
	counter := NewMemoryCounter()
	g := NewGate(v, counter, 3, quietLogger())

	_, _ = g.Verify(ctx, "acme", "bad")
	_, _ = g.Verify(ctx, "acme", "bad")
	u, err := g.Verify(ctx, "acme", "pw1")
	if err != nil || u.Username != "acme" {
		t.Fatalf("expected success, got %+v %v", u, err)
	}
	if n, _ := counter.Count(ctx); n != 0 {
		t.Fatalf("expected counter reset to 0, got %d", n)
	}

	for i := 0; i < 2; i++ {
		_, _ = g.Verify(ctx, "acme", "bad")
	}
	if _, err := g.Verify(ctx, "acme", "pw1"); err != nil {
		t.Fatalf("two failures after a reset must not lock out, got %v", err)
	}
}

func TestGate_LockoutIsGlobal(t *testing.T) {
	ctx := context.Background()
	v := &countingVerifier{ok: map[string]string{"acme": "pw1", "globex": "pw2"}}
	g := NewGate(v, nil, 3, quietLogger())

	for i := 0; i < 3; i++ {
		_, _ = g.Verify(ctx, "acme", "bad")
	}
	if _, err := g.Verify(ctx, "globex", "pw2"); !errors.Is(err, ErrLockedOut) {
		t.Fatalf("expected lockout shared across usernames, got %v", err)
	}
}

func TestGate_CustomMax(t *testing.T) {
	ctx := context.Background()
	v := &countingVerifier{ok: map[string]string{"acme": "pw1"}}
	g := NewGate(v, nil, 1, quietLogger())

	_, _ = g.Verify(ctx, "acme", "bad")
	if _, err := g.Verify(ctx, "acme", "pw1"); !errors.Is(err, ErrLockedOut) {
		t.Fatalf("expected lockout after one failure, got %v", err)
	}
	if NewGate(v, nil, 0, nil).MaxAttempts() != DefaultMaxAttempts {
		t.Fatalf("expected default max attempts")
	}
}

func TestGate_CounterFailureFailsClosed(t *testing.T) {
	v := &countingVerifier{ok: map[string]string{"acme": "pw1"}}
	g := NewGate(v, brokenCounter{}, 3, quietLogger())
	if _, err := g.Verify(context.Background(), "acme", "pw1"); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if v.calls != 0 {
		t.Fatalf("verifier must not run without a counter")
	}
}

func TestGate_ConcurrentFailuresRespectLimit(t *testing.T) {
	v := &slowVerifier{delay: 20 * time.Millisecond}
	g := NewGate(v, NewMemoryCounter(), 3, quietLogger())

	var wg sync.WaitGroup
	var invalid, locked atomic.Int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := g.Verify(context.Background(), "acme", "wrong")
			switch {
			case errors.Is(err, ErrInvalidCredentials):
				invalid.Add(1)
			case errors.Is(err, ErrLockedOut):
				locked.Add(1)
			default:
				t.Errorf("unexpected err: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := v.calls.Load(); got != 3 {
		t.Fatalf("verifier consulted %d times with max=3", got)
	}
	if invalid.Load() != 3 || locked.Load() != 17 {
		t.Fatalf("expected 3 invalid and 17 locked, got %d and %d", invalid.Load(), locked.Load())
	}
}

type flakyCounter struct {
	MemoryCounter
	failIncrement bool
}

func (c *flakyCounter) Increment(ctx context.Context) (int, error) {
	if c.failIncrement {
		return 0, errors.New("redis down")
	}
	return c.MemoryCounter.Increment(ctx)
}

func TestGate_IncrementFailureFailsClosed(t *testing.T) {
	ctx := context.Background()
	v := &countingVerifier{ok: map[string]string{"acme": "pw1"}}
	counter := &flakyCounter{}
	g := NewGate(v, counter, 3, quietLogger())

	_, _ = g.Verify(ctx, "acme", "bad")
	counter.failIncrement = true
	if _, err := g.Verify(ctx, "acme", "bad"); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal when the attempt cannot be recorded, got %v", err)
	}
	if v.calls != 1 {
		t.Fatalf("unrecorded attempt must not reach the verifier, calls=%d", v.calls)
	}
	if n, _ := counter.Count(ctx); n != 1 {
		t.Fatalf("expected one recorded attempt, got %d", n)
	}
}

func TestStoreVerifier_NoEnumeration(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.MinCost)
	u, _ := user.New(user.RoleCompany, "acme", string(hash), "acme@example.com")
	_ = repo.Add(ctx, u)

	v := NewStoreVerifier(repo, bcrypt.MinCost)

	got, err := v.Verify(ctx, "acme", "pw1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.PasswordHash != "" {
		t.Fatalf("verified user must be sanitized")
	}

	_, errWrong := v.Verify(ctx, "acme", "nope")
	_, errGhost := v.Verify(ctx, "ghost", "pw1")
	if !errors.Is(errWrong, user.ErrNotFound) || !errors.Is(errGhost, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for both, got %v / %v", errWrong, errGhost)
	}
	if errWrong.Error() != errGhost.Error() {
		t.Fatalf("wrong password and unknown user must look identical")
	}
}
