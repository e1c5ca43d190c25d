package auth

import (
	"context"
	"errors"
	"testing"

	"job-board/internal/domain/user"
	"job-board/internal/infrastructure/persistence/memory"

	"golang.org/x/crypto/bcrypt"
)

func newTestService() (*Service, *memory.UserRepository) {
	repo := memory.NewUserRepository()
	gate := NewGate(NewStoreVerifier(repo, bcrypt.MinCost), NewMemoryCounter(), 3, quietLogger())
	return NewService(repo, gate, bcrypt.MinCost), repo
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	u, err := svc.Register(ctx, RegisterInput{Role: "Company", Username: "acme", Password: "pw1", Email: "hr@acme.test"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Role != user.RoleCompany || u.PasswordHash != "" || !u.IsCompany() {
		t.Fatalf("unexpected user %+v", u)
	}

	stored, err := repo.FindByUsername(ctx, "acme")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "pw1" {
		t.Fatalf("password must be stored hashed")
	}
}

func TestService_Register_Errors(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()
	_, _ = svc.Register(ctx, RegisterInput{Role: "APPLICANT", Username: "ann", Password: "pw"})

	cases := []struct {
		name string
		in   RegisterInput
		want error
	}{
		{"duplicate", RegisterInput{Role: "COMPANY", Username: "ann", Password: "x"}, ErrDuplicateUsername},
		{"unknown role", RegisterInput{Role: "ADMIN", Username: "root", Password: "x"}, ErrUnknownRole},
		{"empty username", RegisterInput{Role: "APPLICANT", Username: "  ", Password: "x"}, ErrInvalidInput},
		{"empty password", RegisterInput{Role: "APPLICANT", Username: "bob", Password: ""}, ErrInvalidInput},
		{"path in username", RegisterInput{Role: "APPLICANT", Username: "a/b", Password: "x"}, ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if _, err := repo.FindByUsername(ctx, "root"); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("unknown role must not create a user")
	}
}

func TestService_Register_DefaultEmail(t *testing.T) {
	svc, _ := newTestService()
	u, err := svc.Register(context.Background(), RegisterInput{Role: "applicant", Username: "ann", Password: "pw"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "ann@example.com" {
		t.Fatalf("unexpected default email %q", u.Email)
	}
}

func TestService_Login_LockoutScenario(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	_, _ = svc.Register(ctx, RegisterInput{Role: "COMPANY", Username: "acme", Password: "pw1"})

	if u, err := svc.Login(ctx, LoginInput{Username: "acme", Password: "pw1"}); err != nil || u.Username != "acme" {
		t.Fatalf("expected login success, got %+v %v", u, err)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.Login(ctx, LoginInput{Username: "acme", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}
	if _, err := svc.Login(ctx, LoginInput{Username: "acme", Password: "pw1"}); !errors.Is(err, ErrLockedOut) {
		t.Fatalf("expected ErrLockedOut, got %v", err)
	}
}

func TestService_Login_UnknownUser(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Login(context.Background(), LoginInput{Username: "ghost", Password: "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
