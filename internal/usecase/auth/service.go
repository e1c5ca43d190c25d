package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"job-board/internal/domain/user"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLockedOut          = errors.New("too many failed login attempts")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternal           = errors.New("internal error")

	ErrDuplicateUsername = user.ErrDuplicateUsername
	ErrUnknownRole       = user.ErrUnknownRole
)

type RegisterInput struct {
	Role     string
	Username string
	Password string
	Email    string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (user.User, error)
	Login(ctx context.Context, in LoginInput) (user.User, error)
}

type Service struct {
	users      user.Repository
	login      Verifier
	bcryptCost int
	now        func() time.Time
}

// NewService logs users in through login, which is normally a Gate.
func NewService(users user.Repository, login Verifier, bcryptCost int) *Service {
	return &Service{users: users, login: login, bcryptCost: normalizeCost(bcryptCost), now: time.Now}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	role, err := user.ParseRole(in.Role)
	if err != nil {
		return user.User{}, err
	}

	username := strings.TrimSpace(in.Username)
	// bcrypt only reads the first 72 bytes.
	if username == "" || in.Password == "" || len(in.Password) > 72 {
		return user.User{}, ErrInvalidInput
	}
	if strings.ContainsAny(username, " \t\r\n/\\") {
		return user.User{}, ErrInvalidInput
	}

	email := strings.TrimSpace(in.Email)
	if email == "" {
		email = username + "@example.com"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u, err := user.New(role, username, string(hash), email)
	if err != nil {
		return user.User{}, err
	}
	u.CreatedAt = s.now().UTC()

	if err := s.users.Add(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicateUsername) {
			return user.User{}, ErrDuplicateUsername
		}
		return user.User{}, ErrInternal
	}
	return u.Sanitized(), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	u, err := s.login.Verify(ctx, strings.TrimSpace(in.Username), in.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrLockedOut):
			return user.User{}, ErrLockedOut
		case errors.Is(err, ErrInvalidCredentials), errors.Is(err, user.ErrNotFound):
			return user.User{}, ErrInvalidCredentials
		default:
			return user.User{}, ErrInternal
		}
	}
	return u, nil
}
