package user

import (
	"context"
	"errors"
	"strings"

	"job-board/internal/domain/job"
	"job-board/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrWrongRole    = errors.New("operation not available for this role")
	ErrInternal     = errors.New("internal error")
)

type UpdateProfileInput struct {
	Email       *string
	ResumePath  *string
	DisplayName *string
}

type Service struct {
	users user.Repository
	jobs  job.Repository
}

func NewService(users user.Repository, jobs job.Repository) *Service {
	return &Service{users: users, jobs: jobs}
}

func (s *Service) GetProfile(ctx context.Context, username string) (user.User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return u.Sanitized(), nil
}

// UpdateProfile applies only the fields that are set. Resume path belongs to
// applicants and display name to companies.
func (s *Service) UpdateProfile(ctx context.Context, username string, in UpdateProfileInput) (user.User, error) {
	if in.Email == nil && in.ResumePath == nil && in.DisplayName == nil {
		return user.User{}, ErrInvalidInput
	}

	u, err := s.users.Update(ctx, username, func(u *user.User) error {
		if in.Email != nil {
			email := strings.TrimSpace(*in.Email)
			if email == "" || !strings.Contains(email, "@") {
				return ErrInvalidInput
			}
			u.Email = email
		}
		if in.ResumePath != nil {
			if !u.IsApplicant() {
				return ErrWrongRole
			}
			u.Applicant.ResumePath = strings.TrimSpace(*in.ResumePath)
		}
		if in.DisplayName != nil {
			if !u.IsCompany() {
				return ErrWrongRole
			}
			u.Company.DisplayName = strings.TrimSpace(*in.DisplayName)
		}
		return nil
	})
	if err != nil {
		return user.User{}, mapError(err)
	}
	return u.Sanitized(), nil
}

func (s *Service) UpdateEmail(ctx context.Context, username, email string) (user.User, error) {
	return s.UpdateProfile(ctx, username, UpdateProfileInput{Email: &email})
}

func (s *Service) SetResumePath(ctx context.Context, username, path string) (user.User, error) {
	return s.UpdateProfile(ctx, username, UpdateProfileInput{ResumePath: &path})
}

func (s *Service) SetCompanyName(ctx context.Context, username, name string) (user.User, error) {
	return s.UpdateProfile(ctx, username, UpdateProfileInput{DisplayName: &name})
}

// ToggleSavedJob saves jobID for the applicant, or unsaves it when it is
// already saved. It reports whether the job is saved afterwards.
func (s *Service) ToggleSavedJob(ctx context.Context, username string, jobID uuid.UUID) (bool, error) {
	saved := false
	_, err := s.users.Update(ctx, username, func(u *user.User) error {
		if !u.IsApplicant() {
			return ErrWrongRole
		}
		if u.RemoveSavedJob(jobID) {
			saved = false
			return nil
		}
		if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
			return err
		}
		saved = u.SaveJob(jobID)
		return nil
	})
	if err != nil {
		return false, mapError(err)
	}
	return saved, nil
}

func (s *Service) SavedJobIDs(ctx context.Context, username string) ([]uuid.UUID, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, mapError(err)
	}
	if !u.IsApplicant() {
		return nil, ErrWrongRole
	}
	return u.Applicant.SavedJobIDs, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrWrongRole):
		return err
	case errors.Is(err, user.ErrNotFound):
		return user.ErrNotFound
	case errors.Is(err, job.ErrNotFound):
		return job.ErrNotFound
	default:
		return ErrInternal
	}
}
