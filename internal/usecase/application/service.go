package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"job-board/internal/domain/application"
	"job-board/internal/domain/job"
	"job-board/internal/domain/user"
	"job-board/internal/infrastructure/storage"
	"job-board/internal/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrForbidden     = errors.New("forbidden")
	ErrJobInactive   = errors.New("job is not accepting applications")
	ErrResumeStorage = errors.New("resume could not be stored")
	ErrInternal      = errors.New("internal error")
)

type ResumeStorer interface {
	StoreFile(ctx context.Context, username, sourcePath string) (string, error)
	Store(ctx context.Context, username, filename string, r io.Reader) (string, error)
}

// Listing pairs an application with its job. Job is nil when the job has
// been removed since the application was submitted.
type Listing struct {
	Application application.Application
	Job         *job.Job
}

type Service struct {
	apps    application.Repository
	jobs    job.Repository
	users   user.Repository
	resumes ResumeStorer
	logger  *logrus.Logger
	now     func() time.Time
}

func NewService(apps application.Repository, jobs job.Repository, users user.Repository, resumes ResumeStorer, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		apps:    apps,
		jobs:    jobs,
		users:   users,
		resumes: resumes,
		logger:  logger,
		now:     time.Now,
	}
}

// SubmitApplication copies the resume at sourcePath into storage and records
// the application.
func (s *Service) SubmitApplication(ctx context.Context, applicantUsername string, jobID uuid.UUID, sourcePath string) (application.Application, error) {
	return s.submit(ctx, applicantUsername, jobID, func() (string, error) {
		return s.resumes.StoreFile(ctx, applicantUsername, sourcePath)
	})
}

// SubmitUpload stores an uploaded resume stream and records the application.
func (s *Service) SubmitUpload(ctx context.Context, applicantUsername string, jobID uuid.UUID, filename string, r io.Reader) (application.Application, error) {
	return s.submit(ctx, applicantUsername, jobID, func() (string, error) {
		return s.resumes.Store(ctx, applicantUsername, filename, r)
	})
}

func (s *Service) submit(ctx context.Context, username string, jobID uuid.UUID, store func() (string, error)) (application.Application, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return application.Application{}, ErrForbidden
		}
		return application.Application{}, ErrInternal
	}
	if !u.IsApplicant() {
		return application.Application{}, ErrForbidden
	}

	j, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return application.Application{}, mapError(err)
	}
	if !j.Active {
		return application.Application{}, ErrJobInactive
	}

	path, err := store()
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{"applicant": username, "job_id": jobID}).Warn("[Applications] resume storage failed")
		if errors.Is(err, storage.ErrStorage) {
			return application.Application{}, fmt.Errorf("%w: %v", ErrResumeStorage, err)
		}
		return application.Application{}, err
	}

	a := application.New(username, jobID, path, s.now())
	if err := s.apps.Add(ctx, a); err != nil {
		return application.Application{}, ErrInternal
	}
	metrics.RecordApplicationSubmitted()
	s.logger.WithFields(logrus.Fields{"application_id": a.ID, "applicant": username, "job_id": jobID}).Info("[Applications] submitted")
	return a, nil
}

// Advance moves the application one step. Only the company owning the job
// may advance it; advancing a terminal application is a no-op.
func (s *Service) Advance(ctx context.Context, companyUsername string, applicationID uuid.UUID) (application.Application, error) {
	cur, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		return application.Application{}, mapError(err)
	}
	j, err := s.jobs.FindByID(ctx, cur.JobID)
	if err != nil {
		return application.Application{}, mapError(err)
	}
	if !j.OwnedBy(companyUsername) {
		return application.Application{}, ErrForbidden
	}

	changed := false
	a, err := s.apps.Update(ctx, applicationID, func(a *application.Application) error {
		changed = a.Advance()
		return nil
	})
	if err != nil {
		return application.Application{}, mapError(err)
	}
	if changed {
		metrics.RecordApplicationTransition(a.Status().String())
		s.logger.WithFields(logrus.Fields{"application_id": a.ID, "status": a.Status()}).Info("[Applications] advanced")
	}
	return a, nil
}

func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	a, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return application.Application{}, mapError(err)
	}
	return a, nil
}

// ApplicationsForJob lists a job's applications for its owner.
func (s *Service) ApplicationsForJob(ctx context.Context, companyUsername string, jobID uuid.UUID) ([]application.Application, error) {
	j, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, mapError(err)
	}
	if !j.OwnedBy(companyUsername) {
		return nil, ErrForbidden
	}
	apps, err := s.apps.FindByJobID(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	return apps, nil
}

func (s *Service) ApplicationsByUser(ctx context.Context, applicantUsername string) ([]Listing, error) {
	apps, err := s.apps.FindByUsername(ctx, applicantUsername)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]Listing, 0, len(apps))
	for _, a := range apps {
		l := Listing{Application: a}
		j, err := s.jobs.FindByID(ctx, a.JobID)
		switch {
		case err == nil:
			l.Job = &j
		case !errors.Is(err, job.ErrNotFound):
			return nil, ErrInternal
		}
		out = append(out, l)
	}
	return out, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, application.ErrNotFound):
		return application.ErrNotFound
	case errors.Is(err, job.ErrNotFound):
		return job.ErrNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return ErrInternal
	}
}
