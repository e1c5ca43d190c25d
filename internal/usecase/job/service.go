package job

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"job-board/internal/domain/job"
	"job-board/internal/domain/user"
	"job-board/internal/metrics"
	"job-board/internal/notification"
	"job-board/internal/search"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")
)

type Notifier interface {
	Publish(evt notification.Event)
}

type PostJobInput struct {
	Title        string
	Description  string
	Requirements string
}

type UpdateJobInput struct {
	Title        *string
	Description  *string
	Requirements *string
}

type SearchParams struct {
	Query string
	// SavedBy restricts results to the jobs this applicant has saved.
	SavedBy string
}

type Options struct {
	Strategy search.Strategy
	Cache    SearchCache
	CacheTTL time.Duration
	Notifier Notifier
	Logger   *logrus.Logger

	// CacheNamespace separates this store's cached results from other
	// processes on the same Redis. A random one is used when empty.
	CacheNamespace string
}

type Service struct {
	jobs     job.Repository
	users    user.Repository
	strategy search.Strategy
	cache    SearchCache
	cacheTTL time.Duration
	notifier Notifier
	logger   *logrus.Logger

	cacheNamespace string
	// generation is part of every cache key and moves on each mutation, so
	// a result computed before a change can never be served after it.
	generation atomic.Uint64
}

func NewService(jobs job.Repository, users user.Repository, opts Options) *Service {
	s := &Service{
		jobs:     jobs,
		users:    users,
		strategy: opts.Strategy,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		notifier: opts.Notifier,
		logger:   opts.Logger,

		cacheNamespace: strings.TrimSpace(opts.CacheNamespace),
	}
	if s.cacheNamespace == "" {
		s.cacheNamespace = uuid.NewString()
	}
	if s.strategy == nil {
		s.strategy = search.Keyword{}
	}
	if s.logger == nil {
		s.logger = logrus.StandardLogger()
	}
	return s
}

// PostJob creates an active job owned by companyUsername and announces it.
func (s *Service) PostJob(ctx context.Context, companyUsername string, in PostJobInput) (job.Job, error) {
	if err := s.requireCompany(ctx, companyUsername); err != nil {
		return job.Job{}, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return job.Job{}, ErrInvalidInput
	}

	j := job.NewBuilder().
		Title(title).
		Description(strings.TrimSpace(in.Description)).
		Requirements(strings.TrimSpace(in.Requirements)).
		Company(companyUsername).
		Build()

	if err := s.jobs.Add(ctx, j); err != nil {
		return job.Job{}, ErrInternal
	}
	s.invalidateSearch(ctx)
	metrics.RecordJobPosted()

	s.logger.WithFields(logrus.Fields{"job_id": j.ID, "company": companyUsername}).Info("[Jobs] job posted")
	if s.notifier != nil {
		s.notifier.Publish(notification.Event{
			Type:            notification.EventJobPosted,
			JobID:           j.ID,
			Title:           j.Title,
			CompanyUsername: j.CompanyUsername,
		})
	}
	return j, nil
}

func (s *Service) UpdateJob(ctx context.Context, companyUsername string, id uuid.UUID, in UpdateJobInput) (job.Job, error) {
	if in.Title == nil && in.Description == nil && in.Requirements == nil {
		return job.Job{}, ErrInvalidInput
	}
	return s.mutateOwned(ctx, companyUsername, id, func(j *job.Job) error {
		if in.Title != nil {
			title := strings.TrimSpace(*in.Title)
			if title == "" {
				return ErrInvalidInput
			}
			j.Title = title
		}
		if in.Description != nil {
			j.Description = strings.TrimSpace(*in.Description)
		}
		if in.Requirements != nil {
			j.Requirements = strings.TrimSpace(*in.Requirements)
		}
		return nil
	})
}

func (s *Service) UpdateJobTitle(ctx context.Context, companyUsername string, id uuid.UUID, title string) (job.Job, error) {
	return s.UpdateJob(ctx, companyUsername, id, UpdateJobInput{Title: &title})
}

func (s *Service) ToggleActive(ctx context.Context, companyUsername string, id uuid.UUID) (job.Job, error) {
	return s.mutateOwned(ctx, companyUsername, id, func(j *job.Job) error {
		j.Active = !j.Active
		return nil
	})
}

// RemoveJob deletes the listing. Applications that reference it are kept.
func (s *Service) RemoveJob(ctx context.Context, companyUsername string, id uuid.UUID) error {
	j, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return mapRepoError(err)
	}
	if !j.OwnedBy(companyUsername) {
		return ErrForbidden
	}
	if err := s.jobs.Remove(ctx, id); err != nil {
		return mapRepoError(err)
	}
	s.invalidateSearch(ctx)
	s.logger.WithFields(logrus.Fields{"job_id": id, "company": companyUsername}).Info("[Jobs] job removed")
	return nil
}

func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return job.Job{}, mapRepoError(err)
	}
	return j, nil
}

func (s *Service) JobsByCompany(ctx context.Context, companyUsername string) ([]job.Job, error) {
	jobs, err := s.jobs.FindByCompany(ctx, companyUsername)
	if err != nil {
		return nil, ErrInternal
	}
	return jobs, nil
}

func (s *Service) ActiveJobs(ctx context.Context) ([]job.Job, error) {
	all, err := s.jobs.FindAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]job.Job, 0, len(all))
	for _, j := range all {
		if j.Active {
			out = append(out, j)
		}
	}
	return out, nil
}

// SearchJobs runs the configured strategy over the active jobs.
func (s *Service) SearchJobs(ctx context.Context, params SearchParams) ([]job.Job, error) {
	found, err := s.searchActive(ctx, params.Query)
	if err != nil {
		return nil, err
	}
	if params.SavedBy == "" {
		return found, nil
	}

	u, err := s.users.FindByUsername(ctx, params.SavedBy)
	if err != nil {
		return nil, mapRepoError(err)
	}
	out := make([]job.Job, 0, len(found))
	for _, j := range found {
		if u.IsJobSaved(j.ID) {
			out = append(out, j)
		}
	}
	return out, nil
}

func (s *Service) searchActive(ctx context.Context, query string) ([]job.Job, error) {
	gen := s.generation.Load()
	key := SearchCacheKey(s.cacheNamespace, gen, search.Name(s.strategy), query)
	if s.cache != nil {
		var cached []job.Job
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			s.logger.WithField("key", key).Debug("[Jobs] Cache HIT")
			return cached, nil
		}
		s.logger.WithField("key", key).Debug("[Jobs] Cache MISS")
	}

	active, err := s.ActiveJobs(ctx)
	if err != nil {
		return nil, err
	}
	found := s.strategy.Search(active, query)

	if s.cache != nil && s.generation.Load() == gen {
		if err := s.cache.SetJSON(ctx, key, found, s.cacheTTL); err != nil {
			s.logger.WithError(err).Warn("[Jobs] failed to cache search result")
		}
	}
	return found, nil
}

func (s *Service) mutateOwned(ctx context.Context, companyUsername string, id uuid.UUID, fn func(*job.Job) error) (job.Job, error) {
	j, err := s.jobs.Update(ctx, id, func(j *job.Job) error {
		if !j.OwnedBy(companyUsername) {
			return ErrForbidden
		}
		if err := fn(j); err != nil {
			return err
		}
		j.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return job.Job{}, mapRepoError(err)
	}
	s.invalidateSearch(ctx)
	return j, nil
}

func (s *Service) requireCompany(ctx context.Context, username string) error {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrForbidden
		}
		return ErrInternal
	}
	if !u.IsCompany() {
		return ErrForbidden
	}
	return nil
}

func (s *Service) invalidateSearch(ctx context.Context) {
	s.generation.Add(1)
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, SearchCachePattern(s.cacheNamespace)); err != nil {
		s.logger.WithError(err).Warn("[Jobs] failed to invalidate search cache")
	}
}

func mapRepoError(err error) error {
	switch {
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrInvalidInput):
		return err
	case errors.Is(err, job.ErrNotFound):
		return job.ErrNotFound
	case errors.Is(err, user.ErrNotFound):
		return user.ErrNotFound
	default:
		return ErrInternal
	}
}
