package seeder

import (
	"context"
	"fmt"

	"job-board/internal/domain/application"
	ucauth "job-board/internal/usecase/auth"
	jobuc "job-board/internal/usecase/job"
)

// Target is what seeders write through. Accounts and jobs go through the
// usecases so hashing, events and cache invalidation still apply.
type Target struct {
	Auth *ucauth.Service
	Jobs *jobuc.Service
	Apps application.Repository
}

type Seeder interface {
	Name() string
	Run(ctx context.Context, t Target) error
}

type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, t Target) error {
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, t); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}

func Defaults() []Seeder {
	return []Seeder{DemoSeeder{}}
}
