package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job-board/internal/domain/application"
	ucauth "job-board/internal/usecase/auth"
	jobuc "job-board/internal/usecase/job"

	"github.com/google/uuid"
)

const DemoPassword = "demo-password"

// DemoSeeder fills an empty board with a few accounts and jobs plus one
// application already under review. Running it twice is a no-op.
type DemoSeeder struct{}

func (DemoSeeder) Name() string { return "demo" }

func (DemoSeeder) Run(ctx context.Context, t Target) error {
	accounts := []ucauth.RegisterInput{
		{Role: "COMPANY", Username: "acme", Email: "jobs@acme.test"},
		{Role: "COMPANY", Username: "globex", Email: "talent@globex.test"},
		{Role: "APPLICANT", Username: "applicant1"},
		{Role: "APPLICANT", Username: "applicant2"},
	}
	for _, in := range accounts {
		in.Password = DemoPassword
		if _, err := t.Auth.Register(ctx, in); err != nil {
			if errors.Is(err, ucauth.ErrDuplicateUsername) {
				return nil
			}
			return fmt.Errorf("register %s: %w", in.Username, err)
		}
	}

	postings := []struct {
		company string
		in      jobuc.PostJobInput
	}{
		{"acme", jobuc.PostJobInput{Title: "Backend Developer", Description: "Build Go services and REST APIs.", Requirements: "Go, SQL"}},
		{"acme", jobuc.PostJobInput{Title: "QA Engineer", Description: "Own the test suite for the hiring platform.", Requirements: "Testing"}},
		{"globex", jobuc.PostJobInput{Title: "Site Reliability Engineer", Description: "Keep production healthy.", Requirements: "Linux, Redis"}},
	}
	var first uuid.UUID
	for i, p := range postings {
		j, err := t.Jobs.PostJob(ctx, p.company, p.in)
		if err != nil {
			return fmt.Errorf("post %q: %w", p.in.Title, err)
		}
		if i == 0 {
			first = j.ID
		}
	}

	if t.Apps == nil {
		return nil
	}
	a, err := application.Restore(uuid.New(), "applicant1", first, "", time.Now(), application.StatusReviewed)
	if err != nil {
		return err
	}
	return t.Apps.Add(ctx, a)
}
