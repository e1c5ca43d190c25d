package memory

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"job-board/internal/domain/application"
	"job-board/internal/domain/job"
	"job-board/internal/domain/user"

	"github.com/google/uuid"
)

func TestUserRepository_AddFind(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	u, _ := user.New(user.RoleCompany, "acme", "hash", "acme@example.com")
	if err := repo.Add(ctx, u); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got, err := repo.FindByUsername(ctx, "acme")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(got, u) {
		t.Fatalf("expected %+v, got %+v", u, got)
	}

	if _, err := repo.FindByUsername(ctx, "ghost"); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_DuplicateNeverOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	first, _ := user.New(user.RoleCompany, "acme", "h1", "first@example.com")
	second, _ := user.New(user.RoleApplicant, "acme", "h2", "second@example.com")
	_ = repo.Add(ctx, first)

	if err := repo.Add(ctx, second); !errors.Is(err, user.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	got, _ := repo.FindByUsername(ctx, "acme")
	if got.Email != "first@example.com" {
		t.Fatalf("original user was overwritten: %+v", got)
	}
}

func TestUserRepository_SnapshotsAreDetached(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	u, _ := user.New(user.RoleApplicant, "ann", "h", "")
	u.SaveJob(uuid.New())
	_ = repo.Add(ctx, u)

	all, _ := repo.FindAll(ctx)
	all[0].Email = "mutated"
	all[0].Applicant.SavedJobIDs[0] = uuid.Nil

	got, _ := repo.FindByUsername(ctx, "ann")
	if got.Email == "mutated" || got.Applicant.SavedJobIDs[0] == uuid.Nil {
		t.Fatalf("store state changed through a returned snapshot")
	}
}

func TestUserRepository_FindByRole_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	for _, name := range []string{"a1", "c1", "a2", "a3"} {
		role := user.RoleApplicant
		if name[0] == 'c' {
			role = user.RoleCompany
		}
		u, _ := user.New(role, name, "h", "")
		_ = repo.Add(ctx, u)
	}

	got, _ := repo.FindByRole(ctx, user.RoleApplicant)
	names := make([]string, 0, len(got))
	for _, u := range got {
		names = append(names, u.Username)
	}
	if !reflect.DeepEqual(names, []string{"a1", "a2", "a3"}) {
		t.Fatalf("unexpected order %v", names)
	}
}

func TestUserRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	u, _ := user.New(user.RoleApplicant, "ann", "h", "old@example.com")
	_ = repo.Add(ctx, u)

	updated, err := repo.Update(ctx, "ann", func(u *user.User) error {
		u.Email = "new@example.com"
		u.Username = "hijack"
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Username != "ann" || updated.Email != "new@example.com" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	sentinel := errors.New("stop")
	if _, err := repo.Update(ctx, "ann", func(u *user.User) error {
		u.Email = "discarded"
		return sentinel
	}); !errors.Is(err, sentinel) {
		t.Fatalf("expected fn error, got %v", err)
	}
	got, _ := repo.FindByUsername(ctx, "ann")
	if got.Email != "new@example.com" {
		t.Fatalf("failed update must not be stored, got %q", got.Email)
	}

	if _, err := repo.Update(ctx, "ghost", func(*user.User) error { return nil }); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestJobRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewJobRepository()

	j1 := job.NewBuilder().Title("Dev").Company("acme").Build()
	j2 := job.NewBuilder().Title("Ops").Company("globex").Build()
	j3 := job.NewBuilder().Title("QA").Company("acme").Build()
	for _, j := range []job.Job{j1, j2, j3} {
		_ = repo.Add(ctx, j)
	}

	acme, _ := repo.FindByCompany(ctx, "acme")
	if len(acme) != 2 || acme[0].ID != j1.ID || acme[1].ID != j3.ID {
		t.Fatalf("unexpected company jobs %+v", acme)
	}

	updated, err := repo.Update(ctx, j1.ID, func(j *job.Job) error {
		j.Active = false
		j.CompanyUsername = "globex"
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Active || updated.CompanyUsername != "acme" {
		t.Fatalf("unexpected update %+v", updated)
	}

	if err := repo.Remove(ctx, j2.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := repo.FindByID(ctx, j2.ID); !errors.Is(err, job.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
	if err := repo.Remove(ctx, j2.ID); !errors.Is(err, job.ErrNotFound) {
		t.Fatalf("expected ErrNotFound removing twice, got %v", err)
	}

	all, _ := repo.FindAll(ctx)
	if len(all) != 2 || all[0].ID != j1.ID || all[1].ID != j3.ID {
		t.Fatalf("unexpected remaining jobs %+v", all)
	}
	all[0].Title = "mutated"
	got, _ := repo.FindByID(ctx, j1.ID)
	if got.Title != "Dev" {
		t.Fatalf("store state changed through a returned snapshot")
	}
}

func TestApplicationRepository_Queries(t *testing.T) {
	ctx := context.Background()
	repo := NewApplicationRepository()
	jobA, jobB := uuid.New(), uuid.New()

	a1 := application.New("ann", jobA, "/r/ann.pdf", time.Now())
	a2 := application.New("bob", jobA, "/r/bob.pdf", time.Now())
	a3 := application.New("ann", jobB, "/r/ann2.pdf", time.Now())
	for _, a := range []application.Application{a1, a2, a3} {
		_ = repo.Add(ctx, a)
	}

	forA, _ := repo.FindByJobID(ctx, jobA)
	if len(forA) != 2 || forA[0].ID != a1.ID || forA[1].ID != a2.ID {
		t.Fatalf("unexpected applications for job %+v", forA)
	}
	byAnn, _ := repo.FindByUsername(ctx, "ann")
	if len(byAnn) != 2 || byAnn[0].ID != a1.ID || byAnn[1].ID != a3.ID {
		t.Fatalf("unexpected applications for user %+v", byAnn)
	}

	advanced, err := repo.Update(ctx, a1.ID, func(a *application.Application) error {
		a.Advance()
		a.ResumePath = "/elsewhere"
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if advanced.Status() != application.StatusReviewed || advanced.ResumePath != "/r/ann.pdf" {
		t.Fatalf("unexpected update %+v", advanced)
	}

	if _, err := repo.FindByID(ctx, uuid.New()); !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApplicationRepository_ConcurrentAdvance(t *testing.T) {
	ctx := context.Background()
	repo := NewApplicationRepository()
	a := application.New("ann", uuid.New(), "", time.Now())
	_ = repo.Add(ctx, a)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Update(ctx, a.ID, func(a *application.Application) error {
				a.Advance()
				return nil
			})
		}()
	}
	wg.Wait()

	got, _ := repo.FindByID(ctx, a.ID)
	if got.Status() != application.StatusAccepted {
		t.Fatalf("expected two advances to reach Accepted, got %s", got.Status())
	}
}
