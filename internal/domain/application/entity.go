package application

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Application struct {
	ID                uuid.UUID
	ApplicantUsername string
	JobID             uuid.UUID
	ResumePath        string
	SubmittedAt       time.Time

	status Status
}

// New creates a submission in the Applied state.
func New(applicantUsername string, jobID uuid.UUID, resumePath string, submittedAt time.Time) Application {
	return Application{
		ID:                uuid.New(),
		ApplicantUsername: applicantUsername,
		JobID:             jobID,
		ResumePath:        resumePath,
		SubmittedAt:       submittedAt.UTC(),
		status:            StatusApplied,
	}
}

// Restore rebuilds an application with an explicit status. It is meant for
// seeding and fixtures; normal operation moves status only through Advance.
func Restore(id uuid.UUID, applicantUsername string, jobID uuid.UUID, resumePath string, submittedAt time.Time, status Status) (Application, error) {
	if !status.IsValid() {
		return Application{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return Application{
		ID:                id,
		ApplicantUsername: applicantUsername,
		JobID:             jobID,
		ResumePath:        resumePath,
		SubmittedAt:       submittedAt.UTC(),
		status:            status,
	}, nil
}

func (a Application) Status() Status {
	if a.status == "" {
		return StatusApplied
	}
	return a.status
}

// Advance moves the application one step along the workflow. On a terminal
// status it does nothing and reports false.
func (a *Application) Advance() bool {
	cur := a.Status()
	next := Next(cur)
	a.status = next
	return next != cur
}
