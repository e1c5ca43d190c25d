package dto

import (
	"time"

	"job-board/internal/domain/application"
	appuc "job-board/internal/usecase/application"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID          uuid.UUID    `json:"id"`
	Applicant   string       `json:"applicant"`
	JobID       uuid.UUID    `json:"job_id"`
	ResumePath  string       `json:"resume_path"`
	Status      string       `json:"status"`
	SubmittedAt string       `json:"submitted_at"`
	Job         *JobResponse `json:"job,omitempty"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		Applicant:   a.ApplicantUsername,
		JobID:       a.JobID,
		ResumePath:  a.ResumePath,
		Status:      a.Status().String(),
		SubmittedAt: a.SubmittedAt.UTC().Format(time.RFC3339),
	}
}

func NewApplicationListResponse(apps []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}

// NewListingResponse omits the job when it has been removed.
func NewListingResponse(listings []appuc.Listing) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(listings))
	for _, l := range listings {
		res := NewApplicationResponse(l.Application)
		if l.Job != nil {
			j := NewJobResponse(*l.Job)
			res.Job = &j
		}
		out = append(out, res)
	}
	return out
}
