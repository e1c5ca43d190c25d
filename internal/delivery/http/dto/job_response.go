package dto

import (
	"time"

	"job-board/internal/domain/job"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	Company      string    `json:"company"`
	Active       bool      `json:"active"`
	CreatedAt    string    `json:"created_at"`
	UpdatedAt    string    `json:"updated_at,omitempty"`
}

func NewJobResponse(j job.Job) JobResponse {
	res := JobResponse{
		ID:           j.ID,
		Title:        j.Title,
		Description:  j.Description,
		Requirements: j.Requirements,
		Company:      j.CompanyUsername,
		Active:       j.Active,
		CreatedAt:    j.CreatedAt.UTC().Format(time.RFC3339),
	}
	if !j.UpdatedAt.IsZero() {
		res.UpdatedAt = j.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return res
}

func NewJobListResponse(jobs []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, NewJobResponse(j))
	}
	return out
}
