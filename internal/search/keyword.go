package search

import (
	"strings"

	"job-board/internal/domain/job"
)

// Keyword matches jobs whose title or description contains the query as a
// case-insensitive substring. An empty query returns jobs unchanged.
type Keyword struct{}

func (Keyword) Search(jobs []job.Job, query string) []job.Job {
	if query == "" {
		return jobs
	}

	q := strings.ToLower(query)
	out := make([]job.Job, 0, len(jobs))
	for _, j := range jobs {
		if strings.Contains(strings.ToLower(j.Title), q) || strings.Contains(strings.ToLower(j.Description), q) {
			out = append(out, j)
		}
	}
	return out
}
