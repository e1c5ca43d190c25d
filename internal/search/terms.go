package search

import (
	"strings"
	"unicode"

	"job-board/internal/domain/job"
)

// AllTerms splits the normalized query into words and keeps jobs where every
// word appears in the title or the description.
type AllTerms struct{}

func (AllTerms) Search(jobs []job.Job, query string) []job.Job {
	terms := strings.Fields(NormalizeQuery(query))
	if len(terms) == 0 {
		return jobs
	}

	out := make([]job.Job, 0, len(jobs))
	for _, j := range jobs {
		text := strings.ToLower(j.Title) + "\n" + strings.ToLower(j.Description)
		if containsAll(text, terms) {
			out = append(out, j)
		}
	}
	return out
}

func containsAll(text string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(text, t) {
			return false
		}
	}
	return true
}

// NormalizeQuery lower-cases input, keeps letters, digits and single spaces,
// and drops everything else.
func NormalizeQuery(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	input = strings.ToLower(input)

	b := strings.Builder{}
	b.Grow(len(input))
	lastWasSpace := false

	for _, r := range input {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
			lastWasSpace = false
			continue
		}
		if unicode.IsSpace(r) {
			if b.Len() == 0 || lastWasSpace {
				continue
			}
			b.WriteByte(' ')
			lastWasSpace = true
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
