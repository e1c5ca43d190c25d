package search

import (
	"fmt"
	"strings"

	"job-board/internal/domain/job"
)

// Strategy filters a job listing by a free-text query. Implementations must
// not mutate jobs and must keep the input order.
type Strategy interface {
	Search(jobs []job.Job, query string) []job.Job
}

const (
	StrategyKeyword = "keyword"
	StrategyTerms   = "terms"
)

// New returns the strategy registered under name; empty selects Keyword.
func New(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyKeyword:
		return Keyword{}, nil
	case StrategyTerms:
		return AllTerms{}, nil
	default:
		return nil, fmt.Errorf("unknown search strategy %q", name)
	}
}

// Name reports the registry name of s, used to namespace cached results.
func Name(s Strategy) string {
	switch s.(type) {
	case Keyword, *Keyword:
		return StrategyKeyword
	case AllTerms, *AllTerms:
		return StrategyTerms
	default:
		return fmt.Sprintf("%T", s)
	}
}
