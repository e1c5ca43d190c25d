package search

import (
	"reflect"
	"testing"

	"job-board/internal/domain/job"
)

func fixtureJobs() []job.Job {
	return []job.Job{
		job.NewBuilder().Title("Backend Engineer").Description("Go services").Company("acme").Build(),
		job.NewBuilder().Title("Designer").Description("Figma and user research").Company("acme").Build(),
		job.NewBuilder().Title("SRE").Description("Kubernetes, Go, on-call engineering").Company("globex").Build(),
	}
}

func ids(jobs []job.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID.String())
	}
	return out
}

func TestKeyword_EmptyQueryIsIdentity(t *testing.T) {
	jobs := fixtureJobs()
	got := Keyword{}.Search(jobs, "")
	if !reflect.DeepEqual(got, jobs) {
		t.Fatalf("expected identity for empty query")
	}
	if len(got) > 0 && &got[0] != &jobs[0] {
		t.Fatalf("expected the same sequence back")
	}
	if out := (Keyword{}).Search(nil, ""); out != nil {
		t.Fatalf("expected nil back for nil input, got %v", out)
	}
}

func TestKeyword_CaseInsensitive(t *testing.T) {
	jobs := []job.Job{job.NewBuilder().Title("Engineer").Build()}
	got := Keyword{}.Search(jobs, "engineer")
	if len(got) != 1 || got[0].ID != jobs[0].ID {
		t.Fatalf("expected the job to match, got %v", got)
	}
}

func TestKeyword_TitleOrDescription_OrderPreserved(t *testing.T) {
	jobs := fixtureJobs()
	snapshot := append([]job.Job(nil), jobs...)

	got := Keyword{}.Search(jobs, "ENGINEER")
	want := []string{jobs[0].ID.String(), jobs[2].ID.String()}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("expected %v, got %v", want, ids(got))
	}
	if !reflect.DeepEqual(jobs, snapshot) {
		t.Fatalf("input must not be mutated")
	}
}

func TestKeyword_ResultIsSubset(t *testing.T) {
	jobs := fixtureJobs()
	all := map[string]bool{}
	for _, id := range ids(jobs) {
		all[id] = true
	}
	for _, q := range []string{"go", "x", " ", "research", "Kubernetes, Go", "zzz"} {
		for _, id := range ids(Keyword{}.Search(jobs, q)) {
			if !all[id] {
				t.Fatalf("query %q returned a job outside the input", q)
			}
		}
	}
}

func TestKeyword_WhitespaceIsLiteral(t *testing.T) {
	jobs := fixtureJobs()
	got := Keyword{}.Search(jobs, "user research")
	if len(got) != 1 || got[0].ID != jobs[1].ID {
		t.Fatalf("expected only the designer job, got %v", ids(got))
	}
}

func TestAllTerms(t *testing.T) {
	jobs := fixtureJobs()

	got := AllTerms{}.Search(jobs, "  go,  ENGINEER!! ")
	want := []string{jobs[0].ID.String(), jobs[2].ID.String()}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("expected %v, got %v", want, ids(got))
	}

	if got := (AllTerms{}).Search(jobs, "?!"); !reflect.DeepEqual(got, jobs) {
		t.Fatalf("punctuation-only query should be identity")
	}
}

func TestNormalizeQuery(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"  Go   Engineer ": "go engineer",
		"C++/Go, remote!":  "cgo remote",
		"Senior\tDev":      "senior dev",
	}
	for in, want := range cases {
		if got := NormalizeQuery(in); got != want {
			t.Fatalf("NormalizeQuery(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNew(t *testing.T) {
	s, err := New("")
	if err != nil || Name(s) != StrategyKeyword {
		t.Fatalf("expected keyword default, got %v %v", s, err)
	}
	s, err = New("Terms")
	if err != nil || Name(s) != StrategyTerms {
		t.Fatalf("expected terms, got %v %v", s, err)
	}
	if _, err := New("fuzzy"); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}
