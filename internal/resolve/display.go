package resolve

import (
	"fmt"
	"strings"
)

// MaxCandidates is how many ambiguous matches are shown before the rest are
// summarised as "(+N more)".
const MaxCandidates = 5

// Shown returns the candidates to display and how many were left out.
func (r Result) Shown() ([]string, int) {
	if len(r.Candidates) <= MaxCandidates {
		return r.Candidates, 0
	}
	return r.Candidates[:MaxCandidates], len(r.Candidates) - MaxCandidates
}

// CandidateList renders the shown candidates as a comma-separated list with a
// "(+N more)" suffix when the list was truncated.
func (r Result) CandidateList() string {
	shown, more := r.Shown()
	s := strings.Join(shown, ", ")
	if more > 0 {
		s += fmt.Sprintf(" (+%d more)", more)
	}
	return s
}

// Display renders the result on one line.
func (r Result) Display() string {
	switch r.Kind {
	case Resolved:
		return fmt.Sprintf("%s (%s)", r.Name, r.HRID)
	case Ambiguous:
		return fmt.Sprintf("%d matches: %s", len(r.Candidates), r.CandidateList())
	default:
		return fmt.Sprintf("%s (not in catalog)", r.Name)
	}
}

// Report is the machine-readable form of a Result.
type Report struct {
	Kind        string   `json:"kind"`
	Name        string   `json:"name,omitempty"`
	HRID        string   `json:"hrid,omitempty"`
	Candidates  []string `json:"candidates,omitempty"`
	More        int      `json:"more,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Report converts r, showing at most MaxCandidates candidates.
func (r Result) Report(suggestions []string) Report {
	shown, more := r.Shown()
	return Report{
		Kind:        r.Kind.String(),
		Name:        r.Name,
		HRID:        r.HRID,
		Candidates:  shown,
		More:        more,
		Suggestions: suggestions,
	}
}
