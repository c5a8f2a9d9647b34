package survey

import (
	"io"

	"github.com/colonyops/bon/pkg/iojson"
)

// OutcomeJSON is an outcome entry in the JSON survey.
type OutcomeJSON struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ActionJSON is an action entry in the JSON survey. Parent is null for
// actions without one.
type ActionJSON struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Parent *string `json:"parent"`
}

// RepoJSON is the JSON form of a RepoSummary.
type RepoJSON struct {
	Repo     string        `json:"repo"`
	Open     int           `json:"open"`
	Done     int           `json:"done"`
	Outcomes []OutcomeJSON `json:"outcomes"`
	Actions  []ActionJSON  `json:"actions"`
	Error    string        `json:"error,omitempty"`
}

// JSON projects the report into the machine-readable array. Repositories
// with open items or a load error are included, in report order.
func JSON(r *Report) []RepoJSON {
	out := make([]RepoJSON, 0, len(r.Repos))
	for _, repo := range r.Repos {
		if repo.Open == 0 && repo.Err == nil {
			continue
		}

		rj := RepoJSON{
			Repo:     repo.Name,
			Open:     repo.Open,
			Done:     repo.Done,
			Outcomes: make([]OutcomeJSON, 0, len(repo.Outcomes)),
			Actions:  make([]ActionJSON, 0, len(repo.Actions)),
		}
		if repo.Err != nil {
			rj.Error = repo.Err.Error()
		}
		for _, o := range repo.Outcomes {
			rj.Outcomes = append(rj.Outcomes, OutcomeJSON{ID: o.ID, Title: o.Title})
		}
		for _, a := range repo.Actions {
			aj := ActionJSON{ID: a.ID, Title: a.Title}
			if a.Parent != "" {
				parent := a.Parent
				aj.Parent = &parent
			}
			rj.Actions = append(rj.Actions, aj)
		}
		out = append(out, rj)
	}
	return out
}

// WriteJSON writes the JSON projection as an indented array.
func WriteJSON(w io.Writer, r *Report) error {
	return iojson.WriteWith(w, io.Discard, JSON(r))
}
