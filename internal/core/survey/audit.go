package survey

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/colonyops/bon/internal/core/items"
)

// AuditRecord carries the fields a reviewer needs to verify an item.
type AuditRecord struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Type       items.Type    `json:"type"`
	Status     items.Status  `json:"status"`
	Parent     string        `json:"parent,omitempty"`
	WaitingFor string        `json:"waiting_for,omitempty"`
	CreatedAt  string        `json:"created_at,omitempty"`
	AgeFlag    items.AgeFlag `json:"age_flag,omitempty"`
	Why        string        `json:"why,omitempty"`
	What       string        `json:"what,omitempty"`
	Done       string        `json:"done,omitempty"`
}

// AuditRepo is the audit view of one repository.
type AuditRepo struct {
	Repo      string        `json:"repo"`
	RepoPath  string        `json:"repo_path"`
	OpenCount int           `json:"open_count"`
	Outcomes  []AuditRecord `json:"outcomes"`
	Actions   []AuditRecord `json:"actions"`
}

// AuditError reports a repository whose log could not be loaded.
type AuditError struct {
	Repo  string `json:"repo"`
	Error string `json:"error"`
}

// AuditReport is the JSON document produced by an audit.
type AuditReport struct {
	TotalOpen     int          `json:"total_open"`
	ReposWithOpen int          `json:"repos_with_open"`
	Repos         []AuditRepo  `json:"repos"`
	Errors        []AuditError `json:"errors,omitempty"`
}

// RepoFilter selects repositories by exact name or doublestar pattern. An
// empty filter matches everything.
type RepoFilter []string

// Validate checks every pattern in the filter.
func (f RepoFilter) Validate() error {
	for _, p := range f {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid repo pattern %q", p)
		}
	}
	return nil
}

// Match reports whether name is selected by the filter.
func (f RepoFilter) Match(name string) bool {
	if len(f) == 0 {
		return true
	}
	for _, p := range f {
		if p == name {
			return true
		}
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// Audit loads the repositories selected by filter and returns their open
// items with briefs and age flags. Repositories without open items are
// dropped; the rest are ordered by descending open count.
func (s *Scanner) Audit(ctx context.Context, filter RepoFilter) (*AuditReport, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	report, err := s.scan(ctx, "survey.audit", filter.Match)
	if err != nil {
		return nil, err
	}

	now := s.opts.Now()
	out := &AuditReport{Repos: []AuditRepo{}}
	for _, repo := range report.Repos {
		if repo.Err != nil {
			out.Errors = append(out.Errors, AuditError{Repo: repo.Name, Error: repo.Err.Error()})
			continue
		}
		if repo.Open == 0 {
			continue
		}

		ar := AuditRepo{
			Repo:      repo.Name,
			RepoPath:  repo.Path,
			OpenCount: repo.Open,
			Outcomes:  make([]AuditRecord, 0, len(repo.Outcomes)),
			Actions:   make([]AuditRecord, 0, len(repo.Actions)),
		}
		for _, o := range repo.Outcomes {
			ar.Outcomes = append(ar.Outcomes, s.record(o, now))
		}
		for _, a := range repo.Actions {
			ar.Actions = append(ar.Actions, s.record(a, now))
		}

		out.Repos = append(out.Repos, ar)
		out.TotalOpen += ar.OpenCount
	}

	slices.SortStableFunc(out.Repos, func(a, b AuditRepo) int {
		return b.OpenCount - a.OpenCount
	})
	out.ReposWithOpen = len(out.Repos)

	return out, nil
}

func (s *Scanner) record(i items.Item, now time.Time) AuditRecord {
	rec := AuditRecord{
		ID:         i.ID,
		Title:      i.Title,
		Type:       i.Type,
		Status:     i.EffectiveStatus(),
		Parent:     i.Parent,
		WaitingFor: i.WaitingFor,
		CreatedAt:  i.CreatedAt,
	}
	if i.CreatedAt != "" {
		rec.AgeFlag = s.opts.Age.Age(i.CreatedAt, now)
	}
	if !i.Brief.IsZero() {
		rec.Why = i.Brief.Why
		rec.What = i.Brief.What
		rec.Done = i.Brief.Done
	}
	return rec
}
