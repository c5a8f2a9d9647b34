// Package survey aggregates item logs across every repository under a root
// directory and projects the result as text, Markdown or JSON.
package survey

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/colonyops/bon/internal/core/items"
	"github.com/colonyops/bon/internal/core/logging"
)

const tracerName = "github.com/colonyops/bon/internal/core/survey"

// Options configures a Scanner.
type Options struct {
	Root   string
	Source items.Source
	Mode   items.Mode
	// Ignore holds doublestar patterns matched against repository names.
	Ignore []string
	Age    items.AgeThresholds
	Now    func() time.Time
	Logger zerolog.Logger
}

// Scanner walks the immediate subdirectories of a root directory.
type Scanner struct {
	opts Options
}

// NewScanner creates a Scanner, filling unset options with defaults.
func NewScanner(opts Options) *Scanner {
	if len(opts.Source.DataDirs) == 0 || opts.Source.FileName == "" {
		opts.Source = items.DefaultSource()
	}
	if opts.Mode == "" {
		opts.Mode = items.ModeStrict
	}
	if opts.Age == (items.AgeThresholds{}) {
		opts.Age = items.DefaultAgeThresholds()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Scanner{opts: opts}
}

// Repo is a directory under the root that holds an item log.
type Repo struct {
	Name    string
	Path    string
	LogPath string
	// Err is set when the directory could not be inspected for a log.
	Err error
}

// RepoSummary is the aggregation of one repository's item log.
type RepoSummary struct {
	Repo

	Open int
	Done int

	// Graph groups the open items; Outcomes, Actions and Waiting are views of it.
	Graph    items.Graph
	Outcomes []items.Item
	Actions  []items.Item
	Waiting  []items.Item

	// Skipped counts malformed lines dropped in lenient mode.
	Skipped int
	// Err is a soft error: the log could not be read or parsed.
	Err error
}

// Report is the immutable result of one survey run.
type Report struct {
	Root  string
	Repos []RepoSummary
}

// TotalOpen sums open items across repositories.
func (r *Report) TotalOpen() int {
	n := 0
	for _, s := range r.Repos {
		n += s.Open
	}
	return n
}

// TotalDone sums done items across repositories.
func (r *Report) TotalDone() int {
	n := 0
	for _, s := range r.Repos {
		n += s.Done
	}
	return n
}

// Active returns repositories with at least one open item.
func (r *Report) Active() []RepoSummary {
	var out []RepoSummary
	for _, s := range r.Repos {
		if s.Open > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Failed returns repositories whose log could not be loaded.
func (r *Report) Failed() []RepoSummary {
	var out []RepoSummary
	for _, s := range r.Repos {
		if s.Err != nil {
			out = append(out, s)
		}
	}
	return out
}

// Find returns the summary for a repository name.
func (r *Report) Find(name string) (RepoSummary, bool) {
	for _, s := range r.Repos {
		if s.Name == name {
			return s, true
		}
	}
	return RepoSummary{}, false
}

// Repos lists directories under the root that hold an item log, in name
// order. A missing root yields no repositories. Directories whose data
// directory cannot be inspected are returned with Err set.
func (s *Scanner) Repos(ctx context.Context) ([]Repo, error) {
	entries, err := os.ReadDir(s.opts.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.opts.Logger.Warn().Str("root", s.opts.Root).Msg("repos directory does not exist")
			return nil, nil
		}
		return nil, fmt.Errorf("read repos dir: %w", err)
	}

	var repos []Repo
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := e.Name()
		if s.ignored(name) {
			s.opts.Logger.Debug().Str("repo", name).Msg("ignored by pattern")
			continue
		}

		path := filepath.Join(s.opts.Root, name)
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}

		logPath, err := s.opts.Source.Find(path)
		if err != nil {
			if errors.Is(err, items.ErrNoLog) {
				continue
			}
			s.opts.Logger.Warn().Err(err).Str("repo", name).Msg("cannot inspect repository")
			repos = append(repos, Repo{Name: name, Path: path, Err: err})
			continue
		}

		repos = append(repos, Repo{Name: name, Path: path, LogPath: logPath})
	}

	return repos, nil
}

func (s *Scanner) ignored(name string) bool {
	for _, pattern := range s.opts.Ignore {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// Survey loads every repository log and returns summaries ordered by
// descending open count. Repositories with neither open nor done items are
// dropped unless their log failed to load.
func (s *Scanner) Survey(ctx context.Context) (*Report, error) {
	return s.scan(ctx, "survey.scan", nil)
}

func (s *Scanner) scan(ctx context.Context, spanName string, keep func(name string) bool) (*Report, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, spanName)
	defer span.End()

	repos, err := s.Repos(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	report := &Report{Root: s.opts.Root}
	for _, repo := range repos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if keep != nil && !keep(repo.Name) {
			continue
		}

		sum := s.summarize(ctx, repo)
		if sum.Err == nil && sum.Open == 0 && sum.Done == 0 {
			continue
		}
		report.Repos = append(report.Repos, sum)
	}

	sortByOpen(report.Repos)

	span.SetAttributes(
		attribute.Int("survey.repos", len(report.Repos)),
		attribute.Int("survey.open", report.TotalOpen()),
		attribute.Int("survey.done", report.TotalDone()),
	)
	return report, nil
}

// sortByOpen orders summaries by descending open count; ties keep their
// directory listing order.
func sortByOpen(repos []RepoSummary) {
	slices.SortStableFunc(repos, func(a, b RepoSummary) int {
		return b.Open - a.Open
	})
}

func (s *Scanner) summarize(ctx context.Context, repo Repo) RepoSummary {
	ctx, span := otel.Tracer(tracerName).Start(logging.WithRepo(ctx, repo.Name), "survey.repo")
	defer span.End()
	span.SetAttributes(attribute.String("repo", repo.Name))

	sum := RepoSummary{Repo: repo}

	if repo.Err != nil {
		span.RecordError(repo.Err)
		span.SetStatus(codes.Error, repo.Err.Error())
		sum.Err = repo.Err
		return sum
	}

	res, err := items.LoadFile(repo.LogPath, s.opts.Mode)
	if err != nil {
		s.opts.Logger.Warn().Ctx(ctx).Err(err).Msg("skipping unreadable item log")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		sum.Err = err
		return sum
	}

	for _, skipped := range res.Skipped {
		s.opts.Logger.Debug().Ctx(ctx).Err(skipped).Msg("skipped malformed line")
	}

	sum.Skipped = len(res.Skipped)
	sum.Open = res.Set.Count(items.Open)
	sum.Done = res.Set.Count(items.Done)
	sum.Graph = items.Build(res.Set, items.Active(items.Open))
	sum.Outcomes = sum.Graph.Outcomes
	sum.Actions = sum.Graph.Actions()
	sum.Waiting = sum.Graph.Waiting

	span.SetAttributes(
		attribute.Int("repo.open", sum.Open),
		attribute.Int("repo.done", sum.Done),
	)
	return sum
}
