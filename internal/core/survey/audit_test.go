package survey

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepoFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter RepoFilter
		repo   string
		want   bool
	}{
		{name: "empty matches all", filter: nil, repo: "anything", want: true},
		{name: "exact", filter: RepoFilter{"trousse", "passe"}, repo: "passe", want: true},
		{name: "no match", filter: RepoFilter{"trousse"}, repo: "passe", want: false},
		{name: "glob", filter: RepoFilter{"tr*"}, repo: "trousse", want: true},
		{name: "brace glob", filter: RepoFilter{"{alpha,beta}"}, repo: "beta", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(tt.repo))
		})
	}

	require.Error(t, RepoFilter{"[unclosed"}.Validate())
	require.NoError(t, RepoFilter{"a*", "b"}.Validate())
}

func TestScanner_Audit(t *testing.T) {
	root := fixture(t)
	writeRepo(t, root, "aged",
		`{"id":"o1","type":"outcome","title":"Aged goal","created_at":"2025-12-01T00:00:00Z","brief":{"why":"users asked","what":"build it","done":"shipped"}}`,
		`{"id":"a1","type":"action","title":"Stale","parent":"o1","created_at":"2026-01-25T00:00:00Z","waiting_for":"review"}`,
		`{"id":"a2","type":"action","title":"Fresh","parent":"o1","created_at":"2026-02-27T00:00:00Z","status":"open"}`,
		`{"id":"a3","type":"action","title":"Finished","parent":"o1","status":"done"}`,
	)

	report, err := newScanner(root).Audit(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 9, report.TotalOpen)
	assert.Equal(t, 3, report.ReposWithOpen)
	require.Len(t, report.Repos, 3)
	assert.Equal(t, "beta", report.Repos[0].Repo)
	assert.Equal(t, "aged", report.Repos[1].Repo)
	assert.Equal(t, "alpha", report.Repos[2].Repo)

	aged := report.Repos[1]
	assert.Equal(t, 3, aged.OpenCount)
	assert.Contains(t, aged.RepoPath, "aged")
	require.Len(t, aged.Outcomes, 1)
	assert.Equal(t, AuditRecord{
		ID: "o1", Title: "Aged goal", Type: "outcome", Status: "open",
		CreatedAt: "2025-12-01T00:00:00Z", AgeFlag: "very_old",
		Why: "users asked", What: "build it", Done: "shipped",
	}, aged.Outcomes[0])

	require.Len(t, aged.Actions, 2)
	assert.Equal(t, "old", string(aged.Actions[0].AgeFlag))
	assert.Equal(t, "review", aged.Actions[0].WaitingFor)
	assert.Equal(t, "o1", aged.Actions[0].Parent)
	assert.Empty(t, aged.Actions[1].AgeFlag)
}

func TestScanner_Audit_Filter(t *testing.T) {
	root := fixture(t)

	report, err := newScanner(root).Audit(context.Background(), RepoFilter{"alpha", "gamma"})
	require.NoError(t, err)
	require.Len(t, report.Repos, 1, "gamma has no open items")
	assert.Equal(t, "alpha", report.Repos[0].Repo)
	assert.Equal(t, 2, report.TotalOpen)

	_, err = newScanner(root).Audit(context.Background(), RepoFilter{"[bad"})
	require.Error(t, err)
}

func TestScanner_Audit_JSONShape(t *testing.T) {
	root := t.TempDir()
	writeRepo(t, root, "one", `{"id":"o1","type":"outcome","title":"Goal"}`)
	writeRepo(t, root, "broken", `{oops`)

	report, err := newScanner(root).Audit(context.Background(), nil)
	require.NoError(t, err)

	bits, err := json.Marshal(report)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(bits, &doc))
	assert.EqualValues(t, 1, doc["total_open"])
	assert.EqualValues(t, 1, doc["repos_with_open"])

	repos := doc["repos"].([]any)
	require.Len(t, repos, 1)
	repo := repos[0].(map[string]any)
	assert.Equal(t, "one", repo["repo"])
	assert.Equal(t, []any{}, repo["actions"])

	errs := doc["errors"].([]any)
	require.Len(t, errs, 1)
	assert.Equal(t, "broken", errs[0].(map[string]any)["repo"])
}

func TestScanner_Audit_Empty(t *testing.T) {
	report, err := newScanner(t.TempDir()).Audit(context.Background(), nil)
	require.NoError(t, err)

	bits, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_open":0,"repos_with_open":0,"repos":[]}`, string(bits))
}
