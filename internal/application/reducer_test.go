package application

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/xbar-pr-status/internal/domain/model"
	"github.com/ericfisherdev/xbar-pr-status/internal/domain/navigate"
)

// loadFixture decodes a JSON fixture from testdata.
func loadFixture(t *testing.T, name string) any {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	doc, err := navigate.DecodeBytes(data)
	require.NoError(t, err)
	return doc
}

// prNode returns a minimal valid pull request node with a green rollup.
// Callers mutate the returned map to build variations.
func prNode() map[string]any {
	return map[string]any{
		"number":                   1,
		"title":                    "A title",
		"url":                      "https://github.com/org/repo/pull/1",
		"isDraft":                  false,
		"updatedAt":                "2026-10-01T00:00:00Z",
		"headRef":                  map[string]any{"name": "branch"},
		"autoMergeRequest":         nil,
		"reviewRequests":           map[string]any{"nodes": []any{}},
		"latestOpinionatedReviews": map[string]any{"nodes": []any{}},
		"commits": map[string]any{
			"nodes": []any{
				map[string]any{
					"commit": map[string]any{
						"statusCheckRollup": map[string]any{"state": "SUCCESS"},
					},
				},
			},
		},
	}
}

func commitOf(node map[string]any) map[string]any {
	nodes := node["commits"].(map[string]any)["nodes"].([]any)
	return nodes[0].(map[string]any)["commit"].(map[string]any)
}

func TestLoadPullRequest_Approved(t *testing.T) {
	pr, err := LoadPullRequest(loadFixture(t, "pr_approved.json"))
	require.NoError(t, err)

	assert.Equal(t, uint64(42), pr.Number)
	assert.Equal(t, "Add the | thing", pr.Title)
	assert.Equal(t, "https://github.com/org/repo/pull/42", pr.URL)
	assert.Equal(t, "add-thing", pr.HeadRef)
	assert.Equal(t, time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC), pr.UpdatedAt)
	assert.False(t, pr.IsDraft)
	assert.Nil(t, pr.Reviewer)
	assert.True(t, pr.Approved)
	assert.False(t, pr.Queued)
	require.NotNil(t, pr.OverallStatus)
	assert.Equal(t, model.CheckStatusSuccess, *pr.OverallStatus)

	assert.Equal(t, []model.Check{
		{Name: "Status 1", Status: model.CheckStatusSuccess, URL: "https://url", Source: model.CheckSourceContext},
		{Name: "Status 2", Status: model.CheckStatusSuccess, URL: "https://url", Source: model.CheckSourceContext},
		{Name: "Check 1", Status: model.CheckStatusSuccess, URL: "https://github.com/org/repo/runs/1", Source: model.CheckSourceRun},
	}, pr.Checks)

	assert.Equal(t, model.DisplayStatus{Kind: model.DisplaySuccessAndApproved}, pr.Status())
}

func TestLoadPullRequest_Failing(t *testing.T) {
	pr, err := LoadPullRequest(loadFixture(t, "pr_failing.json"))
	require.NoError(t, err)

	require.NotNil(t, pr.OverallStatus)
	assert.Equal(t, model.CheckStatusFailure, *pr.OverallStatus)
	require.NotNil(t, pr.Reviewer)
	assert.Equal(t, "alice", *pr.Reviewer)
	assert.False(t, pr.Approved)

	// Runs flatten suite by suite; a null conclusion is still running.
	require.Len(t, pr.Checks, 3)
	assert.Equal(t, "build", pr.Checks[0].Name)
	assert.Equal(t, "test", pr.Checks[1].Name)
	assert.Equal(t, model.CheckStatusFailure, pr.Checks[1].Status)
	assert.Equal(t, "deploy preview", pr.Checks[2].Name)
	assert.Equal(t, model.CheckStatusPending, pr.Checks[2].Status)

	assert.Equal(t, model.DisplayStatus{Kind: model.DisplayFailure}, pr.Status())
}

func TestLoadPullRequest_NoChecks(t *testing.T) {
	pr, err := LoadPullRequest(loadFixture(t, "pr_no_checks.json"))
	require.NoError(t, err)

	assert.Nil(t, pr.OverallStatus)
	assert.Empty(t, pr.Checks)
	assert.NotNil(t, pr.Checks)
	assert.Nil(t, pr.Reviewer)
	assert.False(t, pr.Approved)
	assert.True(t, pr.IsDraft)
	assert.Equal(t, model.DisplayStatus{Kind: model.DisplayUnknown}, pr.Status())
}

func TestLoadPullRequest_Queued(t *testing.T) {
	node := prNode()
	node["autoMergeRequest"] = map[string]any{"enabledAt": "2026-10-01T00:00:00Z"}
	node["latestOpinionatedReviews"] = map[string]any{"nodes": []any{map[string]any{"state": "APPROVED"}}}
	node["isDraft"] = true

	pr, err := LoadPullRequest(node)
	require.NoError(t, err)

	assert.True(t, pr.Queued)
	assert.Equal(t, model.DisplayStatus{Kind: model.DisplayQueued}, pr.Status())
}

func TestLoadPullRequest_MissingAutoMergeRequest(t *testing.T) {
	node := prNode()
	delete(node, "autoMergeRequest")

	_, err := LoadPullRequest(node)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not load queue state")
	assert.Contains(t, err.Error(), "could not get /autoMergeRequest")
}

func TestLoadPullRequest_AbsentOptionalFields(t *testing.T) {
	node := prNode()
	delete(node, "reviewRequests")
	delete(node, "latestOpinionatedReviews")

	pr, err := LoadPullRequest(node)
	require.NoError(t, err)

	assert.Nil(t, pr.Reviewer)
	assert.False(t, pr.Approved)
	assert.Equal(t, model.DisplayStatus{Kind: model.DisplaySuccess}, pr.Status())
}

func TestLoadPullRequest_ReviewerWrongType(t *testing.T) {
	node := prNode()
	node["reviewRequests"] = map[string]any{
		"nodes": []any{map[string]any{"requestedReviewer": map[string]any{"login": 12}}},
	}

	_, err := LoadPullRequest(node)
	require.Error(t, err)

	var navErr *navigate.Error
	require.ErrorAs(t, err, &navErr)
	assert.Equal(t, "/reviewRequests/nodes/0/requestedReviewer/login", navErr.Path)
	assert.False(t, navErr.Missing)
	assert.Contains(t, err.Error(), "could not load reviewer")
}

func TestLoadPullRequest_NoCommits(t *testing.T) {
	node := prNode()
	node["commits"] = map[string]any{"nodes": []any{}}

	_, err := LoadPullRequest(node)
	require.Error(t, err)
	assert.Equal(t, "could not load the last commit: could not get /commits/nodes/0/commit", err.Error())
}

func TestLoadPullRequest_CommitNotAnObject(t *testing.T) {
	tests := []struct {
		name   string
		commit any
	}{
		{name: "null", commit: nil},
		{name: "string", commit: "oops"},
		{name: "array", commit: []any{}},
		{name: "number", commit: 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := prNode()
			node["commits"] = map[string]any{"nodes": []any{map[string]any{"commit": tt.commit}}}

			_, err := LoadPullRequest(node)
			require.Error(t, err)
			assert.Equal(t, "could not load the last commit: /commits/nodes/0/commit was not an object", err.Error())

			var navErr *navigate.Error
			require.ErrorAs(t, err, &navErr)
			assert.False(t, navErr.Missing)
		})
	}
}

func TestLoadPullRequest_RequiredScalars(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]any)
		wantErr string
	}{
		{
			name:    "missing number",
			mutate:  func(n map[string]any) { delete(n, "number") },
			wantErr: "could not load number: could not get /number",
		},
		{
			name:    "negative number",
			mutate:  func(n map[string]any) { n["number"] = -1 },
			wantErr: "could not load number: /number was not an integer",
		},
		{
			name:    "title not a string",
			mutate:  func(n map[string]any) { n["title"] = true },
			wantErr: "could not load title: /title was not a string",
		},
		{
			name:    "missing head ref",
			mutate:  func(n map[string]any) { delete(n, "headRef") },
			wantErr: "could not load head ref: could not get /headRef/name",
		},
		{
			name:    "draft not a bool",
			mutate:  func(n map[string]any) { n["isDraft"] = "no" },
			wantErr: "could not load draft state: /isDraft was not a bool",
		},
		{
			name:    "unparseable updatedAt",
			mutate:  func(n map[string]any) { n["updatedAt"] = "yesterday" },
			wantErr: `could not load updated at: parsing /updatedAt "yesterday"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := prNode()
			tt.mutate(node)

			_, err := LoadPullRequest(node)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var target *LoadError
			assert.ErrorAs(t, err, &target)
		})
	}
}

func TestLoadPullRequest_UnknownRollupState(t *testing.T) {
	node := prNode()
	commitOf(node)["statusCheckRollup"] = map[string]any{"state": "success"}

	_, err := LoadPullRequest(node)
	require.Error(t, err)

	var classErr *model.ClassificationError
	require.ErrorAs(t, err, &classErr)
	assert.Equal(t, "success", classErr.Code)
	assert.Contains(t, err.Error(), "could not load overall status")
}

func TestLoadPullRequest_MalformedCheckFailsWholePR(t *testing.T) {
	node := prNode()
	commitOf(node)["checkSuites"] = map[string]any{
		"nodes": []any{
			map[string]any{"checkRuns": map[string]any{"nodes": []any{
				map[string]any{"name": "ok", "conclusion": "SUCCESS", "url": "https://x"},
			}}},
			map[string]any{"checkRuns": map[string]any{"nodes": []any{
				map[string]any{"name": "ok", "conclusion": "SUCCESS", "url": "https://x"},
				map[string]any{"name": "broken", "url": "https://x"},
			}}},
		},
	}

	_, err := LoadPullRequest(node)
	require.Error(t, err)
	assert.Equal(t,
		"could not load checks: could not load check run 1 in check suite 1: could not get /conclusion",
		err.Error(),
	)
}

func TestLoadPullRequest_ContextsBeforeRuns(t *testing.T) {
	node := prNode()
	commit := commitOf(node)
	commit["checkSuites"] = map[string]any{"nodes": []any{
		map[string]any{"checkRuns": map[string]any{"nodes": []any{
			map[string]any{"name": "run", "conclusion": "NEUTRAL", "url": "https://run"},
		}}},
	}}
	commit["status"] = map[string]any{"contexts": []any{
		map[string]any{"context": "ctx-a", "state": "PENDING", "targetUrl": "https://a"},
		map[string]any{"context": "ctx-b", "state": "ERROR", "targetUrl": "https://b"},
	}}

	pr, err := LoadPullRequest(node)
	require.NoError(t, err)

	names := make([]string, 0, len(pr.Checks))
	for _, c := range pr.Checks {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"ctx-a", "ctx-b", "run"}, names)
}

func TestCheckFromRun(t *testing.T) {
	t.Run("null conclusion is pending", func(t *testing.T) {
		check, err := checkFromRun(map[string]any{"name": "build", "conclusion": nil, "url": "https://u"})
		require.NoError(t, err)
		assert.Equal(t, model.CheckStatusPending, check.Status)
		assert.Equal(t, model.CheckSourceRun, check.Source)
	})

	t.Run("absent conclusion fails", func(t *testing.T) {
		_, err := checkFromRun(map[string]any{"name": "build", "url": "https://u"})
		var navErr *navigate.Error
		require.ErrorAs(t, err, &navErr)
		assert.True(t, navErr.Missing)
		assert.Equal(t, "/conclusion", navErr.Path)
	})

	t.Run("recognized conclusion", func(t *testing.T) {
		check, err := checkFromRun(map[string]any{"name": "build", "conclusion": "TIMED_OUT", "url": "https://u"})
		require.NoError(t, err)
		assert.Equal(t, model.Check{Name: "build", Status: model.CheckStatusTimedOut, URL: "https://u", Source: model.CheckSourceRun}, check)
	})

	t.Run("non-string conclusion", func(t *testing.T) {
		_, err := checkFromRun(map[string]any{"name": "build", "conclusion": 3, "url": "https://u"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrCheckStatusNotString))
	})

	t.Run("unknown conclusion", func(t *testing.T) {
		_, err := checkFromRun(map[string]any{"name": "build", "conclusion": "MAYBE", "url": "https://u"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "got unexpected value MAYBE as a CheckStatus")
	})
}

func TestCheckFromContext(t *testing.T) {
	check, err := checkFromContext(map[string]any{"context": "ci/circleci", "state": "EXPECTED", "targetUrl": "https://c"})
	require.NoError(t, err)
	assert.Equal(t, model.Check{Name: "ci/circleci", Status: model.CheckStatusExpected, URL: "https://c", Source: model.CheckSourceContext}, check)

	_, err = checkFromContext(map[string]any{"context": "ci", "state": "SUCCESS"})
	require.Error(t, err)
	assert.Equal(t, "could not get /targetUrl", err.Error())

	_, err = checkFromContext(map[string]any{"context": "ci", "state": nil, "targetUrl": "https://c"})
	require.Error(t, err)
	assert.Equal(t, "/state was not a string", err.Error())
}

func TestLoadPullRequests(t *testing.T) {
	doc := map[string]any{
		"data": map[string]any{
			"viewer": map[string]any{
				"pullRequests": map[string]any{
					"nodes": []any{
						loadFixture(t, "pr_approved.json"),
						loadFixture(t, "pr_failing.json"),
					},
				},
			},
		},
	}

	prs, err := LoadPullRequests(doc)
	require.NoError(t, err)
	require.Len(t, prs, 2)
	assert.Equal(t, uint64(42), prs[0].Number)
	assert.Equal(t, uint64(7), prs[1].Number)
}

func TestLoadPullRequests_ErrorNamesIndex(t *testing.T) {
	broken := prNode()
	delete(broken, "title")

	doc := map[string]any{
		"data": map[string]any{
			"viewer": map[string]any{
				"pullRequests": map[string]any{"nodes": []any{prNode(), broken}},
			},
		},
	}

	_, err := LoadPullRequests(doc)
	require.Error(t, err)
	assert.Equal(t, "could not load pull request 1: could not load title: could not get /title", err.Error())
}

func TestLoadPullRequests_MissingNodes(t *testing.T) {
	_, err := LoadPullRequests(map[string]any{"data": nil})
	require.Error(t, err)
	assert.Equal(t, "could not load pull requests: could not get /data/viewer/pullRequests/nodes", err.Error())
}
