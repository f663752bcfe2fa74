// Package application reduces the GitHub pull request document into the
// domain model.
package application

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ericfisherdev/xbar-pr-status/internal/domain/model"
	"github.com/ericfisherdev/xbar-pr-status/internal/domain/navigate"
)

// PullRequestsPath locates the pull request nodes in the query response.
const PullRequestsPath = "/data/viewer/pullRequests/nodes"

// LoadError wraps the cause of a field group that could not be built.
type LoadError struct {
	Group string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("could not load %s: %v", e.Group, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func loadErr(err error, format string, args ...any) error {
	return &LoadError{Group: fmt.Sprintf(format, args...), Err: err}
}

// LoadPullRequests reduces every pull request node in doc, preserving order.
// The first node that fails aborts the whole load.
func LoadPullRequests(doc any) ([]model.PullRequest, error) {
	nodes, err := navigate.Array(doc, PullRequestsPath)
	if err != nil {
		return nil, loadErr(err, "pull requests")
	}

	prs := make([]model.PullRequest, 0, len(nodes))
	for i, node := range nodes {
		pr, err := LoadPullRequest(node)
		if err != nil {
			slog.Debug("pull request node failed to load", "index", i, "node", node)
			return nil, loadErr(err, "pull request %d", i)
		}
		prs = append(prs, pr)
	}

	slog.Debug("pull requests loaded", "count", len(prs))
	return prs, nil
}

// LoadPullRequest reduces one pull request node.
func LoadPullRequest(node any) (model.PullRequest, error) {
	commit, err := navigate.Object(node, "/commits/nodes/0/commit")
	if err != nil {
		return model.PullRequest{}, loadErr(err, "the last commit")
	}

	var pr model.PullRequest

	if pr.Number, err = navigate.Uint64(node, "/number"); err != nil {
		return model.PullRequest{}, loadErr(err, "number")
	}
	if pr.Title, err = navigate.String(node, "/title"); err != nil {
		return model.PullRequest{}, loadErr(err, "title")
	}
	if pr.URL, err = navigate.String(node, "/url"); err != nil {
		return model.PullRequest{}, loadErr(err, "url")
	}
	if pr.HeadRef, err = navigate.String(node, "/headRef/name"); err != nil {
		return model.PullRequest{}, loadErr(err, "head ref")
	}
	if pr.UpdatedAt, err = updatedAt(node); err != nil {
		return model.PullRequest{}, loadErr(err, "updated at")
	}
	if pr.IsDraft, err = navigate.Bool(node, "/isDraft"); err != nil {
		return model.PullRequest{}, loadErr(err, "draft state")
	}
	if pr.Reviewer, err = reviewer(node); err != nil {
		return model.PullRequest{}, loadErr(err, "reviewer")
	}
	if pr.Approved, err = approved(node); err != nil {
		return model.PullRequest{}, loadErr(err, "approval")
	}
	if pr.Queued, err = queued(node); err != nil {
		return model.PullRequest{}, loadErr(err, "queue state")
	}
	if pr.OverallStatus, err = overallStatus(commit); err != nil {
		return model.PullRequest{}, loadErr(err, "overall status")
	}
	if pr.Checks, err = checks(commit); err != nil {
		return model.PullRequest{}, loadErr(err, "checks")
	}

	return pr, nil
}

func updatedAt(node any) (time.Time, error) {
	raw, err := navigate.String(node, "/updatedAt")
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing /updatedAt %q: %w", raw, err)
	}
	return t, nil
}

func reviewer(node any) (*string, error) {
	login, found, err := navigate.OptionalString(node, "/reviewRequests/nodes/0/requestedReviewer/login")
	if err != nil || !found {
		return nil, err
	}
	return &login, nil
}

func approved(node any) (bool, error) {
	state, found, err := navigate.OptionalString(node, "/latestOpinionatedReviews/nodes/0/state")
	if err != nil || !found {
		return false, err
	}
	return state == "APPROVED", nil
}

// queued requires autoMergeRequest to be present; null means not queued.
func queued(node any) (bool, error) {
	value, ok := navigate.Lookup(node, "/autoMergeRequest")
	if !ok {
		return false, &navigate.Error{Path: "/autoMergeRequest", Expected: "object", Missing: true}
	}
	return value != nil, nil
}

func overallStatus(commit any) (*model.CheckStatus, error) {
	code, found, err := navigate.OptionalString(commit, "/statusCheckRollup/state")
	if err != nil || !found {
		return nil, err
	}
	status, err := model.ParseCheckStatus(code)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func checks(commit any) ([]model.Check, error) {
	out := []model.Check{}

	contexts, _, err := navigate.OptionalArray(commit, "/status/contexts")
	if err != nil {
		return nil, err
	}
	for i, node := range contexts {
		check, err := checkFromContext(node)
		if err != nil {
			return nil, loadErr(err, "status context %d", i)
		}
		out = append(out, check)
	}

	suites, _, err := navigate.OptionalArray(commit, "/checkSuites/nodes")
	if err != nil {
		return nil, err
	}
	for i, suite := range suites {
		runs, _, err := navigate.OptionalArray(suite, "/checkRuns/nodes")
		if err != nil {
			return nil, loadErr(err, "check suite %d", i)
		}
		for j, node := range runs {
			check, err := checkFromRun(node)
			if err != nil {
				return nil, loadErr(err, "check run %d in check suite %d", j, i)
			}
			out = append(out, check)
		}
	}

	return out, nil
}
