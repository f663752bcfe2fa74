// Package driven defines secondary port interfaces for external adapters.
package driven

import "context"

// PullRequestSource defines the driven port that fetches the viewer's open
// pull requests as a decoded JSON document.
type PullRequestSource interface {
	// FetchPullRequests issues the fixed pull request query. The returned
	// document is never mutated by callers.
	FetchPullRequests(ctx context.Context) (any, error)
}
