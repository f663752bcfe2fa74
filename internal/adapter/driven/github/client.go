// Package github implements the PullRequestSource port using the go-github
// library as the transport for the GitHub GraphQL API.
package github

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v82/github"

	"github.com/ericfisherdev/xbar-pr-status/internal/domain/navigate"
	"github.com/ericfisherdev/xbar-pr-status/internal/domain/port/driven"
)

//go:embed pull_requests.graphql
var pullRequestsQuery string

// Version is reported in the User-Agent header.
var Version = "dev"

// Compile-time interface satisfaction check.
var _ driven.PullRequestSource = (*Client)(nil)

// Client implements driven.PullRequestSource.
type Client struct {
	gh *gh.Client
}

// graphqlRequest is the JSON body sent to the GitHub GraphQL API.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// NewClient creates a GitHub client authenticating with a personal access
// token. Requests time out after 30 seconds as a safety net alongside
// context cancellation.
func NewClient(token string) *Client {
	client := gh.NewClient(&http.Client{Timeout: 30 * time.Second}).WithAuthToken(token)
	client.UserAgent = "xbar-pr-status/" + Version

	return &Client{gh: client}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, token string) (*Client, error) {
	client := gh.NewClient(httpClient).WithAuthToken(token)
	client.UserAgent = "xbar-pr-status/" + Version

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// FetchPullRequests runs the viewer's open pull request query and returns the
// decoded response document. Entries in the response's errors array are
// logged; the document is still returned so the caller can decide whether
// the data it needs is present.
func (c *Client) FetchPullRequests(ctx context.Context) (any, error) {
	req, err := c.gh.NewRequest(http.MethodPost, "graphql", graphqlRequest{Query: pullRequestsQuery})
	if err != nil {
		return nil, fmt.Errorf("creating pull requests request: %w", err)
	}

	var body bytes.Buffer
	resp, err := c.gh.Do(ctx, req, &body)
	if err != nil {
		return nil, fmt.Errorf("requesting pull requests from GitHub: %w", err)
	}

	logRateLimit(resp)

	doc, err := navigate.Decode(&body)
	if err != nil {
		return nil, fmt.Errorf("reading pull requests response: %w", err)
	}

	if err := logGraphQLErrors(doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// logGraphQLErrors logs each entry of the top-level errors field. A null or
// absent field is fine; any other non-array value is an error.
func logGraphQLErrors(doc any) error {
	raw, ok := navigate.Lookup(doc, "/errors")
	if !ok || raw == nil {
		return nil
	}

	errs, err := navigate.Array(doc, "/errors")
	if err != nil {
		return fmt.Errorf("reading pull requests response: %w", err)
	}

	for _, e := range errs {
		message, _, _ := navigate.OptionalString(e, "/message")
		slog.Error("graphql: response contains error", "message", message, "error", e)
	}
	return nil
}

// logRateLimit logs the GitHub API rate limit status after the call.
func logRateLimit(resp *gh.Response) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", "graphql",
		"status", resp.StatusCode,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
