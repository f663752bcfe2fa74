package model

import "time"

// CheckSource records which GitHub shape a Check was built from.
type CheckSource string

const (
	CheckSourceContext CheckSource = "context" // Legacy commit status context.
	CheckSourceRun     CheckSource = "run"     // Checks API check run.
)

// Check is one CI signal on the head commit of a pull request.
type Check struct {
	Name   string
	Status CheckStatus
	URL    string
	Source CheckSource
}

// PullRequest is the reduced view of one of the viewer's open pull requests.
type PullRequest struct {
	Number    uint64
	Title     string
	HeadRef   string
	URL       string
	UpdatedAt time.Time
	IsDraft   bool
	Reviewer  *string // First outstanding requested reviewer, nil when none.
	Approved  bool    // Latest opinionated review is APPROVED.
	Queued    bool    // Auto-merge or merge queue is enabled.

	// OverallStatus is the head commit's status rollup; nil when no CI is configured.
	OverallStatus *CheckStatus
	// Checks holds status contexts first, then check runs suite by suite.
	Checks []Check
}

// Status derives the display status. CI success is refined by queue,
// approval, pending reviewer, and draft state, in that order; every other
// rollup goes through DisplayKindFor.
func (pr PullRequest) Status() DisplayStatus {
	if pr.OverallStatus == nil {
		return DisplayStatus{Kind: DisplayUnknown}
	}

	if *pr.OverallStatus == CheckStatusSuccess {
		switch {
		case pr.Queued:
			return DisplayStatus{Kind: DisplayQueued}
		case pr.Approved:
			return DisplayStatus{Kind: DisplaySuccessAndApproved}
		case pr.Reviewer != nil:
			return DisplayStatus{Kind: DisplaySuccessAwaitingApproval, Reviewer: *pr.Reviewer}
		case pr.IsDraft:
			return DisplayStatus{Kind: DisplayDraft}
		default:
			return DisplayStatus{Kind: DisplaySuccess}
		}
	}

	return DisplayStatus{Kind: DisplayKindFor(*pr.OverallStatus)}
}

// UpdatedBefore reports whether the PR was last updated before cutoff.
func (pr PullRequest) UpdatedBefore(cutoff time.Time) bool {
	return pr.UpdatedAt.Before(cutoff)
}
