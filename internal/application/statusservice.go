package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ericfisherdev/xbar-pr-status/internal/domain/model"
	"github.com/ericfisherdev/xbar-pr-status/internal/domain/port/driven"
)

// StatusService fetches the viewer's pull requests once and reduces them.
type StatusService struct {
	source driven.PullRequestSource
	now    func() time.Time
}

// NewStatusService creates a new StatusService with the required dependencies.
func NewStatusService(source driven.PullRequestSource) *StatusService {
	return &StatusService{
		source: source,
		now:    time.Now,
	}
}

// Load fetches and reduces the viewer's open pull requests in response order.
// When sinceDays is non-nil, pull requests last updated before that many days
// ago are dropped after they load, so a malformed old PR still fails the run.
func (s *StatusService) Load(ctx context.Context, sinceDays *int) ([]model.PullRequest, error) {
	doc, err := s.source.FetchPullRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not fetch pull requests: %w", err)
	}

	prs, err := LoadPullRequests(doc)
	if err != nil {
		return nil, err
	}

	if sinceDays == nil {
		return prs, nil
	}

	cutoff := s.now().AddDate(0, 0, -*sinceDays)
	kept := make([]model.PullRequest, 0, len(prs))
	for _, pr := range prs {
		if pr.UpdatedBefore(cutoff) {
			slog.Debug("skipping pull request updated before cutoff", "number", pr.Number, "updated_at", pr.UpdatedAt, "cutoff", cutoff)
			continue
		}
		kept = append(kept, pr)
	}
	return kept, nil
}
