package watch

import (
	"context"
	"strings"

	"github.com/wahlandcase/attuned.prwatch/internal/github"
	"github.com/wahlandcase/attuned.prwatch/internal/logging"
	"github.com/wahlandcase/attuned.prwatch/internal/models"
	"github.com/wahlandcase/attuned.prwatch/internal/status"
)

// MergeableResolver performs the secondary mergeability lookup used when
// the primary record reports UNKNOWN.
type MergeableResolver func(ctx context.Context, url string) (models.Mergeable, error)

// Normalize converts one raw GraphQL node into a canonical PullRequest.
// Missing fields normalize to their "unknown" values; the mergeable
// sub-lookup never fails the whole normalization.
func Normalize(ctx context.Context, raw github.RawPullRequest, source models.Source, resolve MergeableResolver) models.PullRequest {
	ciState := models.CINone
	var checks []models.Check
	if rollup := raw.Commits.Rollup(); rollup != nil {
		ciState = models.CIState(rollup.State)
		checks = normalizeChecks(rollup.Contexts.Nodes)
	}

	reviewDecision := models.ReviewDecision(raw.ReviewDecision)

	var reviews []models.Review
	for _, r := range raw.Reviews.Nodes {
		review := models.Review{State: r.State}
		if r.Author != nil {
			review.Author = r.Author.Login
		}
		reviews = append(reviews, review)
	}

	var labels []string
	for _, l := range raw.Labels.Nodes {
		labels = append(labels, l.Name)
	}

	inMergeQueue := raw.MergeQueueEntry != nil
	var queuePosition *int
	if inMergeQueue {
		pos := raw.MergeQueueEntry.Position
		queuePosition = &pos
	}

	mergeable := resolveMergeable(ctx, raw, resolve)

	prState := models.PRState(raw.State)
	if prState == "" {
		prState = models.StateOpen
	}

	repo := raw.Repository.NameWithOwner
	repoShort := repo
	if idx := strings.LastIndex(repo, "/"); idx >= 0 {
		repoShort = repo[idx+1:]
	}

	var author string
	if raw.Author != nil {
		author = raw.Author.Login
	}

	return models.PullRequest{
		Number:    raw.Number,
		Title:     raw.Title,
		URL:       raw.URL,
		Repo:      repo,
		RepoShort: repoShort,
		IsDraft:   raw.IsDraft,
		State:     prState,
		CreatedAt: raw.CreatedAt,
		UpdatedAt: raw.UpdatedAt,

		Mergeable:          mergeable,
		InMergeQueue:       inMergeQueue,
		MergeQueuePosition: queuePosition,

		CIState: ciState,
		CIIcon:  status.CIIcon(ciState),
		CILabel: status.CILabel(ciState),

		ReviewDecision: reviewDecision,
		ReviewIcon:     status.ReviewIcon(reviewDecision),
		ReviewLabel:    status.ReviewLabel(reviewDecision),

		StatusIcon: status.Combined(ciState, reviewDecision, prState, inMergeQueue, mergeable),

		Checks:  checks,
		Reviews: reviews,
		Labels:  labels,

		Source: source,
		Author: author,
	}
}

// normalizeChecks collapses the two raw context shapes into one record.
// A CheckRun carries name/status/conclusion; a StatusContext carries
// context/state, which fills both status and conclusion.
func normalizeChecks(nodes []github.RawCheckContext) []models.Check {
	var checks []models.Check
	for _, node := range nodes {
		switch {
		case node.Name != "":
			checks = append(checks, models.Check{
				Name:       node.Name,
				Status:     node.Status,
				Conclusion: node.Conclusion,
			})
		case node.Context != "":
			checks = append(checks, models.Check{
				Name:       node.Context,
				Status:     node.State,
				Conclusion: node.State,
			})
		}
	}
	return checks
}

// resolveMergeable falls back to the secondary lookup when the raw value
// is UNKNOWN or absent. Lookup failure keeps the raw value.
func resolveMergeable(ctx context.Context, raw github.RawPullRequest, resolve MergeableResolver) models.Mergeable {
	mergeable := models.Mergeable(raw.Mergeable)
	if mergeable != models.MergeableUnknown && mergeable != models.MergeableNone {
		return mergeable
	}
	if resolve == nil || raw.URL == "" {
		return mergeable
	}

	resolved, err := resolve(ctx, raw.URL)
	if err != nil {
		logging.Logger.Warn("mergeable lookup failed", "url", raw.URL, "error", err)
		return mergeable
	}
	if resolved == models.MergeableNone {
		return mergeable
	}
	return resolved
}
