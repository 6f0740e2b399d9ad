package watch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wahlandcase/attuned.prwatch/internal/github"
	"github.com/wahlandcase/attuned.prwatch/internal/models"
)

func rawFixture() github.RawPullRequest {
	raw := github.RawPullRequest{
		Number:         42,
		Title:          "Add retry logic",
		URL:            "https://github.com/org/web/pull/42",
		State:          "OPEN",
		Mergeable:      "MERGEABLE",
		ReviewDecision: "APPROVED",
		CreatedAt:      time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2026, 1, 11, 9, 0, 0, 0, time.UTC),
		Author:         &github.RawActor{Login: "sam"},
		Repository:     github.RawRepo{NameWithOwner: "org/web"},
	}
	rollup := &github.RawRollup{State: "SUCCESS"}
	rollup.Contexts.Nodes = []github.RawCheckContext{
		{Name: "build", Status: "COMPLETED", Conclusion: "SUCCESS"},
		{Context: "ci/lint", State: "SUCCESS"},
	}
	raw.Commits.Nodes = []github.RawCommitNode{
		{Commit: github.RawCommit{StatusCheckRollup: rollup}},
	}
	raw.Reviews.Nodes = []github.RawReview{
		{State: "APPROVED", Author: &github.RawActor{Login: "kim"}},
	}
	raw.Labels.Nodes = []github.RawLabel{{Name: "backend"}}
	return raw
}

func TestNormalize_FullRecord(t *testing.T) {
	pr := Normalize(context.Background(), rawFixture(), models.SourceAuthored, nil)

	assert.Equal(t, 42, pr.Number)
	assert.Equal(t, "org/web", pr.Repo)
	assert.Equal(t, "web", pr.RepoShort)
	assert.Equal(t, models.StateOpen, pr.State)
	assert.Equal(t, models.CISuccess, pr.CIState)
	assert.Equal(t, "CI green", pr.CILabel)
	assert.Equal(t, models.ReviewApproved, pr.ReviewDecision)
	assert.Equal(t, "Approved", pr.ReviewLabel)
	assert.Equal(t, models.StatusReady, pr.StatusIcon)
	assert.Equal(t, "sam", pr.Author)
	assert.Equal(t, models.SourceAuthored, pr.Source)
	assert.Equal(t, []string{"backend"}, pr.Labels)
	assert.Equal(t, []models.Review{{State: "APPROVED", Author: "kim"}}, pr.Reviews)
	assert.False(t, pr.InMergeQueue)
	assert.Nil(t, pr.MergeQueuePosition)
}

func TestNormalize_ChecksCollapseBothShapes(t *testing.T) {
	pr := Normalize(context.Background(), rawFixture(), models.SourceAuthored, nil)

	require.Len(t, pr.Checks, 2)
	assert.Equal(t, models.Check{Name: "build", Status: "COMPLETED", Conclusion: "SUCCESS"}, pr.Checks[0])
	// StatusContext state fills both status and conclusion
	assert.Equal(t, models.Check{Name: "ci/lint", Status: "SUCCESS", Conclusion: "SUCCESS"}, pr.Checks[1])
}

func TestNormalize_NoCommitsMeansNoCI(t *testing.T) {
	raw := rawFixture()
	raw.Commits.Nodes = nil

	pr := Normalize(context.Background(), raw, models.SourceAuthored, nil)

	assert.Equal(t, models.CINone, pr.CIState)
	assert.Equal(t, "No CI", pr.CILabel)
	assert.Empty(t, pr.Checks)
}

func TestNormalize_NoReviewDecisionAwaitsReview(t *testing.T) {
	raw := rawFixture()
	raw.ReviewDecision = ""

	pr := Normalize(context.Background(), raw, models.SourceAuthored, nil)

	assert.Equal(t, models.StatusAwaitingReview, pr.StatusIcon)
}

func TestNormalize_MergedOutranksFailingCI(t *testing.T) {
	raw := rawFixture()
	raw.State = "MERGED"
	raw.Commits.Nodes[0].Commit.StatusCheckRollup.State = "FAILURE"

	pr := Normalize(context.Background(), raw, models.SourceAuthored, nil)

	assert.Equal(t, models.StatusDoneMerged, pr.StatusIcon)
}

func TestNormalize_MergeQueue(t *testing.T) {
	raw := rawFixture()
	raw.MergeQueueEntry = &github.RawMergeQueueEntry{State: "QUEUED", Position: 3}

	pr := Normalize(context.Background(), raw, models.SourceWatched, nil)

	assert.True(t, pr.InMergeQueue)
	require.NotNil(t, pr.MergeQueuePosition)
	assert.Equal(t, 3, *pr.MergeQueuePosition)
	assert.Equal(t, models.StatusQueued, pr.StatusIcon)
}

func TestNormalize_UnknownMergeableUsesResolver(t *testing.T) {
	raw := rawFixture()
	raw.Mergeable = "UNKNOWN"

	var resolvedURL string
	resolve := func(_ context.Context, url string) (models.Mergeable, error) {
		resolvedURL = url
		return models.MergeableConflicting, nil
	}

	pr := Normalize(context.Background(), raw, models.SourceAuthored, resolve)

	assert.Equal(t, raw.URL, resolvedURL)
	assert.Equal(t, models.MergeableConflicting, pr.Mergeable)
	// The resolved value feeds the combined status
	assert.Equal(t, models.StatusConflict, pr.StatusIcon)
}

func TestNormalize_ResolverFailureKeepsRawValue(t *testing.T) {
	raw := rawFixture()
	raw.Mergeable = "UNKNOWN"

	resolve := func(_ context.Context, _ string) (models.Mergeable, error) {
		return models.MergeableNone, errors.New("timeout")
	}

	pr := Normalize(context.Background(), raw, models.SourceAuthored, resolve)

	assert.Equal(t, models.MergeableUnknown, pr.Mergeable)
	// The rest of the PR normalizes fine despite the failed sub-lookup
	assert.Equal(t, models.StatusReady, pr.StatusIcon)
}

func TestNormalize_KnownMergeableSkipsResolver(t *testing.T) {
	raw := rawFixture()

	called := false
	resolve := func(_ context.Context, _ string) (models.Mergeable, error) {
		called = true
		return models.MergeableClean, nil
	}

	Normalize(context.Background(), raw, models.SourceAuthored, resolve)

	assert.False(t, called)
}
