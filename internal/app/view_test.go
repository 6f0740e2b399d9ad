package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wahlandcase/attuned.prwatch/internal/models"
)

func TestDetailLine_CIAndReviewLabels(t *testing.T) {
	pr := models.PullRequest{
		State:       models.StateOpen,
		CILabel:     "CI green",
		ReviewLabel: "Needs review",
		UpdatedAt:   time.Now().Add(-5 * time.Minute),
	}

	assert.Equal(t, "CI green · Needs review · 5m ago", detailLine(pr))
}

func TestDetailLine_MergeQueuePositionWins(t *testing.T) {
	pos := 2
	pr := models.PullRequest{
		State:              models.StateOpen,
		InMergeQueue:       true,
		MergeQueuePosition: &pos,
		CILabel:            "CI green",
		ReviewLabel:        "Approved",
	}

	assert.Equal(t, "Merge queue #2", detailLine(pr))
}

func TestDetailLine_ConflictsWin(t *testing.T) {
	pr := models.PullRequest{
		State:       models.StateOpen,
		Mergeable:   models.MergeableConflicting,
		CILabel:     "CI green",
		ReviewLabel: "Approved",
	}

	assert.Equal(t, "Has conflicts", detailLine(pr))
}

func TestDetailLine_WatchedShowsAuthorAndFailingChecks(t *testing.T) {
	pr := models.PullRequest{
		State:       models.StateOpen,
		Source:      models.SourceWatched,
		Author:      "sam",
		CILabel:     "CI failing",
		ReviewLabel: "No reviews",
		Checks: []models.Check{
			{Name: "unit", Conclusion: "FAILURE"},
			{Name: "lint", Conclusion: "SUCCESS"},
			{Name: "e2e", Conclusion: "FAILURE"},
			{Name: "docs", Conclusion: "failure"},
			{Name: "extra", Conclusion: "FAILURE"},
		},
	}

	line := detailLine(pr)
	assert.Contains(t, line, "by sam")
	assert.Contains(t, line, "✕ unit, e2e, docs", "only the first three failing checks are named")
	assert.NotContains(t, line, "extra")
}

func TestDetailLine_EmptyForTerminalStates(t *testing.T) {
	assert.Empty(t, detailLine(models.PullRequest{State: models.StateMerged}))
	assert.Empty(t, detailLine(models.PullRequest{State: models.StateClosed}))
}
