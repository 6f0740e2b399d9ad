// Package status holds the pure derivation rules that reduce a PR's remote
// signals into icons and human labels.
package status

import "github.com/wahlandcase/attuned.prwatch/internal/models"

// Combined reduces the five independent signals into one status by strict
// priority: first match wins. Terminal lifecycle states and merge-queue
// membership outrank everything; a CI failure outranks any review state.
func Combined(ci models.CIState, review models.ReviewDecision, state models.PRState, inMergeQueue bool, mergeable models.Mergeable) models.StatusIcon {
	switch {
	case state == models.StateMerged:
		return models.StatusDoneMerged
	case state == models.StateClosed:
		return models.StatusDoneClosed
	case inMergeQueue:
		return models.StatusQueued
	case mergeable == models.MergeableConflicting:
		return models.StatusConflict
	case ci.Failing():
		return models.StatusFailing
	case review == models.ReviewChangesRequested:
		return models.StatusBlocked
	case ci.Running():
		return models.StatusRunning
	case ci == models.CISuccess && (review == models.ReviewRequired || review == models.ReviewNone):
		return models.StatusAwaitingReview
	case ci == models.CISuccess && review == models.ReviewApproved:
		return models.StatusReady
	default:
		return models.StatusUnknown
	}
}

// CIIcon maps a CI state to its own icon, independent of the combined status
func CIIcon(state models.CIState) string {
	switch state {
	case models.CISuccess:
		return "✅"
	case models.CIFailure, models.CIError:
		return "❌"
	case models.CIPending, models.CIExpected:
		return "🟡"
	default:
		return "⚪"
	}
}

// CILabel is the human label for the detail line
func CILabel(state models.CIState) string {
	switch state {
	case models.CISuccess:
		return "CI green"
	case models.CIFailure:
		return "CI failing"
	case models.CIError:
		return "CI error"
	case models.CIPending, models.CIExpected:
		return "CI running"
	case models.CINone:
		return "No CI"
	default:
		return "Unknown"
	}
}

// ReviewIcon maps a review decision to its own icon
func ReviewIcon(decision models.ReviewDecision) string {
	switch decision {
	case models.ReviewApproved:
		return "✅"
	case models.ReviewChangesRequested:
		return "🔴"
	case models.ReviewRequired:
		return "👀"
	default:
		return "—"
	}
}

// ReviewLabel is the human label for the detail line
func ReviewLabel(decision models.ReviewDecision) string {
	switch decision {
	case models.ReviewApproved:
		return "Approved"
	case models.ReviewChangesRequested:
		return "Changes requested"
	case models.ReviewRequired:
		return "Needs review"
	case models.ReviewNone:
		return "No reviews"
	default:
		return "Unknown"
	}
}
