package models

import "time"

// ResultSet is the atomic unit published each fetch cycle. It is created
// fresh by the builder and immutable once published.
type ResultSet struct {
	Authored  []PullRequest
	Watched   []PullRequest
	FetchedAt time.Time
}

// All returns authored followed by watched PRs
func (rs *ResultSet) All() []PullRequest {
	all := make([]PullRequest, 0, len(rs.Authored)+len(rs.Watched))
	all = append(all, rs.Authored...)
	all = append(all, rs.Watched...)
	return all
}

// OpenCount counts PRs still in the OPEN state
func (rs *ResultSet) OpenCount() int {
	count := 0
	for _, pr := range rs.All() {
		if pr.State == StateOpen {
			count++
		}
	}
	return count
}

// FailingCount counts open PRs whose CI is failing or errored
func (rs *ResultSet) FailingCount() int {
	count := 0
	for _, pr := range rs.All() {
		if pr.State == StateOpen && pr.CIState.Failing() {
			count++
		}
	}
	return count
}

// BlockedCount counts open PRs with changes requested
func (rs *ResultSet) BlockedCount() int {
	count := 0
	for _, pr := range rs.All() {
		if pr.State == StateOpen && pr.ReviewDecision == ReviewChangesRequested {
			count++
		}
	}
	return count
}
