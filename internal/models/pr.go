package models

import "time"

// Source indicates how a PR entered the result set
type Source string

const (
	SourceAuthored Source = "authored"
	SourceWatched  Source = "watched"
)

// CIState is the status-check rollup state of the most recent commit
type CIState string

const (
	CISuccess  CIState = "SUCCESS"
	CIFailure  CIState = "FAILURE"
	CIError    CIState = "ERROR"
	CIPending  CIState = "PENDING"
	CIExpected CIState = "EXPECTED"
	CINone     CIState = "" // No commits or no rollup
)

// Failing reports whether CI is in a failing or errored state
func (s CIState) Failing() bool {
	return s == CIFailure || s == CIError
}

// Running reports whether CI is still in progress
func (s CIState) Running() bool {
	return s == CIPending || s == CIExpected
}

// ReviewDecision is the aggregate review gate state
type ReviewDecision string

const (
	ReviewApproved         ReviewDecision = "APPROVED"
	ReviewChangesRequested ReviewDecision = "CHANGES_REQUESTED"
	ReviewRequired         ReviewDecision = "REVIEW_REQUIRED"
	ReviewNone             ReviewDecision = ""
)

// PRState is the PR lifecycle state. MERGED and CLOSED are terminal.
type PRState string

const (
	StateOpen   PRState = "OPEN"
	StateMerged PRState = "MERGED"
	StateClosed PRState = "CLOSED"
)

// Done reports whether the PR reached a terminal state
func (s PRState) Done() bool {
	return s == StateMerged || s == StateClosed
}

// Mergeable is the conflict status reported by GitHub (often stale)
type Mergeable string

const (
	MergeableClean       Mergeable = "MERGEABLE"
	MergeableConflicting Mergeable = "CONFLICTING"
	MergeableUnknown     Mergeable = "UNKNOWN"
	MergeableNone        Mergeable = ""
)

// Check is a single CI check on the PR's head commit. Both GraphQL shapes
// (CheckRun and StatusContext) collapse into this record at normalization.
type Check struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion"`
}

// Failed reports whether this check concluded in failure or error
func (c Check) Failed() bool {
	switch c.Conclusion {
	case "FAILURE", "failure", "ERROR", "error":
		return true
	}
	return false
}

// Review is one review on the PR
type Review struct {
	State  string `json:"state"`
	Author string `json:"author"`
}

// PullRequest is an immutable snapshot of one PR at fetch time. The JSON
// tags are the snapshot contract consumed by external agents.
type PullRequest struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Repo      string    `json:"repo"`
	RepoShort string    `json:"repo_short"`
	IsDraft   bool      `json:"isDraft"`
	State     PRState   `json:"state"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Mergeable          Mergeable `json:"mergeable,omitempty"`
	InMergeQueue       bool      `json:"in_merge_queue"`
	MergeQueuePosition *int      `json:"merge_queue_position,omitempty"`

	CIState CIState `json:"ci_state,omitempty"`
	CIIcon  string  `json:"ci_icon"`
	CILabel string  `json:"ci_label"`

	ReviewDecision ReviewDecision `json:"review_decision,omitempty"`
	ReviewIcon     string         `json:"review_icon"`
	ReviewLabel    string         `json:"review_label"`

	StatusIcon StatusIcon `json:"status_icon"`

	Checks  []Check  `json:"checks"`
	Reviews []Review `json:"reviews"`
	Labels  []string `json:"labels"`

	Source Source `json:"source"`
	Author string `json:"author,omitempty"`
}

// FailingChecks returns the checks that concluded in failure or error
func (pr *PullRequest) FailingChecks() []Check {
	var failed []Check
	for _, c := range pr.Checks {
		if c.Failed() {
			failed = append(failed, c)
		}
	}
	return failed
}
