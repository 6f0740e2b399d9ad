package github

import "time"

// RawPullRequest mirrors the GraphQL PullRequest node shape returned by
// both the search and detail queries.
type RawPullRequest struct {
	Number         int        `json:"number"`
	Title          string     `json:"title"`
	URL            string     `json:"url"`
	IsDraft        bool       `json:"isDraft"`
	State          string     `json:"state"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	Mergeable      string     `json:"mergeable"`
	Author         *RawActor  `json:"author"`
	Repository     RawRepo    `json:"repository"`
	ReviewDecision string     `json:"reviewDecision"`
	Commits        RawCommits `json:"commits"`

	MergeQueueEntry  *RawMergeQueueEntry `json:"mergeQueueEntry"`
	AutoMergeRequest *RawAutoMerge       `json:"autoMergeRequest"`

	Reviews struct {
		Nodes []RawReview `json:"nodes"`
	} `json:"reviews"`

	Labels struct {
		Nodes []RawLabel `json:"nodes"`
	} `json:"labels"`
}

type RawLabel struct {
	Name string `json:"name"`
}

type RawActor struct {
	Login string `json:"login"`
}

type RawRepo struct {
	NameWithOwner string `json:"nameWithOwner"`
}

type RawCommits struct {
	Nodes []RawCommitNode `json:"nodes"`
}

type RawCommitNode struct {
	Commit RawCommit `json:"commit"`
}

type RawCommit struct {
	StatusCheckRollup *RawRollup `json:"statusCheckRollup"`
}

// Rollup returns the status-check rollup of the most recent commit, or nil
func (c RawCommits) Rollup() *RawRollup {
	if len(c.Nodes) == 0 {
		return nil
	}
	return c.Nodes[0].Commit.StatusCheckRollup
}

type RawRollup struct {
	State    string `json:"state"`
	Contexts struct {
		Nodes []RawCheckContext `json:"nodes"`
	} `json:"contexts"`
}

// RawCheckContext is the union of the two check shapes GitHub returns.
// A CheckRun populates Name/Status/Conclusion; a StatusContext populates
// Context/State. Exactly one Name/Context pair is non-empty per node.
type RawCheckContext struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion"`

	Context string `json:"context"`
	State   string `json:"state"`
}

type RawMergeQueueEntry struct {
	State    string `json:"state"`
	Position int    `json:"position"`
}

type RawAutoMerge struct {
	EnabledAt time.Time `json:"enabledAt"`
}

type RawReview struct {
	State  string    `json:"state"`
	Author *RawActor `json:"author"`
}
