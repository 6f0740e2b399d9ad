package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchFixture = `{
  "data": {
    "search": {
      "nodes": [
        {
          "number": 101,
          "title": "Speed up cold start",
          "url": "https://github.com/org/api/pull/101",
          "isDraft": false,
          "state": "OPEN",
          "mergeable": "UNKNOWN",
          "repository": {"nameWithOwner": "org/api"},
          "reviewDecision": "REVIEW_REQUIRED",
          "commits": {
            "nodes": [
              {
                "commit": {
                  "statusCheckRollup": {
                    "state": "PENDING",
                    "contexts": {
                      "nodes": [
                        {"name": "test", "status": "IN_PROGRESS", "conclusion": null},
                        {"context": "ci/build", "state": "SUCCESS"}
                      ]
                    }
                  }
                }
              }
            ]
          },
          "mergeQueueEntry": null,
          "autoMergeRequest": null,
          "reviews": {"nodes": [{"state": "COMMENTED", "author": {"login": "jo"}}]},
          "labels": {"nodes": [{"name": "perf"}]}
        },
        {}
      ]
    }
  }
}`

func TestDecodeSearch(t *testing.T) {
	prs, err := decodeSearch([]byte(searchFixture))
	require.NoError(t, err)
	require.Len(t, prs, 1, "empty non-PR search nodes are dropped")

	pr := prs[0]
	assert.Equal(t, 101, pr.Number)
	assert.Equal(t, "org/api", pr.Repository.NameWithOwner)
	assert.Equal(t, "UNKNOWN", pr.Mergeable)
	assert.Equal(t, "REVIEW_REQUIRED", pr.ReviewDecision)
	assert.Nil(t, pr.MergeQueueEntry)

	rollup := pr.Commits.Rollup()
	require.NotNil(t, rollup)
	assert.Equal(t, "PENDING", rollup.State)
	require.Len(t, rollup.Contexts.Nodes, 2)
	assert.Equal(t, "test", rollup.Contexts.Nodes[0].Name)
	assert.Equal(t, "ci/build", rollup.Contexts.Nodes[1].Context)
	assert.Equal(t, "SUCCESS", rollup.Contexts.Nodes[1].State)

	require.Len(t, pr.Reviews.Nodes, 1)
	assert.Equal(t, "jo", pr.Reviews.Nodes[0].Author.Login)
	require.Len(t, pr.Labels.Nodes, 1)
	assert.Equal(t, "perf", pr.Labels.Nodes[0].Name)
}

func TestDecodeSearch_Malformed(t *testing.T) {
	_, err := decodeSearch([]byte("gh: unexpected output"))
	assert.Error(t, err)
}

func TestDecodeDetail(t *testing.T) {
	fixture := `{
	  "data": {
	    "repository": {
	      "pullRequest": {
	        "number": 7,
	        "title": "Fix flaky test",
	        "url": "https://github.com/org/api/pull/7",
	        "state": "OPEN",
	        "mergeable": "MERGEABLE",
	        "author": {"login": "alex"},
	        "repository": {"nameWithOwner": "org/api"},
	        "mergeQueueEntry": {"state": "QUEUED", "position": 2}
	      }
	    }
	  }
	}`

	pr, err := decodeDetail([]byte(fixture))
	require.NoError(t, err)
	require.NotNil(t, pr)
	assert.Equal(t, 7, pr.Number)
	assert.Equal(t, "alex", pr.Author.Login)
	require.NotNil(t, pr.MergeQueueEntry)
	assert.Equal(t, 2, pr.MergeQueueEntry.Position)
}

func TestDecodeDetail_AbsentPR(t *testing.T) {
	pr, err := decodeDetail([]byte(`{"data": {"repository": {"pullRequest": null}}}`))
	require.NoError(t, err)
	assert.Nil(t, pr, "deleted PRs come back absent, not as an error")
}

func TestCommitsRollup_Empty(t *testing.T) {
	var commits RawCommits
	assert.Nil(t, commits.Rollup())
}
