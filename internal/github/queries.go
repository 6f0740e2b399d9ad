package github

// searchQuery fetches the authored set in one round trip, bounded to the
// first 50 matches. %QUERY% is replaced with the configured search string.
const searchQuery = `
{
  search(query: "%QUERY%", type: ISSUE, first: 50) {
    nodes {
      ... on PullRequest {
        number
        title
        url
        isDraft
        state
        createdAt
        updatedAt
        mergeable
        repository {
          nameWithOwner
        }
        reviewDecision
        commits(last: 1) {
          nodes {
            commit {
              statusCheckRollup {
                state
                contexts(first: 100) {
                  nodes {
                    ... on CheckRun {
                      name
                      conclusion
                      status
                    }
                    ... on StatusContext {
                      context
                      state
                    }
                  }
                }
              }
            }
          }
        }
        mergeQueueEntry { state position }
        autoMergeRequest { enabledAt }
        reviews(last: 10) {
          nodes {
            state
            author { login }
          }
        }
        labels(first: 10) {
          nodes { name }
        }
      }
    }
  }
}
`

// detailQuery resolves a single watched PR by owner/repo/number
const detailQuery = `
query($owner: String!, $repo: String!, $number: Int!) {
  repository(owner: $owner, name: $repo) {
    pullRequest(number: $number) {
      number
      title
      url
      isDraft
      state
      createdAt
      updatedAt
      mergeable
      author { login }
      repository {
        nameWithOwner
      }
      reviewDecision
      commits(last: 1) {
        nodes {
          commit {
            statusCheckRollup {
              state
              contexts(first: 100) {
                nodes {
                  ... on CheckRun {
                    name
                    conclusion
                    status
                  }
                  ... on StatusContext {
                    context
                    state
                  }
                }
              }
            }
          }
        }
      }
      mergeQueueEntry { state position }
      autoMergeRequest { enabledAt }
      reviews(last: 10) {
        nodes {
          state
          author { login }
        }
      }
      labels(first: 10) {
        nodes { name }
      }
    }
  }
}
`
