// Package github talks to the GitHub API through the gh CLI.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/wahlandcase/attuned.prwatch/internal/logging"
	"github.com/wahlandcase/attuned.prwatch/internal/models"
)

// DefaultTimeout is the hard budget for any single gh invocation.
// A call past this is treated as a transport failure, never left hanging.
const DefaultTimeout = 30 * time.Second

// CheckAuth verifies gh CLI is authenticated
func CheckAuth() error {
	cmd := exec.Command("gh", "auth", "status")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("not authenticated with GitHub CLI. Run 'gh auth login' first")
	}
	return nil
}

// Client executes PR queries against GitHub via the gh CLI
type Client struct {
	timeout time.Duration
}

// NewClient creates a client with the default call timeout
func NewClient() *Client {
	return &Client{timeout: DefaultTimeout}
}

// run executes gh with the given args under the call timeout
func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "gh", args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("gh %s failed: %s", args[0], msg)
		}
		return nil, fmt.Errorf("gh %s failed: %w", args[0], err)
	}
	return output, nil
}

// SearchAuthored fetches the authored PR set via GraphQL search,
// bounded to the first 50 matches.
func (c *Client) SearchAuthored(ctx context.Context, query string) ([]RawPullRequest, error) {
	escaped := strings.ReplaceAll(query, `"`, `\"`)
	gql := strings.ReplaceAll(searchQuery, "%QUERY%", escaped)

	output, err := c.run(ctx, "api", "graphql", "-f", "query="+gql)
	if err != nil {
		return nil, err
	}
	return decodeSearch(output)
}

func decodeSearch(data []byte) ([]RawPullRequest, error) {
	var resp struct {
		Data struct {
			Search struct {
				Nodes []*RawPullRequest `json:"nodes"`
			} `json:"search"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	// Non-PR search hits come back as empty nodes; drop them
	var prs []RawPullRequest
	for _, node := range resp.Data.Search.Nodes {
		if node == nil || node.URL == "" {
			continue
		}
		prs = append(prs, *node)
	}
	return prs, nil
}

// FetchPR resolves a single PR by owner/repo/number. Returns nil without
// error when the PR no longer exists or the API omits it.
func (c *Client) FetchPR(ctx context.Context, ref models.PRRef) (*RawPullRequest, error) {
	output, err := c.run(ctx, "api", "graphql",
		"-f", "query="+detailQuery,
		"-F", "owner="+ref.Owner,
		"-F", "repo="+ref.Repo,
		"-F", "number="+strconv.Itoa(ref.Number),
	)
	if err != nil {
		return nil, err
	}
	return decodeDetail(output)
}

func decodeDetail(data []byte) (*RawPullRequest, error) {
	var resp struct {
		Data struct {
			Repository struct {
				PullRequest *RawPullRequest `json:"pullRequest"`
			} `json:"repository"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse PR response: %w", err)
	}
	return resp.Data.Repository.PullRequest, nil
}

// ResolveMergeable looks up mergeability through the REST endpoint, which
// is more reliable than the UNKNOWN the GraphQL field frequently reports.
func (c *Client) ResolveMergeable(ctx context.Context, url string) (models.Mergeable, error) {
	ref, ok := models.ParsePRURL(url)
	if !ok {
		return models.MergeableNone, fmt.Errorf("not a PR URL: %q", url)
	}

	output, err := c.run(ctx, "pr", "view",
		strconv.Itoa(ref.Number),
		"--repo", ref.Owner+"/"+ref.Repo,
		"--json", "mergeable",
	)
	if err != nil {
		return models.MergeableNone, err
	}

	var resp struct {
		Mergeable string `json:"mergeable"`
	}
	if err := json.Unmarshal(output, &resp); err != nil {
		return models.MergeableNone, fmt.Errorf("failed to parse mergeable response: %w", err)
	}

	logging.Logger.Debug("resolved mergeable via REST", "url", url, "mergeable", resp.Mergeable)
	return models.Mergeable(resp.Mergeable), nil
}
