package watch

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wahlandcase/attuned.prwatch/internal/github"
	"github.com/wahlandcase/attuned.prwatch/internal/logging"
	"github.com/wahlandcase/attuned.prwatch/internal/models"
)

// watchFetchLimit bounds how many watched PRs are fetched concurrently
const watchFetchLimit = 4

// RemoteClient is the PR data source contract the builder depends on
type RemoteClient interface {
	SearchAuthored(ctx context.Context, query string) ([]github.RawPullRequest, error)
	FetchPR(ctx context.Context, ref models.PRRef) (*github.RawPullRequest, error)
	ResolveMergeable(ctx context.Context, url string) (models.Mergeable, error)
}

// Builder assembles one ResultSet per fetch cycle. It has no side effects
// beyond network reads and never mutates the config it is given.
type Builder struct {
	client RemoteClient
}

// NewBuilder creates a builder backed by the given client
func NewBuilder(client RemoteClient) *Builder {
	return &Builder{client: client}
}

// Build fetches and normalizes the authored and watched sets. A transport
// failure on either side yields an empty set for that side, never an error
// for the whole build.
func (b *Builder) Build(ctx context.Context, cfg *Config) models.ResultSet {
	authored := b.buildAuthored(ctx, cfg.MyPRsQuery)
	watched := b.buildWatched(ctx, cfg, authored)

	return models.ResultSet{
		Authored:  authored,
		Watched:   watched,
		FetchedAt: time.Now().UTC(),
	}
}

func (b *Builder) buildAuthored(ctx context.Context, query string) []models.PullRequest {
	raws, err := b.client.SearchAuthored(ctx, query)
	if err != nil {
		logging.Logger.Warn("authored search failed", "error", err)
		return nil
	}

	var prs []models.PullRequest
	for _, raw := range raws {
		prs = append(prs, Normalize(ctx, raw, models.SourceAuthored, b.client.ResolveMergeable))
	}
	return prs
}

func (b *Builder) buildWatched(ctx context.Context, cfg *Config, authored []models.PullRequest) []models.PullRequest {
	dismissed := make(map[string]bool, len(cfg.DismissedPRs))
	for _, url := range cfg.DismissedPRs {
		dismissed[url] = true
	}
	authoredURLs := make(map[string]bool, len(authored))
	for _, pr := range authored {
		authoredURLs[pr.URL] = true
	}

	type target struct {
		url string
		ref models.PRRef
	}
	var targets []target
	for _, url := range cfg.WatchedPRs {
		if dismissed[url] {
			continue
		}
		ref, ok := models.ParsePRURL(url)
		if !ok {
			logging.Logger.Debug("skipping malformed watch URL", "url", url)
			continue
		}
		targets = append(targets, target{url: url, ref: ref})
	}

	// Fetch in parallel but keep watch-list order in the result
	results := make([]*models.PullRequest, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(watchFetchLimit)
	for i, t := range targets {
		g.Go(func() error {
			raw, err := b.client.FetchPR(gctx, t.ref)
			if err != nil {
				logging.Logger.Warn("watched PR fetch failed", "url", t.url, "error", err)
				return nil
			}
			if raw == nil {
				logging.Logger.Debug("watched PR no longer exists", "url", t.url)
				return nil
			}
			pr := Normalize(gctx, *raw, models.SourceWatched, b.client.ResolveMergeable)
			results[i] = &pr
			return nil
		})
	}
	_ = g.Wait() // Workers only log; they never return errors

	var watched []models.PullRequest
	for _, pr := range results {
		if pr == nil {
			continue
		}
		// Authored copy wins when the same URL shows up in both sets
		if authoredURLs[pr.URL] {
			continue
		}
		watched = append(watched, *pr)
	}
	return watched
}
