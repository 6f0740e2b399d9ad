package watch

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wahlandcase/attuned.prwatch/internal/github"
	"github.com/wahlandcase/attuned.prwatch/internal/models"
)

func TestConfigStore_FirstLoadWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	store := NewConfigStore(dir)

	cfg, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.RefreshIntervalSeconds)
	assert.Equal(t, "is:pr is:open author:@me", cfg.MyPRsQuery)
	assert.Empty(t, cfg.WatchedPRs)
	assert.Empty(t, cfg.DismissedPRs)

	_, err = os.Stat(filepath.Join(dir, "config.json"))
	assert.NoError(t, err, "defaults are persisted on first run")
}

func TestConfigStore_BackfillsMissingKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"watched_prs": ["https://github.com/o/r/pull/1"]}`), 0644))

	cfg, err := NewConfigStore(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.RefreshIntervalSeconds, "missing interval backfilled")
	assert.Equal(t, "is:pr is:open author:@me", cfg.MyPRsQuery, "missing query backfilled")
	assert.Equal(t, []string{"https://github.com/o/r/pull/1"}, cfg.WatchedPRs, "existing keys kept")
	assert.NotNil(t, cfg.DismissedPRs)
}

func TestConfigStore_AddWatched(t *testing.T) {
	store := NewConfigStore(t.TempDir())
	url := "https://github.com/org/repo/pull/12"

	require.NoError(t, store.AddWatched(url))
	require.NoError(t, store.AddWatched(url), "adding twice is a no-op")

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{url}, cfg.WatchedPRs)
}

func TestConfigStore_AddWatchedRejectsInvalidURL(t *testing.T) {
	dir := t.TempDir()
	store := NewConfigStore(dir)
	_, err := store.Load() // Seed defaults
	require.NoError(t, err)

	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	assert.Error(t, store.AddWatched("https://github.com/org/repo"))
	assert.Error(t, store.AddWatched("gibberish"))

	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after, "rejected input never mutates state")
}

func TestConfigStore_DismissWatchedRemovesFromWatchList(t *testing.T) {
	store := NewConfigStore(t.TempDir())
	url := "https://github.com/org/repo/pull/3"
	require.NoError(t, store.AddWatched(url))

	require.NoError(t, store.Dismiss(url, models.SourceWatched))

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.WatchedPRs)
	assert.Equal(t, []string{url}, cfg.DismissedPRs)
}

func TestConfigStore_DismissAuthoredKeepsWatchList(t *testing.T) {
	store := NewConfigStore(t.TempDir())
	watched := "https://github.com/org/repo/pull/3"
	authored := "https://github.com/org/repo/pull/4"
	require.NoError(t, store.AddWatched(watched))

	require.NoError(t, store.Dismiss(authored, models.SourceAuthored))
	require.NoError(t, store.Dismiss(authored, models.SourceAuthored), "dismissing twice stays deduplicated")

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{watched}, cfg.WatchedPRs)
	assert.Equal(t, []string{authored}, cfg.DismissedPRs)
}

func TestConfigStore_DismissedURLExcludedFromNextBuild(t *testing.T) {
	store := NewConfigStore(t.TempDir())
	url := "https://github.com/org/repo/pull/6"
	require.NoError(t, store.AddWatched(url))
	require.NoError(t, store.Dismiss(url, models.SourceWatched))

	cfg, err := store.Load()
	require.NoError(t, err)

	client := &fakeClient{prs: map[string]github.RawPullRequest{url: openPR(url, 6)}}
	rs := NewBuilder(client).Build(context.Background(), cfg)
	assert.Empty(t, rs.Watched, "dismissal survives even while the URL stays in watched_prs")
	assert.Empty(t, client.fetchCalls)
}

func TestConfig_SaveKeepsAllKeys(t *testing.T) {
	store := NewConfigStore(t.TempDir())
	cfg, err := store.Load()
	require.NoError(t, err)
	require.NoError(t, store.Save(cfg))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	var keys map[string]any
	require.NoError(t, json.Unmarshal(data, &keys))
	for _, key := range []string{"refresh_interval_seconds", "my_prs_query", "watched_prs", "dismissed_prs"} {
		assert.Contains(t, keys, key)
	}
}
