// Package watch implements the refresh/aggregation core: the watch config,
// the normalizer, the result-set builder and the polling scheduler.
package watch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/wahlandcase/attuned.prwatch/internal/models"
)

const (
	defaultRefreshSeconds = 20
	defaultQuery          = "is:pr is:open author:@me"
)

// Config is the persisted watch state (config.json in the data dir). It is
// part of the external contract: missing keys are backfilled from defaults
// on load and never dropped on save.
type Config struct {
	RefreshIntervalSeconds int      `json:"refresh_interval_seconds"`
	MyPRsQuery             string   `json:"my_prs_query"`
	WatchedPRs             []string `json:"watched_prs"`
	DismissedPRs           []string `json:"dismissed_prs"`
}

// DefaultConfig returns the config written on first run
func DefaultConfig() *Config {
	return &Config{
		RefreshIntervalSeconds: defaultRefreshSeconds,
		MyPRsQuery:             defaultQuery,
		WatchedPRs:             []string{},
		DismissedPRs:           []string{},
	}
}

// RefreshInterval returns the polling cadence
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

// backfill fills missing or invalid keys from defaults
func (c *Config) backfill() {
	if c.RefreshIntervalSeconds <= 0 {
		c.RefreshIntervalSeconds = defaultRefreshSeconds
	}
	if c.MyPRsQuery == "" {
		c.MyPRsQuery = defaultQuery
	}
	if c.WatchedPRs == nil {
		c.WatchedPRs = []string{}
	}
	if c.DismissedPRs == nil {
		c.DismissedPRs = []string{}
	}
}

// ConfigStore reads and writes config.json. Mutations are full
// read-modify-write cycles so concurrent writers never see partial updates.
type ConfigStore struct {
	path string
}

// NewConfigStore creates a store rooted at the given data directory
func NewConfigStore(dataDir string) *ConfigStore {
	return &ConfigStore{path: filepath.Join(dataDir, "config.json")}
}

// Path returns the config file location
func (s *ConfigStore) Path() string {
	return s.path
}

// Load reads the config, creating it with defaults on first run
func (s *ConfigStore) Load() (*Config, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			_ = s.Save(cfg) // Best effort save
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.backfill()
	return cfg, nil
}

// Save writes the full config back to disk
func (s *ConfigStore) Save(cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// AddWatched validates and appends a PR URL to the watch list. Invalid
// URLs are rejected without mutating anything.
func (s *ConfigStore) AddWatched(url string) error {
	if _, ok := models.ParsePRURL(url); !ok {
		return fmt.Errorf("not a GitHub PR URL: %q", url)
	}

	cfg, err := s.Load()
	if err != nil {
		return err
	}
	if slices.Contains(cfg.WatchedPRs, url) {
		return nil
	}
	cfg.WatchedPRs = append(cfg.WatchedPRs, url)
	return s.Save(cfg)
}

// Dismiss hides a PR. Watched PRs are also removed from the watch list;
// authored PRs just land on the dismissed list.
func (s *ConfigStore) Dismiss(url string, source models.Source) error {
	cfg, err := s.Load()
	if err != nil {
		return err
	}

	if source == models.SourceWatched {
		cfg.WatchedPRs = slices.DeleteFunc(cfg.WatchedPRs, func(u string) bool {
			return u == url
		})
	}
	if !slices.Contains(cfg.DismissedPRs, url) {
		cfg.DismissedPRs = append(cfg.DismissedPRs, url)
	}
	return s.Save(cfg)
}
