// Package snapshot persists the latest ResultSet as JSON for external
// consumers (agents, scripts) reading PR state.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wahlandcase/attuned.prwatch/internal/models"
)

// Snapshot is the external file contract, rewritten wholesale each cycle.
// TotalCount counts open PRs only; AllPRs still carries everything.
type Snapshot struct {
	LastUpdated time.Time            `json:"last_updated"`
	TotalCount  int                  `json:"total_count"`
	MyPRs       []models.PullRequest `json:"my_prs"`
	WatchedPRs  []models.PullRequest `json:"watched_prs"`
	AllPRs      []models.PullRequest `json:"all_prs"`
}

// Store writes snapshots to prs.json in the data directory
type Store struct {
	path string
}

// NewStore creates a store rooted at the given data directory
func NewStore(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, "prs.json")}
}

// Path returns the snapshot file location
func (s *Store) Path() string {
	return s.path
}

// Write replaces the prior snapshot with the given ResultSet. The file is
// written to a temp path and renamed so readers never see a half-written
// snapshot.
func (s *Store) Write(rs *models.ResultSet) error {
	snap := FromResultSet(rs)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".prs-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// FromResultSet builds the snapshot payload for a ResultSet
func FromResultSet(rs *models.ResultSet) Snapshot {
	return Snapshot{
		LastUpdated: rs.FetchedAt,
		TotalCount:  rs.OpenCount(),
		MyPRs:       emptyNotNil(rs.Authored),
		WatchedPRs:  emptyNotNil(rs.Watched),
		AllPRs:      rs.All(),
	}
}

// emptyNotNil keeps empty lists as [] rather than null in the JSON output
func emptyNotNil(prs []models.PullRequest) []models.PullRequest {
	if prs == nil {
		return []models.PullRequest{}
	}
	return prs
}
