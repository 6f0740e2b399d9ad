package watch

import (
	"time"

	"github.com/wahlandcase/attuned.prwatch/internal/logging"
	"github.com/wahlandcase/attuned.prwatch/internal/models"
)

// Scheduler owns the polling state machine: Idle or Fetching, never more
// than one fetch in flight. It is driven from a single goroutine (the UI
// tick); the background fetch itself runs elsewhere and hands its result
// back through CompleteFetch.
type Scheduler struct {
	interval time.Duration

	fetching       bool
	forcePending   bool
	lastFetch      time.Time
	latest         *models.ResultSet
	degraded       bool
	publishPending bool
}

// NewScheduler creates a scheduler that fetches immediately on the first
// tick regardless of the interval.
func NewScheduler(interval time.Duration) *Scheduler {
	return &Scheduler{
		interval:     interval,
		forcePending: true,
	}
}

// SetInterval updates the polling cadence, effective from the next cycle
func (s *Scheduler) SetInterval(interval time.Duration) {
	s.interval = interval
}

// ShouldFetch reports whether a new fetch should launch now. False while
// a fetch is outstanding, whatever the force flag says.
func (s *Scheduler) ShouldFetch(now time.Time) bool {
	if s.fetching {
		return false
	}
	return s.forcePending || now.Sub(s.lastFetch) >= s.interval
}

// BeginFetch transitions to Fetching and clears the force flag
func (s *Scheduler) BeginFetch(now time.Time) {
	s.fetching = true
	s.forcePending = false
	s.lastFetch = now
}

// CompleteFetch transitions back to Idle. On failure latest stays
// unchanged and the scheduler reports degraded until a cycle succeeds.
func (s *Scheduler) CompleteFetch(rs *models.ResultSet, err error) {
	s.fetching = false
	if err != nil {
		logging.Logger.Warn("fetch cycle failed", "error", err)
		s.degraded = true
		return
	}
	s.latest = rs
	s.degraded = false
	s.publishPending = true
}

// ForceRefresh requests a fetch on the next tick. Requests arriving while
// a fetch is outstanding coalesce into one follow-up cycle.
func (s *Scheduler) ForceRefresh() {
	s.forcePending = true
}

// Latest returns the most recently published ResultSet, or nil before the
// first successful cycle.
func (s *Scheduler) Latest() *models.ResultSet {
	return s.latest
}

// Fetching reports whether a fetch is in flight
func (s *Scheduler) Fetching() bool {
	return s.fetching
}

// Degraded reports whether the last cycle failed
func (s *Scheduler) Degraded() bool {
	return s.degraded
}

// TakePublish returns true once per newly published ResultSet, clearing
// the publish flag.
func (s *Scheduler) TakePublish() bool {
	if !s.publishPending {
		return false
	}
	s.publishPending = false
	return true
}
