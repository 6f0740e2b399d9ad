package watch

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wahlandcase/attuned.prwatch/internal/models"
)

func TestScheduler_FetchesImmediatelyOnStartup(t *testing.T) {
	s := NewScheduler(time.Minute)
	assert.True(t, s.ShouldFetch(time.Now()), "first fetch ignores the interval")
}

func TestScheduler_RespectsInterval(t *testing.T) {
	s := NewScheduler(time.Minute)
	now := time.Now()

	s.BeginFetch(now)
	s.CompleteFetch(&models.ResultSet{FetchedAt: now}, nil)

	assert.False(t, s.ShouldFetch(now.Add(30*time.Second)))
	assert.True(t, s.ShouldFetch(now.Add(61*time.Second)))
}

func TestScheduler_NeverTwoFetchesInFlight(t *testing.T) {
	s := NewScheduler(time.Minute)
	now := time.Now()

	s.BeginFetch(now)
	assert.True(t, s.Fetching())
	assert.False(t, s.ShouldFetch(now.Add(2*time.Minute)), "no second fetch while one is outstanding")

	s.ForceRefresh()
	assert.False(t, s.ShouldFetch(now.Add(2*time.Minute)), "force does not break mutual exclusion")
}

func TestScheduler_ForceCoalescesIntoOneFollowUp(t *testing.T) {
	s := NewScheduler(time.Hour)
	now := time.Now()

	s.BeginFetch(now)
	// Hammer the refresh key while the fetch is outstanding
	s.ForceRefresh()
	s.ForceRefresh()
	s.ForceRefresh()
	s.CompleteFetch(&models.ResultSet{FetchedAt: now}, nil)

	require.True(t, s.ShouldFetch(now), "exactly one follow-up fetch")
	s.BeginFetch(now)
	s.CompleteFetch(&models.ResultSet{FetchedAt: now}, nil)

	assert.False(t, s.ShouldFetch(now), "no further queued fetches")
}

func TestScheduler_FailureLeavesLatestAndSignalsDegraded(t *testing.T) {
	s := NewScheduler(time.Minute)
	now := time.Now()

	good := &models.ResultSet{FetchedAt: now}
	s.BeginFetch(now)
	s.CompleteFetch(good, nil)
	require.True(t, s.TakePublish())

	s.BeginFetch(now.Add(time.Minute))
	s.CompleteFetch(nil, errors.New("gh exploded"))

	assert.False(t, s.Fetching(), "failed fetch still returns to Idle")
	assert.Same(t, good, s.Latest(), "failure leaves latest unchanged")
	assert.True(t, s.Degraded())
	assert.False(t, s.TakePublish(), "failed cycle publishes nothing")

	// A successful cycle clears the degraded signal
	s.BeginFetch(now.Add(2 * time.Minute))
	s.CompleteFetch(&models.ResultSet{FetchedAt: now}, nil)
	assert.False(t, s.Degraded())
}

func TestScheduler_TakePublishFiresOncePerResult(t *testing.T) {
	s := NewScheduler(time.Minute)
	now := time.Now()

	assert.False(t, s.TakePublish(), "nothing published before the first fetch")

	s.BeginFetch(now)
	s.CompleteFetch(&models.ResultSet{FetchedAt: now}, nil)

	assert.True(t, s.TakePublish())
	assert.False(t, s.TakePublish(), "publish flag clears after one read")
}

func TestScheduler_SetIntervalTakesEffectNextCycle(t *testing.T) {
	s := NewScheduler(time.Hour)
	now := time.Now()

	s.BeginFetch(now)
	s.CompleteFetch(&models.ResultSet{FetchedAt: now}, nil)
	assert.False(t, s.ShouldFetch(now.Add(2*time.Minute)))

	s.SetInterval(time.Minute)
	assert.True(t, s.ShouldFetch(now.Add(2*time.Minute)))
}
