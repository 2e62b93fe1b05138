package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCadenceMapping(t *testing.T) {
	cases := []struct {
		schedule string
		spec     string
		id       string
	}{
		{"hourly", "0 * * * *", "scraper_hourly"},
		{"every_6_hours", "0 */6 * * *", "scraper_6h"},
		{"every_12_hours", "0 */12 * * *", "scraper_12h"},
		{"twice_daily", "0 6,18 * * *", "scraper_twice"},
		{"daily", "0 2 * * *", "scraper_daily"},
		{"nonsense", "0 2 * * *", "scraper_daily"}, // unknown falls back to daily
	}

	for _, tc := range cases {
		spec, id, name := cadence(tc.schedule)
		assert.Equal(t, tc.spec, spec, tc.schedule)
		assert.Equal(t, tc.id, id, tc.schedule)
		assert.NotEmpty(t, name)
	}
}

func TestStartIsIdempotent(t *testing.T) {
	var runs atomic.Int32
	s := New(func(context.Context) error {
		runs.Add(1)
		return nil
	})
	defer s.Stop()

	require.NoError(t, s.Start(Config{Schedule: "daily"}))
	st := s.Status()
	require.True(t, st.Running)
	require.Len(t, st.Jobs, 1)
	first := st.Jobs[0]

	// second start is a no-op: same job, still running
	require.NoError(t, s.Start(Config{Schedule: "hourly"}))
	again := s.Status()
	assert.Equal(t, first.ID, again.Jobs[0].ID)
}

func TestStopIsIdempotent(t *testing.T) {
	s := New(func(context.Context) error { return nil })
	require.NoError(t, s.Start(Config{Schedule: "daily"}))

	s.Stop()
	assert.False(t, s.Status().Running)

	s.Stop() // no-op, no panic
	assert.False(t, s.Status().Running)
}

func TestRunOnStartupFiresSynchronously(t *testing.T) {
	var runs atomic.Int32
	s := New(func(context.Context) error {
		runs.Add(1)
		return nil
	})
	defer s.Stop()

	require.NoError(t, s.Start(Config{Schedule: "daily", RunOnStartup: true}))
	assert.Equal(t, int32(1), runs.Load())
}

func TestStatusReportsNextFire(t *testing.T) {
	s := New(func(context.Context) error { return nil })
	defer s.Stop()

	require.NoError(t, s.Start(Config{Schedule: "hourly"}))

	st := s.Status()
	require.True(t, st.Running)
	require.Len(t, st.Jobs, 1)
	job := st.Jobs[0]
	assert.Equal(t, "scraper_hourly", job.ID)
	assert.Equal(t, "Hourly Scraper", job.Name)
	require.NotNil(t, job.NextRun)
	assert.True(t, job.NextRun.After(time.Now()))
	assert.True(t, job.NextRun.Before(time.Now().Add(61*time.Minute)))
}

func TestStatusWhenStopped(t *testing.T) {
	s := New(func(context.Context) error { return nil })
	st := s.Status()
	assert.False(t, st.Running)
	assert.Empty(t, st.Jobs)
}
