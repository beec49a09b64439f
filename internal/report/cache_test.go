package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terracart/terracart/internal/impact/timeline"
)

func testReport(userID string, tf timeline.Timeframe) *Report {
	return &Report{
		ID:               "01TESTREPORT",
		UserID:           userID,
		Timeframe:        tf,
		TotalCarbonSaved: 12,
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss on empty cache", func(t *testing.T) {
		cache := NewMemoryCache(time.Minute)
		_, err := cache.Get(ctx, "u1", timeline.TimeframeMonth)
		require.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("set then get", func(t *testing.T) {
		cache := NewMemoryCache(time.Minute)
		rep := testReport("u1", timeline.TimeframeMonth)
		require.NoError(t, cache.Set(ctx, rep))

		got, err := cache.Get(ctx, "u1", timeline.TimeframeMonth)
		require.NoError(t, err)
		assert.Equal(t, rep, got)
	})

	t.Run("keys are scoped by timeframe", func(t *testing.T) {
		cache := NewMemoryCache(time.Minute)
		require.NoError(t, cache.Set(ctx, testReport("u1", timeline.TimeframeMonth)))

		_, err := cache.Get(ctx, "u1", timeline.TimeframeYear)
		require.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("expired entries miss", func(t *testing.T) {
		cache := NewMemoryCache(time.Minute)
		current := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		cache.now = func() time.Time { return current }

		require.NoError(t, cache.Set(ctx, testReport("u1", timeline.TimeframeMonth)))

		current = current.Add(30 * time.Second)
		_, err := cache.Get(ctx, "u1", timeline.TimeframeMonth)
		require.NoError(t, err, "unexpired entry should be served")

		current = current.Add(time.Minute)
		_, err = cache.Get(ctx, "u1", timeline.TimeframeMonth)
		require.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("invalidate drops every timeframe for the user", func(t *testing.T) {
		cache := NewMemoryCache(time.Minute)
		for _, tf := range timeline.Timeframes() {
			require.NoError(t, cache.Set(ctx, testReport("u1", tf)))
		}
		require.NoError(t, cache.Set(ctx, testReport("u2", timeline.TimeframeMonth)))

		require.NoError(t, cache.InvalidateUser(ctx, "u1"))

		for _, tf := range timeline.Timeframes() {
			_, err := cache.Get(ctx, "u1", tf)
			assert.ErrorIs(t, err, ErrCacheMiss, "timeframe %s", tf)
		}

		_, err := cache.Get(ctx, "u2", timeline.TimeframeMonth)
		assert.NoError(t, err, "other users must be untouched")
	})

	t.Run("invalidate is idempotent", func(t *testing.T) {
		cache := NewMemoryCache(time.Minute)
		require.NoError(t, cache.InvalidateUser(ctx, "ghost"))
	})
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "impact:report:u1:month", cacheKey("u1", timeline.TimeframeMonth))
	assert.NotEqual(t,
		cacheKey("u1", timeline.TimeframeYear),
		cacheKey("u1", timeline.TimeframeAll),
	)
}
