package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_DailyLimit(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1000, 1000, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, rl.Wait(ctx))
	}

	err := rl.Wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDailyLimitReached)
	assert.Equal(t, int64(3), rl.DailyCount())
	assert.Equal(t, int64(0), rl.Remaining())
}

func TestRateLimiter_WindowReset(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1000, 1000, 2, WithRateLimiterNowFunc(func() time.Time {
		return now
	}))
	ctx := context.Background()

	require.NoError(t, rl.Wait(ctx))
	require.NoError(t, rl.Wait(ctx))
	require.ErrorIs(t, rl.Wait(ctx), ErrDailyLimitReached)

	// Advancing past the 24-hour window reopens the quota.
	now = now.Add(25 * time.Hour)
	require.NoError(t, rl.Wait(ctx))
	assert.Equal(t, int64(1), rl.DailyCount())
}

func TestRateLimiter_ContextCancellation(t *testing.T) {
	t.Parallel()

	// Zero burst means Wait can never succeed immediately.
	rl := NewRateLimiter(0.001, 1, 100)
	ctx := context.Background()
	require.NoError(t, rl.Wait(ctx))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	assert.Error(t, rl.Wait(canceled))
}

func TestRateLimiter_ResetAt(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1, 10, WithRateLimiterNowFunc(func() time.Time {
		return now
	}))

	assert.Equal(t, now.Add(24*time.Hour), rl.ResetAt())
}
