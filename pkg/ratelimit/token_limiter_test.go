package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenLimiter_ConsumesWithinBudget(t *testing.T) {
	l := NewTokenLimiter(100)
	assert.Equal(t, 100, l.GetRemaining())

	require.NoError(t, l.Wait(context.Background(), 30))
	assert.Equal(t, 70, l.GetRemaining())

	require.NoError(t, l.Wait(context.Background(), 70))
	assert.Equal(t, 0, l.GetRemaining())
}

func TestTokenLimiter_OversizedRequestPassesOnFreshWindow(t *testing.T) {
	l := NewTokenLimiter(10)

	// Larger than the whole budget, but the window is untouched.
	require.NoError(t, l.Wait(context.Background(), 50))
	assert.Equal(t, 0, l.GetRemaining())
}

func TestTokenLimiter_BlockedWaitHonorsContext(t *testing.T) {
	l := NewTokenLimiter(10)
	require.NoError(t, l.Wait(context.Background(), 10))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx, 5)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
