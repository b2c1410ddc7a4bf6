package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSleepCtx_SleepsFullDuration(t *testing.T) {
	t.Parallel()

	start := time.Now()

	err := SleepCtx(t.Context(), 20*time.Millisecond)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSleepCtx_ZeroDuration(t *testing.T) {
	t.Parallel()

	require.NoError(t, SleepCtx(t.Context(), 0))
	require.NoError(t, SleepCtx(t.Context(), -time.Second))
}

func TestSleepCtx_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	start := time.Now()

	err := SleepCtx(ctx, time.Second)

	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}
