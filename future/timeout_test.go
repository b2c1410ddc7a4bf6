package future

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irrustible/async/utils"
)

func TestWithTimeout_CompletesInTime(t *testing.T) {
	t.Parallel()

	fut := GoContext(t.Context(), func(ctx context.Context) (int, error) {
		if err := utils.SleepCtx(ctx, 100*time.Millisecond); err != nil {
			return 0, err
		}

		return 42, nil
	})

	result, err := WithTimeout(fut, 250*time.Millisecond).Await()

	require.NoError(t, err)

	value, present := result.Get()
	assert.True(t, present)
	assert.Equal(t, 42, value)
}

func TestWithTimeout_DeadlineFirst(t *testing.T) {
	t.Parallel()

	fut := GoContext(t.Context(), func(ctx context.Context) (int, error) {
		if err := utils.SleepCtx(ctx, 250*time.Millisecond); err != nil {
			return 0, err
		}

		return 24, nil
	})

	result, err := WithTimeout(fut, 100*time.Millisecond).Await()

	require.NoError(t, err)
	assert.True(t, result.Empty())
}

func TestWithTimeout_ExactResultPassedThrough(t *testing.T) {
	t.Parallel()

	fut := Go(func() (string, error) {
		return "exactly this", nil
	})

	result, err := WithTimeout(fut, time.Second).Await()

	require.NoError(t, err)
	assert.Equal(t, "exactly this", result.GetOrElse(""))
}

func TestWithTimeout_ZeroDuration(t *testing.T) {
	t.Parallel()

	fut := Go(func() (int, error) {
		return 42, nil
	})

	result, err := WithTimeout(fut, 0).Await()

	require.NoError(t, err)
	assert.True(t, result.Empty())
}

func TestWithTimeout_TieGoesToTimeout(t *testing.T) {
	t.Parallel()

	// The inner future is resolved before the combinator is even
	// constructed, but the deadline is ready in the same step and the
	// timer is checked first, so the timeout still wins.
	fut := NewSuccessful(42)

	result, err := WithTimeout(fut, 0).Await()

	require.NoError(t, err)
	assert.True(t, result.Empty())
}

func TestWithTimeout_NegativeDuration(t *testing.T) {
	t.Parallel()

	fut := NewSuccessful(1)

	result, err := WithTimeout(fut, -time.Second).Await()

	require.NoError(t, err)
	assert.True(t, result.Empty())
}

func TestWithTimeout_ErrorPassedThrough(t *testing.T) {
	t.Parallel()

	fut := Go(func() (int, error) {
		return 0, errTest
	})

	result, err := WithTimeout(fut, time.Second).Await()

	require.Error(t, err)
	assert.Equal(t, errTest, err)
	assert.True(t, result.Empty())
}

func TestWithTimeout_LateFulfillment(t *testing.T) {
	t.Parallel()

	fut, promise := New[int]()

	timed := WithTimeout(fut, 20*time.Millisecond)

	// Fulfill well after the deadline has fired.
	time.Sleep(60 * time.Millisecond)
	promise.Success(7)

	result, err := timed.Await()

	require.NoError(t, err)
	assert.True(t, result.Empty())

	// The inner future itself still resolved normally.
	inner, err := fut.Await()
	require.NoError(t, err)
	assert.Equal(t, 7, inner)
}

func TestWithTimeout_InnerKeepsRunning(t *testing.T) {
	t.Parallel()

	fut := Go(func() (int, error) {
		time.Sleep(50 * time.Millisecond)

		return 99, nil
	})

	result, err := WithTimeout(fut, 10*time.Millisecond).Await()

	require.NoError(t, err)
	assert.True(t, result.Empty())

	// Timing out abandons the race, not the computation.
	inner, err := fut.Await()
	require.NoError(t, err)
	assert.Equal(t, 99, inner)
}

func TestWithTimeout_ResolvesPromptly(t *testing.T) {
	t.Parallel()

	start := time.Now()

	fut := Go(func() (int, error) {
		return 1, nil
	})

	_, err := WithTimeout(fut, 5*time.Second).Await()

	require.NoError(t, err)

	// A fast computation must not wait out the deadline.
	assert.Less(t, time.Since(start), time.Second)
}

func TestWithTimeout_ConcurrentAwaiters(t *testing.T) {
	t.Parallel()

	fut := Go(func() (int, error) {
		time.Sleep(10 * time.Millisecond)

		return 5, nil
	})

	timed := WithTimeout(fut, time.Second)

	const numGoroutines = 8
	done := make(chan bool, numGoroutines)

	for range numGoroutines {
		go func() {
			result, err := timed.Await()
			assert.NoError(t, err)
			assert.Equal(t, 5, result.GetOrElse(0))
			done <- true
		}()
	}

	for range numGoroutines {
		<-done
	}
}

func TestWithTimeoutContext_Success(t *testing.T) {
	t.Parallel()

	fut := Go(func() (int, error) {
		return 42, nil
	})

	result, err := WithTimeoutContext(t.Context(), fut, time.Second).Await()

	require.NoError(t, err)
	assert.Equal(t, 42, result.GetOrElse(0))
}

func TestWithTimeoutContext_DeadlineFirst(t *testing.T) {
	t.Parallel()

	fut := GoContext(t.Context(), func(ctx context.Context) (int, error) {
		if err := utils.SleepCtx(ctx, 100*time.Millisecond); err != nil {
			return 0, err
		}

		return 1, nil
	})

	result, err := WithTimeoutContext(t.Context(), fut, 10*time.Millisecond).Await()

	require.NoError(t, err)
	assert.True(t, result.Empty())
}

func TestWithTimeoutContext_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())

	fut := Go(func() (int, error) {
		time.Sleep(100 * time.Millisecond)

		return 1, nil
	})

	timed := WithTimeoutContext(ctx, fut, time.Second)

	cancel()

	result, err := timed.Await()

	require.Error(t, err)
	assert.Equal(t, context.Canceled, err)
	assert.True(t, result.Empty())
}

func TestWithTimeoutContext_NilContext(t *testing.T) {
	t.Parallel()

	fut := Go(func() (int, error) {
		return 3, nil
	})

	//nolint:staticcheck // nil context falls back to WithTimeout
	result, err := WithTimeoutContext(nil, fut, time.Second).Await()

	require.NoError(t, err)
	assert.Equal(t, 3, result.GetOrElse(0))
}
