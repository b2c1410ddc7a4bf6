package utils

import (
	"context"
	"time"
)

// SleepCtx sleeps for the given duration, returning early with the
// context's error if the context ends first.
func SleepCtx(ctx context.Context, dur time.Duration) error {
	if dur <= 0 {
		return nil
	}

	timer := time.NewTimer(dur)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
