package future

import (
	"context"
	"time"

	"github.com/irrustible/async/optional"
	"github.com/irrustible/async/timer"
)

// WithTimeout races a future against a deadline and returns a new
// future for the outcome:
//
//   - Some(value) if the computation succeeds before the deadline
//   - the computation's error, unaltered, if it fails before the deadline
//   - None with a nil error if the deadline fires first
//
// Timing out is not an error at this layer; callers that consider a
// missing value fatal escalate it themselves.
//
// Like Map and Combine, this is a package-level function rather than a
// method: the result type mentions Future[optional.Value[T]], which a
// method of Future[T] may not instantiate.
//
// The deadline is fixed at the moment WithTimeout is called. The timer
// is consulted strictly before the inner result on every step, so when
// both are ready in the same step the timeout wins. A zero or negative
// duration therefore resolves to None on the first step, even if the
// computation is already done:
//
//	fut := future.Go(func() (int, error) {
//	    time.Sleep(250 * time.Millisecond)
//	    return 24, nil
//	})
//
//	result, _ := future.WithTimeout(fut, 100*time.Millisecond).Await()
//	// result is None
//
// The timer is released as soon as the race is decided, and the
// watcher goroutine never outlives the deadline. The inner computation
// itself keeps running after a timeout; the original future remains
// awaitable.
func WithTimeout[T any](f *Future[T], after time.Duration) *Future[optional.Value[T]] {
	out, promise := New[optional.Value[T]]()
	deadline := timer.After(after)

	go func() {
		defer deadline.Stop()

		// Timer first: an already-expired deadline beats an
		// already-resolved computation.
		select {
		case <-deadline.Ready():
			promise.Success(optional.None[T]())

			return
		default:
		}

		select {
		case <-deadline.Ready():
			promise.Success(optional.None[T]())
		case <-f.resultReady:
			// The select picks at random when both channels are
			// ready; re-checking the timer restores its priority.
			if deadline.Expired() {
				promise.Success(optional.None[T]())

				return
			}

			value, err := f.result.Get()
			if err != nil {
				promise.Failure(err)

				return
			}

			promise.Success(optional.Some(value))
		}
	}()

	return out
}

// WithTimeoutContext is like WithTimeout, but the race is additionally
// bounded by the context: if the context ends before either the
// computation or the deadline, the returned future fails with the
// context's error. The timer keeps its priority over both the inner
// result and the context.
func WithTimeoutContext[T any](ctx context.Context, f *Future[T], after time.Duration) *Future[optional.Value[T]] {
	if ctx == nil {
		return WithTimeout(f, after)
	}

	out, promise := New[optional.Value[T]]()
	deadline := timer.After(after)

	go func() {
		defer deadline.Stop()

		select {
		case <-deadline.Ready():
			promise.Success(optional.None[T]())

			return
		default:
		}

		select {
		case <-deadline.Ready():
			promise.Success(optional.None[T]())
		case <-f.resultReady:
			if deadline.Expired() {
				promise.Success(optional.None[T]())

				return
			}

			value, err := f.result.Get()
			if err != nil {
				promise.Failure(err)

				return
			}

			promise.Success(optional.Some(value))
		case <-ctx.Done():
			if deadline.Expired() {
				promise.Success(optional.None[T]())

				return
			}

			promise.Failure(ctx.Err())
		}
	}()

	return out
}
