package future

import (
	"github.com/irrustible/async/try"
)

// Promise represents the write-only side of an asynchronous computation.
//
// A Promise is used to complete a Future by providing either a successful
// value or an error. It's the "producer" side while Future is the
// "consumer" side.
//
// Key guarantees:
//   - A promise can only be fulfilled once (enforced by sync.Once in the future)
//   - Multiple calls to Success/Failure/Complete are safe (later calls are ignored)
//   - Fulfillment is thread-safe and can happen from any goroutine
//   - Fulfilling a promise unblocks all goroutines waiting on the associated future
//
// The promise holds a reference to the future, not the other way around,
// so futures can be passed around without exposing the ability to
// complete them.
type Promise[T any] struct {
	future *Future[T]
}

// fulfill completes the promise with the given result.
//
// Only the first call has any effect (sync.Once). It stores the result,
// closes the broadcast channel to wake all waiters, and dispatches any
// registered callbacks. The mutex is held while closing the channel so
// callback registration and collection can't interleave: a callback is
// either in the collected slices here, or registered after the close
// and invoked immediately by its On* method.
func (p *Promise[T]) fulfill(result try.Try[T]) {
	defer func() {
		// Defensive: recover from any panic (e.g., double close).
		// sync.Once should make this impossible, but the cost is nil.
		_ = recover()
	}()

	p.future.once.Do(func() {
		p.future.result = result

		p.future.mu.Lock()

		// Mark completed before the close so any waiter woken by the
		// channel observes IsCompleted() == true.
		p.future.completed.Store(true)

		// Close channel to broadcast completion to all waiters
		close(p.future.resultReady)

		// Collect and clear callbacks while holding the lock
		successCallbacks := p.future.successCallbacks
		errorCallbacks := p.future.errorCallbacks
		resultCallbacks := p.future.resultCallbacks
		successCtxCallbacks := p.future.successCtxCallbacks
		errorCtxCallbacks := p.future.errorCtxCallbacks
		resultCtxCallbacks := p.future.resultCtxCallbacks

		// Ensure that callbacks only get called once.
		// Also allows GC to do its thing after being called.
		p.future.successCallbacks = nil
		p.future.errorCallbacks = nil
		p.future.resultCallbacks = nil
		p.future.successCtxCallbacks = nil
		p.future.errorCtxCallbacks = nil
		p.future.resultCtxCallbacks = nil

		p.future.mu.Unlock()

		// Callbacks run in their own goroutines so a slow or blocking
		// callback can't stall fulfillment.
		for _, callback := range resultCallbacks {
			invokeCallback("OnResult", callback, result)
		}

		for _, cb := range resultCtxCallbacks {
			invokeCallbackContext(cb.Context, "OnResultContext", cb.Callback, result)
		}

		if result.Error == nil {
			for _, callback := range successCallbacks {
				invokeCallback("OnSuccess", callback, result.Value)
			}

			for _, cb := range successCtxCallbacks {
				invokeCallbackContext(cb.Context, "OnSuccessContext", cb.Callback, result.Value)
			}
		} else {
			for _, callback := range errorCallbacks {
				invokeCallback("OnError", callback, result.Error)
			}

			for _, cb := range errorCtxCallbacks {
				invokeCallbackContext(cb.Context, "OnErrorContext", cb.Callback, result.Error)
			}
		}
	})
}

// Success fulfills the promise with a successful value.
//
// Thread safety: Safe to call from any goroutine. If called multiple
// times, only the first call takes effect.
func (p *Promise[T]) Success(value T) {
	p.fulfill(try.Success(value))
}

// Failure fulfills the promise with an error.
//
// Thread safety: Safe to call from any goroutine. If called multiple
// times, only the first call takes effect.
func (p *Promise[T]) Failure(err error) {
	p.fulfill(try.Failure[T](err))
}

// Complete fulfills the promise with a value and error pair, matching
// Go's standard (value, error) return shape: a non-nil error resolves
// the future as failed (the value is ignored), otherwise as successful.
//
// Example:
//
//	fut, promise := future.New[Data]()
//	go func() {
//	    promise.Complete(fetchData())
//	}()
//
// Thread safety: Safe to call from any goroutine. If called multiple
// times, only the first call takes effect.
func (p *Promise[T]) Complete(value T, err error) {
	if err != nil {
		p.Failure(err)
	} else {
		p.Success(value)
	}
}
