// Package future provides composable asynchronous computations.
//
// A Future[T] is the read side of a computation that will eventually
// produce a value of type T or an error. It is created either together
// with its write side (a Promise, via New) or by launching a function
// on a goroutine (Go, GoContext, GoPool).
//
// Completion is broadcast by closing a channel, so any number of
// goroutines can Await the same future, bridge it into a select
// statement with ToChannel, or race it against a deadline with
// WithTimeout.
package future

import (
	"context"
	"runtime/debug"
	"sync"

	"go.uber.org/atomic"

	"github.com/irrustible/async/channels"
	"github.com/irrustible/async/try"
	"github.com/irrustible/async/utils"
)

// contextCallback pairs a registered callback with the context it was
// registered under.
type contextCallback[T any] struct {
	Context  context.Context
	Callback func(context.Context, T)
}

// Future represents the read-only side of an asynchronous computation.
//
// Key guarantees:
//   - A future resolves exactly once; the result is immutable afterwards.
//   - All read operations (Await, AwaitContext, ToChannel, callbacks)
//     are safe to use concurrently and are idempotent.
//   - Completion is observed via the closed resultReady channel, which
//     unblocks every waiter simultaneously.
type Future[T any] struct {
	// result is only written once, by Promise.fulfill, before
	// resultReady is closed. Readers must wait for the close.
	result      try.Try[T]
	resultReady chan struct{}
	once        sync.Once
	completed   *atomic.Bool

	// mu guards the callback slices against concurrent registration
	// and the fulfillment that collects them.
	mu                  sync.Mutex
	successCallbacks    []func(T)
	errorCallbacks      []func(error)
	resultCallbacks     []func(try.Try[T])
	successCtxCallbacks []contextCallback[T]
	errorCtxCallbacks   []contextCallback[error]
	resultCtxCallbacks  []contextCallback[try.Try[T]]
}

// New creates an unresolved Future together with the Promise that
// resolves it. The future is the consumer side, the promise the
// producer side; pass the future around freely without exposing the
// ability to complete it.
func New[T any]() (*Future[T], *Promise[T]) {
	fut := &Future[T]{
		resultReady: make(chan struct{}),
		completed:   atomic.NewBool(false),
	}

	return fut, &Promise[T]{future: fut}
}

// NewSuccessful creates a future that is already resolved with the given value.
func NewSuccessful[T any](value T) *Future[T] {
	fut, promise := New[T]()
	promise.Success(value)

	return fut
}

// NewError creates a future that is already resolved with the given error.
func NewError[T any](err error) *Future[T] {
	fut, promise := New[T]()
	promise.Failure(err)

	return fut
}

// Go runs the given function in a new goroutine and returns a future
// for its result. Panics in the function are recovered and surface as
// an error (with a stack trace) on the future.
func Go[T any](f func() (T, error)) *Future[T] {
	fut, promise := New[T]()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				promise.Failure(utils.GetPanicRecoveryError(r, debug.Stack()))
			}
		}()

		promise.Complete(f())
	}()

	return fut
}

// GoContext runs the given context-aware function in a new goroutine
// and returns a future for its result. The context is passed through
// to the function; it is the function's job to honor cancellation.
// Panics are recovered and surface as an error on the future.
func GoContext[T any](ctx context.Context, f func(ctx context.Context) (T, error)) *Future[T] {
	if ctx == nil {
		ctx = context.Background()
	}

	fut, promise := New[T]()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				promise.Failure(utils.GetPanicRecoveryError(r, debug.Stack()))
			}
		}()

		promise.Complete(f(ctx))
	}()

	return fut
}

// IsCompleted reports whether the future has resolved. Once true, it
// stays true and the result is safe to read via Await without blocking.
func (f *Future[T]) IsCompleted() bool {
	return f.completed.Load()
}

// Await blocks until the future resolves and returns its result.
// It is idempotent: every call returns the same value and error.
func (f *Future[T]) Await() (T, error) { //nolint:ireturn
	<-f.resultReady

	return f.result.Get()
}

// AwaitContext blocks until the future resolves or the context ends,
// whichever happens first. A nil context behaves like Await.
//
// If the context ends first, the zero value and the context's error
// are returned; the underlying computation keeps running and the
// future can still be awaited again later.
func (f *Future[T]) AwaitContext(ctx context.Context) (T, error) { //nolint:ireturn
	if ctx == nil {
		return f.Await()
	}

	select {
	case <-f.resultReady:
		return f.result.Get()
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	}
}

// ToChannel returns a channel that delivers the future's result exactly
// once and is then closed. This is the bridge from futures into select
// statements.
func (f *Future[T]) ToChannel() <-chan try.Try[T] {
	// Buffered so the forwarding goroutine never blocks on a slow
	// (or absent) receiver.
	ch := make(chan try.Try[T], 1)

	go func() {
		<-f.resultReady
		ch <- f.result

		channels.CloseChannelIgnorePanic(ch)
	}()

	return ch
}

// registerOrResolved adds a callback to the given slice, or reports
// that the future already resolved (in which case the caller invokes
// the callback itself). The check happens under the mutex, which fulfill
// holds while closing the broadcast channel, so a callback is never
// both registered and missed.
func registerOrResolved[T any, C any](f *Future[T], list *[]C, callback C) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	select {
	case <-f.resultReady:
		return false
	default:
		*list = append(*list, callback)

		return true
	}
}

// OnSuccess registers a callback invoked with the value if the future
// resolves successfully. If the future already resolved, the callback
// is invoked immediately. Callbacks run on their own goroutines.
func (f *Future[T]) OnSuccess(callback func(T)) {
	if callback == nil {
		return
	}

	if !registerOrResolved(f, &f.successCallbacks, callback) {
		if f.result.IsSuccess() {
			invokeCallback("OnSuccess", callback, f.result.Value)
		}
	}
}

// OnError registers a callback invoked with the error if the future
// resolves with a failure. If the future already resolved, the callback
// is invoked immediately. Callbacks run on their own goroutines.
func (f *Future[T]) OnError(callback func(error)) {
	if callback == nil {
		return
	}

	if !registerOrResolved(f, &f.errorCallbacks, callback) {
		if f.result.IsFailure() {
			invokeCallback("OnError", callback, f.result.Error)
		}
	}
}

// OnResult registers a callback invoked with the full result (value and
// error) when the future resolves, regardless of outcome. If the future
// already resolved, the callback is invoked immediately.
func (f *Future[T]) OnResult(callback func(try.Try[T])) {
	if callback == nil {
		return
	}

	if !registerOrResolved(f, &f.resultCallbacks, callback) {
		invokeCallback("OnResult", callback, f.result)
	}
}

// OnSuccessContext is the context-aware variant of OnSuccess. The
// callback receives a child of the given context, canceled when the
// callback returns.
func (f *Future[T]) OnSuccessContext(ctx context.Context, callback func(context.Context, T)) {
	if callback == nil {
		return
	}

	cb := contextCallback[T]{Context: ctx, Callback: callback}
	if !registerOrResolved(f, &f.successCtxCallbacks, cb) {
		if f.result.IsSuccess() {
			invokeCallbackContext(ctx, "OnSuccessContext", callback, f.result.Value)
		}
	}
}

// OnErrorContext is the context-aware variant of OnError.
func (f *Future[T]) OnErrorContext(ctx context.Context, callback func(context.Context, error)) {
	if callback == nil {
		return
	}

	cb := contextCallback[error]{Context: ctx, Callback: callback}
	if !registerOrResolved(f, &f.errorCtxCallbacks, cb) {
		if f.result.IsFailure() {
			invokeCallbackContext(ctx, "OnErrorContext", callback, f.result.Error)
		}
	}
}

// OnResultContext is the context-aware variant of OnResult.
func (f *Future[T]) OnResultContext(ctx context.Context, callback func(context.Context, try.Try[T])) {
	if callback == nil {
		return
	}

	cb := contextCallback[try.Try[T]]{Context: ctx, Callback: callback}
	if !registerOrResolved(f, &f.resultCtxCallbacks, cb) {
		invokeCallbackContext(ctx, "OnResultContext", callback, f.result)
	}
}

// ToChannelContext is like ToChannel, but if the context ends before
// the future resolves, the channel delivers a failed result carrying
// the context's error instead. A nil context behaves like ToChannel.
func (f *Future[T]) ToChannelContext(ctx context.Context) <-chan try.Try[T] {
	if ctx == nil {
		return f.ToChannel()
	}

	ch := make(chan try.Try[T], 1)

	go func() {
		select {
		case <-f.resultReady:
			ch <- f.result
		case <-ctx.Done():
			ch <- try.Failure[T](ctx.Err())
		}

		channels.CloseChannelIgnorePanic(ch)
	}()

	return ch
}
