package future

import (
	"context"

	"github.com/irrustible/async/logger"
)

// Async runs the given function asynchronously in a goroutine without
// blocking. This is a fire-and-forget operation: the caller does not
// wait for completion or receive a result. Panics are recovered and
// logged as errors using the default logger.
func Async(f func()) {
	fut := Go[struct{}](func() (struct{}, error) {
		f()

		return struct{}{}, nil
	})

	fut.OnError(func(err error) {
		logger.Get().Error("future.Async", "error", err)
	})
}

// AsyncWithError is like Async for functions that can fail. Errors
// returned by the function, as well as panics, are logged and dropped.
func AsyncWithError(f func() error) {
	fut := Go[struct{}](func() (struct{}, error) {
		err := f()

		return struct{}{}, err
	})

	fut.OnError(func(err error) {
		logger.Get().Error("future.Async", "error", err)
	})
}

// AsyncContext runs the given function asynchronously in a goroutine
// without blocking, passing the context through. Whether cancellation
// terminates the work early is up to the function. Panics are recovered
// and logged.
func AsyncContext(ctx context.Context, f func(ctx context.Context)) {
	fut := GoContext[struct{}](ctx, func(ctx context.Context) (struct{}, error) {
		f(ctx)

		return struct{}{}, nil
	})

	fut.OnError(func(err error) {
		logger.Get(ctx).Error("future.AsyncContext", "error", err)
	})
}

// AsyncContextWithError is like AsyncContext for functions that can
// fail. Errors and panics are logged with the context-aware logger.
func AsyncContextWithError(ctx context.Context, f func(ctx context.Context) error) {
	fut := GoContext[struct{}](ctx, func(ctx context.Context) (struct{}, error) {
		err := f(ctx)

		return struct{}{}, err
	})

	fut.OnError(func(err error) {
		logger.Get(ctx).Error("future.AsyncContext", "error", err)
	})
}
