package future

import (
	"context"
	"fmt"

	"github.com/irrustible/async/errors"
)

// Map transforms the result of a future using the provided function,
// returning a new future for the transformed value. Errors from the
// source future are propagated unchanged; the function is only called
// on success.
func Map[T, U any](fut *Future[T], f func(T) (U, error)) *Future[U] {
	if fut == nil {
		return NewError[U](fmt.Errorf("%w provided to Map", errors.ErrNilFuture))
	}

	if f == nil {
		return NewError[U](fmt.Errorf("%w provided to Map", errors.ErrNilFunction))
	}

	return Go(func() (U, error) {
		val, err := fut.Await()
		if err != nil {
			var zero U

			return zero, err
		}

		return f(val)
	})
}

// MapContext is the context-aware variant of Map. Waiting on the source
// future is bounded by the context, and the transform receives it.
func MapContext[T, U any](ctx context.Context, fut *Future[T], f func(context.Context, T) (U, error)) *Future[U] {
	if fut == nil {
		return NewError[U](fmt.Errorf("%w provided to MapContext", errors.ErrNilFuture))
	}

	if f == nil {
		return NewError[U](fmt.Errorf("%w provided to MapContext", errors.ErrNilFunction))
	}

	return GoContext(ctx, func(ctx context.Context) (U, error) {
		val, err := fut.AwaitContext(ctx)
		if err != nil {
			var zero U

			return zero, err
		}

		return f(ctx, val)
	})
}

// FlatMap chains a future-returning function onto a future, returning a
// new future for the final result. Errors from either stage propagate.
func FlatMap[T, U any](fut *Future[T], f func(T) *Future[U]) *Future[U] {
	if fut == nil {
		return NewError[U](fmt.Errorf("%w provided to FlatMap", errors.ErrNilFuture))
	}

	if f == nil {
		return NewError[U](fmt.Errorf("%w provided to FlatMap", errors.ErrNilFunction))
	}

	return Go(func() (U, error) {
		val, err := fut.Await()
		if err != nil {
			var zero U

			return zero, err
		}

		return f(val).Await()
	})
}

// Combine waits for all the given futures and returns a future for the
// slice of their values, in argument order. The first error encountered
// resolves the combined future with that error and a nil slice.
func Combine[T any](futures ...*Future[T]) *Future[[]T] {
	return Go(func() ([]T, error) {
		var results []T

		for _, fut := range futures {
			val, err := fut.Await()
			if err != nil {
				return nil, err
			}

			results = append(results, val)
		}

		return results, nil
	})
}

// CombineContext is the context-aware variant of Combine: waiting on
// each future is bounded by the context.
func CombineContext[T any](ctx context.Context, futures ...*Future[T]) *Future[[]T] {
	return GoContext(ctx, func(ctx context.Context) ([]T, error) {
		var results []T

		for _, fut := range futures {
			val, err := fut.AwaitContext(ctx)
			if err != nil {
				return nil, err
			}

			results = append(results, val)
		}

		return results, nil
	})
}

// CombineNoShortCircuit waits for all the given futures even when some
// fail, then resolves with either all the values or the joined errors.
func CombineNoShortCircuit[T any](futures ...*Future[T]) *Future[[]T] {
	return Go(func() ([]T, error) {
		var (
			collected errors.Collection
			results   []T
		)

		for _, fut := range futures {
			val, err := fut.Await()
			if err != nil {
				collected.Add(err)

				continue
			}

			results = append(results, val)
		}

		if collected.HasError() {
			return nil, collected.GetError()
		}

		return results, nil
	})
}
