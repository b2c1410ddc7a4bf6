// Package try provides a value/error pair, the stored outcome of an
// asynchronous computation.
package try

// Try holds the outcome of a computation: a value or an error.
type Try[A any] struct {
	Value A
	Error error
}

// Success creates a successful Try holding the given value.
func Success[A any](value A) Try[A] {
	return Try[A]{Value: value}
}

// Failure creates a failed Try holding the given error.
func Failure[A any](err error) Try[A] {
	return Try[A]{Error: err}
}

func (t Try[A]) IsSuccess() bool {
	return t.Error == nil
}

func (t Try[A]) IsFailure() bool {
	return t.Error != nil
}

// Get unpacks the Try into Go's usual (value, error) shape.
// A failed Try yields the zero value alongside the error.
func (t Try[A]) Get() (A, error) { //nolint:ireturn
	if t.IsFailure() {
		var zero A

		return zero, t.Error
	} else {
		return t.Value, nil
	}
}

func (t Try[A]) GetOrElse(defaultValue A) A { //nolint:ireturn
	if t.IsSuccess() {
		return t.Value
	} else {
		return defaultValue
	}
}

func Map[A, B any](t Try[A], f func(A) (B, error)) Try[B] {
	if t.IsSuccess() {
		val, err := f(t.Value)

		return Try[B]{Value: val, Error: err}
	} else {
		return Try[B]{Error: t.Error}
	}
}
