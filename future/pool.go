package future

import (
	"runtime/debug"

	"github.com/alitto/pond/v2"

	"github.com/irrustible/async/utils"
)

// GoPool is like Go, but runs the function on the provided pond worker
// pool instead of a dedicated goroutine. Use this to bound the
// concurrency of a burst of asynchronous work: the future resolves once
// the pool has scheduled and run the function.
//
// Panics are recovered and surface as an error on the future, so a
// misbehaving task cannot poison the shared pool.
func GoPool[T any](pool pond.Pool, f func() (T, error)) *Future[T] {
	fut, promise := New[T]()

	pool.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				promise.Failure(utils.GetPanicRecoveryError(r, debug.Stack()))
			}
		}()

		promise.Complete(f())
	})

	return fut
}
