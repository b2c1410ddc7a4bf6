package future

import (
	"context"
	"runtime/debug"

	"github.com/irrustible/async/logger"
	"github.com/irrustible/async/utils"
)

// invokeCallback invokes a callback in a separate goroutine with panic
// recovery and logging.
//
// Nil callbacks are ignored. A panicking callback is recovered and
// logged with its stack trace; it never takes down the future. The
// kind parameter ("OnSuccess", "OnError", "OnResult") identifies which
// callback type panicked in the log output.
func invokeCallback[T any](kind string, callback func(T), value T) {
	if callback == nil {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				if err := utils.GetPanicRecoveryError(r, debug.Stack()); err != nil {
					logger.Get().Error("panic encountered in future."+kind+" callback", "error", err)
				}
			}
		}()

		callback(value)
	}()
}

// invokeCallbackContext is the context-aware version of invokeCallback.
//
// The callback receives a child context that is canceled when the
// callback returns, so nothing it starts can outlive it unnoticed.
// A nil context is replaced with context.Background().
func invokeCallbackContext[T any](ctx context.Context, kind string, callback func(context.Context, T), value T) {
	if callback == nil {
		return
	}

	go func() {
		if ctx == nil {
			ctx = context.Background()
		}

		cctx, cancel := context.WithCancel(ctx)
		defer cancel()

		defer func() {
			if r := recover(); r != nil {
				if err := utils.GetPanicRecoveryError(r, debug.Stack()); err != nil {
					logger.Get(cctx).Error("panic encountered in future."+kind+" callback", "error", err)
				}
			}
		}()

		callback(cctx, value)
	}()
}
