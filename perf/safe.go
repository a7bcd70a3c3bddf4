package perf

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	goGuard "github.com/MrEthical07/goGuard"
	"go.uber.org/zap"
)

// PanicError carries a panic recovered from a wrapped call.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func catch(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}

// errFields returns fields for err plus, for a recovered panic, its stack.
func errFields(err error, fields ...zap.Field) []zap.Field {
	fields = append(fields, zap.Error(err))
	var pe *PanicError
	if errors.As(err, &pe) && len(pe.Stack) > 0 {
		fields = append(fields, zap.ByteString("stack", pe.Stack))
	}
	return fields
}

// WithErrorHandling wraps fn so that an error or panic is logged and
// replaced by fallback. The wrapper itself never panics.
func WithErrorHandling[A, R any](fn func(A) (R, error), fallback R, opts ...Option) func(A) R {
	cfg := newConfig(opts)

	return func(arg A) R {
		var out R
		err := catch(func() error {
			var err error
			out, err = fn(arg)
			return err
		})
		if err != nil {
			cfg.logger.Error("operation failed, using fallback", errFields(err)...)
			cfg.metrics.Inc(goGuard.MetricFallbackUsed)
			return fallback
		}
		return out
	}
}

// SafeAsync runs fn on its own goroutine and waits for it. An error or a
// panic yields fallback. When ctx ends before fn has produced a result,
// SafeAsync returns fallback and fn keeps running with the cancelled ctx;
// a result already delivered when ctx ends is still returned.
func SafeAsync[R any](ctx context.Context, fn func(context.Context) (R, error), fallback R, opts ...Option) R {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := newConfig(opts)

	done := make(chan asyncResult[R], 1)
	go func() {
		var out R
		err := catch(func() error {
			var err error
			out, err = fn(ctx)
			return err
		})
		done <- asyncResult[R]{val: out, err: err}
	}()

	res, ok := awaitResult[R](ctx, done)
	if !ok {
		cfg.logger.Warn("async operation abandoned, using fallback", zap.Error(ctx.Err()))
		cfg.metrics.Inc(goGuard.MetricFallbackUsed)
		return fallback
	}
	if res.err != nil {
		cfg.logger.Error("async operation failed, using fallback", errFields(res.err)...)
		cfg.metrics.Inc(goGuard.MetricFallbackUsed)
		return fallback
	}
	return res.val
}

type asyncResult[R any] struct {
	val R
	err error
}

// awaitResult waits for done or ctx. A result already sitting in done wins
// over a ctx that is also done, so an operation that finished is never
// reported as abandoned.
func awaitResult[R any](ctx context.Context, done <-chan asyncResult[R]) (asyncResult[R], bool) {
	select {
	case res := <-done:
		return res, true
	case <-ctx.Done():
		select {
		case res := <-done:
			return res, true
		default:
			return asyncResult[R]{}, false
		}
	}
}
