// Package race runs an operation against a deadline without cancelling it.
// The operation keeps running after the deadline; its late result is dropped.
package race

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned when the deadline fires before the operation ends.
var ErrTimeout = errors.New("race: deadline exceeded")

type outcome[T any] struct {
	val T
	err error
}

// Do starts op in its own goroutine and waits for whichever comes first:
// op's result, the timer, or ctx cancellation. op receives a context that
// is detached from ctx's cancellation so that a lost race never aborts it.
func Do[T any](ctx context.Context, d time.Duration, op func(ctx context.Context) (T, error)) (T, error) {
	done := make(chan outcome[T], 1)
	go func() {
		v, err := op(context.WithoutCancel(ctx))
		done <- outcome[T]{val: v, err: err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	var zero T
	select {
	case o := <-done:
		return o.val, o.err
	case <-timer.C:
		return zero, ErrTimeout
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
