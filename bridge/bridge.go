// Package bridge drives a single blocking operation to completion on its own
// worker goroutine and hands the outcome back to the caller.
package bridge

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/panics"
	"golang.org/x/sync/errgroup"
)

// Operation receives a context owned by the worker, never the caller's.
type Operation[T any] func(ctx context.Context) (T, error)

// PanicError reports a panic raised inside an Operation.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Run executes op on a fresh worker with a fresh context and blocks until the
// worker has terminated. The context is cancelled once op returns, whatever
// the outcome. There is no timeout: if op never returns, neither does Run.
func Run[T any](op Operation[T]) (T, error) {
	var result T
	var g errgroup.Group
	g.Go(func() error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		var err error
		var pc panics.Catcher
		pc.Try(func() {
			result, err = op(ctx)
		})
		if r := pc.Recovered(); r != nil {
			return &PanicError{Value: r.Value, Stack: r.Stack}
		}
		return err
	})
	if err := g.Wait(); err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
