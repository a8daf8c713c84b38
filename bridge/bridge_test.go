package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctxKey struct{}

func TestRunReturnsResult(t *testing.T) {
	got, err := Run(func(ctx context.Context) (string, error) {
		return "Hola", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Hola", got)
}

func TestRunPropagatesError(t *testing.T) {
	sentinel := errors.New(`{"message":"rate limited"}`)
	got, err := Run(func(ctx context.Context) (string, error) {
		return "partial", fmt.Errorf("wrapped: %w", sentinel)
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, `wrapped: {"message":"rate limited"}`, err.Error())
	assert.Empty(t, got)
}

func TestRunCapturesPanic(t *testing.T) {
	got, err := Run(func(ctx context.Context) (int, error) {
		panic("boom")
	})
	require.Error(t, err)
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "boom", pe.Value)
	assert.Equal(t, "panic: boom", pe.Error())
	assert.NotEmpty(t, pe.Stack)
	assert.Zero(t, got)
}

func TestRunUsesIsolatedContext(t *testing.T) {
	callerCtx, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "caller"))
	cancel()
	require.ErrorIs(t, callerCtx.Err(), context.Canceled)
	_, err := Run(func(ctx context.Context) (struct{}, error) {
		assert.Nil(t, ctx.Value(ctxKey{}))
		assert.NoError(t, ctx.Err())
		return struct{}{}, nil
	})
	require.NoError(t, err)
}

func TestRunTearsDownContext(t *testing.T) {
	var seen context.Context
	_, err := Run(func(ctx context.Context) (struct{}, error) {
		seen = ctx
		return struct{}{}, nil
	})
	require.NoError(t, err)
	assert.ErrorIs(t, seen.Err(), context.Canceled)

	_, err = Run(func(ctx context.Context) (struct{}, error) {
		seen = ctx
		return struct{}{}, errors.New("failed")
	})
	require.Error(t, err)
	assert.ErrorIs(t, seen.Err(), context.Canceled)
}

func TestRunBlocksUntilWorkerDone(t *testing.T) {
	release := make(chan struct{})
	finished := make(chan string, 1)
	go func() {
		v, _ := Run(func(ctx context.Context) (string, error) {
			<-release
			return "done", nil
		})
		finished <- v
	}()
	select {
	case <-finished:
		t.Fatal("Run returned before operation completed")
	default:
	}
	close(release)
	assert.Equal(t, "done", <-finished)
}

func TestRunConcurrentCallsDoNotShareState(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]string, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Run(func(ctx context.Context) (string, error) {
				return fmt.Sprintf("result-%d", i), nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()
	for i, v := range results {
		assert.Equal(t, fmt.Sprintf("result-%d", i), v)
	}
}
