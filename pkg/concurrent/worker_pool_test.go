package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapKeepsJobOrder(t *testing.T) {
	jobs := make([]int, 500)
	for i := range jobs {
		jobs[i] = i
	}

	var calls atomic.Int64
	got, err := Map(context.Background(), 8, jobs, func(ctx context.Context, job int) (int, error) {
		calls.Add(1)
		return job * job, nil
	})
	require.NoError(t, err)
	require.Equal(t, int64(len(jobs)), calls.Load())
	for i, v := range got {
		require.Equal(t, i*i, v)
	}
}

func TestMapReturnsFirstError(t *testing.T) {
	errOdd := errors.New("odd")
	_, err := Map(context.Background(), 4, []int{0, 2, 3, 5}, func(ctx context.Context, job int) (int, error) {
		if job%2 == 1 {
			return 0, errors.Join(errOdd, errors.New(string(rune('0'+job))))
		}
		return job, nil
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, errOdd))
	require.Contains(t, err.Error(), "3")
}

func TestMapCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Map(ctx, 2, []string{"a", "b"}, func(ctx context.Context, job string) (string, error) {
		return job, nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestMapEmpty(t *testing.T) {
	got, err := Map(context.Background(), 4, []int(nil), func(ctx context.Context, job int) (int, error) {
		return job, nil
	})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestWorkerPool(t *testing.T) {
	wp := NewWorkerPool[string, int](3, 4)
	wp.Start(context.Background(), func(ctx context.Context, job string) (int, error) {
		return len(job), nil
	})
	for i, s := range []string{"a", "bb", "ccc", "dddd"} {
		wp.AddJob(Job[string]{Index: i, Payload: s})
	}
	wp.Close()
	wp.Wait()

	sum := 0
	for res := range wp.CollectResults() {
		require.NoError(t, res.Err)
		require.Equal(t, res.Index+1, res.Value)
		sum += res.Value
	}
	require.Equal(t, 10, sum)
}
