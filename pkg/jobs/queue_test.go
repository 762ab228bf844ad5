package jobs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesJobs(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]interface{}{}
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		mu.Lock()
		defer mu.Unlock()
		seen[job.ID] = job.Payload
		return nil
	}, QueueConfig{Workers: 2})
	q.Start(context.Background())

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, q.Enqueue(Job{ID: id, Payload: id + "-payload"}))
	}
	q.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, seen, 3)
	assert.Equal(t, "b-payload", seen["b"])
}

func TestQueueRetriesFailedJobs(t *testing.T) {
	var calls int32
	done := make(chan struct{})
	q := NewQueue("retry", func(ctx context.Context, job Job) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errors.New("transient")
		}
		close(done)
		return nil
	}, QueueConfig{MaxRetries: 3, RetryDelay: 5 * time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "x"}))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not retried")
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestQueueGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	q := NewQueue("giveup", func(ctx context.Context, job Job) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("permanent")
	}, QueueConfig{MaxRetries: 1, RetryDelay: time.Millisecond})
	q.Start(context.Background())

	require.NoError(t, q.Enqueue(Job{ID: "x"}))
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 2 }, time.Second, 5*time.Millisecond)
	q.Stop()
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestQueueEnqueueBeforeStartAndAfterStop(t *testing.T) {
	q := NewQueue("lifecycle", func(context.Context, Job) error { return nil }, QueueConfig{})
	require.Error(t, q.Enqueue(Job{ID: "early"}))

	q.Start(context.Background())
	q.Stop()
	require.Error(t, q.Enqueue(Job{ID: "late"}))
	q.Stop()
}

func TestQueueEnqueueFullBuffer(t *testing.T) {
	release := make(chan struct{})
	q := NewQueue("full", func(context.Context, Job) error {
		<-release
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 1})
	q.Start(context.Background())

	require.NoError(t, q.Enqueue(Job{ID: "1"}))
	// the worker holds job 1; wait until it has been taken off the buffer
	require.Eventually(t, func() bool { return q.Pending() == 0 }, time.Second, time.Millisecond)
	require.NoError(t, q.Enqueue(Job{ID: "2"}))

	err := q.Enqueue(Job{ID: "3"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQueueFull)

	close(release)
	q.Stop()
}
