package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesJobs(t *testing.T) {
	var processed int32
	done := make(chan struct{}, 3)
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		atomic.AddInt32(&processed, 1)
		done <- struct{}{}
		return nil
	}, QueueConfig{Workers: 2})
	q.Start(context.Background())
	defer q.Stop()

	for i := 0; i < 3; i++ {
		require.NoError(t, q.TryEnqueue(Job{Type: "failed_search"}))
	}
	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("job not processed")
		}
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&processed))
}

func TestQueueRetriesFailedJobs(t *testing.T) {
	var attempts int32
	done := make(chan struct{})
	q := NewQueue("retry", func(ctx context.Context, job Job) error {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return errors.New("transient")
		}
		close(done)
		return nil
	}, QueueConfig{Workers: 1, MaxRetries: 3, RetryDelay: 5 * time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "job-1"}))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job never succeeded")
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestTryEnqueueRequiresStart(t *testing.T) {
	q := NewQueue("idle", func(context.Context, Job) error { return nil }, QueueConfig{})
	assert.False(t, q.Started())
	assert.ErrorIs(t, q.TryEnqueue(Job{}), ErrQueueClosed)

	var nilQueue *Queue
	assert.False(t, nilQueue.Started())
}

func TestTryEnqueueReportsFullBuffer(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	q := NewQueue("full", func(ctx context.Context, job Job) error {
		if job.ID == "first" {
			close(started)
		}
		<-release
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 1})
	q.Start(context.Background())
	defer q.Stop()
	defer close(release)

	require.NoError(t, q.TryEnqueue(Job{ID: "first"}))
	<-started
	require.NoError(t, q.TryEnqueue(Job{ID: "second"}))
	err := q.TryEnqueue(Job{ID: "third"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrQueueFull))
}

func TestStopDrainsBufferedJobs(t *testing.T) {
	var processed int32
	gate := make(chan struct{})
	q := NewQueue("drain", func(ctx context.Context, job Job) error {
		<-gate
		atomic.AddInt32(&processed, 1)
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 8, DrainTimeout: 2 * time.Second})
	q.Start(context.Background())

	for i := 0; i < 4; i++ {
		require.NoError(t, q.TryEnqueue(Job{Type: "failed_search"}))
	}
	assert.GreaterOrEqual(t, q.Depth(), 3)
	close(gate)
	q.Stop()

	assert.Equal(t, int32(4), atomic.LoadInt32(&processed))
	assert.Equal(t, 0, q.Depth())
	assert.False(t, q.Started())

	err := q.TryEnqueue(Job{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrQueueClosed))
}

func TestQueueAbandonsAfterMaxRetries(t *testing.T) {
	var attempts int32
	q := NewQueue("abandon", func(ctx context.Context, job Job) error {
		atomic.AddInt32(&attempts, 1)
		return errors.New("permanent")
	}, QueueConfig{Workers: 1, MaxRetries: 2, RetryDelay: time.Millisecond})
	q.Start(context.Background())

	require.NoError(t, q.TryEnqueue(Job{ID: "doomed"}))
	q.Stop()

	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}
