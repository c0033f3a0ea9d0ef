package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRenderer simulates frame rendering for testing
type mockRenderer struct {
	delay      time.Duration
	failFrames map[int]bool // frame indexes that should fail
	callCount  atomic.Int32
}

func (m *mockRenderer) Render(ctx context.Context, task Task) (string, error) {
	m.callCount.Add(1)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(m.delay):
	}

	if m.failFrames[task.Index] {
		return "", errors.New("simulated failure")
	}

	return fmt.Sprintf("/tmp/frame_%05d.png", task.Index), nil
}

func TestPool_BasicExecution(t *testing.T) {
	r := &mockRenderer{delay: 10 * time.Millisecond}

	pool := New(Config{
		Workers:  2,
		Renderer: r,
	})

	tasks := CycleTasks(0, 1000, 3)
	results := pool.Run(context.Background(), tasks)

	require.Len(t, results, len(tasks))
	for _, res := range results {
		assert.NoError(t, res.Err, res.Task.String())
		assert.NotEmpty(t, res.Path, res.Task.String())
	}
	assert.Equal(t, int32(len(tasks)), r.callCount.Load())
}

func TestPool_Parallelism(t *testing.T) {
	r := &mockRenderer{delay: 50 * time.Millisecond}

	pool := New(Config{
		Workers:  4,
		Renderer: r,
	})

	tasks := CycleTasks(0, 800, 8)

	start := time.Now()
	results := pool.Run(context.Background(), tasks)
	elapsed := time.Since(start)

	// 4 workers and 8 tasks at 50ms each take about two rounds.
	assert.Less(t, elapsed, 200*time.Millisecond, "expected parallel execution")
	assert.Len(t, results, len(tasks))
}

func TestPool_ErrorHandling(t *testing.T) {
	r := &mockRenderer{
		delay:      10 * time.Millisecond,
		failFrames: map[int]bool{1: true},
	}

	pool := New(Config{
		Workers:  2,
		Renderer: r,
	})

	results := pool.Run(context.Background(), CycleTasks(0, 300, 3))
	require.Len(t, results, 3)

	var successCount, failCount int
	for _, res := range results {
		if res.Err != nil {
			failCount++
			assert.Equal(t, 1, res.Task.Index)
		} else {
			successCount++
		}
	}
	assert.Equal(t, 2, successCount)
	assert.Equal(t, 1, failCount)
}

func TestPool_Cancellation(t *testing.T) {
	r := &mockRenderer{delay: 100 * time.Millisecond}

	pool := New(Config{
		Workers:  2,
		Renderer: r,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	results := pool.Run(ctx, CycleTasks(0, 1000, 10))
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 200*time.Millisecond, "expected early cancellation")

	var cancelledCount int
	for _, res := range results {
		if errors.Is(res.Err, context.Canceled) {
			cancelledCount++
		}
	}
	assert.Positive(t, cancelledCount)
	t.Logf("Completed with %d results (%d cancelled) in %v", len(results), cancelledCount, elapsed)
}

func TestPool_ProgressCallback(t *testing.T) {
	r := &mockRenderer{delay: 10 * time.Millisecond}

	var progressCalls atomic.Int32
	var lastCompleted, lastTotal int

	pool := New(Config{
		Workers:  2,
		Renderer: r,
		OnProgress: func(completed, total, failed int) {
			progressCalls.Add(1)
			lastCompleted = completed
			lastTotal = total
		},
	})

	tasks := CycleTasks(0, 300, 3)
	pool.Run(context.Background(), tasks)

	assert.Equal(t, int32(len(tasks)), progressCalls.Load())
	assert.Equal(t, len(tasks), lastCompleted)
	assert.Equal(t, len(tasks), lastTotal)
}

func TestPool_EmptyTasks(t *testing.T) {
	r := &mockRenderer{}

	pool := New(Config{
		Workers:  2,
		Renderer: r,
	})

	assert.Empty(t, pool.Run(context.Background(), nil))
	assert.Zero(t, r.callCount.Load())
}

func TestPool_DefaultsToOneWorker(t *testing.T) {
	pool := New(Config{Renderer: &mockRenderer{}})
	assert.Equal(t, 1, pool.workers)
}

func TestCycleTasks(t *testing.T) {
	tasks := CycleTasks(100, 1000, 4)
	require.Len(t, tasks, 4)

	want := []uint32{100, 350, 600, 850}
	for i, task := range tasks {
		assert.Equal(t, i, task.Index)
		assert.Equal(t, want[i], task.TimeMS)
	}

	assert.Nil(t, CycleTasks(0, 1000, 0))
	assert.Equal(t, "frame 2 @ 600ms", tasks[2].String())
}
