// Package worker renders animation frames in parallel.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Renderer renders a single frame and returns the path it was written to.
type Renderer interface {
	Render(ctx context.Context, task Task) (path string, err error)
}

// Task represents a single frame to render.
type Task struct {
	Index  int    // position of the frame in the output sequence
	TimeMS uint32 // animation time the frame samples
}

// String returns a short identifier used in logs.
func (t Task) String() string {
	return fmt.Sprintf("frame %d @ %dms", t.Index, t.TimeMS)
}

// Result represents the outcome of a frame task.
type Result struct {
	Task    Task
	Path    string
	Err     error
	Elapsed time.Duration
}

// ProgressFunc is called after each task completes.
type ProgressFunc func(completed, total, failed int)

// Config configures the worker pool.
type Config struct {
	Workers    int
	Renderer   Renderer
	OnProgress ProgressFunc
}

// Pool manages parallel frame rendering.
type Pool struct {
	workers    int
	renderer   Renderer
	onProgress ProgressFunc
}

// New creates a new worker pool.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		workers:    workers,
		renderer:   cfg.Renderer,
		onProgress: cfg.OnProgress,
	}
}

// Run executes all tasks and returns results in completion order.
// Tasks are processed in parallel by the configured number of workers.
// The function blocks until all tasks complete or the context is cancelled.
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	if len(tasks) == 0 {
		return nil
	}

	taskCh := make(chan Task, len(tasks))
	resultCh := make(chan Result, len(tasks))

	var (
		completed int
		failed    int
		mu        sync.Mutex
	)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, taskCh, resultCh)
		}()
	}

	go func() {
		defer close(taskCh)
		for _, task := range tasks {
			select {
			case taskCh <- task:
			case <-ctx.Done():
				return
			}
		}
	}()

	results := make([]Result, 0, len(tasks))
	done := make(chan struct{})

	go func() {
		for result := range resultCh {
			results = append(results, result)

			mu.Lock()
			completed++
			if result.Err != nil {
				failed++
			}
			c, f := completed, failed
			mu.Unlock()

			if p.onProgress != nil {
				p.onProgress(c, len(tasks), f)
			}
		}
		close(done)
	}()

	wg.Wait()
	close(resultCh)

	<-done

	return results
}

// worker processes tasks from the task channel and sends results to the result channel.
func (p *Pool) worker(ctx context.Context, tasks <-chan Task, results chan<- Result) {
	for task := range tasks {
		select {
		case <-ctx.Done():
			results <- Result{
				Task: task,
				Err:  ctx.Err(),
			}
			continue
		default:
		}

		start := time.Now()
		path, err := p.renderer.Render(ctx, task)
		elapsed := time.Since(start)

		results <- Result{
			Task:    task,
			Path:    path,
			Err:     err,
			Elapsed: elapsed,
		}
	}
}

// CycleTasks spreads frames evenly over one animation cycle of durationMS,
// starting at startMS. Frame i samples startMS + i*durationMS/frames.
func CycleTasks(startMS uint32, durationMS uint16, frames int) []Task {
	if frames <= 0 {
		return nil
	}
	tasks := make([]Task, frames)
	for i := range tasks {
		offset := uint64(i) * uint64(durationMS) / uint64(frames)
		tasks[i] = Task{Index: i, TimeMS: startMS + uint32(offset)}
	}
	return tasks
}
