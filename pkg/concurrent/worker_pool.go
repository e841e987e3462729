package concurrent

import (
	"context"
	"sync"
)

// Job is one unit of work. Index is the position of the job in its batch.
type Job[T any] struct {
	Index   int
	Payload T
}

// Result carries the output of the job with the same Index.
type Result[G any] struct {
	Index int
	Value G
	Err   error
}

type JobFunc[T any, G any] func(ctx context.Context, job T) (G, error)

type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan Job[T]
	results    chan Result[G]
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan Job[T], jobQueueSize),
		results:    make(chan Result[G], jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(ctx context.Context, jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		if err := ctx.Err(); err != nil {
			wp.results <- Result[G]{Index: job.Index, Err: err}
			continue
		}
		val, err := jobFunc(ctx, job.Payload)
		wp.results <- Result[G]{Index: job.Index, Value: val, Err: err}
	}
}

func (wp *WorkerPool[T, G]) Start(ctx context.Context, jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, jobFunc)
	}
}

// Wait blocks until every worker has exited, then closes the results channel. Close must be called first.
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(job Job[T]) {
	wp.jobQueue <- job
}

func (wp *WorkerPool[T, G]) CollectResults() <-chan Result[G] {
	return wp.results
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

// Map runs jobFunc over jobs on numWorkers goroutines and returns the outputs in job order.
// The error of the lowest-indexed failing job is returned.
func Map[T any, G any](ctx context.Context, numWorkers int, jobs []T, jobFunc JobFunc[T, G]) ([]G, error) {
	out := make([]G, len(jobs))
	if len(jobs) == 0 {
		return out, nil
	}

	wp := NewWorkerPool[T, G](min(numWorkers, len(jobs)), len(jobs))
	wp.Start(ctx, jobFunc)
	for i, job := range jobs {
		wp.AddJob(Job[T]{Index: i, Payload: job})
	}
	wp.Close()
	wp.Wait()

	var (
		firstErr   error
		firstIndex = len(jobs)
	)
	for res := range wp.CollectResults() {
		if res.Err != nil {
			if res.Index < firstIndex {
				firstErr, firstIndex = res.Err, res.Index
			}
			continue
		}
		out[res.Index] = res.Value
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
