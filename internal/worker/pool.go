package worker

import (
	"context"
	"sync"
)

// Job is one unit of batch work.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job.
type Result interface {
	GetError() error
}

// Pool drains a job list with a fixed number of workers. Batch mode uses it
// to push many questions through the ask pipeline concurrently.
type Pool struct {
	workers int
}

// NewPool creates a pool with the given worker count.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run executes all jobs and returns their results in completion order. A
// cancelled context stops workers from picking up further jobs; jobs already
// running finish and their results are included.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	queue := make(chan Job)
	out := make(chan Result, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				out <- job.Execute(ctx)
			}
		}()
	}

feed:
	for _, job := range jobs {
		select {
		case queue <- job:
		case <-ctx.Done():
			break feed
		}
	}
	close(queue)
	wg.Wait()
	close(out)

	results := make([]Result, 0, len(jobs))
	for result := range out {
		results = append(results, result)
	}
	return results
}
