// Package parallel fans independent jobs out with bounded concurrency.
// Used by the CLI when several dependency maps are laid out in one run;
// each job owns its own graph and simulator, so jobs never share state.
package parallel

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Job is one unit of work identified by name.
type Job struct {
	Name string
	Fn   func() error
}

// Result holds one job's outcome.
type Result struct {
	Name    string
	Err     error
	Elapsed time.Duration
}

// Run executes jobs with the given concurrency limit and returns results in
// submission order. Individual failures never cancel the rest.
func Run(jobs []Job, concurrency int) []Result {
	if concurrency < 1 {
		concurrency = 4
	}

	results := make([]Result, len(jobs))
	var mu sync.Mutex

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(concurrency)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			start := time.Now()
			err := job.Fn()
			mu.Lock()
			results[i] = Result{Name: job.Name, Err: err, Elapsed: time.Since(start)}
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return results
}
