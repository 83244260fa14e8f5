// Package exec selects where the data-parallel inner loops of training and
// prediction run. The orchestration itself stays sequential; a Backend only
// decides whether each blocking call fans its row loop out across workers or
// runs it inline.
package exec

import (
	"fmt"
	"runtime"
	"sync"
)

// Backend runs a loop body for indices 0..n-1. Implementations must not
// return before every iteration has completed.
type Backend interface {
	Name() string
	ForEach(n int, body func(i int))
}

// Local runs every iteration inline on the calling goroutine.
type Local struct{}

func (Local) Name() string { return "local" }

func (Local) ForEach(n int, body func(i int)) {
	for i := 0; i < n; i++ {
		body(i)
	}
}

// Pool splits the index range into contiguous chunks, one per worker.
// Contiguous chunks keep each worker on adjacent rows of the feature matrix.
type Pool struct {
	Workers int
}

// NewPool returns a Pool with the given worker count, defaulting to
// GOMAXPROCS when workers is zero or negative.
func NewPool(workers int) Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return Pool{Workers: workers}
}

func (p Pool) Name() string { return "parallel" }

func (p Pool) ForEach(n int, body func(i int)) {
	if n <= 0 {
		return
	}
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}

	var wg sync.WaitGroup
	perWorker := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * perWorker
		end := start + perWorker
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				body(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// FromName resolves the backend chosen in configuration. Workers only
// applies to the parallel backend.
func FromName(name string, workers int) (Backend, error) {
	switch name {
	case "local":
		return Local{}, nil
	case "parallel", "":
		return NewPool(workers), nil
	default:
		return nil, fmt.Errorf("exec: unknown backend %q", name)
	}
}
