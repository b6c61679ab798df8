// Package workpool runs indexed jobs on a bounded set of goroutines.
package workpool

import (
	"context"
	"runtime"
	"sync"
)

// Size returns workers, or runtime.NumCPU() when workers <= 0.
func Size(workers int) int {
	if workers <= 0 {
		return runtime.NumCPU()
	}
	return workers
}

// Each calls fn(ctx, i) for every i in [0, n) on at most Size(workers)
// goroutines and waits for the calls to return. Dispatch stops once ctx is
// done; the jobs already running finish and Each returns ctx.Err().
func Each(ctx context.Context, workers, n int, fn func(ctx context.Context, i int)) error {
	workers = min(Size(workers), max(n, 1))
	workCh := make(chan int, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range workCh {
				fn(ctx, i)
			}
		}()
	}

	var err error
dispatch:
	for i := 0; i < n; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case workCh <- i:
		case <-ctx.Done():
			err = ctx.Err()
			break dispatch
		}
	}
	close(workCh)
	wg.Wait()
	return err
}
