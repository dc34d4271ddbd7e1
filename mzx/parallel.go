package mzx

import (
	"runtime"
	"sync"
)

// DecompressAll decompresses many independent streams concurrently.
// Each entry is a pure function of its own bytes, so no worker-pool
// strategy is load-bearing here; this one bounds concurrency to
// GOMAXPROCS workers pulling from a shared index channel. Results and
// errors are returned in input order.
func DecompressAll(entries [][]byte, invert bool) ([][]byte, []error) {
	results := make([][]byte, len(entries))
	errs := make([]error, len(entries))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(entries) {
		workers = len(entries)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], errs[i] = Decompress(entries[i], invert)
			}
		}()
	}
	for i := range entries {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results, errs
}
