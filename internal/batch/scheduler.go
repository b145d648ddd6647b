// internal/batch/scheduler.go
package batch

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/ezinulo/pricefinder/pkg/models"
)

const (
	// DefaultConcurrency is the reference pool size.
	DefaultConcurrency = 10
	// MaxConcurrency caps the pool to avoid overwhelming the sources.
	MaxConcurrency = 50
)

// LookupFunc resolves the quotes for a single row.
type LookupFunc func(ctx context.Context, row models.ProductRow) []models.Quote

// ProgressFunc is called once after every completed row with the number of
// rows done so far and the total. It must be safe for concurrent use.
type ProgressFunc func(done, total int)

// Result carries the quotes for the row at the same index in the input
// slice. A failed lookup leaves Quotes empty; the row itself is never
// dropped.
type Result struct {
	Row    models.ProductRow
	Quotes []models.Quote
}

// Scheduler dispatches one lookup per row to a bounded worker pool.
type Scheduler struct {
	concurrency int
}

// New creates a Scheduler. Concurrency is clamped to [1, MaxConcurrency];
// zero or negative selects the default.
func New(concurrency int) *Scheduler {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if concurrency > MaxConcurrency {
		concurrency = MaxConcurrency
	}
	return &Scheduler{concurrency: concurrency}
}

// Run executes one lookup per row and returns the results in row order.
//
// Each task owns exactly one slot of the result slice, indexed by row
// ordinal, so duplicate EANs stay independent and no lock is needed on the
// results. A panic inside a lookup is contained to that row's slot. The
// progress counter is atomic and reaches (total, total) once every task has
// finished; completion order across rows is unspecified.
//
// Cancellation is honored between dispatches: rows not yet handed to a
// worker when ctx is done still get a slot, just with no quotes.
func (s *Scheduler) Run(ctx context.Context, rows []models.ProductRow, lookup LookupFunc, onProgress ProgressFunc) []Result {
	results := make([]Result, len(rows))
	if len(rows) == 0 {
		return results
	}

	total := len(rows)
	jobs := make(chan int, total)
	var done int64
	var wg sync.WaitGroup

	step := func() {
		if onProgress != nil {
			onProgress(int(atomic.AddInt64(&done, 1)), total)
		}
	}

	for w := 0; w < s.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = runOne(ctx, rows[i], lookup)
				step()
			}
		}()
	}

	for i := range rows {
		select {
		case <-ctx.Done():
			results[i] = Result{Row: rows[i]}
			step()
		default:
			jobs <- i
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

// runOne executes a single lookup, converting a panic into an empty result
// for that row alone.
func runOne(ctx context.Context, row models.ProductRow, lookup LookupFunc) (res Result) {
	res.Row = row
	defer func() {
		if r := recover(); r != nil {
			log.Warn().
				Interface("panic", r).
				Str("ean", row.EAN).
				Msg("Lookup panicked, keeping row with no quotes")
			res.Quotes = nil
		}
	}()
	res.Quotes = lookup(ctx, row)
	return res
}
