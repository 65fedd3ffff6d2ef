package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/canglade629/icc-rag-backend/internal/extract"
)

// PageProcessor is the per-page extraction capability the runner fans out
// over. Implementations must be safe for concurrent page calls.
type PageProcessor interface {
	ProcessPage(ctx context.Context, page int) extract.PageResult
}

// Runner executes partitions of page work over a bounded worker pool. Pages
// within a partition run sequentially; partitions run in any order. Every
// submitted page appears exactly once in the returned results, either as a
// success or as a failure entry.
type Runner struct {
	proc    PageProcessor
	workers int
	log     *slog.Logger

	// OnPage, if set, is invoked after each page completes. It is called
	// from worker goroutines and must be safe for concurrent use.
	OnPage func(extract.PageResult)
}

func NewRunner(proc PageProcessor, workers int, log *slog.Logger) *Runner {
	if workers <= 0 {
		workers = 1
	}
	return &Runner{proc: proc, workers: workers, log: log}
}

// Run processes all partitions and collects per-page results. A page failure
// never aborts its partition or any sibling; cancellation marks the
// remaining pages failed rather than dropping them.
func (r *Runner) Run(ctx context.Context, partitions []Partition) []extract.PageResult {
	total := 0
	for _, part := range partitions {
		total += len(part.Pages)
	}

	parts := make(chan Partition)
	results := make(chan extract.PageResult, total)

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for part := range parts {
				for _, page := range part.Pages {
					var res extract.PageResult
					if ctx.Err() != nil {
						res = extract.PageResult{Page: page, Err: ctx.Err()}
					} else {
						res = r.processPage(ctx, page)
					}
					if r.OnPage != nil {
						r.OnPage(res)
					}
					results <- res
				}
			}
		}()
	}

	for _, part := range partitions {
		parts <- part
	}
	close(parts)
	wg.Wait()
	close(results)

	collected := make([]extract.PageResult, 0, total)
	for res := range results {
		collected = append(collected, res)
	}
	return collected
}

// processPage runs one page with retry on transient source failures.
func (r *Runner) processPage(ctx context.Context, page int) extract.PageResult {
	var res extract.PageResult
	for attempt := 0; attempt < MaxRetries; attempt++ {
		res = r.proc.ProcessPage(ctx, page)
		if res.Err == nil || !IsRetryable(res.Err) {
			break
		}
		r.log.Warn("retryable page failure", "page", page, "attempt", attempt, "error", res.Err)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			res.Err = ctx.Err()
			res.Page = page
			return res
		}
	}
	return res
}
