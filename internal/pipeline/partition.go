package pipeline

import (
	"errors"
	"fmt"
)

// Partition is one contiguous range of 1-based page indices. A partition is
// owned exclusively by a single parallel task for the duration of a run and
// is never mutated.
type Partition struct {
	Pages []int
}

// ErrNoPages is the only fatal condition in a run: without at least one page
// past the skipped front matter, no partitioning is possible.
var ErrNoPages = errors.New("no pages to process")

// Partitions splits the page range [skipFirstPages+1, totalPages] into
// contiguous partitions of at most pagesPerPartition pages.
func Partitions(totalPages, skipFirstPages, pagesPerPartition int) ([]Partition, error) {
	if totalPages <= 0 {
		return nil, fmt.Errorf("%w: document reports %d pages", ErrNoPages, totalPages)
	}
	if pagesPerPartition <= 0 {
		return nil, fmt.Errorf("pages per partition must be positive, got %d", pagesPerPartition)
	}
	if skipFirstPages < 0 {
		skipFirstPages = 0
	}

	start := skipFirstPages + 1
	if start > totalPages {
		return nil, fmt.Errorf("%w: skipping %d of %d pages leaves nothing", ErrNoPages, skipFirstPages, totalPages)
	}

	pages := make([]int, 0, totalPages-start+1)
	for p := start; p <= totalPages; p++ {
		pages = append(pages, p)
	}

	var parts []Partition
	for i := 0; i < len(pages); i += pagesPerPartition {
		end := min(i+pagesPerPartition, len(pages))
		parts = append(parts, Partition{Pages: pages[i:end]})
	}
	return parts, nil
}
