package pipeline

import (
	"sort"
	"time"

	"github.com/canglade629/icc-rag-backend/internal/extract"
)

// PageFailure records one contained page-level failure. Failures are
// queryable data, not just log lines.
type PageFailure struct {
	Page  int    `json:"page"`
	Error string `json:"error"`
}

// Statistics summarizes a complete run over the aggregated result set.
type Statistics struct {
	TotalPagesProcessed int     `json:"total_pages_processed"`
	SuccessfulPages     int     `json:"successful_pages"`
	FailedPages         int     `json:"failed_pages"`
	TotalParagraphs     int     `json:"total_paragraphs"`
	TotalFootnotes      int     `json:"total_footnotes"`
	TotalProcessingTime float64 `json:"total_processing_time"`
	AvgTimePerPage      float64 `json:"avg_time_per_page"`
}

// Result is the aggregated output of one extraction run: every paragraph and
// footnote in document page order, the run statistics, and the explicit
// per-page failure entries.
type Result struct {
	Paragraphs []extract.LegalParagraph `json:"paragraphs"`
	Footnotes  []extract.Footnote       `json:"footnotes"`
	Statistics Statistics               `json:"statistics"`
	Failures   []PageFailure            `json:"failures"`
}

// Aggregate re-associates per-page results with document page order and
// computes the run statistics. Partition execution order does not matter:
// results are sorted by page before anything else, so output is
// deterministic. elapsed is the wall time of the whole run.
func Aggregate(results []extract.PageResult, elapsed time.Duration) *Result {
	sorted := make([]extract.PageResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Page < sorted[j].Page })

	out := &Result{
		Paragraphs: []extract.LegalParagraph{},
		Footnotes:  []extract.Footnote{},
		Failures:   []PageFailure{},
	}

	for _, res := range sorted {
		if res.Err != nil {
			out.Statistics.FailedPages++
			out.Failures = append(out.Failures, PageFailure{Page: res.Page, Error: res.Err.Error()})
			continue
		}
		out.Statistics.SuccessfulPages++
		out.Paragraphs = append(out.Paragraphs, res.Paragraphs...)
		out.Footnotes = append(out.Footnotes, res.Footnotes...)
	}

	out.Statistics.TotalPagesProcessed = len(sorted)
	out.Statistics.TotalParagraphs = len(out.Paragraphs)
	out.Statistics.TotalFootnotes = len(out.Footnotes)
	out.Statistics.TotalProcessingTime = elapsed.Seconds()
	if len(sorted) > 0 {
		out.Statistics.AvgTimePerPage = elapsed.Seconds() / float64(len(sorted))
	}

	return out
}
