package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/canglade629/icc-rag-backend/internal/chunker"
	"github.com/canglade629/icc-rag-backend/internal/pipeline"
	"github.com/yuin/goldmark"
)

// BuildReport renders a Markdown summary of one extraction run.
func BuildReport(filename string, res *pipeline.Result, chunks []chunker.SemanticChunk) string {
	var sb strings.Builder
	stats := res.Statistics

	fmt.Fprintf(&sb, "# Extraction Report: %s\n\n", filename)

	sb.WriteString("## Statistics\n\n")
	fmt.Fprintf(&sb, "- Pages processed: %d (%d succeeded, %d failed)\n",
		stats.TotalPagesProcessed, stats.SuccessfulPages, stats.FailedPages)
	fmt.Fprintf(&sb, "- Paragraphs: %d%s\n", stats.TotalParagraphs, numberRange(paragraphNumbers(res)))
	fmt.Fprintf(&sb, "- Footnotes: %d%s\n", stats.TotalFootnotes, numberRange(footnoteNumbers(res)))
	fmt.Fprintf(&sb, "- Semantic chunks: %d\n", len(chunks))
	fmt.Fprintf(&sb, "- Total processing time: %.1fs (%.2fs/page)\n",
		stats.TotalProcessingTime, stats.AvgTimePerPage)

	if len(res.Failures) > 0 {
		sb.WriteString("\n## Failed pages\n\n")
		for _, f := range res.Failures {
			fmt.Fprintf(&sb, "- page %d: %s\n", f.Page, f.Error)
		}
	}

	return sb.String()
}

// RenderHTML converts a Markdown report to HTML.
func RenderHTML(markdown string) ([]byte, error) {
	var buf strings.Builder
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return []byte(buf.String()), nil
}

func paragraphNumbers(res *pipeline.Result) []int {
	nums := make([]int, 0, len(res.Paragraphs))
	for _, p := range res.Paragraphs {
		if n, err := strconv.Atoi(p.Number); err == nil {
			nums = append(nums, n)
		}
	}
	return nums
}

func footnoteNumbers(res *pipeline.Result) []int {
	nums := make([]int, 0, len(res.Footnotes))
	for _, f := range res.Footnotes {
		if n, err := strconv.Atoi(f.Number); err == nil {
			nums = append(nums, n)
		}
	}
	return nums
}

func numberRange(nums []int) string {
	if len(nums) == 0 {
		return ""
	}
	lo, hi := nums[0], nums[0]
	for _, n := range nums[1:] {
		if n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	return fmt.Sprintf(" (numbers %d-%d)", lo, hi)
}
