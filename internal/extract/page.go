package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Source supplies the two independent line streams for a page. Both calls
// must be idempotent and side-effect-free from the recognizers' perspective.
type Source interface {
	// TextLines returns the native text-layer lines for a 1-based page.
	TextLines(ctx context.Context, page int) ([]string, error)
	// OCRLines returns the rendered-then-recognized lines for a 1-based page.
	OCRLines(ctx context.Context, page int) ([]string, error)
}

// PageResult is the outcome of processing one page. Err is set only when the
// page produced no usable extraction; a failed OCR pass with a healthy text
// layer still counts as success with zero paragraphs.
type PageResult struct {
	Page       int
	Paragraphs []LegalParagraph
	Footnotes  []Footnote
	Duration   time.Duration
	Err        error
}

// Processor runs the hybrid extraction for single pages. Each page's
// recognition is strictly sequential and shares no mutable state with any
// other page, so one Processor may serve concurrent page tasks.
type Processor struct {
	src      Source
	patterns *PatternSet
	log      *slog.Logger
}

func NewProcessor(src Source, ps *PatternSet, log *slog.Logger) *Processor {
	return &Processor{src: src, patterns: ps, log: log}
}

// ProcessPage extracts footnotes from the text layer and paragraphs from the
// header-filtered OCR lines of one page. Errors from either source are
// captured in the result, never propagated.
func (p *Processor) ProcessPage(ctx context.Context, page int) PageResult {
	start := time.Now()
	res := PageResult{Page: page}

	textLines, textErr := p.src.TextLines(ctx, page)
	if textErr != nil {
		p.log.Warn("text layer unavailable", "page", page, "error", textErr)
	} else {
		res.Footnotes = ExtractFootnotes(textLines, page, p.patterns)
	}

	ocrLines, ocrErr := p.src.OCRLines(ctx, page)
	if ocrErr != nil {
		// Footnote extraction does not depend on OCR succeeding.
		p.log.Warn("ocr unavailable", "page", page, "error", ocrErr)
	} else if len(ocrLines) > 0 {
		cleaned := CleanHeadersFooters(ocrLines, p.patterns)
		res.Paragraphs = ExtractParagraphs(cleaned, page, p.patterns)
	}

	if textErr != nil && ocrErr != nil {
		res.Err = fmt.Errorf("page %d: text layer: %w; ocr: %v", page, textErr, ocrErr)
	}

	res.Duration = time.Since(start)
	return res
}
