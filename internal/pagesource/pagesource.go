// Package pagesource supplies the two per-page line streams the extraction
// core consumes: native text-layer lines read with ledongthuc/pdf, and OCR
// lines produced by rasterizing the page with pdftoppm and recognizing it
// with Tesseract.
package pagesource

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// Options controls page rendering and OCR.
type Options struct {
	// OCRLanguage is the Tesseract language string, e.g. "eng" or "eng+fra".
	OCRLanguage string
	// OCRPageSegMode is the Tesseract page segmentation mode. Mode 6
	// (uniform block of text) suits single-column judgment pages.
	OCRPageSegMode int
	// OCRDPI is the rasterization resolution passed to pdftoppm.
	OCRDPI int
}

// DefaultOptions match the resolution and segmentation used for ICC
// judgment scans.
func DefaultOptions() Options {
	return Options{
		OCRLanguage:    "eng",
		OCRPageSegMode: 6,
		OCRDPI:         144,
	}
}

// Document is an open PDF serving idempotent per-page reads. Methods are
// safe for concurrent use by parallel page tasks.
type Document struct {
	path   string
	file   *os.File
	reader *pdflib.Reader
	opts   Options
	log    *slog.Logger
}

// Open opens the PDF at path. The caller must Close the document.
func Open(path string, opts Options, log *slog.Logger) (*Document, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	if opts.OCRLanguage == "" {
		opts.OCRLanguage = "eng"
	}
	if opts.OCRDPI <= 0 {
		opts.OCRDPI = 144
	}
	return &Document{path: path, file: f, reader: reader, opts: opts, log: log}, nil
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.reader.NumPage()
}

// TextLines returns the native text-layer lines of a 1-based page, row by
// row, trimmed, with empty lines dropped.
func (d *Document) TextLines(_ context.Context, page int) ([]string, error) {
	if page < 1 || page > d.reader.NumPage() {
		return nil, fmt.Errorf("page %d out of range 1..%d", page, d.reader.NumPage())
	}
	p := d.reader.Page(page)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d has no content", page)
	}

	rows, err := p.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("read text layer of page %d: %w", page, err)
	}

	var lines []string
	for _, row := range rows {
		var sb strings.Builder
		for _, word := range row.Content {
			sb.WriteString(word.S)
		}
		if line := strings.TrimSpace(sb.String()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// Close releases the underlying file handle.
func (d *Document) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}

// RetryableError marks a transient page-source failure (subprocess or OCR
// engine hiccup) that is worth retrying.
type RetryableError struct {
	Op  string
	Err error
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("%s: %v (retryable)", e.Op, e.Err)
}

func (e *RetryableError) Unwrap() error { return e.Err }

// splitLines normalizes recognized text into trimmed, non-empty lines.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
