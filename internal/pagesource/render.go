package pagesource

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// OCRLines rasterizes a 1-based page with pdftoppm and runs Tesseract over
// the rendered image. Subprocess failures are reported as retryable; a
// missing OCR build (see ocr_stub.go) is not.
func (d *Document) OCRLines(ctx context.Context, page int) ([]string, error) {
	if page < 1 || page > d.reader.NumPage() {
		return nil, fmt.Errorf("page %d out of range 1..%d", page, d.reader.NumPage())
	}

	imagePath, cleanup, err := d.renderPage(ctx, page)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	text, err := recognizeImage(imagePath, d.opts.OCRLanguage, d.opts.OCRPageSegMode)
	if err != nil {
		return nil, fmt.Errorf("ocr page %d: %w", page, err)
	}
	return splitLines(text), nil
}

// renderPage shells out to pdftoppm for a single-page PNG render.
func (d *Document) renderPage(ctx context.Context, page int) (string, func(), error) {
	dir, err := os.MkdirTemp("", "pagesource-render-*")
	if err != nil {
		return "", nil, fmt.Errorf("render temp dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	prefix := filepath.Join(dir, "page")
	cmd := exec.CommandContext(ctx, "pdftoppm",
		"-png", "-singlefile",
		"-r", strconv.Itoa(d.opts.OCRDPI),
		"-f", strconv.Itoa(page),
		"-l", strconv.Itoa(page),
		d.path, prefix,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		cleanup()
		if ctx.Err() != nil {
			return "", nil, ctx.Err()
		}
		return "", nil, &RetryableError{
			Op:  fmt.Sprintf("pdftoppm page %d", page),
			Err: fmt.Errorf("%w: %s", err, string(out)),
		}
	}

	imagePath := prefix + ".png"
	if _, err := os.Stat(imagePath); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("pdftoppm produced no image for page %d: %w", page, err)
	}
	return imagePath, cleanup, nil
}
