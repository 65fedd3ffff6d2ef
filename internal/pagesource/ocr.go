//go:build ocr

package pagesource

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// recognizeImage runs Tesseract over a rendered page image. A fresh client
// is created per call: gosseract clients are not safe for concurrent use,
// and page tasks run in parallel.
func recognizeImage(imagePath, lang string, psm int) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if lang != "" {
		if err := client.SetLanguage(lang); err != nil {
			return "", fmt.Errorf("set language %q: %w", lang, err)
		}
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(psm)); err != nil {
		return "", fmt.Errorf("set page seg mode %d: %w", psm, err)
	}

	text, err := client.Text()
	if err != nil {
		return "", &RetryableError{Op: "tesseract", Err: err}
	}
	return text, nil
}
