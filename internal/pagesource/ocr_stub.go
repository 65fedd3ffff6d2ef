//go:build !ocr

package pagesource

import "errors"

// ErrOCRNotEnabled is returned when OCR is requested but support was not
// compiled in. Rebuild with -tags ocr (requires Tesseract installed; on
// Debian/Ubuntu: apt-get install tesseract-ocr libtesseract-dev).
//
// Without OCR the service still extracts footnotes from the text layer;
// pages simply yield zero paragraphs.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

func recognizeImage(imagePath, lang string, psm int) (string, error) {
	return "", ErrOCRNotEnabled
}
