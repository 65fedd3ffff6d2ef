package pipeline

import (
	"errors"
	"math/rand"
	"time"

	"github.com/canglade629/icc-rag-backend/internal/pagesource"
)

// IsRetryable checks if a page failure is worth retrying. Only transient
// source failures (subprocess or OCR engine hiccups) qualify; recognition
// itself is deterministic.
func IsRetryable(err error) bool {
	var retryErr *pagesource.RetryableError
	return errors.As(err, &retryErr)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int63n(int64(base) / 2))
	return base + jitter
}

const MaxRetries = 3
