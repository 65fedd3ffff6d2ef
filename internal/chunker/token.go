package chunker

import (
	"math"
	"strings"
)

// EstimateTokens estimates the token count of extracted text with a fixed
// per-word multiplier. The multiplier compensates for punctuation and
// sub-word artifacts the OCR pass tends to drop; exact tokenization is not
// required downstream.
func EstimateTokens(text string) int {
	words := len(strings.Fields(text))
	return int(math.Round(float64(words) * 1.3))
}
