package extract

// CleanHeadersFooters drops running headers, footers and bare page-number
// lines before paragraph recognition. The footnote recognizer applies the
// same patterns independently, since it reads a different line source.
func CleanHeadersFooters(lines []string, ps *PatternSet) []string {
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if ps.isHeaderFooter(line) {
			continue
		}
		cleaned = append(cleaned, line)
	}
	return cleaned
}
