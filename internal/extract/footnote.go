package extract

import "strings"

// DetectionTextLayer marks footnotes recognized from the PDF's native text
// layer.
const DetectionTextLayer = "text_layer"

// Footnote is a validated footnote record for one page.
type Footnote struct {
	Number               string   `json:"number"`
	Content              string   `json:"content"`
	Page                 int      `json:"page"`
	Confidence           float64  `json:"confidence"`
	DetectionMethod      string   `json:"detection_method"`
	ReferencedParagraphs []string `json:"referenced_paragraphs"`
}

// minContinuationLen guards against stray short OCR noise being appended to
// an open footnote.
const minContinuationLen = 10

// ExtractFootnotes scans the text-layer lines of one page and returns the
// validated footnotes in order of appearance.
//
// The scan keeps at most one open candidate. A line starting with a footnote
// number closes the current candidate and opens a new one; the new candidate
// is validated immediately and discarded outright if it fails, so a numbered
// date or page-marker line never opens a footnote. Longer non-numbered lines
// continue the open candidate.
func ExtractFootnotes(lines []string, page int, ps *PatternSet) []Footnote {
	var footnotes []Footnote
	var current *Footnote

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if ps.isHeaderFooter(line) {
			continue
		}

		m := ps.footnoteStart.FindStringSubmatchIndex(line)
		if m == nil {
			if current != nil && len(line) > minContinuationLen {
				current.Content += " " + line
			}
			continue
		}

		if current != nil {
			footnotes = append(footnotes, *current)
		}

		number := line[m[2]:m[3]]
		content := strings.TrimSpace(line[m[1]:])
		if isValidFootnote(content, ps) {
			current = &Footnote{
				Number:               number,
				Content:              content,
				Page:                 page,
				Confidence:           footnoteConfidence(content, ps),
				DetectionMethod:      DetectionTextLayer,
				ReferencedParagraphs: []string{},
			}
		} else {
			// The numbered line is absorbed as ordinary text; it does not
			// reopen or extend the previous footnote.
			current = nil
		}
	}

	if current != nil {
		footnotes = append(footnotes, *current)
	}

	return footnotes
}

// isValidFootnote accepts content that is long enough, is not a date line,
// and exhibits at least one legal citation form. All three are required.
func isValidFootnote(content string, ps *PatternSet) bool {
	if len(content) < 10 {
		return false
	}
	for _, re := range ps.dates {
		if re.MatchString(content) {
			return false
		}
	}
	for _, c := range ps.citations {
		if c.re.MatchString(content) {
			return true
		}
	}
	return false
}

// footnoteConfidence sums the weights of every citation pattern present in
// the content, plus a small bonus for substantial length, capped at 1.0.
// The score is a heuristic priority signal for downstream weighting, not a
// probability.
func footnoteConfidence(content string, ps *PatternSet) float64 {
	score := 0.0
	for _, c := range ps.citations {
		if c.weight > 0 && c.re.MatchString(content) {
			score += c.weight
		}
	}
	if len(content) > 50 {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
